package flight

import (
	"github.com/ijalalfrz/airfare-search-service/internal/app/dto"
)

// PageSize is the fixed number of results per page.
const PageSize = 6

// Paginate slices one page out of the sorted result list. The requested
// page is clamped to [1, totalPages]; an empty list still reports one
// (empty) page so the pager always has a valid position.
func Paginate(flights []dto.Flight, page int) ([]dto.Flight, int, int) {
	totalPages := (len(flights) + PageSize - 1) / PageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * PageSize
	if start >= len(flights) {
		return []dto.Flight{}, page, totalPages
	}

	end := start + PageSize
	if end > len(flights) {
		end = len(flights)
	}

	return flights[start:end], page, totalPages
}
