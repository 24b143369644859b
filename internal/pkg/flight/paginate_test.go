package flight

import (
	"fmt"
	"testing"

	"github.com/ijalalfrz/airfare-search-service/internal/app/dto"
	"github.com/stretchr/testify/assert"
)

func manyFlights(n int) []dto.Flight {
	flights := make([]dto.Flight, n)
	for i := range flights {
		flights[i] = dto.Flight{ID: fmt.Sprintf("f-%d", i)}
	}

	return flights
}

func TestPaginate_Closure(t *testing.T) {
	paginateRequest := func(count, page, wantLen, wantPage, wantTotal int) func(t *testing.T) {
		return func(t *testing.T) {
			got, gotPage, gotTotal := Paginate(manyFlights(count), page)
			assert.Len(t, got, wantLen)
			assert.Equal(t, wantPage, gotPage)
			assert.Equal(t, wantTotal, gotTotal)
		}
	}

	t.Run("first_page_full", paginateRequest(14, 1, 6, 1, 3))
	t.Run("last_page_partial", paginateRequest(14, 3, 2, 3, 3))
	t.Run("page_clamped_high", paginateRequest(14, 99, 2, 3, 3))
	t.Run("page_clamped_low", paginateRequest(14, 0, 6, 1, 3))
	t.Run("exact_multiple", paginateRequest(12, 2, 6, 2, 2))
	t.Run("empty_list_single_empty_page", paginateRequest(0, 1, 0, 1, 1))
	t.Run("empty_list_page_clamped", paginateRequest(0, 5, 0, 1, 1))
}

func TestPaginate_PageContents(t *testing.T) {
	flights := manyFlights(8)

	page2, page, total := Paginate(flights, 2)
	assert.Equal(t, 2, page)
	assert.Equal(t, 2, total)
	assert.Equal(t, "f-6", page2[0].ID)
	assert.Equal(t, "f-7", page2[1].ID)
}
