package flight

import (
	"sort"

	"github.com/ijalalfrz/airfare-search-service/internal/app/dto"
)

// SortFlights orders flights ascending by the given key. "none" (or an
// unknown key) preserves the incoming order. Sorts are stable so equal
// keys keep their relative order across re-sorts.
//
// The "departure" key compares departure date strings lexicographically,
// which is correct only because dates are ISO formatted YYYY-MM-DD.
func SortFlights(flights []dto.Flight, sortBy string) []dto.Flight {
	switch sortBy {
	case "price":
		sort.SliceStable(flights, func(i, j int) bool {
			return flights[i].Price.Amount < flights[j].Price.Amount
		})
	case "duration":
		sort.SliceStable(flights, func(i, j int) bool {
			return flights[i].Duration.TotalMinutes < flights[j].Duration.TotalMinutes
		})
	case "departure":
		sort.SliceStable(flights, func(i, j int) bool {
			return flights[i].DepartureDate < flights[j].DepartureDate
		})
	}

	return flights
}
