package flight

import (
	"github.com/ijalalfrz/airfare-search-service/internal/app/dto"
)

const (
	// default slider bounds when a result set is empty
	DefaultMinPrice = 150
	DefaultMaxPrice = 1200

	// stop counts of 2 or more collapse into one "2+" bucket
	maxStopBucket = 2
)

// PriceBounds returns the [min, max] price across the result set, or the
// default bounds for an empty set.
func PriceBounds(flights []dto.Flight) (float64, float64) {
	if len(flights) == 0 {
		return DefaultMinPrice, DefaultMaxPrice
	}

	lo, hi := flights[0].Price.Amount, flights[0].Price.Amount
	for _, f := range flights[1:] {
		if f.Price.Amount < lo {
			lo = f.Price.Amount
		}
		if f.Price.Amount > hi {
			hi = f.Price.Amount
		}
	}

	return lo, hi
}

// ClampRange clamps the user's selected price range into the current
// result bounds so a slider carried over from a previous search can
// never exclude the whole set by accident.
func ClampRange(userMin, userMax, boundsMin, boundsMax float64) (float64, float64) {
	effMin := userMin
	if boundsMin > effMin {
		effMin = boundsMin
	}

	effMax := userMax
	if boundsMax < effMax {
		effMax = boundsMax
	}

	return effMin, effMax
}

// FilterFlights keeps flights whose price lies in [minPrice, maxPrice]
// inclusive and which pass the stop and airline filters. An empty stop
// or airline selection means that dimension is unfiltered. The airline
// selection is an inclusion list by default and inverts into an
// exclusion list when state.ExcludeAirlines is set.
func FilterFlights(flights []dto.Flight, state dto.FilterState, minPrice, maxPrice float64) []dto.Flight {
	stopSet := make(map[int]bool, len(state.Stops))
	for _, s := range state.Stops {
		stopSet[s] = true
	}

	airlineSet := make(map[string]bool, len(state.Airlines))
	for _, a := range state.Airlines {
		airlineSet[a] = true
	}

	results := make([]dto.Flight, 0, len(flights))

	for _, f := range flights {
		if f.Price.Amount < minPrice || f.Price.Amount > maxPrice {
			continue
		}

		if len(stopSet) > 0 {
			bucket := f.Stops
			if bucket > maxStopBucket {
				bucket = maxStopBucket
			}
			if !stopSet[bucket] {
				continue
			}
		}

		if len(airlineSet) > 0 {
			// keep when selected XOR excluding
			if airlineSet[f.Airline] == state.ExcludeAirlines {
				continue
			}
		}

		results = append(results, f)
	}

	return results
}
