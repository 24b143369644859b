package flight

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ijalalfrz/airfare-search-service/internal/app/dto"
	"github.com/stretchr/testify/assert"
)

func makeFlight(id string, price float64, stops int, airline, date string) dto.Flight {
	return dto.Flight{
		ID:            id,
		Airline:       airline,
		Price:         dto.Price{Amount: price, Currency: "USD"},
		Stops:         stops,
		DepartureDate: date,
	}
}

func TestPriceBounds_Closure(t *testing.T) {
	boundsRequest := func(flights []dto.Flight, wantLo, wantHi float64) func(t *testing.T) {
		return func(t *testing.T) {
			lo, hi := PriceBounds(flights)
			assert.Equal(t, wantLo, lo)
			assert.Equal(t, wantHi, hi)
		}
	}

	t.Run("empty_list_uses_defaults", boundsRequest(nil, 150, 1200))
	t.Run("single_flight", boundsRequest([]dto.Flight{
		makeFlight("1", 300, 0, "A", "2024-05-01"),
	}, 300, 300))
	t.Run("min_and_max", boundsRequest([]dto.Flight{
		makeFlight("1", 300, 0, "A", "2024-05-01"),
		makeFlight("2", 900, 1, "B", "2024-05-01"),
		makeFlight("3", 520, 1, "C", "2024-05-02"),
	}, 300, 900))
}

func TestClampRange_Closure(t *testing.T) {
	clampRequest := func(userMin, userMax, lo, hi, wantMin, wantMax float64) func(t *testing.T) {
		return func(t *testing.T) {
			gotMin, gotMax := ClampRange(userMin, userMax, lo, hi)
			assert.Equal(t, wantMin, gotMin)
			assert.Equal(t, wantMax, gotMax)
		}
	}

	t.Run("range_inside_bounds", clampRequest(200, 800, 150, 1200, 200, 800))
	t.Run("range_below_bounds", clampRequest(50, 100, 150, 1200, 150, 100))
	t.Run("range_above_bounds", clampRequest(1300, 2000, 150, 1200, 1300, 1200))
	t.Run("range_wider_than_bounds", clampRequest(0, 5000, 150, 1200, 150, 1200))
}

func TestClampRange_StaysWithinBounds(t *testing.T) {
	// effective range never escapes the bounds on either side
	cases := [][4]float64{
		{100, 700, 150, 1200},
		{150, 1200, 150, 1200},
		{400, 4000, 300, 900},
		{310, 320, 300, 900},
	}

	for _, c := range cases {
		gotMin, gotMax := ClampRange(c[0], c[1], c[2], c[3])
		assert.GreaterOrEqual(t, gotMin, c[2])
		assert.LessOrEqual(t, gotMax, c[3])
	}
}

func TestFilterFlights(t *testing.T) {
	flights := []dto.Flight{
		makeFlight("1", 300, 0, "A", "2024-05-01"),
		makeFlight("2", 900, 1, "B", "2024-05-01"),
		makeFlight("3", 1500, 2, "C", "2024-05-02"),
		makeFlight("4", 640, 3, "A", "2024-05-02"),
	}

	filterRequest := func(state dto.FilterState, minPrice, maxPrice float64, wantIDs []string) func(t *testing.T) {
		return func(t *testing.T) {
			got := FilterFlights(flights, state, minPrice, maxPrice)
			gotIDs := make([]string, len(got))
			for i, f := range got {
				gotIDs[i] = f.ID
			}

			diff := cmp.Diff(wantIDs, gotIDs)
			if diff != "" {
				t.Fatalf("FilterFlights result mismatch (-want +got):\n%s", diff)
			}
		}
	}

	t.Run("no_filter_keeps_range_matches", filterRequest(
		dto.FilterState{}, 150, 1200, []string{"1", "2", "4"}))
	t.Run("price_range_inclusive", filterRequest(
		dto.FilterState{}, 300, 900, []string{"1", "2", "4"}))
	t.Run("nonstop_only", filterRequest(
		dto.FilterState{Stops: []int{0}}, 150, 1200, []string{"1"}))
	t.Run("two_plus_bucket_catches_three_stops", filterRequest(
		dto.FilterState{Stops: []int{2}}, 150, 2000, []string{"3", "4"}))
	t.Run("airline_inclusion", filterRequest(
		dto.FilterState{Airlines: []string{"A"}}, 150, 1200, []string{"1", "4"}))
	t.Run("airline_exclusion", filterRequest(
		dto.FilterState{Airlines: []string{"A"}, ExcludeAirlines: true}, 150, 1200, []string{"2"}))
	t.Run("no_match", filterRequest(
		dto.FilterState{Airlines: []string{"Z"}}, 150, 1200, []string{}))
}

func TestFilterFlights_Idempotent(t *testing.T) {
	flights := []dto.Flight{
		makeFlight("1", 300, 0, "A", "2024-05-01"),
		makeFlight("2", 900, 1, "B", "2024-05-01"),
		makeFlight("3", 1500, 2, "C", "2024-05-02"),
	}
	state := dto.FilterState{Stops: []int{0, 1}}

	once := FilterFlights(flights, state, 150, 1200)
	twice := FilterFlights(once, state, 150, 1200)

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("filtering is not idempotent (-once +twice):\n%s", diff)
	}
}
