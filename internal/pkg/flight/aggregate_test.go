package flight

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ijalalfrz/airfare-search-service/internal/app/dto"
)

func TestAggregatePriceTrend_Closure(t *testing.T) {
	aggregateRequest := func(flights []dto.Flight, want []dto.PricePoint) func(t *testing.T) {
		return func(t *testing.T) {
			got := AggregatePriceTrend(flights)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("AggregatePriceTrend mismatch (-want +got):\n%s", diff)
			}
		}
	}

	t.Run("empty_list_empty_trend", aggregateRequest(nil, []dto.PricePoint{}))

	t.Run("single_date_average_and_lowest", aggregateRequest(
		[]dto.Flight{
			makeFlight("1", 300, 0, "A", "2024-05-01"),
			makeFlight("2", 900, 1, "B", "2024-05-01"),
		},
		[]dto.PricePoint{
			{Date: "2024-05-01", AveragePrice: 600, LowestPrice: 300},
		},
	))

	t.Run("multiple_dates_sorted_ascending", aggregateRequest(
		[]dto.Flight{
			makeFlight("1", 500, 0, "A", "2024-05-03"),
			makeFlight("2", 300, 0, "A", "2024-05-01"),
			makeFlight("3", 700, 1, "B", "2024-05-01"),
			makeFlight("4", 410, 0, "C", "2024-05-02"),
		},
		[]dto.PricePoint{
			{Date: "2024-05-01", AveragePrice: 500, LowestPrice: 300},
			{Date: "2024-05-02", AveragePrice: 410, LowestPrice: 410},
			{Date: "2024-05-03", AveragePrice: 500, LowestPrice: 500},
		},
	))

	t.Run("average_rounds_to_nearest", aggregateRequest(
		[]dto.Flight{
			makeFlight("1", 100, 0, "A", "2024-05-01"),
			makeFlight("2", 101, 0, "B", "2024-05-01"),
			makeFlight("3", 101, 0, "C", "2024-05-01"),
		},
		[]dto.PricePoint{
			{Date: "2024-05-01", AveragePrice: 101, LowestPrice: 100},
		},
	))
}
