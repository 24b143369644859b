package flight

import (
	"math"
	"sort"

	"github.com/ijalalfrz/airfare-search-service/internal/app/dto"
)

// AggregatePriceTrend groups the filtered (pre-pagination) result set by
// departure date and computes one chart point per date: the rounded
// average price and the cheapest fare. Points come back ascending by
// date. An empty input yields an empty slice, never zero-filled points.
func AggregatePriceTrend(flights []dto.Flight) []dto.PricePoint {
	if len(flights) == 0 {
		return []dto.PricePoint{}
	}

	type bucket struct {
		sum    float64
		count  int
		lowest float64
	}

	buckets := make(map[string]*bucket)
	for _, f := range flights {
		b, ok := buckets[f.DepartureDate]
		if !ok {
			buckets[f.DepartureDate] = &bucket{
				sum:    f.Price.Amount,
				count:  1,
				lowest: f.Price.Amount,
			}
			continue
		}

		b.sum += f.Price.Amount
		b.count++
		if f.Price.Amount < b.lowest {
			b.lowest = f.Price.Amount
		}
	}

	points := make([]dto.PricePoint, 0, len(buckets))
	for date, b := range buckets {
		points = append(points, dto.PricePoint{
			Date:         date,
			AveragePrice: int(math.Round(b.sum / float64(b.count))),
			LowestPrice:  b.lowest,
		})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})

	return points
}
