package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ijalalfrz/airfare-search-service/internal/app/dto"
	"github.com/ijalalfrz/airfare-search-service/internal/pkg/flight"
	"github.com/ijalalfrz/airfare-search-service/internal/pkg/query"
)

// thresholds for the autocomplete path. An input is fetched (and the
// cache warmed) from two characters, but suggestions are only surfaced
// from three. The two thresholds are deliberately different.
const (
	cityFetchMinChars   = 2
	cityDisplayMinChars = 3
)

type InventoryClient interface {
	SearchFlights(ctx context.Context, params dto.SearchParams) ([]dto.Flight, error)
	SearchCities(ctx context.Context, keyword string) ([]dto.CityLocation, error)
}

type SearchService struct {
	Client      InventoryClient
	Coordinator *query.Coordinator
	Debounce    *query.Debouncer
	FlightTTL   time.Duration
	CityTTL     time.Duration
}

func NewSearchService(client InventoryClient, coordinator *query.Coordinator,
	debounce *query.Debouncer, flightTTL, cityTTL time.Duration) *SearchService {
	return &SearchService{
		Client:      client,
		Coordinator: coordinator,
		Debounce:    debounce,
		FlightTTL:   flightTTL,
		CityTTL:     cityTTL,
	}
}

// SearchFlights runs one search: resolve the raw result set through the
// query cache, then apply the filter/sort/paginate/aggregate pipeline.
// The pipeline itself never fails; only the upstream fetch can.
func (s *SearchService) SearchFlights(
	ctx context.Context,
	req dto.SearchFlightsRequest,
) (dto.SearchFlightsResponse, error) {
	startTime := time.Now()

	params := req.SearchParams.Normalized()
	key := flightCacheKey(params)

	result := query.Fetch(ctx, s.Coordinator, key,
		query.Options{TTL: s.FlightTTL, RetryOnce: true},
		func(ctx context.Context) ([]dto.Flight, error) {
			return s.Client.SearchFlights(ctx, params)
		})
	if result.Err != nil {
		return dto.SearchFlightsResponse{}, fmt.Errorf("flight search: %w", result.Err)
	}

	slog.DebugContext(ctx, "flight search resolved",
		slog.String("key", key),
		slog.String("cache_state", string(result.State)),
		slog.Int("results", len(result.Value)))

	var state dto.FilterState
	if req.Filter != nil {
		state = *req.Filter
	}

	boundsMin, boundsMax := flight.PriceBounds(result.Value)

	userMin, userMax := boundsMin, boundsMax
	if state.PriceRange != nil {
		userMin, userMax = state.PriceRange[0], state.PriceRange[1]
	}
	effMin, effMax := flight.ClampRange(userMin, userMax, boundsMin, boundsMax)

	filtered := flight.FilterFlights(result.Value, state, effMin, effMax)
	sorted := flight.SortFlights(filtered, state.SortBy)
	pageItems, page, totalPages := flight.Paginate(sorted, req.Page)
	trend := flight.AggregatePriceTrend(sorted)

	return dto.SearchFlightsResponse{
		SearchParams:   params,
		Flights:        pageItems,
		PriceTrend:     trend,
		Bounds:         dto.PriceBounds{Min: boundsMin, Max: boundsMax},
		EffectiveRange: [2]float64{effMin, effMax},
		Pagination: dto.Pagination{
			Page:         page,
			PageSize:     flight.PageSize,
			TotalPages:   totalPages,
			TotalResults: len(sorted),
		},
		Metadata: dto.Metadata{
			CacheState:   string(result.State),
			CacheHit:     result.CacheHit,
			SearchTimeMs: int(time.Since(startTime).Milliseconds()),
		},
	}, nil
}

// SearchCities resolves autocomplete suggestions for a partial keyword.
// Inputs below the fetch threshold are a no-op; rapid successive inputs
// collapse to the one that survives the debounce quiet period.
func (s *SearchService) SearchCities(ctx context.Context, keyword string) ([]dto.CityLocation, error) {
	sanitized := strings.TrimSpace(keyword)
	if len(sanitized) < cityFetchMinChars {
		return []dto.CityLocation{}, nil
	}

	survived, err := s.Debounce.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("debounce: %w", err)
	}
	if !survived {
		// a newer keystroke superseded this one
		return []dto.CityLocation{}, nil
	}

	result := query.Fetch(ctx, s.Coordinator, cityCacheKey(sanitized),
		query.Options{TTL: s.CityTTL},
		func(ctx context.Context) ([]dto.CityLocation, error) {
			return s.Client.SearchCities(ctx, sanitized)
		})
	if result.Err != nil {
		return nil, fmt.Errorf("city search: %w", result.Err)
	}

	// below the display threshold the cache is warm but nothing surfaces
	if len(sanitized) < cityDisplayMinChars {
		return []dto.CityLocation{}, nil
	}

	return result.Value, nil
}

func flightCacheKey(params dto.SearchParams) string {
	return fmt.Sprintf("flights:%s:%s:%s:%s:%s:%d:%d:%d",
		params.Origin, params.Destination, params.DepartureDate, params.ReturnDate,
		params.CabinClass, params.Adults, params.Children, params.Infants)
}

func cityCacheKey(keyword string) string {
	return "cities:" + strings.ToUpper(keyword)
}
