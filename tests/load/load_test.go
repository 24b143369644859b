package load_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/ijalalfrz/airfare-search-service/internal/app/dto"
	"github.com/stretchr/testify/assert"
)

type Stats struct {
	CacheHits   int
	CacheMisses int
	Errors      int
}

func (s *Stats) Add(other Stats) {
	s.CacheHits += other.CacheHits
	s.CacheMisses += other.CacheMisses
	s.Errors += other.Errors
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func searchFlights(ctx context.Context, url string, request dto.SearchFlightsRequest) (Stats, error) {
	payload, _ := json.Marshal(request)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payload))
	if err != nil {
		return Stats{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return Stats{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests ||
		resp.StatusCode == http.StatusBadGateway {
		// Outbound rate limit reached or the inventory API rejected the call
		return Stats{Errors: 1}, nil
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return Stats{}, fmt.Errorf("bad status: %d, body: %s", resp.StatusCode, string(body))
	}

	var r dto.SearchFlightsResponse
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return Stats{}, err
	}

	stats := Stats{}
	if r.Metadata.CacheHit {
		stats.CacheHits = 1
	} else {
		stats.CacheMisses = 1
	}

	return stats, nil
}

func TestFlightSearchLoad(t *testing.T) {
	appHost := getEnv("APP_HOST", "http://localhost:8080")

	url := appHost + "/api/v1/flights/search"
	ctx := context.Background()

	request := dto.SearchFlightsRequest{
		SearchParams: dto.SearchParams{
			Origin:        "JFK",
			Destination:   "LAX",
			DepartureDate: "2026-12-15",
			Adults:        1,
			CabinClass:    "economy",
			TripType:      "oneway",
		},
	}

	rateLimitRequest := dto.SearchFlightsRequest{
		SearchParams: dto.SearchParams{
			Origin:        "JFK",
			Destination:   "SFO",
			DepartureDate: "2026-12-15",
			Adults:        1,
			CabinClass:    "economy",
			TripType:      "oneway",
		},
	}

	t.Run("Request Dedup Test", func(t *testing.T) {
		// Concurrent identical searches on a cold key share one upstream call,
		// so at most one response is a cache miss.
		vus := 5
		stats := runScenario(t, ctx, url, request, vus)

		assert.LessOrEqual(t, stats.CacheMisses, 1)
		assert.GreaterOrEqual(t, stats.CacheHits, vus-1)
	})

	t.Run("Cache Hit Test", func(t *testing.T) {
		vus := 5
		stats := runScenario(t, ctx, url, request, vus)

		assert.Equal(t, vus, stats.CacheHits)
		assert.Equal(t, 0, stats.CacheMisses)
	})

	t.Run("Rate Limit Test", func(t *testing.T) {
		vus := 20
		stats := runScenario(t, ctx, url, rateLimitRequest, vus)

		fmt.Printf("Rate Limit Test Result: Cache Misses = %d, Cache Hits = %d, Errors = %d\n",
			stats.CacheMisses, stats.CacheHits, stats.Errors)
		assert.Equal(t, vus, stats.CacheHits+stats.CacheMisses+stats.Errors)
	})
}

func runScenario(t *testing.T, ctx context.Context, url string, request dto.SearchFlightsRequest, vus int) Stats {
	var wg sync.WaitGroup
	var mu sync.Mutex
	scenarioStats := Stats{}

	for i := 0; i < vus; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			stats, err := searchFlights(ctx, url, request)
			if err != nil {
				t.Errorf("VU %d failed: %v", id, err)
				return
			}
			mu.Lock()
			scenarioStats.Add(stats)
			mu.Unlock()
		}(i)
	}

	wg.Wait()
	return scenarioStats
}
