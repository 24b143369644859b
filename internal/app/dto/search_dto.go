package dto

import (
	"fmt"
	"net/http"

	"github.com/ijalalfrz/airfare-search-service/internal/pkg/exception"
)

// sort keys accepted by the results pipeline
var AllowedSortKey = map[string]bool{
	"none":      true,
	"price":     true,
	"duration":  true,
	"departure": true,
}

type Flight struct {
	ID              string          `json:"id"`
	Airline         string          `json:"airline"`
	Origin          string          `json:"origin"`
	OriginName      string          `json:"origin_name"`
	Destination     string          `json:"destination"`
	DestinationName string          `json:"destination_name"`
	DepartureDate   string          `json:"departure_date"`
	ReturnDate      string          `json:"return_date,omitempty"`
	Price           Price           `json:"price"`
	Stops           int             `json:"stops"`
	Duration        Duration        `json:"duration"`
	CabinClass      string          `json:"cabin_class"`
	FareClass       string          `json:"fare_class"`
	Segments        []FlightSegment `json:"segments"`
}

type FlightSegment struct {
	Origin          string `json:"origin"`
	Destination     string `json:"destination"`
	DepartureTime   string `json:"departure_time"`
	ArrivalTime     string `json:"arrival_time"`
	Airline         string `json:"airline"`
	FlightNumber    string `json:"flight_number"`
	DurationMinutes int    `json:"duration_minutes"`
}

type Price struct {
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Formatted string  `json:"formatted"`
}

type Duration struct {
	TotalMinutes int    `json:"total_minutes"`
	Formatted    string `json:"formatted"`
}

// PricePoint is one bar of the price trend chart: all flights in the
// filtered set departing on the same date, collapsed to a rounded
// average and the cheapest fare.
type PricePoint struct {
	Date         string  `json:"date"`
	AveragePrice int     `json:"average_price"`
	LowestPrice  float64 `json:"lowest_price"`
}

type CityLocation struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IataCode string `json:"iata_code"`
	CityCode string `json:"city_code"`
	Country  string `json:"country"`
	SubType  string `json:"sub_type"`
}

// SearchParams is the upstream-facing part of a search request: the trip
// the user asked for, independent of any view-state filtering.
type SearchParams struct {
	Origin           string `json:"origin" validate:"required"`
	OriginLabel      string `json:"origin_label,omitempty"`
	Destination      string `json:"destination" validate:"required"`
	DestinationLabel string `json:"destination_label,omitempty"`
	DepartureDate    string `json:"departure_date" validate:"required,datetime=2006-01-02"`
	ReturnDate       string `json:"return_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Adults           int    `json:"adults" validate:"required,min=1,max=9"`
	Children         int    `json:"children" validate:"min=0,max=9"`
	Infants          int    `json:"infants" validate:"min=0,max=9"`
	CabinClass       string `json:"cabin_class" validate:"required,oneof=economy premium business first"`
	TripType         string `json:"trip_type" validate:"required,oneof=oneway roundtrip"`
}

// TotalPassengers recomputes the headcount from the individual counts.
func (p SearchParams) TotalPassengers() int {
	return p.Adults + p.Children + p.Infants
}

// Normalized returns a copy with the passenger invariants applied: at
// least one adult, no negative counts.
func (p SearchParams) Normalized() SearchParams {
	if p.Adults < 1 {
		p.Adults = 1
	}
	if p.Children < 0 {
		p.Children = 0
	}
	if p.Infants < 0 {
		p.Infants = 0
	}

	return p
}

// FilterState is the user-adjustable view state applied on top of one
// search result set. The zero value means "no filtering, no sort".
type FilterState struct {
	PriceRange      *[2]float64 `json:"price_range,omitempty"`
	Stops           []int       `json:"stops,omitempty" validate:"omitempty,dive,gte=0,lte=2"`
	Airlines        []string    `json:"airlines,omitempty"`
	ExcludeAirlines bool        `json:"exclude_airlines"`
	SortBy          string      `json:"sort_by,omitempty"`
}

// SearchFlightsRequest is the body of the flight search endpoint.
type SearchFlightsRequest struct {
	SearchParams
	Filter *FilterState `json:"filter,omitempty"`
	Page   int          `json:"page,omitempty" validate:"omitempty,min=1"`
}

func (s *SearchFlightsRequest) Bind(r *http.Request) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("error validate request: %w", err)
	}

	return nil
}

func (s *SearchFlightsRequest) Validate() error {
	if err := ValidateSingleError(s); err != nil {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
		}
	}

	if s.TripType == "roundtrip" && s.ReturnDate == "" {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    "return_date is required for roundtrip searches",
		}
	}

	if s.Filter != nil {
		if s.Filter.SortBy != "" && !AllowedSortKey[s.Filter.SortBy] {
			return exception.ApplicationError{
				StatusCode: http.StatusBadRequest,
				Message:    fmt.Sprintf("Invalid sort key %s", s.Filter.SortBy),
			}
		}

		if s.Filter.PriceRange != nil && s.Filter.PriceRange[1] < s.Filter.PriceRange[0] {
			return exception.ApplicationError{
				StatusCode: http.StatusBadRequest,
				Message:    "price_range max must not be less than min",
			}
		}
	}

	return nil
}

type LocationsRequest struct {
	Keyword string `json:"keyword"`
}

type LocationsResponse struct {
	Locations []CityLocation `json:"locations"`
}

type PriceBounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type Pagination struct {
	Page         int `json:"page"`
	PageSize     int `json:"page_size"`
	TotalPages   int `json:"total_pages"`
	TotalResults int `json:"total_results"`
}

type Metadata struct {
	CacheState   string `json:"cache_state"`
	CacheHit     bool   `json:"cache_hit"`
	SearchTimeMs int    `json:"search_time_ms"`
}

// SearchFlightsResponse is one render-ready page of results plus the
// chart aggregates derived from the full filtered set.
type SearchFlightsResponse struct {
	SearchParams   SearchParams `json:"search_params"`
	Flights        []Flight     `json:"flights"`
	PriceTrend     []PricePoint `json:"price_trend"`
	Bounds         PriceBounds  `json:"bounds"`
	EffectiveRange [2]float64   `json:"effective_range"`
	Pagination     Pagination   `json:"pagination"`
	Metadata       Metadata     `json:"metadata"`
}
