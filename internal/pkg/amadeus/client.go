package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/ijalalfrz/airfare-search-service/internal/app/dto"
	"github.com/ijalalfrz/airfare-search-service/internal/pkg/utils"
)

const (
	searchCurrency   = "USD"
	maxSearchResults = 20
	maxCityResults   = 8
)

// Config for the inventory API client. The two Enable gates are checked
// before any network call; when off, operations fail fast with a
// configuration error instead of reaching the live service.
type Config struct {
	BaseURL          string
	APIKey           string
	APISecret        string
	Timeout          time.Duration
	EnableLiveAPI    bool
	EnableCitySearch bool
	RateLimitRPS     int
	Limiter          *redis_rate.Limiter
}

// Client issues authenticated queries against the flight-offer and
// location-search endpoints and maps raw offers into dto shapes.
type Client struct {
	cfg        Config
	httpClient *http.Client
	tokens     *TokenSource
}

func NewClient(cfg Config) *Client {
	httpClient := &http.Client{Timeout: cfg.Timeout}

	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		tokens:     NewTokenSource(cfg.BaseURL, cfg.APIKey, cfg.APISecret, httpClient),
	}
}

// SearchFlights queries the flight-offer endpoint and maps each offer to
// a dto.Flight. Offers lacking a first itinerary or first segment are
// dropped silently; a failed HTTP call is a search error.
func (c *Client) SearchFlights(ctx context.Context, params dto.SearchParams) ([]dto.Flight, error) {
	if !c.cfg.EnableLiveAPI {
		return nil, ErrLiveAPIDisabled
	}
	if c.cfg.APIKey == "" || c.cfg.APISecret == "" {
		return nil, ErrMissingCredentials
	}

	if err := c.allow(ctx, "amadeus:flight-offers"); err != nil {
		return nil, err
	}

	query := url.Values{
		"originLocationCode":      {params.Origin},
		"destinationLocationCode": {params.Destination},
		"departureDate":           {params.DepartureDate},
		"adults":                  {strconv.Itoa(params.Adults)},
		"travelClass":             {strings.ToUpper(params.CabinClass)},
		"nonStop":                 {"false"},
		"currencyCode":            {searchCurrency},
		"max":                     {strconv.Itoa(maxSearchResults)},
	}
	if params.Children > 0 {
		query.Set("children", strconv.Itoa(params.Children))
	}
	if params.Infants > 0 {
		query.Set("infants", strconv.Itoa(params.Infants))
	}
	if params.ReturnDate != "" {
		query.Set("returnDate", params.ReturnDate)
	}

	var response flightOffersResponse
	if err := c.doGet(ctx, "/v2/shopping/flight-offers", query, &response); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSearchFailed, err)
	}

	slog.DebugContext(ctx, "flight offer search response",
		slog.Int("offers", len(response.Data)))

	return c.offersToDTO(response, params), nil
}

// SearchCities queries the location-search endpoint for autocomplete
// suggestions. Blank input is a no-op, not an error.
func (c *Client) SearchCities(ctx context.Context, keyword string) ([]dto.CityLocation, error) {
	if !c.cfg.EnableLiveAPI || !c.cfg.EnableCitySearch {
		return nil, ErrCitySearchDisabled
	}
	if c.cfg.APIKey == "" || c.cfg.APISecret == "" {
		return nil, ErrMissingCredentials
	}

	sanitized := strings.TrimSpace(keyword)
	if sanitized == "" {
		return []dto.CityLocation{}, nil
	}

	if err := c.allow(ctx, "amadeus:locations"); err != nil {
		return nil, err
	}

	query := url.Values{
		"keyword":      {strings.ToUpper(sanitized)},
		"subType":      {"CITY,AIRPORT"},
		"page[limit]":  {strconv.Itoa(maxCityResults)},
		"page[offset]": {"0"},
		"view":         {"FULL"},
		"sort":         {"analytics.travelers.score"},
	}

	var response locationsResponse
	if err := c.doGet(ctx, "/v1/reference-data/locations", query, &response); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSearchFailed, err)
	}

	return locationsToDTO(response), nil
}

// allow applies the outbound rate limit shared across instances. A nil
// limiter disables limiting (tests and single-node setups without redis).
func (c *Client) allow(ctx context.Context, key string) error {
	if c.cfg.Limiter == nil || c.cfg.RateLimitRPS <= 0 {
		return nil
	}

	res, err := c.cfg.Limiter.Allow(ctx, key, redis_rate.PerSecond(c.cfg.RateLimitRPS))
	if err != nil {
		return fmt.Errorf("failed to rate limit: %w", err)
	}

	if res.Allowed == 0 {
		return ErrRateLimitExceeded
	}

	return nil
}

func (c *Client) doGet(ctx context.Context, path string, query url.Values, result interface{}) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.cfg.BaseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func (c *Client) offersToDTO(response flightOffersResponse, params dto.SearchParams) []dto.Flight {
	carriers := response.Dictionaries.Carriers
	results := make([]dto.Flight, 0, len(response.Data))

	for index, offer := range response.Data {
		if len(offer.Itineraries) == 0 || len(offer.Itineraries[0].Segments) == 0 {
			// unmappable offer, dropped rather than reported
			continue
		}

		outbound := offer.Itineraries[0]
		firstSegment := outbound.Segments[0]

		segments := make([]dto.FlightSegment, len(outbound.Segments))
		for i, segment := range outbound.Segments {
			segments[i] = dto.FlightSegment{
				Origin:          segment.Departure.IataCode,
				Destination:     segment.Arrival.IataCode,
				DepartureTime:   segment.Departure.At,
				ArrivalTime:     segment.Arrival.At,
				Airline:         carrierName(carriers, segment.CarrierCode, offer.ValidatingAirlineCodes),
				FlightNumber:    segmentFlightNumber(segment),
				DurationMinutes: utils.ParseISODurationMinutes(segment.Duration),
			}
		}

		price := offerPriceAmount(offer.Price.Total)
		durationMinutes := utils.ParseISODurationMinutes(outbound.Duration)

		results = append(results, dto.Flight{
			ID:              offerID(offer.ID, index),
			Airline:         offerAirline(carriers, offer, segments),
			Origin:          fallback(firstSegment.Departure.IataCode, params.Origin),
			OriginName:      fallback(params.OriginLabel, params.Origin),
			Destination:     fallback(firstSegment.Arrival.IataCode, params.Destination),
			DestinationName: fallback(params.DestinationLabel, params.Destination),
			DepartureDate:   fallback(datePart(firstSegment.Departure.At), params.DepartureDate),
			ReturnDate:      returnDate(offer.Itineraries, params.ReturnDate),
			Price: dto.Price{
				Amount:    price,
				Currency:  fallback(offer.Price.Currency, searchCurrency),
				Formatted: utils.FormatUSD(price),
			},
			Stops: max(len(outbound.Segments)-1, 0),
			Duration: dto.Duration{
				TotalMinutes: durationMinutes,
				Formatted:    utils.ConvertMinutesToDuration(int64(durationMinutes)),
			},
			CabinClass: params.CabinClass,
			FareClass:  fareClass(offer.TravelerPricings),
			Segments:   segments,
		})
	}

	return results
}

// carrierName resolves an airline display name: carrier dictionary, then
// the raw carrier code, then the offer's validating airline code.
func carrierName(carriers map[string]string, code string, validating []string) string {
	if name, ok := carriers[code]; ok && name != "" {
		return name
	}
	if code != "" {
		return code
	}
	if len(validating) > 0 && validating[0] != "" {
		return validating[0]
	}

	return "Unknown"
}

func offerAirline(carriers map[string]string, offer flightOffer, segments []dto.FlightSegment) string {
	if len(offer.ValidatingAirlineCodes) > 0 {
		if name, ok := carriers[offer.ValidatingAirlineCodes[0]]; ok && name != "" {
			return name
		}
	}
	if len(segments) > 0 && segments[0].Airline != "" {
		return segments[0].Airline
	}

	return "Unknown"
}

func segmentFlightNumber(segment offerSegment) string {
	if segment.Number != "" {
		return segment.Number
	}

	return fallback(segment.CarrierCode, "XX") + segment.Number
}

// returnDate picks the last itinerary as the inbound leg when the offer
// has more than one, falling back to the requested return date.
func returnDate(itineraries []itinerary, requested string) string {
	if len(itineraries) > 1 {
		inbound := itineraries[len(itineraries)-1]
		if len(inbound.Segments) > 0 {
			if date := datePart(inbound.Segments[0].Departure.At); date != "" {
				return date
			}
		}
	}

	return requested
}

func offerPriceAmount(total string) float64 {
	amount, err := strconv.ParseFloat(total, 64)
	if err != nil {
		return 0
	}

	return amount
}

func offerID(id string, index int) string {
	if id != "" {
		return id
	}

	return fmt.Sprintf("live-%d", index)
}

func fareClass(pricings []travelerPricing) string {
	if len(pricings) > 0 && pricings[0].FareOption != "" {
		return pricings[0].FareOption
	}

	return "Standard"
}

func datePart(timestamp string) string {
	if len(timestamp) < 10 {
		return ""
	}

	return timestamp[:10]
}

func fallback(value, alt string) string {
	if value != "" {
		return value
	}

	return alt
}

func locationsToDTO(response locationsResponse) []dto.CityLocation {
	results := make([]dto.CityLocation, len(response.Data))
	for i, item := range response.Data {
		results[i] = dto.CityLocation{
			ID:       item.ID,
			Name:     fallback(item.Name, fallback(item.Address.CityName, "Unknown")),
			IataCode: item.IataCode,
			CityCode: fallback(item.Address.CityCode, item.IataCode),
			Country:  item.Address.CountryName,
			SubType:  fallback(item.SubType, "CITY"),
		}
	}

	return results
}
