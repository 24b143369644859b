package endpoints

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-kit/kit/endpoint"
	"github.com/ijalalfrz/airfare-search-service/internal/app/dto"
)

type SearchService interface {
	SearchFlights(ctx context.Context, req dto.SearchFlightsRequest) (dto.SearchFlightsResponse, error)
	SearchCities(ctx context.Context, keyword string) ([]dto.CityLocation, error)
}

type SearchEndpoint struct {
	SearchFlights endpoint.Endpoint
	SearchCities  endpoint.Endpoint
}

func MakeSearchEndpoint(service SearchService) SearchEndpoint {
	return SearchEndpoint{
		SearchFlights: makeSearchFlightsEndpoint(service),
		SearchCities:  makeSearchCitiesEndpoint(service),
	}
}

func makeSearchFlightsEndpoint(service SearchService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.SearchFlightsRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		response, err := service.SearchFlights(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("search service: %w", err)
		}

		return response, nil
	}
}

func makeSearchCitiesEndpoint(service SearchService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.LocationsRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		locations, err := service.SearchCities(ctx, request.Keyword)
		if err != nil {
			return nil, fmt.Errorf("search service: %w", err)
		}

		return dto.LocationsResponse{Locations: locations}, nil
	}
}
