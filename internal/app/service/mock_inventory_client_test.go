package service

import (
	"context"
	"testing"

	"github.com/ijalalfrz/airfare-search-service/internal/app/dto"
	"github.com/stretchr/testify/mock"
)

// MockInventoryClient is a testify mock for InventoryClient.
type MockInventoryClient struct {
	mock.Mock
}

func NewMockInventoryClient(t *testing.T) *MockInventoryClient {
	m := &MockInventoryClient{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockInventoryClient) SearchFlights(ctx context.Context, params dto.SearchParams) ([]dto.Flight, error) {
	args := m.Called(ctx, params)

	var flights []dto.Flight
	if args.Get(0) != nil {
		flights = args.Get(0).([]dto.Flight)
	}

	return flights, args.Error(1)
}

func (m *MockInventoryClient) SearchCities(ctx context.Context, keyword string) ([]dto.CityLocation, error) {
	args := m.Called(ctx, keyword)

	var locations []dto.CityLocation
	if args.Get(0) != nil {
		locations = args.Get(0).([]dto.CityLocation)
	}

	return locations, args.Error(1)
}
