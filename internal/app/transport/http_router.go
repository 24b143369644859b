package transport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/ijalalfrz/airfare-search-service/internal/app/config"
	"github.com/ijalalfrz/airfare-search-service/internal/app/dto"
	"github.com/ijalalfrz/airfare-search-service/internal/app/endpoints"
	httptransport "github.com/ijalalfrz/airfare-search-service/internal/pkg/transport/http"
)

// MakeHTTPRouter builds the HTTP router with all the service endpoints.
func MakeHTTPRouter(
	cfg *config.Config,
	endpts endpoints.Endpoints,
) *chi.Mux {
	// Initialize Router
	router := chi.NewRouter()

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Route("/api/v1", func(router chi.Router) {
		router.Use(
			httptransport.RequestID(),
			httptransport.CORSMiddleware(),
			httptransport.Recoverer(slog.Default()),
			render.SetContentType(render.ContentTypeJSON),
		)

		router.Post("/flights/search", httptransport.MakeHandlerFunc(
			endpts.SearchEndpoint.SearchFlights,
			httptransport.DecodeRequest[dto.SearchFlightsRequest],
			httptransport.ResponseWithBody,
		))

		router.Get("/locations", httptransport.MakeHandlerFunc(
			endpts.SearchEndpoint.SearchCities,
			decodeLocationsRequest,
			httptransport.ResponseWithBody,
		))
	})

	return router
}

func decodeLocationsRequest(_ context.Context, r *http.Request) (interface{}, error) {
	return &dto.LocationsRequest{
		Keyword: r.URL.Query().Get("keyword"),
	}, nil
}
