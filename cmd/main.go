package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/go-redis/redis_rate/v10"
	"github.com/ijalalfrz/airfare-search-service/internal/app/config"
	"github.com/ijalalfrz/airfare-search-service/internal/app/dto"
	"github.com/ijalalfrz/airfare-search-service/internal/app/endpoints"
	"github.com/ijalalfrz/airfare-search-service/internal/app/service"
	"github.com/ijalalfrz/airfare-search-service/internal/app/transport"
	"github.com/ijalalfrz/airfare-search-service/internal/pkg/amadeus"
	"github.com/ijalalfrz/airfare-search-service/internal/pkg/logger"
	"github.com/ijalalfrz/airfare-search-service/internal/pkg/query"
	"github.com/redis/go-redis/v9"
)

// @title           Airfare Search Service API
// @version         0.0.1
// @description     airfare-search-service
// @host      localhost:8080
// @BasePath  /
// @license.name Rizal Alfarizi
// @license.url https://github.com/ijalalfrz
func main() {

	cfg := config.MustInitConfig(".env")
	logger.InitStructuredLogger(cfg.LogLevel)

	slog.Debug("config loaded successfully", slog.Any("config", cfg))
	runApp(cfg)
}

func runApp(cfg config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	slog.InfoContext(ctx, "starting...", slog.String("log_level", string(cfg.LogLevel)))

	var waitGroup sync.WaitGroup
	// Starts the server in a go routine
	waitGroup.Add(1)
	go func() {
		defer waitGroup.Done()
		startHTTPServer(ctx, cfg)
	}()

	sigChannel := make(chan os.Signal, 1)
	signal.Notify(sigChannel, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case sig := <-sigChannel:
		cancel()
		slog.InfoContext(ctx, "received OS signal. Exiting...", slog.String("signal", sig.String()))
	case <-ctx.Done():
		slog.ErrorContext(ctx, "failed to start HTTP server")
	}

	waitGroup.Wait()
	slog.InfoContext(ctx, "All service closed...")
}

func startHTTPServer(ctx context.Context, cfg config.Config) {
	endpts := makeEndpoints(ctx, &cfg)
	router := transport.MakeHTTPRouter(&cfg, endpts)
	server := &http.Server{
		Handler:      router,
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		WriteTimeout: cfg.HTTP.Timeout,
		ReadTimeout:  cfg.HTTP.Timeout,
	}

	slog.Info("running HTTP server...", slog.Int("port", cfg.HTTP.Port))

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.ErrorContext(ctx, "failed to start HTTP server", slog.String("error", err.Error()))
		}
	}()

	<-ctx.Done()

	if err := server.Shutdown(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to shutdown HTTP server", slog.String("error", err.Error()))
	}

	slog.InfoContext(ctx, "HTTP server shutdown gracefully")
}

func makeEndpoints(ctx context.Context, cfg *config.Config) endpoints.Endpoints {
	// init redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// init validator
	if err := dto.InitValidator(); err != nil {
		slog.ErrorContext(ctx, "failed to init validator", slog.String("error", err.Error()))
		panic(err)
	}

	// init inventory client
	inventoryClient := initInventoryClient(cfg, redisClient)

	// init service endpoint
	return endpoints.Endpoints{
		SearchEndpoint: makeSearchEndpoint(inventoryClient, cfg),
	}
}

func initInventoryClient(cfg *config.Config, redisClient *redis.Client) *amadeus.Client {

	limiter := redis_rate.NewLimiter(redisClient)

	return amadeus.NewClient(amadeus.Config{
		BaseURL:          cfg.Amadeus.BaseURL,
		APIKey:           cfg.Amadeus.APIKey,
		APISecret:        cfg.Amadeus.APISecret,
		Timeout:          cfg.Amadeus.Timeout,
		EnableLiveAPI:    cfg.Amadeus.EnableLiveAPI,
		EnableCitySearch: cfg.Amadeus.EnableCitySearch,
		RateLimitRPS:     cfg.Amadeus.RateLimitRPS,
		Limiter:          limiter,
	})
}

func makeSearchEndpoint(inventoryClient *amadeus.Client, cfg *config.Config) endpoints.SearchEndpoint {

	// query coordinator and autocomplete debouncer
	coordinator := query.NewCoordinator()
	debounce := query.NewDebouncer(cfg.Cache.CityDebounce)

	// service
	searchService := service.NewSearchService(inventoryClient, coordinator, debounce,
		cfg.Cache.FlightTTL, cfg.Cache.CityTTL)

	// endpoint
	return endpoints.MakeSearchEndpoint(searchService)
}
