package config

import (
	"log/slog"
	"time"
)

type LogLeveler string

func (l LogLeveler) Level() slog.Level {
	var level slog.Level

	_ = level.UnmarshalText([]byte(l))

	return level
}

// Config holds the server configuration.
type Config struct {
	LogLevel LogLeveler `mapstructure:"LOG_LEVEL"`
	HTTP     HTTP       `mapstructure:",squash"`
	Amadeus  Amadeus    `mapstructure:",squash"`
	Cache    Cache      `mapstructure:",squash"`
	Redis    Redis      `mapstructure:",squash"`
}

type HTTP struct {
	Port    int           `mapstructure:"HTTP_PORT"`
	Timeout time.Duration `mapstructure:"HTTP_TIMEOUT"`
}

// Amadeus holds the upstream inventory API configuration. EnableLiveAPI
// gates every network call; EnableCitySearch additionally gates the
// autocomplete feature. Both default to off so a preview build can never
// reach the live service.
type Amadeus struct {
	BaseURL          string        `mapstructure:"AMADEUS_API_BASE_URL"`
	APIKey           string        `mapstructure:"AMADEUS_API_KEY"`
	APISecret        string        `mapstructure:"AMADEUS_API_SECRET"`
	Timeout          time.Duration `mapstructure:"AMADEUS_TIMEOUT"`
	EnableLiveAPI    bool          `mapstructure:"ENABLE_LIVE_API"`
	EnableCitySearch bool          `mapstructure:"ENABLE_CITY_SEARCH"`
	RateLimitRPS     int           `mapstructure:"AMADEUS_RATE_LIMIT"`
}

// Cache holds the query-cache policy knobs.
type Cache struct {
	FlightTTL    time.Duration `mapstructure:"FLIGHT_CACHE_TTL"`
	CityTTL      time.Duration `mapstructure:"CITY_CACHE_TTL"`
	CityDebounce time.Duration `mapstructure:"CITY_SEARCH_DEBOUNCE"`
}

// Redis backs the outbound rate limiter shared across instances.
type Redis struct {
	Addr     string        `mapstructure:"REDIS_ADDR"`
	Password string        `mapstructure:"REDIS_PASSWORD"`
	DB       int           `mapstructure:"REDIS_DB"`
	Timeout  time.Duration `mapstructure:"REDIS_TIMEOUT"`
}
