package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/i474232898/weather-client/internal/cache"
)

// Service exposes the typed weather API operations on top of a Fetcher.
// It owns the default request options and the response cache.
type Service struct {
	fetcher    Fetcher
	cache      Cache
	batchLimit int

	mu       sync.RWMutex
	defaults RequestOptions
	initial  RequestOptions
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithCache replaces the in-memory cache used by the *Cached operations.
func WithCache(c Cache) ServiceOption {
	return func(s *Service) {
		if c != nil {
			s.cache = c
		}
	}
}

// WithoutCache disables caching; every *Cached call reaches the API.
func WithoutCache() ServiceOption {
	return func(s *Service) {
		s.cache = noopCache{}
	}
}

// WithBatchLimit bounds the number of concurrent calls made by GetMultiple.
// Zero or less means unlimited.
func WithBatchLimit(n int) ServiceOption {
	return func(s *Service) {
		s.batchLimit = n
	}
}

// NewService creates a new Service.
func NewService(fetcher Fetcher, defaults RequestOptions, opts ...ServiceOption) *Service {
	s := &Service{
		fetcher:  fetcher,
		cache:    cache.NewMemory[any](DefaultCacheTTL),
		defaults: defaults,
		initial:  defaults,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultOptions returns a copy of the current default request options.
func (s *Service) DefaultOptions() RequestOptions {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defaults
}

// SetDefaultOptions merges opts into the default request options.
func (s *Service) SetDefaultOptions(opts ...Option) {
	s.mu.Lock()
	s.defaults = s.defaults.Merge(opts...)
	s.mu.Unlock()
}

// Reset restores the construction-time defaults and empties the cache.
func (s *Service) Reset() {
	s.mu.Lock()
	s.defaults = s.initial
	s.mu.Unlock()
	s.cache.Clear()
}

// resolve merges opts over the defaults and rejects unsupported units.
func (s *Service) resolve(opts []Option) (RequestOptions, error) {
	ro := s.DefaultOptions().Merge(opts...)
	units, err := ParseUnits(string(ro.Units))
	if err != nil {
		return ro, ErrUnitsInvalid
	}
	ro.Units = units
	return ro, nil
}

// query resolves opts and fetches ep into T.
func query[T any](ctx context.Context, s *Service, ep Endpoint, opts []Option) (*T, error) {
	ro, err := s.resolve(opts)
	if err != nil {
		return nil, err
	}
	return fetchInto[T](ctx, s, ep, ro)
}

// fetchInto runs the request and decodes the validated body into T.
func fetchInto[T any](ctx context.Context, s *Service, ep Endpoint, opts RequestOptions) (*T, error) {
	raw, err := s.fetcher.Fetch(ctx, ep, opts)
	if err != nil {
		return nil, err
	}
	return decodeInto[T](raw)
}

func decodeInto[T any](raw json.RawMessage) (*T, error) {
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return &out, nil
}

// GetCurrentWeather fetches current conditions for a named location.
func (s *Service) GetCurrentWeather(ctx context.Context, city string, opts ...Option) (*WeatherResponse, error) {
	name, err := normalizeCity(city)
	if err != nil {
		return nil, err
	}
	return query[WeatherResponse](ctx, s, NamedEndpoint(KindWeather, name), opts)
}

// GetCurrentWeatherByCoords fetches current conditions for a coordinate pair.
func (s *Service) GetCurrentWeatherByCoords(ctx context.Context, lat, lon float64, opts ...Option) (*WeatherResponse, error) {
	c := Coordinates{Lat: lat, Lon: lon}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return query[WeatherResponse](ctx, s, CoordsEndpoint(KindWeather, c), opts)
}

// GetForecast fetches the forecast for a named location.
func (s *Service) GetForecast(ctx context.Context, city string, opts ...Option) (*ForecastResponse, error) {
	name, err := normalizeCity(city)
	if err != nil {
		return nil, err
	}
	return query[ForecastResponse](ctx, s, NamedEndpoint(KindForecast, name), opts)
}

// GetForecastByCoords fetches the forecast for a coordinate pair.
func (s *Service) GetForecastByCoords(ctx context.Context, lat, lon float64, opts ...Option) (*ForecastResponse, error) {
	c := Coordinates{Lat: lat, Lon: lon}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return query[ForecastResponse](ctx, s, CoordsEndpoint(KindForecast, c), opts)
}

// GetAlerts fetches active alerts for a named location.
func (s *Service) GetAlerts(ctx context.Context, city string, opts ...Option) (*AlertsResponse, error) {
	name, err := normalizeCity(city)
	if err != nil {
		return nil, err
	}
	return query[AlertsResponse](ctx, s, NamedEndpoint(KindAlerts, name), opts)
}

// GetAlertsByCoords fetches active alerts for a coordinate pair.
func (s *Service) GetAlertsByCoords(ctx context.Context, lat, lon float64, opts ...Option) (*AlertsResponse, error) {
	c := Coordinates{Lat: lat, Lon: lon}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return query[AlertsResponse](ctx, s, CoordsEndpoint(KindAlerts, c), opts)
}

// GetWeatherStats fetches aggregate statistics for a named location using the
// default options.
func (s *Service) GetWeatherStats(ctx context.Context, city string) (map[string]any, error) {
	name, err := normalizeCity(city)
	if err != nil {
		return nil, err
	}
	stats, err := query[map[string]any](ctx, s, NamedEndpoint(KindStats, name), nil)
	if err != nil {
		return nil, err
	}
	return *stats, nil
}

// HealthCheck queries the API health endpoint.
func (s *Service) HealthCheck(ctx context.Context) (*HealthStatus, error) {
	return query[HealthStatus](ctx, s, Endpoint{Path: "/health"}, nil)
}

// IsServiceAvailable reports whether the health check succeeds. Failures are swallowed.
func (s *Service) IsServiceAvailable(ctx context.Context) bool {
	_, err := s.HealthCheck(ctx)
	return err == nil
}

// GetAPIInfo returns the API's self description, or a locally built summary
// when /info cannot be fetched.
func (s *Service) GetAPIInfo(ctx context.Context) map[string]any {
	info, err := query[map[string]any](ctx, s, Endpoint{Path: "/info"}, nil)
	if err == nil && *info != nil {
		return *info
	}

	log.Printf("INFO: API info not available, using local summary: %v", err)
	return map[string]any{
		"baseUrl":        s.fetcher.BaseURL(),
		"defaultOptions": s.DefaultOptions(),
		"cacheSize":      s.CacheSize(),
	}
}

// SearchLocation resolves a free-text query to candidate locations using the
// current weather lookup. Failures yield an empty list.
func (s *Service) SearchLocation(ctx context.Context, query string) []LocationMatch {
	resp, err := s.GetCurrentWeather(ctx, query)
	if err != nil {
		log.Printf("INFO: location search failed for %q: %v", query, err)
		return []LocationMatch{}
	}
	if !resp.Success || resp.Data == nil {
		return []LocationMatch{}
	}

	country := resp.Data.Sys.Country
	if country == "" {
		country = "Unknown"
	}
	return []LocationMatch{{
		Name:    resp.Data.Name,
		Coord:   resp.Data.Coord,
		Country: country,
	}}
}
