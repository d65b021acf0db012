package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// DefaultCacheTTL is the default expiry of the cache a Service creates for itself.
const DefaultCacheTTL = 15 * time.Minute

// CacheKey derives the cache key of a resource lookup.
func CacheKey(kind ResourceKind, location string, units Units) string {
	return fmt.Sprintf("%s_%s_%s", kind, location, units)
}

// cached serves key from the cache while it is live, otherwise fetches ep and
// stores the validated body for ttl. ttl <= 0 leaves the expiry to the cache's
// default. Failed fetches are not stored.
//
// Entries hold the raw body and every hit decodes a fresh value, so callers
// never share the stored entry. Two concurrent misses on the same key both
// fetch; the later write wins.
func cached[T any](ctx context.Context, s *Service, key string, ttl time.Duration, ep Endpoint, ro RequestOptions) (*T, error) {
	if v, ok := s.cache.Get(key); ok {
		if raw, ok := v.(json.RawMessage); ok {
			if out, err := decodeInto[T](raw); err == nil {
				return out, nil
			}
		}
	}

	raw, err := s.fetcher.Fetch(ctx, ep, ro)
	if err != nil {
		return nil, err
	}
	out, err := decodeInto[T](raw)
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, append(json.RawMessage(nil), raw...), ttl)
	return out, nil
}

// GetCurrentWeatherCached returns current weather for city, served from the
// cache for ttl after a successful fetch.
func (s *Service) GetCurrentWeatherCached(ctx context.Context, city string, ttl time.Duration, opts ...Option) (*WeatherResponse, error) {
	name, err := normalizeCity(city)
	if err != nil {
		return nil, err
	}
	ro, err := s.resolve(opts)
	if err != nil {
		return nil, err
	}
	key := CacheKey(KindWeather, name, ro.Units)

	return cached[WeatherResponse](ctx, s, key, ttl, NamedEndpoint(KindWeather, name), ro)
}

// GetForecastCached is the cached variant of GetForecast.
func (s *Service) GetForecastCached(ctx context.Context, city string, ttl time.Duration, opts ...Option) (*ForecastResponse, error) {
	name, err := normalizeCity(city)
	if err != nil {
		return nil, err
	}
	ro, err := s.resolve(opts)
	if err != nil {
		return nil, err
	}
	key := CacheKey(KindForecast, name, ro.Units)

	return cached[ForecastResponse](ctx, s, key, ttl, NamedEndpoint(KindForecast, name), ro)
}

// ClearCache empties the response cache.
func (s *Service) ClearCache() {
	s.cache.Clear()
}

// CacheSize reports the number of cached entries.
func (s *Service) CacheSize() int {
	return s.cache.Len()
}
