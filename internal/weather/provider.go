package weather

import (
	"context"
	"encoding/json"
	"time"
)

// Fetcher performs one logical request against the weather API and returns
// the validated JSON object body.
type Fetcher interface {
	Fetch(ctx context.Context, ep Endpoint, opts RequestOptions) (json.RawMessage, error)
	BaseURL() string
}

// Cache is the contract the time-bounded response cache must satisfy.
// Set with ttl <= 0 applies the cache's own default expiry.
type Cache interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration)
	Clear()
	Len() int
}

// noopCache never stores anything.
type noopCache struct{}

func (noopCache) Get(string) (any, bool)         { return nil, false }
func (noopCache) Set(string, any, time.Duration) {}
func (noopCache) Clear()                         {}
func (noopCache) Len() int                       { return 0 }
