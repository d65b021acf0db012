package providers

import (
	"context"
	"encoding/json"

	"github.com/i474232898/weather-client/internal/weather"
)

// APIProvider implements weather.Fetcher against the weather dashboard API.
type APIProvider struct {
	baseURL  string
	executor *Executor
}

// NewAPIProvider creates a provider for the API rooted at baseURL.
func NewAPIProvider(baseURL string, executor *Executor) *APIProvider {
	return &APIProvider{
		baseURL:  baseURL,
		executor: executor,
	}
}

func (p *APIProvider) BaseURL() string {
	return p.baseURL
}

// Fetch builds the endpoint URL and executes it with the request's timeout and retry budget.
func (p *APIProvider) Fetch(ctx context.Context, ep weather.Endpoint, opts weather.RequestOptions) (json.RawMessage, error) {
	target, err := BuildURL(p.baseURL, ep, opts.Units)
	if err != nil {
		return nil, err
	}
	return p.executor.Execute(ctx, target, AttemptPolicy{
		Timeout:    opts.Timeout,
		MaxRetries: opts.MaxRetries,
	})
}

var _ weather.Fetcher = (*APIProvider)(nil)
