package weather

import "time"

// RequestOptions controls a single logical request.
type RequestOptions struct {
	Units      Units         `json:"units"`
	Timeout    time.Duration `json:"timeout"`
	MaxRetries int           `json:"retries"`
}

// DefaultRequestOptions returns the production profile.
func DefaultRequestOptions() RequestOptions {
	return RequestOptions{
		Units:      UnitsMetric,
		Timeout:    10 * time.Second,
		MaxRetries: 2,
	}
}

// Option overrides one field of RequestOptions for a call.
type Option func(*RequestOptions)

// WithUnits selects the unit system. Values other than metric and imperial
// are rejected with ErrUnitsInvalid when the call runs.
func WithUnits(u Units) Option {
	return func(o *RequestOptions) {
		o.Units = u
	}
}

// WithTimeout sets the per-attempt timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *RequestOptions) {
		o.Timeout = d
	}
}

// WithRetries sets the number of retries after the first attempt.
func WithRetries(n int) Option {
	return func(o *RequestOptions) {
		o.MaxRetries = n
	}
}

// Merge returns a copy of o with opts applied.
func (o RequestOptions) Merge(opts ...Option) RequestOptions {
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
