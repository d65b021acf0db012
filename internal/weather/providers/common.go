package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-client/internal/weather"
)

// BackoffConfig controls exponential backoff behaviour.
type BackoffConfig struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration // 0 = uncapped
}

// DefaultBackoff doubles from one second: 1s, 2s, 4s, ...
func DefaultBackoff() BackoffConfig {
	return BackoffConfig{InitialInterval: time.Second}
}

// BreakerConfig configures the optional circuit breaker.
type BreakerConfig struct {
	Name                string
	MaxRequests         uint32
	Interval            time.Duration
	Timeout             time.Duration
	ConsecutiveFailures uint32
}

// AttemptPolicy bounds one logical request.
type AttemptPolicy struct {
	Timeout    time.Duration
	MaxRetries int
}

var (
	ErrCircuitOpen   = errors.New("circuit breaker open")
	errNoHTTPClient  = errors.New("http client not configured")
	errInvalidConfig = errors.New("invalid retry configuration")
)

// NewCircuitBreaker builds a breaker that trips after cfg.ConsecutiveFailures
// failed attempts in a row.
func NewCircuitBreaker(cfg BreakerConfig) *gobreaker.CircuitBreaker {
	threshold := cfg.ConsecutiveFailures
	if threshold == 0 {
		threshold = 5
	}
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("INFO: circuit breaker %s changed from %s to %s", name, from, to)
		},
	})
}

// Executor runs GET requests with a per-attempt timeout, bounded retries with
// exponential backoff and an optional circuit breaker.
type Executor struct {
	client  *http.Client
	backoff BackoffConfig
	circuit *gobreaker.CircuitBreaker

	wait func(ctx context.Context, d time.Duration) error
}

// NewExecutor creates an Executor. circuit may be nil.
func NewExecutor(client *http.Client, backoff BackoffConfig, circuit *gobreaker.CircuitBreaker) *Executor {
	return &Executor{
		client:  client,
		backoff: backoff,
		circuit: circuit,
		wait:    sleepContext,
	}
}

// Execute fetches target and returns its validated JSON object body.
// Attempts are sequential; when all fail, the last attempt's error is returned.
func (e *Executor) Execute(ctx context.Context, target string, policy AttemptPolicy) (json.RawMessage, error) {
	if e.client == nil {
		return nil, errNoHTTPClient
	}
	if policy.MaxRetries < 0 || policy.Timeout <= 0 || e.backoff.InitialInterval <= 0 {
		return nil, errInvalidConfig
	}

	attempts := policy.MaxRetries + 1
	var lastErr error

	for attempt := 0; attempt < attempts; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		body, err := e.attempt(ctx, target, policy.Timeout)
		if err == nil {
			return body, nil
		}

		// If circuit is open, propagate immediately.
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", ErrCircuitOpen, err)
		}

		lastErr = err
		if attempt == attempts-1 {
			break
		}

		if err := e.wait(ctx, e.delay(attempt)); err != nil {
			return nil, err
		}
	}

	log.Printf("ERROR: fetching %s failed after %d attempts: %v", target, attempts, lastErr)
	return nil, lastErr
}

// delay returns InitialInterval * 2^attempt, capped at MaxInterval when set.
// Without a cap the delay saturates at the largest time.Duration.
func (e *Executor) delay(attempt int) time.Duration {
	limit := time.Duration(math.MaxInt64)
	if e.backoff.MaxInterval > 0 {
		limit = e.backoff.MaxInterval
	}

	// Shifting past limit>>attempt would exceed limit or overflow.
	if attempt >= 63 || e.backoff.InitialInterval > limit>>uint(attempt) {
		return limit
	}
	return e.backoff.InitialInterval << uint(attempt)
}

// attempt performs one request bounded by timeout.
func (e *Executor) attempt(ctx context.Context, target string, timeout time.Duration) (json.RawMessage, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	run := func() (interface{}, error) {
		req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, target, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Content-Type", "application/json")

		resp, err := e.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		return decodeResponse(resp)
	}

	var (
		result interface{}
		err    error
	)
	if e.circuit != nil {
		result, err = e.circuit.Execute(run)
	} else {
		result, err = run()
	}

	if err != nil {
		var apiErr *weather.APIError
		if ctx.Err() == nil && errors.Is(attemptCtx.Err(), context.DeadlineExceeded) && !errors.As(err, &apiErr) {
			return nil, fmt.Errorf("%w after %s", weather.ErrTimeout, timeout)
		}
		return nil, err
	}

	body, ok := result.(json.RawMessage)
	if !ok {
		return nil, fmt.Errorf("unexpected result type %T", result)
	}
	return body, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
