package weather

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// GetMultiple fetches current weather for every city concurrently. The result
// has one item per input, in input order; a failing city never affects the others.
func (s *Service) GetMultiple(ctx context.Context, cities []string, opts ...Option) []BatchResult {
	results := make([]BatchResult, len(cities))

	var g errgroup.Group
	if s.batchLimit > 0 {
		g.SetLimit(s.batchLimit)
	}

	for i, city := range cities {
		g.Go(func() error {
			resp, err := s.GetCurrentWeather(ctx, city, opts...)
			results[i] = BatchResult{City: city}
			if err != nil {
				msg := err.Error()
				if msg == "" {
					msg = "Unknown error"
				}
				results[i].Error = msg
				return nil
			}
			results[i].Data = resp
			return nil
		})
	}

	// Every goroutine returns nil; failures live in results.
	_ = g.Wait()
	return results
}
