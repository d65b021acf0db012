package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-client/internal/weather"
)

// Scheduler periodically warms the current weather cache for configured cities.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *weather.Service
	cities    []string
	interval  time.Duration
	ttl       time.Duration
}

// New creates a new Scheduler. Cached entries are stored with ttl.
func New(cities []string, interval, ttl time.Duration, service *weather.Service) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		cities:    cities,
		interval:  interval,
		ttl:       ttl,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.cities) == 0 {
		log.Println("scheduler: no cities configured; nothing to warm")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(s.warm)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// warm fetches every configured city through the cache, in parallel.
func (s *Scheduler) warm() {
	log.Println("scheduler: running cache warm job")

	var wg sync.WaitGroup
	for _, city := range s.cities {
		wg.Add(1)
		go func() {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()

			resp, err := s.service.GetCurrentWeatherCached(ctx, city, s.ttl)
			if err != nil {
				log.Printf("scheduler: warm failed for %s: %v", city, err)
				return
			}
			if resp.Data != nil {
				log.Printf("DEBUG: scheduler: %s is %s", city, resp.Data.Condition())
			}
		}()
	}
	wg.Wait()
	log.Println("scheduler: completed cache warm job")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
