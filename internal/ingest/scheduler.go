package ingest

import (
	"context"
	"log"
	"time"

	"github.com/lox/cropsight/internal/cache"
	"github.com/lox/cropsight/internal/forecast"
	"github.com/lox/cropsight/internal/metrics"
	"github.com/lox/cropsight/internal/models"
)

// Scheduler periodically refreshes forecasts for the tracked locations and
// publishes the aggregated result into the cache.
type Scheduler struct {
	client    *Client
	forecasts *cache.Forecasts
	interval  time.Duration
}

func NewScheduler(client *Client, forecasts *cache.Forecasts, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = 3 * time.Hour
	}
	return &Scheduler{
		client:    client,
		forecasts: forecasts,
		interval:  interval,
	}
}

func (s *Scheduler) Run(ctx context.Context) {
	s.refreshAll(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("scheduler: shutting down")
			return
		case <-ticker.C:
			s.refreshAll(ctx)
		}
	}
}

func (s *Scheduler) refreshAll(ctx context.Context) {
	for _, loc := range s.forecasts.Tracked() {
		if err := s.refresh(ctx, loc); err != nil {
			log.Printf("scheduler: refresh %s: %v", loc.Key(), err)
		}
	}
}

func (s *Scheduler) refresh(ctx context.Context, loc models.Location) error {
	fetchedAt := time.Now().UTC()
	entries, err := s.client.Fetch(ctx, loc)
	if err != nil {
		return err
	}

	days := forecast.AggregateDaily(entries)
	if !s.forecasts.Publish(loc, days, fetchedAt) {
		log.Printf("scheduler: discarded stale result for %s", loc.Key())
		return nil
	}

	metrics.ForecastsAggregated.WithLabelValues(loc.Key()).Inc()
	log.Printf("scheduler: refreshed %s: %d entries -> %d days", loc.Key(), len(entries), len(days))
	return nil
}
