// Package cache holds the latest aggregated forecast per tracked location.
// Everything lives in memory; results are recomputed from scratch on every
// fetch, so losing the cache only costs one refresh cycle.
package cache

import (
	"sync"
	"time"

	"github.com/lox/cropsight/internal/models"
)

// Entry is one location's latest daily summary set.
type Entry struct {
	Location  models.Location
	Days      []models.ForecastDay
	FetchedAt time.Time
}

// Forecasts caches the newest aggregation result per location key. A publish
// is accepted only when the key is still tracked and no newer result has
// landed since the fetch was issued, so a late response for stale inputs can
// never overwrite fresher state.
type Forecasts struct {
	mu      sync.RWMutex
	tracked map[string]models.Location
	entries map[string]Entry
}

func NewForecasts() *Forecasts {
	return &Forecasts{
		tracked: make(map[string]models.Location),
		entries: make(map[string]Entry),
	}
}

// Track registers a location as a valid publish target.
func (f *Forecasts) Track(loc models.Location) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tracked[loc.Key()] = loc
}

// Tracked returns the registered locations.
func (f *Forecasts) Tracked() []models.Location {
	f.mu.RLock()
	defer f.mu.RUnlock()
	locs := make([]models.Location, 0, len(f.tracked))
	for _, loc := range f.tracked {
		locs = append(locs, loc)
	}
	return locs
}

// Publish stores a result fetched for loc at fetchedAt. It reports whether
// the entry was accepted; untracked locations and results older than the
// stored entry are discarded.
func (f *Forecasts) Publish(loc models.Location, days []models.ForecastDay, fetchedAt time.Time) bool {
	key := loc.Key()

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.tracked[key]; !ok {
		return false
	}
	if existing, ok := f.entries[key]; ok && existing.FetchedAt.After(fetchedAt) {
		return false
	}
	f.entries[key] = Entry{Location: loc, Days: days, FetchedAt: fetchedAt}
	return true
}

// Lookup returns the cached entry for a location, if any.
func (f *Forecasts) Lookup(loc models.Location) (Entry, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	entry, ok := f.entries[loc.Key()]
	return entry, ok
}
