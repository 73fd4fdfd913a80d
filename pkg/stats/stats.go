// Package stats aggregates terminal download outcomes for a single run.
package stats

import (
	"sync"

	"wallgrab/pkg/models"
)

// Collector accumulates outcome counters for one pipeline run. Safe for
// concurrent use by the download workers; ownership of the totals stays with
// the run that created it.
type Collector struct {
	mu    sync.Mutex
	stats models.Stats
}

// NewCollector creates a Collector expecting the given number of candidates.
func NewCollector(total int) *Collector {
	return &Collector{
		stats: models.Stats{
			Total:      total,
			Categories: make(map[string]int),
		},
	}
}

// Record folds one terminal outcome into the counters. Downloaded outcomes
// also bump their category counter.
func (c *Collector) Record(outcome models.DownloadOutcome) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch outcome.Status {
	case models.StatusDownloaded:
		c.stats.Downloaded++
		if outcome.Category != "" {
			c.stats.Categories[outcome.Category]++
		}
	case models.StatusFiltered:
		c.stats.Filtered++
	case models.StatusFailed:
		c.stats.Failed++
	}
}

// Snapshot returns a copy of the counters with its own category map, safe to
// retain after the run finishes.
func (c *Collector) Snapshot() models.Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := c.stats
	out.Categories = make(map[string]int, len(c.stats.Categories))
	for category, count := range c.stats.Categories {
		out.Categories[category] = count
	}
	return out
}
