// Package pipeline drives image candidates through fetch, filter,
// categorize, and persist, and reports aggregate statistics for the run.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"

	"wallgrab/pkg/category"
	"wallgrab/pkg/config"
	"wallgrab/pkg/fetch"
	"wallgrab/pkg/filter"
	"wallgrab/pkg/models"
	"wallgrab/pkg/naming"
	"wallgrab/pkg/progress"
	"wallgrab/pkg/stats"
	"wallgrab/pkg/utils"
)

// Pipeline owns the collaborators for download runs: the shared fetcher, the
// policy objects, the optional robots gate, and the progress sink.
type Pipeline struct {
	cfg        config.Config
	fetcher    *fetch.Fetcher
	robots     *fetch.RobotsGate // nil when robots checking is off
	filter     *filter.Filter
	categories *category.Categorizer
	notifier   progress.Notifier
	log        *logrus.Entry
}

// New assembles a Pipeline from validated configuration. A nil notifier
// discards progress events.
func New(cfg config.Config, log *logrus.Logger, notifier progress.Notifier) *Pipeline {
	if notifier == nil {
		notifier = progress.Nop
	}
	entry := logrus.NewEntry(log)

	client := fetch.NewClient(cfg.HTTPClientSettings, cfg.FetchTimeout, log)
	fetcher := fetch.NewFetcher(client, cfg.UserAgent, entry)

	var gate *fetch.RobotsGate
	if cfg.RespectRobots {
		gate = fetch.NewRobotsGate(fetcher, cfg.UserAgent, entry)
	}

	categorizer := category.Default()
	if !cfg.CategorizeEnabled() {
		categorizer = category.Disabled()
	}

	return &Pipeline{
		cfg:        cfg,
		fetcher:    fetcher,
		robots:     gate,
		filter:     filter.New(cfg.Filter, entry),
		categories: categorizer,
		notifier:   notifier,
		log:        entry.WithField("component", "pipeline"),
	}
}

// Fetcher exposes the pipeline's fetcher so callers can reuse the same
// client and User-Agent for page scans.
func (p *Pipeline) Fetcher() *fetch.Fetcher {
	return p.fetcher
}

// Run processes every candidate to a terminal state and returns the final
// counters. Concurrency is capped by concurrent_downloads; cancellation
// marks all not-yet-started candidates as failed, so the counters still sum
// to the total. The returned error is non-nil only when the run could not
// start (output directory) or the context was cancelled.
func (p *Pipeline) Run(ctx context.Context, candidates []models.ImageCandidate) (models.Stats, error) {
	if err := os.MkdirAll(p.cfg.OutputDir, 0o755); err != nil {
		return models.Stats{}, fmt.Errorf("%w: creating output directory '%s': %v", utils.ErrFilesystem, p.cfg.OutputDir, err)
	}

	workers := p.cfg.ConcurrentDownloads
	if workers < 1 {
		p.log.Warnf("concurrent_downloads %d invalid, using 1", workers)
		workers = 1
	}

	runLog := p.log.WithFields(logrus.Fields{
		"candidates": len(candidates),
		"workers":    workers,
		"output_dir": p.cfg.OutputDir,
	})
	runLog.Info("Starting download run")

	collector := stats.NewCollector(len(candidates))

	var manifest *manifestWriter
	if p.cfg.WriteManifest {
		manifest = newManifestWriter(p.cfg.OutputDir)
	}

	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup

	for _, cand := range candidates {
		if err := sem.Acquire(ctx, 1); err != nil {
			// Context is gone; every remaining candidate still gets its
			// terminal outcome so the counters sum to the total.
			p.finish(collector, manifest, models.DownloadOutcome{
				URL:    cand.URL,
				Status: models.StatusFailed,
				Reason: "cancelled before fetch",
			})
			continue
		}

		wg.Add(1)
		go func(cand models.ImageCandidate) {
			defer wg.Done()
			defer sem.Release(1)
			p.finish(collector, manifest, p.process(ctx, cand))
		}(cand)
	}

	wg.Wait()

	snapshot := collector.Snapshot()
	if manifest != nil {
		if err := manifest.write(snapshot); err != nil {
			runLog.WithError(err).Error("Writing run manifest failed")
		}
	}

	runLog.WithFields(logrus.Fields{
		"downloaded": snapshot.Downloaded,
		"filtered":   snapshot.Filtered,
		"failed":     snapshot.Failed,
	}).Info("Download run finished")
	return snapshot, ctx.Err()
}

// process carries one candidate from pending to its terminal outcome.
func (p *Pipeline) process(ctx context.Context, cand models.ImageCandidate) models.DownloadOutcome {
	candLog := p.log.WithField("url", cand.URL)
	candLog.Debug("Fetching image...")

	if p.robots != nil && !p.robots.Allowed(ctx, cand.URL) {
		candLog.Debug("Blocked by robots.txt")
		return models.DownloadOutcome{
			URL:    cand.URL,
			Status: models.StatusFailed,
			Reason: utils.FailureReason(utils.ErrRobotsDisallowed),
		}
	}

	res, err := p.fetcher.Do(ctx, cand.URL)
	if err != nil {
		candLog.WithField("error_kind", utils.ErrorKind(err)).Warnf("Fetch failed: %v", err)
		return models.DownloadOutcome{
			URL:    cand.URL,
			Status: models.StatusFailed,
			Reason: utils.FailureReason(err),
		}
	}

	// The candidate's own URL joins the metadata so keyword scoring can see
	// path segments like /nature/ or file names.
	metadata := make(map[string]string, len(cand.Metadata)+1)
	for k, v := range cand.Metadata {
		metadata[k] = v
	}
	metadata["url"] = cand.URL

	if !p.filter.Accepts(res.Body, metadata) {
		candLog.Debug("Filtered out")
		return models.DownloadOutcome{URL: cand.URL, Status: models.StatusFiltered}
	}

	label := p.categories.Categorize(metadata)

	dir := filepath.Join(p.cfg.OutputDir, label)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return p.failedFile(cand.URL, fmt.Errorf("creating category directory '%s': %v", dir, err))
	}

	ext := naming.Extension(cand.URL, res.ContentType)
	filePath := filepath.Join(dir, naming.Filename(cand.URL, metadata, ext))
	if err := os.WriteFile(filePath, res.Body, 0o644); err != nil {
		return p.failedFile(cand.URL, fmt.Errorf("writing '%s': %v", filePath, err))
	}

	candLog.WithFields(logrus.Fields{
		"path":     filePath,
		"category": label,
		"bytes":    len(res.Body),
	}).Debug("Saved image")
	return models.DownloadOutcome{
		URL:      cand.URL,
		Status:   models.StatusDownloaded,
		Path:     filePath,
		Category: label,
		Size:     int64(len(res.Body)),
	}
}

// finish records the outcome and emits its progress event. It is the single
// terminal transition point: exactly one call per candidate.
func (p *Pipeline) finish(collector *stats.Collector, manifest *manifestWriter, outcome models.DownloadOutcome) {
	collector.Record(outcome)
	if manifest != nil {
		manifest.add(outcome)
	}
	p.notifier.Notify(progress.Event{
		Kind:   eventKind(outcome.Status),
		URL:    outcome.URL,
		Detail: eventDetail(outcome),
	})
}

func eventKind(status models.CandidateStatus) progress.Kind {
	switch status {
	case models.StatusDownloaded:
		return progress.KindDownloaded
	case models.StatusFiltered:
		return progress.KindFiltered
	default:
		return progress.KindFailed
	}
}

// eventDetail is the file path on success and the reason on failure.
// Filtered events carry no detail.
func eventDetail(outcome models.DownloadOutcome) string {
	switch outcome.Status {
	case models.StatusDownloaded:
		return outcome.Path
	case models.StatusFailed:
		return outcome.Reason
	default:
		return ""
	}
}

func (p *Pipeline) failedFile(url string, err error) models.DownloadOutcome {
	wrapped := fmt.Errorf("%w: %v", utils.ErrFilesystem, err)
	p.log.WithField("url", url).WithError(wrapped).Warn("Filesystem failure")
	return models.DownloadOutcome{
		URL:    url,
		Status: models.StatusFailed,
		Reason: utils.FailureReason(wrapped),
	}
}
