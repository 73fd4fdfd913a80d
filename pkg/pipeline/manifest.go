package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"wallgrab/pkg/models"
	"wallgrab/pkg/utils"
)

// ManifestFilename is the manifest's name inside the run's output directory.
const ManifestFilename = "manifest.yaml"

// manifestWriter accumulates downloaded entries during a run and serializes
// the manifest once the run is over.
type manifestWriter struct {
	mu       sync.Mutex
	manifest models.RunManifest
}

func newManifestWriter(outputDir string) *manifestWriter {
	return &manifestWriter{
		manifest: models.RunManifest{
			RunID:     uuid.NewString(),
			StartedAt: time.Now().UTC(),
			OutputDir: outputDir,
		},
	}
}

// add records a downloaded outcome. Other outcomes are ignored.
func (m *manifestWriter) add(outcome models.DownloadOutcome) {
	if outcome.Status != models.StatusDownloaded {
		return
	}

	file := outcome.Path
	if rel, err := filepath.Rel(m.manifest.OutputDir, outcome.Path); err == nil {
		file = rel
	}

	m.mu.Lock()
	m.manifest.Images = append(m.manifest.Images, models.ManifestEntry{
		URL:       outcome.URL,
		File:      file,
		Category:  outcome.Category,
		SizeBytes: outcome.Size,
		SavedAt:   time.Now().UTC(),
	})
	m.mu.Unlock()
}

// write stamps the final counters and persists the manifest to the output
// directory.
func (m *manifestWriter) write(final models.Stats) error {
	m.mu.Lock()
	m.manifest.FinishedAt = time.Now().UTC()
	m.manifest.Stats = final
	data, err := yaml.Marshal(&m.manifest)
	m.mu.Unlock()
	if err != nil {
		return fmt.Errorf("%w: marshalling manifest: %v", utils.ErrFilesystem, err)
	}

	path := filepath.Join(m.manifest.OutputDir, ManifestFilename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: writing manifest '%s': %v", utils.ErrFilesystem, path, err)
	}
	return nil
}
