package models

import "time"

// ImageCandidate is one URL plus its associated text metadata awaiting
// processing. Metadata keys are optional: "title", "alt", "description", and
// "url" (self-referential, merged in by the pipeline before filtering).
type ImageCandidate struct {
	URL      string
	Metadata map[string]string
}

// DownloadOutcome records the terminal classification of one candidate.
// Exactly one outcome exists per candidate per run.
type DownloadOutcome struct {
	URL      string
	Status   CandidateStatus // downloaded, filtered, or failed
	Path     string          // Final file path (downloaded only)
	Category string          // Category label (downloaded only)
	Size     int64           // Stored byte count (downloaded only)
	Reason   string          // Human-readable failure reason (failed only)
}

// Stats is the aggregate result snapshot of one pipeline run.
type Stats struct {
	Total      int            `yaml:"total"`
	Downloaded int            `yaml:"downloaded"`
	Filtered   int            `yaml:"filtered"`
	Failed     int            `yaml:"failed"`
	Categories map[string]int `yaml:"categories,omitempty"`
}

// RunManifest holds all metadata written for a single pipeline run.
type RunManifest struct {
	RunID      string          `yaml:"run_id"`
	StartedAt  time.Time       `yaml:"started_at"`
	FinishedAt time.Time       `yaml:"finished_at"`
	OutputDir  string          `yaml:"output_dir"`
	Stats      Stats           `yaml:"stats"`
	Images     []ManifestEntry `yaml:"images,omitempty"`
}

// ManifestEntry describes one downloaded image in the run manifest.
type ManifestEntry struct {
	URL       string    `yaml:"url"`
	File      string    `yaml:"file"` // Relative to the run output dir
	Category  string    `yaml:"category"`
	SizeBytes int64     `yaml:"size_bytes"`
	SavedAt   time.Time `yaml:"saved_at"`
}
