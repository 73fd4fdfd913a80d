package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"wallgrab/pkg/utils"
)

// Defaults applied by Validate when the corresponding field is unset.
const (
	DefaultOutputDir           = "wallpapers"
	DefaultConcurrentDownloads = 5
	DefaultFetchTimeout        = 30 * time.Second
	DefaultMinWidth            = 1920
	DefaultMinHeight           = 1080
	DefaultMinAspectRatio      = 1.5
	DefaultMaxAspectRatio      = 3.0
	DefaultMinFileSize         = int64(100 * 1024)
)

// DefaultUserAgent is sent with every request unless overridden.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// FilterConfig holds the acceptance thresholds applied to fetched image bytes
type FilterConfig struct {
	MinWidth       int     `yaml:"min_width"`        // Minimum width in pixels
	MinHeight      int     `yaml:"min_height"`       // Minimum height in pixels
	MinAspectRatio float64 `yaml:"min_aspect_ratio"` // Inclusive lower bound on width/height
	MaxAspectRatio float64 `yaml:"max_aspect_ratio"` // Inclusive upper bound on width/height
	MinFileSize    int64   `yaml:"min_file_size"`    // Minimum byte count
}

// HTTPClientConfig holds settings for the shared HTTP client
type HTTPClientConfig struct {
	MaxIdleConns        int           `yaml:"max_idle_conns,omitempty"`          // Max total idle connections
	MaxIdleConnsPerHost int           `yaml:"max_idle_conns_per_host,omitempty"` // Max idle connections per host
	IdleConnTimeout     time.Duration `yaml:"idle_conn_timeout,omitempty"`       // Timeout for idle connections
	TLSHandshakeTimeout time.Duration `yaml:"tls_handshake_timeout,omitempty"`   // Timeout for TLS handshake
	DialerTimeout       time.Duration `yaml:"dialer_timeout,omitempty"`          // Connection dial timeout
	DialerKeepAlive     time.Duration `yaml:"dialer_keep_alive,omitempty"`       // TCP keep-alive interval
	MaxRedirects        int           `yaml:"max_redirects,omitempty"`           // Redirect hop cap per request
}

// Config holds the full configuration for one pipeline run
type Config struct {
	OutputDir           string           `yaml:"output_dir"`
	Filter              FilterConfig     `yaml:"filter"`
	ConcurrentDownloads int              `yaml:"concurrent_downloads"`
	FetchTimeout        time.Duration    `yaml:"fetch_timeout"`
	Categorize          *bool            `yaml:"categorize,omitempty"` // nil = enabled
	UserAgent           string           `yaml:"user_agent,omitempty"`
	RespectRobots       bool             `yaml:"respect_robots,omitempty"`
	WriteManifest       bool             `yaml:"write_manifest,omitempty"`
	HTTPClientSettings  HTTPClientConfig `yaml:"http_client,omitempty"`
}

// Load reads and unmarshals a yaml config file. Omitted fields remain at
// their zero values; call Validate afterwards to apply defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading config %q: %v", utils.ErrConfigValidation, path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: parsing config %q: %v", utils.ErrConfigValidation, path, err)
	}
	return &cfg, nil
}

// CategorizeEnabled reports whether keyword categorization is on (the default
// when the field is absent).
func (c *Config) CategorizeEnabled() bool {
	if c.Categorize != nil {
		return *c.Categorize
	}
	return true
}
