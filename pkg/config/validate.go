package config

import (
	"fmt"
	"time"
)

// Validate checks Config fields and applies defaults for unset values.
// Returns collected warnings and any fatal error.
// Modifies receiver in place to apply defaults.
func (c *Config) Validate() (warnings []string, err error) {
	// OutputDir
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}

	// ConcurrentDownloads
	if c.ConcurrentDownloads < 0 {
		warnings = append(warnings, fmt.Sprintf(
			"concurrent_downloads cannot be negative, defaulting to %d", DefaultConcurrentDownloads))
		c.ConcurrentDownloads = 0
	}
	if c.ConcurrentDownloads == 0 {
		c.ConcurrentDownloads = DefaultConcurrentDownloads
	}

	// FetchTimeout
	if c.FetchTimeout < 0 {
		warnings = append(warnings, fmt.Sprintf(
			"fetch_timeout cannot be negative, defaulting to %v", DefaultFetchTimeout))
		c.FetchTimeout = 0
	}
	if c.FetchTimeout == 0 {
		c.FetchTimeout = DefaultFetchTimeout
	}

	// UserAgent
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}

	warnings = append(warnings, c.Filter.validate()...)
	c.validateHTTPClientSettings()

	return warnings, nil // Config validation never fails fatally
}

// validate checks filter thresholds and applies defaults in place.
func (f *FilterConfig) validate() (warnings []string) {
	if f.MinWidth < 0 {
		warnings = append(warnings, "filter.min_width cannot be negative, using default")
		f.MinWidth = 0
	}
	if f.MinWidth == 0 {
		f.MinWidth = DefaultMinWidth
	}

	if f.MinHeight < 0 {
		warnings = append(warnings, "filter.min_height cannot be negative, using default")
		f.MinHeight = 0
	}
	if f.MinHeight == 0 {
		f.MinHeight = DefaultMinHeight
	}

	if f.MinAspectRatio < 0 {
		warnings = append(warnings, "filter.min_aspect_ratio cannot be negative, using default")
		f.MinAspectRatio = 0
	}
	if f.MinAspectRatio == 0 {
		f.MinAspectRatio = DefaultMinAspectRatio
	}

	if f.MaxAspectRatio < 0 {
		warnings = append(warnings, "filter.max_aspect_ratio cannot be negative, using default")
		f.MaxAspectRatio = 0
	}
	if f.MaxAspectRatio == 0 {
		f.MaxAspectRatio = DefaultMaxAspectRatio
	}

	if f.MinFileSize < 0 {
		warnings = append(warnings, "filter.min_file_size cannot be negative, using default")
		f.MinFileSize = 0
	}
	if f.MinFileSize == 0 {
		f.MinFileSize = DefaultMinFileSize
	}

	// The filter itself does not enforce ordered bounds; an inverted range is
	// legal but rejects every image.
	if f.MinAspectRatio > f.MaxAspectRatio {
		warnings = append(warnings, fmt.Sprintf(
			"filter.min_aspect_ratio (%.2f) > filter.max_aspect_ratio (%.2f), no image can pass the aspect check",
			f.MinAspectRatio, f.MaxAspectRatio))
	}

	return warnings
}

// validateHTTPClientSettings applies defaults to HTTP client settings.
func (c *Config) validateHTTPClientSettings() {
	h := &c.HTTPClientSettings
	if h.MaxIdleConns <= 0 {
		h.MaxIdleConns = 100
	}
	if h.MaxIdleConnsPerHost <= 0 {
		h.MaxIdleConnsPerHost = 2
	}
	if h.IdleConnTimeout <= 0 {
		h.IdleConnTimeout = 90 * time.Second
	}
	if h.TLSHandshakeTimeout <= 0 {
		h.TLSHandshakeTimeout = 10 * time.Second
	}
	if h.DialerTimeout <= 0 {
		h.DialerTimeout = 15 * time.Second
	}
	if h.DialerKeepAlive <= 0 {
		h.DialerKeepAlive = 30 * time.Second
	}
	if h.MaxRedirects <= 0 {
		h.MaxRedirects = 10
	}
}
