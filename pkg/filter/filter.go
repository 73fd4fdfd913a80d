// Package filter decides whether fetched image bytes meet the configured
// quality thresholds.
package filter

import (
	"bytes"
	"image"

	"github.com/sirupsen/logrus"

	"wallgrab/pkg/config"

	// Decoders registered for image.DecodeConfig.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Filter is a pure predicate over fetched image bytes. It keeps no mutable
// state and is safe for concurrent use by many workers.
type Filter struct {
	cfg config.FilterConfig
	log *logrus.Entry
}

// New builds a Filter from validated thresholds.
func New(cfg config.FilterConfig, log *logrus.Entry) *Filter {
	return &Filter{cfg: cfg, log: log.WithField("component", "filter")}
}

// Accepts reports whether the image passes every threshold: minimum byte
// count, decodability, minimum resolution, and inclusive aspect ratio bounds.
// Undecodable bytes are a rejection rather than an error: the bytes were
// retrieved, they just aren't a usable image.
func (f *Filter) Accepts(data []byte, metadata map[string]string) bool {
	if int64(len(data)) < f.cfg.MinFileSize {
		f.log.WithFields(logrus.Fields{
			"size":     len(data),
			"min_size": f.cfg.MinFileSize,
		}).Debug("Rejected: below minimum file size")
		return false
	}

	imgCfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		f.log.WithError(err).Debug("Rejected: undecodable image data")
		return false
	}

	if imgCfg.Width < f.cfg.MinWidth || imgCfg.Height < f.cfg.MinHeight {
		f.log.WithFields(logrus.Fields{
			"width":      imgCfg.Width,
			"height":     imgCfg.Height,
			"min_width":  f.cfg.MinWidth,
			"min_height": f.cfg.MinHeight,
		}).Debug("Rejected: below minimum resolution")
		return false
	}

	// height == 0 never survives a successful decode, but guard the division
	// anyway: aspect 0 falls below any positive lower bound.
	aspect := 0.0
	if imgCfg.Height > 0 {
		aspect = float64(imgCfg.Width) / float64(imgCfg.Height)
	}
	if aspect < f.cfg.MinAspectRatio || aspect > f.cfg.MaxAspectRatio {
		f.log.WithFields(logrus.Fields{
			"aspect":     aspect,
			"min_aspect": f.cfg.MinAspectRatio,
			"max_aspect": f.cfg.MaxAspectRatio,
		}).Debug("Rejected: aspect ratio out of bounds")
		return false
	}

	f.log.WithFields(logrus.Fields{
		"format": format,
		"width":  imgCfg.Width,
		"height": imgCfg.Height,
	}).Debug("Image passed filters")
	return true
}
