// Package source assembles the candidate list for a run from direct URLs,
// URL list files, or a scanned web page.
package source

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/sirupsen/logrus"

	"wallgrab/pkg/extract"
	"wallgrab/pkg/fetch"
	"wallgrab/pkg/models"
	"wallgrab/pkg/naming"
	"wallgrab/pkg/utils"
)

// FromURLs wraps plain URLs as candidates with no metadata. Blank entries
// are dropped.
func FromURLs(urls []string) []models.ImageCandidate {
	candidates := make([]models.ImageCandidate, 0, len(urls))
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		candidates = append(candidates, models.ImageCandidate{URL: u})
	}
	return candidates
}

// FromFile reads one URL per line, skipping blank lines and '#' comments.
func FromFile(filePath string) ([]models.ImageCandidate, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: opening url file: %v", utils.ErrFilesystem, err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading url file: %v", utils.ErrFilesystem, err)
	}
	return FromURLs(urls), nil
}

// IsDirectImageURL reports whether the URL path ends in a known image
// extension, distinguishing direct image links from gallery pages.
func IsDirectImageURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	ext := strings.ToLower(path.Ext(u.Path))
	for _, supported := range naming.SupportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

// Scanner discovers candidates by downloading a page and extracting its
// image tags.
type Scanner struct {
	fetcher   *fetch.Fetcher
	extractor *extract.Extractor
	log       *logrus.Entry
}

// NewScanner creates a Scanner that fetches pages through the given Fetcher.
func NewScanner(fetcher *fetch.Fetcher, log *logrus.Entry) *Scanner {
	return &Scanner{
		fetcher:   fetcher,
		extractor: extract.New(log),
		log:       log.WithField("component", "source"),
	}
}

// FromPage fetches pageURL and returns one candidate per unique image on it.
func (s *Scanner) FromPage(ctx context.Context, pageURL string) ([]models.ImageCandidate, error) {
	res, err := s.fetcher.Do(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching page '%s': %v", utils.ErrExtraction, pageURL, err)
	}

	candidates, err := s.extractor.Images(bytes.NewReader(res.Body), pageURL)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"page":       pageURL,
		"candidates": len(candidates),
	}).Info("Page scan complete")
	return candidates, nil
}
