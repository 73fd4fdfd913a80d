// Package extract turns an HTML page into image download candidates.
package extract

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"wallgrab/pkg/models"
	"wallgrab/pkg/utils"
)

// Extractor scans page markup for img tags and resolves them into absolute
// candidate URLs with whatever text metadata the page offers.
type Extractor struct {
	log *logrus.Entry
}

// New creates an Extractor.
func New(log *logrus.Entry) *Extractor {
	return &Extractor{log: log.WithField("component", "extract")}
}

// Images parses the document and returns one candidate per unique image URL,
// in document order. The page URL is the base for resolving relative sources.
// Candidates carry alt, title, and enclosing figcaption text as metadata when
// present, so the category scoring downstream has something to work with.
func (e *Extractor) Images(r io.Reader, pageURL string) ([]models.ImageCandidate, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing page url '%s': %v", utils.ErrExtraction, pageURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing html: %v", utils.ErrExtraction, err)
	}

	seen := make(map[string]struct{})
	var candidates []models.ImageCandidate

	doc.Find("img").Each(func(index int, element *goquery.Selection) {
		src, exists := element.Attr("src")
		if !exists || src == "" {
			// Lazy-loaded images often keep the real source in data-src.
			src, _ = element.Attr("data-src")
		}
		if src == "" || strings.HasPrefix(src, "data:") {
			return
		}

		imgURL, parseErr := base.Parse(src)
		if parseErr != nil {
			e.log.Warnf("Skipping image with invalid src '%s': %v", src, parseErr)
			return
		}
		if imgURL.Scheme != "http" && imgURL.Scheme != "https" {
			return
		}

		key := dedupeKey(imgURL)
		if _, found := seen[key]; found {
			return
		}
		seen[key] = struct{}{}

		metadata := make(map[string]string)
		if alt, ok := element.Attr("alt"); ok {
			if alt = strings.TrimSpace(alt); alt != "" {
				metadata["alt"] = alt
			}
		}
		if title, ok := element.Attr("title"); ok {
			if title = strings.TrimSpace(title); title != "" {
				metadata["title"] = title
			}
		}
		// A figcaption on the enclosing figure is usually the richest text.
		if figure := element.Closest("figure"); figure.Length() > 0 {
			if caption := strings.TrimSpace(figure.Find("figcaption").First().Text()); caption != "" {
				metadata["description"] = caption
			}
		}

		candidates = append(candidates, models.ImageCandidate{URL: imgURL.String(), Metadata: metadata})
	})

	e.log.WithFields(logrus.Fields{
		"page":   pageURL,
		"images": len(candidates),
	}).Debug("Extracted image candidates")
	return candidates, nil
}
