package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"wallgrab/pkg/utils"
)

// Result is a successful response with its body fully read.
type Result struct {
	Body        []byte
	ContentType string // Content-Type header as sent; may be empty
}

// Fetcher performs single-attempt GET requests with a fixed User-Agent,
// using an underlying http.Client. Each candidate gets exactly one attempt;
// a failure becomes that candidate's terminal outcome.
type Fetcher struct {
	client    *http.Client
	userAgent string
	log       *logrus.Entry
}

// NewFetcher creates a Fetcher around the shared client.
func NewFetcher(client *http.Client, userAgent string, log *logrus.Entry) *Fetcher {
	return &Fetcher{
		client:    client,
		userAgent: userAgent,
		log:       log.WithField("component", "fetch"),
	}
}

// Do issues a GET for rawURL and reads the whole body. Errors carry the
// sentinel matching their phase: ErrRequestCreation before the request
// exists, ErrTransport for anything before or during the response (timeouts
// included), ErrHTTPStatus for a non-2xx status line.
func (f *Fetcher) Do(ctx context.Context, rawURL string) (*Result, error) {
	reqLog := f.log.WithField("url", rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrRequestCreation, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		reqLog.WithError(err).Debug("Request failed")
		return nil, fmt.Errorf("%w: %v", utils.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		reqLog.WithField("status_code", resp.StatusCode).Debug("Non-success status")
		// Drain so the connection can be reused before the deferred close.
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w %d", utils.ErrHTTPStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		reqLog.WithError(err).Debug("Body read failed")
		return nil, fmt.Errorf("%w: reading body: %v", utils.ErrTransport, err)
	}

	reqLog.WithFields(logrus.Fields{
		"status_code": resp.StatusCode,
		"bytes":       len(body),
	}).Debug("Fetched")
	return &Result{Body: body, ContentType: resp.Header.Get("Content-Type")}, nil
}
