package fetch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"wallgrab/pkg/config"
	"wallgrab/pkg/utils"
)

const testUserAgent = "wallgrab-test/1.0"

// discardLogger returns a logger that discards output
func discardLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testLogger() *logrus.Entry {
	return logrus.NewEntry(discardLogger())
}

// testClient returns an http.Client suitable for testing
func testClient() *http.Client {
	return &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

func testHTTPConfig() config.HTTPClientConfig {
	return config.HTTPClientConfig{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		DialerTimeout:       15 * time.Second,
		DialerKeepAlive:     30 * time.Second,
		MaxRedirects:        3,
	}
}

func newTestFetcher() *Fetcher {
	return NewFetcher(testClient(), testUserAgent, testLogger())
}

func TestDo_Success(t *testing.T) {
	var (
		mu       sync.Mutex
		gotAgent string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		gotAgent = r.Header.Get("User-Agent")
		mu.Unlock()
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("fake image bytes"))
	}))
	t.Cleanup(server.Close)

	res, err := newTestFetcher().Do(context.Background(), server.URL+"/space.png")

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if string(res.Body) != "fake image bytes" {
		t.Errorf("unexpected body: %q", res.Body)
	}
	if res.ContentType != "image/png" {
		t.Errorf("expected content type image/png, got %q", res.ContentType)
	}
	mu.Lock()
	agent := gotAgent
	mu.Unlock()
	if agent != testUserAgent {
		t.Errorf("expected User-Agent %q, got %q", testUserAgent, agent)
	}
}

func TestDo_NonSuccessStatus(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantReason string
	}{
		{"404 Not Found", http.StatusNotFound, "http status 404"},
		{"403 Forbidden", http.StatusForbidden, "http status 403"},
		{"429 Too Many Requests", http.StatusTooManyRequests, "http status 429"},
		{"500 Internal Server Error", http.StatusInternalServerError, "http status 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))
			t.Cleanup(server.Close)

			res, err := newTestFetcher().Do(context.Background(), server.URL)

			if err == nil {
				t.Fatal("expected error for non-2xx status")
			}
			if res != nil {
				t.Error("expected nil result on status error")
			}
			if !errors.Is(err, utils.ErrHTTPStatus) {
				t.Errorf("expected ErrHTTPStatus, got: %v", err)
			}
			if got := utils.FailureReason(err); got != tt.wantReason {
				t.Errorf("expected reason %q, got %q", tt.wantReason, got)
			}
		})
	}
}

func TestDo_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	server.Close() // Refuses connections from here on

	res, err := newTestFetcher().Do(context.Background(), server.URL)

	if err == nil {
		t.Fatal("expected error for unreachable server")
	}
	if res != nil {
		t.Error("expected nil result on transport error")
	}
	if !errors.Is(err, utils.ErrTransport) {
		t.Errorf("expected ErrTransport, got: %v", err)
	}
}

func TestDo_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	client := NewClient(testHTTPConfig(), 50*time.Millisecond, discardLogger())
	fetcher := NewFetcher(client, testUserAgent, testLogger())

	_, err := fetcher.Do(context.Background(), server.URL)

	if err == nil {
		t.Fatal("expected error for timed out request")
	}
	if !errors.Is(err, utils.ErrTransport) {
		t.Errorf("expected ErrTransport, got: %v", err)
	}
}

func TestDo_ContextCancelled(t *testing.T) {
	attempts := &atomic.Int32{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestFetcher().Do(ctx, server.URL)

	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if !errors.Is(err, utils.ErrTransport) {
		t.Errorf("expected ErrTransport, got: %v", err)
	}
	if attempts.Load() != 0 {
		t.Errorf("expected 0 requests to reach server, got %d", attempts.Load())
	}
}

func TestDo_InvalidURL(t *testing.T) {
	_, err := newTestFetcher().Do(context.Background(), "http://example.com/%zz")

	if err == nil {
		t.Fatal("expected error for invalid URL")
	}
	if !errors.Is(err, utils.ErrRequestCreation) {
		t.Errorf("expected ErrRequestCreation, got: %v", err)
	}
}

func TestNewClient_RedirectCap(t *testing.T) {
	attempts := &atomic.Int32{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		http.Redirect(w, r, "/loop", http.StatusFound)
	}))
	t.Cleanup(server.Close)

	client := NewClient(testHTTPConfig(), 5*time.Second, discardLogger())
	fetcher := NewFetcher(client, testUserAgent, testLogger())

	_, err := fetcher.Do(context.Background(), server.URL)

	if err == nil {
		t.Fatal("expected error for redirect loop")
	}
	if !errors.Is(err, utils.ErrTransport) {
		t.Errorf("expected ErrTransport, got: %v", err)
	}
	if !strings.Contains(err.Error(), "stopped after 3 redirects") {
		t.Errorf("expected redirect cap message, got: %v", err)
	}
	// Initial request plus the hops allowed by MaxRedirects.
	if attempts.Load() != 3 {
		t.Errorf("expected 3 requests before the cap, got %d", attempts.Load())
	}
}
