package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

// robotsServer serves the given robots.txt body and counts how often it is
// requested. Every other path returns 200.
func robotsServer(t *testing.T, robotsBody string, robotsStatus int) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	robotsFetches := &atomic.Int32{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			robotsFetches.Add(1)
			w.WriteHeader(robotsStatus)
			fmt.Fprint(w, robotsBody)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)
	return server, robotsFetches
}

func newTestGate() *RobotsGate {
	return NewRobotsGate(newTestFetcher(), testUserAgent, testLogger())
}

func TestAllowed_DisallowedPath(t *testing.T) {
	server, _ := robotsServer(t, "User-agent: *\nDisallow: /private/\n", http.StatusOK)
	gate := newTestGate()

	if gate.Allowed(context.Background(), server.URL+"/private/secret.jpg") {
		t.Error("expected /private/ to be disallowed")
	}
	if !gate.Allowed(context.Background(), server.URL+"/public/ok.jpg") {
		t.Error("expected /public/ to be allowed")
	}
}

func TestAllowed_CachesPerHost(t *testing.T) {
	server, robotsFetches := robotsServer(t, "User-agent: *\nDisallow: /private/\n", http.StatusOK)
	gate := newTestGate()

	for i := 0; i < 3; i++ {
		gate.Allowed(context.Background(), fmt.Sprintf("%s/img/%d.jpg", server.URL, i))
	}

	if robotsFetches.Load() != 1 {
		t.Errorf("expected 1 robots.txt fetch, got %d", robotsFetches.Load())
	}
}

func TestAllowed_MissingRobots(t *testing.T) {
	server, _ := robotsServer(t, "", http.StatusNotFound)
	gate := newTestGate()

	if !gate.Allowed(context.Background(), server.URL+"/anything/goes.jpg") {
		t.Error("expected allow-all when robots.txt is missing")
	}
}

func TestAllowed_UnreachableHost(t *testing.T) {
	server, _ := robotsServer(t, "", http.StatusOK)
	serverURL := server.URL
	server.Close()

	gate := newTestGate()
	if !gate.Allowed(context.Background(), serverURL+"/image.jpg") {
		t.Error("expected allow-all when robots.txt cannot be fetched")
	}
}

func TestAllowed_UnparseableURL(t *testing.T) {
	gate := newTestGate()

	if !gate.Allowed(context.Background(), "http://example.com/%zz") {
		t.Error("expected unparseable URLs to pass through to the fetch")
	}
}

func TestAllowed_DisallowAll(t *testing.T) {
	server, _ := robotsServer(t, "User-agent: *\nDisallow: /\n", http.StatusOK)
	gate := newTestGate()

	if gate.Allowed(context.Background(), server.URL+"/wallpaper.jpg") {
		t.Error("expected everything to be disallowed")
	}
}
