package fetch

import (
	"context"
	"net/url"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/temoto/robotstxt"
)

// RobotsGate decides whether a URL may be fetched under its host's
// robots.txt rules. Parsed files are cached per host; a host whose
// robots.txt cannot be fetched or parsed is cached as nil, which allows
// everything.
type RobotsGate struct {
	fetcher *Fetcher
	agent   string

	cacheMu sync.Mutex
	cache   map[string]*robotstxt.RobotsData // host -> parsed data (or nil)

	log *logrus.Entry
}

// NewRobotsGate creates a RobotsGate that fetches robots.txt through the
// given Fetcher and evaluates rules for the given user agent.
func NewRobotsGate(fetcher *Fetcher, agent string, log *logrus.Entry) *RobotsGate {
	return &RobotsGate{
		fetcher: fetcher,
		agent:   agent,
		cache:   make(map[string]*robotstxt.RobotsData),
		log:     log.WithField("component", "robots"),
	}
}

// Allowed reports whether the configured agent may fetch rawURL.
// Returns true when rules cannot be obtained (missing file, network error,
// parse error), matching the usual crawler convention.
func (rg *RobotsGate) Allowed(ctx context.Context, rawURL string) bool {
	targetURL, err := url.Parse(rawURL)
	if err != nil {
		return true // Unparseable URLs fail in the fetch itself
	}

	data := rg.robotsData(ctx, targetURL)
	if data == nil {
		return true
	}
	return data.TestAgent(targetURL.RequestURI(), rg.agent)
}

// robotsData returns the cached rules for the target's host, fetching them
// on first sight. The cache key keeps the port: the same address can serve
// different rules on different ports.
func (rg *RobotsGate) robotsData(ctx context.Context, targetURL *url.URL) *robotstxt.RobotsData {
	host := targetURL.Host

	rg.cacheMu.Lock()
	data, found := rg.cache[host]
	rg.cacheMu.Unlock()
	if found {
		return data
	}

	robotsURL := &url.URL{Scheme: targetURL.Scheme, Host: host, Path: "/robots.txt"}
	if robotsURL.Scheme != "http" && robotsURL.Scheme != "https" {
		robotsURL.Scheme = "https"
	}
	hostLog := rg.log.WithFields(logrus.Fields{"host": host, "robots_url": robotsURL.String()})
	hostLog.Debug("Fetching robots.txt...")

	res, err := rg.fetcher.Do(ctx, robotsURL.String())
	if err != nil {
		hostLog.Debugf("robots.txt unavailable, allowing host: %v", err)
		return rg.store(host, nil)
	}

	parsed, err := robotstxt.FromBytes(res.Body)
	if err != nil {
		hostLog.Warnf("robots.txt unparseable, allowing host: %v", err)
		return rg.store(host, nil)
	}

	hostLog.Debug("Parsed robots.txt")
	return rg.store(host, parsed)
}

func (rg *RobotsGate) store(host string, data *robotstxt.RobotsData) *robotstxt.RobotsData {
	rg.cacheMu.Lock()
	rg.cache[host] = data
	rg.cacheMu.Unlock()
	return data
}
