package extract

import (
	"net"
	"net/url"
	"strings"
)

// dedupeKey canonicalizes an image URL for duplicate detection. It case folds
// the scheme and host and drops default ports and fragments, so the same file
// referenced as HTTP://Example.com:80/a.png and http://example.com/a.png#hero
// collapses to one candidate. The query string is kept: CDNs serve distinct
// image variants through it.
// Does not modify the input *url.URL.
func dedupeKey(u *url.URL) string {
	key := *u

	key.Scheme = strings.ToLower(key.Scheme)
	key.Host = strings.ToLower(key.Host)

	if host, port, err := net.SplitHostPort(key.Host); err == nil {
		if (key.Scheme == "http" && port == "80") ||
			(key.Scheme == "https" && port == "443") {
			key.Host = host
		}
	}

	key.Fragment = ""

	return key.String()
}
