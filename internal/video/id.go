// Package video resolves platform video identifiers from user supplied URLs.
package video

import (
	"net/url"
	"strings"
)

var watchHosts = map[string]bool{
	"youtube.com":     true,
	"www.youtube.com": true,
	"m.youtube.com":   true,
}

// ExtractID returns the video ID encoded in rawURL. It understands short
// links (youtu.be/ID), watch pages (/watch?v=ID), embeds (/embed/ID) and
// the legacy /v/ID form. ok is false when no shape matches.
func ExtractID(rawURL string) (id string, ok bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", false
	}

	host := strings.ToLower(u.Hostname())
	switch {
	case host == "youtu.be":
		id = strings.TrimPrefix(u.Path, "/")
		if i := strings.Index(id, "/"); i >= 0 {
			id = id[:i]
		}
	case watchHosts[host]:
		switch {
		case u.Path == "/watch":
			id = u.Query().Get("v")
		case strings.HasPrefix(u.Path, "/embed/"):
			id = pathSegment(u.Path, 2)
		case strings.HasPrefix(u.Path, "/v/"):
			id = pathSegment(u.Path, 2)
		}
	}

	if id == "" {
		return "", false
	}
	return id, true
}

// pathSegment returns the n-th element of path split on "/" (element 0 is
// the empty string before the leading slash).
func pathSegment(path string, n int) string {
	parts := strings.Split(path, "/")
	if len(parts) <= n {
		return ""
	}
	return parts[n]
}
