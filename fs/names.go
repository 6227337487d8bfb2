// Package fs provides file-based storage for harvested links and artifacts.
package fs

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// MaxNameLength bounds the readable part of names produced by FileName.
const MaxNameLength = 120

// FileName converts a URL to a file name stem without extension.
// Example: https://example.go.id/berita/2024/a.html → example.go.id_berita_2024_a
//
// URLs with a query string, or whose name would exceed MaxNameLength, get a
// hash of the full URL appended so distinct URLs never share a name.
func FileName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return fmt.Sprintf("url_%016x", xxhash.Sum64String(rawURL))
	}

	path := strings.TrimSuffix(u.Path, "/")
	for _, ext := range []string{".html", ".htm", ".pdf"} {
		path = strings.TrimSuffix(path, ext)
	}

	name := sanitize(u.Host + path)
	if u.RawQuery == "" && len(name) <= MaxNameLength {
		return name
	}
	if len(name) > MaxNameLength {
		name = name[:MaxNameLength]
	}
	return fmt.Sprintf("%s_%016x", name, xxhash.Sum64String(rawURL))
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}
