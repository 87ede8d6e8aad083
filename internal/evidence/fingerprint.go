// Package evidence implements the market-evidence pipeline: URL
// canonicalization, signal classification, query diversification, multi-source
// aggregation, and bounded summarization.
package evidence

import (
	"net/url"
	"strings"
)

// Fingerprint canonicalizes a URL into a stable dedup key. The URL is
// lowercased, its query string and fragment are discarded, and trailing
// slashes are stripped, so two URLs differing only by case, trailing slash,
// or query parameters share a fingerprint. Malformed input degrades to the
// lowercased string itself rather than failing; the result feeds
// deduplication, not validation.
func Fingerprint(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))

	u, err := url.Parse(lowered)
	if err != nil {
		return strings.TrimRight(lowered, "/")
	}

	return strings.TrimRight(u.Scheme+"://"+u.Host+u.Path, "/")
}
