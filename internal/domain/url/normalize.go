// Package url provides URL helpers shared by the burn pipeline and the CLI.
package url

import (
	"net/url"
	"strings"
)

// BlankPage is the URL of a placeholder tab.
const BlankPage = "about:blank"

// Normalize adds https:// prefix if missing for URL-like inputs.
// Returns the input unchanged if it already has a scheme or doesn't look like a URL.
func Normalize(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}

	// Already has scheme
	switch {
	case strings.HasPrefix(input, "http://"):
		return input
	case strings.HasPrefix(input, "https://"):
		return input
	case strings.HasPrefix(input, "file://"):
		return input
	case strings.HasPrefix(input, "about:"):
		return input
	}

	// Looks like a URL (contains . and no spaces)
	if LooksLikeHost(input) {
		return "https://" + input
	}

	return input
}

// LooksLikeHost reports whether input could be a bare hostname such as
// "github.com" or "localhost".
func LooksLikeHost(input string) bool {
	if input == "" || strings.ContainsAny(input, " \t") {
		return false
	}
	return strings.Contains(input, ".") || input == "localhost"
}

// ExtractHost returns the lower-cased hostname of a URL without port.
// Bare hostnames are accepted. Returns "" for URLs without a host
// (about:, file:, data:).
func ExtractHost(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return ""
	}
	if !strings.Contains(rawURL, "://") {
		if !LooksLikeHost(strings.SplitN(rawURL, "/", 2)[0]) {
			return ""
		}
		rawURL = "https://" + rawURL
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return ""
	}
	return strings.TrimSuffix(strings.ToLower(parsed.Hostname()), ".")
}
