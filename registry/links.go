package registry

import (
	"net/url"
	"strings"
)

// matchingLinks returns the hrefs containing pattern, resolved against
// pageURL, deduplicated in document order.
func matchingLinks(pageURL string, hrefs []string, pattern string) []string {
	if pattern == "" {
		return nil
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var links []string
	for _, href := range hrefs {
		if !strings.Contains(href, pattern) || isNonHTTPLink(href) {
			continue
		}
		resolved := resolveURL(base, href)
		if resolved == "" || seen[resolved] {
			continue
		}
		seen[resolved] = true
		links = append(links, resolved)
	}
	return links
}

// resolveURL resolves href against base with the fragment stripped.
// Returns an empty string if href cannot be parsed.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	return resolved.String()
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}

// host returns the host of rawURL, or rawURL itself if it has none.
func host(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}
