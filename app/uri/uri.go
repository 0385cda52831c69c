package uri

import (
	"net/url"
	"strings"
)

// IsValid reports whether s is an absolute URI: a scheme plus either an authority
// or an opaque part (urn:, mailto:, tag:). Hierarchical web schemes need a host.
func IsValid(s string) bool {
	if s == "" || strings.TrimSpace(s) != s || strings.ContainsAny(s, " \t\r\n") {
		return false
	}

	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return false
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https", "ftp", "ftps":
		return u.Host != ""
	}

	return u.Host != "" || u.Opaque != "" || u.Path != ""
}
