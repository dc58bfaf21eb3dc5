package varnish

import (
	"fmt"
	"net/url"
	"strings"
)

// banEscaper quotes the metacharacters that would change the meaning
// of a ban pattern. Only '?', '[' and ']' are quoted; a literal dot is
// left alone and matches itself plus any single character.
var banEscaper = strings.NewReplacer("?", `\?`, "[", `\[`, "]", `\]`)

// BanExpression derives a ban expression from a URL. The expression
// matches the URL's host (case insensitively, port included when one
// is given) and its path plus query; with recursive set the path
// matches as a prefix instead of exactly.
//
// The URL must carry a host, so absolute URLs only.
func BanExpression(rawURL string, recursive bool) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("Cannot ban %q: %w", rawURL, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrMissingHost, rawURL)
	}

	host := strings.ToLower(u.Host)

	path := u.Path
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}

	anchor := "$"
	if recursive {
		anchor = ""
	}

	return fmt.Sprintf(`req.http.host ~ "^(?i)%s$" && req.url ~ "^%s%s"`,
		banEscaper.Replace(host), banEscaper.Replace(path), anchor), nil
}
