// Package urlutil provides URL parsing utilities.
package urlutil

import (
	"net/url"
	"strings"
)

// Username extracts a GitHub login from user input. It accepts a bare
// login, an @-prefixed login, or a profile or repository URL such as
// https://github.com/owner/repo. Input that is none of these is returned
// trimmed and unchanged.
func Username(input string) string {
	s := strings.TrimSpace(input)
	s = strings.TrimPrefix(s, "@")
	if s == "" || !strings.Contains(s, "/") {
		return s
	}

	raw := s
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || !strings.EqualFold(strings.TrimPrefix(u.Hostname(), "www."), "github.com") {
		return s
	}

	// URL format: https://github.com/owner[/repo[/...]]
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		return s
	}
	return parts[0]
}
