package model

import (
	"strings"
	"time"
)

// Repository is a repository owned by the searched user.
type Repository struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Language    string    `json:"language,omitempty"`
	Topics      []string  `json:"topics,omitempty"`
	Stars       int       `json:"stargazers_count"`
	Forks       int       `json:"forks_count"`
	OwnerLogin  string    `json:"owner"`
	Fork        bool      `json:"fork"`
	HTMLURL     string    `json:"html_url"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsOwnedBy reports whether the repository is an original (non-fork)
// repository owned by login.
func (r Repository) IsOwnedBy(login string) bool {
	return !r.Fork && SameLogin(r.OwnerLogin, login)
}

// Matches reports whether the name, description, or language contains
// the filter text, ignoring case. An empty filter matches everything.
func (r Repository) Matches(filter string) bool {
	f := strings.ToLower(strings.TrimSpace(filter))
	if f == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Name), f) ||
		strings.Contains(strings.ToLower(r.Description), f) ||
		strings.Contains(strings.ToLower(r.Language), f)
}

// FilterRepositories returns the repositories matching filter, preserving order.
func FilterRepositories(repos []Repository, filter string) []Repository {
	if strings.TrimSpace(filter) == "" {
		return repos
	}
	var result []Repository
	for _, r := range repos {
		if r.Matches(filter) {
			result = append(result, r)
		}
	}
	return result
}

// LanguageStat is one entry in a language distribution.
type LanguageStat struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}
