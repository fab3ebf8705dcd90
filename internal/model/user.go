// Package model contains domain types for the github-analysis application.
// These types are independent of any external GitHub library.
package model

import (
	"strings"
	"time"
)

// User is a GitHub user profile as shown in the profile header.
type User struct {
	Login           string    `json:"login"`
	Name            string    `json:"name,omitempty"`
	AvatarURL       string    `json:"avatar_url,omitempty"`
	Bio             string    `json:"bio,omitempty"`
	Company         string    `json:"company,omitempty"`
	Location        string    `json:"location,omitempty"`
	Blog            string    `json:"blog,omitempty"`
	TwitterUsername string    `json:"twitter_username,omitempty"`
	HTMLURL         string    `json:"html_url"`
	PublicRepos     int       `json:"public_repos"`
	Followers       int       `json:"followers"`
	Following       int       `json:"following"`
	CreatedAt       time.Time `json:"created_at"`
}

// DisplayName returns the user's name, falling back to the login.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if strings.TrimSpace(u.Name) != "" {
		return u.Name
	}
	return u.Login
}

// Suggestion is a partial profile returned by a username prefix search.
type Suggestion struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// SameLogin reports whether two GitHub logins identify the same account.
// Logins are case-insensitive on GitHub.
func SameLogin(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
