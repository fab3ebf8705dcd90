// Package session holds the view state of an interactive analysis session
// and the transitions between screens.
package session

import (
	"errors"

	"github.com/sahanamn290/github-analysis/internal/ghclient"
	"github.com/sahanamn290/github-analysis/internal/model"
)

// Screen identifies the visible screen.
type Screen int

const (
	ScreenHome Screen = iota
	ScreenResults
)

func (s Screen) String() string {
	if s == ScreenResults {
		return "results"
	}
	return "home"
}

// Tab identifies the active tab on the results screen.
type Tab int

const (
	TabOverview Tab = iota
	TabProjects
)

func (t Tab) String() string {
	if t == TabProjects {
		return "projects"
	}
	return "overview"
}

// User-facing error messages.
const (
	MsgUserNotFound     = "User not found"
	MsgUserFetchFailed  = "Failed to fetch user data"
	MsgReposFetchFailed = "Failed to fetch repositories"
	MsgFetchFailed      = "Failed to fetch GitHub data"
)

// State is a snapshot of the session.
type State struct {
	// Search counts submitted searches. Persona results are tagged with it.
	Search uint64

	Screen     Screen
	Tab        Tab
	Query      string
	User       *model.User
	Repos      []model.Repository
	Loading    bool
	Err        string
	Insight    string
	Generating bool
	Filter     string
}

// FilteredRepos returns the repositories matching the current filter.
func (s State) FilteredRepos() []model.Repository {
	return model.FilterRepositories(s.Repos, s.Filter)
}

// ErrorMessage maps a search failure to the message shown to the user.
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ghclient.ErrUserNotFound):
		return MsgUserNotFound
	case errors.Is(err, ghclient.ErrFetchFailed):
		return MsgUserFetchFailed
	case errors.Is(err, ghclient.ErrRepoFetchFailed):
		return MsgReposFetchFailed
	default:
		return MsgFetchFailed
	}
}
