// Package ghclient provides GitHub API client functionality.
package ghclient

import (
	"context"

	"github.com/sahanamn290/github-analysis/internal/model"
)

// ProfileFetcher fetches a single user profile.
type ProfileFetcher interface {
	GetUser(ctx context.Context, username string) (*model.User, error)
}

// RepositoryPager fetches one page of a user's repository listing.
type RepositoryPager interface {
	ListRepositoriesPage(ctx context.Context, username string, page int) ([]model.Repository, error)
}

// UserSearcher searches users by login prefix.
type UserSearcher interface {
	SearchUsers(ctx context.Context, query string) ([]model.Suggestion, error)
}

// Fetcher defines the raw GitHub API operations used by the application.
// This interface enables replacing the GitHub client with fakes in unit tests.
type Fetcher interface {
	ProfileFetcher
	RepositoryPager
	UserSearcher
}

// Ensure Client implements Fetcher interface.
var _ Fetcher = (*Client)(nil)
