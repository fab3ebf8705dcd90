package ghclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v57/github"
	"github.com/sahanamn290/github-analysis/internal/constants"
	"github.com/sahanamn290/github-analysis/internal/log"
	"github.com/sahanamn290/github-analysis/internal/model"
	"golang.org/x/oauth2"
)

var (
	// ErrUserNotFound is returned when the profile endpoint answers 404.
	ErrUserNotFound = errors.New("user not found")

	// ErrFetchFailed is returned for any other failed profile request.
	ErrFetchFailed = errors.New("failed to fetch GitHub data")

	// ErrRepoFetchFailed is returned when any repository page fails.
	ErrRepoFetchFailed = errors.New("failed to fetch repositories")
)

// Client wraps the GitHub REST API client.
type Client struct {
	client       *gh.Client
	authed       bool
	suggestLimit int
}

// clientOptions configures NewClient.
type clientOptions struct {
	token        string
	baseURL      string
	http         *http.Client
	suggestLimit int
}

// Option is a functional option for NewClient.
type Option func(*clientOptions)

// WithToken authenticates requests with a personal access token.
// An empty token leaves the client anonymous.
func WithToken(token string) Option {
	return func(o *clientOptions) {
		o.token = token
	}
}

// WithBaseURL points the client at a different REST API root,
// e.g. a GitHub Enterprise instance or a test server.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		o.baseURL = baseURL
	}
}

// WithHTTPClient sets the underlying HTTP client for anonymous requests.
func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) {
		o.http = c
	}
}

// WithSuggestLimit sets how many users a search returns.
// Values outside 1..100 fall back to the default.
func WithSuggestLimit(n int) Option {
	return func(o *clientOptions) {
		o.suggestLimit = n
	}
}

// NewClient creates a new GitHub client. Without a token, requests are
// anonymous and subject to the lower unauthenticated rate limit.
func NewClient(ctx context.Context, opts ...Option) (*Client, error) {
	o := &clientOptions{suggestLimit: constants.SuggestLimit}
	for _, opt := range opts {
		opt(o)
	}

	httpClient := o.http
	if o.token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: o.token},
		)
		httpClient = oauth2.NewClient(ctx, ts)
	}

	client := gh.NewClient(httpClient)

	if o.baseURL != "" && o.baseURL != constants.DefaultGitHubBaseURL {
		base := o.baseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub base URL %q: %w", o.baseURL, err)
		}
		client.BaseURL = u
	}

	log.Debug("github client ready", "base_url", client.BaseURL.String(), "authenticated", o.token != "")

	limit := o.suggestLimit
	if limit < 1 || limit > 100 {
		limit = constants.SuggestLimit
	}

	return &Client{
		client:       client,
		authed:       o.token != "",
		suggestLimit: limit,
	}, nil
}

// Authenticated reports whether requests carry a token.
func (c *Client) Authenticated() bool {
	return c.authed
}

// GetUser fetches a single user profile.
func (c *Client) GetUser(ctx context.Context, username string) (*model.User, error) {
	log.Debug("fetching profile", "user", username)

	user, _, err := c.client.Users.Get(ctx, username)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, username)
		}
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	return userFromGitHub(user), nil
}

// ListRepositoriesPage fetches one page of a user's repositories,
// most recently updated first. No filtering is applied.
func (c *Client) ListRepositoriesPage(ctx context.Context, username string, page int) ([]model.Repository, error) {
	log.Debug("fetching repositories", "user", username, "page", page)

	opts := &gh.RepositoryListByUserOptions{
		Sort: constants.RepoSort,
		ListOptions: gh.ListOptions{
			Page:    page,
			PerPage: constants.RepoPageSize,
		},
	}

	repos, _, err := c.client.Repositories.ListByUser(ctx, username, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories for %s (page %d): %w", username, page, err)
	}

	result := make([]model.Repository, 0, len(repos))
	for _, r := range repos {
		result = append(result, repoFromGitHub(r))
	}
	return result, nil
}

// SearchUsers searches users whose login or name matches query.
// Errors are returned as-is; callers decide whether to surface them.
func (c *Client) SearchUsers(ctx context.Context, query string) ([]model.Suggestion, error) {
	log.Debug("searching users", "query", query)

	opts := &gh.SearchOptions{
		ListOptions: gh.ListOptions{
			PerPage: c.suggestLimit,
		},
	}

	result, _, err := c.client.Search.Users(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	suggestions := make([]model.Suggestion, 0, len(result.Users))
	for _, u := range result.Users {
		suggestions = append(suggestions, model.Suggestion{
			ID:        u.GetID(),
			Login:     u.GetLogin(),
			AvatarURL: u.GetAvatarURL(),
		})
	}
	return suggestions, nil
}

// RateLimits fetches the current GitHub API rate limit status.
func (c *Client) RateLimits(ctx context.Context) (*gh.RateLimits, error) {
	limits, _, err := c.client.RateLimit.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get rate limits: %w", err)
	}
	return limits, nil
}

// isNotFound reports whether err is a GitHub 404 response.
func isNotFound(err error) bool {
	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		return ghErr.Response.StatusCode == http.StatusNotFound
	}
	return false
}

// userFromGitHub converts a go-github user to a model.User.
func userFromGitHub(u *gh.User) *model.User {
	return &model.User{
		Login:           u.GetLogin(),
		Name:            u.GetName(),
		AvatarURL:       u.GetAvatarURL(),
		Bio:             u.GetBio(),
		Company:         u.GetCompany(),
		Location:        u.GetLocation(),
		Blog:            u.GetBlog(),
		TwitterUsername: u.GetTwitterUsername(),
		HTMLURL:         u.GetHTMLURL(),
		PublicRepos:     u.GetPublicRepos(),
		Followers:       u.GetFollowers(),
		Following:       u.GetFollowing(),
		CreatedAt:       u.GetCreatedAt().Time,
	}
}

// repoFromGitHub converts a go-github repository to a model.Repository.
func repoFromGitHub(r *gh.Repository) model.Repository {
	var topics []string
	if len(r.Topics) > 0 {
		topics = append(topics, r.Topics...)
	}
	return model.Repository{
		ID:          r.GetID(),
		Name:        r.GetName(),
		Description: r.GetDescription(),
		Language:    r.GetLanguage(),
		Topics:      topics,
		Stars:       r.GetStargazersCount(),
		Forks:       r.GetForksCount(),
		OwnerLogin:  r.GetOwner().GetLogin(),
		Fork:        r.GetFork(),
		HTMLURL:     r.GetHTMLURL(),
		UpdatedAt:   r.GetUpdatedAt().Time,
	}
}
