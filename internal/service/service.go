// Package service orchestrates GitHub lookups, persona generation and
// session state transitions.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sahanamn290/github-analysis/internal/ghclient"
	"github.com/sahanamn290/github-analysis/internal/log"
	"github.com/sahanamn290/github-analysis/internal/model"
	"github.com/sahanamn290/github-analysis/internal/persona"
	"github.com/sahanamn290/github-analysis/internal/session"
	"github.com/sahanamn290/github-analysis/internal/suggest"
	"golang.org/x/sync/errgroup"
)

// Result holds everything fetched for one username.
type Result struct {
	User         *model.User
	Repositories []model.Repository
}

// Progress receives notifications while a search runs. Any field may be nil.
// Callbacks are invoked from worker goroutines.
type Progress struct {
	ProfileDone func(err error)
	ReposPage   func(page, kept int)
	ReposDone   func(count int, err error)
}

// Service ties the GitHub client to the persona narrator.
type Service struct {
	fetcher  ghclient.Fetcher
	narrator *persona.Narrator
}

// New creates a Service. narrator may be nil, in which case every
// persona request yields persona.FailureMessage.
func New(fetcher ghclient.Fetcher, narrator *persona.Narrator) *Service {
	if narrator == nil {
		narrator = persona.NewNarrator(nil)
	}
	return &Service{
		fetcher:  fetcher,
		narrator: narrator,
	}
}

// Search fetches the profile and owned repositories of username
// concurrently. Both must succeed. A failure in one does not cancel the
// other, so when both fail a missing user is reported in preference to
// any other profile error, which in turn wins over a repository error.
func (s *Service) Search(ctx context.Context, username string, progress *Progress) (*Result, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: empty username", ghclient.ErrUserNotFound)
	}
	if progress == nil {
		progress = &Progress{}
	}

	var (
		user       *model.User
		repos      []model.Repository
		profileErr error
		reposErr   error
		g          errgroup.Group
	)

	g.Go(func() error {
		u, err := s.fetcher.GetUser(ctx, username)
		if progress.ProfileDone != nil {
			progress.ProfileDone(err)
		}
		if err != nil {
			profileErr = fmt.Errorf("profile: %w", err)
			return profileErr
		}
		user = u
		return nil
	})

	g.Go(func() error {
		var opts []ghclient.AggregateOption
		if progress.ReposPage != nil {
			opts = append(opts, ghclient.WithPageProgress(progress.ReposPage))
		}
		r, err := ghclient.ListOwnedRepositories(ctx, s.fetcher, username, opts...)
		if progress.ReposDone != nil {
			progress.ReposDone(len(r), err)
		}
		if err != nil {
			reposErr = fmt.Errorf("repositories: %w", err)
			return reposErr
		}
		repos = r
		return nil
	})

	if err := g.Wait(); err != nil {
		if profileErr != nil {
			return nil, profileErr
		}
		return nil, reposErr
	}

	log.Info("search complete", "user", user.Login, "repos", len(repos))
	return &Result{User: user, Repositories: repos}, nil
}

// Run performs a full search and records the outcome in store.
func (s *Service) Run(ctx context.Context, store *session.Store, username string) {
	store.BeginSearch(username)

	result, err := s.Search(ctx, username, nil)
	if err != nil {
		store.FailSearch(err)
		return
	}
	store.CompleteSearch(result.User, result.Repositories)
}

// Narrate generates a persona for user from repos. It never fails.
func (s *Service) Narrate(ctx context.Context, user *model.User, repos []model.Repository) string {
	return s.narrator.Narrate(ctx, user, repos)
}

// GenerateInsight generates a persona for the user loaded in store.
// It does nothing when generation is not currently allowed.
func (s *Service) GenerateInsight(ctx context.Context, store *session.Store) bool {
	search, ok := store.BeginInsight()
	if !ok {
		return false
	}
	return s.FinishInsight(ctx, store, search)
}

// FinishInsight narrates for the user in store and records the result.
// search is the value returned by store.BeginInsight. A result that
// arrives after another search has started is discarded.
func (s *Service) FinishInsight(ctx context.Context, store *session.Store, search uint64) bool {
	st := store.Snapshot()
	if st.User == nil || st.Search != search {
		store.AbandonInsight(search)
		return false
	}

	text := s.Narrate(ctx, st.User, st.Repos)

	if !store.CompleteInsight(search, text) {
		log.Debug("discarding persona for previous search", "user", st.User.Login)
		return false
	}
	return true
}

// Suggest returns username suggestions for query.
func (s *Service) Suggest(ctx context.Context, query string) []model.Suggestion {
	return suggest.Search(ctx, s.fetcher, query)
}

// Fetcher returns the underlying GitHub fetcher.
func (s *Service) Fetcher() ghclient.Fetcher {
	return s.fetcher
}
