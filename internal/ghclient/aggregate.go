package ghclient

import (
	"context"
	"fmt"

	"github.com/sahanamn290/github-analysis/internal/constants"
	"github.com/sahanamn290/github-analysis/internal/log"
	"github.com/sahanamn290/github-analysis/internal/model"
)

// aggregateOptions configures ListOwnedRepositories.
type aggregateOptions struct {
	pageSize   int
	maxPages   int
	onProgress func(page, kept int)
}

// AggregateOption is a functional option for ListOwnedRepositories.
type AggregateOption func(*aggregateOptions)

// WithPageProgress registers a callback invoked after every page with the
// page number just fetched and the number of repositories kept so far.
func WithPageProgress(fn func(page, kept int)) AggregateOption {
	return func(o *aggregateOptions) {
		o.onProgress = fn
	}
}

// ListOwnedRepositories walks a user's repository pages and returns every
// non-fork repository owned by username, in fetch order.
//
// Paging stops at the first short page or after constants.MaxRepoPages pages.
// The owner check is applied even though the endpoint is scoped to the user,
// since listings have been seen to include repositories owned by others.
// Any page failure discards everything collected so far.
func ListOwnedRepositories(ctx context.Context, pager RepositoryPager, username string, opts ...AggregateOption) ([]model.Repository, error) {
	o := &aggregateOptions{
		pageSize: constants.RepoPageSize,
		maxPages: constants.MaxRepoPages,
	}
	for _, opt := range opts {
		opt(o)
	}

	var owned []model.Repository

	for page := 1; page <= o.maxPages; page++ {
		repos, err := pager.ListRepositoriesPage(ctx, username, page)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRepoFetchFailed, err)
		}

		for _, r := range repos {
			if r.IsOwnedBy(username) {
				owned = append(owned, r)
			}
		}

		if o.onProgress != nil {
			o.onProgress(page, len(owned))
		}

		if len(repos) < o.pageSize {
			break
		}
		if page == o.maxPages {
			log.Info("repository page limit reached", "user", username, "pages", page)
		}
	}

	log.Info("repositories aggregated", "user", username, "owned", len(owned))
	return owned, nil
}
