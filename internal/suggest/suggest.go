// Package suggest provides username-prefix suggestions with debouncing
// and stale-response suppression.
package suggest

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/sahanamn290/github-analysis/internal/constants"
	"github.com/sahanamn290/github-analysis/internal/ghclient"
	"github.com/sahanamn290/github-analysis/internal/log"
	"github.com/sahanamn290/github-analysis/internal/model"
)

// Eligible reports whether a query is long enough to search for.
func Eligible(query string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(query)) >= constants.SuggestMinQueryLength
}

// Search returns users matching query. Short queries return nothing without
// touching the network, and search failures degrade to an empty result.
func Search(ctx context.Context, searcher ghclient.UserSearcher, query string) []model.Suggestion {
	query = strings.TrimSpace(query)
	if !Eligible(query) {
		return nil
	}

	results, err := searcher.SearchUsers(ctx, query)
	if err != nil {
		log.Debug("suggestion search failed", "query", query, "error", err)
		return nil
	}
	return results
}
