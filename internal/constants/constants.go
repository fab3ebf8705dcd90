// Package constants provides a centralized location for all configuration
// values and magic numbers used throughout the github-analysis application.
package constants

import "time"

// GitHub API constants
const (
	// DefaultGitHubBaseURL is the REST API root used when no override is configured.
	DefaultGitHubBaseURL = "https://api.github.com/"

	// RepoPageSize is the number of repositories requested per page.
	// A page shorter than this is the last page.
	RepoPageSize = 100

	// MaxRepoPages caps how many repository pages are requested for one user,
	// even if more pages exist.
	MaxRepoPages = 10

	// RepoSort is the sort order for repository listings.
	RepoSort = "updated"
)

// Suggestion constants
const (
	// SuggestMinQueryLength is the minimum trimmed query length that
	// triggers a username search.
	SuggestMinQueryLength = 3

	// SuggestLimit is the number of suggestions requested per search.
	SuggestLimit = 6

	// SuggestDebounce is the quiet period after the last keystroke
	// before a suggestion search fires.
	SuggestDebounce = 300 * time.Millisecond
)

// Persona generation constants
const (
	// PersonaMaxRepos is the maximum number of repositories embedded in a
	// persona prompt.
	PersonaMaxRepos = 20

	// DefaultPersonaModel is the generative model used when none is configured.
	DefaultPersonaModel = "gemini-2.5-flash"

	// PersonaFailureMessage is shown in place of the persona when generation fails.
	PersonaFailureMessage = "Failed to generate AI insight. Please ensure your API key is valid."

	// PersonaEmptyMessage is shown when the model answers with no text.
	PersonaEmptyMessage = "No insight generated."
)

// TUI display constants
const (
	// HeaderLines is the number of lines used for the results header.
	HeaderLines = 7

	// FooterLines is the number of lines used for the results footer.
	FooterLines = 3

	// TopLanguages is the number of languages shown before folding the rest into "Other".
	TopLanguages = 6
)

// Table column widths
const (
	ColName     = 28
	ColLanguage = 14
	ColStars    = 7
	ColForks    = 6
	ColUpdated  = 8
	ColDesc     = 48
)
