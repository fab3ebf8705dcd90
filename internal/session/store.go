package session

import (
	"strings"
	"sync"

	"github.com/sahanamn290/github-analysis/internal/log"
	"github.com/sahanamn290/github-analysis/internal/model"
)

// Store owns the session state. All methods are safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	state State
}

// NewStore returns a store on the home screen.
func NewStore() *Store {
	return &Store{}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// BeginSearch starts a lookup for username. The previous error, insight
// and filter are cleared and the overview tab is selected. Any persona
// still being generated is orphaned.
func (s *Store) BeginSearch(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Search++
	s.state.Query = strings.TrimSpace(username)
	s.state.Err = ""
	s.state.Insight = ""
	s.state.Generating = false
	s.state.Filter = ""
	s.state.Tab = TabOverview
	s.state.Loading = true
}

// CompleteSearch stores the fetched data and shows the results screen.
func (s *Store) CompleteSearch(user *model.User, repos []model.Repository) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.User = user
	s.state.Repos = repos
	s.state.Loading = false
	s.state.Screen = ScreenResults
}

// FailSearch records a failed lookup. The home screen stays visible with
// a user-facing message and no profile loaded.
func (s *Store) FailSearch(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.Debug("search failed", "query", s.state.Query, "error", err)

	s.state.Loading = false
	s.state.Err = ErrorMessage(err)
	s.state.User = nil
	s.state.Repos = nil
	s.state.Screen = ScreenHome
}

// NewSearch returns to the home screen. Loaded data stays until the next
// search overwrites it.
func (s *Store) NewSearch() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Screen = ScreenHome
}

// CanGenerate reports whether a persona may be requested now.
func (s *Store) CanGenerate() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.canGenerate()
}

func (s *Store) canGenerate() bool {
	st := s.state
	return st.Screen == ScreenResults &&
		st.Tab == TabOverview &&
		st.User != nil &&
		len(st.Repos) > 0 &&
		!st.Generating
}

// BeginInsight marks generation as started and returns the search it
// belongs to. It returns false, changing nothing, when CanGenerate would
// be false.
func (s *Store) BeginInsight() (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.canGenerate() {
		return 0, false
	}
	s.state.Generating = true
	return s.state.Search, true
}

// CompleteInsight stores text and clears the generating flag. Text for a
// search other than the current one is dropped and false is returned.
func (s *Store) CompleteInsight(search uint64, text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if search != s.state.Search {
		return false
	}
	s.state.Insight = text
	s.state.Generating = false
	return true
}

// AbandonInsight clears the generating flag without storing a result.
// It does nothing once a newer search has started.
func (s *Store) AbandonInsight(search uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if search == s.state.Search {
		s.state.Generating = false
	}
}

// SetTab switches the results tab.
func (s *Store) SetTab(t Tab) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Tab = t
}

// SetFilter updates the repository filter.
func (s *Store) SetFilter(filter string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Filter = filter
}

// SetQuery updates the search input.
func (s *Store) SetQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Query = q
}

// FilteredRepos returns the repositories matching the current filter.
func (s *Store) FilteredRepos() []model.Repository {
	return s.Snapshot().FilteredRepos()
}
