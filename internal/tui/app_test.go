package tui

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahanamn290/github-analysis/internal/ghclient"
	"github.com/sahanamn290/github-analysis/internal/model"
	"github.com/sahanamn290/github-analysis/internal/persona"
	"github.com/sahanamn290/github-analysis/internal/service"
	"github.com/sahanamn290/github-analysis/internal/session"
)

type fakeFetcher struct {
	suggestions []model.Suggestion
	queries     []string
}

func (f *fakeFetcher) GetUser(_ context.Context, username string) (*model.User, error) {
	switch username {
	case "octocat":
		return &model.User{Login: "octocat", Name: "The Octocat", HTMLURL: "https://github.com/octocat"}, nil
	case "hubot":
		return &model.User{Login: "hubot", Name: "Hubot", HTMLURL: "https://github.com/hubot"}, nil
	}
	return nil, fmt.Errorf("%w: %s", ghclient.ErrUserNotFound, username)
}

func (f *fakeFetcher) ListRepositoriesPage(_ context.Context, username string, page int) ([]model.Repository, error) {
	if page > 1 {
		return nil, nil
	}
	return []model.Repository{
		{ID: 1, Name: "react-app", Language: "JavaScript", OwnerLogin: username},
		{ID: 2, Name: "notes", Description: "react notes", OwnerLogin: username},
		{ID: 3, Name: "calc", Language: "Go", OwnerLogin: username},
	}, nil
}

func (f *fakeFetcher) SearchUsers(_ context.Context, q string) ([]model.Suggestion, error) {
	f.queries = append(f.queries, q)
	return f.suggestions, nil
}

type stubGenerator struct{ out string }

func (g stubGenerator) Generate(context.Context, string) (string, error) { return g.out, nil }

func newTestApp(t *testing.T) (AppModel, *fakeFetcher, *session.Store) {
	t.Helper()
	f := &fakeFetcher{suggestions: []model.Suggestion{
		{ID: 1, Login: "octocat"},
		{ID: 2, Login: "octo-org"},
	}}
	svc := service.New(f, persona.NewNarrator(stubGenerator{out: "## Builder\n- ships"}))
	store := session.NewStore()
	return NewAppModel(context.Background(), svc, store), f, store
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(m AppModel, s string) (AppModel, []tea.Cmd) {
	var cmds []tea.Cmd
	for _, r := range s {
		next, cmd := m.Update(runes(string(r)))
		m = next.(AppModel)
		cmds = append(cmds, cmd)
	}
	return m, cmds
}

func update(m AppModel, msg tea.Msg) AppModel {
	next, _ := m.Update(msg)
	return next.(AppModel)
}

// loadResults drives a successful search for octocat.
func loadResults(t *testing.T, m AppModel) AppModel {
	t.Helper()
	m, _ = typeText(m, "octocat")
	m = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	res, err := m.svc.Search(context.Background(), "octocat", nil)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	return update(m, searchResultMsg{username: "octocat", result: res})
}

func TestStaleSuggestionTickIgnored(t *testing.T) {
	m, f, _ := newTestApp(t)
	m, _ = typeText(m, "octo")

	// "octo" issued four tags; only the last is current.
	if _, cmd := m.Update(suggestTickMsg{seq: 3, query: "oct"}); cmd != nil {
		t.Error("expected stale tick to be ignored")
	}

	_, cmd := m.Update(suggestTickMsg{seq: 4, query: "octo"})
	if cmd == nil {
		t.Fatal("expected current tick to fire a search")
	}
	msg := cmd()
	res, ok := msg.(suggestResultMsg)
	if !ok {
		t.Fatalf("expected suggestResultMsg, got %T", msg)
	}
	if len(f.queries) != 1 || f.queries[0] != "octo" {
		t.Errorf("expected one search for octo, got %v", f.queries)
	}
	if res.seq != 4 {
		t.Errorf("expected result tagged 4, got %d", res.seq)
	}
}

func TestShortQueryDoesNotSchedule(t *testing.T) {
	m, _, _ := newTestApp(t)
	if cmd := m.queryChanged("oc"); cmd != nil {
		t.Error("expected no suggestion tick for short query")
	}
	if cmd := m.queryChanged("oct"); cmd == nil {
		t.Error("expected suggestion tick for eligible query")
	}
}

func TestSuggestionResultsApplied(t *testing.T) {
	m, _, _ := newTestApp(t)
	m, _ = typeText(m, "oct")

	m = update(m, suggestResultMsg{seq: 3, results: []model.Suggestion{{Login: "octocat"}}})
	if !m.showDropdown || len(m.suggestions) != 1 {
		t.Fatalf("expected dropdown with 1 suggestion, got %v/%d", m.showDropdown, len(m.suggestions))
	}
	if !strings.Contains(m.View(), "octocat") {
		t.Error("expected suggestion in view")
	}
}

func TestStaleSuggestionResultDropped(t *testing.T) {
	m, _, _ := newTestApp(t)
	m, _ = typeText(m, "octo")

	m = update(m, suggestResultMsg{seq: 3, results: []model.Suggestion{{Login: "stale"}}})
	if m.showDropdown || len(m.suggestions) != 0 {
		t.Error("expected stale result to be dropped")
	}
}

func TestDropdownCloses(t *testing.T) {
	m, _, _ := newTestApp(t)
	m, _ = typeText(m, "oct")
	m = update(m, suggestResultMsg{seq: 3, results: []model.Suggestion{{Login: "octocat"}}})

	t.Run("esc", func(t *testing.T) {
		next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		if next.(AppModel).showDropdown {
			t.Error("expected dropdown closed")
		}
		if next.(AppModel).quitting || cmd != nil {
			t.Error("expected esc to close the dropdown, not quit")
		}
	})

	t.Run("short query", func(t *testing.T) {
		next := update(m, tea.KeyMsg{Type: tea.KeyBackspace})
		if next.showDropdown {
			t.Error("expected dropdown closed below minimum length")
		}
	})
}

func TestSelectSuggestion(t *testing.T) {
	m, _, store := newTestApp(t)
	m, _ = typeText(m, "oct")
	m = update(m, suggestResultMsg{seq: 3, results: []model.Suggestion{{Login: "octocat"}, {Login: "octo-org"}}})

	m = update(m, tea.KeyMsg{Type: tea.KeyDown})
	m = update(m, tea.KeyMsg{Type: tea.KeyDown})
	if m.suggestCursor != 1 {
		t.Fatalf("expected cursor 1, got %d", m.suggestCursor)
	}

	m = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	st := store.Snapshot()
	if !st.Loading {
		t.Error("expected loading after submit")
	}
	if st.Query != "octo-org" {
		t.Errorf("expected selected login submitted, got %q", st.Query)
	}
	if m.showDropdown {
		t.Error("expected dropdown closed on submit")
	}
}

func TestSearchResultShowsResults(t *testing.T) {
	m, _, store := newTestApp(t)
	m = loadResults(t, m)

	st := store.Snapshot()
	if st.Screen != session.ScreenResults {
		t.Fatalf("expected results screen, got %s", st.Screen)
	}
	view := m.View()
	for _, want := range []string{"The Octocat", "1: Overview", "Languages", "AI Persona"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestSearchFailureShowsError(t *testing.T) {
	m, _, store := newTestApp(t)
	m, _ = typeText(m, "ghost")
	m = update(m, tea.KeyMsg{Type: tea.KeyEnter})

	_, err := m.svc.Search(context.Background(), "ghost", nil)
	m = update(m, searchResultMsg{username: "ghost", err: err})

	st := store.Snapshot()
	if st.Err != session.MsgUserNotFound {
		t.Errorf("expected %q, got %q", session.MsgUserNotFound, st.Err)
	}
	if !strings.Contains(m.View(), session.MsgUserNotFound) {
		t.Error("expected error banner in view")
	}
}

func TestTabsAndFilter(t *testing.T) {
	m, _, store := newTestApp(t)
	m = loadResults(t, m)

	m = update(m, runes("2"))
	if store.Snapshot().Tab != session.TabProjects {
		t.Fatal("expected projects tab")
	}

	m = update(m, runes("/"))
	if !m.filterFocused {
		t.Fatal("expected filter focused")
	}
	m, _ = typeText(m, "react")
	m = update(m, tea.KeyMsg{Type: tea.KeyEnter})

	if got := store.FilteredRepos(); len(got) != 2 {
		t.Errorf("expected 2 filtered repos, got %d", len(got))
	}
	view := m.View()
	if !strings.Contains(view, "react-app") || strings.Contains(view, "calc") {
		t.Errorf("expected only matching repos in view")
	}

	m = update(m, tea.KeyMsg{Type: tea.KeyTab})
	if store.Snapshot().Tab != session.TabOverview {
		t.Error("expected tab to toggle back to overview")
	}
}

func TestGeneratePersona(t *testing.T) {
	m, _, store := newTestApp(t)
	m = loadResults(t, m)

	next, cmd := m.Update(runes("a"))
	m = next.(AppModel)
	if !store.Snapshot().Generating {
		t.Fatal("expected generating flag")
	}
	if cmd == nil {
		t.Fatal("expected generation command")
	}

	// A second request while generating is ignored.
	if _, ok := store.BeginInsight(); ok {
		t.Error("expected BeginInsight to be rejected while generating")
	}

	m.svc.FinishInsight(context.Background(), store, store.Snapshot().Search)
	m = update(m, insightDoneMsg{})

	st := store.Snapshot()
	if st.Generating || !strings.HasPrefix(st.Insight, "## Builder") {
		t.Errorf("unexpected insight state: %v/%q", st.Generating, st.Insight)
	}
	if !strings.Contains(m.View(), "Builder") {
		t.Error("expected persona heading in view")
	}
}

func TestNewSearchWhileGeneratingDropsPersona(t *testing.T) {
	m, _, store := newTestApp(t)
	m = loadResults(t, m)

	m = update(m, runes("a"))
	first := store.Snapshot().Search
	if !store.Snapshot().Generating {
		t.Fatal("expected generating flag")
	}

	m = update(m, runes("n"))
	m, _ = typeText(m, "hubot")
	m = update(m, tea.KeyMsg{Type: tea.KeyEnter})

	st := store.Snapshot()
	if !st.Loading || st.Query != "hubot" {
		t.Fatalf("expected hubot search in flight, got %+v", st)
	}
	if st.Generating || st.Insight != "" {
		t.Errorf("expected persona state reset, got %v/%q", st.Generating, st.Insight)
	}

	// The octocat persona finishes while hubot is loading.
	if m.svc.FinishInsight(context.Background(), store, first) {
		t.Error("expected persona for the previous search to be dropped")
	}
	m = update(m, insightDoneMsg{})

	res, err := m.svc.Search(context.Background(), "hubot", nil)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	m = update(m, searchResultMsg{username: "hubot", result: res})

	st = store.Snapshot()
	if st.User == nil || st.User.Login != "hubot" {
		t.Fatalf("expected hubot loaded, got %+v", st.User)
	}
	if st.Insight != "" || st.Generating {
		t.Errorf("expected no insight for hubot, got %v/%q", st.Generating, st.Insight)
	}
	if !store.CanGenerate() {
		t.Fatal("expected generation to be available for hubot")
	}

	m = update(m, runes("a"))
	if !store.Snapshot().Generating {
		t.Error("expected generation to start for hubot")
	}
}

func TestNewSearchReturnsHome(t *testing.T) {
	m, _, store := newTestApp(t)
	m = loadResults(t, m)

	m = update(m, runes("n"))
	if store.Snapshot().Screen != session.ScreenHome {
		t.Error("expected home screen")
	}
	if m.input.Value() != "" {
		t.Errorf("expected cleared input, got %q", m.input.Value())
	}
}

func TestRenderMarkdown(t *testing.T) {
	out := renderMarkdown("# Title\n- one\nplain", 40)
	for _, want := range []string{"Title", "• ", "one", "plain"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in rendered markdown %q", want, out)
		}
	}
	if strings.Contains(out, "# Title") {
		t.Error("expected heading marker stripped")
	}
}
