package tui

import (
	"context"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahanamn290/github-analysis/internal/constants"
	"github.com/sahanamn290/github-analysis/internal/model"
	"github.com/sahanamn290/github-analysis/internal/service"
	"github.com/sahanamn290/github-analysis/internal/session"
	"github.com/sahanamn290/github-analysis/internal/suggest"
)

// AppModel is the Bubble Tea model for the interactive analyzer.
type AppModel struct {
	ctx     context.Context
	svc     *service.Service
	store   *session.Store
	tracker *suggest.Tracker

	input   textinput.Model
	filter  textinput.Model
	spinner spinner.Model

	debounce      time.Duration
	suggestions   []model.Suggestion
	suggestCursor int
	showDropdown  bool

	filterFocused bool
	repoCursor    int

	windowWidth  int
	windowHeight int
	statusMsg    string
	quitting     bool
}

// AppOption is a functional option for configuring AppModel.
type AppOption func(*AppModel)

// WithDebounce sets the quiet period before a suggestion search fires.
func WithDebounce(d time.Duration) AppOption {
	return func(m *AppModel) {
		if d >= 0 {
			m.debounce = d
		}
	}
}

// WithInitialQuery pre-fills the search input.
func WithInitialQuery(q string) AppOption {
	return func(m *AppModel) {
		m.input.SetValue(q)
		m.store.SetQuery(q)
	}
}

// Messages produced by commands.
type (
	suggestTickMsg struct {
		seq   uint64
		query string
	}
	suggestResultMsg struct {
		seq     uint64
		results []model.Suggestion
	}
	searchResultMsg struct {
		username string
		result   *service.Result
		err      error
	}
	insightDoneMsg struct{}
	clearStatusMsg struct{}
)

// NewAppModel creates the interactive model. ctx bounds every request the
// model issues.
func NewAppModel(ctx context.Context, svc *service.Service, store *session.Store, opts ...AppOption) AppModel {
	in := textinput.New()
	in.Placeholder = "GitHub username"
	in.Prompt = "› "
	in.CharLimit = 39
	in.Width = 40
	in.Focus()

	filter := textinput.New()
	filter.Placeholder = "filter by name, description or language"
	filter.Prompt = "/ "
	filter.Width = 40

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	m := AppModel{
		ctx:           ctx,
		svc:           svc,
		store:         store,
		tracker:       &suggest.Tracker{},
		input:         in,
		filter:        filter,
		spinner:       s,
		debounce:      constants.SuggestDebounce,
		suggestCursor: -1,
		windowWidth:   80,
		windowHeight:  24,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init implements tea.Model
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Update implements tea.Model
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if m.store.Snapshot().Screen == session.ScreenResults {
			return m.handleResultsKey(msg)
		}
		return m.handleHomeKey(msg)

	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case suggestTickMsg:
		if !m.tracker.Current(msg.seq) {
			return m, nil
		}
		return m, m.fetchSuggestions(msg.seq, msg.query)

	case suggestResultMsg:
		st := m.store.Snapshot()
		if !m.tracker.Current(msg.seq) || st.Screen != session.ScreenHome || st.Loading {
			return m, nil
		}
		m.suggestions = msg.results
		m.suggestCursor = -1
		m.showDropdown = len(msg.results) > 0
		return m, nil

	case searchResultMsg:
		if !model.SameLogin(msg.username, m.store.Snapshot().Query) {
			return m, nil
		}
		if msg.err != nil {
			m.store.FailSearch(msg.err)
			return m, nil
		}
		m.store.CompleteSearch(msg.result.User, msg.result.Repositories)
		m.repoCursor = 0
		m.filter.SetValue("")
		m.filter.Blur()
		m.filterFocused = false
		m.input.Blur()
		return m, nil

	case insightDoneMsg:
		return m, nil

	case clearStatusMsg:
		m.statusMsg = ""
		return m, nil
	}

	return m, nil
}

// handleHomeKey processes keyboard input on the search screen.
func (m AppModel) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.showDropdown {
			m.closeDropdown()
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit

	case "down":
		if m.showDropdown && m.suggestCursor < len(m.suggestions)-1 {
			m.suggestCursor++
		}
		return m, nil

	case "up":
		if m.showDropdown && m.suggestCursor > -1 {
			m.suggestCursor--
		}
		return m, nil

	case "enter":
		username := m.input.Value()
		if m.showDropdown && m.suggestCursor >= 0 && m.suggestCursor < len(m.suggestions) {
			username = m.suggestions[m.suggestCursor].Login
			m.input.SetValue(username)
		}
		return m.submit(username)
	}

	if m.store.Snapshot().Loading {
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		return m, tea.Batch(cmd, m.queryChanged(after))
	}
	return m, cmd
}

// queryChanged schedules a debounced suggestion search for q.
// Queries too short to search close the dropdown immediately.
func (m *AppModel) queryChanged(q string) tea.Cmd {
	m.store.SetQuery(q)
	seq := m.tracker.Next()

	if !suggest.Eligible(q) {
		m.closeDropdown()
		m.suggestions = nil
		return nil
	}

	return tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return suggestTickMsg{seq: seq, query: q}
	})
}

func (m *AppModel) closeDropdown() {
	m.showDropdown = false
	m.suggestCursor = -1
}

// fetchSuggestions runs the user search for a debounced query.
func (m AppModel) fetchSuggestions(seq uint64, q string) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		return suggestResultMsg{seq: seq, results: svc.Suggest(ctx, q)}
	}
}

// submit starts a search for username.
func (m AppModel) submit(username string) (tea.Model, tea.Cmd) {
	username = strings.TrimSpace(username)
	if username == "" || m.store.Snapshot().Loading {
		return m, nil
	}

	m.closeDropdown()
	m.suggestions = nil
	m.tracker.Invalidate()
	m.store.BeginSearch(username)

	svc, ctx := m.svc, m.ctx
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		res, err := svc.Search(ctx, username, nil)
		return searchResultMsg{username: username, result: res, err: err}
	})
}

// handleResultsKey processes keyboard input on the results screen.
func (m AppModel) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filterFocused {
		return m.handleFilterKey(msg)
	}

	st := m.store.Snapshot()

	switch msg.String() {
	case "q", "esc":
		m.quitting = true
		return m, tea.Quit

	case "tab":
		if st.Tab == session.TabOverview {
			m.store.SetTab(session.TabProjects)
		} else {
			m.store.SetTab(session.TabOverview)
		}
		return m, nil

	case "1":
		m.store.SetTab(session.TabOverview)
		return m, nil

	case "2":
		m.store.SetTab(session.TabProjects)
		return m, nil

	case "a":
		return m.generateInsight()

	case "/":
		m.store.SetTab(session.TabProjects)
		m.filterFocused = true
		return m, m.filter.Focus()

	case "n":
		m.store.NewSearch()
		m.input.SetValue("")
		m.suggestions = nil
		m.closeDropdown()
		m.tracker.Invalidate()
		return m, m.input.Focus()

	case "j", "down":
		if st.Tab == session.TabProjects && m.repoCursor < len(st.FilteredRepos())-1 {
			m.repoCursor++
		}
		return m, nil

	case "k", "up":
		if st.Tab == session.TabProjects && m.repoCursor > 0 {
			m.repoCursor--
		}
		return m, nil

	case "o", "enter":
		return m.openSelected()
	}

	return m, nil
}

// handleFilterKey edits the repository filter.
func (m AppModel) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.filterFocused = false
		m.filter.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.store.SetFilter(m.filter.Value())
	m.repoCursor = 0
	return m, cmd
}

// generateInsight starts persona generation when it is allowed.
func (m AppModel) generateInsight() (tea.Model, tea.Cmd) {
	st := m.store.Snapshot()
	if st.Tab != session.TabOverview {
		return m, nil
	}
	search, ok := m.store.BeginInsight()
	if !ok {
		if !st.Generating && len(st.Repos) == 0 {
			m.statusMsg = "No repositories to analyze"
			return m, clearStatusAfter(2 * time.Second)
		}
		return m, nil
	}

	svc, ctx, store := m.svc, m.ctx, m.store
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		svc.FinishInsight(ctx, store, search)
		return insightDoneMsg{}
	})
}

// openSelected opens the selected repository, or the profile on the overview tab.
func (m AppModel) openSelected() (tea.Model, tea.Cmd) {
	st := m.store.Snapshot()

	url := ""
	if st.Tab == session.TabProjects {
		repos := st.FilteredRepos()
		if m.repoCursor < len(repos) {
			url = repos[m.repoCursor].HTMLURL
		}
	} else if st.User != nil {
		url = st.User.HTMLURL
	}

	if url == "" {
		m.statusMsg = "No URL available"
		return m, clearStatusAfter(2 * time.Second)
	}

	m.statusMsg = "Opening " + url
	return m, tea.Batch(openURL(url), clearStatusAfter(2*time.Second))
}

// View implements tea.Model
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}
	st := m.store.Snapshot()
	if st.Screen == session.ScreenResults && st.User != nil {
		return renderResults(m, st)
	}
	return renderHome(m, st)
}

// clearStatusAfter returns a command that clears the status after a delay
func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// openURL opens a URL in the default browser
func openURL(url string) tea.Cmd {
	return func() tea.Msg {
		var cmd *exec.Cmd

		switch runtime.GOOS {
		case "darwin":
			cmd = exec.Command("open", url)
		case "linux":
			cmd = exec.Command("xdg-open", url)
		case "windows":
			cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
		default:
			return nil
		}

		_ = cmd.Start()
		return nil
	}
}
