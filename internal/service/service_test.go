package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sahanamn290/github-analysis/internal/ghclient"
	"github.com/sahanamn290/github-analysis/internal/model"
	"github.com/sahanamn290/github-analysis/internal/persona"
	"github.com/sahanamn290/github-analysis/internal/session"
)

type fakeFetcher struct {
	mu          sync.Mutex
	users       map[string]*model.User
	pages       map[int][]model.Repository
	userErr     error
	repoErr     error
	suggestions []model.Suggestion
	searchErr   error
	searches    int
}

func (f *fakeFetcher) GetUser(_ context.Context, username string) (*model.User, error) {
	if f.userErr != nil {
		return nil, f.userErr
	}
	u, ok := f.users[username]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ghclient.ErrUserNotFound, username)
	}
	return u, nil
}

func (f *fakeFetcher) ListRepositoriesPage(_ context.Context, _ string, page int) ([]model.Repository, error) {
	if f.repoErr != nil {
		return nil, f.repoErr
	}
	return f.pages[page], nil
}

func (f *fakeFetcher) SearchUsers(_ context.Context, _ string) ([]model.Suggestion, error) {
	f.mu.Lock()
	f.searches++
	f.mu.Unlock()
	return f.suggestions, f.searchErr
}

type fakeGenerator struct {
	out    string
	err    error
	prompt string
	hook   func()
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompt = prompt
	if g.hook != nil {
		g.hook()
	}
	return g.out, g.err
}

func torvalds() *fakeFetcher {
	return &fakeFetcher{
		users: map[string]*model.User{
			"torvalds": {Login: "torvalds", Name: "Linus Torvalds"},
		},
		pages: map[int][]model.Repository{
			1: {
				{ID: 1, Name: "linux", Language: "C", OwnerLogin: "torvalds"},
				{ID: 2, Name: "fork-a", OwnerLogin: "torvalds", Fork: true},
				{ID: 3, Name: "fork-b", OwnerLogin: "torvalds", Fork: true},
			},
		},
	}
}

func TestSearchSuccess(t *testing.T) {
	var pages []int
	var profileDone, reposDone bool
	svc := New(torvalds(), nil)

	res, err := svc.Search(context.Background(), "torvalds", &Progress{
		ProfileDone: func(err error) { profileDone = err == nil },
		ReposPage:   func(page, _ int) { pages = append(pages, page) },
		ReposDone:   func(count int, err error) { reposDone = err == nil && count == 1 },
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.User.Login != "torvalds" {
		t.Errorf("expected torvalds, got %q", res.User.Login)
	}
	if len(res.Repositories) != 1 || res.Repositories[0].Name != "linux" {
		t.Errorf("expected [linux], got %+v", res.Repositories)
	}
	if !profileDone || !reposDone {
		t.Error("expected progress callbacks to report success")
	}
	if len(pages) != 1 {
		t.Errorf("expected 1 page callback, got %d", len(pages))
	}
}

func TestSearchErrors(t *testing.T) {
	tests := []struct {
		name    string
		fetcher *fakeFetcher
		user    string
		wantErr error
	}{
		{
			name:    "unknown user",
			fetcher: torvalds(),
			user:    "ghost",
			wantErr: ghclient.ErrUserNotFound,
		},
		{
			name: "repository failure",
			fetcher: func() *fakeFetcher {
				f := torvalds()
				f.repoErr = errors.New("502")
				return f
			}(),
			user:    "torvalds",
			wantErr: ghclient.ErrRepoFetchFailed,
		},
		{
			name: "both fail prefers not found",
			fetcher: func() *fakeFetcher {
				f := torvalds()
				f.repoErr = errors.New("404")
				return f
			}(),
			user:    "ghost",
			wantErr: ghclient.ErrUserNotFound,
		},
		{
			name:    "empty username",
			fetcher: torvalds(),
			user:    "   ",
			wantErr: ghclient.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := New(tt.fetcher, nil).Search(context.Background(), tt.user, nil)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if res != nil {
				t.Errorf("expected nil result, got %+v", res)
			}
		})
	}
}

func TestSearchMissingUserOverGitHub(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/ghost", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"Not Found"}`)
	})
	mux.HandleFunc("/users/ghost/repos", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"Not Found"}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client, err := ghclient.NewClient(context.Background(), ghclient.WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	store := session.NewStore()
	New(client, nil).Run(context.Background(), store, "ghost")

	if got := store.Snapshot().Err; got != session.MsgUserNotFound {
		t.Errorf("expected %q, got %q", session.MsgUserNotFound, got)
	}
}

func TestSearchPrefersProfileError(t *testing.T) {
	f := torvalds()
	f.userErr = fmt.Errorf("%w: 500", ghclient.ErrFetchFailed)
	f.repoErr = errors.New("502")

	_, err := New(f, nil).Search(context.Background(), "torvalds", nil)
	if !errors.Is(err, ghclient.ErrFetchFailed) {
		t.Errorf("expected profile error, got %v", err)
	}
}

func TestRun(t *testing.T) {
	svc := New(torvalds(), nil)

	t.Run("success", func(t *testing.T) {
		store := session.NewStore()
		svc.Run(context.Background(), store, "torvalds")
		st := store.Snapshot()
		if st.Screen != session.ScreenResults {
			t.Errorf("expected results screen, got %s", st.Screen)
		}
		if len(st.Repos) != 1 {
			t.Errorf("expected 1 repo, got %d", len(st.Repos))
		}
	})

	t.Run("not found", func(t *testing.T) {
		store := session.NewStore()
		svc.Run(context.Background(), store, "ghost")
		st := store.Snapshot()
		if st.Err != session.MsgUserNotFound {
			t.Errorf("expected %q, got %q", session.MsgUserNotFound, st.Err)
		}
		if st.Screen != session.ScreenHome || st.User != nil || st.Loading {
			t.Errorf("unexpected state after failure: %+v", st)
		}
	})

	t.Run("fetch failure", func(t *testing.T) {
		f := torvalds()
		f.repoErr = errors.New("boom")
		store := session.NewStore()
		New(f, nil).Run(context.Background(), store, "torvalds")
		if got := store.Snapshot().Err; got != session.MsgReposFetchFailed {
			t.Errorf("expected %q, got %q", session.MsgReposFetchFailed, got)
		}
	})
}

func TestGenerateInsight(t *testing.T) {
	gen := &fakeGenerator{out: "## Kernel Hacker"}
	svc := New(torvalds(), persona.NewNarrator(gen))
	store := session.NewStore()
	svc.Run(context.Background(), store, "torvalds")

	if !svc.GenerateInsight(context.Background(), store) {
		t.Fatal("expected insight to be generated")
	}
	st := store.Snapshot()
	if st.Insight != "## Kernel Hacker" {
		t.Errorf("expected insight, got %q", st.Insight)
	}
	if st.Generating {
		t.Error("expected generating flag cleared")
	}
	if !strings.Contains(gen.prompt, "- linux (C): No description") {
		t.Errorf("expected repository line in prompt, got %q", gen.prompt)
	}
}

func TestGenerateInsightFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("bad key")}
	svc := New(torvalds(), persona.NewNarrator(gen))
	store := session.NewStore()
	svc.Run(context.Background(), store, "torvalds")

	svc.GenerateInsight(context.Background(), store)
	if got := store.Snapshot().Insight; got != persona.FailureMessage {
		t.Errorf("expected failure message, got %q", got)
	}
}

func TestGenerateInsightGuards(t *testing.T) {
	gen := &fakeGenerator{out: "x"}
	svc := New(torvalds(), persona.NewNarrator(gen))

	store := session.NewStore()
	if svc.GenerateInsight(context.Background(), store) {
		t.Error("expected no generation on home screen")
	}

	svc.Run(context.Background(), store, "torvalds")
	store.SetTab(session.TabProjects)
	if svc.GenerateInsight(context.Background(), store) {
		t.Error("expected no generation on projects tab")
	}
	if gen.prompt != "" {
		t.Error("expected generator not to be called")
	}
}

func TestGenerateInsightDiscardedAfterNewSearch(t *testing.T) {
	f := torvalds()
	f.users["gvanrossum"] = &model.User{Login: "gvanrossum"}
	gen := &fakeGenerator{out: "stale"}
	svc := New(f, persona.NewNarrator(gen))
	store := session.NewStore()
	svc.Run(context.Background(), store, "torvalds")

	gen.hook = func() {
		store.BeginSearch("gvanrossum")
		store.CompleteSearch(&model.User{Login: "gvanrossum"}, nil)
	}

	if svc.GenerateInsight(context.Background(), store) {
		t.Error("expected stale insight to be discarded")
	}
	st := store.Snapshot()
	if st.Insight != "" {
		t.Errorf("expected no insight, got %q", st.Insight)
	}
	if st.Generating {
		t.Error("expected generating flag cleared")
	}
}

func TestInsightNotCarriedIntoNextSearch(t *testing.T) {
	f := torvalds()
	f.users["gvanrossum"] = &model.User{Login: "gvanrossum"}
	gen := &fakeGenerator{out: "torvalds persona"}
	svc := New(f, persona.NewNarrator(gen))
	store := session.NewStore()
	svc.Run(context.Background(), store, "torvalds")

	// The next search is submitted but still loading when the persona returns.
	gen.hook = func() {
		store.NewSearch()
		store.BeginSearch("gvanrossum")
	}

	if svc.GenerateInsight(context.Background(), store) {
		t.Error("expected persona for the previous user to be discarded")
	}
	store.CompleteSearch(&model.User{Login: "gvanrossum"}, []model.Repository{{ID: 7, Name: "cpython"}})

	st := store.Snapshot()
	if st.Insight != "" {
		t.Errorf("expected no insight for gvanrossum, got %q", st.Insight)
	}
	if st.Generating {
		t.Error("expected generating flag cleared")
	}
	if !store.CanGenerate() {
		t.Error("expected generation available for gvanrossum")
	}
}

func TestSuggest(t *testing.T) {
	f := torvalds()
	f.suggestions = []model.Suggestion{{ID: 1, Login: "torvalds"}}
	svc := New(f, nil)

	if got := svc.Suggest(context.Background(), "to"); len(got) != 0 {
		t.Errorf("expected no suggestions for short query, got %v", got)
	}
	if f.searches != 0 {
		t.Errorf("expected no search call, got %d", f.searches)
	}

	if got := svc.Suggest(context.Background(), "tor"); len(got) != 1 {
		t.Errorf("expected 1 suggestion, got %d", len(got))
	}

	f.searchErr = errors.New("403")
	if got := svc.Suggest(context.Background(), "tor"); len(got) != 0 {
		t.Errorf("expected errors to yield no suggestions, got %v", got)
	}
}
