package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sahanamn290/github-analysis/config"
	"github.com/sahanamn290/github-analysis/internal/constants"
	"github.com/sahanamn290/github-analysis/internal/ghclient"
	"github.com/sahanamn290/github-analysis/internal/log"
	"github.com/sahanamn290/github-analysis/internal/persona"
	"github.com/sahanamn290/github-analysis/internal/service"
	"github.com/sahanamn290/github-analysis/internal/tui"
)

// progressRuntime bundles the progress display state threaded through a command.
type progressRuntime struct {
	useTUI  bool
	events  chan tui.Event
	tuiDone chan tuiResult
	cancel  context.CancelFunc
}

type tuiResult struct {
	canceled bool
	err      error
}

// setupRuntime initializes logging and returns the runtime for a command.
// Logs are discarded while the progress display owns the terminal.
func setupRuntime(opts *Options) *progressRuntime {
	useTUI := shouldUseTUI(opts)
	if useTUI {
		log.Initialize(opts.Verbosity, io.Discard)
	} else {
		log.Initialize(opts.Verbosity, os.Stderr)
	}
	return &progressRuntime{useTUI: useTUI}
}

// startTUI starts the progress display if TUI mode is enabled. Canceling
// the display cancels ctx.
func (rt *progressRuntime) startTUI(ctx context.Context, tasks []tui.Task) context.Context {
	if !rt.useTUI {
		return ctx
	}
	ctx, rt.cancel = context.WithCancel(ctx)
	rt.events = make(chan tui.Event, 100)
	rt.tuiDone = make(chan tuiResult, 1)
	go func() {
		canceled, err := tui.Run(rt.events, tui.WithTasks(tasks))
		if canceled {
			rt.cancel()
		}
		rt.tuiDone <- tuiResult{canceled: canceled, err: err}
	}()
	return ctx
}

// close closes the event channel and waits for the display to finish.
// It reports whether the user canceled.
func (rt *progressRuntime) close() bool {
	if rt.events == nil {
		return false
	}
	close(rt.events)
	rt.events = nil
	res := <-rt.tuiDone
	if rt.cancel != nil {
		rt.cancel()
	}
	if res.err != nil {
		log.Warn("progress display failed", "error", res.err)
	}
	return res.canceled
}

// sendEvent sends a task event to the display if it is running.
func (rt *progressRuntime) sendEvent(task tui.TaskID, status tui.TaskStatus, opts ...tui.TaskEventOption) {
	if rt.events == nil {
		return
	}
	tui.SendTaskEvent(rt.events, task, status, opts...)
}

// searchProgress reports search progress to the display, or to the log
// when the display is off.
func (rt *progressRuntime) searchProgress() *service.Progress {
	return &service.Progress{
		ProfileDone: func(err error) {
			if err != nil {
				rt.sendEvent(tui.TaskProfile, tui.StatusError, tui.WithError(err))
				return
			}
			rt.sendEvent(tui.TaskProfile, tui.StatusComplete)
			log.Info("profile fetched")
		},
		ReposPage: func(page, kept int) {
			rt.sendEvent(tui.TaskRepos, tui.StatusRunning,
				tui.WithMessage(fmt.Sprintf("page %d", page)),
				tui.WithCount(kept),
				tui.WithProgress(float64(page)/float64(constants.MaxRepoPages)))
			if !rt.useTUI {
				log.Progress("Fetching repositories: page %d (%d kept)...", page, kept)
			}
		},
		ReposDone: func(count int, err error) {
			if !rt.useTUI {
				log.ProgressDone()
			}
			if err != nil {
				rt.sendEvent(tui.TaskRepos, tui.StatusError, tui.WithError(err))
				return
			}
			rt.sendEvent(tui.TaskRepos, tui.StatusComplete, tui.WithCount(count))
			log.Info("repositories fetched", "count", count)
		},
	}
}

// loadConfig loads the merged configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// newClient builds a GitHub client from configuration. A missing token
// leaves the client anonymous.
func newClient(ctx context.Context, cfg *config.Config) (*ghclient.Client, error) {
	token := cfg.GetGitHubToken()
	if token == "" {
		log.Debug("GITHUB_TOKEN not set, using anonymous requests")
	}
	return ghclient.NewClient(ctx,
		ghclient.WithToken(token),
		ghclient.WithBaseURL(cfg.BaseURL()),
		ghclient.WithSuggestLimit(cfg.SuggestLimit()),
	)
}

// newService wires the client and the persona narrator into a Service.
func newService(ctx context.Context, cfg *config.Config) (*service.Service, error) {
	client, err := newClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	narrator := persona.NewNarrator(
		persona.NewGeminiGenerator(cfg.PersonaModel()),
		persona.WithMaxRepos(cfg.MaxRepos()),
	)
	return service.New(client, narrator), nil
}
