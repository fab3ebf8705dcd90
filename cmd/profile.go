package cmd

import (
	"context"
	"errors"

	"github.com/sahanamn290/github-analysis/config"
	"github.com/sahanamn290/github-analysis/internal/log"
	"github.com/sahanamn290/github-analysis/internal/output"
	"github.com/sahanamn290/github-analysis/internal/persona"
	"github.com/sahanamn290/github-analysis/internal/service"
	"github.com/sahanamn290/github-analysis/internal/session"
	"github.com/sahanamn290/github-analysis/internal/tui"
	"github.com/sahanamn290/github-analysis/internal/urlutil"
	"github.com/spf13/cobra"
)

var errCanceled = errors.New("canceled")

// NewCmdProfile creates the profile command.
func NewCmdProfile(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile <username>",
		Short: "Analyze a GitHub user's profile and repositories",
		Long: `Fetches a user's public profile and owned (non-fork) repositories,
then prints a summary with language distribution and repository list.

Use --persona to also generate an AI developer persona. This requires
GEMINI_API_KEY (or GOOGLE_API_KEY) to be set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfile(cmd, urlutil.Username(args[0]), opts)
		},
	}

	addProfileFlags(cmd, opts)
	return cmd
}

// addProfileFlags adds the profile-specific flags to a command.
func addProfileFlags(cmd *cobra.Command, opts *Options) {
	addOutputFlags(cmd, opts)
	cmd.Flags().BoolVarP(&opts.Persona, "persona", "p", false, "Generate an AI developer persona")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "l", 0, "Limit number of repositories listed (0 = all)")
}

// addOutputFlags adds the flags shared by every command that prints a report.
func addOutputFlags(cmd *cobra.Command, opts *Options) {
	cmd.Flags().StringVarP(&opts.Format, "output", "o", "", "Output format (table, json, markdown)")
	cmd.Flags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug, -vvv trace)")

	// TUI flag with tri-state: nil = auto, true = force, false = disable
	cmd.Flags().Var(newProgressFlag(opts), "tui", "Enable/disable TUI progress (default: auto-detect)")
}

func runProfile(cmd *cobra.Command, username string, opts *Options) error {
	rt := setupRuntime(opts)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	format, err := resolveFormat(opts, cfg)
	if err != nil {
		return err
	}

	if opts.Persona && persona.APIKeyFromEnv() == "" {
		log.Warn("no Gemini API key found, persona generation will fail", "env", "GEMINI_API_KEY")
	}

	svc, err := newService(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	report, err := analyze(cmd.Context(), svc, rt, username, opts.Persona)
	if err != nil {
		return err
	}

	if opts.Limit > 0 && len(report.Repositories) > opts.Limit {
		report.Repositories = report.Repositories[:opts.Limit]
	}

	return output.NewFormatter(format).Format(report, cmd.OutOrStdout())
}

// analyze runs the search (and optionally the persona) behind the
// progress display and returns the finished report.
func analyze(ctx context.Context, svc *service.Service, rt *progressRuntime, username string, withPersona bool) (*output.Report, error) {
	ctx = rt.startTUI(ctx, tui.ProfileTasks(withPersona))
	rt.sendEvent(tui.TaskProfile, tui.StatusRunning)
	rt.sendEvent(tui.TaskRepos, tui.StatusRunning)

	log.Info("analyzing user", "user", username)
	result, err := svc.Search(ctx, username, rt.searchProgress())
	if err != nil {
		if withPersona {
			rt.sendEvent(tui.TaskPersona, tui.StatusSkipped)
		}
		if rt.close() {
			return nil, errCanceled
		}
		log.Debug("search failed", "error", err)
		return nil, errors.New(session.ErrorMessage(err))
	}

	var text string
	if withPersona {
		rt.sendEvent(tui.TaskPersona, tui.StatusRunning)
		text = svc.Narrate(ctx, result.User, result.Repositories)
		if text == persona.FailureMessage {
			rt.sendEvent(tui.TaskPersona, tui.StatusError, tui.WithError(errors.New(text)))
		} else {
			rt.sendEvent(tui.TaskPersona, tui.StatusComplete)
		}
	}

	if rt.close() {
		return nil, errCanceled
	}

	return output.NewReport(result.User, result.Repositories, text), nil
}

// resolveFormat picks the output format from the flag, falling back to config.
func resolveFormat(opts *Options, cfg *config.Config) (output.Format, error) {
	name := opts.Format
	if name == "" {
		name = cfg.DefaultFormat
	}
	return output.ParseFormat(name)
}
