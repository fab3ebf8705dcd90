package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/sahanamn290/github-analysis/internal/persona"
	"github.com/sahanamn290/github-analysis/internal/urlutil"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const defaultWrapWidth = 80

// NewCmdPersona creates the persona command.
func NewCmdPersona() *cobra.Command {
	opts := &Options{Persona: true}
	var raw bool

	cmd := &cobra.Command{
		Use:   "persona <username>",
		Short: "Generate an AI developer persona for a GitHub user",
		Long: `Fetches a user's profile and repositories and asks Gemini for a short
developer persona.

Requires GEMINI_API_KEY (or GOOGLE_API_KEY). The model can be changed
with 'ai.model' in the config file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPersona(cmd, urlutil.Username(args[0]), opts, raw)
		},
	}

	cmd.Flags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug, -vvv trace)")
	cmd.Flags().Var(newProgressFlag(opts), "tui", "Enable/disable TUI progress (default: auto-detect)")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the Markdown without terminal rendering")

	return cmd
}

func runPersona(cmd *cobra.Command, username string, opts *Options, raw bool) error {
	rt := setupRuntime(opts)

	if persona.APIKeyFromEnv() == "" {
		return fmt.Errorf("%w: set GEMINI_API_KEY or GOOGLE_API_KEY", persona.ErrMissingAPIKey)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	svc, err := newService(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	report, err := analyze(cmd.Context(), svc, rt, username, true)
	if err != nil {
		return err
	}
	if report.Persona == persona.FailureMessage {
		return errors.New(persona.FailureMessage)
	}

	out := cmd.OutOrStdout()
	if raw || !isTerminal(out) {
		_, err := fmt.Fprintln(out, report.Persona)
		return err
	}
	return renderMarkdown(out, report.Persona, terminalWidth())
}

// renderMarkdown renders md with glamour, falling back to plain text.
func renderMarkdown(w io.Writer, md string, width int) error {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		_, err = fmt.Fprintln(w, md)
		return err
	}
	rendered, err := r.Render(md)
	if err != nil {
		_, err = fmt.Fprintln(w, md)
		return err
	}
	_, err = fmt.Fprint(w, rendered)
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultWrapWidth
	}
	return min(width, 120)
}
