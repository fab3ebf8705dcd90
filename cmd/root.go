package cmd

import (
	"errors"
	"io"

	"github.com/sahanamn290/github-analysis/internal/log"
	"github.com/sahanamn290/github-analysis/internal/session"
	"github.com/sahanamn290/github-analysis/internal/tui"
	"github.com/sahanamn290/github-analysis/internal/urlutil"
	"github.com/spf13/cobra"
)

// New creates the root command with all subcommands registered.
func New() *cobra.Command {
	opts := &Options{}

	rootCmd := &cobra.Command{
		Use:   "github-analysis [username]",
		Short: "Explore GitHub profiles from the terminal",
		Long: `An interactive explorer for GitHub users. Search for a username,
browse their language breakdown and repositories, and generate an AI
developer persona.

Run without arguments for the interactive interface, or use the
profile, search and persona subcommands for scripted output.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, args, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.Flags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug, -vvv trace)")

	// Register subcommands
	rootCmd.AddCommand(NewCmdProfile(NewOptions()))
	rootCmd.AddCommand(NewCmdSearch())
	rootCmd.AddCommand(NewCmdPersona())
	rootCmd.AddCommand(NewCmdConfig())
	rootCmd.AddCommand(NewCmdVersion())
	rootCmd.AddCommand(NewCmdRateLimit())

	return rootCmd
}

func runInteractive(cmd *cobra.Command, args []string, opts *Options) error {
	if !tui.ShouldUseTUI() {
		return errors.New("interactive mode needs a terminal; use 'github-analysis profile <username>' instead")
	}

	// The interface owns the terminal, so logs go nowhere.
	log.Initialize(opts.Verbosity, io.Discard)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	svc, err := newService(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	appOpts := []tui.AppOption{tui.WithDebounce(cfg.DebounceDuration())}
	if len(args) == 1 {
		appOpts = append(appOpts, tui.WithInitialQuery(urlutil.Username(args[0])))
	}

	return tui.RunApp(cmd.Context(), svc, session.NewStore(), appOpts...)
}
