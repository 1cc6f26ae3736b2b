package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dtrue/taxmate/internal/logging"
)

const defaultEnvFile = ".env"

// options stores global CLI state shared between commands.
type options struct {
	EnvFile  string
	LogLevel string

	env    siteEnv
	logger *slog.Logger
}

// execute builds the root command, runs it with args, and writes command
// output to out.
func execute(args []string, out io.Writer) error {
	cmd := newRootCommand(&options{})
	cmd.SetArgs(args)
	cmd.SetOut(out)
	return cmd.Execute()
}

func newRootCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "taxmate",
		Short:         "TaxMate landing page and waitlist",
		Long:          "taxmate serves the TaxMate landing page with its FAQ and waitlist signup, and manages the waitlist from the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			e, err := loadEnv(opts.EnvFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				e.LogLevel = opts.LogLevel
			}
			opts.env = e
			opts.logger = logging.NewLogger(cmd.ErrOrStderr(), logging.ParseLevel(e.LogLevel), e.NoColor != "")
			opts.logger.Debug("logger initialized", "level", e.LogLevel)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", defaultEnvFile, "Optional .env file loaded before reading the environment")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "info", "Log level (debug, info, warn, error); overrides LOG_LEVEL")

	cmd.AddCommand(
		newServeCommand(opts),
		newWaitlistCommand(opts),
		newInsightsCommand(opts),
		newHashPasswordCommand(),
		newVersionCommand(),
	)
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the taxmate version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "taxmate %s\n", version)
			return err
		},
	}
}
