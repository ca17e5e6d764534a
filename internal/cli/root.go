package cli

import (
	"fmt"
	"io"

	"github.com/soyeahso/llmsession/internal/config"
	"github.com/soyeahso/llmsession/internal/logging"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	logLevel string
	envFile  string

	// loaded at init time
	paths     config.Paths
	cfg       config.Config
	log       *logging.Logger
	logCloser io.Closer
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "llmsession",
		Short: "Stateless vs stateful LLM invocation with structured call logging",
		Long: "llmsession sends the same conversation to an LLM with and without history, " +
			"logging every call as call_start / call_success / call_error records.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(envFile); err != nil {
				return err
			}

			var err error
			paths, err = config.ResolvePaths()
			if err != nil {
				return err
			}
			if cfgFile != "" {
				paths.Config = cfgFile
			}

			cfg, err = config.Load(paths.Config)
			if err != nil {
				return fmt.Errorf("loading config %s: %w", paths.Config, err)
			}
			if logLevel != "" {
				cfg.Logging.Level = logLevel
			}

			log, logCloser, err = logging.Open(logging.Options{
				Level: cfg.Logging.Level,
				Style: cfg.Logging.Style,
				File:  cfg.Logging.File,
				Out:   cmd.ErrOrStderr(),
			})
			return err
		},
		// No subcommand runs the demo.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd, false, "")
		},
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.llmsession/config.yaml)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error, fatal, silent)")
	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the config")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newDemoCmd())
	cmd.AddCommand(newAskCmd())
	cmd.AddCommand(newChatCmd())
	cmd.AddCommand(newEventsCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newStatusCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return execute(newRootCmd())
}

// execute runs cmd and then releases the log file. cobra skips post-run
// hooks when a command fails, so the close happens here on every path.
func execute(cmd *cobra.Command) error {
	err := cmd.Execute()
	if cerr := closeLog(); err == nil {
		err = cerr
	}
	return err
}

func closeLog() error {
	if logCloser == nil {
		return nil
	}
	err := logCloser.Close()
	logCloser = nil
	return err
}
