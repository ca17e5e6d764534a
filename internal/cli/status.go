package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/soyeahso/llmsession/internal/config"
	"github.com/soyeahso/llmsession/internal/llm"
	"github.com/soyeahso/llmsession/internal/version"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show paths, provider and journal settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "llmsession %s (commit %s)\n\n", version.Version, version.Commit)

			fmt.Fprintf(out, "Config:   %s", paths.Config)
			if _, err := os.Stat(paths.Config); os.IsNotExist(err) {
				fmt.Fprint(out, " (not found, using defaults)")
			}
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Data:     %s\n", paths.Data)
			fmt.Fprintf(out, "Logs:     %s\n", paths.Logs)
			fmt.Fprintln(out)

			endpoint := cfg.Endpoint
			if endpoint == "" {
				endpoint = "(default)"
			}
			key := "not set"
			if !cfg.NeedsAPIKey() {
				key = "not required"
			} else if cfg.APIKey != "" {
				key = "set"
			}
			fmt.Fprintf(out, "Provider: %s model=%s endpoint=%s key=%s\n",
				cfg.Provider, cfg.Model, endpoint, key)

			registry := llm.NewRegistryFromConfig(cfg, log)
			if providers := registry.List(); len(providers) > 0 {
				fmt.Fprintf(out, "LLM:      %s\n", strings.Join(providers, ", "))
			} else {
				fmt.Fprintln(out, "LLM:      (none registered)")
			}

			fmt.Fprintf(out, "Logging:  level=%s style=%s", cfg.Logging.Level, cfg.Logging.Style)
			if cfg.Logging.File != "" {
				fmt.Fprintf(out, " file=%s", cfg.Logging.File)
			}
			fmt.Fprintln(out)

			if cfg.Journal.Enabled {
				fmt.Fprintf(out, "Journal:  %s\n", journalPath())
			} else {
				fmt.Fprintln(out, "Journal:  disabled")
			}

			issues := config.Validate(&cfg)
			if len(issues) > 0 {
				fmt.Fprintf(out, "\nValidation issues (%d):\n", len(issues))
				for _, issue := range issues {
					fmt.Fprintf(out, "  - %s: %s\n", issue.Path, issue.Message)
				}
			}

			return nil
		},
	}
}
