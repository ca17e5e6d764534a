package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/soyeahso/llmsession/internal/invoke"
	"github.com/spf13/cobra"
)

func newChatCmd() *cobra.Command {
	var (
		stateless   bool
		sessionID   string
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Hold a conversation, one user turn per input line",
		Long: "chat reads user turns from stdin, one per line, and prints each reply. " +
			"History accumulates for the life of the process unless --stateless is set.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkConfig(); err != nil {
				return err
			}

			e, err := newEngine(metricsAddr != "")
			if err != nil {
				return err
			}
			defer e.Close()

			if metricsAddr != "" {
				_, stop, err := e.serveMetrics(metricsAddr)
				if err != nil {
					return err
				}
				defer stop()
			}

			if sessionID == "" {
				sessionID = uuid.NewString()
			}

			var inv invoke.Invoker = e.stateful()
			if stateless {
				inv = e.stateless()
			}

			out := cmd.OutOrStdout()
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				text := strings.TrimSpace(scanner.Text())
				if text == "" {
					continue
				}
				reply, err := inv.Invoke(cmd.Context(), text, sessionID)
				if err != nil {
					return fmt.Errorf("chat: %w", err)
				}
				fmt.Fprintf(out, "Assistant: %s\n", reply)
			}
			return scanner.Err()
		},
	}

	cmd.Flags().BoolVar(&stateless, "stateless", false, "send every turn without history")
	cmd.Flags().StringVar(&sessionID, "session", "", "session id for log correlation (default: new UUID)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address for the session")
	return cmd
}
