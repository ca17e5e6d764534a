package cli

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/soyeahso/llmsession/internal/invoke"
	"github.com/spf13/cobra"
)

func newAskCmd() *cobra.Command {
	var (
		stateful  bool
		sessionID string
	)

	cmd := &cobra.Command{
		Use:   "ask <text...>",
		Short: "Send a single user turn and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkConfig(); err != nil {
				return err
			}

			e, err := newEngine(false)
			if err != nil {
				return err
			}
			defer e.Close()

			if sessionID == "" {
				sessionID = uuid.NewString()
			}

			var inv invoke.Invoker = e.stateless()
			if stateful {
				inv = e.stateful()
			}

			reply, err := inv.Invoke(cmd.Context(), strings.Join(args, " "), sessionID)
			if err != nil {
				return fmt.Errorf("ask: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), reply)
			return nil
		},
	}

	cmd.Flags().BoolVar(&stateful, "stateful", false, "send the configured system prompt and record the exchange")
	cmd.Flags().StringVar(&sessionID, "session", "", "session id for log correlation (default: new UUID)")
	return cmd
}
