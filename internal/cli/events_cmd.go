package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/soyeahso/llmsession/internal/eventlog"
	"github.com/soyeahso/llmsession/internal/store"
	"github.com/spf13/cobra"
)

func newEventsCmd() *cobra.Command {
	var (
		search string
		limit  int
		remove bool
	)

	cmd := &cobra.Command{
		Use:   "events [session-id]",
		Short: "Inspect the event journal",
		Long: "Without arguments, lists journaled sessions. With a session id, prints its " +
			"events as JSON lines in emission order.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := store.Open(journalPath(), log)
			if err != nil {
				return fmt.Errorf("opening journal: %w", err)
			}
			defer db.Close()
			j := store.NewJournal(db)
			out := cmd.OutOrStdout()

			switch {
			case remove:
				if len(args) == 0 {
					return fmt.Errorf("--delete needs a session id")
				}
				if err := j.DeleteSession(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(out, "Deleted %s\n", args[0])
				return nil

			case search != "":
				events, err := j.Search(search, limit)
				if err != nil {
					return fmt.Errorf("searching journal: %w", err)
				}
				return printEvents(cmd, events)

			case len(args) == 1:
				events, err := j.Session(args[0])
				if err != nil {
					return err
				}
				if len(events) == 0 {
					return fmt.Errorf("session %q not found", args[0])
				}
				return printEvents(cmd, events)
			}

			sessions, err := j.Sessions()
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				fmt.Fprintln(out, "(no sessions journaled)")
				return nil
			}
			for _, s := range sessions {
				fmt.Fprintf(out, "%-36s  %-9s  events=%-3d  last=%s\n",
					s.ID, s.Mode, s.Events, s.LastSeen.Format(time.RFC3339))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "full-text search over messages, responses and errors")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum search results")
	cmd.Flags().BoolVar(&remove, "delete", false, "delete the given session from the journal")
	return cmd
}

func printEvents(cmd *cobra.Command, events []eventlog.Event) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	for _, e := range events {
		if err := enc.Encode(e); err != nil {
			return err
		}
	}
	return nil
}
