package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/voxa/internal/app"
)

func newHistoryCommand(container *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show this session's command history",
		Long:  "History lives in memory only; it covers the current process, not previous runs.",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			entries := container.Dispatcher.History(limit)
			if len(entries) == 0 {
				fmt.Fprintln(out, "No commands in this session.")
				return nil
			}
			for _, entry := range entries {
				status := "ok"
				if !entry.Result.Success {
					status = "failed"
				}
				fmt.Fprintf(out, "%4d  %-20s %-6s %s\n",
					entry.Seq, entry.Command.Intent, status, entry.Command.RawText)
			}

			stats := container.Dispatcher.Stats()
			fmt.Fprintf(out, "\n%d dispatched, %d failed\n", stats.Executed, stats.Failed)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum entries to show")
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Clear this session's history",
		RunE: func(cmd *cobra.Command, args []string) error {
			container.Dispatcher.ClearHistory()
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "undo",
		Short: "Undo the most recent reversible command",
		RunE: func(cmd *cobra.Command, args []string) error {
			renderResult(cmd.OutOrStdout(), container.Dispatcher.UndoLast(cmd.Context()))
			return nil
		},
	})
	return cmd
}
