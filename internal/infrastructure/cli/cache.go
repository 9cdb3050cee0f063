package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/voxa/internal/app"
)

func newCacheCommand(container *app.Container) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the intent cache",
	}

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List cached classifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			entries, err := container.CacheStore.Entries()
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "No cached classifications.")
				return nil
			}
			now := time.Now()
			for _, entry := range entries {
				state := "valid"
				if entry.Expired(now) {
					state = "expired"
				}
				fmt.Fprintf(out, "%-8s %-20s %q\n", state, entry.Classification.Intent, entry.Utterance)
			}
			return nil
		},
	})

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Drop all cached classifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.CacheStore.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared.")
			return nil
		},
	})

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show resolution path counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats := container.Resolver.Stats()
			fmt.Fprintf(cmd.OutOrStdout(), "remote: %d\ncache: %d\nfallback: %d\n",
				stats.Remote, stats.Cache, stats.Fallback)
			return nil
		},
	})

	return cacheCmd
}
