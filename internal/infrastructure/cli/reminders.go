package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/voxa/internal/app"
)

func newRemindersCommand(container *app.Container) *cobra.Command {
	remindersCmd := &cobra.Command{
		Use:   "reminders",
		Short: "Manage saved reminders",
	}

	remindersCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List reminders, soonest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			reminders, err := container.ReminderStore.List()
			if err != nil {
				return err
			}
			if len(reminders) == 0 {
				fmt.Fprintln(out, "No reminders.")
				return nil
			}
			for _, reminder := range reminders {
				state := " "
				if reminder.Done {
					state = "x"
				}
				fmt.Fprintf(out, "[%s] %s  %s  (%s)\n",
					state, reminder.DueAt.Format("Jan 2 15:04"), reminder.Text, reminder.ID[:8])
			}
			return nil
		},
	})

	remindersCmd.AddCommand(&cobra.Command{
		Use:   "done [id]",
		Short: "Mark a reminder as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := args[0]
			reminders, err := container.ReminderStore.List()
			if err != nil {
				return err
			}
			for _, reminder := range reminders {
				if reminder.ID == target || (len(target) >= 4 && len(reminder.ID) >= len(target) && reminder.ID[:len(target)] == target) {
					if err := container.ReminderStore.Complete(reminder.ID); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Done: %s\n", reminder.Text)
					return nil
				}
			}
			return fmt.Errorf("no reminder matches %q", target)
		},
	})

	return remindersCmd
}
