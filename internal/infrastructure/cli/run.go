package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/doeshing/voxa/internal/app"
	appconfig "github.com/doeshing/voxa/internal/application/config"
)

func newRunCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the assistant daemon",
		Long:  "Starts the wake word listener, the hotkey socket and the command pipeline, until interrupted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if err := appconfig.Validate(container.Config); err != nil {
				return fmt.Errorf("configuration invalid: %w", err)
			}

			container.Loop.Start(ctx)
			defer container.Loop.Stop()
			defer container.Close()

			go func() {
				err := container.Trigger.Listen(ctx, func(utterance string) {
					container.Loop.TriggerHotkey(utterance)
				})
				if err != nil {
					container.Logger.Error("trigger listener exited", err, nil)
				}
			}()

			container.Logger.Info("voxa is listening", map[string]interface{}{
				"wake_word": container.Config.GetWakeWord(),
			})

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			select {
			case <-sig:
			case <-ctx.Done():
			}

			container.Logger.Info("shutting down", nil)
			return nil
		},
	}
}
