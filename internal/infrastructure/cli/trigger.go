package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/voxa/internal/infrastructure/trigger"
)

func newTriggerCommand(socketPath string) *cobra.Command {
	return &cobra.Command{
		Use:   "trigger [utterance]",
		Short: "Send a hotkey trigger to a running daemon",
		Long:  "Bind this to a desktop keybinding. Without arguments the daemon captures audio; with arguments the text is processed directly.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return trigger.Send(socketPath, strings.Join(args, " "))
		},
	}
}
