// Package cli wires the cobra command tree for the voxa binary.
package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/voxa/internal/app"
)

// Options holds CLI-level configuration.
type Options struct {
	ConfigPath string
	SocketPath string
	Verbose    bool
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, app.Options{
		ConfigPath: opts.ConfigPath,
		SocketPath: opts.SocketPath,
		Verbose:    opts.Verbose,
	})
	if err != nil {
		return nil, err
	}

	askCmd := newAskCommand(container)

	root := &cobra.Command{
		Use:   "voxa [utterance]",
		Short: "VOXA - voice-driven personal assistant",
		Long:  "VOXA turns spoken or typed utterances into validated, safely-executed actions.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			askCmd.SetArgs([]string{strings.Join(args, " ")})
			return askCmd.ExecuteContext(cmd.Context())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(askCmd)
	root.AddCommand(newRunCommand(container))
	root.AddCommand(newTriggerCommand(opts.SocketPath))
	root.AddCommand(newHistoryCommand(container))
	root.AddCommand(newCacheCommand(container))
	root.AddCommand(newConfigCommand(container))
	root.AddCommand(newRemindersCommand(container))
	root.AddCommand(newDoctorCommand(container))
	root.AddCommand(newVersionCommand())
	return root, nil
}
