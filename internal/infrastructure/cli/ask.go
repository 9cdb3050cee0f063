package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/voxa/internal/app"
	"github.com/doeshing/voxa/internal/application/dispatch"
	"github.com/doeshing/voxa/internal/domain"
)

func newAskCommand(container *app.Container) *cobra.Command {
	var (
		confirm bool
		speak   bool
	)

	cmd := &cobra.Command{
		Use:   "ask [utterance]",
		Short: "Process one utterance through the pipeline",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			utterance := strings.Join(args, " ")

			// typed input goes through the higher-trust hotkey path
			command, err := container.Resolver.Resolve(ctx, utterance, domain.SourceHotkey)
			if err != nil {
				return err
			}
			renderCommand(cmd.OutOrStdout(), command)

			result := container.Dispatcher.Dispatch(ctx, command)
			if dispatch.ConfirmationNeeded(result) {
				approved := confirm
				if !approved {
					approved = promptYesNo(cmd.InOrStdin(), cmd.OutOrStdout(),
						fmt.Sprintf("%q needs confirmation. Proceed? [y/N] ", command.Intent))
				}
				if approved {
					result = container.Dispatcher.DispatchConfirmed(ctx, command)
				}
			}

			renderResult(cmd.OutOrStdout(), result)
			if speak {
				_ = container.Audio.Speak(result.Message)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&confirm, "yes", "y", false, "Pre-approve confirmation prompts")
	cmd.Flags().BoolVarP(&speak, "speak", "s", false, "Speak the result through the synthesizer")
	return cmd
}

func renderCommand(out io.Writer, cmd domain.Command) {
	fmt.Fprintf(out, "intent: %s (confidence %.2f, via %s)\n", cmd.Intent, cmd.Confidence, cmd.ProcessingMethod)
	for key, value := range cmd.Entities {
		fmt.Fprintf(out, "  %s: %v\n", key, value)
	}
}

func renderResult(out io.Writer, result domain.ExecutionResult) {
	if result.Success {
		fmt.Fprintf(out, "ok: %s\n", result.Message)
		return
	}
	fmt.Fprintf(out, "failed: %s", result.Message)
	if result.Error != "" {
		fmt.Fprintf(out, " (%s)", result.Error)
	}
	fmt.Fprintln(out)
}

func promptYesNo(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
