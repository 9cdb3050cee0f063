package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/voxa/internal/app"
	"github.com/doeshing/voxa/internal/application/doctor"
	"github.com/doeshing/voxa/internal/domain"
)

func newDoctorCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the environment for missing tools and credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			service := &doctor.Service{
				ConfigProvider: container.ConfigLoader,
				Validator:      container.Validator,
				CacheStore:     container.CacheStore,
				Registry:       container.Registry,
			}

			report, err := service.Run(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, check := range report.Checks {
				fmt.Fprintf(out, "%s %-20s %s\n", statusGlyph(check.Status), check.Name, check.Details)
			}
			if report.Healthy() {
				fmt.Fprintln(out, "\nAll checks passed.")
			} else {
				fmt.Fprintln(out, "\nSome checks need attention.")
			}
			return nil
		},
	}
}

func statusGlyph(status domain.HealthStatus) string {
	switch status {
	case domain.HealthOK:
		return "[ok]  "
	case domain.HealthWarn:
		return "[warn]"
	default:
		return "[fail]"
	}
}
