package cli

import (
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/voxa/assets"
	"github.com/doeshing/voxa/internal/app"
	appconfig "github.com/doeshing/voxa/internal/application/config"
	"github.com/doeshing/voxa/internal/domain"
)

func newConfigCommand(container *app.Container) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the effective configuration",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := yaml.Marshal(redact(container))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", container.ConfigLoader.Path(), raw)
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Check the configuration for consistency",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appconfig.Validate(container.Config); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Configuration is valid.")
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), container.ConfigLoader.Path())
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file if none exists",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := container.ConfigLoader.Load(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), container.ConfigLoader.Path())
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "diff",
		Short: "Show how the configuration differs from the defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			var defaults domain.Config
			if err := yaml.Unmarshal(assets.DefaultConfigYAML, &defaults); err != nil {
				return fmt.Errorf("parse embedded defaults: %w", err)
			}
			diff := cmp.Diff(defaults, container.Config)
			if diff == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Configuration matches the defaults.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), diff)
			return nil
		},
	})

	return configCmd
}

// redact blanks secrets before printing.
func redact(container *app.Container) any {
	cfg := container.Config
	if cfg.Web.WeatherAPIKey != "" {
		cfg.Web.WeatherAPIKey = "***"
	}
	if cfg.Web.NewsAPIKey != "" {
		cfg.Web.NewsAPIKey = "***"
	}
	if cfg.Email.Password != "" {
		cfg.Email.Password = "***"
	}
	return cfg
}
