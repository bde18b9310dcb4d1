// Package config implements the wallyouneed config commands.
package config

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/wallyouneed/wallyouneed/internal/conf"
)

// SettingsLoader loads the effective settings
type SettingsLoader func() (*conf.Settings, error)

// Command creates the config parent command
func Command(load SettingsLoader) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the effective configuration",
	}

	configCmd.AddCommand(showCommand(load))

	return configCmd
}

// effectiveConfig is the YAML document printed by config show
type effectiveConfig struct {
	Source   string         `yaml:"source"`
	Settings *conf.Settings `yaml:"settings"`
	Resolved conf.Paths     `yaml:"resolved"`
}

func showCommand(load SettingsLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := load()
			if err != nil {
				return err
			}

			doc := effectiveConfig{
				Source:   settings.ConfigFile,
				Settings: settings,
				Resolved: settings.ResolvePaths(),
			}
			if doc.Source == "" {
				doc.Source = "defaults"
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(doc); err != nil {
				return fmt.Errorf("failed to encode configuration: %w", err)
			}
			return enc.Close()
		},
	}
}
