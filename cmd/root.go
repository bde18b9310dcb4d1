package cmd

import (
	"github.com/spf13/cobra"

	configcmd "github.com/wallyouneed/wallyouneed/cmd/config"
	"github.com/wallyouneed/wallyouneed/cmd/logs"
	"github.com/wallyouneed/wallyouneed/internal/app"
	"github.com/wallyouneed/wallyouneed/internal/conf"
	runtimectx "github.com/wallyouneed/wallyouneed/internal/runtime"
)

// RootCommand creates and returns the root command
func RootCommand(rt *runtimectx.Context) *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:          "wallyouneed",
		Short:        "WallYouNeed diagnostics CLI",
		Version:      rt.String(),
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a YAML config file (default: config.yaml in the data root)")

	// Commands get their services from here once flags are parsed
	loadSettings := func() (*conf.Settings, error) {
		return conf.Load(configFile)
	}
	openApp := func(cmd *cobra.Command) (*app.App, error) {
		settings, err := loadSettings()
		if err != nil {
			return nil, err
		}
		return app.New(settings, rt,
			app.WithNotificationOutput(cmd.ErrOrStderr()),
			app.WithGlobalLogger())
	}

	rootCmd.AddCommand(
		logs.Command(openApp),
		configcmd.Command(loadSettings),
	)

	return rootCmd
}
