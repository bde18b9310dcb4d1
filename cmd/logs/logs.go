// Package logs implements the wallyouneed logs commands.
package logs

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wallyouneed/wallyouneed/internal/app"
	"github.com/wallyouneed/wallyouneed/internal/errors"
	"github.com/wallyouneed/wallyouneed/internal/logger"
)

// AppOpener builds the application services for one command run
type AppOpener func(cmd *cobra.Command) (*app.App, error)

// Command creates the logs parent command
func Command(open AppOpener) *cobra.Command {
	logsCmd := &cobra.Command{
		Use:   "logs",
		Short: "Inspect, emit and export application logs",
	}

	logsCmd.AddCommand(
		exportCommand(open),
		openCommand(open),
		pathCommand(open),
		emitCommand(open),
	)

	return logsCmd
}

// withApp opens the services, runs fn and closes them again
func withApp(open AppOpener, fn func(cmd *cobra.Command, a *app.App, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := open(cmd)
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := a.Close(); closeErr != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", closeErr)
			}
		}()
		return fn(cmd, a, args)
	}
}

func exportCommand(open AppOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Bundle all log files and a system snapshot into a zip archive",
		Args:  cobra.NoArgs,
		RunE: withApp(open, func(cmd *cobra.Command, a *app.App, _ []string) error {
			result := <-a.Logs.ExportLogsAsync(cmd.Context())
			if result.Err != nil {
				a.Logs.LogError(result.Err, "Log export {ExportId} failed", result.ID)
				return result.Err
			}

			fmt.Fprintln(cmd.OutOrStdout(), result.Path)

			if a.Metrics != nil {
				if err := a.Metrics.WriteText(cmd.ErrOrStderr()); err != nil {
					return err
				}
			}
			return nil
		}),
	}
}

func openCommand(open AppOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "open",
		Short: "Show the log directory in the file browser",
		Args:  cobra.NoArgs,
		RunE: withApp(open, func(_ *cobra.Command, a *app.App, _ []string) error {
			a.Logs.OpenLogDirectory()
			return nil
		}),
	}
}

func pathCommand(open AppOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the log directory",
		Args:  cobra.NoArgs,
		RunE: withApp(open, func(cmd *cobra.Command, a *app.App, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), a.Logs.LogDirectory())
			return nil
		}),
	}
}

func emitCommand(open AppOpener) *cobra.Command {
	var (
		level   string
		errText string
	)

	cmd := &cobra.Command{
		Use:   "emit <message> [args...]",
		Short: "Write one event through the log facade",
		Long: `Write one event through the log facade. The message may contain {Name}
placeholders which are bound to the remaining arguments in order.`,
		Example: `  wallyouneed logs emit --level info "Navigation: {FromPage} -> {ToPage}" Home Settings`,
		Args:    cobra.MinimumNArgs(1),
		PreRunE: func(_ *cobra.Command, _ []string) error {
			parsed, err := logger.ParseLevel(strings.ToLower(level))
			if err != nil {
				return err
			}
			// the facade has no trace method
			if parsed == logger.LogLevelTrace {
				return fmt.Errorf("level %q is not supported by emit, use debug", level)
			}
			level = string(parsed)
			return nil
		},
		RunE: withApp(open, func(_ *cobra.Command, a *app.App, args []string) error {
			msg := args[0]
			values := make([]any, 0, len(args)-1)
			for _, arg := range args[1:] {
				values = append(values, arg)
			}

			var cause error
			if errText != "" {
				cause = errors.NewStd(errText)
			}

			switch logger.LogLevel(level) {
			case logger.LogLevelDebug:
				a.Logs.LogDebug(msg, values...)
			case logger.LogLevelInfo:
				a.Logs.LogInfo(msg, values...)
			case logger.LogLevelWarn:
				a.Logs.LogWarning(msg, values...)
			case logger.LogLevelError:
				a.Logs.LogError(cause, msg, values...)
			case logger.LogLevelCritical:
				a.Logs.LogCritical(cause, msg, values...)
			}
			return nil
		}),
	}

	cmd.Flags().StringVarP(&level, "level", "l", string(logger.LogLevelInfo), "Event level: debug, info, warn, error or critical")
	cmd.Flags().StringVar(&errText, "error", "", "Error message attached to error and critical events")

	return cmd
}
