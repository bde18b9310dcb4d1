// env.go - Environment variable configuration and validation for WallYouNeed
package conf

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/wallyouneed/wallyouneed/internal/logger"
)

// envBinding holds metadata for environment variable bindings (internal use)
type envBinding struct {
	ConfigKey string             // Viper config key
	EnvVar    string             // Environment variable name
	Validate  func(string) error // Optional validation function
}

// getEnvBindings returns all environment variable bindings with validation
func getEnvBindings() []envBinding {
	return []envBinding{
		{"paths.dataroot", "WALLYOUNEED_PATHS_DATAROOT", validateEnvPath},
		{"paths.outputdir", "WALLYOUNEED_PATHS_OUTPUTDIR", validateEnvPath},
		{"paths.tempdir", "WALLYOUNEED_PATHS_TEMPDIR", validateEnvPath},

		{"logging.level", "WALLYOUNEED_LOGGING_LEVEL", validateEnvLogLevel},
		{"logging.console", "WALLYOUNEED_LOGGING_CONSOLE", validateEnvBool},
		{"logging.filename", "WALLYOUNEED_LOGGING_FILENAME", nil},
		{"logging.timezone", "WALLYOUNEED_LOGGING_TIMEZONE", nil},

		{"metrics.enabled", "WALLYOUNEED_METRICS_ENABLED", validateEnvBool},
	}
}

// bindEnvVars sets up environment variable bindings with validation (internal)
func bindEnvVars(v *viper.Viper) error {
	var warnings []string

	for _, binding := range getEnvBindings() {
		if err := v.BindEnv(binding.ConfigKey, binding.EnvVar); err != nil {
			warnings = append(warnings, fmt.Sprintf("Failed to bind %s: %v", binding.EnvVar, err))
			continue
		}

		if binding.Validate != nil {
			if envValue := os.Getenv(binding.EnvVar); envValue != "" {
				if err := binding.Validate(envValue); err != nil {
					warnings = append(warnings, fmt.Sprintf("Invalid %s value '%s': %v", binding.EnvVar, envValue, err))
				}
			}
		}
	}

	if len(warnings) > 0 {
		return fmt.Errorf("environment variable issues:\n  - %s", strings.Join(warnings, "\n  - "))
	}

	return nil
}

// validateEnvBool validates boolean environment variables
func validateEnvBool(value string) error {
	if _, err := strconv.ParseBool(strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("invalid boolean value '%s': must be true/false, 1/0, t/f", value)
	}
	return nil
}

func validateEnvLogLevel(value string) error {
	_, err := logger.ParseLevel(strings.ToLower(strings.TrimSpace(value)))
	return err
}

func validateEnvPath(value string) error {
	cleanedPath := filepath.Clean(value)
	if !filepath.IsAbs(cleanedPath) {
		return fmt.Errorf("path must be absolute, got relative path: %s", cleanedPath)
	}
	return nil
}
