// Package conf provides configuration management for WallYouNeed.
//
// Settings come from three layers, lowest precedence first: built-in defaults,
// an optional YAML file, and WALLYOUNEED_* environment variables.
package conf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/wallyouneed/wallyouneed/internal/errors"
	"github.com/wallyouneed/wallyouneed/internal/logger"
)

// Settings is the effective application configuration.
type Settings struct {
	Paths   PathSettings    `mapstructure:"paths" yaml:"paths"`
	Logging LoggingSettings `mapstructure:"logging" yaml:"logging"`
	Metrics MetricsSettings `mapstructure:"metrics" yaml:"metrics"`

	// ConfigFile is the file the settings were read from, empty when none was found
	ConfigFile string `mapstructure:"-" yaml:"-"`
}

// PathSettings holds the filesystem roots the application writes under.
type PathSettings struct {
	DataRoot  string `mapstructure:"dataroot" yaml:"dataroot"`   // per-user application data root
	OutputDir string `mapstructure:"outputdir" yaml:"outputdir"` // where exported archives are placed
	TempDir   string `mapstructure:"tempdir" yaml:"tempdir"`     // scratch space for export bundles
}

// LoggingSettings controls the central logger.
type LoggingSettings struct {
	Level    string `mapstructure:"level" yaml:"level"`
	Console  bool   `mapstructure:"console" yaml:"console"`
	Filename string `mapstructure:"filename" yaml:"filename"`
	Timezone string `mapstructure:"timezone" yaml:"timezone"`
}

// MetricsSettings toggles prometheus collection for log exports.
type MetricsSettings struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

// Load reads configuration into a new Settings value. An empty configFile
// searches the default config paths; a missing file there is not an error.
func Load(configFile string) (*Settings, error) {
	v := viper.New()
	setDefaultConfig(v)

	if err := bindEnvVars(v); err != nil {
		return nil, errors.New(err).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Context("operation", "bind-env").
			Build()
	}

	if err := readConfigFile(v, configFile); err != nil {
		return nil, err
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, errors.New(fmt.Errorf("error unmarshaling config into struct: %w", err)).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}
	settings.ConfigFile = v.ConfigFileUsed()
	settings.Logging.Level = strings.ToLower(strings.TrimSpace(settings.Logging.Level))

	if err := ValidateSettings(settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// readConfigFile loads an explicit file, or the first config.yaml found in the default paths
func readConfigFile(v *viper.Viper, configFile string) error {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return errors.New(err).
				Component("conf").
				Category(errors.CategoryConfiguration).
				Context("config_file", configFile).
				Build()
		}
		return nil
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, path := range GetDefaultConfigPaths(v.GetString("paths.dataroot")) {
		v.AddConfigPath(path)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			GetLogger().Debug("no config file found, using defaults")
			return nil
		}
		return errors.New(fmt.Errorf("fatal error reading config file: %w", err)).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}

	return nil
}

// ValidateSettings checks values that cannot be fixed up silently.
func ValidateSettings(s *Settings) error {
	if s == nil {
		return errors.Newf("settings cannot be nil").
			Component("conf").
			Category(errors.CategoryValidation).
			Build()
	}

	if _, err := logger.ParseLevel(s.Logging.Level); err != nil {
		return errors.New(err).
			Component("conf").
			Category(errors.CategoryValidation).
			Context("key", "logging.level").
			Build()
	}

	if s.Paths.DataRoot == "" {
		return errors.Newf("paths.dataroot must not be empty").
			Component("conf").
			Category(errors.CategoryValidation).
			Build()
	}

	if s.Logging.Filename == "" || filepath.Base(s.Logging.Filename) != s.Logging.Filename {
		return errors.Newf("logging.filename must be a plain file name, got %q", s.Logging.Filename).
			Component("conf").
			Category(errors.CategoryValidation).
			Build()
	}

	if !strings.EqualFold(filepath.Ext(s.Logging.Filename), LogFileExt) {
		return errors.Newf("logging.filename must end in %s, got %q", LogFileExt, s.Logging.Filename).
			Component("conf").
			Category(errors.CategoryValidation).
			Context("key", "logging.filename").
			Build()
	}

	return nil
}

// ResolvePaths resolves the directories every component works with.
func (s *Settings) ResolvePaths() Paths {
	return NewPaths(s.Paths.DataRoot, s.Paths.OutputDir, s.Paths.TempDir)
}

// LoggerConfig builds the central logger configuration for the resolved log directory.
func (s *Settings) LoggerConfig(p Paths) *logger.LoggingConfig {
	cfg := logger.NewDefaultConfig(p.LogDir, s.Logging.Level)
	cfg.Timezone = s.Logging.Timezone
	cfg.Console.Enabled = s.Logging.Console
	cfg.FileOutput.Path = filepath.Join(p.LogDir, s.Logging.Filename)
	return cfg
}

// GetLogger returns the config package logger scoped to the config module.
// The logger is fetched from the global logger each time so that it follows
// the central logger once it has been installed.
func GetLogger() logger.Logger {
	return logger.Global().Module("config")
}

// userHomeDir returns the home directory, or the working directory when it cannot be determined
func userHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}
