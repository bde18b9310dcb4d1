package logger

import "path/filepath"

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	DefaultLevel string            `yaml:"default_level" json:"default_level"` // default log level for all modules
	Timezone     string            `yaml:"timezone" json:"timezone"`           // "Local", "UTC", or IANA timezone name
	Console      *ConsoleOutput    `yaml:"console" json:"console"`             // console output configuration
	FileOutput   *FileOutput       `yaml:"file_output" json:"file_output"`     // file output configuration
	ModuleLevels map[string]string `yaml:"module_levels" json:"module_levels"` // per-module log levels
}

// ConsoleOutput represents console logging configuration.
// Console output uses human-readable text format on stderr.
type ConsoleOutput struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Level   string `yaml:"level" json:"level"`
}

// FileOutput represents file logging configuration.
// File output uses JSON lines with RFC3339 timestamps.
type FileOutput struct {
	Enabled         bool   `yaml:"enabled" json:"enabled"`
	Path            string `yaml:"path" json:"path"`                           // log file path, must end in .log to be exported
	MaxSize         int    `yaml:"max_size" json:"max_size"`                   // MB before lumberjack rolls the file
	MaxAge          int    `yaml:"max_age" json:"max_age"`                     // days to keep rolled files (0 = no limit)
	MaxRotatedFiles int    `yaml:"max_rotated_files" json:"max_rotated_files"` // rolled files to keep (0 = no limit)
	Level           string `yaml:"level" json:"level"`
}

// Default values for logging configuration.
const (
	DefaultLogLevel        = "info"
	DefaultLogFileName     = "wallyouneed.log"
	DefaultMaxSize         = 10 // MB
	DefaultMaxAge          = 30 // days
	DefaultMaxRotatedFiles = 10
	DefaultConsoleEnabled  = true
	DefaultFileEnabled     = true
)

// NewDefaultConfig returns a configuration that writes JSON lines to
// DefaultLogFileName inside logDir and mirrors entries to the console.
func NewDefaultConfig(logDir, level string) *LoggingConfig {
	cfg := &LoggingConfig{
		DefaultLevel: level,
		FileOutput: &FileOutput{
			Enabled:         DefaultFileEnabled,
			Path:            filepath.Join(logDir, DefaultLogFileName),
			Level:           level,
			MaxSize:         DefaultMaxSize,
			MaxAge:          DefaultMaxAge,
			MaxRotatedFiles: DefaultMaxRotatedFiles,
		},
	}
	applyConfigDefaults(cfg)
	return cfg
}

// applyConfigDefaults applies sensible defaults for nil configuration sections.
func applyConfigDefaults(cfg *LoggingConfig) {
	if cfg == nil {
		return
	}

	if cfg.DefaultLevel == "" {
		cfg.DefaultLevel = DefaultLogLevel
	}

	if cfg.Console == nil {
		cfg.Console = &ConsoleOutput{
			Enabled: DefaultConsoleEnabled,
			Level:   cfg.DefaultLevel,
		}
	}

	if cfg.FileOutput == nil {
		cfg.FileOutput = &FileOutput{
			Enabled:         DefaultFileEnabled,
			Path:            DefaultLogFileName,
			Level:           cfg.DefaultLevel,
			MaxSize:         DefaultMaxSize,
			MaxAge:          DefaultMaxAge,
			MaxRotatedFiles: DefaultMaxRotatedFiles,
		}
	}
}
