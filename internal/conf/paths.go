package conf

import (
	"os"
	"path/filepath"
)

// Directory names under the data root.
const (
	AppDirName  = "WallYouNeed"
	LogsDirName = "Logs"
)

// LogFileExt is the extension log files must carry to be picked up by an export
const LogFileExt = ".log"

// Paths is the resolved set of directories shared by the logging and export
// components. It is passed by value; nothing reads it from global state.
type Paths struct {
	DataRoot  string // per-user application data root
	LogDir    string // <DataRoot>/WallYouNeed/Logs
	OutputDir string // destination for exported archives
	TempDir   string // parent of export scratch directories
}

// NewPaths derives LogDir from dataRoot. Empty outputDir or tempDir fall back
// to the platform defaults.
func NewPaths(dataRoot, outputDir, tempDir string) Paths {
	if outputDir == "" {
		outputDir = defaultOutputDir()
	}
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return Paths{
		DataRoot:  dataRoot,
		LogDir:    filepath.Join(dataRoot, AppDirName, LogsDirName),
		OutputDir: outputDir,
		TempDir:   tempDir,
	}
}

// GetDefaultConfigPaths returns the directories searched for config.yaml, most specific first.
func GetDefaultConfigPaths(dataRoot string) []string {
	var paths []string
	if dataRoot != "" {
		paths = append(paths, filepath.Join(dataRoot, AppDirName))
	}

	// Next to the executable, for portable installs
	if exePath, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Dir(exePath))
	}

	return paths
}

// defaultDataRoot is the per-user configuration directory (AppData\Roaming on Windows)
func defaultDataRoot() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir
	}
	return userHomeDir()
}

// defaultOutputDir prefers the user's desktop so exported archives are easy to find
func defaultOutputDir() string {
	home := userHomeDir()
	desktop := filepath.Join(home, "Desktop")
	if info, err := os.Stat(desktop); err == nil && info.IsDir() {
		return desktop
	}
	return home
}
