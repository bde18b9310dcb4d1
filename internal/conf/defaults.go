// conf/defaults.go default values for settings
package conf

import (
	"os"

	"github.com/spf13/viper"

	"github.com/wallyouneed/wallyouneed/internal/logger"
)

// Sets default values for the configuration.
func setDefaultConfig(v *viper.Viper) {
	v.SetDefault("paths.dataroot", defaultDataRoot())
	v.SetDefault("paths.outputdir", defaultOutputDir())
	v.SetDefault("paths.tempdir", os.TempDir())

	v.SetDefault("logging.level", logger.DefaultLogLevel)
	v.SetDefault("logging.console", logger.DefaultConsoleEnabled)
	v.SetDefault("logging.filename", logger.DefaultLogFileName)
	v.SetDefault("logging.timezone", "Local")

	v.SetDefault("metrics.enabled", false)
}
