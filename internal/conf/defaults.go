// conf/defaults.go default values for settings
package conf

import (
	"github.com/spf13/viper"
)

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("main.name", "rsf-go")
	viper.SetDefault("main.log.enabled", true)
	viper.SetDefault("main.log.path", "rsf.log")
	viper.SetDefault("main.log.rotation", RotationDaily)
	viper.SetDefault("main.log.maxsize", 1048576)

	viper.SetDefault("input.kde.label", "KDE")
	viper.SetDefault("input.kde.path", "data/wolfkde.csv")
	viper.SetDefault("input.mcp.label", "MCP")
	viper.SetDefault("input.mcp.path", "data/wolfmcp.csv")
	viper.SetDefault("input.response", "used")
	viper.SetDefault("input.pack", "pack")
	viper.SetDefault("input.packs", []string{"Red Deer", "Bow Valley"})

	viper.SetDefault("analysis.predictors", []string{
		"deer_w2",
		"moose_w2",
		"elk_w2",
		"sheep_w2",
		"goat_w2",
		"wolf_w2",
		"Elevation2",
		"DistFromHumanAccess2",
		"DistFromHighHumanAccess2",
	})
	viper.SetDefault("analysis.workers", 1)
	viper.SetDefault("analysis.glm.maxiterations", 25)
	viper.SetDefault("analysis.glm.tolerance", 1e-8)
	viper.SetDefault("analysis.glm.confidence", 0.95)

	viper.SetDefault("output.figure.enabled", true)
	viper.SetDefault("output.figure.path", "output/coefficients.html")
	viper.SetDefault("output.figure.title", "Habitat selection coefficients, KDE vs MCP")
	viper.SetDefault("output.figure.height", "500px")
	viper.SetDefault("output.figure.width", "1100px")

	viper.SetDefault("output.export.enabled", false)
	viper.SetDefault("output.export.path", "output/coefficients.csv")

	viper.SetDefault("output.metrics.enabled", false)
	viper.SetDefault("output.metrics.path", "output/run_metrics.prom")
}
