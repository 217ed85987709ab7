// config.go: settings struct and functions to load and save rsf-go settings.
package conf

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

//go:embed config.yaml
var configFiles embed.FS

// RotationType defines the log rotation strategy.
type RotationType string

const (
	RotationDaily  RotationType = "daily"
	RotationWeekly RotationType = "weekly"
	RotationSize   RotationType = "size"
)

// LogConfig contains settings for a rotated log file.
type LogConfig struct {
	Enabled  bool         // true to enable this log
	Path     string       // path to log file
	Rotation RotationType // rotation type
	MaxSize  int64        // max size in bytes for size rotation
}

// MainSettings contains main program settings.
type MainSettings struct {
	Name string    // name of this analysis node, used in logs
	Log  LogConfig // main log settings
}

// MethodInput describes one home-range estimation method's input table.
type MethodInput struct {
	Label string // series label attached to every coefficient, e.g. "KDE"
	Path  string // path to the used/available CSV for this method
}

// InputSettings contains the observation table sources and column names.
type InputSettings struct {
	KDE      MethodInput // kernel density estimate table
	MCP      MethodInput // minimum convex polygon table
	Response string      // binary used/available column name
	Pack     string      // pack identity column name
	Packs    []string    // pack labels analyzed as separate panels
}

// GLMSettings contains solver settings for the logistic regressions.
type GLMSettings struct {
	MaxIterations int     // IRLS iteration cap
	Tolerance     float64 // coefficient change convergence tolerance
	Confidence    float64 // confidence level for Wald intervals, e.g. 0.95
}

// AnalysisSettings contains the model batch definition.
type AnalysisSettings struct {
	Predictors []string    // covariate columns, one univariate model each
	Workers    int         // concurrent fits per batch, 0 or 1 runs serially
	GLM        GLMSettings // solver settings
}

// FigureSettings contains settings for the rendered caterpillar figure.
type FigureSettings struct {
	Enabled bool   // true to render the figure
	Path    string // output HTML path
	Title   string // figure title
	Height  string // per-panel chart height, CSS size
	Width   string // chart width, CSS size
}

// ExportSettings contains settings for the coefficient table export.
type ExportSettings struct {
	Enabled bool   // true to write the tidied coefficient CSV
	Path    string // output CSV path
}

// MetricsSettings contains settings for the run metrics textfile.
type MetricsSettings struct {
	Enabled bool   // true to write prometheus metrics after the run
	Path    string // textfile path
}

// OutputSettings groups all run outputs.
type OutputSettings struct {
	Figure  FigureSettings
	Export  ExportSettings
	Metrics MetricsSettings
}

// Settings is the root configuration struct.
type Settings struct {
	Debug bool // true to enable debug messages

	Main     MainSettings
	Input    InputSettings
	Analysis AnalysisSettings
	Output   OutputSettings
}

// settingsInstance is the current settings instance
var (
	settingsInstance *Settings
	once             sync.Once
	settingsMutex    sync.RWMutex
)

// Load reads the configuration file and environment variables into Settings.
func Load() (*Settings, error) {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()

	settings := &Settings{}

	// Initialize viper and read config
	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	// Unmarshal the config into settings
	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	// Validate settings
	if err := ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("error validating settings: %w", err)
	}

	settingsInstance = settings
	return settingsInstance, nil
}

// initViper initializes viper with default values and reads the configuration file.
func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}

	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	// Set default values for each configuration parameter
	// function defined in defaults.go
	setDefaultConfig()

	// Read configuration file
	err = viper.ReadInConfig()
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			// Config file not found, create config with defaults
			return createDefaultConfig()
		}
		return fmt.Errorf("fatal error reading config file: %w", err)
	}

	return nil
}

// createDefaultConfig creates a default config file and writes it to the default config path
func createDefaultConfig() error {
	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}
	configPath := filepath.Join(configPaths[0], "config.yaml")
	defaultConfig := getDefaultConfig()

	// Create directories for config file
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("error creating directories for config file: %w", err)
	}

	// Write default config file
	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("error writing default config file: %w", err)
	}

	fmt.Println("Created default config file at:", configPath)
	return viper.ReadInConfig()
}

// getDefaultConfig reads the default configuration from the embedded config.yaml file.
func getDefaultConfig() string {
	data, err := fs.ReadFile(configFiles, "config.yaml")
	if err != nil {
		log.Fatalf("Error reading config file: %v", err)
	}
	return string(data)
}

// GetSettings returns the current settings instance
func GetSettings() *Settings {
	settingsMutex.RLock()
	defer settingsMutex.RUnlock()
	return settingsInstance
}

// Setting returns the current settings instance, initializing it if necessary
func Setting() *Settings {
	once.Do(func() {
		if settingsInstance == nil {
			_, err := Load()
			if err != nil {
				log.Fatalf("Error loading settings: %v", err)
			}
		}
	})
	return GetSettings()
}

// SaveSettings saves the current settings to the configuration file.
func SaveSettings() error {
	settingsMutex.RLock()
	defer settingsMutex.RUnlock()

	settingsCopy := *settingsInstance

	configPath, err := FindConfigFile()
	if err != nil {
		return fmt.Errorf("error finding config file: %w", err)
	}

	if err := SaveYAMLConfig(configPath, &settingsCopy); err != nil {
		return fmt.Errorf("error saving config: %w", err)
	}

	log.Printf("Settings saved successfully to %s", configPath)
	return nil
}

// SaveYAMLConfig updates the YAML configuration file with new settings.
// It overwrites the existing file, not preserving comments or structure.
func SaveYAMLConfig(configPath string, settings *Settings) error {
	yamlData, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("error marshaling settings to YAML: %w", err)
	}

	if err := os.WriteFile(configPath, yamlData, 0o644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}
