// conf/utils.go config path helpers
package conf

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/wildrange/rsf-go/internal/errors"
)

const osWindows = "windows"

// GetDefaultConfigPaths returns a list of default config paths for the current OS.
func GetDefaultConfigPaths() ([]string, error) {
	var configPaths []string

	// Fetch the directory of the executable.
	exePath, err := os.Executable()
	if err != nil {
		return nil, errors.New(err).
			Category(errors.CategorySystem).
			Context("operation", "get-executable-path").
			Build()
	}
	exeDir := filepath.Dir(exePath)

	// Fetch the user's home directory.
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, errors.New(err).
			Category(errors.CategorySystem).
			Context("operation", "get-home-directory").
			Build()
	}

	// Define default paths based on the operating system.
	switch runtime.GOOS {
	case osWindows:
		configPaths = []string{
			exeDir,
			filepath.Join(homeDir, "AppData", "Roaming", "rsf-go"),
		}
	default:
		configPaths = []string{
			filepath.Join(homeDir, ".config", "rsf-go"),
			".",
			exeDir,
		}
	}

	return configPaths, nil
}

// FindConfigFile locates the active config file in the default config paths.
func FindConfigFile() (string, error) {
	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return "", fmt.Errorf("error getting default config paths: %w", err)
	}

	for _, path := range configPaths {
		configPath := filepath.Join(path, "config.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", fmt.Errorf("config file not found in default paths")
}
