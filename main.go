package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/wildrange/rsf-go/cmd"
	"github.com/wildrange/rsf-go/internal/conf"
	"github.com/wildrange/rsf-go/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logging.Init()

	settings, err := conf.Load()
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	// Route logs to a rotated file when configured, the console loggers
	// stay available as fallback.
	if settings.Main.Log.Enabled {
		fileLogger, closeLogger, err := logging.NewFileLogger(settings.Main.Log.Path, settings.Main.Name, slog.LevelInfo)
		if err != nil {
			logging.Warn("file logging disabled", "path", settings.Main.Log.Path, "error", err)
		} else {
			slog.SetDefault(fileLogger)
			defer func() {
				_ = closeLogger()
			}()
		}
	}

	return cmd.RootCommand(settings).Execute()
}
