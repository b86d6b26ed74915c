// Command server runs the change-log dashboard HTTP API.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"sheetlog/internal/app"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (overrides SHEETLOG_CONFIG)")
	flag.Parse()

	if *configPath != "" {
		os.Setenv("SHEETLOG_CONFIG", *configPath)
	}

	application, err := app.NewApplication()
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}

	if err := application.Run(context.Background()); err != nil {
		application.Logger.Error("server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
