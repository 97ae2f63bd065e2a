package main

import (
	"log/slog"
	"os"

	"github.com/sautiwatch/sautiwatch/config"
	"github.com/sautiwatch/sautiwatch/internal/client"
	"github.com/sautiwatch/sautiwatch/internal/logging"
	"github.com/sautiwatch/sautiwatch/internal/server"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("[Main] Failed to load configuration",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	rc := client.New(cfg.AnalysisEndpoint, cfg.LogsEndpoint)

	srv := server.New(cfg, rc)
	if err := srv.Run(); err != nil {
		slog.Error("[Main] Server failed",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
}
