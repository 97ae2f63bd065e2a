package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/subosito/gotenv"
)

func LoadEnv(env string) {
	envFile := "config/envs/.env." + env
	if err := gotenv.Load(envFile); err != nil {
		slog.Warn("No .env file found, using OS environment")
	}
}

type Config struct {
	AnalysisEndpoint string
	LogsEndpoint     string
	ServerAddr       string
	AppEnv           string
}

// FromEnv gathers settings after LoadEnv has run. The two service
// endpoints have no sane defaults and are required.
func FromEnv() (*Config, error) {
	cfg := &Config{
		AnalysisEndpoint: os.Getenv("ANALYSIS_ENDPOINT"),
		LogsEndpoint:     os.Getenv("LOGS_ENDPOINT"),
		ServerAddr:       os.Getenv("SERVER_ADDR"),
		AppEnv:           os.Getenv("APP_ENV"),
	}

	if cfg.AnalysisEndpoint == "" {
		return nil, fmt.Errorf("[Config] Missing ANALYSIS_ENDPOINT in environment variables")
	}
	if cfg.LogsEndpoint == "" {
		return nil, fmt.Errorf("[Config] Missing LOGS_ENDPOINT in environment variables")
	}
	if cfg.ServerAddr == "" {
		cfg.ServerAddr = ":8000"
	}
	if cfg.AppEnv == "" {
		cfg.AppEnv = "dev"
	}

	return cfg, nil
}
