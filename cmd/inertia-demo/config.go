package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// config is loaded from the environment, and from a .env file if present.
type config struct {
	Addr        string `env:"INERTIA_ADDR"        envDefault:":8080"`
	Version     string `env:"INERTIA_VERSION"`
	Manifest    string `env:"INERTIA_MANIFEST"`
	AssetsPath  string `env:"INERTIA_ASSETS_PATH" envDefault:"/build/"`
	SSRURL      string `env:"INERTIA_SSR_URL"`
	LogLevel    string `env:"INERTIA_LOG_LEVEL"   envDefault:"info"`
	Concurrency int    `env:"INERTIA_CONCURRENCY" envDefault:"0"`
	Dev         bool   `env:"INERTIA_DEV"`
}

func loadConfig() (*config, error) {
	// The .env file is optional.
	_ = godotenv.Load()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("inertia-demo: failed to parse config: %w", err)
	}

	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("inertia-demo: invalid log level %q: %w", cfg.LogLevel, err)
	}

	return &cfg, nil
}
