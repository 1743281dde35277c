package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App     App
	Backend Backend
	Redis   Redis
	Cart    Cart
}

type App struct {
	Name                 string `env:"APP_NAME" envDefault:"tradein"`
	Version              string `env:"APP_VERSION" envDefault:"dev"`
	ListenAddress        string `env:"LISTEN_ADDRESS" envDefault:":8080"`
	ProbeListenAddress   string `env:"PROBE_LISTEN_ADDRESS" envDefault:":8081"`
	MetricsListenAddress string `env:"METRICS_LISTEN_ADDRESS" envDefault:":9090"`
	LogFieldMaxLen       int    `env:"LOG_FIELD_MAX_LEN" envDefault:"2048"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	return config, nil
}
