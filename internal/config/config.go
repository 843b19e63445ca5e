package config

import (
	"strings"

	"github.com/caarlos0/env/v6"
)

type Environment string

const (
	EnvLocal      Environment = "local"
	EnvDev        Environment = "dev"
	EnvStage      Environment = "stage"
	EnvProduction Environment = "production"
)

type Config struct {
	App struct {
		Version  string      `env:"APP_VERSION" envDefault:"local"`
		Env      Environment `env:"APP_ENV" envDefault:"local"`
		Timezone string      `env:"APP_TIMEZONE" envDefault:"Europe/Copenhagen"`
	}

	HTTP struct {
		Port string `env:"HTTP_SERVER_PORT" envDefault:"10000"`
		Host string `env:"HTTP_SERVER_HOST" envDefault:""`
	}

	RabbitMQ struct {
		Enabled bool   `env:"RABBITMQ_ENABLED"`
		URL     string `env:"RABBITMQ_URL"`
		Queue   string `env:"RABBITMQ_QUEUE" envDefault:"ghl.appointments"`
	}

	Store struct {
		Size int `env:"STORE_APPOINTMENTS_SIZE" envDefault:"1000"`
	}

	Board struct {
		MaxUpcoming int    `env:"BOARD_MAX_UPCOMING" envDefault:"20"`
		OpeningHour int    `env:"BOARD_OPENING_HOUR" envDefault:"6"`
		ClosingHour int    `env:"BOARD_CLOSING_HOUR" envDefault:"22"`
		AdsMinutes  int    `env:"BOARD_ADS_MINUTES" envDefault:"7"`
		AdsVideoURL string `env:"BOARD_ADS_VIDEO_URL" envDefault:"https://www.youtube.com/embed/XzsPWBlKDBU"`
	}
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	// Приведение окружения к нижнему регистру для унификации
	cfg.App.Env = Environment(strings.ToLower(string(cfg.App.Env)))

	return cfg, nil
}

func (c *Config) IsLocal() bool {
	return c.App.Env == EnvLocal
}

func (c *Config) IsNotLocal() bool {
	return c.App.Env == EnvDev || c.App.Env == EnvStage || c.App.Env == EnvProduction
}
