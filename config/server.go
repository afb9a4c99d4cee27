package config

import (
	"github.com/jcooky/go-din"

	"github.com/habiliai/signalrank/signalrank"
)

type ServerConfig struct {
	Host                string `env:"HOST"`
	Port                int    `env:"PORT"`
	DatabaseUrl         string `env:"DATABASE_URL"`
	DatabaseAutoMigrate bool   `env:"DATABASE_AUTO_MIGRATE"`
	LogLevel            string `env:"LOG_LEVEL"`
	LogHandler          string `env:"LOG_HANDLER"`

	// BaseURL is the public origin used in badge, embed and JSON-LD URLs.
	BaseURL string `env:"BASE_URL"`
	// ScoringFile optionally points to a YAML file overriding sub-score weights.
	ScoringFile string `env:"SCORING_FILE"`
}

func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		Host:                "0.0.0.0",
		Port:                9080,
		DatabaseUrl:         "signalrank.db",
		DatabaseAutoMigrate: true,
		LogLevel:            "debug",
		LogHandler:          "default",
		BaseURL:             signalrank.DefaultBaseURL,
	}
}

func ResolveServerConfig(testing bool) (*ServerConfig, error) {
	conf := NewServerConfig()
	if err := resolveConfig(conf, testing); err != nil {
		return nil, err
	}

	return conf, nil
}

func init() {
	din.RegisterT(func(c *din.Container) (*ServerConfig, error) {
		return ResolveServerConfig(c.Env == din.EnvTest)
	})
}
