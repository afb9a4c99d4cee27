package config

import (
	"os"

	"github.com/goccy/go-yaml"
	"github.com/habiliai/signalrank/errors"
	"github.com/habiliai/signalrank/signalrank"
	"github.com/jcooky/go-din"
)

// ScoringConfig holds the sub-score weights fed to the score aggregator.
type ScoringConfig struct {
	Weights signalrank.Weights `yaml:"weights"`
}

func NewScoringConfig() *ScoringConfig {
	return &ScoringConfig{
		Weights: signalrank.DefaultWeights(),
	}
}

// LoadScoringFile reads a YAML scoring file. Weights absent from the file keep
// their defaults.
func LoadScoringFile(file string) (*ScoringConfig, error) {
	conf := NewScoringConfig()

	yamlBytes, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read file %s", file)
	}
	if err := yaml.Unmarshal(yamlBytes, conf); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal file %s", file)
	}
	if err := conf.Weights.Validate(); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "%s: %v", file, err)
	}

	return conf, nil
}

func init() {
	din.RegisterT(func(c *din.Container) (*ScoringConfig, error) {
		serverConfig, err := din.GetT[*ServerConfig](c)
		if err != nil {
			return nil, err
		}
		if serverConfig.ScoringFile == "" {
			return NewScoringConfig(), nil
		}

		return LoadScoringFile(serverConfig.ScoringFile)
	})
}
