// Package config loads carmtab configuration from file, env vars, and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/gustavo-bravo11/CPSC571-Carmichael-Storage/internal/analyzers/analyze"
	"github.com/gustavo-bravo11/CPSC571-Carmichael-Storage/internal/analyzers/divisibility"
)

// configName is the config file name without extension.
const configName = ".carmtab"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for carmtab settings.
const envPrefix = "CARMTAB"

// envKeySeparator is the nested key separator in environment variable names.
const envKeySeparator = "_"

// Default file names of the reference deployment.
const (
	DefaultInputPath          = "new_table.txt"
	DefaultDivisibilityOutput = "divisors.txt"
	DefaultImprimitivityOut   = "flagged.txt"
)

// LoadConfig loads configuration from file, env vars, and defaults.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise, the config file is searched in CWD and $HOME.
// Missing config file is not an error; defaults are used.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	viperCfg.AutomaticEnv()

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, validateErr
	}

	return &cfg, nil
}

func applyDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("input.path", DefaultInputPath)
	viperCfg.SetDefault("input.skip_malformed", false)
	viperCfg.SetDefault("output.format", analyze.FormatLaTeX)
	viperCfg.SetDefault("divisibility.divisor", divisibility.DefaultDivisor)
	viperCfg.SetDefault("divisibility.output", DefaultDivisibilityOutput)
	viperCfg.SetDefault("imprimitivity.output", DefaultImprimitivityOut)
}
