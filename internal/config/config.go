// Package config layers quizbase configuration from an optional
// quizbase.yaml file, QUIZBASE_ environment variables, and command-line
// flags, in that order of precedence (flags win). Keys match flag names.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const (
	configFile = "quizbase.yaml"
	envPrefix  = "QUIZBASE_"
)

var validate = validator.New()

// LoadConfig configures the load command.
type LoadConfig struct {
	Quiz      string `koanf:"quiz" validate:"required"`
	DB        string `koanf:"db" validate:"required"`
	Overwrite bool   `koanf:"overwrite"`
	File      string `koanf:"file"`
	CacheDir  string `koanf:"cache-dir"`
}

// ConvertConfig configures the convert command. Output goes either to a
// file or to standard output, so Out is required only without Stdout.
type ConvertConfig struct {
	JSON   string `koanf:"json" validate:"required"`
	Out    string `koanf:"out" validate:"required_without=Stdout"`
	Stdout bool   `koanf:"stdout"`
}

// Load fills cfg from the config file (if one exists), the environment, and
// the already-parsed flag set, then validates the result.
func Load(flags *pflag.FlagSet, cfg any) error {
	k := koanf.New(".")

	if _, err := os.Stat(configFile); err == nil {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return fmt.Errorf("failed to load %s: %w", configFile, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(key string) string {
		key = strings.TrimPrefix(key, envPrefix)
		return strings.ReplaceAll(strings.ToLower(key), "_", "-")
	}), nil); err != nil {
		return fmt.Errorf("failed to load environment: %w", err)
	}

	if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
		return fmt.Errorf("failed to load flags: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
