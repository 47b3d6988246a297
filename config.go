package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "GSOLVE"

type config struct {
	Workers    int    `mapstructure:"workers"`
	MaxRounds  int    `mapstructure:"max_rounds"`
	Backend    string `mapstructure:"backend"`
	Sequential bool   `mapstructure:"sequential"`
	Debug      bool   `mapstructure:"debug"`
	LogLevel   string `mapstructure:"log_level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("workers", 1)
	v.SetDefault("max_rounds", 0)
	v.SetDefault("backend", "local")
	v.SetDefault("sequential", false)
	v.SetDefault("debug", false)
	v.SetDefault("log_level", "info")
}

// bindFlags maps flag names to config keys; flags win over the config file
// and GSOLVE_* environment variables when set.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for key, flag := range map[string]string{
		"workers":    "workers",
		"max_rounds": "max-rounds",
		"backend":    "backend",
		"sequential": "sequential",
		"debug":      "debug",
		"log_level":  "log-level",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}
	return nil
}

func loadConfig(v *viper.Viper, path string) (config, error) {
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg config
	if err := v.Unmarshal(&cfg); err != nil {
		return config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validateConfig(&cfg); err != nil {
		return config{}, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func validateConfig(cfg *config) error {
	if cfg.Sequential {
		cfg.Workers = 1
	}
	if cfg.Workers < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", cfg.Workers)
	}
	if cfg.MaxRounds < 0 {
		return fmt.Errorf("max_rounds must be >= 0, got %d", cfg.MaxRounds)
	}
	if _, ok := backends[cfg.Backend]; !ok {
		return fmt.Errorf("unknown backend %q (available: %s)", cfg.Backend, strings.Join(backendNames(), ", "))
	}
	return nil
}

func setupLogger(cfg config, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		logger.SetLevel(logrus.DebugLevel)
	case "warn":
		logger.SetLevel(logrus.WarnLevel)
	case "error":
		logger.SetLevel(logrus.ErrorLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}
	return logger
}
