// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	APIURL      string `mapstructure:"api_url"`
	Debug       bool   `mapstructure:"debug"`
	Concurrency int    `mapstructure:"concurrency"`
	LogLevel    string `mapstructure:"log_level"`
}

var (
	defaultConfig = Config{
		APIURL:      "https://api.vrchat.cloud/api/1",
		Debug:       false,
		Concurrency: 3,
		LogLevel:    "warn",
	}

	validLogLevels = []string{"debug", "info", "warn", "error"}
)

// Default returns a copy of the built-in configuration
func Default() Config {
	return defaultConfig
}

// ErrUnknownKey is returned by Get and Set for keys that are not settable
var ErrUnknownKey = errors.New("unknown config key")

// Keys lists the user-facing config keys accepted by Get and Set
func Keys() []string {
	return []string{"api-url", "concurrency", "debug", "log-level"}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(Dir())

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("api_url", defaultConfig.APIURL)
	v.SetDefault("debug", defaultConfig.Debug)
	v.SetDefault("concurrency", defaultConfig.Concurrency)
	v.SetDefault("log_level", defaultConfig.LogLevel)
	return v
}

func LoadConfig() (*Config, error) {
	v := newViper()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if config.APIURL == "" {
		config.APIURL = defaultConfig.APIURL
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks value ranges that viper cannot express
func (c *Config) Validate() error {
	if c.Concurrency < 1 {
		return fmt.Errorf("invalid concurrency %d: must be at least 1", c.Concurrency)
	}
	level := strings.ToLower(c.LogLevel)
	for _, l := range validLogLevels {
		if level == l {
			return nil
		}
	}
	return fmt.Errorf("invalid log level '%s', must be one of: %s", c.LogLevel, strings.Join(validLogLevels, ", "))
}

// Get returns the value of a user-facing key as text
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "api-url":
		return c.APIURL, nil
	case "debug":
		return strconv.FormatBool(c.Debug), nil
	case "concurrency":
		return strconv.Itoa(c.Concurrency), nil
	case "log-level":
		return c.LogLevel, nil
	}
	return "", fmt.Errorf("%w '%s', valid keys: %s", ErrUnknownKey, key, strings.Join(Keys(), ", "))
}

// Set parses value into the field named by key and validates the result
func (c *Config) Set(key, value string) error {
	next := *c
	switch key {
	case "api-url":
		if value == "" {
			value = defaultConfig.APIURL
		}
		next.APIURL = value
	case "debug":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value '%s' for debug: must be true or false", value)
		}
		next.Debug = b
	case "concurrency":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value '%s' for concurrency: must be a number", value)
		}
		next.Concurrency = n
	case "log-level":
		next.LogLevel = strings.ToLower(value)
	default:
		return fmt.Errorf("%w '%s', valid keys: %s", ErrUnknownKey, key, strings.Join(Keys(), ", "))
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

func SaveConfig(config *Config) error {
	if err := config.Validate(); err != nil {
		return err
	}

	v := viper.New()
	v.Set("api_url", config.APIURL)
	v.Set("debug", config.Debug)
	v.Set("concurrency", config.Concurrency)
	v.Set("log_level", config.LogLevel)

	if err := os.MkdirAll(Dir(), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := v.WriteConfigAs(File()); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
