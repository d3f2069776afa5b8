// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads dictionary build settings.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// ErrInvalid indicates an invalid configuration value.
var ErrInvalid = errors.New("invalid config")

// Config holds dictionary build settings.
type Config struct {
	WordsPath string `yaml:"words_path" env:"RIKAIKUN_WORDS_PATH" env-default:"JMdict_e.gz"`
	NamesPath string `yaml:"names_path" env:"RIKAIKUN_NAMES_PATH" env-default:"JMnedict.xml.gz"`
	OutputDir string `yaml:"output_dir" env:"RIKAIKUN_OUTPUT_DIR" env-default:"data"`
	WordsName string `yaml:"words_name" env:"RIKAIKUN_WORDS_NAME" env-default:"dict"`
	NamesName string `yaml:"names_name" env:"RIKAIKUN_NAMES_NAME" env-default:"names"`
	LogLevel  string `yaml:"log_level"  env:"RIKAIKUN_LOG_LEVEL"  env-default:"info"`

	// POSFlags overrides the built-in part-of-speech flag table.
	POSFlags map[string]uint32 `yaml:"pos_flags" env:"RIKAIKUN_POS_FLAGS"`
}

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags). Without a path,
// configuration is loaded from ENV + defaults only.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config: file %s: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if c.WordsName == "" || c.NamesName == "" {
		return fmt.Errorf("%w: empty dictionary name", ErrInvalid)
	}
	if c.WordsName == c.NamesName {
		return fmt.Errorf("%w: words and names share the name %q", ErrInvalid, c.WordsName)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the log level.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return l, fmt.Errorf("%w: log_level: %w", ErrInvalid, err)
	}
	return l, nil
}
