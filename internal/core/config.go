// SPDX-FileCopyrightText: 2025 5C Menu contributors
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v2"
)

// Configuration contains the service configuration. It is instantiated from
// a YAML file given on the command line; database credentials come from the
// environment instead (see internal/db).
type Configuration struct {
	// ListenAddress is where the API listens, default ":8080".
	ListenAddress string `yaml:"listen"`
	// Timezone is the IANA timezone that the hours evaluator uses to decide
	// which halls are open "now". Default "America/Los_Angeles".
	Timezone string `yaml:"timezone"`
	// RedisURL selects the Redis instance backing the menu cache. When
	// empty, an in-process cache is used instead (fine for one replica).
	RedisURL string `yaml:"redis_url"`
	// CORSAllowedOrigins is passed through to the CORS middleware.
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
}

// NewConfiguration reads and validates the configuration file at the given path.
func NewConfiguration(path string) (Configuration, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return Configuration{}, fmt.Errorf("read configuration file: %w", err)
	}

	var cfg Configuration
	err = yaml.UnmarshalStrict(buf, &cfg)
	if err != nil {
		return Configuration{}, fmt.Errorf("parse configuration: %w", err)
	}

	if cfg.ListenAddress == "" {
		cfg.ListenAddress = ":8080"
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "America/Los_Angeles"
	}
	_, err = time.LoadLocation(cfg.Timezone)
	if err != nil {
		return Configuration{}, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	return cfg, nil
}
