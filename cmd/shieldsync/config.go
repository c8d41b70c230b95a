package main

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config is shieldsync's on-disk configuration, adapted from the teacher
// binary's JSON config file pattern (cmd/auctiond/config.go) to this
// binary's own settings instead of auction parameters.
type Config struct {
	// DatabaseURL is a Postgres connection string; empty means use an
	// in-memory store (suitable for a dry run with no durability).
	DatabaseURL string `json:"database_url"`

	// AddressID names the persistence key suffix for this wallet's tree
	// snapshot (§6: "tree.<address-id>").
	AddressID string `json:"address_id"`

	// ScanBatchSize bounds how many blocks a single ScanBatch call covers.
	ScanBatchSize uint32 `json:"scan_batch_size"`

	LogLevel string `json:"log_level"`
}

// DefaultConfig returns shieldsync's default configuration.
func DefaultConfig() *Config {
	return &Config{
		DatabaseURL:   "",
		AddressID:     "default",
		ScanBatchSize: 1000,
		LogLevel:      "info",
	}
}

// LoadConfig loads configuration from path, creating a default file there
// if none exists yet.
func LoadConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); err == nil {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("shieldsync: open config: %w", err)
		}
		defer f.Close()

		var cfg Config
		if err := json.NewDecoder(f).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("shieldsync: decode config: %w", err)
		}
		return &cfg, nil
	}

	cfg := DefaultConfig()
	if err := SaveConfig(cfg, path); err != nil {
		return nil, fmt.Errorf("shieldsync: save default config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes cfg to path as indented JSON.
func SaveConfig(cfg *Config, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("shieldsync: create config: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(cfg)
}
