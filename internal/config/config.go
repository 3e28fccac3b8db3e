// Package config loads the trainer settings from config.json, applying
// defaults for absent keys and validating the file against a JSON
// Schema before any value is used.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Config holds the trainer settings. Values are threaded explicitly
// through the engine; nothing reads configuration globally.
type Config struct {
	// CardsDir is the directory walked for YAML deck files.
	CardsDir string `json:"CARDS_DIR"`

	// DataFile overrides the progress database location when non-empty.
	DataFile string `json:"DATA_FILE"`

	// UnitsPerTheme caps how many units one session presents.
	UnitsPerTheme int `json:"UNITS_PER_THEME"`

	// ValidStreakDays is the number of distinct correct days required
	// for mastery.
	ValidStreakDays int `json:"VALID_STREAK_DAYS"`
}

// Default returns the out-of-the-box settings.
func Default() Config {
	return Config{
		CardsDir:        "cards",
		UnitsPerTheme:   10,
		ValidStreakDays: 3,
	}
}

// legacyConfig captures REVIEW_VALIDATED, the historical alias of
// VALID_STREAK_DAYS. Older config files carry both names.
type legacyConfig struct {
	ReviewValidated *int `json:"REVIEW_VALIDATED"`
	ValidStreakDays *int `json:"VALID_STREAK_DAYS"`
}

// Load reads path and merges it over Default. A missing file yields the
// defaults. The file must satisfy the embedded schema, and if both
// VALID_STREAK_DAYS and its legacy alias REVIEW_VALIDATED are present
// they must agree; a silent pick between conflicting values would hide
// a real misconfiguration.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := validateSchema(data); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	var legacy legacyConfig
	if err := json.Unmarshal(data, &legacy); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if legacy.ReviewValidated != nil {
		if legacy.ValidStreakDays != nil && *legacy.ValidStreakDays != *legacy.ReviewValidated {
			return Config{}, fmt.Errorf(
				"config %s: REVIEW_VALIDATED (%d) conflicts with VALID_STREAK_DAYS (%d); they are one setting, remove one",
				path, *legacy.ReviewValidated, *legacy.ValidStreakDays)
		}
		cfg.ValidStreakDays = *legacy.ReviewValidated
	}

	return cfg, nil
}

// DefaultPath resolves the config file location: RECALL_CONFIG env var
// or ./config.json.
func DefaultPath() string {
	if p := os.Getenv("RECALL_CONFIG"); p != "" {
		return p
	}
	return "config.json"
}
