// Package config loads the application configuration: the reusable core
// settings plus the fitness-domain sections.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	coreconfig "github.com/m3rciful/fitbot/core/config"
	"github.com/m3rciful/fitbot/core/database"
)

// Storage backends.
const (
	BackendFile = "file"
	BackendSQL  = "sql"
)

// StorageConfig selects the user store backend.
type StorageConfig struct {
	Backend string `yaml:"backend" envconfig:"STORAGE_BACKEND"`
	// File is the JSON document path for the file backend.
	File string `yaml:"file" envconfig:"STORAGE_FILE"`
}

// WeatherConfig holds OpenWeatherMap credentials.
type WeatherConfig struct {
	APIKey string `yaml:"api_key" envconfig:"OPENWEATHER_API_KEY"`
}

// FoodConfig configures the calorie lookup chain.
type FoodConfig struct {
	OpenAIKey string `yaml:"openai_api_key" envconfig:"OPENAI_API_KEY"`
	// DisableLLM drops the LLM estimator from the chain.
	DisableLLM bool `yaml:"disable_llm" envconfig:"FOOD_DISABLE_LLM"`
}

// GoalsConfig tunes the water formula constants. Zeroes fall back to
// the pinned defaults.
type GoalsConfig struct {
	WaterPerKg       int     `yaml:"water_per_kg" envconfig:"GOALS_WATER_PER_KG"`
	WaterPerActivity int     `yaml:"water_per_activity" envconfig:"GOALS_WATER_PER_ACTIVITY"`
	HotBonusML       int     `yaml:"hot_bonus_ml" envconfig:"GOALS_HOT_BONUS_ML"`
	HotThresholdC    float64 `yaml:"hot_threshold_c" envconfig:"GOALS_HOT_THRESHOLD_C"`
}

// Config aggregates everything the binary needs.
type Config struct {
	Core     coreconfig.Config `yaml:",inline"`
	Database database.Config   `yaml:"database"`
	Storage  StorageConfig     `yaml:"storage"`
	Weather  WeatherConfig     `yaml:"weather"`
	Food     FoodConfig        `yaml:"food"`
	Goals    GoalsConfig       `yaml:"goals"`
}

// CoreConfig exposes the embedded core configuration.
func (c *Config) CoreConfig() *coreconfig.Config {
	return &c.Core
}

// Load reads the YAML file, overlays environment variables, and
// validates the result.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("config: env overlay: %w", err)
	}
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Normalize validates and defaults the configuration.
func (c *Config) Normalize() error {
	if err := coreconfig.Normalize(&c.Core); err != nil {
		return err
	}

	backend := strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	if backend == "" {
		backend = BackendFile
	}
	switch backend {
	case BackendFile:
		if strings.TrimSpace(c.Storage.File) == "" {
			c.Storage.File = "data/users.json"
		}
	case BackendSQL:
		driver := strings.ToLower(strings.TrimSpace(c.Database.Driver))
		switch driver {
		case database.DriverSQLite:
			if strings.TrimSpace(c.Database.Path) == "" {
				return fmt.Errorf("config: database.path is required for the sqlite driver")
			}
		case database.DriverPostgres, "":
			if strings.TrimSpace(c.Database.Host) == "" {
				return fmt.Errorf("config: database.host is required for the postgres driver")
			}
		default:
			return fmt.Errorf("config: invalid database.driver %q; allowed: postgres, sqlite", c.Database.Driver)
		}
	default:
		return fmt.Errorf("config: invalid storage.backend %q; allowed: file, sql", c.Storage.Backend)
	}
	c.Storage.Backend = backend

	if strings.TrimSpace(c.Weather.APIKey) == "" {
		return fmt.Errorf("config: weather.api_key is required")
	}
	return nil
}
