package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var ErrUnknownCity = errors.New("unknown city")

// CityConfig maps a city name to the source its trips are read from.
// Exactly one of File or Table is set.
type CityConfig struct {
	Name  string `toml:"name" yaml:"name" validate:"required"`
	File  string `toml:"file" yaml:"file" validate:"required_without=Table,excluded_with=Table"`
	Table string `toml:"table" yaml:"table" validate:"required_without=File"`
}

type Config struct {
	// Directory relative city files are resolved against
	DataDir string `toml:"data_dir" yaml:"data_dir"`

	// Postgres DSN - only needed when a city is backed by a table
	Database string `toml:"database" yaml:"database"`

	Cities []CityConfig `toml:"cities" yaml:"cities" validate:"required,min=1,dive"`
}

func Default() Config {
	return Config{
		DataDir: ".",
		Cities: []CityConfig{
			{Name: "Chicago", File: "chicago.csv"},
			{Name: "New York City", File: "new_york_city.csv"},
			{Name: "Washington", File: "washington.csv"},
		},
	}
}

// Load decodes a TOML or YAML config file, chosen by extension, and validates it.
func Load(path string) (Config, error) {
	var cfg Config

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("toml.DecodeFile: %w", err)
		}
	case ".yml", ".yaml":
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("yaml.Unmarshal: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}

	// Relative data dirs are relative to the config file
	if !filepath.IsAbs(cfg.DataDir) {
		cfg.DataDir = filepath.Join(filepath.Dir(path), cfg.DataDir)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (cfg Config) Validate() error {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return err
	}

	seen := map[string]bool{}
	for _, city := range cfg.Cities {
		key := strings.ToLower(city.Name)
		if seen[key] {
			return fmt.Errorf("city %q configured twice", city.Name)
		}
		seen[key] = true

		if city.Table != "" && cfg.Database == "" {
			return fmt.Errorf("city %q reads table %q but no database is configured", city.Name, city.Table)
		}
	}

	return nil
}

// City returns the configuration for name, ignoring case.
func (cfg Config) City(name string) (CityConfig, error) {
	for _, city := range cfg.Cities {
		if strings.EqualFold(city.Name, strings.TrimSpace(name)) {
			return city, nil
		}
	}
	return CityConfig{}, fmt.Errorf("%w: %s", ErrUnknownCity, name)
}

func (cfg Config) CityNames() []string {
	names := make([]string, 0, len(cfg.Cities))
	for _, city := range cfg.Cities {
		names = append(names, city.Name)
	}
	return names
}

// FilePath resolves a city's file against DataDir.
func (cfg Config) FilePath(city CityConfig) string {
	if city.File == "" || filepath.IsAbs(city.File) {
		return city.File
	}
	return filepath.Join(cfg.DataDir, city.File)
}

func (cfg Config) UsesDatabase() bool {
	for _, city := range cfg.Cities {
		if city.Table != "" {
			return true
		}
	}
	return false
}
