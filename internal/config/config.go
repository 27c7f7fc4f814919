package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/gridwalk/internal/grid"
)

const (
	DefaultRows    = 15
	DefaultCols    = 30
	DefaultSpeed   = 160
	DefaultTheme   = "cyberpunk"
	DefaultDataDir = ".gridwalk"
)

// Environment overrides applied by ApplyEnv.
const (
	EnvDataDir = "GRIDWALK_DATA_DIR"
	EnvTheme   = "GRIDWALK_THEME"
	EnvSpeed   = "GRIDWALK_SPEED"
)

type Config struct {
	Rows    int      `yaml:"rows"`
	Cols    int      `yaml:"cols"`
	Speed   int      `yaml:"speed"`
	Theme   string   `yaml:"theme"`
	DataDir string   `yaml:"data_dir"`
	Layout  []string `yaml:"layout,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Rows:    DefaultRows,
		Cols:    DefaultCols,
		Speed:   DefaultSpeed,
		Theme:   DefaultTheme,
		DataDir: DefaultDataDir,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv loads envFile (if it exists) into the process environment and
// then applies GRIDWALK_* overrides to cfg. Variables already set in the
// environment win over the file.
func ApplyEnv(cfg *Config, envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: %s: %w", envFile, err)
		}
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv(EnvTheme); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv(EnvSpeed); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s=%q: %w", EnvSpeed, v, err)
		}
		cfg.Speed = n
	}
	return nil
}

// Grid builds the board described by cfg: the layout when one is given,
// otherwise an open Rows×Cols grid.
func (c *Config) Grid() (*grid.Grid, error) {
	if len(c.Layout) > 0 {
		return grid.Parse(c.Layout)
	}
	return grid.New(c.Rows, c.Cols)
}
