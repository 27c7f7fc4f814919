package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/gridwalk/internal/config"
	"github.com/san-kum/gridwalk/internal/grid"
)

// resolveConfig layers, lowest first: defaults, --config file, --preset,
// environment (.env and GRIDWALK_*), then explicit flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q (have: %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
		cfg.Rows, cfg.Cols, cfg.Speed, cfg.Layout = p.Rows, p.Cols, p.Speed, p.Layout
	}

	if err := config.ApplyEnv(cfg, envFile); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("speed") {
		cfg.Speed = speed
	}
	if flags.Changed("rows") {
		cfg.Rows, cfg.Layout = rows, nil
	}
	if flags.Changed("cols") {
		cfg.Cols, cfg.Layout = cols, nil
	}
	if layoutFile != "" {
		lines, err := readLayout(layoutFile)
		if err != nil {
			return nil, err
		}
		cfg.Layout = lines
	}
	return cfg, nil
}

func readLayout(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n"), nil
}

func loadGrid(cmd *cobra.Command) (*config.Config, *grid.Grid, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	g, err := cfg.Grid()
	if err != nil {
		return nil, nil, fmt.Errorf("board: %w", err)
	}
	return cfg, g, nil
}
