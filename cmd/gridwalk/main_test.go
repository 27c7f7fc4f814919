package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/san-kum/gridwalk/internal/config"
	"github.com/san-kum/gridwalk/internal/search"
	"github.com/san-kum/gridwalk/internal/storage"
)

// rootWith parses args against a fresh command tree and returns the
// subcommand that would run.
func rootWith(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	root := newRootCmd()
	cmd, rest, err := root.Find(args)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if err := cmd.ParseFlags(rest); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return cmd
}

func TestResolveConfigPreset(t *testing.T) {
	t.Setenv(config.EnvSpeed, "")
	cmd := rootWith(t, "solve", "--preset", "walled", "--env", "")
	cfg, err := resolveConfig(cmd)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Rows != 3 || cfg.Cols != 6 || len(cfg.Layout) != 3 {
		t.Errorf("preset not applied: %+v", cfg)
	}
}

func TestResolveConfigFlagsWin(t *testing.T) {
	t.Setenv(config.EnvSpeed, "20")
	dir := t.TempDir()
	cmd := rootWith(t, "solve", "--preset", "open", "--speed", "120", "--data", dir, "--env", "")
	cfg, err := resolveConfig(cmd)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Speed != 120 {
		t.Errorf("expected flag speed 120, got %d", cfg.Speed)
	}
	if cfg.DataDir != dir {
		t.Errorf("expected data dir %s, got %s", dir, cfg.DataDir)
	}
}

func TestResolveConfigUnknownPreset(t *testing.T) {
	cmd := rootWith(t, "solve", "--preset", "nope", "--env", "")
	if _, err := resolveConfig(cmd); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestLoadGridFromLayoutFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.txt")
	if err := os.WriteFile(path, []byte("S.#\r\n..E\r\n\r\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cmd := rootWith(t, "solve", "--layout", path, "--env", "")
	_, g, err := loadGrid(cmd)
	if err != nil {
		t.Fatalf("load grid: %v", err)
	}
	if g.Rows() != 2 || g.Cols() != 3 {
		t.Errorf("expected 2x3, got %dx%d", g.Rows(), g.Cols())
	}
	if _, ok := g.End(); !ok {
		t.Error("end not parsed")
	}
}

func TestDepthSeries(t *testing.T) {
	events := []search.Event{
		{Kind: search.Visit, Depth: 1},
		{Kind: search.Visit, Depth: 2},
		{Kind: search.ReachGoal, Depth: 2},
		{Kind: search.PathStep},
	}
	got := depthSeries(events)
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("unexpected series %v", got)
	}
}

func TestSolveSavesPlayedRun(t *testing.T) {
	dir := t.TempDir()
	cmd := rootWith(t, "solve", "--preset", "detour", "--data", dir, "--env", "", "--save", "--no-color")
	cmd.SetContext(context.Background())
	if err := solveBoard(cmd, nil); err != nil {
		t.Fatalf("solve: %v", err)
	}

	runs, err := storage.New(dir).List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected one saved run, got %d", len(runs))
	}
	kind, err := recordedOutcome(&runs[0])
	if err != nil {
		t.Fatalf("outcome: %v", err)
	}
	if kind != search.PathFound || runs[0].Source != "solve" || runs[0].Events == 0 {
		t.Errorf("unexpected run %+v", runs[0])
	}
}

func TestRecordedOutcomeRejectsUnknownName(t *testing.T) {
	meta := &storage.RunMetadata{ID: "broken", Outcome: "exploded"}
	_, err := recordedOutcome(meta)
	if !errors.Is(err, search.ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

func TestWriteConfigRoundTrips(t *testing.T) {
	t.Setenv(config.EnvSpeed, "")
	path := filepath.Join(t.TempDir(), "gridwalk.yaml")
	cmd := rootWith(t, "config", "--preset", "walled", "--theme", "retro", "--out", path, "--env", "")
	if err := writeConfig(cmd, nil); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Rows != 3 || cfg.Cols != 6 || len(cfg.Layout) != 3 || cfg.Theme != "retro" {
		t.Errorf("config not written: %+v", cfg)
	}
}
