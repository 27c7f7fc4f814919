package main

import (
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// newLogger builds a text logger on w. verbose enables debug output.
func newLogger(verbose bool, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// tuiLogger keeps log output off the alt screen. Without --log-file the
// editor logs nowhere.
func tuiLogger() (*slog.Logger, func(), error) {
	if logFile == "" {
		return newLogger(false, io.Discard), func() {}, nil
	}
	f, err := tea.LogToFile(logFile, "gridwalk")
	if err != nil {
		return nil, nil, err
	}
	return newLogger(verbose, f), func() { f.Close() }, nil
}

func cliLogger() *slog.Logger {
	return newLogger(verbose, os.Stderr)
}
