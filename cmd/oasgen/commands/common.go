// Package commands provides CLI command handlers for oasgen.
package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/erraggy/oasgen/config"
	"github.com/erraggy/oasgen/internal/cliutil"
	"github.com/erraggy/oasgen/oaslog"
)

// FormatText is the human-readable output format of listing commands.
const FormatText = "text"

// StdoutPath is the output path that writes to stdout.
const StdoutPath = "-"

// LoadConfig reads the configuration at path. An empty path reads
// oasgen.yaml from the working directory when it exists and otherwise
// returns the defaults.
func LoadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	cfg, err := config.Load(config.DefaultFileName)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = config.Default()
		cfg.ApplyEnv()
		return cfg, cfg.Validate()
	}
	return cfg, err
}

// NewLogger returns a text logger on w. Verbose selects debug level;
// otherwise only warnings and errors are written.
func NewLogger(w io.Writer, verbose bool) oaslog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return oaslog.NewSlogAdapter(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// ValidateListFormat validates the output format of listing commands.
func ValidateListFormat(format string) error {
	if format == FormatText {
		return nil
	}
	if _, err := cliutil.ParseFormat(format); err != nil {
		return fmt.Errorf("invalid format '%s'. Valid formats: text, json, yaml", format)
	}
	return nil
}

// WriteOutput writes data to path, creating parent directories, or to
// stdout when path is empty or "-".
func WriteOutput(path string, data []byte) error {
	if path == "" || path == StdoutPath {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
