package discovery

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/erraggy/oasgen/marker"
	"github.com/erraggy/oasgen/oaserrors"
	"github.com/erraggy/oasgen/oaslog"
)

// DefaultScopeRoot is the directory, relative to the project root, that
// holds the built-in per-kind scopes (openapi/schemas, openapi/responses, ...).
const DefaultScopeRoot = "openapi"

// resolveScopes expands the configured patterns for kind into absolute
// directories and appends the built-in default scope. Configured entries
// come first, in configuration order; duplicates are dropped.
func resolveScopes(root string, patterns []string, kind marker.Kind, useDefault bool, logger oaslog.Logger) ([]string, error) {
	var scopes []string
	seen := make(map[string]bool)
	add := func(dir string) {
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
		dir = filepath.Clean(dir)
		if !seen[dir] {
			seen[dir] = true
			scopes = append(scopes, dir)
		}
	}

	for _, pattern := range patterns {
		p := pattern
		if !filepath.IsAbs(p) {
			p = filepath.Join(root, p)
		}
		if hasMeta(p) {
			matches, err := filepath.Glob(p)
			if err != nil {
				return nil, &oaserrors.DiscoveryError{Scope: pattern, Kind: string(kind), Message: "invalid scope pattern", Cause: err}
			}
			dirs := 0
			for _, m := range matches {
				if info, err := os.Stat(m); err == nil && info.IsDir() {
					add(m)
					dirs++
				}
			}
			if dirs == 0 {
				logger.Warn("scope pattern matched no directories", "kind", string(kind), "pattern", pattern)
			}
			continue
		}
		info, err := os.Stat(p)
		if err != nil {
			msg := "cannot read scope"
			if errors.Is(err, fs.ErrNotExist) {
				msg = "scope does not exist"
			}
			return nil, &oaserrors.DiscoveryError{Scope: p, Kind: string(kind), Message: msg, Cause: err}
		}
		if !info.IsDir() {
			return nil, &oaserrors.DiscoveryError{Scope: p, Kind: string(kind), Message: "scope is not a directory"}
		}
		add(p)
	}

	if useDefault && kind.ScopeDir() != "" {
		def := filepath.Join(root, DefaultScopeRoot, kind.ScopeDir())
		if info, err := os.Stat(def); err == nil && info.IsDir() {
			add(def)
		} else {
			logger.Debug("skipping default scope", "kind", string(kind), "scope", def)
		}
	}
	return scopes, nil
}

func hasMeta(path string) bool {
	return strings.ContainsAny(path, `*?[`)
}
