// Package config defines the oasgen configuration surface.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasgen/internal/naming"
	"github.com/erraggy/oasgen/marker"
	"github.com/erraggy/oasgen/oas"
	"github.com/erraggy/oasgen/oaserrors"
)

// DefaultCollection is the collection that items without explicit
// membership belong to.
const DefaultCollection = "default"

// DefaultFileName is the configuration file looked up by the CLI.
const DefaultFileName = "oasgen.yaml"

// Config is the static configuration consumed by discovery and generation.
type Config struct {
	// OpenAPI is the openapi field of generated documents.
	OpenAPI string `yaml:"openapi"`
	// Root is the project root that default scopes and relative paths
	// are resolved against.
	Root         string                    `yaml:"root"`
	Info         *oas.Info                 `yaml:"info"`
	Servers      []*oas.Server             `yaml:"servers,omitempty"`
	Tags         []*oas.Tag                `yaml:"tags,omitempty"`
	Security     []oas.SecurityRequirement `yaml:"security,omitempty"`
	ExternalDocs *oas.ExternalDocs         `yaml:"externalDocs,omitempty"`
	Extensions   map[string]any            `yaml:"extensions,omitempty"`
	// Scopes maps a kind to additional directories (glob patterns allowed)
	// scanned for declarations of that kind.
	Scopes map[string][]string `yaml:"scopes,omitempty"`
	// Fragments lists OpenAPI documents whose components and tags are
	// imported as declarations.
	Fragments []string `yaml:"fragments,omitempty"`
	// Routes lists YAML route files loaded by tools that cannot run the
	// application's registration code.
	Routes            []string               `yaml:"routes,omitempty"`
	DefaultCollection string                 `yaml:"default_collection"`
	Collections       map[string]*Collection `yaml:"collections,omitempty"`
	Naming            string                 `yaml:"naming"`
	StripKindSuffix   *bool                  `yaml:"strip_kind_suffix,omitempty"`
	DedupeSchemas     bool                   `yaml:"dedupe_schemas"`
}

// Collection overrides document metadata for one collection and
// restricts the routes it contains.
type Collection struct {
	Info         *oas.Info                 `yaml:"info,omitempty"`
	Servers      []*oas.Server             `yaml:"servers,omitempty"`
	Tags         []*oas.Tag                `yaml:"tags,omitempty"`
	Security     []oas.SecurityRequirement `yaml:"security,omitempty"`
	ExternalDocs *oas.ExternalDocs         `yaml:"externalDocs,omitempty"`
	Extensions   map[string]any            `yaml:"extensions,omitempty"`
	// IncludePaths keeps only routes whose template matches one of the
	// patterns (path.Match syntax, or a prefix ending in "/*").
	IncludePaths []string `yaml:"include_paths,omitempty"`
	// ExcludePaths drops routes whose template matches one of the patterns.
	ExcludePaths []string `yaml:"exclude_paths,omitempty"`
	// IncludeTags keeps only routes tagged with one of the names.
	IncludeTags []string `yaml:"include_tags,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		OpenAPI:           oas.DefaultVersion,
		Root:              ".",
		Info:              &oas.Info{Title: "API", Version: "1.0.0"},
		DefaultCollection: DefaultCollection,
		Naming:            string(naming.AsIs),
	}
}

// Load reads the YAML configuration at path over Default, applies
// environment overrides, and validates the result. A relative root is
// resolved against the directory of path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is user-provided configuration
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if !filepath.IsAbs(cfg.Root) {
		cfg.Root = filepath.Join(filepath.Dir(path), cfg.Root)
	}
	return cfg, nil
}

// Parse decodes YAML configuration over Default, applies environment
// overrides, and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &oaserrors.ConfigError{Message: "invalid YAML", Cause: err}
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv applies OASGEN_* environment overrides. Invalid values log a
// warning and leave the current value in place.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("OASGEN_OPENAPI_VERSION"); v != "" {
		if _, ok := oas.ParseVersion(v); ok {
			c.OpenAPI = v
		} else {
			slog.Warn("invalid openapi version env var, using default", "key", "OASGEN_OPENAPI_VERSION", "value", v, "default", c.OpenAPI) //nolint:gosec // G706: values are structured log fields, not format strings
		}
	}
	if v := os.Getenv("OASGEN_ROOT"); v != "" {
		c.Root = v
	}
	if v := os.Getenv("OASGEN_DEFAULT_COLLECTION"); v != "" {
		c.DefaultCollection = v
	}
	if v := os.Getenv("OASGEN_NAMING"); v != "" {
		if _, err := naming.ParseStrategy(v); err == nil {
			c.Naming = v
		} else {
			slog.Warn("invalid naming env var, using default", "key", "OASGEN_NAMING", "value", v, "default", c.Naming) //nolint:gosec // G706: values are structured log fields, not format strings
		}
	}
	if v := os.Getenv("OASGEN_DEDUPE_SCHEMAS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			slog.Warn("invalid bool env var, using default", "key", "OASGEN_DEDUPE_SCHEMAS", "value", v, "default", c.DedupeSchemas) //nolint:gosec // G706: values are structured log fields, not format strings
		} else {
			c.DedupeSchemas = b
		}
	}
}

// Validate checks option values.
func (c *Config) Validate() error {
	if _, ok := oas.ParseVersion(c.OpenAPI); !ok {
		return &oaserrors.ConfigError{
			Option:  "openapi",
			Value:   c.OpenAPI,
			Message: "must be a 3.0.x, 3.1.x, or 3.2.x version",
		}
	}
	if c.Info == nil || c.Info.Title == "" || c.Info.Version == "" {
		return &oaserrors.ConfigError{Option: "info", Message: "title and version are required"}
	}
	if _, err := naming.ParseStrategy(c.Naming); err != nil {
		return &oaserrors.ConfigError{Option: "naming", Value: c.Naming, Cause: err}
	}
	for kind := range c.Scopes {
		k, ok := marker.ParseKind(kind)
		if !ok || !slices.Contains(marker.DiscoverableKinds, k) {
			return &oaserrors.ConfigError{Option: "scopes", Value: kind, Message: "unknown kind"}
		}
	}
	if c.DefaultCollection == "" {
		return &oaserrors.ConfigError{Option: "default_collection", Message: "must not be empty"}
	}
	for name, coll := range c.Collections {
		if name == "" || name == "*" {
			return &oaserrors.ConfigError{Option: "collections", Value: name, Message: "invalid collection name"}
		}
		if coll == nil {
			c.Collections[name] = &Collection{}
		}
	}
	return nil
}

// NamingStrategy returns the configured case strategy.
func (c *Config) NamingStrategy() naming.Strategy {
	st, err := naming.ParseStrategy(c.Naming)
	if err != nil {
		return naming.AsIs
	}
	return st
}

// StripSuffix reports whether kind suffixes are stripped from derived
// names. It defaults to true.
func (c *Config) StripSuffix() bool {
	return c.StripKindSuffix == nil || *c.StripKindSuffix
}

// CollectionNames returns the configured collection names plus the
// default collection, sorted.
func (c *Config) CollectionNames() []string {
	names := []string{c.DefaultCollection}
	for name := range c.Collections {
		if name != c.DefaultCollection {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// Collection returns the named collection. The default collection always
// exists, even when it has no configured overrides.
func (c *Config) Collection(name string) (*Collection, bool) {
	if coll, ok := c.Collections[name]; ok {
		return coll, true
	}
	if name == c.DefaultCollection {
		return &Collection{}, true
	}
	return nil, false
}

// ScopesFor returns the configured scope patterns for kind.
func (c *Config) ScopesFor(kind marker.Kind) []string {
	return c.Scopes[string(kind)]
}

// Resolve returns p joined to Root when p is relative.
func (c *Config) Resolve(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(c.Root, p)
}
