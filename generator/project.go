package generator

import (
	"fmt"

	"github.com/erraggy/oasgen/config"
	"github.com/erraggy/oasgen/discovery"
	"github.com/erraggy/oasgen/routes"
)

// NewProject returns a Generator for a project described by cfg alone:
// declarations come from a discovery.Registry over the configured scopes
// and fragments, routes from the route files listed in cfg.Routes.
func NewProject(cfg *config.Config, opts ...Option) (*Generator, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	gc := &generatorConfig{}
	for _, opt := range opts {
		opt(gc)
	}
	registry := discovery.NewRegistry(cfg, discovery.WithLogger(gc.logger))
	table := routes.NewTable()
	for _, p := range cfg.Routes {
		if err := table.LoadFile(cfg.Resolve(p)); err != nil {
			return nil, fmt.Errorf("generator: %w", err)
		}
	}
	return New(cfg, registry, table, opts...), nil
}
