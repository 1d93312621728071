package components

import (
	"github.com/erraggy/oasgen/config"
	"github.com/erraggy/oasgen/internal/naming"
	"github.com/erraggy/oasgen/marker"
)

// Namer derives component names from declarations.
type Namer struct {
	// Strategy is the case conversion applied to derived names.
	Strategy naming.Strategy
	// StripSuffix removes the kind suffix ("UserSchema" -> "User").
	StripSuffix bool
}

// DefaultNamer keeps type names as written and strips kind suffixes.
func DefaultNamer() Namer {
	return Namer{Strategy: naming.AsIs, StripSuffix: true}
}

// NamerFor returns the Namer configured by cfg.
func NamerFor(cfg *config.Config) Namer {
	if cfg == nil {
		return DefaultNamer()
	}
	return Namer{Strategy: cfg.NamingStrategy(), StripSuffix: cfg.StripSuffix()}
}

// Name returns the explicit name of d, or one derived from its identity.
// Explicit names are used verbatim.
func (n Namer) Name(d marker.Declaration) string {
	if d.Name != "" {
		return d.Name
	}
	return naming.Derive(d.ID.ShortName(), d.Kind.Suffix(), n.StripSuffix, n.Strategy)
}
