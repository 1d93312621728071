package config

import (
	"maps"

	"github.com/erraggy/oasgen/oas"
)

// MergeInfo returns base with every non-empty field of override applied.
// Neither argument is modified.
func MergeInfo(base, override *oas.Info) *oas.Info {
	out := &oas.Info{}
	if base != nil {
		*out = *base
		out.Extra = maps.Clone(base.Extra)
	}
	if override == nil {
		return out
	}
	if override.Title != "" {
		out.Title = override.Title
	}
	if override.Summary != "" {
		out.Summary = override.Summary
	}
	if override.Description != "" {
		out.Description = override.Description
	}
	if override.TermsOfService != "" {
		out.TermsOfService = override.TermsOfService
	}
	if override.Contact != nil {
		out.Contact = override.Contact
	}
	if override.License != nil {
		out.License = override.License
	}
	if override.Version != "" {
		out.Version = override.Version
	}
	if len(override.Extra) > 0 {
		if out.Extra == nil {
			out.Extra = make(map[string]any, len(override.Extra))
		}
		maps.Copy(out.Extra, override.Extra)
	}
	return out
}

// MergeExtensions returns base overlaid with override.
func MergeExtensions(base, override map[string]any) map[string]any {
	if len(base) == 0 && len(override) == 0 {
		return nil
	}
	out := make(map[string]any, len(base)+len(override))
	maps.Copy(out, base)
	maps.Copy(out, override)
	return out
}
