package oas

import (
	"strconv"
	"strings"
)

// Version identifies an OpenAPI 3.x release series a document can target.
type Version int

const (
	// Unknown represents an unknown or unsupported version
	Unknown Version = iota
	// Version30 is the OpenAPI Specification 3.0.x series
	Version30
	// Version31 is the OpenAPI Specification 3.1.x series
	Version31
	// Version32 is the OpenAPI Specification 3.2.x series
	Version32
)

// DefaultVersion is the openapi field value used when none is configured.
const DefaultVersion = "3.1.0"

var versionSeries = map[string]Version{
	"3.0": Version30,
	"3.1": Version31,
	"3.2": Version32,
}

func (v Version) String() string {
	switch v {
	case Version30:
		return "3.0"
	case Version31:
		return "3.1"
	case Version32:
		return "3.2"
	}
	return "unknown"
}

// SupportsTypeArrays reports whether schema type may be a list (3.1+).
func (v Version) SupportsTypeArrays() bool {
	return v >= Version31
}

// ParseVersion parses an openapi field value such as "3.0.3" or "3.1.0-rc1".
// It returns false for 2.0 and anything outside the 3.x series above.
func ParseVersion(s string) (Version, bool) {
	base, _, _ := strings.Cut(strings.TrimSpace(s), "-")
	parts := strings.Split(base, ".")
	if len(parts) != 3 {
		return Unknown, false
	}
	for _, p := range parts {
		if _, err := strconv.Atoi(p); err != nil {
			return Unknown, false
		}
	}
	v, ok := versionSeries[parts[0]+"."+parts[1]]
	if !ok {
		return Unknown, false
	}
	return v, true
}
