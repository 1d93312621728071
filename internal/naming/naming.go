// Package naming provides component name derivation and case strategies.
package naming

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Strategy selects how derived component names are cased.
type Strategy string

const (
	// AsIs keeps the short type name unchanged.
	AsIs Strategy = "as-is"
	// Pascal converts to PascalCase.
	Pascal Strategy = "pascal"
	// Camel converts to camelCase.
	Camel Strategy = "camel"
	// Snake converts to snake_case.
	Snake Strategy = "snake"
	// Kebab converts to kebab-case.
	Kebab Strategy = "kebab"
)

// Strategies lists the valid strategies.
var Strategies = []Strategy{AsIs, Pascal, Camel, Snake, Kebab}

// ParseStrategy returns the Strategy named by s. The empty string is AsIs.
func ParseStrategy(s string) (Strategy, error) {
	if s == "" {
		return AsIs, nil
	}
	for _, st := range Strategies {
		if string(st) == strings.ToLower(s) {
			return st, nil
		}
	}
	return "", fmt.Errorf("naming: unknown strategy %q (valid: as-is, pascal, camel, snake, kebab)", s)
}

// Apply converts s according to the strategy.
func (st Strategy) Apply(s string) string {
	switch st {
	case Pascal:
		return ToPascalCase(s)
	case Camel:
		return ToCamelCase(s)
	case Snake:
		return ToSnakeCase(s)
	case Kebab:
		return ToKebabCase(s)
	}
	return s
}

// Derive builds a component name from a short type name. When strip is
// set, a trailing kind suffix is removed unless it is the whole name
// ("UserSchema" -> "User", but "Schema" stays). The result is cased by
// strategy and sanitized to the characters allowed in component keys.
func Derive(shortName, suffix string, strip bool, strategy Strategy) string {
	name := shortName
	if strip && suffix != "" && name != suffix {
		name = strings.TrimSuffix(name, suffix)
	}
	return Sanitize(strategy.Apply(name))
}

// Sanitize replaces every character outside [A-Za-z0-9._-] with '_'.
// Component keys must match ^[a-zA-Z0-9.\-_]+$.
func Sanitize(s string) string {
	valid := func(r rune) bool {
		return r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '-' || r == '_')
	}
	if strings.IndexFunc(s, func(r rune) bool { return !valid(r) }) < 0 {
		return s
	}
	var sb strings.Builder
	for _, r := range s {
		if valid(r) {
			sb.WriteRune(r)
		} else {
			sb.WriteByte('_')
		}
	}
	return sb.String()
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || r == '/' || r == '\\' || unicode.IsSpace(r)
}

// Words splits s into words at separators and case boundaries.
// Acronyms stay together ("APIClient" -> "API", "Client") and digits
// attach to the preceding word ("ApiV2Client" -> "Api", "V2", "Client").
func Words(s string) []string {
	runes := []rune(s)
	var words []string
	start := -1
	flush := func(end int) {
		if start >= 0 && end > start {
			words = append(words, string(runes[start:end]))
		}
		start = -1
	}
	for i, r := range runes {
		if isSeparator(r) {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
			continue
		}
		if unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush(i)
				start = i
			}
		}
	}
	flush(len(runes))
	return words
}

// ToPascalCase converts a string to PascalCase.
// Example: "user_profile" -> "UserProfile"
// Example: "api-client" -> "ApiClient"
func ToPascalCase(s string) string {
	upper := cases.Title(language.Und, cases.NoLower)
	var sb strings.Builder
	for _, w := range Words(s) {
		sb.WriteString(upper.String(w))
	}
	return sb.String()
}

// ToCamelCase converts a string to camelCase.
// Example: "UserProfile" -> "userProfile"
// Example: "APIClient" -> "apiClient"
func ToCamelCase(s string) string {
	words := Words(s)
	if len(words) == 0 {
		return ""
	}
	lower := cases.Lower(language.Und)
	upper := cases.Title(language.Und, cases.NoLower)
	var sb strings.Builder
	sb.WriteString(lower.String(words[0]))
	for _, w := range words[1:] {
		sb.WriteString(upper.String(w))
	}
	return sb.String()
}

// ToSnakeCase converts a string to snake_case.
// Example: "UserProfile" -> "user_profile"
// Example: "APIClient" -> "api_client"
func ToSnakeCase(s string) string {
	return joinLower(s, "_")
}

// ToKebabCase converts a string to kebab-case.
// Example: "UserProfile" -> "user-profile"
func ToKebabCase(s string) string {
	return joinLower(s, "-")
}

func joinLower(s, sep string) string {
	words := Words(s)
	lower := cases.Lower(language.Und)
	for i, w := range words {
		words[i] = lower.String(w)
	}
	return strings.Join(words, sep)
}
