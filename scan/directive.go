package scan

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// DirectivePrefix starts every oasgen directive comment.
const DirectivePrefix = "//openapi:"

// RouteDirective is the directive name that registers a route.
const RouteDirective = "route"

// Directive is one parsed "//openapi:<name> args key=value" comment.
type Directive struct {
	// Name is the kind or "route".
	Name string
	// Args are the positional arguments in order.
	Args []string
	// Attrs are the key=value arguments.
	Attrs map[string]string
}

// ParseDirective parses a comment line. ok is false when the line is not
// a directive. Values may be double-quoted Go strings.
func ParseDirective(line string) (d Directive, ok bool, err error) {
	rest, found := strings.CutPrefix(strings.TrimSpace(line), DirectivePrefix)
	if !found {
		return Directive{}, false, nil
	}
	name, rest, _ := strings.Cut(rest, " ")
	if name == "" {
		return Directive{}, true, fmt.Errorf("directive has no name")
	}
	d.Name = name

	tokens, err := tokenize(rest)
	if err != nil {
		return Directive{}, true, fmt.Errorf("directive %s: %w", name, err)
	}
	for _, tok := range tokens {
		if key, value, isAttr := cutAttr(tok); isAttr {
			if d.Attrs == nil {
				d.Attrs = make(map[string]string)
			}
			d.Attrs[key] = value
			continue
		}
		d.Args = append(d.Args, tok.text)
	}
	return d, true, nil
}

type token struct {
	text    string
	literal bool // starts with a quote
}

// cutAttr splits key=value tokens. A token that starts with a quote is
// always positional.
func cutAttr(tok token) (key, value string, ok bool) {
	if tok.literal {
		return "", "", false
	}
	i := strings.IndexByte(tok.text, '=')
	if i <= 0 {
		return "", "", false
	}
	key = tok.text[:i]
	for _, r := range key {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' {
			return "", "", false
		}
	}
	return key, tok.text[i+1:], true
}

func tokenize(s string) ([]token, error) {
	var tokens []token
	for {
		s = strings.TrimLeftFunc(s, unicode.IsSpace)
		if s == "" {
			return tokens, nil
		}
		var sb strings.Builder
		literal := s[0] == '"'
		for s != "" && !unicode.IsSpace(rune(s[0])) {
			if s[0] != '"' {
				sb.WriteByte(s[0])
				s = s[1:]
				continue
			}
			prefix, err := strconv.QuotedPrefix(s)
			if err != nil {
				return nil, fmt.Errorf("unterminated string %s", s)
			}
			unquoted, err := strconv.Unquote(prefix)
			if err != nil {
				return nil, err
			}
			sb.WriteString(unquoted)
			s = s[len(prefix):]
		}
		tokens = append(tokens, token{text: sb.String(), literal: literal})
	}
}
