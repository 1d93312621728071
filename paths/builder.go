package paths

import (
	"context"
	"fmt"
	"strings"

	"github.com/erraggy/oasgen/components"
	"github.com/erraggy/oasgen/marker"
	"github.com/erraggy/oasgen/oas"
	"github.com/erraggy/oasgen/oaserrors"
	"github.com/erraggy/oasgen/oaslog"
	"github.com/erraggy/oasgen/routes"
)

// Refs is what operations may refer to: the component tables of the
// current pass and the named definitions of every kind, used for kinds
// that are inlined (parameters, extensions) and for attributes of
// referenced definitions such as a response's default status.
type Refs struct {
	Tables      *components.Tables
	Definitions map[marker.Kind]*components.Index
}

func (r Refs) definition(kind marker.Kind, name string) (marker.Declaration, bool) {
	return r.Definitions[kind].Lookup(name)
}

// Option configures a Builder.
type Option func(*builderConfig)

type builderConfig struct {
	logger oaslog.Logger
}

// WithLogger sets the logger. The default discards all output.
func WithLogger(l oaslog.Logger) Option {
	return func(c *builderConfig) {
		c.logger = l
	}
}

// Builder assembles the paths object from routes.
type Builder struct {
	logger oaslog.Logger
}

// NewBuilder returns a Builder.
func NewBuilder(opts ...Option) *Builder {
	cfg := &builderConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Builder{logger: oaslog.OrNop(cfg.logger)}
}

// Build returns the paths object for ops. Routes sharing a template are
// merged into one path item. A route registered twice by the same handler
// is kept once. Two handlers claiming one method and template, two
// templates differing only in placeholder names, or two operations
// sharing an operationId, is a ConflictingOperationError.
func (b *Builder) Build(ctx context.Context, ops []routes.Operation, refs Refs) (oas.Paths, error) {
	paths := make(oas.Paths)
	claimed := make(map[string]marker.Identity, len(ops))
	operationIDs := make(map[string]marker.Identity)
	shapes := make(map[string]templateClaim)

	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		method := strings.ToUpper(op.Method)
		if !oas.IsMethod(method) {
			return nil, fmt.Errorf("paths: %w", &oaserrors.ConfigError{
				Option:  "method",
				Value:   op.Method,
				Message: fmt.Sprintf("route %s handled by %s", op.Path, op.Handler),
			})
		}
		template := routes.NormalizePath(op.Path)
		key := method + " " + template

		shape := templateShape(template)
		if prev, ok := shapes[shape]; !ok {
			shapes[shape] = templateClaim{template: template, handler: op.Handler}
		} else if prev.template != template {
			return nil, fmt.Errorf("paths: %w", &oaserrors.ConflictingOperationError{
				Path:   template,
				First:  fmt.Sprintf("%s at %s", prev.handler, prev.template),
				Second: fmt.Sprintf("%s at %s", op.Handler, template),
			})
		}

		if prev, ok := claimed[key]; ok {
			if sameHandler(prev, op.Handler) {
				b.logger.Debug("skipping duplicate route", "route", key, "handler", op.Handler.String())
				continue
			}
			return nil, fmt.Errorf("paths: %w", &oaserrors.ConflictingOperationError{
				Method: method,
				Path:   template,
				First:  prev.String(),
				Second: op.Handler.String(),
			})
		}
		claimed[key] = op.Handler

		ob := &operationBuilder{
			location: key,
			template: template,
			refs:     refs,
			logger:   b.logger,
		}
		operation, err := ob.build(op.Markers)
		if err != nil {
			return nil, fmt.Errorf("paths: %w", err)
		}

		if id := operation.OperationID; id != "" {
			if prev, ok := operationIDs[id]; ok {
				return nil, fmt.Errorf("paths: %w", &oaserrors.ConflictingOperationError{
					Method:      method,
					Path:        template,
					OperationID: id,
					First:       prev.String(),
					Second:      op.Handler.String(),
				})
			}
			operationIDs[id] = op.Handler
		}

		item := paths[template]
		if item == nil {
			item = &oas.PathItem{}
			paths[template] = item
		}
		item.SetOperation(method, operation)
	}

	b.logger.Debug("built paths", "paths", len(paths), "routes", len(claimed))
	return paths, nil
}

type templateClaim struct {
	template string
	handler  marker.Identity
}

// templateShape blanks the placeholder names of a template, so
// "/users/{id}" and "/users/{userId}" share a shape.
func templateShape(template string) string {
	var sb strings.Builder
	depth := 0
	for _, r := range template {
		switch {
		case r == '{':
			depth++
			if depth == 1 {
				sb.WriteString("{}")
			}
		case r == '}' && depth > 0:
			depth--
		case depth == 0:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// sameHandler compares handlers by type and method; the same handler may
// be registered from different source locations.
func sameHandler(a, b marker.Identity) bool {
	if a.Type == "" && b.Type == "" {
		return a == b
	}
	return a.Type == b.Type && a.Method == b.Method
}
