package components

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/erraggy/oasgen/marker"
	"github.com/erraggy/oasgen/oas"
	"github.com/erraggy/oasgen/oaserrors"
	"github.com/erraggy/oasgen/oaslog"
)

// TableBuilder builds the component table of one kind from declarations.
type TableBuilder[T any] interface {
	Build(ctx context.Context, decls []marker.Declaration) (*Table[T], error)
}

// FactoryBuilder is the TableBuilder that names each declaration and
// invokes its factory to construct the body.
//
// Names are assigned sequentially in declaration order so collisions are
// reported deterministically. Bodies are then built in parallel.
type FactoryBuilder[T any] struct {
	kind      marker.Kind
	iface     string
	namer     Namer
	logger    oaslog.Logger
	construct func(factory any) (body *T, ok bool, err error)
}

func newFactoryBuilder[T any](kind marker.Kind, iface string, construct func(any) (*T, bool, error), opts []Option) *FactoryBuilder[T] {
	o := applyOptions(opts)
	return &FactoryBuilder[T]{
		kind:      kind,
		iface:     iface,
		namer:     o.namer,
		logger:    o.logger,
		construct: construct,
	}
}

// NewSchemaBuilder returns a builder for #/components/schemas.
func NewSchemaBuilder(opts ...Option) *FactoryBuilder[oas.Schema] {
	return newFactoryBuilder(marker.KindSchema, "marker.SchemaFactory", func(f any) (*oas.Schema, bool, error) {
		sf, ok := f.(marker.SchemaFactory)
		if !ok {
			return nil, false, nil
		}
		s, err := sf.BuildSchema()
		return s, true, err
	}, opts)
}

// NewResponseBuilder returns a builder for #/components/responses.
func NewResponseBuilder(opts ...Option) *FactoryBuilder[oas.Response] {
	return newFactoryBuilder(marker.KindResponse, "marker.ResponseFactory", func(f any) (*oas.Response, bool, error) {
		rf, ok := f.(marker.ResponseFactory)
		if !ok {
			return nil, false, nil
		}
		r, err := rf.BuildResponse()
		return r, true, err
	}, opts)
}

// NewRequestBodyBuilder returns a builder for #/components/requestBodies.
func NewRequestBodyBuilder(opts ...Option) *FactoryBuilder[oas.RequestBody] {
	return newFactoryBuilder(marker.KindRequestBody, "marker.RequestBodyFactory", func(f any) (*oas.RequestBody, bool, error) {
		rf, ok := f.(marker.RequestBodyFactory)
		if !ok {
			return nil, false, nil
		}
		rb, err := rf.BuildRequestBody()
		return rb, true, err
	}, opts)
}

// NewCallbackBuilder returns a builder for #/components/callbacks.
func NewCallbackBuilder(opts ...Option) *FactoryBuilder[oas.Callback] {
	return newFactoryBuilder(marker.KindCallback, "marker.CallbackFactory", func(f any) (*oas.Callback, bool, error) {
		cf, ok := f.(marker.CallbackFactory)
		if !ok {
			return nil, false, nil
		}
		cb, err := cf.BuildCallback()
		return cb, true, err
	}, opts)
}

// NewSecuritySchemeBuilder returns a builder for #/components/securitySchemes.
func NewSecuritySchemeBuilder(opts ...Option) *FactoryBuilder[oas.SecurityScheme] {
	return newFactoryBuilder(marker.KindSecurityScheme, "marker.SecuritySchemeFactory", func(f any) (*oas.SecurityScheme, bool, error) {
		sf, ok := f.(marker.SecuritySchemeFactory)
		if !ok {
			return nil, false, nil
		}
		ss, err := sf.BuildSecurityScheme()
		return ss, true, err
	}, opts)
}

type namedDecl struct {
	name string
	decl marker.Declaration
}

// Build implements TableBuilder. Usage declarations are ignored. Zero
// declarations yield an empty table.
func (b *FactoryBuilder[T]) Build(ctx context.Context, decls []marker.Declaration) (*Table[T], error) {
	table := newTable[T](b.kind)

	named, err := assignNames(b.kind, b.namer, decls, table.origins, b.logger)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, nd := range named {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			body, err := b.build(nd)
			if err != nil {
				return err
			}
			mu.Lock()
			table.entries[nd.name] = body
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	b.logger.Debug("built component table", "kind", string(b.kind), "count", table.Len())
	return table, nil
}

func (b *FactoryBuilder[T]) build(nd namedDecl) (*T, error) {
	d := nd.decl
	if d.Factory == nil {
		return nil, &oaserrors.ConfigError{
			Option:  "factory",
			Value:   d.ID.String(),
			Message: fmt.Sprintf("%s declaration %q has no factory", b.kind, nd.name),
		}
	}
	body, ok, err := b.construct(d.Factory)
	if !ok {
		return nil, &oaserrors.ConfigError{
			Option:  "factory",
			Value:   d.ID.String(),
			Message: fmt.Sprintf("factory of %s declaration %q is %T, want %s", b.kind, nd.name, d.Factory, b.iface),
		}
	}
	if err != nil {
		return nil, fmt.Errorf("components: building %s %q declared by %s: %w", b.kind, nd.name, d.ID, err)
	}
	if body == nil {
		return nil, &oaserrors.ConfigError{
			Option:  "factory",
			Value:   d.ID.String(),
			Message: fmt.Sprintf("factory of %s declaration %q returned nil", b.kind, nd.name),
		}
	}
	return body, nil
}

// assignNames names every definition in decls, recording the declaring
// identity in origins. The same identity seen twice is kept once; two
// identities claiming one name is a DuplicateComponentError.
func assignNames(kind marker.Kind, namer Namer, decls []marker.Declaration, origins map[string]marker.Identity, logger oaslog.Logger) ([]namedDecl, error) {
	named := make([]namedDecl, 0, len(decls))
	for _, d := range decls {
		if d.IsUsage() {
			logger.Debug("skipping usage marker", "kind", string(kind), "id", d.ID.String())
			continue
		}
		if d.Kind != "" && d.Kind != kind {
			return nil, &oaserrors.ConfigError{
				Option:  "kind",
				Value:   string(d.Kind),
				Message: fmt.Sprintf("declaration %s passed to the %s builder", d.ID, kind),
			}
		}
		d.Kind = kind
		name := namer.Name(d)
		if name == "" {
			return nil, &oaserrors.ConfigError{
				Option:  "name",
				Value:   d.ID.String(),
				Message: fmt.Sprintf("cannot derive a %s name", kind),
			}
		}
		if prev, exists := origins[name]; exists {
			if prev == d.ID {
				continue
			}
			section := kind.Section()
			if section == "" {
				section = string(kind)
			}
			return nil, &oaserrors.DuplicateComponentError{
				Kind:   section,
				Name:   name,
				First:  prev.String(),
				Second: d.ID.String(),
			}
		}
		origins[name] = d.ID
		named = append(named, namedDecl{name: name, decl: d})
	}
	return named, nil
}
