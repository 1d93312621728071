package components

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/erraggy/oasgen/marker"
	"github.com/erraggy/oasgen/oas"
	"github.com/erraggy/oasgen/oaslog"
)

// Tables holds the component table of every component kind built in one
// generation pass.
type Tables struct {
	Schemas         *Table[oas.Schema]
	Responses       *Table[oas.Response]
	RequestBodies   *Table[oas.RequestBody]
	Callbacks       *Table[oas.Callback]
	SecuritySchemes *Table[oas.SecurityScheme]
}

// Has reports whether the component kind holds name.
func (t *Tables) Has(kind marker.Kind, name string) bool {
	if t == nil {
		return false
	}
	switch kind {
	case marker.KindSchema:
		return t.Schemas.Has(name)
	case marker.KindResponse:
		return t.Responses.Has(name)
	case marker.KindRequestBody:
		return t.RequestBodies.Has(name)
	case marker.KindCallback:
		return t.Callbacks.Has(name)
	case marker.KindSecurityScheme:
		return t.SecuritySchemes.Has(name)
	}
	return false
}

// Names returns the sorted component names of kind.
func (t *Tables) Names(kind marker.Kind) []string {
	if t == nil {
		return nil
	}
	switch kind {
	case marker.KindSchema:
		return t.Schemas.Names()
	case marker.KindResponse:
		return t.Responses.Names()
	case marker.KindRequestBody:
		return t.RequestBodies.Names()
	case marker.KindCallback:
		return t.Callbacks.Names()
	case marker.KindSecurityScheme:
		return t.SecuritySchemes.Names()
	}
	return nil
}

// Components assembles the components object. Empty kinds are nil, and
// the result is nil when every kind is empty.
func (t *Tables) Components() *oas.Components {
	if t == nil {
		return nil
	}
	c := &oas.Components{
		Schemas:         t.Schemas.Map(),
		Responses:       t.Responses.Map(),
		RequestBodies:   t.RequestBodies.Map(),
		Callbacks:       t.Callbacks.Map(),
		SecuritySchemes: t.SecuritySchemes.Map(),
	}
	if c.IsEmpty() {
		return nil
	}
	return c
}

// Builder builds every component kind concurrently.
type Builder struct {
	schemas         TableBuilder[oas.Schema]
	responses       TableBuilder[oas.Response]
	requestBodies   TableBuilder[oas.RequestBody]
	callbacks       TableBuilder[oas.Callback]
	securitySchemes TableBuilder[oas.SecurityScheme]
	logger          oaslog.Logger
}

// NewBuilder returns a Builder. Kind builders not replaced through
// options are FactoryBuilders sharing the namer and logger options.
func NewBuilder(opts ...Option) *Builder {
	o := applyOptions(opts)
	b := &Builder{
		schemas:         o.schemas,
		responses:       o.responses,
		requestBodies:   o.requestBodies,
		callbacks:       o.callbacks,
		securitySchemes: o.securitySchemes,
		logger:          o.logger,
	}
	if b.schemas == nil {
		b.schemas = NewSchemaBuilder(opts...)
	}
	if b.responses == nil {
		b.responses = NewResponseBuilder(opts...)
	}
	if b.requestBodies == nil {
		b.requestBodies = NewRequestBodyBuilder(opts...)
	}
	if b.callbacks == nil {
		b.callbacks = NewCallbackBuilder(opts...)
	}
	if b.securitySchemes == nil {
		b.securitySchemes = NewSecuritySchemeBuilder(opts...)
	}
	return b
}

// Build builds the tables for the component declarations in decls, keyed
// by kind. Other kinds in decls are ignored. Names may repeat across
// kinds; a repeat within a kind fails the whole build.
func (b *Builder) Build(ctx context.Context, decls map[marker.Kind][]marker.Declaration) (*Tables, error) {
	t := &Tables{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		t.Schemas, err = b.schemas.Build(gctx, decls[marker.KindSchema])
		return err
	})
	g.Go(func() (err error) {
		t.Responses, err = b.responses.Build(gctx, decls[marker.KindResponse])
		return err
	})
	g.Go(func() (err error) {
		t.RequestBodies, err = b.requestBodies.Build(gctx, decls[marker.KindRequestBody])
		return err
	})
	g.Go(func() (err error) {
		t.Callbacks, err = b.callbacks.Build(gctx, decls[marker.KindCallback])
		return err
	})
	g.Go(func() (err error) {
		t.SecuritySchemes, err = b.securitySchemes.Build(gctx, decls[marker.KindSecurityScheme])
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("components: %w", err)
	}
	b.logger.Debug("built components",
		"schemas", t.Schemas.Len(),
		"responses", t.Responses.Len(),
		"requestBodies", t.RequestBodies.Len(),
		"callbacks", t.Callbacks.Len(),
		"securitySchemes", t.SecuritySchemes.Len(),
	)
	return t, nil
}
