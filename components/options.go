package components

import (
	"github.com/erraggy/oasgen/oas"
	"github.com/erraggy/oasgen/oaslog"
)

// Option configures the kind builders and the Components Builder.
type Option func(*options)

type options struct {
	namer  Namer
	logger oaslog.Logger

	schemas         TableBuilder[oas.Schema]
	responses       TableBuilder[oas.Response]
	requestBodies   TableBuilder[oas.RequestBody]
	callbacks       TableBuilder[oas.Callback]
	securitySchemes TableBuilder[oas.SecurityScheme]
}

func applyOptions(opts []Option) *options {
	o := &options{namer: DefaultNamer()}
	for _, opt := range opts {
		opt(o)
	}
	o.logger = oaslog.OrNop(o.logger)
	return o
}

// WithNamer sets how component names are derived.
func WithNamer(n Namer) Option {
	return func(o *options) {
		o.namer = n
	}
}

// WithLogger sets the logger. The default discards all output.
func WithLogger(l oaslog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithSchemaBuilder replaces the schema table builder used by Builder.
func WithSchemaBuilder(b TableBuilder[oas.Schema]) Option {
	return func(o *options) { o.schemas = b }
}

// WithResponseBuilder replaces the response table builder used by Builder.
func WithResponseBuilder(b TableBuilder[oas.Response]) Option {
	return func(o *options) { o.responses = b }
}

// WithRequestBodyBuilder replaces the request body table builder used by Builder.
func WithRequestBodyBuilder(b TableBuilder[oas.RequestBody]) Option {
	return func(o *options) { o.requestBodies = b }
}

// WithCallbackBuilder replaces the callback table builder used by Builder.
func WithCallbackBuilder(b TableBuilder[oas.Callback]) Option {
	return func(o *options) { o.callbacks = b }
}

// WithSecuritySchemeBuilder replaces the security scheme table builder used by Builder.
func WithSecuritySchemeBuilder(b TableBuilder[oas.SecurityScheme]) Option {
	return func(o *options) { o.securitySchemes = b }
}
