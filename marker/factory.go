package marker

import (
	"fmt"

	"github.com/erraggy/oasgen/oas"
)

// Factories construct the body of a declared definition. Each call must
// return a fresh value: generated documents own their objects and may
// rewrite references in place.

// SchemaFactory builds the body of a schema declaration.
type SchemaFactory interface {
	BuildSchema() (*oas.Schema, error)
}

// ResponseFactory builds the body of a response declaration.
type ResponseFactory interface {
	BuildResponse() (*oas.Response, error)
}

// RequestBodyFactory builds the body of a request body declaration.
type RequestBodyFactory interface {
	BuildRequestBody() (*oas.RequestBody, error)
}

// CallbackFactory builds the body of a callback declaration.
type CallbackFactory interface {
	BuildCallback() (*oas.Callback, error)
}

// SecuritySchemeFactory builds the body of a security scheme declaration.
type SecuritySchemeFactory interface {
	BuildSecurityScheme() (*oas.SecurityScheme, error)
}

// ParametersFactory builds the parameters of a parameters declaration.
type ParametersFactory interface {
	BuildParameters() ([]*oas.Parameter, error)
}

// TagFactory builds a tag declaration.
type TagFactory interface {
	BuildTag() (*oas.Tag, error)
}

// ExtensionFactory builds an extension field. The key may omit the "x-" prefix.
type ExtensionFactory interface {
	BuildExtension() (key string, value any, err error)
}

// SchemaFunc adapts a function to SchemaFactory.
type SchemaFunc func() (*oas.Schema, error)

// BuildSchema calls f.
func (f SchemaFunc) BuildSchema() (*oas.Schema, error) { return f() }

// ResponseFunc adapts a function to ResponseFactory.
type ResponseFunc func() (*oas.Response, error)

// BuildResponse calls f.
func (f ResponseFunc) BuildResponse() (*oas.Response, error) { return f() }

// RequestBodyFunc adapts a function to RequestBodyFactory.
type RequestBodyFunc func() (*oas.RequestBody, error)

// BuildRequestBody calls f.
func (f RequestBodyFunc) BuildRequestBody() (*oas.RequestBody, error) { return f() }

// CallbackFunc adapts a function to CallbackFactory.
type CallbackFunc func() (*oas.Callback, error)

// BuildCallback calls f.
func (f CallbackFunc) BuildCallback() (*oas.Callback, error) { return f() }

// SecuritySchemeFunc adapts a function to SecuritySchemeFactory.
type SecuritySchemeFunc func() (*oas.SecurityScheme, error)

// BuildSecurityScheme calls f.
func (f SecuritySchemeFunc) BuildSecurityScheme() (*oas.SecurityScheme, error) { return f() }

// ParametersFunc adapts a function to ParametersFactory.
type ParametersFunc func() ([]*oas.Parameter, error)

// BuildParameters calls f.
func (f ParametersFunc) BuildParameters() ([]*oas.Parameter, error) { return f() }

// TagFunc adapts a function to TagFactory.
type TagFunc func() (*oas.Tag, error)

// BuildTag calls f.
func (f TagFunc) BuildTag() (*oas.Tag, error) { return f() }

// ExtensionFunc adapts a function to ExtensionFactory.
type ExtensionFunc func() (string, any, error)

// BuildExtension calls f.
func (f ExtensionFunc) BuildExtension() (string, any, error) { return f() }

// Extension returns the key and value of an extension declaration, from
// its factory or from its key and value attributes. The key is returned
// as declared; callers add the "x-" prefix.
func (d Declaration) Extension() (string, any, error) {
	if d.Factory != nil {
		ef, ok := d.Factory.(ExtensionFactory)
		if !ok {
			return "", nil, fmt.Errorf("extension factory is %T, want marker.ExtensionFactory", d.Factory)
		}
		return ef.BuildExtension()
	}
	key := d.Attr("key")
	if key == "" {
		key = d.Name
	}
	return key, d.Attrs["value"], nil
}
