package discovery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasgen/marker"
	"github.com/erraggy/oasgen/oas"
	"github.com/erraggy/oasgen/oaserrors"
)

// FileSource reads declarations from YAML or JSON marker files inside
// directory scopes. Files are read recursively in lexical order.
//
// A marker file holds one entry or a list of entries:
//
//	- type: example.com/app/models.UserSchema   # identity; defaults to the file name
//	  name: User                                # explicit component name
//	  collections: [public]
//	  attrs: {status: "200"}
//	  body:                                     # the OpenAPI object for the kind
//	    type: object
//	    properties:
//	      id: {type: string}
//
// The body is an OpenAPI Schema, Response, Request Body, Callback, or
// Security Scheme object for component kinds, a list of Parameter objects
// for parameters, a Tag object for tags, and the extension value for
// extensions (whose key comes from attrs.key or the name).
type FileSource struct{}

// NewFileSource returns a FileSource.
func NewFileSource() *FileSource {
	return &FileSource{}
}

// Handles reports whether scope is a filesystem directory path.
func (*FileSource) Handles(scope string) bool {
	return filepath.IsAbs(scope)
}

// Discover implements Source.
func (s *FileSource) Discover(ctx context.Context, scope string, kind marker.Kind) ([]marker.Declaration, error) {
	var files []string
	err := filepath.WalkDir(scope, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml", ".json":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, &oaserrors.DiscoveryError{Scope: scope, Kind: string(kind), Message: "cannot read scope", Cause: err}
	}

	var out []marker.Declaration
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		decls, err := parseMarkerFile(path, kind)
		if err != nil {
			var discErr *oaserrors.DiscoveryError
			if !errors.As(err, &discErr) {
				discErr = &oaserrors.DiscoveryError{Location: path, Message: "invalid marker file", Cause: err}
			}
			discErr.Scope = scope
			discErr.Kind = string(kind)
			return nil, discErr
		}
		out = append(out, decls...)
	}
	return out, nil
}

type fileEntry struct {
	Type        string         `yaml:"type"`
	Name        string         `yaml:"name"`
	Collections []string       `yaml:"collections"`
	Attrs       map[string]any `yaml:"attrs"`
	Body        yaml.Node      `yaml:"body"`
}

func parseMarkerFile(path string, kind marker.Kind) ([]marker.Declaration, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from a configured scope
	if err != nil {
		return nil, err
	}
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, nil
	}

	doc := root.Content[0]
	var items []*yaml.Node
	switch doc.Kind {
	case yaml.MappingNode:
		items = []*yaml.Node{doc}
	case yaml.SequenceNode:
		items = doc.Content
	default:
		return nil, &oaserrors.DiscoveryError{
			Location: fmt.Sprintf("%s:%d", path, doc.Line),
			Message:  "marker file must hold a mapping or a list of mappings",
		}
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	decls := make([]marker.Declaration, 0, len(items))
	for _, item := range items {
		loc := fmt.Sprintf("%s:%d", path, item.Line)
		var entry fileEntry
		if err := item.Decode(&entry); err != nil {
			return nil, &oaserrors.DiscoveryError{Location: loc, Message: "invalid marker entry", Cause: err}
		}
		decl := marker.Declaration{
			ID:          marker.Identity{Type: entry.Type, Location: loc},
			Kind:        kind,
			Attrs:       entry.Attrs,
			Name:        entry.Name,
			Level:       marker.LevelClass,
			Collections: entry.Collections,
		}
		if decl.ID.Type == "" {
			decl.ID.Type = stem
		}
		if entry.Body.Kind != 0 {
			factory, err := bodyFactory(kind, &entry.Body, decl)
			if err != nil {
				return nil, &oaserrors.DiscoveryError{Location: loc, Message: "invalid body", Cause: err}
			}
			decl.Factory = factory
		}
		decls = append(decls, decl)
	}
	return decls, nil
}

// bodyFactory returns a factory that decodes a fresh copy of the body on
// every call. The body is decoded once up front so errors surface during
// discovery.
func bodyFactory(kind marker.Kind, node *yaml.Node, decl marker.Declaration) (any, error) {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return nil, err
	}
	raw = normalize(raw)
	if kind == marker.KindParameters {
		if _, single := raw.(map[string]any); single {
			raw = []any{raw}
		}
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	return jsonFactory(kind, data, decl)
}

// jsonFactory returns the factory for kind that decodes data on every call.
func jsonFactory(kind marker.Kind, data []byte, decl marker.Declaration) (any, error) {
	var factory any
	switch kind {
	case marker.KindSchema:
		factory = marker.SchemaFunc(decodeFunc[oas.Schema](data))
	case marker.KindResponse:
		factory = marker.ResponseFunc(decodeFunc[oas.Response](data))
	case marker.KindRequestBody:
		factory = marker.RequestBodyFunc(decodeFunc[oas.RequestBody](data))
	case marker.KindCallback:
		factory = marker.CallbackFunc(decodeFunc[oas.Callback](data))
	case marker.KindSecurityScheme:
		factory = marker.SecuritySchemeFunc(decodeFunc[oas.SecurityScheme](data))
	case marker.KindParameters:
		decode := decodeFunc[[]*oas.Parameter](data)
		factory = marker.ParametersFunc(func() ([]*oas.Parameter, error) {
			params, err := decode()
			if err != nil {
				return nil, err
			}
			return *params, nil
		})
	case marker.KindTag:
		decode := decodeFunc[oas.Tag](data)
		name := decl.Name
		if name == "" {
			name = decl.ID.ShortName()
		}
		factory = marker.TagFunc(func() (*oas.Tag, error) {
			tag, err := decode()
			if err != nil {
				return nil, err
			}
			if tag.Name == "" {
				tag.Name = name
			}
			return tag, nil
		})
	case marker.KindExtension:
		decode := decodeFunc[any](data)
		key := decl.Attr("key")
		if key == "" {
			key = decl.Name
		}
		if key == "" {
			key = decl.ID.ShortName()
		}
		factory = marker.ExtensionFunc(func() (string, any, error) {
			v, err := decode()
			if err != nil {
				return "", nil, err
			}
			return key, *v, nil
		})
	default:
		return nil, fmt.Errorf("kind %q has no body", kind)
	}

	// A malformed body fails discovery.
	if err := validateFactory(factory); err != nil {
		return nil, err
	}
	return factory, nil
}

func decodeFunc[T any](data []byte) func() (*T, error) {
	return func() (*T, error) {
		v := new(T)
		if err := json.Unmarshal(data, v); err != nil {
			return nil, err
		}
		return v, nil
	}
}

func validateFactory(factory any) error {
	var err error
	switch f := factory.(type) {
	case marker.SchemaFactory:
		_, err = f.BuildSchema()
	case marker.ResponseFactory:
		_, err = f.BuildResponse()
	case marker.RequestBodyFactory:
		_, err = f.BuildRequestBody()
	case marker.CallbackFactory:
		_, err = f.BuildCallback()
	case marker.SecuritySchemeFactory:
		_, err = f.BuildSecurityScheme()
	case marker.ParametersFactory:
		_, err = f.BuildParameters()
	case marker.TagFactory:
		_, err = f.BuildTag()
	case marker.ExtensionFactory:
		_, _, err = f.BuildExtension()
	}
	return err
}

// normalize converts YAML mappings with non-string keys (such as unquoted
// status codes) into string-keyed maps that encoding/json accepts.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalize(val)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = normalize(val)
		}
		return m
	case []any:
		for i, val := range t {
			t[i] = normalize(val)
		}
		return t
	}
	return v
}
