package oas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

func TestMarshalJSONFlattensExtensions(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected map[string]any
	}{
		{
			name:     "info without Extra",
			value:    &Info{Title: "Petstore", Version: "1.0.0"},
			expected: map[string]any{"title": "Petstore", "version": "1.0.0"},
		},
		{
			name: "info with Extra",
			value: &Info{
				Title:   "Petstore",
				Version: "1.0.0",
				Extra:   map[string]any{"x-logo": "logo.png"},
			},
			expected: map[string]any{"title": "Petstore", "version": "1.0.0", "x-logo": "logo.png"},
		},
		{
			name: "operation drops non-extension Extra keys",
			value: &Operation{
				OperationID: "listPets",
				Responses:   &Responses{Default: &Response{Description: "Default response"}},
				Extra:       map[string]any{"x-internal": true, "bogus": 1},
			},
			expected: map[string]any{
				"operationId": "listPets",
				"responses":   map[string]any{"default": map[string]any{"description": "Default response"}},
				"x-internal":  true,
			},
		},
		{
			name: "schema with nested extension",
			value: &Schema{
				Type: "object",
				Properties: map[string]*Schema{
					"id": {Type: "string", Extra: map[string]any{"x-go-name": "ID"}},
				},
			},
			expected: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{"type": "string", "x-go-name": "ID"},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.value)
			require.NoError(t, err)

			var got map[string]any
			require.NoError(t, json.Unmarshal(data, &got))
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestUnmarshalJSONCapturesExtensions(t *testing.T) {
	var s SecurityScheme
	err := json.Unmarshal([]byte(`{"type":"http","scheme":"bearer","x-token-ttl":3600}`), &s)
	require.NoError(t, err)

	assert.Equal(t, "http", s.Type)
	assert.Equal(t, "bearer", s.Scheme)
	assert.Equal(t, map[string]any{"x-token-ttl": float64(3600)}, s.Extra)
}

func TestResponsesJSON(t *testing.T) {
	t.Run("marshal codes beside default", func(t *testing.T) {
		r := &Responses{
			Default: &Response{Description: "Unexpected error"},
			Codes: map[string]*Response{
				"200": {Ref: ResponseRef("UserFound")},
			},
		}
		data, err := json.Marshal(r)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"200": {"$ref": "#/components/responses/UserFound"},
			"default": {"description": "Unexpected error"}
		}`, string(data))
	})

	t.Run("unmarshal splits default from codes", func(t *testing.T) {
		var r Responses
		err := json.Unmarshal([]byte(`{"default":{"description":"d"},"404":{"description":"nf"},"x-ignored":{}}`), &r)
		require.NoError(t, err)
		require.NotNil(t, r.Default)
		assert.Equal(t, "d", r.Default.Description)
		require.Len(t, r.Codes, 1)
		assert.Equal(t, "nf", r.Codes["404"].Description)
	})
}

func TestCallbackJSON(t *testing.T) {
	t.Run("reference", func(t *testing.T) {
		data, err := json.Marshal(&Callback{Ref: CallbackRef("onEvent")})
		require.NoError(t, err)
		assert.JSONEq(t, `{"$ref":"#/components/callbacks/onEvent"}`, string(data))
	})

	t.Run("expressions round trip", func(t *testing.T) {
		cb := &Callback{Expressions: map[string]*PathItem{
			"{$request.body#/url}": {Post: &Operation{
				Responses: &Responses{Codes: map[string]*Response{"204": {Description: "ok"}}},
			}},
		}}
		data, err := json.Marshal(cb)
		require.NoError(t, err)

		var got Callback
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Empty(t, got.Ref)
		require.Contains(t, got.Expressions, "{$request.body#/url}")
		assert.Equal(t, "ok", got.Expressions["{$request.body#/url}"].Post.Responses.Codes["204"].Description)
	})

	t.Run("empty", func(t *testing.T) {
		data, err := json.Marshal(&Callback{})
		require.NoError(t, err)
		assert.Equal(t, "{}", string(data))
	})
}

func TestSchemaAdditionalPropertiesDecoding(t *testing.T) {
	var s Schema
	require.NoError(t, json.Unmarshal([]byte(`{"type":"object","additionalProperties":{"type":"string"}}`), &s))
	ap, ok := s.AdditionalProperties.(*Schema)
	require.True(t, ok, "additionalProperties object should decode as *Schema")
	assert.Equal(t, "string", ap.Type)

	var b Schema
	require.NoError(t, json.Unmarshal([]byte(`{"additionalProperties":false}`), &b))
	assert.Equal(t, false, b.AdditionalProperties)
}

func TestSecurityRequirementEmptyScopes(t *testing.T) {
	op := &Operation{
		Responses: &Responses{Default: &Response{Description: "Default response"}},
		Security:  []SecurityRequirement{{"bearer": []string{}}, {}},
	}
	data, err := json.Marshal(op)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"responses": {"default": {"description": "Default response"}},
		"security": [{"bearer": []}, {}]
	}`, string(data))
}

func TestDocumentYAMLInlinesExtensions(t *testing.T) {
	doc := &Document{
		OpenAPI: DefaultVersion,
		Info:    &Info{Title: "API", Version: "1"},
		Paths:   Paths{},
		Extra:   map[string]any{"x-generated-by": "oasgen"},
	}
	data, err := yaml.Marshal(doc)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, "oasgen", got["x-generated-by"])
	assert.Equal(t, "3.1.0", got["openapi"])
}

func TestYAMLDecodesResponsesAndCallbacks(t *testing.T) {
	src := `
get:
  responses:
    "200":
      $ref: '#/components/responses/Ok'
    default:
      description: Default response
  callbacks:
    onData:
      $ref: '#/components/callbacks/onData'
`
	var item PathItem
	require.NoError(t, yaml.Unmarshal([]byte(src), &item))
	require.NotNil(t, item.Get)
	assert.Equal(t, "#/components/responses/Ok", item.Get.Responses.Codes["200"].Ref)
	assert.Equal(t, "Default response", item.Get.Responses.Default.Description)
	assert.Equal(t, "#/components/callbacks/onData", item.Get.Callbacks["onData"].Ref)
}
