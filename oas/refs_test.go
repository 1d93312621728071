package oas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRefBuilders(t *testing.T) {
	assert.Equal(t, "#/components/schemas/User", SchemaRef("User"))
	assert.Equal(t, "#/components/responses/NotFound", ResponseRef("NotFound"))
	assert.Equal(t, "#/components/requestBodies/CreateUser", RequestBodyRef("CreateUser"))
	assert.Equal(t, "#/components/callbacks/onEvent", CallbackRef("onEvent"))
	assert.Equal(t, "#/components/securitySchemes/bearer", SecuritySchemeRef("bearer"))
}

func TestParseComponentRef(t *testing.T) {
	tests := []struct {
		ref         string
		wantSection string
		wantName    string
		wantOK      bool
	}{
		{"#/components/schemas/User", "schemas", "User", true},
		{"#/components/responses/Not~1Found", "responses", "Not/Found", true},
		{"#/components/schemas/a~0b", "schemas", "a~b", true},
		{"#/components/schemas/", "", "", false},
		{"#/definitions/User", "", "", false},
		{"other.yaml#/components/schemas/User", "", "", false},
		{"", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			section, name, ok := ParseComponentRef(tt.ref)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantSection, section)
			assert.Equal(t, tt.wantName, name)
		})
	}
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in   string
		want Version
		ok   bool
	}{
		{"3.0.3", Version30, true},
		{"3.1.0", Version31, true},
		{"3.1.1-rc1", Version31, true},
		{"3.2.0", Version32, true},
		{"2.0", Unknown, false},
		{"3.1", Unknown, false},
		{"4.0.0", Unknown, false},
		{"3.x.0", Unknown, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseVersion(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.True(t, Version31.SupportsTypeArrays())
	assert.False(t, Version30.SupportsTypeArrays())
	assert.Equal(t, "3.2", Version32.String())
}

func TestPathItemOperations(t *testing.T) {
	item := &PathItem{}
	assert.True(t, item.SetOperation("get", &Operation{OperationID: "list"}))
	assert.True(t, item.SetOperation("DELETE", &Operation{OperationID: "remove"}))
	assert.False(t, item.SetOperation("CONNECT", &Operation{}))

	assert.Equal(t, "list", item.Operation("GET").OperationID)
	assert.Nil(t, item.Operation("post"))

	ops := item.Operations()
	assert.Len(t, ops, 2)
	assert.Contains(t, ops, "get")
	assert.Contains(t, ops, "delete")

	assert.True(t, IsMethod("patch"))
	assert.False(t, IsMethod("connect"))
}

func TestSchemaChildren(t *testing.T) {
	item := &Schema{Type: "string"}
	extra := &Schema{Type: "integer"}
	s := &Schema{
		Properties: map[string]*Schema{
			"b": {Type: "boolean"},
			"a": {Type: "number"},
		},
		Items:                item,
		AdditionalProperties: extra,
		AllOf:                []*Schema{{Ref: SchemaRef("Base")}},
	}
	children := s.Children()
	assert.Len(t, children, 5)
	assert.Equal(t, "number", children[0].Type)
	assert.Equal(t, "boolean", children[1].Type)
	assert.Same(t, item, children[2])
	assert.Same(t, extra, children[3])
	assert.Equal(t, "#/components/schemas/Base", children[4].Ref)

	var nilSchema *Schema
	assert.Nil(t, nilSchema.Children())
}

func TestComponentsIsEmpty(t *testing.T) {
	var c *Components
	assert.True(t, c.IsEmpty())
	assert.True(t, (&Components{}).IsEmpty())
	assert.False(t, (&Components{Schemas: map[string]*Schema{"A": {}}}).IsEmpty())
}
