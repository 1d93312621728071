package cliutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"json": FormatJSON, "YAML": FormatYAML, "yml": FormatYAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("toml")
	assert.Error(t, err)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromPath("out/openapi.YML"))
	assert.Equal(t, FormatJSON, FormatFromPath("openapi.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("openapi"))
	assert.Equal(t, ".yaml", FormatYAML.Extension())
}

func TestEncode(t *testing.T) {
	v := struct {
		Title string `json:"title" yaml:"title"`
		Count int    `json:"count" yaml:"count"`
	}{"API", 2}

	data, err := Encode(v, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"title\": \"API\",\n  \"count\": 2\n}\n", string(data))

	data, err = Encode(v, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "title: API\ncount: 2\n", string(data))

	_, err = Encode(v, Format("xml"))
	assert.Error(t, err)
}
