package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasgen/config"
	"github.com/erraggy/oasgen/internal/testutil"
)

func TestValidateListFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		wantErr bool
	}{
		{"valid text", FormatText, false},
		{"valid json", "json", false},
		{"valid yaml", "yaml", false},
		{"valid yml", "yml", false},
		{"invalid format", "xml", true},
		{"empty format", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateListFormat(tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateListFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("explicit path", func(t *testing.T) {
		cfg, err := LoadConfig(testutil.WriteProject(t))
		require.NoError(t, err)
		assert.Equal(t, "Users API", cfg.Info.Title)
	})

	t.Run("working directory file", func(t *testing.T) {
		cfgPath := testutil.WriteProject(t)
		t.Chdir(filepath.Dir(cfgPath))
		cfg, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, []string{"routes.yaml"}, cfg.Routes)
	})

	t.Run("defaults without file", func(t *testing.T) {
		t.Chdir(t.TempDir())
		cfg, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, config.DefaultCollection, cfg.DefaultCollection)
	})
}

func TestWriteOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "out.json")
	require.NoError(t, WriteOutput(path, []byte("{}\n")))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	quiet := NewLogger(&buf, false)
	quiet.Debug("hidden")
	quiet.Warn("shown", "k", "v")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "k=v")

	buf.Reset()
	NewLogger(&buf, true).Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}
