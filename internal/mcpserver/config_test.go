package mcpserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// clearOASGENEnv clears all OASGEN_MCP_* env vars to isolate tests from the ambient environment.
func clearOASGENEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OASGEN_MCP_CONFIG", "OASGEN_MCP_CACHE_ENABLED", "OASGEN_MCP_CACHE_TTL",
		"OASGEN_MCP_LIST_LIMIT", "OASGEN_MCP_MAX_LIMIT", "OASGEN_MCP_MAX_INLINE_SIZE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearOASGENEnv(t)

	c := loadConfig()

	assert.Equal(t, "oasgen.yaml", c.ConfigFile)
	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 30*time.Second, c.CacheTTL)
	assert.Equal(t, 100, c.ListLimit)
	assert.Equal(t, 1000, c.MaxLimit)
	assert.Equal(t, 10*1024*1024, c.MaxInlineSize)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearOASGENEnv(t)
	t.Setenv("OASGEN_MCP_CONFIG", "api/oasgen.yaml")
	t.Setenv("OASGEN_MCP_CACHE_ENABLED", "false")
	t.Setenv("OASGEN_MCP_CACHE_TTL", "2m")
	t.Setenv("OASGEN_MCP_LIST_LIMIT", "20")
	t.Setenv("OASGEN_MCP_MAX_INLINE_SIZE", "2048")

	c := loadConfig()

	assert.Equal(t, "api/oasgen.yaml", c.ConfigFile)
	assert.False(t, c.CacheEnabled)
	assert.Equal(t, 2*time.Minute, c.CacheTTL)
	assert.Equal(t, 20, c.ListLimit)
	assert.Equal(t, 2048, c.MaxInlineSize)
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	clearOASGENEnv(t)
	t.Setenv("OASGEN_MCP_CACHE_ENABLED", "maybe")
	t.Setenv("OASGEN_MCP_CACHE_TTL", "-1s")
	t.Setenv("OASGEN_MCP_LIST_LIMIT", "zero")
	t.Setenv("OASGEN_MCP_MAX_LIMIT", "-5")

	c := loadConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 30*time.Second, c.CacheTTL)
	assert.Equal(t, 100, c.ListLimit)
	assert.Equal(t, 1000, c.MaxLimit)
}
