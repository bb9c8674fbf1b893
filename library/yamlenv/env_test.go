package yamlenv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type testConfig struct {
	Conn *Env[string] `yaml:"conn"`
	Port *Env[int]    `yaml:"port"`
}

func TestUnmarshal_PlainValues(t *testing.T) {
	var cfg testConfig
	require.NoError(t, yaml.Unmarshal([]byte("conn: postgres://localhost\nport: 8080\n"), &cfg))

	assert.Equal(t, "postgres://localhost", cfg.Conn.Value)
	assert.Equal(t, 8080, cfg.Port.Value)
}

func TestUnmarshal_EnvOverride(t *testing.T) {
	t.Setenv("TEST_PG_CONN", "postgres://prod-host")
	t.Setenv("TEST_API_PORT", "9090")

	var cfg testConfig
	require.NoError(t, yaml.Unmarshal([]byte("conn: ${TEST_PG_CONN}\nport: ${TEST_API_PORT:8080}\n"), &cfg))

	assert.Equal(t, "postgres://prod-host", cfg.Conn.Value)
	assert.Equal(t, 9090, cfg.Port.Value)
}

func TestUnmarshal_DefaultWhenEnvUnset(t *testing.T) {
	var cfg testConfig
	require.NoError(t, yaml.Unmarshal([]byte("conn: ${UNSET_VAR_X1:fallback}\nport: ${UNSET_VAR_X2:8080}\n"), &cfg))

	assert.Equal(t, "fallback", cfg.Conn.Value)
	assert.Equal(t, 8080, cfg.Port.Value)
}

func TestUnmarshal_BadInt(t *testing.T) {
	var cfg testConfig
	err := yaml.Unmarshal([]byte("port: not-a-number\n"), &cfg)
	assert.Error(t, err)
}
