package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, 443, cfg.Port)
	assert.False(t, cfg.VerifySSL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "root", cfg.DefaultADOM)
	assert.Equal(t, 300*time.Second, cfg.TaskTimeout)
	assert.Equal(t, 5*time.Second, cfg.TaskPollInterval)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("FORTIMANAGER_HOST", "fmg.example.com")
	t.Setenv("FORTIMANAGER_PORT", "10443")
	t.Setenv("FORTIMANAGER_USERNAME", "api-admin")
	t.Setenv("FORTIMANAGER_PASSWORD", "secret")
	t.Setenv("FORTIMANAGER_VERIFY_SSL", "true")
	t.Setenv("FORTIMANAGER_TIMEOUT", "60")
	t.Setenv("FMG_DEFAULT_ADOM", "customer_a")
	t.Setenv("FMG_TASK_TIMEOUT", "600")
	t.Setenv("FMG_TASK_POLL_INTERVAL", "10")

	cfg := NewConfig()
	cfg.LoadFromEnvironment()

	assert.Equal(t, "fmg.example.com", cfg.Host)
	assert.Equal(t, 10443, cfg.Port)
	assert.Equal(t, "api-admin", cfg.Username)
	assert.Equal(t, "secret", cfg.Password)
	assert.True(t, cfg.VerifySSL)
	assert.Equal(t, 60*time.Second, cfg.Timeout)
	assert.Equal(t, "customer_a", cfg.DefaultADOM)
	assert.Equal(t, 600*time.Second, cfg.TaskTimeout)
	assert.Equal(t, 10*time.Second, cfg.TaskPollInterval)
}

func TestLoadFromEnvironmentIgnoresInvalidValues(t *testing.T) {
	t.Setenv("FORTIMANAGER_PORT", "not-a-port")
	t.Setenv("FORTIMANAGER_VERIFY_SSL", "maybe")
	t.Setenv("FORTIMANAGER_TIMEOUT", "soon")

	cfg := NewConfig()
	cfg.LoadFromEnvironment()

	assert.Equal(t, 443, cfg.Port)
	assert.False(t, cfg.VerifySSL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := NewConfig()
		cfg.Host = "fmg.example.com"
		cfg.APIToken = "token"
		return cfg
	}

	require.NoError(t, valid().Validate())

	cfg := valid()
	cfg.Host = ""
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Port = 0
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Port = 70000
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.APIToken = ""
	assert.Error(t, cfg.Validate(), "no credentials at all")

	cfg = valid()
	cfg.APIToken = ""
	cfg.Username = "admin"
	assert.Error(t, cfg.Validate(), "username without password")

	cfg = valid()
	cfg.APIToken = ""
	cfg.Username = "admin"
	cfg.Password = "secret"
	assert.NoError(t, cfg.Validate())

	cfg = valid()
	cfg.Timeout = 0
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.TaskTimeout = -time.Second
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.TaskPollInterval = 0
	assert.Error(t, cfg.Validate())
}
