package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifyhub/pkg/config"
)

type testConfig struct {
	Host    string   `env:"CFG_TEST_HOST" envDefault:"localhost"`
	Port    int      `env:"CFG_TEST_PORT" envDefault:"8080"`
	Origins []string `env:"CFG_TEST_ORIGINS" envSeparator:","`
}

type requiredConfig struct {
	Secret string `env:"CFG_TEST_SECRET,required"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg testConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
	assert.Empty(t, cfg.Origins)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("CFG_TEST_HOST", "redis.internal")
	t.Setenv("CFG_TEST_PORT", "6380")
	t.Setenv("CFG_TEST_ORIGINS", "https://a.example,https://b.example")

	var cfg testConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "redis.internal", cfg.Host)
	assert.Equal(t, 6380, cfg.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Origins)
}

func TestLoad_MissingRequired(t *testing.T) {
	var cfg requiredConfig
	err := config.Load(&cfg)

	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoad_NilPointer(t *testing.T) {
	err := config.Load[testConfig](nil)
	assert.ErrorIs(t, err, config.ErrNilPointer)
}

func TestMustLoad_PanicsOnFailure(t *testing.T) {
	assert.Panics(t, func() {
		var cfg requiredConfig
		config.MustLoad(&cfg)
	})
}
