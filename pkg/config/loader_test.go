package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvsCodeDev/vvsCodeWebDev/pkg/config"
)

type serverTestConfig struct {
	Addr    string `env:"LOADER_TEST_ADDR" envDefault:":9090"`
	Workers int    `env:"LOADER_TEST_WORKERS" envDefault:"4"`
}

type saltTestConfig struct {
	Salt string `env:"LOADER_TEST_SALT" envDefault:"pepper"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg serverTestConfig
	err := config.Load(&cfg)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 4, cfg.Workers)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("LOADER_TEST_SALT", "from-env")

	var cfg saltTestConfig
	err := config.Load(&cfg)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Salt)
}

func TestLoad_CachedPerType(t *testing.T) {
	var first serverTestConfig
	require.NoError(t, config.Load(&first))

	// Changing the environment after the first load must not change the
	// cached value: all packages see one consistent configuration.
	t.Setenv("LOADER_TEST_ADDR", ":1234")

	var second serverTestConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, first.Addr, second.Addr)
}

func TestLoad_NilPointer(t *testing.T) {
	err := config.Load[serverTestConfig](nil)
	assert.ErrorIs(t, err, config.ErrNilPointer)
}

func TestMustLoad_Panics(t *testing.T) {
	t.Setenv("LOADER_TEST_REQUIRED", "")

	type brokenConfig struct {
		Value int `env:"LOADER_TEST_BROKEN_INT" envDefault:"not-an-int"`
	}

	assert.Panics(t, func() {
		var cfg brokenConfig
		config.MustLoad(&cfg)
	})
}
