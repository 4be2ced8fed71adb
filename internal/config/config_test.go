package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jchamizo/productos/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoDB.URI)
	assert.Equal(t, "productos", cfg.MongoDB.DBName)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "9999")
	t.Setenv("MONGODB_URI", "mongodb://db:27017")
	t.Setenv("MONGODB_DB_NAME", "inventory")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, "mongodb://db:27017", cfg.MongoDB.URI)
	assert.Equal(t, "inventory", cfg.MongoDB.DBName)
}

func TestValidateRejectsMissingFields(t *testing.T) {
	cfg := &config.Config{}
	assert.Error(t, cfg.Validate())

	cfg.Server.Port = "8080"
	assert.Error(t, cfg.Validate())

	cfg.MongoDB.URI = "mongodb://localhost:27017"
	assert.Error(t, cfg.Validate())

	cfg.MongoDB.DBName = "productos"
	assert.NoError(t, cfg.Validate())
}
