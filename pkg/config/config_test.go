package config_test

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/pkg/config"
)

func newViper(values map[string]any) *viper.Viper {
	v := viper.New()
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg := config.FromViper(newViper(map[string]any{
		"SECRET_KEY":  "s3cr3t",
		"MONGODB_URL": "mongodb://localhost:27017",
	}))

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "tienda", cfg.Mongo.Database)
	assert.Equal(t, 5*time.Second, cfg.Mongo.Timeout)
	assert.Equal(t, "tienda-api", cfg.JWT.Issuer)
	assert.Equal(t, "0.0.0.0:8000", cfg.HTTP.Addr())
	assert.Positive(t, cfg.Hashing.Concurrency)
}

func TestFromViper_Sobrescribe(t *testing.T) {
	cfg := config.FromViper(newViper(map[string]any{
		"SECRET_KEY":       "s3cr3t",
		"MONGODB_URL":      "mongodb://db:27017",
		"MONGODB_DATABASE": "otra",
		"STORE_TIMEOUT":    "750ms",
		"HASH_CONCURRENCY": "3",
		"HTTP_PORT":        "9090",
	}))

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "otra", cfg.Mongo.Database)
	assert.Equal(t, 750*time.Millisecond, cfg.Mongo.Timeout)
	assert.Equal(t, 3, cfg.Hashing.Concurrency)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestFromViper_TimeoutEnSegundos(t *testing.T) {
	cfg := config.FromViper(newViper(map[string]any{"STORE_TIMEOUT": "2"}))
	assert.Equal(t, 2*time.Second, cfg.Mongo.Timeout)
}

func TestValidate_FaltanObligatorios(t *testing.T) {
	cases := map[string]map[string]any{
		"sin secret":   {"MONGODB_URL": "mongodb://localhost"},
		"sin mongo":    {"SECRET_KEY": "s3cr3t"},
		"sin ninguno":  {},
		"secret vacío": {"SECRET_KEY": "   ", "MONGODB_URL": "mongodb://localhost"},
	}
	for name, values := range cases {
		t.Run(name, func(t *testing.T) {
			err := config.FromViper(newViper(values)).Validate()
			assert.ErrorIs(t, err, config.ErrConfig)
		})
	}
}

func TestValidate_ConcurrenciaInvalida(t *testing.T) {
	cfg := config.FromViper(newViper(map[string]any{
		"SECRET_KEY":       "s3cr3t",
		"MONGODB_URL":      "mongodb://localhost",
		"HASH_CONCURRENCY": "0",
	}))
	assert.ErrorIs(t, cfg.Validate(), config.ErrConfig)
}
