package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/pkg/logger"
)

func TestNewWithWriter_CampoService(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, logger.Config{Level: "info", Service: "tienda-api"})

	log.Info().Str("user_id", "u1").Msg("usuario registrado")

	var ev map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &ev))
	assert.Equal(t, "tienda-api", ev["service"])
	assert.Equal(t, "u1", ev["user_id"])
	assert.Equal(t, "usuario registrado", ev["message"])
}

func TestNewWithWriter_Nivel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, logger.Config{Level: " WARN "})

	log.Info().Msg("descartado")
	assert.Zero(t, buf.Len())

	log.Warn().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
	assert.NotContains(t, buf.String(), `"service"`)
}
