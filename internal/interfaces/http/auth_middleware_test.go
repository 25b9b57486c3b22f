package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/Tienda-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Tienda-api/pkg/jwt"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "65f1c0ffee0000000000abcd"
	testUsername  = "ana"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

// newTokens servicio de tokens con reloj controlable.
func newTokens(t *testing.T, clock *fakeClock) *pkgjwt.Service {
	t.Helper()
	svc, err := pkgjwt.NewService([]byte(testJWTSecret), pkgjwt.WithClock(clock.Now))
	require.NoError(t, err)
	return svc
}

// buildIdentityApp aplicación mínima con AuthMiddleware y un handler que devuelve la identidad.
func buildIdentityApp(tokens *pkgjwt.Service) (*fiber.App, *bool) {
	reached := new(bool)
	app := fiber.New()
	app.Get("/protected", apphttp.AuthMiddleware(tokens, logger.Nop()), func(c *fiber.Ctx) error {
		*reached = true
		id, ok := apphttp.IdentityFrom(c)
		return c.JSON(fiber.Map{
			"ok":       ok,
			"user_id":  id.UserID,
			"username": id.Username,
			"legacy":   apphttp.GetUserID(c),
		})
	})
	return app, reached
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body), "cuerpo: %s", raw)
	code, _ := body["code"].(string)
	return code
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_TokenValido_CargaIdentidad(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	tokens := newTokens(t, clock)
	app, reached := buildIdentityApp(tokens)

	tok, err := tokens.Issue(testUserID, testUsername)
	require.NoError(t, err)
	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, *reached)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testUsername, body["username"])
	assert.Equal(t, testUserID, body["legacy"])
}

func TestAuthMiddleware_Rechazos(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	tokens := newTokens(t, clock)
	valid, err := tokens.Issue(testUserID, testUsername)
	require.NoError(t, err)

	otherSvc, err := pkgjwt.NewService([]byte("otro-secret"))
	require.NoError(t, err)
	foreign, err := otherSvc.Issue(testUserID, testUsername)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		code   string
	}{
		{"sin header", "", "MISSING_TOKEN"},
		{"esquema Basic", "Basic dXNlcjpwYXNz", "INVALID_TOKEN"},
		{"bearer en minúsculas", "bearer " + valid, "INVALID_TOKEN"},
		{"sin espacio", "Bearer" + valid, "INVALID_TOKEN"},
		{"token vacío", "Bearer ", "INVALID_TOKEN"},
		{"malformado", "Bearer token.invalido.aqui", "INVALID_TOKEN"},
		{"firma ajena", "Bearer " + foreign, "INVALID_TOKEN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app, reached := buildIdentityApp(tokens)
			resp := doRequest(t, app, tc.header)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, tc.code, errorCode(t, resp))
			assert.False(t, *reached, "el handler no debe ejecutarse")
		})
	}
}

func TestAuthMiddleware_TokenExpirado_CodigoPropio(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	tokens := newTokens(t, clock)
	tok, err := tokens.Issue(testUserID, testUsername)
	require.NoError(t, err)

	clock.t = clock.t.Add(pkgjwt.TokenTTL + time.Second)
	app, reached := buildIdentityApp(tokens)
	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("WWW-Authenticate"), "invalid_token")
	assert.Equal(t, "TOKEN_EXPIRED", errorCode(t, resp))
	assert.False(t, *reached)
}

func TestAuthMiddleware_CuentaDecisiones(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	tokens := newTokens(t, clock)
	metrics := apphttp.NewMetrics()

	app := fiber.New()
	app.Get("/protected", apphttp.AuthMiddleware(tokens, logger.Nop(), apphttp.WithMetrics(metrics)), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	resp := doRequest(t, app, "")
	resp.Body.Close()

	families, err := metrics.Registry().Gather()
	require.NoError(t, err)
	found := false
	for _, mf := range families {
		if mf.GetName() != "tienda_auth_decisions_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["stage"] == "identity" && labels["outcome"] == "missing" {
				found = true
				assert.Equal(t, float64(1), m.GetCounter().GetValue())
			}
		}
	}
	assert.True(t, found, "debe contarse el rechazo por header ausente")
}
