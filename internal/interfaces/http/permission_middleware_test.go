package http_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Tienda-api/internal/interfaces/http"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

// stubChecker implementa permissionChecker con respuestas fijas.
type stubChecker struct {
	ensureErr    error
	authorizeErr error
	gotResource  string
	gotAction    entity.Action
}

func (s *stubChecker) EnsureUser(_ context.Context, userID string) (*entity.User, error) {
	if s.ensureErr != nil {
		return nil, s.ensureErr
	}
	return &entity.User{ID: userID}, nil
}

func (s *stubChecker) Authorize(_ context.Context, _, resource string, action entity.Action) error {
	s.gotResource = resource
	s.gotAction = action
	return s.authorizeErr
}

func buildPermissionApp(t *testing.T, checker *stubChecker) (*fiber.App, string, *bool) {
	t.Helper()
	tokens := newTokens(t, &fakeClock{t: time.Now()})
	tok, err := tokens.Issue(testUserID, testUsername)
	require.NoError(t, err)

	reached := new(bool)
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(tokens, logger.Nop()),
		apphttp.RequirePermission(checker, logger.Nop(), entity.ResourceRoles, entity.ActionCreate),
		func(c *fiber.Ctx) error {
			*reached = true
			return c.SendStatus(fiber.StatusOK)
		},
	)
	return app, "Bearer " + tok, reached
}

func TestRequirePermission(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		code    string
		reached bool
	}{
		{"permitido", nil, http.StatusOK, "", true},
		{"sin permiso", domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN", false},
		{"usuario borrado", domain.ErrUserNotFound, http.StatusUnauthorized, "UNAUTHORIZED", false},
		{"timeout del almacén", domain.ErrStoreTimeout, http.StatusInternalServerError, "STORE_TIMEOUT", false},
		{"fallo del almacén", domain.ErrStore, http.StatusInternalServerError, "INTERNAL", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			checker := &stubChecker{authorizeErr: tc.err}
			app, header, reached := buildPermissionApp(t, checker)

			resp := doRequest(t, app, header)
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.reached, *reached)
			if tc.code != "" {
				assert.Equal(t, tc.code, errorCode(t, resp))
			}
			assert.Equal(t, entity.ResourceRoles, checker.gotResource)
			assert.Equal(t, entity.ActionCreate, checker.gotAction)
		})
	}
}

// Sin AuthMiddleware delante no hay identidad: 401, nunca 403.
func TestRequirePermission_SinIdentidad(t *testing.T) {
	app := fiber.New()
	app.Get("/protected",
		apphttp.RequirePermission(&stubChecker{}, logger.Nop(), entity.ResourceRoles, entity.ActionCreate),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)
	resp := doRequest(t, app, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireUser(t *testing.T) {
	tokens := newTokens(t, &fakeClock{t: time.Now()})
	tok, err := tokens.Issue(testUserID, testUsername)
	require.NoError(t, err)

	for _, tc := range []struct {
		name   string
		err    error
		status int
	}{
		{"existe", nil, http.StatusOK},
		{"no existe", domain.ErrUserNotFound, http.StatusUnauthorized},
		{"almacén caído", domain.ErrStore, http.StatusInternalServerError},
	} {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/protected",
				apphttp.AuthMiddleware(tokens, logger.Nop()),
				apphttp.RequireUser(&stubChecker{ensureErr: tc.err}, logger.Nop()),
				func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
			)
			resp := doRequest(t, app, "Bearer "+tok)
			defer resp.Body.Close()
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}
