package commands

import (
	"bytes"
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/application/usecase"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/memory"
	"github.com/jhoicas/Tienda-api/pkg/password"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return strings.TrimSpace(out.String()), err
}

func TestGenKey(t *testing.T) {
	out, err := run(t, "", "genkey", "--bytes", "32")
	require.NoError(t, err)
	raw, err := base64.RawURLEncoding.DecodeString(out)
	require.NoError(t, err)
	assert.Len(t, raw, 32)

	other, err := run(t, "", "genkey")
	require.NoError(t, err)
	assert.NotEqual(t, out, other)
}

func TestGenKey_PocosBytes(t *testing.T) {
	_, err := run(t, "", "genkey", "-b", "8")
	assert.Error(t, err)
}

func TestHashPassword(t *testing.T) {
	out, err := run(t, "s3cret-pass\n", "hash-password")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "$argon2id$"))

	ok, err := password.Verify("s3cret-pass", out)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestHashPassword_Vacia(t *testing.T) {
	_, err := run(t, "\n", "hash-password")
	assert.Error(t, err)
}

func TestGrantAdmin_RequiereEmail(t *testing.T) {
	_, err := run(t, "", "grant-admin")
	assert.Error(t, err)
}

func TestGrantAdminFn(t *testing.T) {
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	roles := memory.NewRoleRepository(store)
	roleUC := usecase.NewRoleUseCase(roles, users)
	ctx := context.Background()

	user := &entity.User{Username: "ana", Email: "ana@example.com", PasswordHash: "x"}
	require.NoError(t, users.Create(ctx, user))

	id, err := grantAdmin(ctx, users, roleUC, "  ANA@example.com ")
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)

	// Segunda ejecución: el rol ya existe y la asignación no duplica.
	_, err = grantAdmin(ctx, users, roleUC, "ana@example.com")
	require.NoError(t, err)

	got, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, got.Roles, 1)

	admin, err := roles.GetByName(ctx, entity.RoleAdministrator)
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, admin.ID, got.Roles[0])
}

func TestGrantAdminFn_UsuarioInexistente(t *testing.T) {
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	roleUC := usecase.NewRoleUseCase(memory.NewRoleRepository(store), users)

	_, err := grantAdmin(context.Background(), users, roleUC, "nadie@example.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
