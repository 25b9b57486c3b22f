// Package authz resuelve si un usuario autenticado puede ejecutar una acción sobre un recurso.
package authz

import (
	"context"
	"fmt"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// PermissionService consulta usuarios y roles en cada request; no cachea nada.
type PermissionService struct {
	users repository.UserRepository
	roles repository.RoleRepository
}

// NewPermissionService construye el servicio.
func NewPermissionService(users repository.UserRepository, roles repository.RoleRepository) *PermissionService {
	return &PermissionService{users: users, roles: roles}
}

// EnsureUser carga el usuario. Inexistente -> domain.ErrUserNotFound.
func (s *PermissionService) EnsureUser(ctx context.Context, userID string) (*entity.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("cargar usuario: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// Authorize devuelve nil si algún rol del usuario concede action sobre resource.
// Usuario inexistente -> domain.ErrUserNotFound; sin permiso -> domain.ErrForbidden.
func (s *PermissionService) Authorize(ctx context.Context, userID, resource string, action entity.Action) error {
	user, err := s.EnsureUser(ctx, userID)
	if err != nil {
		return err
	}
	if len(user.Roles) == 0 {
		return fmt.Errorf("%w: el usuario no tiene roles", domain.ErrForbidden)
	}
	roles, err := s.roles.GetByIDs(ctx, user.Roles)
	if err != nil {
		return fmt.Errorf("cargar roles: %w", err)
	}
	for _, role := range roles {
		if role.Grants(resource, action) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s sobre %s", domain.ErrForbidden, action, resource)
}
