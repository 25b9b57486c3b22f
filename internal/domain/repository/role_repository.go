package repository

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// RoleRepository define el puerto de persistencia para Role.
type RoleRepository interface {
	// Create asigna ID y fecha. Nombre duplicado -> domain.ErrRoleAlreadyExists.
	Create(ctx context.Context, role *entity.Role) error
	GetByID(ctx context.Context, id string) (*entity.Role, error)
	GetByName(ctx context.Context, name string) (*entity.Role, error)
	// GetByIDs devuelve los roles existentes entre ids; los ids inexistentes se ignoran.
	GetByIDs(ctx context.Context, ids []string) ([]*entity.Role, error)
}
