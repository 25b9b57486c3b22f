package repository

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Las búsquedas devuelven (nil, nil) cuando el documento no existe.
type UserRepository interface {
	// Create asigna ID y fechas. Email duplicado -> domain.ErrEmailAlreadyExists.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// AddRole agrega roleID a la lista de roles sin duplicarlo. Usuario inexistente -> domain.ErrUserNotFound.
	AddRole(ctx context.Context, userID, roleID string) error
	// UpdatePasswordHash reemplaza el hash (rehash transparente en login).
	UpdatePasswordHash(ctx context.Context, userID, hash string) error
}
