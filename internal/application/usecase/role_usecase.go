package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// RoleUseCase creación de roles, arranque del Administrator y asignación de roles a usuarios.
type RoleUseCase struct {
	roles repository.RoleRepository
	users repository.UserRepository
}

// NewRoleUseCase construye el caso de uso.
func NewRoleUseCase(roles repository.RoleRepository, users repository.UserRepository) *RoleUseCase {
	return &RoleUseCase{roles: roles, users: users}
}

// Create persiste un rol con sus permisos. Nombre repetido -> domain.ErrRoleAlreadyExists.
func (uc *RoleUseCase) Create(ctx context.Context, in dto.CreateRoleRequest) (*dto.RoleResponse, error) {
	name := strings.TrimSpace(in.RoleName)
	if name == "" {
		return nil, domain.NewValidationError("role_name", "es obligatorio")
	}
	perms := make([]entity.Permission, 0, len(in.Models))
	for _, m := range in.Models {
		model := strings.TrimSpace(m.ModelName)
		if model == "" {
			return nil, domain.NewValidationError("models.model_name", "es obligatorio")
		}
		perms = append(perms, entity.Permission{
			ModelName: model,
			Create:    m.Create,
			Read:      m.Read,
			Update:    m.Update,
			Delete:    m.Delete,
		})
	}

	role := &entity.Role{Name: name, Permissions: perms}
	if err := uc.roles.Create(ctx, role); err != nil {
		return nil, err
	}
	return toRoleResponse(role), nil
}

// CreateAdmin crea el rol Administrator si todavía no existe. Si ya existe -> domain.ErrRoleAlreadyExists.
// Dos llamadas concurrentes las resuelve el índice único sobre el nombre.
func (uc *RoleUseCase) CreateAdmin(ctx context.Context) (*dto.RoleResponse, error) {
	existing, err := uc.roles.GetByName(ctx, entity.RoleAdministrator)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrRoleAlreadyExists
	}
	role := &entity.Role{Name: entity.RoleAdministrator, Permissions: []entity.Permission{}}
	if err := uc.roles.Create(ctx, role); err != nil {
		return nil, err
	}
	return toRoleResponse(role), nil
}

// EnsureAdmin devuelve el rol Administrator, creándolo si hace falta.
func (uc *RoleUseCase) EnsureAdmin(ctx context.Context) (*dto.RoleResponse, error) {
	out, err := uc.CreateAdmin(ctx)
	if err == nil {
		return out, nil
	}
	if !errors.Is(err, domain.ErrConflict) {
		return nil, err
	}
	role, err := uc.roles.GetByName(ctx, entity.RoleAdministrator)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrRoleNotFound
	}
	return toRoleResponse(role), nil
}

// Assign agrega el rol al usuario. Repetir la asignación no cambia nada.
func (uc *RoleUseCase) Assign(ctx context.Context, in dto.AssignRoleRequest) error {
	role, err := uc.roles.GetByID(ctx, in.RoleID)
	if err != nil {
		return err
	}
	if role == nil {
		return domain.ErrRoleNotFound
	}
	user, err := uc.users.GetByID(ctx, in.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return uc.users.AddRole(ctx, user.ID, role.ID)
}

func toRoleResponse(r *entity.Role) *dto.RoleResponse {
	models := make([]dto.PermissionDTO, 0, len(r.Permissions))
	for _, p := range r.Permissions {
		models = append(models, dto.PermissionDTO{
			ModelName: p.ModelName,
			Create:    p.Create,
			Read:      p.Read,
			Update:    p.Update,
			Delete:    p.Delete,
		})
	}
	return &dto.RoleResponse{ID: r.ID, RoleName: r.Name, Models: models, CreatedAt: r.CreatedAt}
}
