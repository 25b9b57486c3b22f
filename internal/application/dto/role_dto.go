package dto

import "time"

// PermissionDTO bits CRUD de un modelo, con los nombres de campo de los documentos de rol.
type PermissionDTO struct {
	ModelName string `json:"model_name" validate:"required,max=100"`
	Create    bool   `json:"create"`
	Read      bool   `json:"read"`
	Update    bool   `json:"update"`
	Delete    bool   `json:"delete"`
}

// CreateRoleRequest entrada para crear un rol.
type CreateRoleRequest struct {
	RoleName string          `json:"role_name" validate:"required,max=100"`
	Models   []PermissionDTO `json:"models" validate:"omitempty,max=100,dive"`
}

// AssignRoleRequest asigna un rol existente a un usuario existente.
type AssignRoleRequest struct {
	UserID string `json:"user_id" validate:"required,len=24,hexadecimal"`
	RoleID string `json:"role_id" validate:"required,len=24,hexadecimal"`
}

// RoleResponse salida de un rol.
type RoleResponse struct {
	ID        string          `json:"id"`
	RoleName  string          `json:"role_name"`
	Models    []PermissionDTO `json:"models"`
	CreatedAt time.Time       `json:"created_at"`
}

// MessageResponse respuesta simple de confirmación.
type MessageResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}
