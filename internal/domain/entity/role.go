package entity

import "time"

// RoleAdministrator nombre del rol de arranque. Solo puede existir uno y concede todo.
const RoleAdministrator = "Administrator"

// Action operación sobre una clase de recurso.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Recursos protegidos por permisos.
const (
	ResourceRoles    = "roles"
	ResourceUsers    = "users"
	ResourceProducts = "products"
)

// Permission bits CRUD sobre un modelo (clase de recurso).
type Permission struct {
	ModelName string
	Create    bool
	Read      bool
	Update    bool
	Delete    bool
}

// Allows devuelve el bit correspondiente a la acción. Acciones desconocidas se niegan.
func (p Permission) Allows(a Action) bool {
	switch a {
	case ActionCreate:
		return p.Create
	case ActionRead:
		return p.Read
	case ActionUpdate:
		return p.Update
	case ActionDelete:
		return p.Delete
	default:
		return false
	}
}

// Role conjunto nombrado de permisos.
type Role struct {
	ID          string
	Name        string
	Permissions []Permission
	CreatedAt   time.Time
}

// IsAdministrator informa si es el rol de arranque.
func (r *Role) IsAdministrator() bool {
	return r.Name == RoleAdministrator
}

// Grants decide con la primera entrada cuyo ModelName coincide con el recurso.
// Sin entrada para el recurso no hay permiso.
func (r *Role) Grants(resource string, a Action) bool {
	if r.IsAdministrator() {
		return true
	}
	for _, p := range r.Permissions {
		if p.ModelName == resource {
			return p.Allows(a)
		}
	}
	return false
}

// ValidAction informa si a es una de las cuatro acciones CRUD.
func ValidAction(a Action) bool {
	switch a {
	case ActionCreate, ActionRead, ActionUpdate, ActionDelete:
		return true
	}
	return false
}
