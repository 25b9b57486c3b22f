package entity

import (
	"slices"
	"time"
)

// User representa una cuenta registrada. Roles guarda ids de Role; solo cambia por asignación de rol.
type User struct {
	ID           string
	Username     string
	FullName     string
	Email        string // normalizado a minúsculas, único
	PasswordHash string // PHC argon2id, nunca plano ni expuesto en respuestas
	PhoneNumber  string
	Roles        []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasRole informa si el usuario tiene asignado el rol con ese id.
func (u *User) HasRole(roleID string) bool {
	return slices.Contains(u.Roles, roleID)
}
