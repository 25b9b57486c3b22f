package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrValidation   = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrStore        = errors.New("error del almacén de datos")

	// Misma respuesta para email desconocido y password incorrecta.
	ErrInvalidCredentials = fmt.Errorf("%w: credenciales inválidas", ErrUnauthorized)
	ErrEmailAlreadyExists = fmt.Errorf("%w: el email ya está registrado", ErrConflict)
	ErrRoleAlreadyExists  = fmt.Errorf("%w: el rol ya existe", ErrConflict)
	ErrUserNotFound       = fmt.Errorf("%w: usuario no encontrado", ErrNotFound)
	ErrRoleNotFound       = fmt.Errorf("%w: rol no encontrado", ErrNotFound)
	ErrStoreTimeout       = fmt.Errorf("%w: tiempo de espera agotado", ErrStore)
)

// ValidationError detalla qué campo no pasó la validación. errors.Is(err, ErrValidation) es true.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("entrada inválida: %s", e.Reason)
	}
	return fmt.Sprintf("entrada inválida: %s %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError atajo para los use cases.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
