// Package validate envuelve go-playground/validator con mensajes en español
// y nombres de campo tomados del tag json.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return val
}

var messages = map[string]string{
	"required":    "el campo '%s' es obligatorio",
	"notblank":    "el campo '%s' no puede estar en blanco",
	"email":       "el campo '%s' debe ser un email válido",
	"min":         "el campo '%s' debe tener al menos %s caracteres",
	"max":         "el campo '%s' no puede superar %s caracteres",
	"gte":         "el campo '%s' debe ser mayor o igual a %s",
	"lte":         "el campo '%s' debe ser menor o igual a %s",
	"len":         "el campo '%s' debe tener longitud %s",
	"hexadecimal": "el campo '%s' debe ser hexadecimal",
}

// Errors campo (nombre json) -> mensaje.
type Errors map[string]string

func (e Errors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, e[k])
	}
	return strings.Join(parts, "; ")
}

// Struct valida s según sus tags `validate`. Devuelve Errors o nil.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(Errors, len(verrs))
	for _, fe := range verrs {
		out[fieldPath(fe)] = message(fe)
	}
	return out
}

// fieldPath quita el nombre del struct raíz: "RegisterRequest.email" -> "email".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	field := fieldPath(fe)
	msg, ok := messages[fe.Tag()]
	if !ok {
		return fmt.Sprintf("el campo '%s' no es válido (%s)", field, fe.Tag())
	}
	if strings.Count(msg, "%s") == 2 {
		return fmt.Sprintf(msg, field, fe.Param())
	}
	return fmt.Sprintf(msg, field)
}
