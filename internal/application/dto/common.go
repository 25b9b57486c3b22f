package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"` // detalle por campo en errores de validación
}

// HealthResponse estado del servicio.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
