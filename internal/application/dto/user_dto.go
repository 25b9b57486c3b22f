package dto

// RegisterRequest entrada para registro. La password llega en texto y se hashea en el use case.
type RegisterRequest struct {
	Username    string `json:"username" validate:"required,notblank,max=100"`
	FullName    string `json:"full_name" validate:"required,notblank,max=200"`
	Email       string `json:"email" validate:"required,email,max=254"`
	Password    string `json:"password" validate:"required,min=8,max=256"`
	PhoneNumber string `json:"phone_number" validate:"required,notblank,max=32"`
}

// RegisterResponse salida del registro.
type RegisterResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=256"`
}

// LoginResponse token de acceso emitido.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"` // segundos
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	FullName    string   `json:"full_name"`
	Email       string   `json:"email"`
	PhoneNumber string   `json:"phone_number"`
	Roles       []string `json:"roles"`
}
