package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/cases"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/pkg/jwt"
	"github.com/jhoicas/Tienda-api/pkg/logger"
	"github.com/jhoicas/Tienda-api/pkg/password"
)

// TokenIssuer emite tokens de acceso.
type TokenIssuer interface {
	Issue(userID, username string) (string, error)
}

// AuthUseCase casos de uso de autenticación: registro, login y perfil propio.
type AuthUseCase struct {
	userRepo repository.UserRepository
	hashes   *HashPool
	tokens   TokenIssuer
	log      *logger.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, hashes *HashPool, tokens TokenIssuer, log *logger.Logger) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{userRepo: userRepo, hashes: hashes, tokens: tokens, log: log}
}

// NormalizeEmail recorta espacios y aplica case folding Unicode.
func NormalizeEmail(email string) string {
	return cases.Fold().String(strings.TrimSpace(email))
}

// RegisterUser crea un usuario con la password hasheada. Email repetido -> domain.ErrEmailAlreadyExists.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.RegisterResponse, error) {
	email := NormalizeEmail(in.Email)
	username := strings.TrimSpace(in.Username)
	fullName := strings.TrimSpace(in.FullName)
	phone := strings.TrimSpace(in.PhoneNumber)
	for _, f := range []struct{ name, value string }{
		{"username", username},
		{"full_name", fullName},
		{"email", email},
		{"phone_number", phone},
	} {
		if f.value == "" {
			return nil, domain.NewValidationError(f.name, "no puede estar en blanco")
		}
	}

	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := uc.hashes.Hash(ctx, in.Password)
	if err != nil {
		if errors.Is(err, password.ErrHashing) {
			return nil, domain.NewValidationError("password", "no es texto UTF-8 válido")
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		Username:     username,
		FullName:     fullName,
		Email:        email,
		PasswordHash: hash,
		PhoneNumber:  phone,
		Roles:        []string{},
	}
	// El índice único cubre la carrera entre el chequeo previo y la inserción.
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Msg("usuario registrado")
	return &dto.RegisterResponse{Message: "usuario registrado", ID: user.ID}, nil
}

// Login verifica email/password y emite un token. Email desconocido y password incorrecta
// devuelven el mismo domain.ErrInvalidCredentials.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, NormalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Igualar el tiempo de respuesta con el de un email existente.
		if _, err := uc.hashes.Verify(ctx, in.Password, uc.dummy()); err != nil && ctx.Err() != nil {
			return nil, err
		}
		uc.log.Debug().Str("reason", "unknown_email").Msg("login rechazado")
		return nil, domain.ErrInvalidCredentials
	}

	ok, err := uc.hashes.Verify(ctx, in.Password, user.PasswordHash)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		uc.log.Error().Err(err).Str("user_id", user.ID).Msg("hash almacenado ilegible")
		return nil, domain.ErrInvalidCredentials
	}
	if !ok {
		uc.log.Debug().Str("reason", "wrong_password").Str("user_id", user.ID).Msg("login rechazado")
		return nil, domain.ErrInvalidCredentials
	}

	if uc.hashes.NeedsRehash(user.PasswordHash) {
		uc.rehash(ctx, user.ID, in.Password)
	}

	token, err := uc.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("emitir token: %w", err)
	}
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(jwt.TokenTTL.Seconds()),
	}, nil
}

// Me devuelve el perfil del usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// rehash migra hashes heredados (bcrypt, argon2i, parámetros viejos). Un fallo no impide el login.
func (uc *AuthUseCase) rehash(ctx context.Context, userID, plaintext string) {
	hash, err := uc.hashes.Hash(ctx, plaintext)
	if err == nil {
		err = uc.userRepo.UpdatePasswordHash(ctx, userID, hash)
	}
	if err != nil {
		uc.log.Warn().Err(err).Str("user_id", userID).Msg("no se pudo actualizar el hash")
		return
	}
	uc.log.Info().Str("user_id", userID).Msg("hash de password actualizado")
}

func (uc *AuthUseCase) dummy() string {
	uc.dummyOnce.Do(func() {
		h, err := uc.hashes.hasher.Hash("tienda-api-dummy-password")
		if err != nil {
			uc.log.Error().Err(err).Msg("no se pudo generar el hash de relleno")
			return
		}
		uc.dummyHash = h
	})
	return uc.dummyHash
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	roles := u.Roles
	if roles == nil {
		roles = []string{}
	}
	return &dto.UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		FullName:    u.FullName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Roles:       roles,
	}
}
