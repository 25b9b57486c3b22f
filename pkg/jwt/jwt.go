package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenTTL vigencia fija de un token: exp = iat + 1h.
const TokenTTL = time.Hour

var (
	// ErrMissingSecret la clave de firma no está configurada. Es un error de arranque, no de request.
	ErrMissingSecret = errors.New("jwt: secret vacío")
	// ErrTokenExpired el token fue válido pero ya venció (el cliente debe volver a iniciar sesión).
	ErrTokenExpired = errors.New("jwt: token expirado")
	// ErrTokenMalformed el token no se puede interpretar o le faltan claims obligatorios.
	ErrTokenMalformed = errors.New("jwt: token malformado")
	// ErrSignatureInvalid la firma no corresponde o el algoritmo no es el esperado.
	ErrSignatureInvalid = errors.New("jwt: firma inválida")
)

// Claims incluye los claims estándar (sub = id del usuario, exp, iat, iss, jti) más el username.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// UserID devuelve el subject del token.
func (c *Claims) UserID() string {
	return c.Subject
}

// Service emite y valida tokens firmados con HS256. Es inmutable después de construido
// y seguro para uso concurrente.
type Service struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// Option configura el Service.
type Option func(*Service)

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIssuer fija el claim iss que se emite y se exige al validar.
func WithIssuer(issuer string) Option {
	return func(s *Service) { s.issuer = issuer }
}

// NewService construye el servicio con la clave cargada al arranque.
func NewService(secret []byte, opts ...Option) (*Service, error) {
	if len(secret) == 0 {
		return nil, ErrMissingSecret
	}
	s := &Service{
		secret: append([]byte(nil), secret...),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Issue genera un token firmado para el usuario con vencimiento now + TokenTTL.
func (s *Service) Issue(userID, username string) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("jwt: userID vacío")
	}
	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			ID:        uuid.NewString(),
		},
		Username: username,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate verifica firma, algoritmo y vencimiento. Devuelve ErrTokenExpired,
// ErrTokenMalformed o ErrSignatureInvalid según el motivo del rechazo.
func (s *Service) Validate(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, classify(err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("%w: claims inválidos", ErrTokenMalformed)
	}
	return claims, nil
}

// classify traduce los errores de golang-jwt a los tres motivos que distingue la API.
// Se evalúa la firma antes que el vencimiento: un token expirado con firma ajena es inválido.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", ErrSignatureInvalid, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrTokenExpired, err)
	default:
		return fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
}
