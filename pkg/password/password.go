// Package password implementa el hash de contraseñas con Argon2id y la verificación
// de hashes en formato PHC ($argon2id$v=19$m=...,t=...,p=...$salt$hash).
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/unicode/norm"
)

var (
	// ErrHashing indica un fallo al generar el hash (entrada no UTF-8, fuente aleatoria, codificación).
	ErrHashing = errors.New("password: no se pudo generar el hash")
	// ErrInvalidHashFormat indica que el hash almacenado no se puede interpretar.
	ErrInvalidHashFormat = errors.New("password: formato de hash inválido")
)

const (
	algArgon2id = "argon2id"
	algArgon2i  = "argon2i"

	// Límites al interpretar parámetros de un hash almacenado: un documento alterado
	// no debe poder pedir gigas de memoria en cada login.
	maxMemoryKiB   = 1 << 20
	maxIterations  = 16
	maxParallelism = 16
	maxKeyLength   = 128
)

// Params parámetros de costo de Argon2.
type Params struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultParams valores por defecto de Argon2id (m=19 MiB, t=2, p=1).
var DefaultParams = Params{
	Memory:      19 * 1024,
	Iterations:  2,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

// Hasher genera y verifica hashes con unos parámetros fijos.
type Hasher struct {
	params Params
}

// NewHasher construye un Hasher. Parámetros en cero se completan con DefaultParams.
func NewHasher(p Params) *Hasher {
	if p.Memory == 0 {
		p.Memory = DefaultParams.Memory
	}
	if p.Iterations == 0 {
		p.Iterations = DefaultParams.Iterations
	}
	if p.Parallelism == 0 {
		p.Parallelism = DefaultParams.Parallelism
	}
	if p.SaltLength == 0 {
		p.SaltLength = DefaultParams.SaltLength
	}
	if p.KeyLength == 0 {
		p.KeyLength = DefaultParams.KeyLength
	}
	return &Hasher{params: p}
}

var defaultHasher = NewHasher(DefaultParams)

// Hash genera el hash de plaintext con los parámetros por defecto.
func Hash(plaintext string) (string, error) { return defaultHasher.Hash(plaintext) }

// Verify compara plaintext contra un hash codificado.
func Verify(plaintext, encoded string) (bool, error) { return defaultHasher.Verify(plaintext, encoded) }

// NeedsRehash informa si encoded no usa Argon2id con los parámetros por defecto.
func NeedsRehash(encoded string) bool { return defaultHasher.NeedsRehash(encoded) }

// Hash genera un salt aleatorio nuevo en cada llamada y devuelve el hash en formato PHC.
func (h *Hasher) Hash(plaintext string) (string, error) {
	if !utf8.ValidString(plaintext) {
		return "", fmt.Errorf("%w: entrada no es UTF-8 válido", ErrHashing)
	}
	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHashing, err)
	}
	key := argon2.IDKey([]byte(norm.NFC.String(plaintext)), salt,
		h.params.Iterations, h.params.Memory, h.params.Parallelism, h.params.KeyLength)

	b64 := base64.RawStdEncoding
	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		algArgon2id, argon2.Version,
		h.params.Memory, h.params.Iterations, h.params.Parallelism,
		b64.EncodeToString(salt), b64.EncodeToString(key),
	), nil
}

// Verify recalcula el hash con el salt y parámetros embebidos y compara en tiempo constante.
// Un mismatch devuelve (false, nil); solo un hash ilegible devuelve ErrInvalidHashFormat.
func (h *Hasher) Verify(plaintext, encoded string) (bool, error) {
	if isBcrypt(encoded) {
		return verifyBcrypt(plaintext, encoded)
	}
	d, err := decode(encoded)
	if err != nil {
		return false, err
	}
	if !utf8.ValidString(plaintext) {
		return false, nil
	}
	input := []byte(norm.NFC.String(plaintext))

	var key []byte
	switch d.alg {
	case algArgon2id:
		key = argon2.IDKey(input, d.salt, d.params.Iterations, d.params.Memory, d.params.Parallelism, d.params.KeyLength)
	case algArgon2i:
		key = argon2.Key(input, d.salt, d.params.Iterations, d.params.Memory, d.params.Parallelism, d.params.KeyLength)
	}
	return subtle.ConstantTimeCompare(key, d.key) == 1, nil
}

// NeedsRehash informa si encoded fue generado con otro algoritmo o parámetros.
func (h *Hasher) NeedsRehash(encoded string) bool {
	d, err := decode(encoded)
	if err != nil {
		return true
	}
	return d.alg != algArgon2id ||
		d.params.Memory != h.params.Memory ||
		d.params.Iterations != h.params.Iterations ||
		d.params.Parallelism != h.params.Parallelism ||
		d.params.KeyLength != h.params.KeyLength
}

type decoded struct {
	alg    string
	params Params
	salt   []byte
	key    []byte
}

func decode(encoded string) (*decoded, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, fmt.Errorf("%w: se esperaban 5 secciones", ErrInvalidHashFormat)
	}
	d := &decoded{alg: parts[1]}
	if d.alg != algArgon2id && d.alg != algArgon2i {
		return nil, fmt.Errorf("%w: algoritmo %q no soportado", ErrInvalidHashFormat, d.alg)
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, fmt.Errorf("%w: versión: %v", ErrInvalidHashFormat, err)
	}
	if version != argon2.Version {
		return nil, fmt.Errorf("%w: versión %d no soportada", ErrInvalidHashFormat, version)
	}

	var memory, iterations uint32
	var parallelism uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism); err != nil {
		return nil, fmt.Errorf("%w: parámetros: %v", ErrInvalidHashFormat, err)
	}
	if memory == 0 || memory > maxMemoryKiB || iterations == 0 || iterations > maxIterations ||
		parallelism == 0 || parallelism > maxParallelism || memory < 8*uint32(parallelism) {
		return nil, fmt.Errorf("%w: parámetros fuera de rango", ErrInvalidHashFormat)
	}

	b64 := base64.RawStdEncoding
	salt, err := b64.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return nil, fmt.Errorf("%w: salt", ErrInvalidHashFormat)
	}
	key, err := b64.DecodeString(parts[5])
	if err != nil || len(key) == 0 || len(key) > maxKeyLength {
		return nil, fmt.Errorf("%w: hash", ErrInvalidHashFormat)
	}

	d.params = Params{
		Memory:      memory,
		Iterations:  iterations,
		Parallelism: parallelism,
		SaltLength:  uint32(len(salt)),
		KeyLength:   uint32(len(key)),
	}
	d.salt = salt
	d.key = key
	return d, nil
}

// Hashes bcrypt heredados de la versión anterior del esquema de usuarios.
func isBcrypt(encoded string) bool {
	return strings.HasPrefix(encoded, "$2a$") ||
		strings.HasPrefix(encoded, "$2b$") ||
		strings.HasPrefix(encoded, "$2y$")
}

func verifyBcrypt(plaintext, encoded string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: bcrypt: %v", ErrInvalidHashFormat, err)
	}
}
