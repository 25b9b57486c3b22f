package jwt_test

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/Tienda-api/pkg/jwt"
)

const (
	testSecret   = "test-secret-key-for-unit-tests"
	testUserID   = "65f1c0ffee0000000000abcd"
	testUsername = "ana"
	testIssuer   = "tienda-api-test"
)

// fakeClock reloj controlable para probar el vencimiento sin dormir.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newService(t *testing.T, clock *fakeClock, secret string) *pkgjwt.Service {
	t.Helper()
	svc, err := pkgjwt.NewService([]byte(secret), pkgjwt.WithClock(clock.Now), pkgjwt.WithIssuer(testIssuer))
	require.NoError(t, err)
	return svc
}

func TestNewService_SinSecret_RetornaErrMissingSecret(t *testing.T) {
	svc, err := pkgjwt.NewService(nil)
	assert.Nil(t, svc)
	assert.ErrorIs(t, err, pkgjwt.ErrMissingSecret)
}

func TestIssueYValidate_Inmediato(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	svc := newService(t, clock, testSecret)

	tok, err := svc.Issue(testUserID, testUsername)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := svc.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, claims.UserID())
	assert.Equal(t, testUsername, claims.Username)
	assert.Equal(t, testIssuer, claims.Issuer)
	assert.NotEmpty(t, claims.ID, "cada token lleva un jti")
	assert.True(t, clock.Now().Add(pkgjwt.TokenTTL).Equal(claims.ExpiresAt.Time),
		"exp debe ser exactamente iat + 1h")
}

func TestValidate_VenceAlCumplirTTL(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	svc := newService(t, clock, testSecret)
	tok, err := svc.Issue(testUserID, testUsername)
	require.NoError(t, err)

	clock.Advance(59 * time.Minute)
	_, err = svc.Validate(tok)
	require.NoError(t, err, "todavía dentro de la vigencia")

	clock.Advance(time.Minute) // now == exp
	_, err = svc.Validate(tok)
	assert.ErrorIs(t, err, pkgjwt.ErrTokenExpired)
	assert.NotErrorIs(t, err, pkgjwt.ErrSignatureInvalid)
}

func TestValidate_SecretDistinto_RetornaErrSignatureInvalid(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	tok, err := newService(t, clock, testSecret).Issue(testUserID, testUsername)
	require.NoError(t, err)

	_, err = newService(t, clock, "otro-secret-completamente-distinto").Validate(tok)
	assert.ErrorIs(t, err, pkgjwt.ErrSignatureInvalid)
}

// Un token vencido y firmado con otra clave es inválido, no "expirado".
func TestValidate_ExpiradoYFirmaAjena_PrevaleceFirma(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	tok, err := newService(t, clock, "clave-ajena").Issue(testUserID, testUsername)
	require.NoError(t, err)

	clock.Advance(2 * time.Hour)
	_, err = newService(t, clock, testSecret).Validate(tok)
	assert.ErrorIs(t, err, pkgjwt.ErrSignatureInvalid)
}

func TestValidate_Malformado(t *testing.T) {
	svc := newService(t, &fakeClock{t: time.Now()}, testSecret)
	for _, tok := range []string{"", "not.a.jwt", "abc", "a.b.c.d"} {
		_, err := svc.Validate(tok)
		assert.ErrorIs(t, err, pkgjwt.ErrTokenMalformed, "token %q", tok)
	}
}

func TestValidate_AlgoritmoNone_Rechazado(t *testing.T) {
	claims := gojwt.RegisteredClaims{
		Subject:   testUserID,
		Issuer:    testIssuer,
		ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, claims).SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newService(t, &fakeClock{t: time.Now()}, testSecret).Validate(tok)
	assert.ErrorIs(t, err, pkgjwt.ErrSignatureInvalid)
}

func TestValidate_SinExp_Malformado(t *testing.T) {
	claims := gojwt.RegisteredClaims{Subject: testUserID, Issuer: testIssuer}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = newService(t, &fakeClock{t: time.Now()}, testSecret).Validate(tok)
	assert.ErrorIs(t, err, pkgjwt.ErrTokenMalformed)
}

func TestValidate_SinSubject_Malformado(t *testing.T) {
	claims := gojwt.RegisteredClaims{
		Issuer:    testIssuer,
		ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = newService(t, &fakeClock{t: time.Now()}, testSecret).Validate(tok)
	assert.ErrorIs(t, err, pkgjwt.ErrTokenMalformed)
}

func TestValidate_IssuerDistinto_Malformado(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	other, err := pkgjwt.NewService([]byte(testSecret), pkgjwt.WithClock(clock.Now), pkgjwt.WithIssuer("otro-servicio"))
	require.NoError(t, err)
	tok, err := other.Issue(testUserID, testUsername)
	require.NoError(t, err)

	_, err = newService(t, clock, testSecret).Validate(tok)
	assert.ErrorIs(t, err, pkgjwt.ErrTokenMalformed)
}

func TestIssue_SinUserID_RetornaError(t *testing.T) {
	_, err := newService(t, &fakeClock{t: time.Now()}, testSecret).Issue("", testUsername)
	assert.Error(t, err)
}
