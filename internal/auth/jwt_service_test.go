package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
)

func TestJWTService_RoundTrip(t *testing.T) {
	service := NewJWTService("test-secret")

	token, csrf, err := service.GenerateAccessToken("demo_user")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, csrf)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "demo_user", claims.Subject)
	assert.Equal(t, csrf, claims.CSRF)
}

func TestJWTService_ValidateToken_Expired(t *testing.T) {
	service := NewJWTService("test-secret")

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "demo_user",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	tokenString, err := expired.SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	_, err = service.ValidateToken(tokenString)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestJWTService_ValidateToken_WrongSecret(t *testing.T) {
	other := NewJWTService("other-secret")
	token, _, err := other.GenerateAccessToken("demo_user")
	assert.NoError(t, err)

	service := NewJWTService("test-secret")
	_, err = service.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestJWTService_ValidateToken_Garbage(t *testing.T) {
	service := NewJWTService("test-secret")
	_, err := service.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
