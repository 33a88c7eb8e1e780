package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// AccessTokenExpiry is the duration for which access tokens are valid.
const AccessTokenExpiry = 15 * time.Minute

// Cookie names for cookie-delivered tokens. AccessTokenCookie is HttpOnly;
// CSRFTokenCookie is readable by scripts so clients can echo it back in the
// X-CSRF-TOKEN header.
const (
	AccessTokenCookie = "access_token_cookie"
	CSRFTokenCookie   = "csrf_access_token"
	CSRFHeader        = "X-CSRF-TOKEN"
)

var (
	// ErrTokenInvalid is returned when signature or claims are malformed.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrTokenExpired is returned when the token is past its expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrCSRFMismatch is returned when a cookie-delivered token lacks a
	// matching CSRF header.
	ErrCSRFMismatch = errors.New("csrf token mismatch")
)

// Claims represents JWT claims. The subject is the username; CSRF binds
// cookie-delivered tokens to the double-submit header.
type Claims struct {
	CSRF string `json:"csrf"`
	jwt.RegisteredClaims
}

// JWTService handles token generation and validation. Tokens are stateless:
// nothing is persisted server-side and logout cannot invalidate a token that
// a client kept a copy of.
type JWTService struct {
	secret []byte
}

// NewJWTService creates a new JWT service with the given signing secret.
func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
	}
}

// GenerateAccessToken generates a signed token for the username. The returned
// csrf value must be delivered alongside cookie-based tokens.
func (s *JWTService) GenerateAccessToken(username string) (token string, csrf string, err error) {
	csrf = uuid.New().String()
	claims := &Claims{
		CSRF: csrf,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(AccessTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err = tokenObj.SignedString(s.secret)
	return token, csrf, err
}

// ValidateToken validates a token string and returns the claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// SetTokenCookies attaches the access token and its CSRF pair to the response.
func SetTokenCookies(w http.ResponseWriter, token, csrf string) {
	expires := time.Now().Add(AccessTokenExpiry)
	http.SetCookie(w, &http.Cookie{
		Name:     AccessTokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     CSRFTokenCookie,
		Value:    csrf,
		Path:     "/",
		Expires:  expires,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearTokenCookies removes both auth cookies. This is the only server-side
// effect of logout; previously issued tokens stay valid until expiry.
func ClearTokenCookies(w http.ResponseWriter) {
	for _, name := range []string{AccessTokenCookie, CSRFTokenCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:    name,
			Value:   "",
			Path:    "/",
			MaxAge:  -1,
			Expires: time.Unix(0, 0),
		})
	}
}
