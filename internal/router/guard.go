package router

import (
	"errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"researchops/internal/auth"
	apperrors "researchops/internal/errors"
	"researchops/internal/repository"
)

const (
	missingTokenMessage = "Your auth token or CSRF token are missing"
	expiredTokenMessage = "Your auth token has expired"
)

// Guard returns the middleware chain for authenticated routes: token
// validation first, then resolution of the token subject to a live user.
// Every request is evaluated independently; there is no session state.
func Guard(jwtService *auth.JWTService, userRepo repository.UserRepository) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		tokenRequired(jwtService),
		currentUser(userRepo),
	}
}

// tokenRequired validates the bearer token from the Authorization header or
// the access token cookie. Cookie-delivered tokens must be accompanied by a
// matching X-CSRF-TOKEN header (double submit).
func tokenRequired(jwtService *auth.JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  auth.ClaimsContextKey,
		TokenLookup: "header:Authorization:Bearer ,cookie:" + auth.AccessTokenCookie,
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			claims, err := jwtService.ValidateToken(tokenString)
			if err != nil {
				return nil, err
			}
			if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
				// Token came from the cookie; require the CSRF pair.
				if c.Request().Header.Get(auth.CSRFHeader) != claims.CSRF {
					return nil, auth.ErrCSRFMismatch
				}
			}
			return claims, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if errors.Is(err, auth.ErrTokenExpired) {
				return c.JSON(http.StatusUnauthorized, apperrors.Message(expiredTokenMessage))
			}
			return c.JSON(http.StatusUnauthorized, apperrors.Message(missingTokenMessage))
		},
	})
}

// currentUser resolves the validated token subject to a stored user. A token
// whose subject no longer exists is treated as unauthenticated, not as a
// distinct condition.
func currentUser(userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(auth.ClaimsContextKey).(*auth.Claims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, apperrors.Message(missingTokenMessage))
			}

			user, err := userRepo.FindByIdentity(c.Request().Context(), claims.Subject)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, apperrors.Message(missingTokenMessage))
			}

			c.Set(auth.UserContextKey, user)
			return next(c)
		}
	}
}
