package auth

import (
	"github.com/labstack/echo/v4"

	"researchops/internal/model"
)

// Context keys set by the guard middleware.
const (
	// ClaimsContextKey holds the validated *Claims.
	ClaimsContextKey = "token_claims"
	// UserContextKey holds the resolved *model.User.
	UserContextKey = "current_user"
)

// CurrentUser returns the authenticated user set by the guard middleware, or
// nil when the request is unauthenticated.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(UserContextKey).(*model.User)
	return user
}

// MustCurrentUser returns the authenticated user. Only call from handlers
// behind the auth guard, where the user is guaranteed present.
func MustCurrentUser(c echo.Context) *model.User {
	return c.Get(UserContextKey).(*model.User)
}
