package router

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"researchops/internal/auth"
	"researchops/internal/handler"
	"researchops/internal/repository"
)

// Register wires routes and middleware. Guarded routes are composed of two
// explicit middlewares: token validation followed by current-user resolution.
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	userRepo repository.UserRepository,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	researchHandler *handler.ResearchHandler,
	healthHandler *handler.HealthHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	e.Validator = NewValidator()

	guarded := Guard(jwtService, userRepo)

	// Health probes
	e.GET("/up", healthHandler.Up)
	e.GET("/up/databases", healthHandler.UpDatabases)

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Authentication
	e.POST("/", authHandler.Login)
	e.DELETE("/", authHandler.Logout, guarded...)
	e.POST("/pusher", authHandler.AuthorizeChannel, guarded...)

	// Users
	e.POST("/user", userHandler.Register)
	e.GET("/user/", userHandler.List, guarded...)

	// Researches
	e.GET("/researches/", researchHandler.List, guarded...)
	e.POST("/researches", researchHandler.Create, guarded...)
}

// CustomValidator wraps validator for Echo, reporting errors under the JSON
// field names the client sent.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator builds the request validator.
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
