package router

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"taskhub/docs"
	"taskhub/internal/auth"
	"taskhub/internal/config"
	apperrors "taskhub/internal/errors"
	"taskhub/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	logger zerolog.Logger,
	jwtService *auth.JWTService,
	gate *auth.Gate,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	taskHandler *handler.TaskHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = newHTTPErrorHandler(logger)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// Secured routes: token parse, then live identity resolution
	secured := api.Group("",
		echojwt.WithConfig(echojwt.Config{
			ContextKey: handler.ClaimsKey,
			ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
				return jwtService.DecodeToken(token)
			},
			ErrorHandler: func(c echo.Context, err error) error {
				var de *apperrors.Error
				if stderrors.As(err, &de) {
					return de
				}
				return apperrors.NewAuthentication("")
			},
		}),
		identityMiddleware(gate),
	)

	secured.POST("/auth/logout", authHandler.Logout)
	secured.GET("/me", authHandler.Me)

	// User routes
	secured.GET("/users", userHandler.List)
	secured.POST("/users", userHandler.Create)
	secured.GET("/users/:id", userHandler.Get)
	secured.PATCH("/users/:id", userHandler.Update)
	secured.DELETE("/users/:id", userHandler.Delete)

	// Task routes
	secured.GET("/tasks", taskHandler.List)
	secured.POST("/tasks", taskHandler.Create)
	secured.GET("/tasks/:id", taskHandler.Get)
	secured.PATCH("/tasks/:id", taskHandler.Update)
	secured.DELETE("/tasks/:id", taskHandler.Delete)
}

// identityMiddleware turns decoded claims into a live user record via the
// gate. Tokens for revoked or deleted users are rejected here.
func identityMiddleware(gate *auth.Gate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(handler.ClaimsKey).(*auth.Claims)
			if !ok {
				return apperrors.NewAuthentication("")
			}
			user, err := gate.ResolveIdentity(c.Request().Context(), claims)
			if err != nil {
				return err
			}
			c.Set(handler.IdentityKey, user)
			return next(c)
		}
	}
}

// CustomValidator wraps validator for Echo, translating schema violations
// into domain Validation errors so they map to 422 like every other one.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if stderrors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		field := strings.ToLower(fieldErrs[0].Field())
		return apperrors.NewValidation(fieldErrs[0].Error(), field)
	}
	return apperrors.NewValidation(err.Error(), "")
}

// newHTTPErrorHandler maps domain errors onto protocol status codes:
// NotFound 404, Validation 422, Authentication 401, Authorization 403.
func newHTTPErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var de *apperrors.Error
		if stderrors.As(err, &de) {
			httpErr := apperrors.MapToHTTP(de)
			if writeErr := c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse()); writeErr != nil {
				logger.Error().Err(writeErr).Msg("write error response")
			}
			return
		}

		var he *echo.HTTPError
		if stderrors.As(err, &he) {
			msg, ok := he.Message.(string)
			if !ok {
				msg = http.StatusText(he.Code)
			}
			if writeErr := c.JSON(he.Code, apperrors.ErrorResponse{Error: msg, Code: "HTTP_ERROR"}); writeErr != nil {
				logger.Error().Err(writeErr).Msg("write error response")
			}
			return
		}

		logger.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
		resp := apperrors.NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
		if writeErr := c.JSON(resp.StatusCode, resp.ToErrorResponse()); writeErr != nil {
			logger.Error().Err(writeErr).Msg("write error response")
		}
	}
}
