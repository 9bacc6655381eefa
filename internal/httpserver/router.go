package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/accounts_admin/internal/middleware/auth"
	loggingmw "github.com/Skotchmaster/accounts_admin/internal/middleware/logging"
	"github.com/Skotchmaster/accounts_admin/internal/models"
	"github.com/Skotchmaster/accounts_admin/internal/session"
)

type Deps struct {
	AuthHandler     *AuthHTTP
	AccountsHandler *AccountsHTTP
	AuthGuard       *auth.AuthGuard
	Roles           auth.RouteRoles
	Ready           func(ctx context.Context) error
}

// DefaultRouteRoles is the access table for the routes registered below.
func DefaultRouteRoles() auth.RouteRoles {
	return auth.RouteRoles{}.
		Allow(http.MethodGet, "/accounts", models.RoleAdmin).
		Allow(http.MethodGet, "/accounts/:id", models.RoleAdmin)
}

type Options struct {
	Logger      *slog.Logger
	Cookie      session.CookieConfig
	CORSOrigins []string
}

func New(opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Cookie)

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(
		middleware.Recover(),
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}),
		loggingmw.RequestLogger(opts.Logger),
	)
	if len(opts.CORSOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     opts.CORSOrigins,
			AllowCredentials: true,
			AllowHeaders:     []string{echo.HeaderAuthorization, echo.HeaderContentType},
		}))
	}
	return e
}

// Register wires routes. Guards are attached per route so unmatched paths
// still produce a plain not_found.
func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(c.Request().Context()); err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "not ready").SetInternal(err)
			}
		}
		return c.NoContent(http.StatusOK)
	})

	roles := d.Roles
	if roles == nil {
		roles = DefaultRouteRoles()
	}
	authed := []echo.MiddlewareFunc{d.AuthGuard.Require, auth.NewRoleGuard(roles).Require}

	e.POST("/auth/login", d.AuthHandler.Login)
	e.GET("/auth/logout", d.AuthHandler.LogOut, authed...)
	e.GET("/auth/me", d.AuthHandler.Me, authed...)

	e.GET("/accounts", d.AccountsHandler.GetAccounts, authed...)
	e.GET("/accounts/:id", d.AccountsHandler.GetAccount, authed...)
}
