package auth

import (
	"errors"
	"slices"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/accounts_admin/internal/apperr"
	"github.com/Skotchmaster/accounts_admin/internal/logging"
	"github.com/Skotchmaster/accounts_admin/internal/models"
)

var (
	ErrNoIdentity   = errors.New("role guard: no identity on context; auth guard must run first")
	ErrRoleRequired = errors.New("role not permitted for route")
)

// RouteRoles maps RouteKey(method, pattern) to the roles allowed on it.
// Routes without an entry, or with an empty list, admit any authenticated account.
type RouteRoles map[string][]models.Role

func RouteKey(method, path string) string {
	return method + " " + path
}

func (r RouteRoles) Allow(method, path string, roles ...models.Role) RouteRoles {
	r[RouteKey(method, path)] = roles
	return r
}

func (r RouteRoles) Required(method, path string) []models.Role {
	return r[RouteKey(method, path)]
}

type RoleGuard struct {
	Routes RouteRoles
}

func NewRoleGuard(routes RouteRoles) *RoleGuard {
	return &RoleGuard{Routes: routes}
}

func (g *RoleGuard) Require(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		l := logging.FromContext(c.Request().Context()).With("mw", "role_guard")

		account, ok := AccountFromContext(c)
		if !ok {
			l.Error("role_guard_misconfigured", "status", 500, "route", RouteKey(c.Request().Method, c.Path()))
			return apperr.Internal(ErrNoIdentity)
		}

		required := g.Routes.Required(c.Request().Method, c.Path())
		if len(required) == 0 {
			return next(c)
		}

		if !slices.Contains(required, account.Role) {
			l.Warn("access_denied", "status", 403, "reason", "role not permitted", "account_id", account.ID, "role", account.Role)
			return apperr.Forbidden(ErrRoleRequired)
		}

		return next(c)
	}
}
