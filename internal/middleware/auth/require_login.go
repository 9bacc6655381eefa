package auth

import (
	"errors"
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/accounts_admin/internal/apperr"
	"github.com/Skotchmaster/accounts_admin/internal/logging"
	"github.com/Skotchmaster/accounts_admin/internal/repo"
)

var (
	ErrMissingToken    = errors.New("missing access token")
	ErrAccountInactive = errors.New("account is inactive")
)

type AuthGuard struct {
	Tokens     TokenParser
	Accounts   AccountLoader
	CookieName string
}

func NewAuthGuard(tokens TokenParser, accounts AccountLoader, cookieName string) *AuthGuard {
	return &AuthGuard{Tokens: tokens, Accounts: accounts, CookieName: cookieName}
}

// Require resolves the caller's account or fails with 401. Store failures
// other than a missing row are passed through unchanged.
func (g *AuthGuard) Require(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		l := logging.FromContext(ctx).With("mw", "auth_guard")

		raw := tokenFromRequest(c, g.CookieName)
		if raw == "" {
			l.Debug("auth_rejected", "status", 401, "reason", "missing token")
			return apperr.Unauthenticated(ErrMissingToken)
		}

		claims, err := g.Tokens.Parse(raw)
		if err != nil {
			l.Info("auth_rejected", "status", 401, "reason", "invalid token", "error", err)
			return apperr.Unauthenticated(err)
		}

		id, err := claims.AccountID()
		if err != nil {
			l.Info("auth_rejected", "status", 401, "reason", "invalid subject")
			return apperr.Unauthenticated(err)
		}

		account, err := g.Accounts.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				l.Info("auth_rejected", "status", 401, "reason", "account not found", "account_id", id)
				return apperr.Unauthenticated(err)
			}
			return fmt.Errorf("auth guard: load account: %w", err)
		}
		if !account.IsActive {
			l.Info("auth_rejected", "status", 401, "reason", "account inactive", "account_id", id)
			return apperr.Unauthenticated(ErrAccountInactive)
		}

		setAccountContext(c, account)
		return next(c)
	}
}
