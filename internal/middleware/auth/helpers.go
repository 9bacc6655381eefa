package auth

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/accounts_admin/internal/models"
	"github.com/Skotchmaster/accounts_admin/internal/tokens"
)

// CtxAccount is the echo context key holding the resolved *models.Account.
const CtxAccount = "account"

type AccountLoader interface {
	FindByID(ctx context.Context, id uint) (*models.Account, error)
}

type TokenParser interface {
	Parse(raw string) (*tokens.AccessClaims, error)
}

func setAccountContext(c echo.Context, account *models.Account) {
	c.Set(CtxAccount, account)
}

func AccountFromContext(c echo.Context) (*models.Account, bool) {
	account, ok := c.Get(CtxAccount).(*models.Account)
	return account, ok && account != nil
}

// tokenFromRequest prefers the Authorization bearer header and falls back to
// the session cookie.
func tokenFromRequest(c echo.Context, cookieName string) string {
	if h := c.Request().Header.Get(echo.HeaderAuthorization); h != "" {
		scheme, token, found := strings.Cut(h, " ")
		if found && strings.EqualFold(scheme, "Bearer") {
			if token = strings.TrimSpace(token); token != "" {
				return token
			}
		}
	}

	if ck, err := c.Cookie(cookieName); err == nil && ck.Value != "" {
		return ck.Value
	}
	return ""
}
