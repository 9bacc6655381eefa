package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/accounts_admin/internal/apperr"
	"github.com/Skotchmaster/accounts_admin/internal/logging"
	"github.com/Skotchmaster/accounts_admin/internal/middleware/auth"
	"github.com/Skotchmaster/accounts_admin/internal/service"
	"github.com/Skotchmaster/accounts_admin/internal/session"
	"github.com/Skotchmaster/accounts_admin/internal/transport"
)

type AuthHTTP struct {
	Svc    *service.AuthService
	Cookie session.CookieConfig
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return apperr.FromValidation(errors.New("invalid body"))
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		l.Warn("login_error", "status", 400, "reason", "validation", "error", err)
		return apperr.FromValidation(err)
	}

	res, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFoundAccount):
			return apperr.BadRequest(apperr.NotFoundAccount, err)
		case errors.Is(err, service.ErrInvalidCredentials):
			return apperr.BadRequest(apperr.InvalidPassword, err)
		case errors.Is(err, service.ErrValidation):
			return apperr.FromValidation(err)
		default:
			return err
		}
	}

	session.SetSessionCookie(c, res.Token.AccessToken, h.Cookie)

	return c.JSON(http.StatusOK, transport.LoginPayloadDTO{
		Account: transport.ToAccountDTO(res.Account),
		Token: transport.TokenPayloadDTO{
			AccessToken: res.Token.AccessToken,
			ExpiresIn:   res.Token.ExpiresIn,
		},
	})
}

func (h *AuthHTTP) LogOut(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_logout")

	account, _ := auth.AccountFromContext(c)
	h.Svc.Logout(ctx, account)

	session.ClearSessionCookie(c, h.Cookie)
	l.Info("successful_logout")

	return c.JSON(http.StatusOK, echo.Map{
		"msg": "ok",
	})
}

func (h *AuthHTTP) Me(c echo.Context) error {
	ctx := c.Request().Context()

	account, ok := auth.AccountFromContext(c)
	if !ok {
		return apperr.Internal(auth.ErrNoIdentity)
	}

	fresh, err := h.Svc.Me(ctx, account.ID)
	if err != nil {
		if errors.Is(err, service.ErrNotFoundAccount) {
			return apperr.Unauthenticated(err)
		}
		return err
	}

	return c.JSON(http.StatusOK, transport.ToAuthAccountInfoDTO(*fresh))
}
