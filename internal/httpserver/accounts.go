package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/accounts_admin/internal/apperr"
	"github.com/Skotchmaster/accounts_admin/internal/logging"
	"github.com/Skotchmaster/accounts_admin/internal/service"
	"github.com/Skotchmaster/accounts_admin/internal/transport"
)

type AccountsHTTP struct {
	Svc *service.AccountService
}

func (h *AccountsHTTP) GetAccounts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get_accounts")

	opts, err := transport.ParsePageOptions(c.QueryParams())
	if err != nil {
		l.Warn("get_accounts_error", "status", 400, "reason", "invalid query", "error", err)
		return apperr.FromValidation(err)
	}

	page, err := h.Svc.GetAccounts(ctx, opts)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return apperr.FromValidation(err)
		}
		return err
	}

	return c.JSON(http.StatusOK, page)
}

func (h *AccountsHTTP) GetAccount(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		return apperr.NotFoundError(apperr.NotFoundAccount, err)
	}

	account, err := h.Svc.GetAccount(ctx, uint(id))
	if err != nil {
		if errors.Is(err, service.ErrNotFoundAccount) {
			return apperr.NotFoundError(apperr.NotFoundAccount, err)
		}
		return err
	}

	return c.JSON(http.StatusOK, transport.ToAccountDTO(*account))
}
