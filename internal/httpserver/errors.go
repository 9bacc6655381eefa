package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/accounts_admin/internal/apperr"
	"github.com/Skotchmaster/accounts_admin/internal/logging"
	"github.com/Skotchmaster/accounts_admin/internal/session"
)

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

type ErrorResponse struct {
	URL       string           `json:"url"`
	Timestamp string           `json:"timestamp"`
	Messages  []apperr.Message `json:"messages"`
}

// NewHTTPErrorHandler renders every error as the error envelope. Auth and
// access failures also clear the session cookie.
func NewHTTPErrorHandler(cookie session.CookieConfig) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, ae := classify(err)
		l := logging.FromContext(c.Request().Context())
		if status >= http.StatusInternalServerError {
			l.Error("request_failed", "status", status, "code", ae.Messages[0].Code, "error", err)
		}

		if ae.Kind == apperr.KindUnauthenticated || ae.Kind == apperr.KindForbidden {
			session.ClearSessionCookie(c, cookie)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}

		body := ErrorResponse{
			URL:       c.Request().URL.RequestURI(),
			Timestamp: time.Now().UTC().Format(timestampLayout),
			Messages:  ae.Messages,
		}
		if err := c.JSON(status, body); err != nil {
			l.Error("error_response_failed", "error", err)
		}
	}
}

func classify(err error) (int, *apperr.Error) {
	if ae, ok := apperr.As(err); ok {
		if len(ae.Messages) == 0 {
			ae.Messages = []apperr.Message{apperr.Unknown}
		}
		return ae.Status(), ae
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// only the SQLSTATE leaves the process; detail and parameters may carry row data
		ae := apperr.Store(err, pgErr.Code)
		return ae.Status(), ae
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		switch he.Code {
		case http.StatusNotFound, http.StatusMethodNotAllowed:
			return he.Code, apperr.New(apperr.KindNotFound, err, apperr.NotFound)
		case http.StatusUnauthorized:
			return he.Code, apperr.Unauthenticated(err)
		case http.StatusForbidden:
			return he.Code, apperr.Forbidden(err)
		case http.StatusBadRequest:
			return he.Code, apperr.New(apperr.KindValidation, err, apperr.Validation)
		default:
			return he.Code, apperr.Internal(err)
		}
	}

	ae := apperr.Internal(err)
	return ae.Status(), ae
}
