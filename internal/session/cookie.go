package session

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

type CookieConfig struct {
	Name   string
	Domain string
	MaxAge time.Duration
	Secure bool
}

func CreateCookie(cfg CookieConfig, value string, now time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     cfg.Name,
		Value:    value,
		Path:     "/",
		Domain:   cfg.Domain,
		MaxAge:   int(cfg.MaxAge / time.Second),
		Expires:  now.Add(cfg.MaxAge).UTC(),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func DeleteCookie(cfg CookieConfig) *http.Cookie {
	return &http.Cookie{
		Name:     cfg.Name,
		Value:    "",
		Path:     "/",
		Domain:   cfg.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func SetSessionCookie(c echo.Context, token string, cfg CookieConfig) {
	overwrite(c, CreateCookie(cfg, token, time.Now()))
}

func ClearSessionCookie(c echo.Context, cfg CookieConfig) {
	overwrite(c, DeleteCookie(cfg))
}

// overwrite drops any Set-Cookie already queued for the same name before
// adding the new one, so a response never carries two values for it.
func overwrite(c echo.Context, ck *http.Cookie) {
	h := c.Response().Header()
	prefix := ck.Name + "="
	var kept []string
	for _, v := range h.Values(echo.HeaderSetCookie) {
		if !strings.HasPrefix(v, prefix) {
			kept = append(kept, v)
		}
	}
	h.Del(echo.HeaderSetCookie)
	for _, v := range kept {
		h.Add(echo.HeaderSetCookie, v)
	}
	c.SetCookie(ck)
}
