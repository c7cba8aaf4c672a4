package handler

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/dafibh/fortuna/fortuna-web/internal/resource"
	"github.com/labstack/echo/v4"
)

// DefaultFlashCookie is the cookie carrying a toast across a redirect
const DefaultFlashCookie = "fortuna_toast"

const flashMaxAge = 60

// Flash stores a toast in a short-lived cookie so it survives the reload
// redirect and is shown exactly once.
type Flash struct {
	cookieName string
	secure     bool
}

// NewFlash creates a Flash using cookieName
func NewFlash(cookieName string, secure bool) *Flash {
	if cookieName == "" {
		cookieName = DefaultFlashCookie
	}
	return &Flash{cookieName: cookieName, secure: secure}
}

// Set stores toast for the next rendered page
func (f *Flash) Set(c echo.Context, toast *resource.Toast) {
	if toast == nil {
		return
	}
	b, err := json.Marshal(toast)
	if err != nil {
		return
	}
	c.SetCookie(f.cookie(base64.RawURLEncoding.EncodeToString(b), flashMaxAge))
}

// Pop returns the pending toast, if any, and clears it
func (f *Flash) Pop(c echo.Context) *resource.Toast {
	cookie, err := c.Cookie(f.cookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	c.SetCookie(f.cookie("", -1))

	b, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var toast resource.Toast
	if err := json.Unmarshal(b, &toast); err != nil || toast.Message == "" {
		return nil
	}
	return &toast
}

func (f *Flash) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     f.cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   f.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
