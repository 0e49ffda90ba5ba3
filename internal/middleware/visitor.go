package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"agentcrm_site/internal/session"
)

const (
	VisitorCookie     = "visitor"
	VisitorContextKey = "visitor"
)

// Visitor attaches the caller's session to the context. A known cookie
// resumes the stored session. Unknown callers get a throwaway session on
// GET and HEAD; the first other request stores one and issues the cookie.
func Visitor(store *session.Store, secure bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := ""
			if cookie, err := c.Cookie(VisitorCookie); err == nil {
				id = cookie.Value
			}

			if v, ok := store.Lookup(id); ok {
				c.Set(VisitorContextKey, v)
				return next(c)
			}

			switch c.Request().Method {
			case http.MethodGet, http.MethodHead:
				c.Set(VisitorContextKey, store.Transient())
				return next(c)
			}

			v := store.Get("")
			c.SetCookie(&http.Cookie{
				Name:     VisitorCookie,
				Value:    v.ID,
				Path:     "/",
				HttpOnly: true,
				Secure:   secure,
				SameSite: http.SameSiteLaxMode,
			})

			c.Set(VisitorContextKey, v)
			return next(c)
		}
	}
}

// GetVisitor returns the session attached by Visitor
func GetVisitor(c echo.Context) (*session.Visitor, bool) {
	v, ok := c.Get(VisitorContextKey).(*session.Visitor)
	return v, ok
}
