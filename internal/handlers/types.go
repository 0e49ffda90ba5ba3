package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"agentcrm_site/internal/middleware"
	"agentcrm_site/internal/session"
)

// Breadcrumb represents a navigation trail
type Breadcrumb struct {
	Title string
	URL   string
}

// PageData represents the common data structure passed to templates
type PageData struct {
	Title       string
	ActiveNav   string
	Breadcrumbs []Breadcrumb
	Data        interface{} // Page-specific data
}

func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

func visitorFromContext(c echo.Context) (*session.Visitor, error) {
	v, ok := middleware.GetVisitor(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "visitor session missing")
	}
	return v, nil
}
