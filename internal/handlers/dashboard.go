package handlers

import (
	"html/template"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"agentcrm_site/internal/dashboard"
)

// DashboardView is what the dashboard shell partial renders
type DashboardView struct {
	Active  string
	Labels  []string
	Content template.HTML
}

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct{}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

func (h *DashboardHandler) view(c echo.Context, nav *dashboard.Router) (DashboardView, error) {
	content, err := templ.ToGoHTML(c.Request().Context(), nav.CurrentContent())
	if err != nil {
		return DashboardView{}, err
	}
	return DashboardView{
		Active:  nav.ActivePage(),
		Labels:  nav.Labels(),
		Content: content,
	}, nil
}

// Dashboard renders the shell with the visitor's active page
func (h *DashboardHandler) Dashboard(c echo.Context) error {
	v, err := visitorFromContext(c)
	if err != nil {
		return err
	}

	view, err := h.view(c, v.Nav())
	if err != nil {
		return err
	}

	props := PageData{
		Title:     "Dashboard",
		ActiveNav: "dashboard",
		Breadcrumbs: []Breadcrumb{
			{Title: "Home", URL: "/"},
			{Title: "Dashboard", URL: ""},
		},
		Data: view,
	}
	return c.Render(http.StatusOK, "dashboard.html", props)
}

// Navigate switches the active sidebar page
func (h *DashboardHandler) Navigate(c echo.Context) error {
	v, err := visitorFromContext(c)
	if err != nil {
		return err
	}
	nav := v.Nav()
	nav.Navigate(c.FormValue("label"))

	if !isHTMX(c) {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}

	view, err := h.view(c, nav)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "fragment:dashboard_shell", view)
}
