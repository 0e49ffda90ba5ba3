package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"agentcrm_site/internal/leadform"
)

// FieldView is a form field with its current value
type FieldView struct {
	leadform.Field
	Value string
}

// LeadFormView is what the leadform partial renders
type LeadFormView struct {
	Kind         leadform.Kind
	Title        string
	Intro        string
	Status       leadform.Status
	Submitting   bool
	Success      bool
	ErrorMessage string
	Fields       []FieldView

	Action    string
	StatusURL string
	ResetURL  string
}

func newLeadFormView(form *leadform.Controller) LeadFormView {
	schema := form.Schema()
	state := form.State()
	base := fmt.Sprintf("/partners/%s", schema.Kind)

	fields := make([]FieldView, 0, len(schema.Fields))
	for _, f := range schema.Fields {
		fields = append(fields, FieldView{Field: f, Value: state.Value(f.Name)})
	}

	return LeadFormView{
		Kind:         schema.Kind,
		Title:        schema.Title,
		Intro:        schema.Intro,
		Status:       state.Status,
		Submitting:   state.Status == leadform.StatusSubmitting,
		Success:      state.Status == leadform.StatusSuccess,
		ErrorMessage: state.ErrorMessage,
		Fields:       fields,
		Action:       base,
		StatusURL:    base + "/status",
		ResetURL:     base + "/reset",
	}
}

// PartnerHandler serves the partnership pages and their lead forms
type PartnerHandler struct {
	logger *zap.Logger
}

func NewPartnerHandler(logger *zap.Logger) *PartnerHandler {
	return &PartnerHandler{logger: logger}
}

// Index lists the partnership programs
func (h *PartnerHandler) Index(c echo.Context) error {
	props := PageData{
		Title:     "Partnership Programs",
		ActiveNav: "partners",
		Breadcrumbs: []Breadcrumb{
			{Title: "Home", URL: "/"},
			{Title: "Partnerships", URL: ""},
		},
		Data: leadform.Schemas(),
	}
	return c.Render(http.StatusOK, "partners.html", props)
}

func (h *PartnerHandler) form(c echo.Context) (*leadform.Controller, error) {
	v, err := visitorFromContext(c)
	if err != nil {
		return nil, err
	}
	form, ok := v.Form(leadform.Kind(c.Param("kind")))
	if !ok {
		return nil, echo.NewHTTPError(http.StatusNotFound)
	}
	return form, nil
}

// Show renders the full partnership page with the visitor's form state
func (h *PartnerHandler) Show(c echo.Context) error {
	form, err := h.form(c)
	if err != nil {
		return err
	}

	view := newLeadFormView(form)
	props := PageData{
		Title:     view.Title,
		ActiveNav: "partners",
		Breadcrumbs: []Breadcrumb{
			{Title: "Home", URL: "/"},
			{Title: "Partnerships", URL: "/partners"},
			{Title: view.Title, URL: ""},
		},
		Data: view,
	}
	return c.Render(http.StatusOK, "partner_form.html", props)
}

// respond sends HTMX callers the form fragment and redirects everyone else
// back to the page.
func (h *PartnerHandler) respond(c echo.Context, form *leadform.Controller) error {
	if isHTMX(c) {
		return c.Render(http.StatusOK, "fragment:leadform", newLeadFormView(form))
	}
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/partners/%s", form.Schema().Kind))
}

// Submit copies the posted values into the form and starts delivery
func (h *PartnerHandler) Submit(c echo.Context) error {
	form, err := h.form(c)
	if err != nil {
		return err
	}

	if st := form.Status(); st == leadform.StatusIdle || st == leadform.StatusError {
		for _, f := range form.Schema().Fields {
			form.UpdateField(f.Name, c.FormValue(f.Name))
		}
	}

	if form.Submit(c.Request().Context()) {
		h.logger.Info("Lead form submitted", zap.String("form", string(form.Schema().Kind)))
	} else {
		h.logger.Debug("Lead form submit ignored",
			zap.String("form", string(form.Schema().Kind)),
			zap.String("status", string(form.Status())))
	}

	return h.respond(c, form)
}

// UpdateField stores a single edited value
func (h *PartnerHandler) UpdateField(c echo.Context) error {
	form, err := h.form(c)
	if err != nil {
		return err
	}

	name := c.FormValue("name")
	if _, ok := form.Schema().Field(name); !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown field")
	}
	form.UpdateField(name, c.FormValue("value"))

	return c.NoContent(http.StatusNoContent)
}

// Status renders the current form fragment; while submitting it keeps polling
func (h *PartnerHandler) Status(c echo.Context) error {
	form, err := h.form(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "fragment:leadform", newLeadFormView(form))
}

// Reset clears the form so the visitor can submit another inquiry
func (h *PartnerHandler) Reset(c echo.Context) error {
	form, err := h.form(c)
	if err != nil {
		return err
	}
	form.Reset()
	return h.respond(c, form)
}
