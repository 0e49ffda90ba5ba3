package dashboard

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentcrm_site/internal/config"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func marker(name string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, name)
		return err
	})
}

func TestRouterStartsOnDashboard(t *testing.T) {
	r := NewRouter(DefaultRegistry(config.DefaultTheme()))
	assert.Equal(t, PageDashboard, r.ActivePage())
	assert.Contains(t, render(t, r.CurrentContent()), `data-page="Dashboard"`)
}

func TestNavigate(t *testing.T) {
	reg := NewRegistry()
	reg.Register(PageDashboard, marker("dashboard"))
	reg.Register(PageClients, marker("clients"))
	reg.Register(PageHelp, marker("help"))

	tests := []struct {
		label       string
		wantActive  string
		wantContent string
	}{
		{label: PageClients, wantActive: PageClients, wantContent: "clients"},
		{label: "Unknown", wantActive: PageDashboard, wantContent: "dashboard"},
		{label: "Help & Support", wantActive: PageHelp, wantContent: "help"},
		{label: "", wantActive: PageDashboard, wantContent: "dashboard"},
	}

	r := NewRouter(reg)
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.wantActive, r.Navigate(tt.label))
			assert.Equal(t, tt.wantActive, r.ActivePage())
			assert.Equal(t, tt.wantContent, render(t, r.CurrentContent()))
		})
	}
}

func TestRegistryOrderAndReplacement(t *testing.T) {
	reg := NewRegistry()
	reg.Register(PageDashboard, marker("a"))
	reg.Register(PagePricing, marker("b"))
	reg.Register(PageDashboard, marker("c"))

	assert.Equal(t, []string{PageDashboard, PagePricing}, reg.Labels())
	c, ok := reg.Lookup(PageDashboard)
	require.True(t, ok)
	assert.Equal(t, "c", render(t, c))
}

func TestCurrentContentWithoutDefault(t *testing.T) {
	r := NewRouter(NewRegistry())
	assert.Equal(t, "", render(t, r.CurrentContent()))
}

func TestDefaultRegistryCoversSidebar(t *testing.T) {
	want := []string{
		PageDashboard, PageProducts, PageClients, PageCommissions, PageMarketing,
		PageHelp, PageNoticeBoard, PagePricing, PageProfile,
	}
	theme := config.DefaultTheme()
	reg := DefaultRegistry(theme)
	assert.Equal(t, want, reg.Labels())

	for _, label := range want {
		c, ok := reg.Lookup(label)
		require.True(t, ok, label)
		html := render(t, c)
		assert.Contains(t, html, templ.EscapeString(label))
		assert.Contains(t, html, theme.Primary)
	}
}

func TestPanelEscapesContent(t *testing.T) {
	html := render(t, PanelComponent(config.DefaultTheme(), Panel{
		Title: "<script>",
		Notes: []string{"a & b"},
	}))
	assert.False(t, strings.Contains(html, "<script>"))
	assert.Contains(t, html, "a &amp; b")
}
