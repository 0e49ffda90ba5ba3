package web

import (
	"bytes"
	"html/template"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentcrm_site/internal/config"
)

func TestLoadBlog(t *testing.T) {
	blog, err := LoadBlog()
	require.NoError(t, err)

	posts := blog.Posts()
	require.Len(t, posts, 2)
	assert.Equal(t, "renewal-reminders", posts[0].Slug, "newest first")
	assert.True(t, posts[0].Published.After(posts[1].Published))

	post, ok := blog.Post("renewal-reminders")
	require.True(t, ok)
	assert.Equal(t, "Five ways to stop losing renewals", post.Title)
	assert.Contains(t, string(post.HTML), "<strong>Start 45 days early.</strong>")
	assert.NotContains(t, string(post.HTML), "title:")

	_, ok = blog.Post("missing")
	assert.False(t, ok)
}

func TestParseBlogErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "no title", body: "date: 2026-01-01\n---\nbody"},
		{name: "bad date", body: "title: x\ndate: yesterday\n---\nbody"},
		{name: "no terminator", body: "title: x\nbody"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBlog(fstest.MapFS{"post.md": {Data: []byte(tt.body)}})
			assert.Error(t, err)
		})
	}
}

type pageData struct {
	Title       string
	ActiveNav   string
	Breadcrumbs []struct{ Title, URL string }
	Data        interface{}
}

func TestRendererInjectsTheme(t *testing.T) {
	theme := config.DefaultTheme()
	theme.Primary = "#123456"
	r, err := NewTemplateRenderer(theme)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, "about.html", pageData{Title: "About", ActiveNav: "about"}, nil))
	html := buf.String()
	assert.Contains(t, html, "--primary: #123456")
	assert.Contains(t, html, "<title>About | AgentCRM</title>")
	assert.Contains(t, html, `href="/about" class="active"`)
}

func TestRendererFragments(t *testing.T) {
	r, err := NewTemplateRenderer(config.DefaultTheme())
	require.NoError(t, err)

	var buf bytes.Buffer
	data := map[string]interface{}{
		"Active":  "Clients",
		"Labels":  []string{"Dashboard", "Clients"},
		"Content": template.HTML("<p>clients</p>"),
	}
	require.NoError(t, r.Render(&buf, "fragment:dashboard_shell", data, nil))
	html := buf.String()
	assert.True(t, strings.Contains(html, `id="dashboard-shell"`))
	assert.NotContains(t, html, "<html")
	assert.Contains(t, html, "<p>clients</p>")

	assert.Error(t, r.Render(&buf, "fragment:nope", nil, nil))
	assert.Error(t, r.Render(&buf, "nope.html", nil, nil))
}
