package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"agentcrm_site/web"
)

// Item is a titled line of marketing copy
type Item struct {
	Title       string
	Description string
}

var features = []Item{
	{Title: "Client book.", Description: "Store every client, family member and policy with documents attached."},
	{Title: "Renewal reminders.", Description: "Automatic WhatsApp and email reminders before premiums fall due."},
	{Title: "Commission tracker.", Description: "See expected and received commission per insurer and per policy."},
	{Title: "Product shelf.", Description: "Compare plans from partner insurers and share quotes in seconds."},
	{Title: "Marketing kit.", Description: "Festival greetings, tax-season campaigns and branded creatives."},
	{Title: "Agency view.", Description: "Team dashboards and lead assignment for agency owners."},
}

var steps = []Item{
	{Title: "Sign up.", Description: "Create your account with your mobile number."},
	{Title: "Import clients.", Description: "Upload a spreadsheet or add clients one by one."},
	{Title: "Set reminders.", Description: "Pick when and how clients hear from you before each renewal."},
	{Title: "Grow.", Description: "Use the marketing kit and product shelf to cross-sell."},
}

// PublicHandler serves the static marketing pages and the blog
type PublicHandler struct {
	blog *web.Blog
}

func NewPublicHandler(blog *web.Blog) *PublicHandler {
	return &PublicHandler{blog: blog}
}

func (h *PublicHandler) page(c echo.Context, name, title, nav string, data interface{}) error {
	props := PageData{
		Title:     title,
		ActiveNav: nav,
		Data:      data,
	}
	if nav != "" {
		props.Breadcrumbs = []Breadcrumb{
			{Title: "Home", URL: "/"},
			{Title: title, URL: ""},
		}
	}
	return c.Render(http.StatusOK, name, props)
}

func (h *PublicHandler) Home(c echo.Context) error {
	return h.page(c, "home.html", "Home", "", nil)
}

func (h *PublicHandler) About(c echo.Context) error {
	return h.page(c, "about.html", "About", "about", nil)
}

func (h *PublicHandler) Features(c echo.Context) error {
	return h.page(c, "features.html", "Features", "features", features)
}

func (h *PublicHandler) HowItWorks(c echo.Context) error {
	return h.page(c, "how_it_works.html", "How It Works", "how-it-works", steps)
}

func (h *PublicHandler) Terms(c echo.Context) error {
	return h.page(c, "terms.html", "Terms of Service", "terms", nil)
}

func (h *PublicHandler) Privacy(c echo.Context) error {
	return h.page(c, "privacy.html", "Privacy Policy", "privacy", nil)
}

// BlogIndex lists every post
func (h *PublicHandler) BlogIndex(c echo.Context) error {
	return h.page(c, "blog_index.html", "Blog", "blog", h.blog.Posts())
}

// BlogPost renders a single post
func (h *PublicHandler) BlogPost(c echo.Context) error {
	post, ok := h.blog.Post(c.Param("slug"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound)
	}

	props := PageData{
		Title:     post.Title,
		ActiveNav: "blog",
		Breadcrumbs: []Breadcrumb{
			{Title: "Home", URL: "/"},
			{Title: "Blog", URL: "/blog"},
			{Title: post.Title, URL: ""},
		},
		Data: post,
	}
	return c.Render(http.StatusOK, "blog_post.html", props)
}
