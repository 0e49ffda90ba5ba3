package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"agentcrm_site/internal/config"
	appmw "agentcrm_site/internal/middleware"
	"agentcrm_site/internal/session"
	"agentcrm_site/web"
)

// Dependencies are the collaborators the HTTP surface needs
type Dependencies struct {
	Config         config.Config
	Logger         *zap.Logger
	Store          *session.Store
	Blog           *web.Blog
	RateLimitStore echomw.RateLimiterStore // nil uses an in-process limiter
}

// NewServer builds the echo instance with middleware and every route
func NewServer(deps Dependencies) (*echo.Echo, error) {
	renderer, err := web.NewTemplateRenderer(deps.Config.Theme)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.HTTPErrorHandler = appmw.CustomErrorHandler(deps.Logger)

	e.Use(appmw.RequestLogger(deps.Logger))
	e.Use(echomw.Recover())
	e.Use(echomw.Secure())
	e.Use(echomw.BodyLimit("64K"))

	e.StaticFS("/static", web.Static())
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	publicHandler := NewPublicHandler(deps.Blog)
	partnerHandler := NewPartnerHandler(deps.Logger)
	dashboardHandler := NewDashboardHandler()

	// Static content
	e.GET("/", publicHandler.Home)
	e.GET("/about", publicHandler.About)
	e.GET("/features", publicHandler.Features)
	e.GET("/how-it-works", publicHandler.HowItWorks)
	e.GET("/terms", publicHandler.Terms)
	e.GET("/privacy", publicHandler.Privacy)
	e.GET("/blog", publicHandler.BlogIndex)
	e.GET("/blog/:slug", publicHandler.BlogPost)
	e.GET("/partners", partnerHandler.Index)

	// Visitor-bound routes
	stateful := e.Group("")
	stateful.Use(appmw.Visitor(deps.Store, deps.Config.IsProduction()))

	limiter := appmw.LeadRateLimiter(deps.RateLimitStore, deps.Config.LeadRateLimit, deps.Logger)
	stateful.GET("/partners/:kind", partnerHandler.Show)
	stateful.POST("/partners/:kind", partnerHandler.Submit, limiter)
	stateful.POST("/partners/:kind/fields", partnerHandler.UpdateField)
	stateful.GET("/partners/:kind/status", partnerHandler.Status)
	stateful.POST("/partners/:kind/reset", partnerHandler.Reset)

	stateful.GET("/dashboard", dashboardHandler.Dashboard)
	stateful.POST("/dashboard/navigate", dashboardHandler.Navigate)

	return e, nil
}
