// internal/web/router.go
package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mortgage-dashboard/internal/common/config"
	"mortgage-dashboard/internal/common/logger"
	"mortgage-dashboard/internal/common/observability"
	"mortgage-dashboard/internal/common/session"
	"mortgage-dashboard/internal/pages/applications"
	"mortgage-dashboard/internal/pages/auth"
	"mortgage-dashboard/internal/pages/loandetails"
	"mortgage-dashboard/internal/pages/profile"
	"mortgage-dashboard/internal/pages/ratesheet"
)

// Handlers bundles the page handlers the router mounts.
type Handlers struct {
	Applications *applications.Handler
	LoanDetails  *loandetails.Handler
	Auth         *auth.Handler
	Profile      *profile.Handler
	RateSheet    *ratesheet.Handler
}

// NewRouter assembles the gin engine: middleware chain, templates, public
// auth routes and the session-guarded dashboard routes.
func NewRouter(cfg *config.Config, store *session.Store, obs *observability.Observability, h Handlers, log logger.Logger) *gin.Engine {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(RequestMetrics(obs))
	r.Use(CORS(cfg.Server.AllowedOrigins))

	r.LoadHTMLGlob(cfg.Server.TemplateGlob)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public surface
	r.GET("/auth", h.Auth.Show)
	r.POST("/auth", h.Auth.Submit)
	r.GET("/logout", h.Auth.Logout)
	r.POST("/logout", h.Auth.Logout)
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/applications")
	})

	// Everything else needs a live session. Pages can be switched off in
	// config, so only mount the handlers that were wired.
	guarded := r.Group("/")
	guarded.Use(RequireSession(store, cfg.Session.CookieName, log))
	{
		if h.Applications != nil {
			guarded.GET("/applications", h.Applications.ShowList)
			guarded.POST("/applications", h.Applications.Create)
		}

		if h.LoanDetails != nil {
			guarded.GET("/loan-details", h.LoanDetails.Show)
			guarded.POST("/loan-details/:id/recommendation", h.LoanDetails.Recommendation)
			guarded.POST("/loan-details/:id/documents", h.LoanDetails.Upload)
		}

		if h.Profile != nil {
			guarded.GET("/profile", h.Profile.Show)
			guarded.POST("/profile", h.Profile.Submit)
		}

		if h.RateSheet != nil {
			guarded.GET("/rate-sheet", h.RateSheet.Show)
		}
	}

	return r
}
