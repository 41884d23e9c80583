package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArowuTest/rsu-vesting/internal/config"
	"github.com/ArowuTest/rsu-vesting/internal/handlers"
	"github.com/ArowuTest/rsu-vesting/internal/metrics"
	"github.com/ArowuTest/rsu-vesting/internal/middleware"
	"github.com/ArowuTest/rsu-vesting/internal/services"
)

// HandlerDependencies holds the services the router wires into handlers
type HandlerDependencies struct {
	AwardService   services.AwardService
	SessionService services.SessionService
	Metrics        *metrics.Registry
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.SetHTMLTemplate(handlers.Templates())

	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(deps.Metrics))

	awardHandler := handlers.NewAwardHandler(deps.AwardService)
	sessionHandler := handlers.NewSessionHandler(deps.SessionService)
	chartHandler := handlers.NewChartHandler(deps.AwardService, deps.Metrics)
	pageHandler := handlers.NewPageHandler(deps.AwardService)

	limit := middleware.RateLimitMiddleware(cfg.Server.RateLimit)

	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	// HTML calculator, cookie sessions started on first visit
	page := router.Group("/")
	page.Use(middleware.SessionMiddleware(deps.SessionService, middleware.SessionOptions{
		CookieName: cfg.Session.CookieName,
		Issue:      true,
	}))
	{
		page.GET("", pageHandler.Index)
		page.POST("/awards", limit, pageHandler.SubmitForm)
	}

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
				"store":  cfg.Store.Driver,
			})
		})
		public.POST("/sessions", limit, sessionHandler.StartSession)
		public.POST("/schedule/preview", limit, awardHandler.PreviewSchedule)
	}

	// Session routes, bearer token or the page cookie
	protected := router.Group("/api/v1")
	protected.Use(middleware.SessionMiddleware(deps.SessionService, middleware.SessionOptions{
		CookieName: cfg.Session.CookieName,
	}))
	{
		awards := protected.Group("/awards")
		{
			awards.GET("", awardHandler.ListAwards)
			awards.POST("", limit, awardHandler.SubmitAward)
			awards.GET("/:name", awardHandler.GetAward)
			awards.GET("/:name/schedule", awardHandler.GetSchedule)
		}

		protected.GET("/schedule/total", awardHandler.GetTotal)
		protected.GET("/chart.svg", chartHandler.SVG)
		protected.GET("/chart.png", chartHandler.PNG)
	}

	return router
}
