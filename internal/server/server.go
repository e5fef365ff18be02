package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/farellandr/skatefund/config"
	"github.com/farellandr/skatefund/internal/handlers"
	"github.com/farellandr/skatefund/internal/helpers"
	"github.com/farellandr/skatefund/internal/logger"
	"github.com/farellandr/skatefund/internal/middleware"
	"github.com/farellandr/skatefund/internal/services"
	"github.com/gin-gonic/gin"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %v", err)
	}
	defer log.Sync()

	db, err := config.InitDatabase(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	if cfg.LogMode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	deps := &middleware.Deps{
		Services:  services.New(db, log),
		Errors:    helpers.ErrorMapper{DomainInvariantStatus: cfg.DomainInvariantStatus},
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  24 * time.Hour,
	}
	limiter := middleware.NewRateLimiter(cfg.ContributionRatePerMinute, cfg.ContributionBurst)
	go limiter.Janitor(ctx, 10*time.Minute)

	r := NewRouter(cfg, deps, limiter, log)

	log.Info("Server starting", "port", cfg.Port)
	return r.Run(":" + cfg.Port)
}

// NewRouter wires every route onto a fresh engine.
func NewRouter(cfg *config.Config, deps *middleware.Deps, limiter *middleware.RateLimiter, log *logger.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.DepsMiddleware(deps))

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	setupRoutes(r, cfg, limiter)
	return r
}

func setupRoutes(r *gin.Engine, cfg *config.Config, limiter *middleware.RateLimiter) {
	public := r.Group("/v1")
	{
		public.POST("/register", handlers.Register)
		public.POST("/login", handlers.Login)

		eventPublic := public.Group("/events")
		{
			eventPublic.GET("", handlers.ListEvents)
			eventPublic.GET("/active", handlers.GetActiveEvent)
			eventPublic.GET("/:id", handlers.GetEvent)
		}

		trickPublic := public.Group("/tricks")
		{
			trickPublic.GET("", handlers.ListTricks)
			trickPublic.GET("/:id", handlers.GetTrick)
		}

		spotPublic := public.Group("/spots")
		{
			spotPublic.GET("", handlers.ListSpots)
			spotPublic.GET("/:id", handlers.GetSpot)
		}

		public.POST("/contributions",
			middleware.RateLimit(limiter, cfg.ContributionRatePerMinute),
			handlers.CreateContribution)
	}

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		protected.GET("/profile", handlers.GetProfile)
		protected.PUT("/users/:id", handlers.UpdateUser)
		protected.POST("/users/picture", handlers.SetProfilePicture)

		eventProtected := protected.Group("/events")
		{
			eventProtected.POST("", handlers.CreateEvent)
			eventProtected.PUT("/:id", handlers.UpdateEvent)
			eventProtected.PUT("/:id/activate", handlers.ActivateEvent)
			eventProtected.DELETE("/:id", handlers.DeleteEvent)
			eventProtected.POST("/:id/images", handlers.AddEventImage)
			eventProtected.DELETE("/:id/images/:photoId", handlers.DeleteEventImage)
		}

		trickProtected := protected.Group("/tricks")
		{
			trickProtected.POST("", handlers.CreateTrick)
			trickProtected.PUT("/:id", handlers.UpdateTrick)
			trickProtected.DELETE("/:id", handlers.DeleteTrick)
		}

		spotProtected := protected.Group("/spots")
		{
			spotProtected.POST("", handlers.CreateSpot)
			spotProtected.PUT("/:id", handlers.UpdateSpot)
			spotProtected.DELETE("/:id", handlers.DeleteSpot)
			spotProtected.POST("/:id/images", handlers.AddSpotImage)
			spotProtected.DELETE("/:id/images/:photoId", handlers.DeleteSpotImage)
		}

		playerProtected := protected.Group("/players")
		{
			playerProtected.GET("", handlers.ListPlayers)
			playerProtected.GET("/:id", handlers.GetPlayer)
			playerProtected.POST("", handlers.CreatePlayer)
			playerProtected.PUT("/:id", handlers.UpdatePlayer)
			playerProtected.DELETE("/:id", handlers.DeletePlayer)
		}

		fanProtected := protected.Group("/fans")
		{
			fanProtected.GET("", handlers.ListFans)
			fanProtected.GET("/:id", handlers.GetFan)
			fanProtected.POST("", handlers.CreateFan)
			fanProtected.PUT("/:id", handlers.UpdateFan)
			fanProtected.DELETE("/:id", handlers.DeleteFan)
		}

		protected.PUT("/relations/:relation/:ownerId/:memberId", handlers.AttachMember)
		protected.DELETE("/relations/:relation/:ownerId/:memberId", handlers.DetachMember)
	}
}
