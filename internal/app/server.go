package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"lsers_hub_backend/internal/ai"
	"lsers_hub_backend/internal/auth"
	"lsers_hub_backend/internal/booking"
	"lsers_hub_backend/internal/category"
	"lsers_hub_backend/internal/chat"
	"lsers_hub_backend/internal/common"
	"lsers_hub_backend/internal/config"
	"lsers_hub_backend/internal/favorites"
	"lsers_hub_backend/internal/jobs"
	"lsers_hub_backend/internal/middleware"
	"lsers_hub_backend/internal/product"
	"lsers_hub_backend/internal/property"
	"lsers_hub_backend/internal/provider"
	"lsers_hub_backend/internal/review"
	"lsers_hub_backend/internal/rewards"
	"lsers_hub_backend/internal/sitecontent"
	"lsers_hub_backend/internal/upload"
	"lsers_hub_backend/internal/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers bundles every HTTP handler the server mounts.
type Handlers struct {
	Auth        *auth.Handler
	User        *user.Handler
	Category    *category.Handler
	Provider    *provider.Handler
	Review      *review.Handler
	Product     *product.Handler
	Booking     *booking.Handler
	Chat        *chat.Handler
	Favorites   *favorites.Handler
	Rewards     *rewards.Handler
	AI          *ai.Handler
	SiteContent *sitecontent.Handler
	Property    *property.Handler
	Upload      *upload.Handler
}

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	chats         chat.Service
	assetSweepJob *jobs.AssetSweepJob
}

// NewServer creates a new instance of our application server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	handlers *Handlers,
	sessions middleware.SessionSource,
	chats chat.Service,
	assetSweepJob *jobs.AssetSweepJob,
) (*Server, error) {
	gin.SetMode(cfg.GinMode)
	router := gin.New()

	// --- Global Middleware ---
	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", common.DeviceIDHeader, middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	deviceMW := middleware.DeviceMiddleware(sessions, logger.Named("DeviceMiddleware"))
	unlockedMW := middleware.RequireUnlocked(logger.Named("RequireUnlocked"))
	adminMW := middleware.RequireAdmin(logger.Named("RequireAdmin"))
	aiLimitMW := middleware.RateLimit(
		middleware.NewDeviceRateLimiter(cfg.AIRatePerMinute, cfg.AIRateBurst),
		logger.Named("RateLimit"),
	)

	// --- Setup Routes ---
	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "LSERS Hub API is healthy!"})
	}
	router.GET("/health", health)

	v1 := router.Group("/api/v1")
	v1.GET("/health", health)

	api := v1.Group("", deviceMW)
	handlers.Auth.RegisterRoutes(api)
	handlers.User.RegisterRoutes(api, unlockedMW)
	handlers.Category.RegisterRoutes(api)
	handlers.Provider.RegisterRoutes(api, unlockedMW, adminMW)
	handlers.Review.RegisterRoutes(api, unlockedMW)
	handlers.Product.RegisterRoutes(api, unlockedMW)
	handlers.Booking.RegisterRoutes(api, unlockedMW)
	handlers.Chat.RegisterRoutes(api, unlockedMW, adminMW)
	handlers.Favorites.RegisterRoutes(api, unlockedMW)
	handlers.Rewards.RegisterRoutes(api)
	handlers.AI.RegisterRoutes(api, aiLimitMW)
	handlers.SiteContent.RegisterRoutes(api, adminMW)
	handlers.Property.RegisterRoutes(api)
	handlers.Upload.RegisterRoutes(api)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	timeout := cfg.ServerTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: timeout,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer:    httpServer,
		router:        router,
		cfg:           cfg,
		logger:        logger,
		chats:         chats,
		assetSweepJob: assetSweepJob,
	}, nil
}

// Router exposes the gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine { return s.router }

func (s *Server) Start() error {
	if s.assetSweepJob != nil {
		if err := s.assetSweepJob.SetupAndStart(); err != nil {
			s.logger.Error("Failed to setup and start asset sweep job", zap.Error(err))
		}
	} else {
		s.logger.Info("Asset sweep job is not configured, skipping start.")
	}

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	if s.assetSweepJob != nil {
		s.assetSweepJob.Stop()
	}
	err := s.httpServer.Shutdown(ctx)
	if s.chats != nil {
		s.chats.Shutdown()
	}
	return err
}
