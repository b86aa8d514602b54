package server

import (
	"vitalmonitor/auth"
	"vitalmonitor/cache"
	"vitalmonitor/confs"
	"vitalmonitor/db"
	"vitalmonitor/handlers"
	httpHandler "vitalmonitor/handlers/http"
	"vitalmonitor/repositories"
	"vitalmonitor/services"
	"vitalmonitor/usecases"
	"vitalmonitor/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	app    *gin.Engine
	cfg    *confs.Config
	db     db.Database
	issuer *auth.Issuer
	log    *zap.Logger
}

func NewServer(cfg *confs.Config, database db.Database, issuer *auth.Issuer, log *zap.Logger) *Server {
	return &Server{
		app:    gin.New(),
		cfg:    cfg,
		db:     database,
		issuer: issuer,
		log:    log,
	}
}

func (s *Server) Start() error {
	s.app.Use(gin.Recovery())

	// Setup CORS middleware
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	config.AllowCredentials = false
	s.app.Use(cors.New(config))

	// Setup healthcheck route
	s.app.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// Initialize repositories
	userRepo := repositories.NewUserPgRepository(s.db)
	deviceRepo := repositories.NewDevicePgRepository(s.db)
	readingRepo := repositories.NewReadingPgRepository(s.db)

	// Initialize use cases
	userUseCase := usecases.NewUserUseCase(userRepo, deviceRepo)
	deviceUseCase := usecases.NewDeviceUseCase(deviceRepo, readingRepo)

	// Telemetry buffer and periodic flusher
	telemetry := cache.NewTelemetryCache()
	flusher := services.NewFlusher(telemetry, readingRepo, s.cfg.FlushInterval, s.log)
	flusher.Start()

	// Guard and handlers
	guard := httpHandler.NewGuard(s.issuer, userRepo, s.cfg.JWTCookieName, s.log)
	authHandler := httpHandler.NewAuthHandler(userUseCase, s.issuer, s.cfg.JWTCookieName, s.log)
	userHandler := httpHandler.NewUserHandler(userUseCase, s.log)
	deviceHandler := httpHandler.NewDeviceHandler(deviceUseCase, telemetry, s.log)

	// Websocket manager and telemetry ingest
	manager := ws.NewManager()
	wsHandler := handlers.NewWSHandler(manager, deviceUseCase, telemetry, s.log)

	// Setup API routes
	api := s.app.Group("/api/v1")
	{
		// Authentication routes
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/logout", authHandler.Logout)
		}

		// User routes; the id-addressed ones are self-or-admin
		users := api.Group("/users")
		{
			users.GET("", userHandler.GetAllUsers)
			users.GET("/pagination", userHandler.GetUserPagination)

			users.GET("/:userId", guard.Authenticate(), guard.RequireSelfOrAdmin("userId"), userHandler.GetUserByID)
			users.PUT("/:userId", guard.Authenticate(), guard.RequireSelfOrAdmin("userId"), userHandler.UpdateUser)
			users.DELETE("/:userId", guard.Authenticate(), guard.RequireSelfOrAdmin("userId"), userHandler.DeleteUser)
			users.PATCH("/:userId/devices", guard.Authenticate(), guard.RequireSelfOrAdmin("userId"), userHandler.PairDevice)
			users.DELETE("/:userId/devices", guard.Authenticate(), guard.RequireSelfOrAdmin("userId"), userHandler.DeleteUserDevice)
		}

		// Device routes (device self-registration and telemetry)
		devices := api.Group("/devices")
		{
			devices.GET("/connected", wsHandler.GetConnectedDevices)
			devices.GET("", deviceHandler.GetAllDevices)
			devices.POST("", deviceHandler.CreateDevice)
			devices.GET("/:deviceId", deviceHandler.GetDeviceByID)
			devices.PUT("/:deviceId", deviceHandler.UpdateDevice)
			devices.DELETE("/:deviceId", deviceHandler.DeleteDevice)
			devices.GET("/:deviceId/readings", deviceHandler.GetReadings)
		}
	}

	s.app.GET("/ws", wsHandler.HandleDeviceWS)

	// Catch endpoint not found
	s.app.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"apiVersion": "1.0",
			"error":      gin.H{"code": 404, "message": "not found"},
		})
	})

	s.log.Info("server listening", zap.String("addr", s.cfg.Addr()))
	return s.app.Run(s.cfg.Addr())
}
