package main

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata" // CAFE_TIMEZONE must resolve in minimal containers

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kendall-kelly/cafe-tropis-api/config"
	"github.com/kendall-kelly/cafe-tropis-api/controllers"
	"github.com/kendall-kelly/cafe-tropis-api/logger"
	"github.com/kendall-kelly/cafe-tropis-api/middleware"
	"github.com/kendall-kelly/cafe-tropis-api/repository"
	"github.com/kendall-kelly/cafe-tropis-api/services"
	"github.com/kendall-kelly/cafe-tropis-api/telemetry"
)

const serviceName = "cafe-tropis-api"

// dependencies are the collaborators that differ between production and tests
type dependencies struct {
	db        *gorm.DB
	images    services.ImageService // nil when no bucket is configured
	sessions  services.SessionStore
	events    services.EventPublisher
	auth      controllers.StaffAuthenticator
	staffAuth []gin.HandlerFunc
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog := logger.New(serviceName, cfg.LogLevel)
	appLog.Info("startup", "", "Starting Cafe Tropis API server", slog.String("env", cfg.GoEnv))

	shutdownTracing, err := telemetry.Init(serviceName, cfg.TracingEnabled, os.Stdout)
	if err != nil {
		log.Fatalf("Failed to initialise tracing: %v", err)
	}

	ctx := context.Background()
	deps, cleanup, err := buildDependencies(ctx, cfg, appLog)
	if err != nil {
		log.Fatalf("Failed to initialise dependencies: %v", err)
	}
	defer cleanup()

	router := setupRouter(cfg, appLog, deps)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           telemetry.Handler(serviceName, router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLog.Info("startup", "", "Server is listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLog.Info("shutdown", "", "Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLog.Error("shutdown", "", "Server forced to shut down", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		appLog.Warn("shutdown", "", "Failed to flush traces", err)
	}
}

// buildDependencies connects every external system named in cfg. The returned
// cleanup releases them in reverse order.
func buildDependencies(ctx context.Context, cfg *config.Config, appLog *logger.Logger) (*dependencies, func(), error) {
	var closers []io.Closer
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i].Close(); err != nil {
				appLog.Warn("shutdown", "", "Failed to close dependency", err)
			}
		}
	}
	fail := func(err error) (*dependencies, func(), error) {
		cleanup()
		return nil, nil, err
	}

	db, err := config.ConnectDatabase(cfg.DatabaseURL)
	if err != nil {
		return fail(err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fail(err)
	}
	closers = append(closers, sqlDB)

	if err := config.Migrate(db); err != nil {
		return fail(err)
	}
	appLog.Info("startup", "", "Database migration completed successfully")

	deps := &dependencies{
		db:   db,
		auth: services.NewAuth0Service(cfg),
	}

	if cfg.AWSS3Bucket != "" {
		s3Service, err := services.NewS3Service(ctx, cfg)
		if err != nil {
			return fail(err)
		}
		deps.images = services.NewImageService(s3Service)
	} else {
		appLog.Warn("startup", "", "AWS_S3_BUCKET not set, menu photos are disabled", nil)
	}

	if deps.sessions, err = services.NewSessionStore(ctx, cfg); err != nil {
		return fail(err)
	}
	if closer, ok := deps.sessions.(io.Closer); ok {
		closers = append(closers, closer)
	}

	if deps.events, err = services.NewEventPublisher(cfg); err != nil {
		return fail(err)
	}
	closers = append(closers, deps.events)

	ensureValidToken, err := middleware.EnsureValidToken(cfg, appLog)
	if err != nil {
		return fail(err)
	}
	deps.staffAuth = []gin.HandlerFunc{ensureValidToken}
	if cfg.AdminScope != "" {
		deps.staffAuth = append(deps.staffAuth, middleware.RequireScope(cfg.AdminScope))
	}

	return deps, cleanup, nil
}

// newHandlers wires repositories and services into the controllers
func newHandlers(cfg *config.Config, appLog *logger.Logger, deps *dependencies) *controllers.Handlers {
	items := repository.NewMenuItemRepository(deps.db)
	packages := repository.NewPackageRepository(deps.db)
	orders := repository.NewOrderRepository(deps.db)

	catalog := services.NewCatalogService(items, packages, deps.images, cfg.PromoBundlePrice, appLog)
	orderService := services.NewOrderService(orders, deps.events, cfg.CafeName, cfg.StaffWhatsApp, appLog)
	bookings := services.NewBookingService(deps.sessions, catalog, orderService, cfg.Location(), appLog)

	return &controllers.Handlers{
		Catalog: controllers.NewCatalogController(catalog),
		Booking: controllers.NewBookingController(bookings),
		Orders:  controllers.NewOrderController(services.NewAdminOrderService(orders, deps.events, appLog)),
		Menu:    controllers.NewMenuController(services.NewMenuService(items, packages, deps.images, appLog)),
		Auth:    controllers.NewAuthController(deps.auth),
	}
}

// setupRouter builds the gin engine with middleware and every route
func setupRouter(cfg *config.Config, appLog *logger.Logger, deps *dependencies) *gin.Engine {
	switch {
	case cfg.IsTest():
		gin.SetMode(gin.TestMode)
	case cfg.IsProduction():
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(appLog))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", middleware.RequestIDHeader)
	corsConfig.ExposeHeaders = []string{middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.GET("/database/status", databaseStatus(deps.db))
	}

	newHandlers(cfg, appLog, deps).RegisterRoutes(v1, deps.staffAuth...)
	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Cafe Tropis API is running",
	})
}

// databaseStatus checks database connectivity and reports the dialect in use
func databaseStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to get database instance",
				},
			})
			return
		}

		if err := sqlDB.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_CONNECTION_ERROR",
					"message": "Database connection failed",
				},
			})
			return
		}

		tables, err := db.Migrator().GetTables()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_QUERY_ERROR",
					"message": "Failed to query tables",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Database connected",
			"dialect": db.Dialector.Name(),
			"tables":  tables,
		})
	}
}
