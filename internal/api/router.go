package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/material-mover/marketplace-api/docs"
	"github.com/material-mover/marketplace-api/internal/api/handler"
	"github.com/material-mover/marketplace-api/internal/api/middleware"
	"github.com/material-mover/marketplace-api/internal/core/domain"
	"github.com/material-mover/marketplace-api/internal/core/ports"
	"github.com/material-mover/marketplace-api/internal/core/service"
	"github.com/material-mover/marketplace-api/internal/core/token"
	"github.com/material-mover/marketplace-api/internal/infrastructure/config"
	mongodb "github.com/material-mover/marketplace-api/internal/infrastructure/db/mongo"
	redisdb "github.com/material-mover/marketplace-api/internal/infrastructure/db/redis"
	"github.com/material-mover/marketplace-api/internal/infrastructure/search"
)

const (
	authRateLimit  = 20
	authRateWindow = time.Minute
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("marketplace"))

	// --- Dependencies ---
	codec := token.NewCodec(cfg.JWTSecret, cfg.TokenTTL)

	userRepo := mongodb.NewAuthRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	txRunner := mongodb.NewTxRunner(db.Client())

	var delegate ports.SearchDelegate
	if cfg.SearchWebhookURL != "" {
		delegate = search.NewDelegateClient(cfg.SearchWebhookURL)
	}

	authService := service.NewAuthService(userRepo, productRepo, txRunner, codec, log)
	productService := service.NewProductService(productRepo, log)
	searchService := service.NewSearchService(delegate, productRepo, cfg.SearchTimeout, log)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService, searchService)

	public := middleware.Guard(codec, log)
	sellers := middleware.Guard(codec, log, domain.RoleSeller, domain.RoleAdmin)
	admins := middleware.Guard(codec, log, domain.RoleAdmin)
	authLimit := middleware.RateLimit(redisdb.NewAttemptCounter(rdb), log, "auth", authRateLimit, authRateWindow)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/signup", authHandler.Signup, authLimit)
	auth.POST("/login", authHandler.Login, authLimit)
	auth.GET("/users", authHandler.ListUsers, admins)
	auth.POST("/create-user", authHandler.CreateUser, admins)
	auth.POST("/update-role", authHandler.UpdateRole, admins)
	auth.DELETE("/users/:id", authHandler.DeleteUser, admins)

	// --- Product routes ---
	// Public routes still run the guard so a valid token attaches an identity
	// (contact-field visibility depends on it).
	products := e.Group("/api/products")
	products.POST("/search", productHandler.Search, public)
	products.GET("/categories", productHandler.Categories, public)
	products.GET("", productHandler.List, public)
	products.GET("/my", productHandler.ListMine, sellers)
	products.GET("/:id", productHandler.Get, public)
	products.POST("", productHandler.Create, sellers)
	products.PUT("/:id", productHandler.Update, sellers)
	products.DELETE("/:id", productHandler.Delete, sellers)

	// --- Health probes, metrics, docs ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
