package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/saasdash/dashboard-api/internal/api/handler"
	"github.com/saasdash/dashboard-api/internal/api/middleware"
	"github.com/saasdash/dashboard-api/internal/core/domain"
	"github.com/saasdash/dashboard-api/internal/core/ports"
	"github.com/saasdash/dashboard-api/internal/infrastructure/config"
)

// Dependencies carries everything the router needs. Services are constructed
// in main so the audit dispatcher's lifecycle stays owned by the process.
type Dependencies struct {
	Config  *config.Config
	Log     zerolog.Logger
	Mongo   *mongo.Database
	Redis   *redis.Client
	Limiter middleware.Limiter

	Tokens  middleware.TokenVerifier
	Users   ports.UserRepository
	Tenants ports.TenantRepository

	Auth      ports.AuthService
	UserSvc   ports.UserService
	TenantSvc ports.TenantService
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Gzip())
	e.Use(echomiddleware.BodyLimit("10M"))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{deps.Config.CORSOrigin},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("saasdash"))

	// --- Guards ---
	authenticated := middleware.Authenticate(deps.Tokens, deps.Users)
	adminOnly := middleware.Roles(domain.RoleAdmin)
	tenantAdmin := middleware.TenantAdmin(deps.Tenants)
	activeSubscription := middleware.RequireActiveSubscription(deps.Tenants)

	authLimiter := middleware.RateLimit(deps.Limiter, "auth", deps.Config.RateLimit.AuthMax,
		"Too many authentication attempts, please try again later.", deps.Log)
	apiLimiter := middleware.RateLimit(deps.Limiter, "api", deps.Config.RateLimit.APIMax,
		"Too many API requests, please try again later.", deps.Log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	userHandler := handler.NewUserHandler(deps.UserSvc)
	tenantHandler := handler.NewTenantHandler(deps.TenantSvc)
	healthHandler := handler.NewHealthHandler(deps.Config.Env)
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	// --- Health and diagnostics (no auth, no rate limit) ---
	e.GET("/", healthHandler.Root)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	v1 := e.Group("/api/v1")
	v1.GET("/health", healthHandler.Liveness)
	v1.GET("/status", healthHandler.Status)
	v1.GET("/version", healthHandler.APIVersion)

	// --- Auth routes ---
	auth := v1.Group("/auth", authLimiter)
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.POST("/refresh-token", authHandler.RefreshToken)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.POST("/reset-password", authHandler.ResetPassword)

	// --- User routes ---
	users := v1.Group("/users", apiLimiter, authenticated)
	users.GET("/profile", userHandler.GetProfile)
	users.PUT("/profile", userHandler.UpdateProfile)
	users.DELETE("/profile", userHandler.DeleteProfile)
	users.GET("/settings", userHandler.GetSettings)
	users.PUT("/settings", userHandler.UpdateSettings)
	users.GET("/all", userHandler.ListUsers, adminOnly)
	users.GET("/:id", userHandler.GetUser, adminOnly)
	users.PUT("/:id", userHandler.UpdateUser, adminOnly)
	users.DELETE("/:id", userHandler.DeleteUser, adminOnly)

	// --- Tenant routes ---
	tenants := v1.Group("/tenants", apiLimiter, authenticated)
	tenants.POST("", tenantHandler.Create)
	tenants.GET("/current", tenantHandler.GetCurrent)
	tenants.PUT("/current/settings", tenantHandler.UpdateSettings, tenantAdmin, activeSubscription)
	tenants.PUT("/current/subscription", tenantHandler.UpdateSubscription, tenantAdmin)

	return e
}
