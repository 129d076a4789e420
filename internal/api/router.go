package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/fixware/console/internal/api/handler"
	"github.com/fixware/console/internal/api/middleware"
	"github.com/fixware/console/internal/core/policy"
	"github.com/fixware/console/internal/core/service"
	"github.com/fixware/console/internal/infrastructure/backend"
	"github.com/fixware/console/internal/infrastructure/config"
	"github.com/fixware/console/internal/infrastructure/session"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("console"))

	// --- Dependencies ---
	client := backend.New(backend.Config{
		BaseURL:      cfg.Backend.BaseURL,
		ClientID:     cfg.Backend.ClientID,
		ClientSecret: cfg.Backend.ClientSecret,
		Timeout:      cfg.Backend.Timeout,
	}, log)

	sessions := session.NewRedisStore(rdb, cfg.Session.TTL)

	authService := service.NewAuthService(backend.NewAuthGateway(client), sessions, log)
	orderService := service.NewOrderService(backend.NewOrderGateway(client), backend.NewPaymentGateway(client), sessions, log)
	productService := service.NewProductService(backend.NewProductGateway(client), log)
	userService := service.NewUserService(backend.NewUserGateway(client), log)
	paymentService := service.NewPaymentService(backend.NewPaymentGateway(client), log)

	authHandler := handler.NewAuthHandler(authService, cfg.Session.Secret, cfg.Session.TTL, log)
	dashboardHandler := handler.NewDashboardHandler(orderService, log)
	orderHandler := handler.NewOrderHandler(orderService)
	productHandler := handler.NewProductHandler(productService)
	userHandler := handler.NewUserHandler(userService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	healthHandler := handler.NewHealthHandler(rdb, client)

	e.HTTPErrorHandler = NewHTTPErrorHandler(log, sessions)

	sessionMW := middleware.Session(cfg.Session.Secret, sessions)
	adminOnly := middleware.RequireKinds(policy.KindAdmin)
	canManageOrders := middleware.RequireKinds(policy.KindAdmin, policy.KindClient)

	// --- Observability and health (no auth) ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/healthz", healthHandler.Live)
	e.GET("/readyz", healthHandler.Ready)

	// --- Public auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/recover", authHandler.Recover)
	e.GET("/auth/recover-password/:token", authHandler.RecoverToken)
	e.PUT("/auth/new-password", authHandler.ResetPassword)

	// --- Session-protected routes ---
	authed := e.Group("", sessionMW)
	authed.POST("/auth/logout", authHandler.Logout)
	authed.GET("/me", authHandler.Me)

	authed.GET("/dashboard", dashboardHandler.Index)
	authed.GET("/dashboard/summary", dashboardHandler.Summary)

	authed.GET("/orders/:id", orderHandler.Get)
	authed.POST("/orders", orderHandler.Create, canManageOrders)
	authed.PUT("/orders/:id", orderHandler.Update, canManageOrders)
	authed.DELETE("/orders/:id", orderHandler.Delete, canManageOrders)
	authed.PUT("/orders/:id/status", orderHandler.ChangeStatus, canManageOrders)
	authed.PUT("/orders/:id/delivery", orderHandler.ScheduleDelivery, canManageOrders)
	authed.POST("/orders/:id/payment", orderHandler.RegisterPayment, canManageOrders)

	authed.GET("/products", productHandler.List)
	authed.GET("/products/:id", productHandler.Get)
	authed.POST("/products", productHandler.Create, adminOnly)
	authed.PUT("/products/:id", productHandler.Update, adminOnly)
	authed.DELETE("/products/:id", productHandler.Delete, adminOnly)

	authed.GET("/roles", userHandler.Roles, adminOnly)
	authed.GET("/users", userHandler.List, adminOnly)
	authed.GET("/users/:id", userHandler.Get, adminOnly)
	authed.POST("/users", userHandler.Create, adminOnly)
	authed.PUT("/users/:id", userHandler.Update, adminOnly)
	authed.DELETE("/users/:id", userHandler.Delete, adminOnly)

	authed.GET("/payments", paymentHandler.List, adminOnly)
	authed.PUT("/payments/:id", paymentHandler.Update, adminOnly)
	authed.DELETE("/payments/:id", paymentHandler.Delete, adminOnly)

	return e
}
