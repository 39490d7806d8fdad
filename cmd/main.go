package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"dinetap/internal/analytics"
	"dinetap/internal/caching"
	"dinetap/internal/config"
	"dinetap/internal/database"
	"dinetap/internal/handlers"
	"dinetap/internal/jobs/background"
	"dinetap/internal/middleware"
	"dinetap/internal/models"
	"dinetap/internal/repositories"
	"dinetap/internal/services"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	cacheSvc := caching.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	minioSvc, err := services.NewMinioService(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}
	if err := minioSvc.EnsureBucketExists(ctx, cfg.ImageBucket); err != nil {
		log.Fatalf("Failed to ensure image bucket: %v", err)
	}

	// Repositories
	tenantRepo := repositories.NewTenantRepo(pool)
	accountRepo := repositories.NewAccountRepo(pool)
	menuRepo := repositories.NewMenuItemRepo(pool)
	orderRepo := repositories.NewOrderRepo(pool)
	ratingRepo := repositories.NewRatingRepo(pool)

	// Services
	tenantSvc := services.NewTenantService(tenantRepo)
	accountSvc := services.NewAccountService(accountRepo, tenantSvc)
	menuSvc := services.NewMenuService(menuRepo, tenantSvc, cacheSvc, minioSvc, cfg.ImageBucket)
	orderSvc := services.NewOrderService(orderRepo, menuRepo, tenantSvc, cacheSvc)
	ratingSvc := services.NewRatingService(ratingRepo, orderRepo, tenantSvc, cacheSvc)
	sessionSvc := services.NewSessionService(tenantSvc, cacheSvc)
	analyticsSvc := analytics.NewService(tenantRepo, orderRepo, ratingRepo, cacheSvc)

	// Handlers
	healthHandlers := handlers.NewHealthHandlers(pool)
	tenantHandlers := handlers.NewTenantHandlers(tenantSvc)
	sessionHandlers := handlers.NewSessionHandlers(sessionSvc)
	menuHandlers := handlers.NewMenuHandlers(menuSvc, sessionSvc)
	orderHandlers := handlers.NewOrderHandlers(orderSvc, sessionSvc)
	ratingHandlers := handlers.NewRatingHandlers(ratingSvc, sessionSvc)
	analyticsHandlers := handlers.NewAnalyticsHandlers(analyticsSvc)
	accountHandlers := handlers.NewAccountHandlers(accountSvc)

	scheduler := background.NewJobScheduler(analyticsSvc, cacheSvc, ratingRepo, tenantSvc)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start job scheduler: %v", err)
	}
	defer scheduler.Stop()

	e := echo.New()
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Pre(echomiddleware.RemoveTrailingSlash())

	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/ready", healthHandlers.ReadinessCheck)

	jwtConfig := echojwt.Config{
		SigningKey: []byte(cfg.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(middleware.JWTCustomClaims)
		},
	}

	// Customer writes accept but do not require a login token. A verified
	// token binds the order or rating to the account; no token keeps the
	// caller anonymous on their table session.
	optionalJWT := jwtConfig
	optionalJWT.ContinueOnIgnoredError = true
	optionalJWT.ErrorHandler = func(c echo.Context, err error) error {
		var extractionErr *echojwt.TokenExtractionError
		if errors.As(err, &extractionErr) {
			return nil
		}
		return echojwt.ErrJWTInvalid.WithInternal(err)
	}
	optionalAuth := []echo.MiddlewareFunc{echojwt.WithConfig(optionalJWT), middleware.LoadClaimsIfPresent()}

	// Customer surface. Tenant scope comes from the table session token,
	// not the JWT, so these routes stay outside the authenticated groups.
	e.POST("/table-sessions", sessionHandlers.StartSession)
	e.DELETE("/table-sessions", sessionHandlers.EndSession)
	e.GET("/tenants/:id", tenantHandlers.GetTenant)
	e.GET("/tenants/:id/tables", tenantHandlers.GetTableCount)
	e.GET("/menu", menuHandlers.ListMenu)
	e.POST("/tenants", tenantHandlers.CreateTenant)
	e.POST("/orders", orderHandlers.CreateOrder, optionalAuth...)
	e.GET("/orders/:id", orderHandlers.GetOrder)
	e.POST("/orders/:id/ratings", ratingHandlers.SubmitRatings, optionalAuth...)
	e.GET("/orders/:id/ratings", ratingHandlers.GetOrderRatings)
	e.POST("/accounts", accountHandlers.RegisterCustomer)

	// Payment provider webhook, verified against the provider's JWKS.
	if cfg.PaymentJWKSURL != "" {
		jwks, err := keyfunc.Get(cfg.PaymentJWKSURL, keyfunc.Options{
			Ctx:             ctx,
			RefreshInterval: time.Hour,
			RefreshErrorHandler: func(err error) {
				log.Printf("Failed to refresh payment JWKS: %v", err)
			},
		})
		if err != nil {
			log.Fatalf("Failed to load payment JWKS from %s: %v", cfg.PaymentJWKSURL, err)
		}
		defer jwks.EndBackground()

		webhookHandlers := handlers.NewWebhookHandlers(orderSvc, jwks.Keyfunc)
		e.POST("/webhooks/payments", webhookHandlers.PaymentCompleted)
	} else {
		log.Printf("PAYMENT_JWKS_URL not set, payment webhook disabled")
	}

	// Staff surface, scoped to the tenant carried in the JWT.
	staff := e.Group("/staff", echojwt.WithConfig(jwtConfig), middleware.LoadClaims())
	staff.GET("/menu", menuHandlers.ListMenuForStaff, middleware.RequireRole(models.RoleOwner, models.RoleStaff, models.RoleKitchen))
	staff.POST("/menu", menuHandlers.CreateMenuItem, middleware.RequireRole(models.RoleOwner, models.RoleStaff))
	staff.PUT("/menu/:id", menuHandlers.UpdateMenuItem, middleware.RequireRole(models.RoleOwner, models.RoleStaff))
	staff.PUT("/menu/:id/stock", menuHandlers.SetMenuItemStock, middleware.RequireRole(models.RoleOwner, models.RoleStaff, models.RoleKitchen))
	staff.DELETE("/menu/:id", menuHandlers.DeleteMenuItem, middleware.RequireRole(models.RoleOwner))
	staff.GET("/orders", orderHandlers.ListOrders, middleware.RequireRole(models.RoleOwner, models.RoleStaff, models.RoleKitchen))
	staff.GET("/orders/:id", orderHandlers.GetOrderForStaff, middleware.RequireRole(models.RoleOwner, models.RoleStaff, models.RoleKitchen))
	staff.PUT("/orders/:id/status", orderHandlers.UpdateOrderStatus, middleware.RequireRole(models.RoleOwner, models.RoleStaff, models.RoleKitchen))
	staff.GET("/analytics/dashboard", analyticsHandlers.GetDashboard, middleware.RequireRole(models.RoleOwner, models.RoleStaff))
	staff.PUT("/tenant", tenantHandlers.UpdateTenant, middleware.RequireRole(models.RoleOwner))
	staff.DELETE("/tenant", tenantHandlers.DeleteTenant, middleware.RequireRole(models.RoleOwner))
	staff.GET("/accounts", accountHandlers.ListStaff, middleware.RequireRole(models.RoleOwner))
	staff.POST("/accounts", accountHandlers.CreateStaff, middleware.RequireRole(models.RoleOwner))
	staff.DELETE("/accounts/:id", accountHandlers.RemoveStaff, middleware.RequireRole(models.RoleOwner))

	// Logged-in customer surface.
	me := e.Group("/me", echojwt.WithConfig(jwtConfig), middleware.LoadClaims())
	me.GET("/profile", accountHandlers.GetProfile)
	me.GET("/orders", orderHandlers.ListMyOrders, middleware.RequireRole(models.RoleCustomer))

	log.Fatal(e.Start(fmt.Sprintf(":%d", cfg.Port)))
}
