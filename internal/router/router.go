package router

import (
	"time"

	"github.com/rafamossetto/distributor-api/internal/config"
	"github.com/rafamossetto/distributor-api/internal/handler"
	"github.com/rafamossetto/distributor-api/internal/infra"
	"github.com/rafamossetto/distributor-api/internal/middleware"
	"github.com/rafamossetto/distributor-api/internal/repository"
	"github.com/rafamossetto/distributor-api/internal/service"
	"github.com/rafamossetto/distributor-api/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Deps exposes the wired services the worker pool needs. The router owns
// construction so the dependency graph lives in one place.
type Deps struct {
	PriceLists service.PriceListService
	Remits     service.RemitService
	Mailer     *infra.Mailer
	Dispatcher *worker.Dispatcher
}

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, log zerolog.Logger) (*gin.Engine, *Deps) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(cfg.RateLimitPerMinute, time.Minute))

	// ── Infrastructure ───────────────────────────────────────────────────────
	mailer := infra.NewMailer(cfg)
	priceCache := infra.NewPriceCache(rdb, log)

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	productRepo := repository.NewProductRepository(db)
	priceListRepo := repository.NewPriceListRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	routeRepo := repository.NewRouteRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpirationHours, cfg.JWTRefreshHours, log)
	clientSvc := service.NewClientService(clientRepo, log)
	priceListSvc := service.NewPriceListService(priceListRepo, productRepo, dispatcher, priceCache, cfg.RecomputePageSize, log)
	productSvc := service.NewProductService(productRepo, priceListRepo, log)
	orderSvc := service.NewOrderService(orderRepo, clientRepo, log)
	routeSvc := service.NewRouteService(routeRepo, log)
	remitSvc := service.NewRemitService(orderRepo, dispatcher, log)

	// ── Handlers ─────────────────────────────────────────────────────────────
	healthH := handler.NewHealthHandler(db, rdb)
	authH := handler.NewAuthHandler(authSvc)
	clientsH := handler.NewClientsHandler(clientSvc)
	productsH := handler.NewProductsHandler(productSvc)
	priceListsH := handler.NewPriceListsHandler(priceListSvc)
	ordersH := handler.NewOrdersHandler(orderSvc)
	routesH := handler.NewRoutesHandler(routeSvc)
	remitsH := handler.NewRemitsHandler(remitSvc, cfg.PDFStoragePath, log)
	priceCheckH := handler.NewPriceCheckHandler(productSvc, priceCache)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", healthH.Check)

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Price check — no auth required
	r.GET("/v1/price/:code", priceCheckH.GetByCode)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	anyRole := middleware.RequireRole(middleware.RoleAdmin, middleware.RoleUser)
	adminOnly := middleware.RequireRole(middleware.RoleAdmin)

	v1 := r.Group("/v1", jwtMW)
	{
		// Clients
		clients := v1.Group("/clients", anyRole)
		{
			clients.POST("", clientsH.Create)
			clients.GET("", clientsH.List)
			clients.GET("/:id", clientsH.Get)
			clients.PUT("/:id", clientsH.Update)
			clients.DELETE("/:id", clientsH.Delete)
		}

		// Products
		products := v1.Group("/products", anyRole)
		{
			products.POST("", productsH.Create)
			products.GET("", productsH.List)
			products.GET("/:id", productsH.Get)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Delete)
		}

		// Price list tiers — reads for everyone, writes admin only
		v1.GET("/priceLists", anyRole, priceListsH.List)
		priceLists := v1.Group("/priceLists", adminOnly)
		{
			priceLists.POST("", priceListsH.Create)
			priceLists.PUT("", priceListsH.Update)
			priceLists.DELETE("/:number", priceListsH.Delete)
		}

		// Orders
		orders := v1.Group("/orders", anyRole)
		{
			orders.POST("", ordersH.Create)
			orders.GET("", ordersH.List)
			orders.GET("/:id", ordersH.Get)
			orders.PUT("/:id", ordersH.Update)
			orders.DELETE("/:id", ordersH.Delete)
		}
		v1.GET("/orders/user/:userId", adminOnly, ordersH.ListByUser)
		v1.GET("/orders/selectedList/:selectedList", adminOnly, ordersH.ListBySelectedList)

		// Remits — print-ready documents derived from orders
		remits := v1.Group("/remits", anyRole)
		{
			remits.GET("/:id", remitsH.Get)
			remits.GET("/:id/pdf", remitsH.GetPDF)
			remits.POST("/:id/email", remitsH.Email)
		}

		// Delivery routes
		routes := v1.Group("/routes", anyRole)
		{
			routes.POST("", routesH.Create)
			routes.GET("", routesH.List)
			routes.DELETE("/:id", routesH.Delete)
		}

		// User management — admin only
		users := v1.Group("/users", adminOnly)
		{
			users.POST("", authH.CreateUser)
			users.GET("", authH.ListUsers)
			users.GET("/:id", authH.GetUser)
			users.PUT("/:id", authH.UpdateUser)
			users.DELETE("/:id", authH.DeactivateUser)
			users.PATCH("/:id/reactivate", authH.ReactivateUser)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	deps := &Deps{
		PriceLists: priceListSvc,
		Remits:     remitSvc,
		Mailer:     mailer,
		Dispatcher: dispatcher,
	}
	return r, deps
}
