package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/coffee-shop-api/config"
	"github.com/kendall-kelly/coffee-shop-api/controllers"
	"github.com/kendall-kelly/coffee-shop-api/logging"
	"github.com/kendall-kelly/coffee-shop-api/middleware"
	"github.com/kendall-kelly/coffee-shop-api/services"
	"github.com/kendall-kelly/coffee-shop-api/views"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	logging.Info().Str("env", cfg.GoEnv).Msg("Starting Coffee Shop server")

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := newOrderStore(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to set up order store")
	}
	logging.Info().Str("store", cfg.OrderStore).Msg("Order store ready")

	// Rule table integrity is checked here, before the server accepts requests
	rules := services.MustNewRuleTable(services.DefaultRules()...)
	orders := services.NewOrderService(rules, store).WithSessionTTL(cfg.SessionTTL())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go orders.RunSessionSweeper(ctx, cfg.SessionSweepInterval)

	router, err := setupRouter(cfg, orders)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to set up router")
	}

	addr := ":" + cfg.Port
	logging.Info().Str("addr", addr).Msgf("Server is running on http://localhost%s", addr)
	if err := router.Run(addr); err != nil {
		logging.Fatal().Err(err).Msg("Failed to start server")
	}
}

// newOrderStore builds the order store selected by ORDER_STORE
func newOrderStore(cfg *config.Config) (services.OrderStore, error) {
	switch cfg.OrderStore {
	case config.OrderStoreSQLite:
		db, err := config.ConnectDatabase(cfg)
		if err != nil {
			return nil, err
		}
		return services.NewGormOrderStore(db)
	case config.OrderStoreMemory:
		return services.NewMemoryOrderStore(), nil
	default:
		return nil, fmt.Errorf("unknown order store %q", cfg.OrderStore)
	}
}

// setupRouter wires every route of the shop
func setupRouter(cfg *config.Config, orders *services.OrderService) (*gin.Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	tmpl, err := views.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())
	router.SetHTMLTemplate(tmpl)

	if len(cfg.CORSAllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete},
			AllowHeaders:     []string{"Origin", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	menuController := controllers.NewMenuController(orders.Rules())
	orderController := controllers.NewOrderController(orders, cfg)
	pageController := controllers.NewPageController(orders)

	session := middleware.Session(cfg)

	router.GET("/", session, pageController.ShowPage)
	router.POST("/order", session, pageController.SubmitOrder)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.GET("/menu", menuController.GetMenu)
		v1.GET("/rules", menuController.ListRules)
		v1.GET("/recommendations", menuController.GetRecommendation)

		sessionRoutes := v1.Group("", session)
		{
			sessionRoutes.POST("/orders", orderController.CreateOrder)
			sessionRoutes.GET("/orders", orderController.ListOrders)
			sessionRoutes.GET("/orders/latest", orderController.GetLatestOrder)
			sessionRoutes.GET("/orders/summary", orderController.GetOrderSummary)
			sessionRoutes.DELETE("/session", orderController.EndSession)
		}
	}

	return router, nil
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Coffee Shop API is running",
	})
}
