package router

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/restomart/internal/config"
	"github.com/polkiloo/restomart/internal/domain/model"
	"github.com/polkiloo/restomart/internal/server/http/handlers"
	"github.com/polkiloo/restomart/internal/server/http/middleware"
)

// StreamPath is the SSE endpoint; it is never gzipped so events are flushed as they happen.
const StreamPath = "/api/orders/today/stream"

var checkoutRoles = []model.Role{model.RoleVendeur, model.RoleAdmin, model.RoleSuperviseur}

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.RestoFacade, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	if len(cfg.CORSOrigins) > 0 {
		engine.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{StreamPath})))

	authHandler := handlers.NewAuthHandler(facade)
	catalogHandler := handlers.NewCatalogHandler(facade)
	checkoutHandler := handlers.NewCheckoutHandler(facade)
	ordersHandler := handlers.NewOrdersHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade)

	engine.GET("/healthz", healthHandler.Check)

	api := engine.Group("/api")
	api.POST("/user/login", authHandler.Login)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade))
	authed.GET("/user/navigation", authHandler.Navigation)
	authed.POST("/user/logout", authHandler.Logout)
	authed.POST("/user/register", middleware.RoleRequired(model.RoleAdmin), authHandler.Register)
	authed.GET("/catalog", catalogHandler.List)

	orders := authed.Group("/orders/today")
	orders.GET("", ordersHandler.Today)
	orders.POST("/refresh", ordersHandler.Refresh)
	orders.GET("/summary", ordersHandler.Summary)
	orders.GET("/stream", ordersHandler.Stream)

	co := authed.Group("/checkout")
	co.Use(middleware.RoleRequired(checkoutRoles...))
	co.GET("", checkoutHandler.View)
	co.DELETE("", checkoutHandler.Cancel)
	co.PUT("/items/:id", checkoutHandler.SetQuantity)
	co.DELETE("/items/:id", checkoutHandler.RemoveItem)
	co.PATCH("/settlement", checkoutHandler.UpdateSettlement)
	co.POST("/submit", checkoutHandler.Submit)

	return engine
}
