package handler

import (
	"context"
	"net/http"
	"time"

	"sunnydayy-backend/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RouterConfig struct {
	AllowedOrigins  []string
	JWTSecret       []byte
	CheckoutLimiter *middleware.RateLimiter
	// Ping reports whether the database is reachable.
	Ping func(ctx context.Context) error
}

type Handlers struct {
	Orders  *OrderHandler
	Catalog *CatalogHandler
	Carts   *CartHandler
	Auth    *AuthHandler
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", userIDHeader, middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			return cfg
		}
	}
	cfg.AllowCredentials = true
	return cfg
}

func NewRouter(cfg RouterConfig, h Handlers, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Route not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"message": "Method not allowed"})
	})

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		if cfg.Ping != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := cfg.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "database": "unreachable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	limit := func(c *gin.Context) { c.Next() }
	if cfg.CheckoutLimiter != nil {
		limit = cfg.CheckoutLimiter.Middleware()
	}

	// Checkout
	api.POST("/orders/create", limit, h.Orders.CreateOrder)
	api.POST("/orders/verify", limit, h.Orders.VerifyPayment)
	api.GET("/orders/:id", h.Orders.GetOrder)
	api.GET("/users/:userId/orders", h.Orders.ListUserOrders)

	// Catalog
	api.GET("/products", h.Catalog.ListProducts)
	api.GET("/products/:id", h.Catalog.GetProduct)
	api.GET("/categories", h.Catalog.ListCategories)
	api.GET("/categories/:id", h.Catalog.GetCategory)

	// Cart
	api.GET("/cart", h.Carts.GetCart)
	api.POST("/cart", h.Carts.AddItem)
	api.DELETE("/cart", h.Carts.ClearCart)
	api.PATCH("/cart/:id", h.Carts.UpdateItem)
	api.DELETE("/cart/:id", h.Carts.RemoveItem)

	// Wishlist
	api.GET("/wishlist", h.Carts.GetWishlist)
	api.POST("/wishlist", h.Carts.AddToWishlist)
	api.DELETE("/wishlist/:productId", h.Carts.RemoveFromWishlist)

	// Admin
	api.POST("/admin/login", limit, h.Auth.Login)
	admin := api.Group("/admin", middleware.AdminAuth(cfg.JWTSecret))
	{
		admin.GET("/orders", h.Orders.AdminListOrders)
		admin.GET("/orders/:id", h.Orders.GetOrder)
		admin.PATCH("/orders/:id", h.Orders.AdminUpdateOrder)

		admin.POST("/products", h.Catalog.CreateProduct)
		admin.PUT("/products/:id", h.Catalog.UpdateProduct)
		admin.DELETE("/products/:id", h.Catalog.DeleteProduct)

		admin.POST("/categories", h.Catalog.CreateCategory)
		admin.PUT("/categories/:id", h.Catalog.UpdateCategory)
		admin.DELETE("/categories/:id", h.Catalog.DeleteCategory)
	}

	return r
}
