package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sunnydayy-backend/internal/config"
	"sunnydayy-backend/internal/database"
	"sunnydayy-backend/internal/handler"
	"sunnydayy-backend/internal/logger"
	"sunnydayy-backend/internal/middleware"
	"sunnydayy-backend/internal/notify"
	"sunnydayy-backend/internal/payment"
	"sunnydayy-backend/internal/repository"
	"sunnydayy-backend/internal/service"

	"go.uber.org/zap"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatal("Failed to create logger: ", err)
	}
	defer zlog.Sync()

	db, err := database.Connect(context.Background(), cfg.MongoURI, cfg.MongoDatabase, cfg.MongoConnectTimeout)
	if err != nil {
		zlog.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	indexCtx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnectTimeout)
	if err := database.EnsureIndexes(indexCtx, db.Database()); err != nil {
		zlog.Warn("Failed to ensure indexes", zap.Error(err))
	}
	cancel()
	zlog.Info("Connected to MongoDB", zap.String("database", cfg.MongoDatabase))

	mailer := notify.NewMailer(cfg.SMTP, zlog)
	gateway := payment.NewRazorpay(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, zlog)

	orderRepo := repository.NewOrderRepository(db.Collection(database.OrdersCollection))
	productRepo := repository.NewProductRepository(db.Collection(database.ProductsCollection))
	categoryRepo := repository.NewCategoryRepository(db.Collection(database.CategoriesCollection))
	cartRepo := repository.NewCartRepository(db.Collection(database.CartsCollection))
	wishlistRepo := repository.NewWishlistRepository(db.Collection(database.WishlistsCollection))

	orderService := service.NewOrderService(orderRepo, gateway, mailer, zlog)
	catalogService := service.NewCatalogService(productRepo, categoryRepo, zlog)
	cartService := service.NewCartService(cartRepo, wishlistRepo)

	limiter := middleware.NewRateLimiter(cfg.CheckoutRateLimit, cfg.CheckoutRateBurst, 10*time.Minute)
	stopCleanup := make(chan struct{})
	limiter.StartCleanup(time.Minute, stopCleanup)

	router := handler.NewRouter(handler.RouterConfig{
		AllowedOrigins:  cfg.AllowedOrigins,
		JWTSecret:       []byte(cfg.JWTSecret),
		CheckoutLimiter: limiter,
		Ping:            db.Ping,
	}, handler.Handlers{
		Orders:  handler.NewOrderHandler(orderService, zlog),
		Catalog: handler.NewCatalogHandler(catalogService, zlog),
		Carts:   handler.NewCartHandler(cartService, zlog),
		Auth: handler.NewAuthHandler(handler.AdminCredentials{
			Email:        cfg.AdminEmail,
			PasswordHash: cfg.AdminPasswordHash,
			JWTSecret:    []byte(cfg.JWTSecret),
		}, zlog),
	}, zlog)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("Starting HTTP server", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("Server shutdown failed", zap.Error(err))
	}
	close(stopCleanup)
	mailer.Wait()

	if err := db.Close(shutdownCtx); err != nil {
		zlog.Error("Failed to disconnect from MongoDB", zap.Error(err))
	}
	zlog.Info("Server stopped")
}
