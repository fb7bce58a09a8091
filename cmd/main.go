package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/OussamaERrafif/storefront/config"
	"github.com/OussamaERrafif/storefront/internal/clients"
	"github.com/OussamaERrafif/storefront/internal/delivery"
	"github.com/OussamaERrafif/storefront/internal/usecase"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.LoadConfig(logger)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warnf("Invalid log level '%s', falling back to info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	logger.Info("Starting Catalog Admin Service...")

	// --- Persistence collaborator client ---
	store := clients.NewCatalogHTTPClient(cfg.CatalogAPIURL, cfg.ClientTimeout, logger)
	logger.Infof("Catalog store client initialized for %s", cfg.CatalogAPIURL)

	// --- Dependency Injection ---
	productUseCase := usecase.NewProductUseCase(store, logger)
	categoryUseCase := usecase.NewCategoryUseCase(store, logger)
	logger.Info("Use cases initialized.")

	productHandler := delivery.NewProductHandler(productUseCase, logger)
	categoryHandler := delivery.NewCategoryHandler(categoryUseCase, logger)
	logger.Info("Handlers initialized.")

	router := gin.Default()

	router.Use(gin.Recovery())

	router.Use(func(c *gin.Context) {
		logger.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"ip":     c.ClientIP(),
		}).Info("Request received")
		c.Next()
		logger.WithFields(logrus.Fields{
			"status": c.Writer.Status(),
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Info("Request completed")
	})

	productHandler.RegisterRoutes(router)
	categoryHandler.RegisterRoutes(router)
	logger.Info("API Routes registered.")

	logger.Infof("Starting server on port %s", cfg.HTTPPort)
	if err := router.Run(cfg.HTTPPort); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
