// File: autolot/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"autolot/config"
	"autolot/database"
	catalogRepo "autolot/database/repository/catalog"
	listingRepo "autolot/database/repository/listing"
	"autolot/handlers"
	"autolot/middleware"
	"autolot/routes"
	"autolot/services/catalog"
	"autolot/services/inventory"
	"autolot/services/storage"
	"autolot/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	fileStore, err := storage.NewLocalStorage(config.AppConfig.UploadDir, utils.UploadURLPrefix)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize local file storage: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	lstRepo := listingRepo.NewMongoListingRepo()
	catRepo := catalogRepo.NewMongoCatalogRepo()

	// services.
	inventoryService, err := inventory.NewDefaultInventoryService(lstRepo, catRepo, fileStore)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize inventory service: %v", err)
	}

	catalogCache := catalog.NewRedisCatalogCache(
		utils.GetCacheClient(),
		time.Duration(config.AppConfig.CatalogCacheTTLMin)*time.Minute,
	)
	catalogService, err := catalog.NewDefaultCatalogService(catRepo, catalogCache)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize catalog service: %v", err)
	}

	inventoryHandler := handlers.NewInventoryHandler(inventoryService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// Listing endpoints.
		SearchListingsHandler:    inventoryHandler.SearchListingsHandler,
		UploadListingHandler:     inventoryHandler.UploadListingHandler,
		GetListingByIDHandler:    inventoryHandler.GetListingByIDHandler,
		ReplaceListingHandler:    inventoryHandler.ReplaceListingHandler,
		GetListingsByPageHandler: inventoryHandler.GetListingsByPageHandler,

		// Catalog endpoints.
		GetFilterCatalogHandler: catalogHandler.GetFilterCatalogHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Serve uploaded images as static content.
	router.Static(utils.UploadURLPrefix, config.AppConfig.UploadDir)

	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
