package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/karnikjan/EasyEvent/internal/config"
	"github.com/karnikjan/EasyEvent/internal/connect"
	"github.com/karnikjan/EasyEvent/internal/container"
	"github.com/karnikjan/EasyEvent/internal/logger"
	"github.com/karnikjan/EasyEvent/internal/models"
	"github.com/karnikjan/EasyEvent/internal/routes"
)

func main() {
	// Load environment variables; both files are optional
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := logger.Setup(cfg)
	log.Info("Starting EasyEvent API server", "environment", cfg.Environment)

	mongoClient, err := connect.MongoDBConnect(context.Background(), cfg.Mongo, log)
	if err != nil {
		log.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}

	repo := models.MongodbNewRepo(mongoClient, cfg.Mongo.Database)
	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), cfg.Mongo.ConnectTimeout)
	err = repo.EnsureIndexes(indexCtx)
	cancelIndexes()
	if err != nil {
		log.Error("Failed to create MongoDB indexes", "error", err)
		os.Exit(1)
	}

	appContainer, err := container.NewContainer(cfg, log, container.MongoRepos(repo))
	if err != nil {
		log.Error("Failed to build dependency container", "error", err)
		os.Exit(1)
	}

	router := routes.SetupRoutes(appContainer)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	if err := connect.MongoDBDisconnect(mongoClient); err != nil {
		log.Error("Error disconnecting from MongoDB", "error", err)
	}

	log.Info("Server exited")
}
