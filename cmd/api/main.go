package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"exchange-gateway/internal/database"
	"exchange-gateway/internal/exchange"
	"exchange-gateway/internal/platform/config"
	"exchange-gateway/internal/platform/logger"
	"exchange-gateway/internal/server"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

var Logger = logger.Get()

func gracefulShutdown(fiberServer *server.FiberServer, done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	Logger.Info("shutting down gracefully, press Ctrl+C again to force")

	// In-flight exchange calls get 5 seconds to drain.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := fiberServer.ShutdownWithContext(ctx); err != nil {
		Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	Logger.Info("Server exiting")

	done <- true
}

func main() {
	defer Logger.Sync()

	config := config.GetConfig()

	exchanges, err := exchange.NewRegistryFromConfig(config, Logger)
	if err != nil {
		Logger.Fatal("Failed to create exchange clients", zap.Error(err))
	}

	db, err := database.New(config.Database.Path)
	if err != nil {
		Logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	server := server.New(exchanges, db, Logger, logger.GetAccessLogger(), config.Server.ReadTimeout.Std())

	server.RegisterFiberRoutes()

	done := make(chan bool, 1)

	go func() {
		Logger.Info("Listening", zap.Int("port", config.Server.Port))
		err := server.Listen(fmt.Sprintf(":%d", config.Server.Port))
		if err != nil {
			panic(fmt.Sprintf("http server error: %s", err))
		}
	}()

	go gracefulShutdown(server, done)

	<-done
	Logger.Info("Graceful shutdown complete.")
}
