package main

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"gocorr/internal/config"
	"gocorr/internal/container"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(appConfig.Server.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appContainer, err := container.New(appConfig)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}
	defer appContainer.Shutdown(context.Background())

	if appConfig.Database.Enabled() {
		db, err := container.OpenDatabase(ctx, appConfig.Database.URL)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		if err := appContainer.InitWithDatabase(db); err != nil {
			log.Fatalf("Failed to initialize container: %v", err)
		}
	} else {
		appContainer.Logger.Info("DATABASE_URL not set, reports are kept in memory")
	}

	if err := appContainer.Build(); err != nil {
		log.Fatalf("Failed to build analysis service: %v", err)
	}

	addr := net.JoinHostPort("", appConfig.Server.Port)
	if err := appContainer.Server().Start(ctx, addr); err != nil {
		appContainer.Logger.Error("Server failed: %v", err)
		os.Exit(1)
	}
}
