package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/planward/planward/internal/logger"
	"github.com/planward/planward/server"
)

func main() {
	if err := logger.Init(logger.Config{Level: logger.INFO, Console: true}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	cfg := server.Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		PlanServiceURL: os.Getenv("PLAN_SERVICE_URL"),
		UserID:         os.Getenv("PLAN_USER_ID"),
	}
	if cfg.DatabaseURL == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to resolve home directory: %v", err)
		}
		cfg.DataPath = filepath.Join(home, ".planward", "planward.db")
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}
	defer func() {
		if err := srv.Close(); err != nil {
			log.Printf("Error closing server: %v", err)
		}
	}()

	log.Printf("Planward server starting on :%s", port)
	if err := srv.Start(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
