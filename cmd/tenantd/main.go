package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/harborlane/tenantd/internal/accounts/app"
)

func main() {
	// Load .env if present; the real environment always wins.
	_ = godotenv.Load()

	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
