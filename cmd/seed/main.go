package main

// Install baseline data (roles, default admin, demo facilities, fee settings
// and the hospital checklist):
//   go run ./cmd/seed

import (
	"log"
	"os"

	"healthoffice-backend/internal/bootstrap"
	"healthoffice-backend/internal/shared/config"
)

func main() {
	cfg := config.Load()
	cfg.SeedOnBoot = true

	if _, err := bootstrap.Build(cfg); err != nil {
		log.Printf("seed failed: %v", err)
		os.Exit(1)
	}
	log.Println("seed complete")
}
