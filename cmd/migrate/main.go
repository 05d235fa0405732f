package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/toma2023/fluent-academy-serverside/internal/app/bootstrap"
	"github.com/toma2023/fluent-academy-serverside/internal/platform/config"
)

// Migration entrypoint for the postgres store driver.
func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("load .env failed: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}
	if err := bootstrap.Migrate(cfg); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}
}
