package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/toma2023/fluent-academy-serverside/internal/app/bootstrap"
	"github.com/toma2023/fluent-academy-serverside/internal/platform/config"
)

// API process entrypoint.
// Data flow:
// 1) Load .env and config.
// 2) Build app wiring (store + modules + http server).
// 3) Serve until SIGINT/SIGTERM, then drain and close the store.
func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("load .env failed: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.BuildAPI(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap api failed: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("api shutdown close failed: %v", err)
		}
	}()

	if err := app.Run(ctx); err != nil {
		log.Printf("fluent academy api stopped with error: %v", err)
	}
}
