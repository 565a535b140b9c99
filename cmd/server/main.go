package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nonogram/solver/internal/cachestore"
	httpTransport "github.com/nonogram/solver/internal/transport/http"
	"github.com/nonogram/solver/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	store, err := cachestore.Open(cfg.CacheDBPath)
	if err != nil {
		log.Printf("Warning: could not open cache at %s: %v", cfg.CacheDBPath, err)
		log.Println("Continuing without a persistent solve cache")
		store = nil
	} else {
		defer store.Close()
	}

	r := gin.Default()
	httpTransport.RegisterRoutes(r, cfg, store)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("Starting server on port %s", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
