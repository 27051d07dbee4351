package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"adventurego/internal/api"
	"adventurego/internal/config"
	"adventurego/internal/gamemaster"
	"adventurego/internal/redis"
	"adventurego/internal/service/ai"
	"adventurego/internal/service/images"
	"adventurego/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {
	cfgPath := os.Getenv("ADVENTUREGO_CONFIG")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider := cfg.BasicConfig.ChatProvider
	chatService, err := ai.New(ctx, provider, cfg.Providers[provider])
	if err != nil {
		log.Fatalf("init chat model: %v", err)
	}

	// The image cache is optional; without redis every prompt hits the
	// image backend directly.
	var imageCache images.Cache
	rdb, err := redis.NewClient(cfg)
	if err != nil {
		log.Printf("Warning: redis unavailable, image cache disabled: %v", err)
	} else {
		defer rdb.Close()
		imageCache = rdb
	}
	imageService := images.NewGenerator(cfg.Image, imageCache)

	store := gamemaster.NewMemoryStore()
	game := gamemaster.NewService(chatService, imageService, store)
	turns := worker.NewDispatcher(cfg.BasicConfig.MaxTurns)
	handlers := api.NewHandler(game, turns)

	router := gin.Default()
	router.Use(api.CORSMiddleware())
	handlers.RegisterRoutes(router)

	addr := cfg.BasicConfig.ServerAddress
	if addr == "" {
		addr = ":8090"
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
