package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/shinyyama/podcast-backend/internal/config"
	"github.com/shinyyama/podcast-backend/internal/db"
	"github.com/shinyyama/podcast-backend/internal/eventbus"
	appmw "github.com/shinyyama/podcast-backend/internal/middleware"
	"github.com/shinyyama/podcast-backend/internal/repository"
	"github.com/shinyyama/podcast-backend/internal/server"
	"github.com/shinyyama/podcast-backend/internal/webhook"
)

var (
	gitSHA    = "dev"
	buildTime = ""
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	conn, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		log.Fatalf("auto migrate error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	verifier, err := appmw.NewFirebaseVerifier(ctx, cfg.FirebaseProjectID)
	if err != nil {
		log.Fatalf("failed to init firebase auth: %v", err)
	}

	var bus webhook.Publisher
	if cfg.NATSURL != "" {
		nc, pub, err := eventbus.Connect(cfg.NATSURL, cfg.NATSStream)
		if err != nil {
			log.Printf("[eventbus] url=%s stage=connect_fail err=%v; continuing without mirror", cfg.NATSURL, err)
		} else {
			defer func() { _ = nc.Drain() }()
			bus = pub
			log.Printf("[eventbus] url=%s stream=%s stage=ready", cfg.NATSURL, cfg.NATSStream)
		}
	}

	dispatcher := webhook.NewDispatcher(
		repository.NewWebhookRepository(conn),
		&http.Client{Timeout: cfg.WebhookTimeout},
		bus,
	)

	srv := server.New(server.Deps{
		DB:       conn,
		Config:   cfg,
		Verifier: verifier,
		Trigger:  dispatcher,
		SHA:      gitSHA,
		Build:    buildTime,
	})

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		log.Printf("starting server on %s", addr)
		errCh <- srv.Start(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("server stopped: %v", err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}
}
