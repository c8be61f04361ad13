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

	"github.com/joho/godotenv"

	"github.com/akashvani/voicenews/backend/internal/config"
	"github.com/akashvani/voicenews/backend/internal/handler"
	conversationService "github.com/akashvani/voicenews/backend/internal/service/conversation"
	newsService "github.com/akashvani/voicenews/backend/internal/service/news"
	sessionService "github.com/akashvani/voicenews/backend/internal/service/session"
	speechService "github.com/akashvani/voicenews/backend/internal/service/speech"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	if !cfg.News.Enabled() {
		log.Println("warning: NEWS_API_KEY not set, news fetches will fail until configured")
	}
	provider := newsService.NewClient(cfg.News.APIKey, cfg.News.BaseURL, cfg.News.Country, cfg.News.Timeout)

	sessions := sessionService.NewStore(cfg.Session.TTL)
	sessions.StartSweeper(ctx, cfg.Session.SweepInterval)

	convSvc := conversationService.NewService(provider, sessions, cfg.News.Timeout)

	var speechClient *speechService.Client
	if cfg.Speech.Enabled {
		speechClient = speechService.NewClient(cfg.Speech.APIKey, cfg.Speech.BaseURL, cfg.Speech.STTModel, cfg.Speech.Language, cfg.Speech.Timeout)
		log.Println("speech service initialized successfully")
	} else {
		log.Println("speech credentials not configured, voice endpoints disabled")
	}

	router := handler.NewRouter(convSvc, sessions, provider, speechClient)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Akashvani backend listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
