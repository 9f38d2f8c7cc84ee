package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"kbportal/internal/auth"
	"kbportal/internal/config"
	models "kbportal/internal/domain/models/docsystem"
	"kbportal/internal/handler"
	"kbportal/internal/handler/sse"
	"kbportal/internal/metrics"
	"kbportal/internal/middleware"
	"kbportal/internal/repository/slot"
	"kbportal/internal/seed"
	serviceDocsys "kbportal/internal/service/docsystem"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	logger, closeLog, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer closeLog()
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"slot_backend", cfg.SlotBackend,
		"slot_key", cfg.SlotKey,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kv, err := slot.Open(ctx, slot.FromConfig(cfg), logger)
	if err != nil {
		log.Fatalf("Failed to open slot store: %v", err)
	}
	defer kv.Close()

	var lib *serviceDocsys.Library
	m := metrics.New(func() int {
		if lib == nil {
			return 0
		}
		nodes := 0
		lib.Store.View(context.Background(), func(tree *models.Tree) error {
			nodes = tree.Len()
			return nil
		})
		return nodes
	})

	lib, err = serviceDocsys.SetupLibrary(ctx, kv, serviceDocsys.LibraryOptions{
		SlotKey:       cfg.SlotKey,
		Seed:          seed.DefaultTree,
		WriteObserver: m,
		Observer:      m,
	}, logger)
	if err != nil {
		log.Fatalf("Failed to load document library: %v", err)
	}

	logger.Info("services initialized")

	mux := handler.NewRouter(lib, handler.RouterOptions{
		Metrics: m.Handler(),
		SSE:     sse.DefaultConfig(),
	}, logger)

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	var h http.Handler = mux
	if cfg.AuthEnabled() {
		verifier, err := auth.NewJWTVerifier(ctx, cfg.AuthJWKSURL, logger)
		if err != nil {
			log.Fatalf("Failed to create JWT verifier: %v", err)
		}
		defer verifier.Close()
		h = middleware.Auth(verifier, logger, "/health", "/metrics")(h)
	} else {
		logger.Warn("authentication disabled, set AUTH_JWKS_URL to require bearer tokens")
	}
	h = middleware.Recovery(logger)(h)

	// CORS - Must be outermost to answer OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", "Last-Event-ID"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // Disabled to allow long-lived upload streams
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
	}()

	logger.Info("listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}
