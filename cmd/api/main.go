package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/bryanwahyu/hairscan/internal/application"
	appanalysis "github.com/bryanwahyu/hairscan/internal/application/analysis"
	"github.com/bryanwahyu/hairscan/internal/config"
	"github.com/bryanwahyu/hairscan/internal/domain/ai"
	domain "github.com/bryanwahyu/hairscan/internal/domain/analysis"
	"github.com/bryanwahyu/hairscan/internal/domain/parsefailures"
	anthropicai "github.com/bryanwahyu/hairscan/internal/infra/ai/anthropic"
	openaiai "github.com/bryanwahyu/hairscan/internal/infra/ai/openai"
	mysqlp "github.com/bryanwahyu/hairscan/internal/infra/db/mysql"
	pgp "github.com/bryanwahyu/hairscan/internal/infra/db/postgres"
	"github.com/bryanwahyu/hairscan/internal/infra/httpserver"
	minioStore "github.com/bryanwahyu/hairscan/internal/infra/storage"
	"github.com/bryanwahyu/hairscan/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	db, repo, failures, err := openDatabase(ctx, cfg)
	if err != nil {
		log.Fatalf("%s connect error: %v", cfg.Database.Driver, err)
	}
	defer db.Close()

	store, err := minioStore.New(ctx,
		cfg.Minio.Endpoint,
		cfg.Minio.Region,
		cfg.Minio.BucketName,
		cfg.Minio.AccessKey,
		cfg.Minio.SecretKey,
		cfg.Minio.UseSSL,
	)
	if err != nil {
		log.Fatalf("minio init error: %v", err)
	}

	model, err := newAIClient(cfg)
	if err != nil {
		log.Fatalf("ai init error: %v", err)
	}

	svc := &appanalysis.Service{
		Repo:       repo,
		FailureLog: failures,
		Images:     store,
		AI:         model,
		Clock:      application.SystemClock{},
	}

	var ready atomic.Bool
	ready.Store(true)

	mux := chi.NewRouter()
	mux.Use(
		middleware.LoggingMiddleware,
		middleware.MetricsMiddleware,
		cors.Handler(cors.Options{
			AllowedOrigins: cfg.Server.AllowOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}),
	)
	if len(cfg.Server.APIKeys) > 0 {
		mux.Use(middleware.APIKeyAuth(cfg.Server.APIKeys))
	} else {
		log.Println("warning: no api keys configured, auth disabled")
	}
	mux.Use(middleware.RateLimitMiddleware(cfg.Server.RateLimit.Capacity, cfg.Server.RateLimit.RefillRate))

	mux.Get("/health", middleware.HealthHandler(map[string]middleware.HealthChecker{
		"database": &middleware.DatabaseHealthChecker{DB: db},
		"storage":  store,
	}))
	mux.Get("/ready", middleware.ReadinessHandler(&ready))
	mux.Get("/live", middleware.LivenessHandler)
	mux.Get("/metrics", middleware.MetricsHandler)
	mux.Mount("/", httpserver.NewRouter(svc, cfg.MaxImageBytes()))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
		// vision calls are slow
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s (db=%s ai=%s)", addr, cfg.Database.Driver, cfg.AI.Provider)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")
	ready.Store(false)

	ctx2, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

// openDatabase connects the configured driver, creates the tables and
// returns both repositories.
func openDatabase(ctx context.Context, cfg *config.Config) (*sql.DB, domain.Repository, parsefailures.Repository, error) {
	switch cfg.Database.Driver {
	case "postgres":
		db, err := pgp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			return nil, nil, nil, err
		}
		if err := pgp.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, nil, nil, err
		}
		return db, pgp.NewAnalysisRepository(db), pgp.NewParseFailureRepository(db), nil
	default:
		db, err := mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			return nil, nil, nil, err
		}
		if err := mysqlp.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, nil, nil, err
		}
		return db, mysqlp.NewAnalysisRepository(db), mysqlp.NewParseFailureRepository(db), nil
	}
}

func newAIClient(cfg *config.Config) (ai.Client, error) {
	switch cfg.AI.Provider {
	case "anthropic":
		if cfg.AI.Anthropic.APIKey == "" {
			return nil, fmt.Errorf("ai.anthropic.apiKey (or ANTHROPIC_API_KEY) is required")
		}
		return anthropicai.NewClient(cfg.AI.Anthropic.APIKey, cfg.AI.Anthropic.Model), nil
	default:
		if cfg.AI.OpenAI.APIKey == "" {
			return nil, fmt.Errorf("ai.openai.apiKey (or OPENAI_API_KEY) is required")
		}
		return openaiai.NewClient(cfg.AI.OpenAI.APIKey, cfg.AI.OpenAI.Model), nil
	}
}
