package main

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"coursepass/internal/adapter"
	"coursepass/internal/core"
	"coursepass/internal/session"
	"coursepass/pkg/http_client"
)

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "prod" || env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func main() {
	_ = godotenv.Load()

	logger, err := newLogger(getenv("APP_ENV", "dev"))
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	timeoutMillis, err := strconv.Atoi(getenv("UPSTREAM_TIMEOUT_MS", "2500"))
	if err != nil {
		logger.Fatal("invalid UPSTREAM_TIMEOUT_MS", zap.Error(err))
	}
	upstreamBase := getenv("UPSTREAM_BASE_URL", "http://localhost:54321")

	client := adapter.NewAPIClient(
		upstreamBase,
		http_client.CreateHTTPClient(time.Duration(timeoutMillis)*time.Millisecond),
		logger,
	)
	svc := core.NewService(
		client,
		adapter.NewCatalogStore(),
		adapter.NewLearningStore(),
		adapter.NewProfileStore(),
		adapter.NewOrderStore(),
		logger,
	)
	h := adapter.NewHandler(svc, session.NewResolver(logger), logger)

	r := chi.NewRouter()
	r.Use(adapter.RequestLogger(logger))
	h.Register(r)

	addr := ":" + getenv("PORT", "8080")
	logger.Info("listening",
		zap.String("addr", addr),
		zap.String("upstream", upstreamBase))
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
