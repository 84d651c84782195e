package main

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/routegate/routegate/internal/db"
	"github.com/routegate/routegate/internal/gateway/handlers"
	"github.com/routegate/routegate/internal/generate"
	"github.com/routegate/routegate/internal/logging"
	"github.com/routegate/routegate/internal/routing"
	"github.com/routegate/routegate/internal/upload"
	"go.uber.org/zap"
)

func main() {
	defer logging.Sync()

	dbPath := os.Getenv("ROUTEGATE_DB")
	if dbPath == "" {
		dbPath = "routegate.db"
	}

	database, err := db.InitDB(dbPath)
	if err != nil {
		logging.L.Fatal("failed to initialize database", zap.Error(err))
	}

	// The stock behavior wipes and re-seeds the rule set on every boot so the
	// documented sample rules are always present. Set ROUTEGATE_PRESERVE_DB=1
	// to keep rules across restarts.
	if os.Getenv("ROUTEGATE_PRESERVE_DB") == "" {
		if err := db.ResetAndSeed(database); err != nil {
			logging.L.Fatal("failed to seed database", zap.Error(err))
		}
		logging.L.Info("database reset to seed rule set", zap.String("db", dbPath))
	}

	uploadDir := os.Getenv("ROUTEGATE_UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	uploads, err := upload.NewProcessor(uploadDir)
	if err != nil {
		logging.L.Fatal("failed to create upload directory", zap.Error(err))
	}

	engine := routing.NewEngine(database, logging.L)
	registry := generate.NewRegistry()

	// Create router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(logging.Middleware)

	r.Get("/healthz", handlers.HealthHandler())
	r.Get("/models", handlers.ModelsHandler(database))

	// Rule management
	r.Route("/api", func(r chi.Router) {
		r.Get("/rules", handlers.RulesHandler(database))
		r.Post("/rules", handlers.CreateRuleHandler(database))
		r.Post("/rules/reset", handlers.ResetRulesHandler(database))
		r.Put("/rules/{id}", handlers.UpdateRuleHandler(database))
		r.Delete("/rules/{id}", handlers.DeleteRuleHandler(database))

		r.Get("/file-rules", handlers.FileRulesHandler(database))
		r.Post("/file-rules", handlers.CreateFileRuleHandler(database))
		r.Delete("/file-rules/{id}", handlers.DeleteFileRuleHandler(database))

		r.Get("/version", handlers.VersionHandler())
	})

	// OpenAI-style completion endpoint
	r.Route("/v1", func(r chi.Router) {
		r.Post("/chat/completions", handlers.ChatCompletionsHandler(engine, registry, uploads))
	})

	host := os.Getenv("HOST")
	if host == "" {
		host = "127.0.0.1" // Default to localhost, set HOST=0.0.0.0 for LAN access
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := host + ":" + port

	logging.L.Info("routegate starting", zap.String("addr", addr))

	if err := http.ListenAndServe(addr, r); err != nil {
		logging.L.Fatal("server failed", zap.Error(err))
	}
}
