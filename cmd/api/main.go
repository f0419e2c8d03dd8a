package main

import (
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"time"

	"coursemate-ai/internal/config"
	"coursemate-ai/internal/http"
	"coursemate-ai/internal/ingest"
	"coursemate-ai/internal/llm"
	"coursemate-ai/internal/rag"
	"coursemate-ai/internal/retrieval"
	"coursemate-ai/internal/search"
	"coursemate-ai/internal/storage"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	// Create repository instances
	academicsRepo := storage.NewAcademicsRepo(db)
	chatRepo := storage.NewChatRepo(db)
	messageRepo := storage.NewMessageRepo(db)
	materialRepo := storage.NewMaterialRepo(db)

	// Managed search index client. An empty endpoint is a valid
	// deployment; retrieval then runs on the local fallback only.
	searchClient := search.NewClient(cfg.SearchEndpoint, cfg.SearchAPIKey, cfg.SearchIndexID)
	if searchClient.Configured() {
		slog.Info("Search index configured", "endpoint", cfg.SearchEndpoint, "index", cfg.SearchIndexID)
	} else {
		slog.Warn("Search index not configured, retrieval will use local fallback only")
	}

	quality := retrieval.QualityConfig{
		MinExcerptChars:     cfg.Quality.MinExcerptChars,
		MinExcerptWords:     cfg.Quality.MinExcerptWords,
		MinAlnumRatio:       cfg.Quality.MinAlnumRatio,
		ExcludeLowRelevance: cfg.Quality.ExcludeLowRelevance,
	}
	adapter := retrieval.NewAdapter(searchClient, quality, cfg.SearchDisableFiltering)
	localRetriever := retrieval.NewLocalRetriever(materialRepo)

	// Create LLM client (external service layer)
	llmClient := llm.NewClient(
		cfg.LLMBaseURL,
		cfg.LLMAPIKey,
		cfg.LLMModels,
		time.Duration(cfg.LLMTimeoutSeconds)*time.Second,
	)

	// Create the tutor engine
	engine := rag.NewEngine(
		adapter,
		localRetriever,
		llmClient,
		chatRepo,
		messageRepo,
		academicsRepo,
		cfg.MaxResults,
	)
	slog.Info("Tutor engine initialized", "max_results", cfg.MaxResults, "models", cfg.LLMModels)

	// Ingestion pipeline for material uploads
	pipeline := ingest.NewPipeline(materialRepo)

	// Create router with dependencies
	deps := &http.Deps{
		DB:              db,
		Chats:           chatRepo,
		Messages:        messageRepo,
		Academics:       academicsRepo,
		Engine:          engine,
		Ingester:        pipeline,
		SearchAvailable: searchClient.Configured(),
	}
	router := http.NewRouter(deps)

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "models", cfg.LLMModels)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
