package main

import (
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/caretrace-ai/caretrace-engine/pkg/config"
	"github.com/caretrace-ai/caretrace-engine/pkg/ehr"
	"github.com/caretrace-ai/caretrace-engine/pkg/handlers"
	"github.com/caretrace-ai/caretrace-engine/pkg/llm"
	"github.com/caretrace-ai/caretrace-engine/pkg/middleware"
	"github.com/caretrace-ai/caretrace-engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// Load the tabular store once; it is read-only for process lifetime.
	// A missing table file is fatal here, per-row problems are not.
	store, err := ehr.Load(cfg.Data.Dir)
	if err != nil {
		logger.Fatal("Failed to load EHR tables", zap.String("dir", cfg.Data.Dir), zap.Error(err))
	}
	logger.Info("EHR tables loaded",
		zap.String("dir", cfg.Data.Dir),
		zap.Int("diagnoses", store.Diagnoses.Len()),
		zap.Int("medications", store.Medications.Len()),
		zap.Int("vitals", store.Vitals.Len()),
		zap.Int("notes", store.Notes.Len()),
		zap.Int("wounds", store.Wounds.Len()),
		zap.Int("oasis", store.Oasis.Len()))

	client, err := llm.NewFromProvider(cfg.LLM.Provider, &llm.Config{
		Endpoint: cfg.LLM.Endpoint,
		APIKey:   cfg.LLM.APIKey,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to create completion client", zap.Error(err))
	}

	summaryService := services.NewSummaryService(services.SummaryServiceConfig{
		Store:          store,
		Client:         client,
		DefaultModel:   cfg.LLM.Model,
		Temperature:    cfg.LLM.Temperature,
		RequestTimeout: cfg.LLM.RequestTimeout(),
		NoteHighlights: cfg.Data.NoteHighlights,
	}, logger)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewSummaryHandler(summaryService, logger).RegisterRoutes(mux)

	handler := middleware.RequestLogger(logger)(mux)

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting caretrace-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version),
		zap.String("env", cfg.Env),
		zap.String("llm_provider", client.Provider()),
		zap.String("llm_model", cfg.LLM.Model))

	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "local" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
