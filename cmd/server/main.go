package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"popdict/internal/ai"
	"popdict/internal/api"
	"popdict/internal/app"
	"popdict/internal/audio"
	"popdict/internal/config"
	"popdict/internal/dict"
	"popdict/internal/mcp"
	"popdict/internal/middleware"
	"popdict/internal/models"
	"popdict/internal/notebook"
	"popdict/internal/store/sqlstore"
	"popdict/internal/study"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}
	logger := app.NewLogger(cfg)

	blob, err := sqlstore.New(cfg.DBDriver, cfg.DBConn)
	if err != nil {
		logger.Error("failed to initialize database", slog.Any("err", err))
		os.Exit(1)
	}
	defer blob.Close()

	nb, err := notebook.New(blob, logger)
	if err != nil {
		logger.Error("failed to load notebook", slog.Any("err", err))
		os.Exit(1)
	}

	client, err := ai.NewGeminiClient(context.Background(), ai.GeminiConfig{
		APIKey:     cfg.GeminiAPIKey,
		TextModel:  cfg.TextModel,
		ImageModel: cfg.ImageModel,
		TTSModel:   cfg.TTSModel,
		Voice:      cfg.Voice,
	})
	if err != nil {
		logger.Error("failed to create generation client", slog.Any("err", err))
		os.Exit(1)
	}

	nativeLang := models.Language(cfg.NativeLanguage)
	targetLang := models.Language(cfg.TargetLanguage)

	searcher := dict.NewSearcher(client, nativeLang, targetLang, cfg.MaxImageEdge, logger)
	story := dict.NewStoryGenerator(client, targetLang, logger)
	player := audio.NewPlayer(client, ai.SampleRate, logger)
	session := study.NewSession()

	handlers := api.NewHandlers(searcher, story, nb, session, player, logger)

	mux := http.NewServeMux()
	handlers.Register(mux)
	mux.Handle("/mcp", mcp.NewServer(nb))

	// Serve the frontend when a static build is present.
	if _, err := os.Stat(cfg.StaticDir); err == nil {
		mux.Handle("/", http.FileServer(http.Dir(cfg.StaticDir)))
	}

	handler := middleware.Logging(logger, mux)

	logger.Info("server started", slog.String("addr", cfg.HTTPAddr))
	if err := http.ListenAndServe(cfg.HTTPAddr, handler); err != nil {
		logger.Error("server has failed", slog.Any("err", err))
		os.Exit(1)
	}
}
