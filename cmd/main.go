package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/compass/internal/adapters/http/api"
	"github.com/okian/compass/internal/adapters/repository"
	app "github.com/okian/compass/internal/app"
	"github.com/okian/compass/internal/config"
	"github.com/okian/compass/pkg/logger"
	"github.com/okian/compass/pkg/metrics"

	"github.com/okian/compass/internal/adapters/ai/gemini"
)

// HTTP server timeout constants.
const (
	readTimeout            = 10 * time.Second
	writeTimeout           = 10 * time.Second
	idleTimeout            = 60 * time.Second
	readHeaderTimeout      = 5 * time.Second
	shutdownTimeout        = 30 * time.Second
	serviceMetricsInterval = 5 * time.Second
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Catalog store over the CSV tables.
	store := repository.NewCSVStore(cfg.DataDir,
		repository.WithRolesFile(cfg.RolesFile),
		repository.WithAffinityFile(cfg.AffinityFile),
		repository.WithQuestionsFile(cfg.QuestionsFile),
	)

	opts := []app.Option{
		app.WithLogger(loggerInstance),
		app.WithStore(store),
		app.WithMatchThreshold(cfg.MatchThreshold),
		app.WithInterestWeight(cfg.InterestWeight),
		app.WithAcademicWeight(cfg.AcademicWeight),
		app.WithDefaultTopN(cfg.DefaultTopN),
		app.WithQuestionCount(cfg.QuestionCount),
		app.WithMaxResults(cfg.MaxResults),
		app.WithSessionCacheSize(cfg.SessionCacheSize),
		app.WithTierRecommendations(cfg.TierRecommendations),
	}

	// The advisor and predictor are optional; without an API key the chat
	// and classifier paths answer with 503.
	if cfg.GeminiAPIKey != "" {
		client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			loggerInstance.Warn(ctx, "advisor client unavailable", logger.Error(err))
		} else {
			opts = append(opts, app.WithAdvisor(client), app.WithPredictor(client))
		}
	}

	svc := app.New(opts...)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	// Start service metrics updater
	go startServiceMetricsUpdater(ctx, svc)

	// HTTP mux and routes.
	mux := http.NewServeMux()

	apiServer := api.NewServer(svc, svc, cfg.MaxTopN)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			stop()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// startServiceMetricsUpdater starts a background goroutine that refreshes
// service-level gauges.
func startServiceMetricsUpdater(ctx context.Context, svc *app.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateServiceMetrics(svc)
		}
	}
}

// updateServiceMetrics refreshes gauges from the current service stats.
func updateServiceMetrics(svc *app.Service) {
	stats := svc.GetStats()

	if open, ok := stats["openSessions"].(int64); ok {
		metrics.UpdateOpenSessions(open)
	}

	roles, rolesOK := stats["roleCount"].(int)
	questions, questionsOK := stats["questionCount"].(int)
	if rolesOK && questionsOK {
		metrics.UpdateCatalogSize(roles, questions)
	}
}
