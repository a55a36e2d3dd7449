// cmd/dashboard/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"mortgage-dashboard/internal/common/backend"
	"mortgage-dashboard/internal/common/config"
	apperrors "mortgage-dashboard/internal/common/errors"
	"mortgage-dashboard/internal/common/logger"
	"mortgage-dashboard/internal/common/observability"
	"mortgage-dashboard/internal/common/session"
	"mortgage-dashboard/internal/pages/applications"
	"mortgage-dashboard/internal/pages/auth"
	"mortgage-dashboard/internal/pages/loandetails"
	"mortgage-dashboard/internal/pages/profile"
	"mortgage-dashboard/internal/pages/ratesheet"
	"mortgage-dashboard/internal/web"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootstrap := logger.New("info", "console")
		bootstrap.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting mortgage dashboard...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New("mortgage-dashboard")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Redis session store with retry ---
	var sessions *session.Store
	err = retryWithBackoff(func() error {
		var err error
		sessions, err = session.NewStore(cfg.Session, log)
		if err != nil {
			return err
		}
		// Test the connection with context
		return sessions.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer sessions.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init backend API client ---
	if err := cfg.Backend.Validate(); err != nil {
		zapLog.Fatal("backend config invalid", zap.Error(err))
	}
	client := backend.NewClient(cfg.Backend, log)
	zapLog.Info("Backend client initialized", zap.String("baseURL", cfg.Backend.BaseURL))

	errorHandler := apperrors.NewErrorHandler(log)

	// --- Wire page handlers ---
	handlers := web.Handlers{}

	if config.IsPageEnabled(cfg, applications.PageName) {
		pageCfg := applications.LoadConfig()
		pageCfg.Timeout = config.GetDuration(config.GetPageConfig(cfg, applications.PageName).Timeout)
		svc := applications.NewService(pageCfg, client, sessions, log)
		handlers.Applications = applications.NewHandler(pageCfg, svc, errorHandler, log)
	}

	if config.IsPageEnabled(cfg, loandetails.PageName) {
		pageCfg := loandetails.LoadConfig()
		pageCfg.Timeout = config.GetDuration(config.GetPageConfig(cfg, loandetails.PageName).Timeout)
		pageCfg.RecommendationTimeout = config.GetDuration(cfg.Backend.UploadTimeout)
		pageCfg.MaxFileSizeMB = cfg.Uploads.MaxFileSizeMB
		pageCfg.AllowedExtensions = cfg.Uploads.AllowedExtensions
		svc := loandetails.NewService(pageCfg, client, log)
		handlers.LoanDetails = loandetails.NewHandler(pageCfg, svc, errorHandler, log)
	}

	{
		pageCfg := auth.ConfigFromSession(cfg.Session)
		pageCfg.Timeout = config.GetDuration(config.GetPageConfig(cfg, auth.PageName).Timeout)
		svc := auth.NewService(pageCfg, client, log)
		handlers.Auth = auth.NewHandler(pageCfg, svc, sessions, log)
	}

	if config.IsPageEnabled(cfg, profile.PageName) {
		pageCfg := profile.LoadConfig()
		pageCfg.Timeout = config.GetDuration(config.GetPageConfig(cfg, profile.PageName).Timeout)
		svc := profile.NewService(pageCfg, client, log)
		handlers.Profile = profile.NewHandler(pageCfg, svc, sessions, errorHandler, log)
	}

	if config.IsPageEnabled(cfg, ratesheet.PageName) {
		handlers.RateSheet = ratesheet.NewHandler(log)
	}

	zapLog.Info("All page handlers wired")

	// --- HTTP Server ---
	router := web.NewRouter(cfg, sessions, obs, handlers, log)

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("Dashboard server listening", zap.String("address", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining connections...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down server", zap.Error(err))
	}

	zapLog.Info("Dashboard stopped gracefully")
}
