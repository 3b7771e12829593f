// cmd/server/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"notion-pdf-service/internal/cache"
	"notion-pdf-service/internal/common/config"
	"notion-pdf-service/internal/common/database"
	apperrors "notion-pdf-service/internal/common/errors"
	"notion-pdf-service/internal/common/logger"
	"notion-pdf-service/internal/common/observability"
	"notion-pdf-service/internal/drive"
	"notion-pdf-service/internal/history"
	"notion-pdf-service/internal/notify"
	"notion-pdf-service/internal/notion"
	"notion-pdf-service/internal/pdf"
	"notion-pdf-service/internal/server"
	"notion-pdf-service/internal/template"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootstrap := logger.New("info", "console")
		bootstrap.Fatal("failed to load configuration", zap.Error(err))
	}

	zapLogger := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLogger.Sync()
	log := logger.NewZapAdapter(zapLogger)

	log.Info("starting service", map[string]interface{}{
		"name":        cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	})

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	catalog, err := template.LoadCatalog(cfg.Templates.CatalogPath, cfg.Templates.Dir)
	if err != nil {
		zapLogger.Fatal("failed to load template catalog", zap.Error(apperrors.NewConfigLoadError(err)))
	}
	log.Info("template catalog loaded", map[string]interface{}{
		"templates": catalog.Len(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	notionClient := notion.NewClient(cfg.Notion)
	filler := pdf.NewFiller(log)

	opts := []server.ServiceOption{}

	if cfg.Drive.Enabled {
		uploader, err := drive.NewUploader(ctx, cfg.Drive, log)
		if err != nil {
			zapLogger.Fatal("failed to initialize drive uploader", zap.Error(err))
		}
		opts = append(opts, server.WithUploader(uploader))
	}

	if cfg.Cache.Enabled {
		redisClient, err := database.NewRedis(cfg.Cache.Redis)
		if err != nil {
			zapLogger.Fatal("failed to initialize redis client", zap.Error(err))
		}
		defer redisClient.Close()
		if err := retryWithBackoff(ctx, 5, func() error {
			return redisClient.Ping(ctx)
		}); err != nil {
			zapLogger.Fatal("redis unreachable", zap.Error(err))
		}
		ttl := time.Duration(cfg.Cache.TTL) * time.Second
		opts = append(opts, server.WithLinkCache(cache.NewLinkCache(redisClient.Client, ttl)))
		log.Info("link cache enabled", map[string]interface{}{"ttl": ttl.String()})
	}

	if cfg.History.Enabled {
		pgClient, err := database.NewPostgres(cfg.History.Postgres)
		if err != nil {
			zapLogger.Fatal("failed to initialize postgres client", zap.Error(err))
		}
		defer pgClient.Close()
		if err := retryWithBackoff(ctx, 5, func() error {
			return pgClient.Ping(ctx)
		}); err != nil {
			zapLogger.Fatal("postgres unreachable", zap.Error(err))
		}
		opts = append(opts, server.WithHistory(history.NewStore(pgClient.DB, log)))
		log.Info("generation history enabled", nil)
	}

	if cfg.Notifications.Email.Enabled {
		notifier, err := notify.NewEmailNotifier(ctx, cfg.Notifications, log)
		if err != nil {
			zapLogger.Fatal("failed to initialize email notifier", zap.Error(err))
		}
		opts = append(opts, server.WithNotifier(notifier))
		log.Info("email notifications enabled", nil)
	}

	service := server.NewService(catalog, notionClient, filler, log, opts...)
	handler := server.NewHandler(service, cfg.App.Name, log, obs)
	srv := server.New(cfg.Server, handler, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			zapLogger.Fatal("http server failed", zap.Error(err))
		}
	case sig := <-sigCh:
		log.Info("shutdown signal received", map[string]interface{}{
			"signal": sig.String(),
		})
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Millisecond)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", map[string]interface{}{"error": err.Error()})
	}
	log.Info("service stopped", nil)
}

// retryWithBackoff retries op with exponential backoff, for dependencies
// that may still be starting when the service comes up.
func retryWithBackoff(ctx context.Context, attempts int, op func() error) error {
	var err error
	delay := 500 * time.Millisecond
	for i := 0; i < attempts; i++ {
		if err = op(); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return err
}
