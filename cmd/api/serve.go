package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jenny-yujl/marketingTrain/internal/config"
	"github.com/jenny-yujl/marketingTrain/internal/handlers"
	"github.com/jenny-yujl/marketingTrain/internal/routes"
	"github.com/jenny-yujl/marketingTrain/internal/services"
	"github.com/jenny-yujl/marketingTrain/internal/storage"
)

const shutdownTimeout = 10 * time.Second

func (a *app) serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Fails fast: no fallback to memory when a database was requested.
	handle, err := storage.Open(ctx, a.cfg, a.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer handle.Close()

	events := a.eventPublisher()
	defer events.Close()

	uploader, err := a.imageUploader(ctx)
	if err != nil {
		return err
	}

	router := routes.SetupRoutes(routes.Deps{
		Store:    handle.Storage,
		Cfg:      a.cfg,
		Logger:   a.logger,
		Events:   events,
		Uploader: uploader,
	})

	server := &http.Server{
		Addr:              ":" + a.cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server starting",
			zap.String("port", a.cfg.Port),
			zap.String("environment", a.cfg.Environment),
			zap.String("storage", handle.Storage.Backend()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	a.logger.Info("server exited")
	return nil
}

// eventPublisher connects to RabbitMQ when AMQP_URL is set. Events are
// best effort, so a broker that is down at startup only costs the events.
func (a *app) eventPublisher() services.EventPublisher {
	if a.cfg.AMQPURL == "" {
		return services.NoopPublisher{}
	}
	p, err := services.NewAMQPPublisher(a.cfg.AMQPURL, a.cfg.AMQPExchange)
	if err != nil {
		a.logger.Error("campaign events disabled", zap.Error(err))
		return services.NoopPublisher{}
	}
	a.logger.Info("publishing campaign events", zap.String("exchange", a.cfg.AMQPExchange))
	return p
}

func (a *app) imageUploader(ctx context.Context) (handlers.ObjectUploader, error) {
	s3cfg, err := config.NewS3Config(ctx, a.cfg.S3)
	if err != nil {
		return nil, err
	}
	if s3cfg == nil {
		a.logger.Debug("S3_BUCKET_NAME not set; product image upload disabled")
		return nil, nil
	}
	a.logger.Info("product image upload enabled", zap.String("bucket", s3cfg.Bucket))
	return services.NewS3ImageUploader(s3cfg), nil
}

func (a *app) migrate(ctx context.Context, seedProducts bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := storage.Migrate(ctx, a.cfg, a.logger, seedProducts); err != nil {
		return err
	}
	a.logger.Info("migrations complete", zap.String("database", a.cfg.Redacted()))
	return nil
}

func (a *app) migrateDown(ctx context.Context, steps int) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return storage.MigrateDown(ctx, a.cfg, a.logger, steps)
}
