// Package server boots the application: configuration, stores, queue
// workers, scheduler, event listeners, and the HTTP and gRPC servers.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aferchichi/stockshop/app/feed"
	"github.com/aferchichi/stockshop/app/jobs"
	"github.com/aferchichi/stockshop/app/listeners"
	"github.com/aferchichi/stockshop/config"
	"github.com/aferchichi/stockshop/internal/kernel"
	"github.com/aferchichi/stockshop/pkg/cache"
	"github.com/aferchichi/stockshop/pkg/database"
	"github.com/aferchichi/stockshop/pkg/grpcserver"
	"github.com/aferchichi/stockshop/pkg/logger"
	"github.com/aferchichi/stockshop/pkg/queue"
	"github.com/aferchichi/stockshop/pkg/schedule"
	"github.com/aferchichi/stockshop/pkg/storage"
)

// Start boots everything and blocks until SIGINT or SIGTERM, then shuts
// the HTTP and gRPC servers down gracefully.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	if err := database.Connect(); err != nil {
		return err
	}
	if err := cache.Connect(); err != nil {
		// The app runs without Redis: sessions and cache degrade, the
		// queue falls back to the in-memory driver.
		logger.Warn("server: redis unavailable", "error", err)
	}
	storage.Connect()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bootQueue(ctx)
	bootSchedule(ctx)
	listeners.Register()

	stockFeed := feed.New()
	stockFeed.Subscribe()

	grpcSrv, grpcLis, err := grpcserver.Start(config.GRPCPort())
	if err != nil {
		logger.Warn("server: grpc disabled", "error", err)
	} else {
		logger.Info("server: grpc listening", "addr", grpcLis.Addr().String())
	}

	httpKernel := kernel.NewHTTPKernel(stockFeed)
	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           httpKernel.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server: http listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("server: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if grpcSrv != nil {
		grpcserver.Stop(grpcSrv)
	}
	logger.CloseSecurityLog()
	return srv.Shutdown(shutdownCtx)
}

// bootQueue picks the Redis driver when Redis is up, the in-memory driver
// otherwise, registers the job types, and starts the workers.
func bootQueue(ctx context.Context) {
	if cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	} else {
		queue.SetDriver(queue.NewMemoryDriver())
	}
	queue.UseDB(database.DB)
	jobs.RegisterAll()
	queue.StartWorkers(ctx, config.GetInt("QUEUE_WORKERS", 4))
}

// bootSchedule registers recurring work and starts the scheduler loop.
func bootSchedule(ctx context.Context) {
	schedule.Daily().Name("low-stock-report").WithoutOverlapping().Run(func() {
		if err := queue.Dispatch(&jobs.LowStockReportJob{}); err != nil {
			logger.Error("server: dispatch low-stock report", "error", err)
		}
	})
	schedule.Start(ctx)
}
