package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aferchichi/stockshop/app/jobs"
	"github.com/aferchichi/stockshop/pkg/cache"
	"github.com/aferchichi/stockshop/pkg/database"
	"github.com/aferchichi/stockshop/pkg/logger"
	"github.com/aferchichi/stockshop/pkg/queue"
	"github.com/aferchichi/stockshop/pkg/schedule"
)

var queueWorkersFlag int

// bootWorkers prepares the stores and queue driver for standalone workers.
func bootWorkers() error {
	if err := bootDB(); err != nil {
		return err
	}
	if err := cache.Connect(); err != nil {
		logger.Warn("workers: redis unavailable, using in-memory queue", "error", err)
		queue.SetDriver(queue.NewMemoryDriver())
	} else {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}
	queue.UseDB(database.DB)
	jobs.RegisterAll()
	return nil
}

// stockshop queue:work
var queueWorkCmd = &cobra.Command{
	Use:   "queue:work",
	Short: "Start the queue worker",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootWorkers(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		workers := queueWorkersFlag
		if workers < 1 {
			workers = 5
		}

		fmt.Printf("Queue worker started (%d workers). Press Ctrl+C to stop.\n", workers)
		queue.StartWorkers(ctx, workers)

		<-ctx.Done()
		fmt.Println("\nQueue worker stopped.")
		return nil
	},
}

// stockshop schedule:run
var scheduleRunCmd = &cobra.Command{
	Use:   "schedule:run",
	Short: "Start the task scheduler",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootWorkers(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		schedule.Daily().Name("low-stock-report").WithoutOverlapping().Run(func() {
			if err := queue.Dispatch(&jobs.LowStockReportJob{}); err != nil {
				logger.Error("workers: dispatch low-stock report", "error", err)
			}
		})

		for _, t := range schedule.List() {
			fmt.Println("  -", t)
		}
		fmt.Println("Scheduler started. Press Ctrl+C to stop.")
		schedule.Start(ctx)

		<-ctx.Done()
		fmt.Println("\nScheduler stopped.")
		return nil
	},
}

func init() {
	queueWorkCmd.Flags().IntVarP(&queueWorkersFlag, "workers", "w", 5, "Number of concurrent workers")
}
