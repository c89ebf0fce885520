package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"travel-agency/config"
	"travel-agency/constants"
	"travel-agency/database"
	"travel-agency/logger"
	"travel-agency/queue"
	"travel-agency/routes"
	authService "travel-agency/services/auth"
	bookingService "travel-agency/services/booking"
	"travel-agency/services/notification"
	operatorService "travel-agency/services/operator_config"

	"gorm.io/gorm"
)

const (
	shutdownTimeout     = 10 * time.Second
	memoryQueueCapacity = 1000
)

func main() {
	command := "serve"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}
	if command != "serve" && command != "worker" {
		fmt.Println("Usage:")
		fmt.Println("  travel-agency serve    - Run the HTTP API (default)")
		fmt.Println("  travel-agency worker   - Run the booking notification worker")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("❌ Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logFile, err := logger.Setup(cfg.App.LogDir)
	if err != nil {
		fmt.Printf("❌ Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	db, err := database.Open(cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to migrate the database", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	jobs, err := openQueue(ctx, cfg.Queue)
	if err != nil {
		logger.Error("Failed to open the job queue", err)
		os.Exit(1)
	}
	defer jobs.Close()

	switch command {
	case "worker":
		var worker *queue.Worker
		if worker, err = newWorker(cfg, db, jobs); err == nil {
			err = runWorker(ctx, worker, jobs, cfg.Queue.RecoverOnStart)
		}
	default:
		err = serve(ctx, cfg, db, jobs)
	}
	if err != nil {
		logger.Error("Exiting after fatal error", err)
		os.Exit(1)
	}
}

func openQueue(ctx context.Context, cfg config.QueueConfig) (queue.Queue, error) {
	if cfg.Driver == "memory" {
		logger.Warning("Using the in-memory job queue; pending notifications are lost on restart")
		return queue.NewMemoryQueue(memoryQueueCapacity, cfg.ResultHistory), nil
	}
	q, err := queue.DialRedisQueue(ctx, cfg.RedisURL, cfg.Name, cfg.ResultHistory)
	if err != nil {
		return nil, err
	}
	logger.Success("Connected to Redis job queue " + cfg.Name)
	return q, nil
}

func newWorker(cfg *config.Config, db *gorm.DB, jobs queue.Queue) (*queue.Worker, error) {
	renderer, err := notification.NewRenderer(cfg.Mail.SiteURL)
	if err != nil {
		return nil, err
	}
	mailer, err := notification.NewSMTPMailer(cfg.SMTP)
	if err != nil {
		return nil, err
	}
	dispatcher := notification.NewDispatcher(db, operatorService.NewService(db, cfg.Language), mailer, renderer, cfg.Mail.DirectorEmail)

	worker := queue.NewWorker(jobs, queue.WorkerConfig{
		Concurrency:   cfg.Queue.Concurrency,
		MaxRetries:    cfg.Queue.MaxRetries,
		RetryDelay:    cfg.Queue.RetryDelay,
		SoftTimeLimit: cfg.Queue.SoftTimeLimit,
		HardTimeLimit: cfg.Queue.HardTimeLimit,
	})
	worker.Register(constants.JobSendBookingNotification, notification.NewJobHandler(dispatcher))
	return worker, nil
}

// runWorker processes jobs until ctx is done. With recoverJobs set it first
// requeues jobs a crashed worker left in flight, which is only safe while this
// is the queue's sole consumer.
func runWorker(ctx context.Context, worker *queue.Worker, jobs queue.Queue, recoverJobs bool) error {
	if rq, ok := jobs.(*queue.RedisQueue); ok && recoverJobs {
		recovered, err := rq.Recover(ctx)
		if err != nil {
			return fmt.Errorf("recover unfinished jobs: %w", err)
		}
		if recovered > 0 {
			logger.Warning(fmt.Sprintf("Requeued %d jobs left unfinished by a previous worker", recovered))
		}
	}
	return worker.Run(ctx)
}

func serve(ctx context.Context, cfg *config.Config, db *gorm.DB, jobs queue.Queue) error {
	auth, err := authService.NewService(cfg.Auth)
	if err != nil {
		return err
	}

	asyncLogger := logger.NewAsyncLogger(db)
	go asyncLogger.ProcessLog()
	defer asyncLogger.Close()

	app := routes.NewApp(routes.Dependencies{
		Config:    cfg,
		DB:        db,
		Logger:    asyncLogger,
		Auth:      auth,
		Bookings:  bookingService.NewService(db, jobs, cfg.Language),
		Operators: operatorService.NewService(db, cfg.Language),
		Jobs:      jobs,
	})

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	var workers sync.WaitGroup
	if cfg.Queue.EmbeddedWorker || cfg.Queue.Driver == "memory" {
		worker, err := newWorker(cfg, db, jobs)
		if err != nil {
			return err
		}
		workers.Add(1)
		go func() {
			defer workers.Done()
			// The embedded worker may share the queue with worker processes, so it never recovers.
			if err := runWorker(workerCtx, worker, jobs, false); err != nil {
				logger.Error("Embedded worker stopped", err)
			}
		}()
	}

	listenErr := make(chan error, 1)
	address := cfg.App.Host + ":" + cfg.App.Port
	go func() {
		logger.Success("Server is running on " + address +
			"\n\t\t\t\t\t\t******************************************************************************************\n")
		listenErr <- app.Listen(address)
	}()

	select {
	case err := <-listenErr:
		stopWorker()
		workers.Wait()
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down...")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Error("HTTP server shutdown", err)
	}
	stopWorker()
	workers.Wait()
	logger.Success("Shutdown complete")
	return nil
}
