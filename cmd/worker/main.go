package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"venuedesk_backend/internal/events"
	"venuedesk_backend/internal/notifications"
	"venuedesk_backend/internal/scheduler"
	"venuedesk_backend/platform/config"
	"venuedesk_backend/platform/db"
	"venuedesk_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting reminder worker", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	eventBus := events.NewInMemoryBus(log)

	// Due reminders land in the notification inbox.
	notifications.NewModule(pool, eventBus, log)

	worker, err := scheduler.NewWorker(cfg, pool, eventBus, log)
	if err != nil {
		log.Error("failed to initialize worker", "error", err)
		panic("failed to initialize worker: " + err.Error())
	}

	log.Info("worker listening", "queue", cfg.AsynqQueueName)
	worker.Run(ctx)
}
