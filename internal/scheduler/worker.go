package scheduler

import (
	"context"
	"fmt"
	"time"

	"venuedesk_backend/internal/events"
	"venuedesk_backend/internal/followups/repository"
	"venuedesk_backend/platform/config"
	"venuedesk_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Worker consumes reminder tasks and publishes FollowUpDue events. The
// notifications module subscribed on the same bus turns them into inbox rows.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	repo   *repository.Repository
	bus    events.Bus
	log    *logger.Logger
}

// NewWorker creates an asynq server from the scheduler configuration.
func NewWorker(cfg config.SchedulerConfig, pool *pgxpool.Pool, bus events.Bus, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		repo:   repository.New(pool),
		bus:    bus,
		log:    log,
	}

	mux.HandleFunc(TaskFollowUpReminder, w.handleFollowUpReminder)

	return w, nil
}

func (w *Worker) handleFollowUpReminder(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseFollowUpReminderPayload(task)
	if err != nil {
		return err
	}

	followUp, err := w.resolve(ctx, payload)
	if err != nil {
		return err
	}
	if followUp == nil {
		// Completed before the reminder fired; nothing to announce.
		return nil
	}

	dueDate, err := time.Parse("2006-01-02", payload.DueDate)
	if err != nil {
		dueDate = followUp.FollowUpDate
	}

	return w.bus.PublishSync(ctx, events.FollowUpDue{
		BaseEvent:  events.NewBaseEvent(),
		FollowUpID: followUp.ID,
		EnquiryID:  followUp.EnquiryID,
		DueDate:    dueDate,
		Notes:      followUp.Notes,
	})
}

// resolve loads the follow-up and filters out the ones already completed.
func (w *Worker) resolve(ctx context.Context, payload FollowUpReminderPayload) (*repository.FollowUp, error) {
	id, err := uuid.Parse(payload.FollowUpID)
	if err != nil {
		return nil, err
	}

	followUp, err := w.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if followUp.Completed {
		return nil, nil
	}
	return &followUp, nil
}

// Run serves tasks until the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
