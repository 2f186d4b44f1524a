package scheduler

import (
	"context"
	"fmt"
	"time"

	"venuedesk_backend/internal/followups/repository"
	"venuedesk_backend/platform/config"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// Client enqueues reminder tasks for the worker process.
type Client struct {
	client *asynq.Client
	queue  string
}

// NewClient creates an asynq client from the scheduler configuration.
func NewClient(cfg config.SchedulerConfig) (*Client, error) {
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

	return &Client{
		client: asynq.NewClient(opt),
		queue:  queue,
	}, nil
}

// Close releases the underlying Redis connection.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// ScheduleReminder enqueues one reminder task at the follow-up's date and
// time. Implements the followups service's ReminderScheduler port.
func (c *Client) ScheduleReminder(ctx context.Context, f repository.FollowUp) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewFollowUpReminderTask(FollowUpReminderPayload{
		FollowUpID: f.ID.String(),
		EnquiryID:  f.EnquiryID.String(),
		DueDate:    f.FollowUpDate.Format("2006-01-02"),
		Notes:      f.Notes,
	})
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task,
		asynq.ProcessAt(reminderTime(f)),
		asynq.Queue(c.queue),
		asynq.TaskID(f.ID.String()))
	return err
}

// reminderTime combines the follow-up's date and clock time into one
// instant; an unparseable clock falls back to the start of the day.
func reminderTime(f repository.FollowUp) time.Time {
	day := f.FollowUpDate
	clock, err := time.Parse("15:04", f.FollowUpTime)
	if err != nil {
		return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.Local)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, time.Local)
}

func redisClientOpt(redisURL string) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: opt.TLSConfig,
	}, nil
}
