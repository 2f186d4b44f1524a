package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"venuedesk_backend/internal/followups/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type stubSchedulerConfig struct {
	redisURL string
	queue    string
}

func (c stubSchedulerConfig) GetRedisURL() string       { return c.redisURL }
func (c stubSchedulerConfig) GetAsynqQueueName() string { return c.queue }
func (c stubSchedulerConfig) GetAsynqConcurrency() int  { return 1 }

func TestNewClientRequiresRedisURL(t *testing.T) {
	if _, err := NewClient(stubSchedulerConfig{}); err == nil {
		t.Fatal("expected an error without a redis url")
	}
}

func TestScheduleReminderEnqueuesOnce(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient(stubSchedulerConfig{redisURL: "redis://" + mr.Addr(), queue: "venuedesk"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.Close()

	followUp := repository.FollowUp{
		ID:           uuid.New(),
		EnquiryID:    uuid.New(),
		FollowUpDate: time.Now().AddDate(0, 0, 3),
		FollowUpTime: "09:00",
		Notes:        "call back about catering",
	}

	if err := client.ScheduleReminder(context.Background(), followUp); err != nil {
		t.Fatalf("ScheduleReminder: %v", err)
	}

	// The task id pins one reminder per follow-up; a second enqueue for the
	// same follow-up is a duplicate.
	err = client.ScheduleReminder(context.Background(), followUp)
	if err == nil || !errors.Is(err, asynq.ErrTaskIDConflict) {
		t.Fatalf("expected a task id conflict on re-enqueue, got %v", err)
	}
}

func TestReminderTime(t *testing.T) {
	day := time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC)

	at := reminderTime(repository.FollowUp{FollowUpDate: day, FollowUpTime: "14:30"})
	if at.Hour() != 14 || at.Minute() != 30 {
		t.Errorf("clock = %02d:%02d, want 14:30", at.Hour(), at.Minute())
	}
	if at.Year() != 2026 || at.Month() != time.July || at.Day() != 4 {
		t.Errorf("date = %v, want 2026-07-04", at)
	}

	fallback := reminderTime(repository.FollowUp{FollowUpDate: day, FollowUpTime: "half past nine"})
	if fallback.Hour() != 0 || fallback.Minute() != 0 {
		t.Errorf("unparseable clock should fall back to midnight, got %v", fallback)
	}
}

func TestFollowUpReminderPayloadRoundTrip(t *testing.T) {
	payload := FollowUpReminderPayload{
		FollowUpID: uuid.NewString(),
		EnquiryID:  uuid.NewString(),
		DueDate:    "2026-07-04",
		Notes:      "share revised quote",
	}

	task, err := NewFollowUpReminderTask(payload)
	if err != nil {
		t.Fatalf("NewFollowUpReminderTask: %v", err)
	}
	if task.Type() != TaskFollowUpReminder {
		t.Errorf("task type = %q, want %q", task.Type(), TaskFollowUpReminder)
	}

	got, err := ParseFollowUpReminderPayload(task)
	if err != nil {
		t.Fatalf("ParseFollowUpReminderPayload: %v", err)
	}
	if got != payload {
		t.Errorf("payload = %+v, want %+v", got, payload)
	}
}
