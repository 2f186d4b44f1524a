// Package scheduler provides the asynq client and worker for follow-up
// reminders.
package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskFollowUpReminder = "followups.reminder"

type FollowUpReminderPayload struct {
	FollowUpID string `json:"followUpId"`
	EnquiryID  string `json:"enquiryId"`
	DueDate    string `json:"dueDate"` // YYYY-MM-DD
	Notes      string `json:"notes,omitempty"`
}

func NewFollowUpReminderTask(payload FollowUpReminderPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskFollowUpReminder, data), nil
}

func ParseFollowUpReminderPayload(task *asynq.Task) (FollowUpReminderPayload, error) {
	var payload FollowUpReminderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return FollowUpReminderPayload{}, err
	}
	return payload, nil
}
