package response

import (
	"taskminder/internal/core/domain/reminder"
	"time"
)

type Reminder struct {
	ID        int64      `json:"id"`
	TaskID    int64      `json:"task_id"`
	Method    string     `json:"method"`
	At        time.Time  `json:"at"`
	CreatedAt time.Time  `json:"created_at"`
	SentAt    *time.Time `json:"sent_at"`
}

func (r *Reminder) FromDomainReminder(dr reminder.Reminder) {
	r.ID = int64(dr.ID)
	r.TaskID = int64(dr.TaskID)
	r.Method = dr.Method.String()
	r.At = dr.At
	r.CreatedAt = dr.CreatedAt
	if dr.SentAt.IsPresent {
		r.SentAt = &dr.SentAt.Value
	}
}
