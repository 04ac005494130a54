package reminder

import (
	c "taskminder/internal/core/domain/common"
	"taskminder/internal/core/domain/task"
	"time"
)

type ID int64

// DEFAULT_LOOKAHEAD is the window before a reminder's fire time during
// which it is already eligible for dispatch. It absorbs imprecise tick
// timing: a reminder is sent slightly early rather than late.
const DEFAULT_LOOKAHEAD = 10 * time.Minute

type Reminder struct {
	ID        ID
	TaskID    task.ID
	Method    NotificationMethod
	At        time.Time
	CreatedAt time.Time
	SentAt    c.Optional[time.Time]
}

func (r *Reminder) IsSent() bool {
	return r.SentAt.IsPresent
}

// MinutesUntil returns the whole minutes remaining until at, rounded
// towards negative infinity. Eligible reminders selected under the
// lookahead window always yield a non-negative value unless the clock
// moved backwards between selection and dispatch.
func MinutesUntil(now time.Time, at time.Time) int {
	d := at.Sub(now)
	m := int(d / time.Minute)
	if d < 0 && d%time.Minute != 0 {
		m--
	}
	return m
}
