package reminder

import (
	"context"
	"taskminder/internal/core/domain/task"
	"time"
)

type CreateInput struct {
	TaskID    task.ID
	Method    NotificationMethod
	At        time.Time
	CreatedAt time.Time
}

type SelectDueInput struct {
	Now       time.Time
	Lookahead time.Duration
}

type Repository interface {
	Create(ctx context.Context, input CreateInput) (Reminder, error)
	GetByID(ctx context.Context, id ID) (Reminder, error)
	ReadByTask(ctx context.Context, taskID task.ID) ([]Reminder, error)

	// SelectDue returns unsent reminders whose fire time is within
	// Now+Lookahead and whose task due date is not before the fire time,
	// ordered by fire time ascending, ties broken by ID ascending.
	SelectDue(ctx context.Context, input SelectDueInput) ([]Reminder, error)

	// MarkSent transitions the reminder to sent only if it is still
	// unsent. It returns ErrReminderAlreadySent if another writer won the
	// race and ErrReminderDoesNotExist if the row is gone. This
	// conditional write is the sole guard against double delivery.
	MarkSent(ctx context.Context, id ID, sentAt time.Time) error

	Delete(ctx context.Context, id ID) error
}
