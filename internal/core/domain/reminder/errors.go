package reminder

import (
	"errors"
	"fmt"
)

var (
	ErrReminderDoesNotExist = errors.New("reminder does not exist")

	// ErrReminderAlreadySent is returned by MarkSent when another writer
	// has already transitioned the reminder to sent. It resolves a race,
	// callers treat it as success.
	ErrReminderAlreadySent = errors.New("reminder has already been sent")

	// ErrReminderOrphaned is returned by dispatch when the reminder's
	// task, category or owning user no longer exists.
	ErrReminderOrphaned = errors.New("reminder references a missing task, category or user")

	ErrReminderAfterTaskDue = errors.New("reminder time is after the task due date")
	ErrReminderTimeNotUTC   = errors.New("reminder time must be UTC")
	ErrReminderPermission   = errors.New("reminder belongs to another user")
)

// TransportError wraps a failure of the outbound notification transport.
// The reminder stays unsent and is naturally retried on the next tick.
type TransportError struct {
	Method NotificationMethod
	Err    error
}

func NewTransportError(method NotificationMethod, err error) *TransportError {
	return &TransportError{Method: method, Err: err}
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("could not send %s notification: %v", e.Method, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
