package reminder

import (
	"context"
	c "taskminder/internal/core/domain/common"
	"taskminder/internal/core/domain/user"
)

// Notification is a single outbound message built from a reminder and
// its task, addressed to the task's owner.
type Notification struct {
	Recipient c.Email
	UserID    user.ID
	Subject   string
	Body      string
}

// NotificationSender is the transport capability for one notification
// method. Implementations do not retry; a failure leaves the reminder
// unsent so the next tick picks it up again.
type NotificationSender interface {
	SendNotification(ctx context.Context, notification Notification) error
}

// Dispatcher formats and hands off a single reminder's message. It
// resolves the recipient at dispatch time (task -> category -> owner)
// and fails with ErrReminderOrphaned if any link is missing, or with a
// *TransportError if the outbound send fails.
type Dispatcher interface {
	Dispatch(ctx context.Context, rem Reminder) error
}
