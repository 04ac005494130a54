package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-module/carbon/v2"

	"taskminder/internal/core/domain/category"
	e "taskminder/internal/core/domain/errors"
	"taskminder/internal/core/domain/logging"
	"taskminder/internal/core/domain/reminder"
	"taskminder/internal/core/domain/task"
	"taskminder/internal/core/domain/user"
)

// Dispatcher resolves a reminder's recipient through its task, category
// and owning user, builds the notification message and hands it to the
// sender registered for the reminder's notification method.
type Dispatcher struct {
	log                logging.Logger
	taskRepository     task.Repository
	categoryRepository category.Repository
	userRepository     user.UserRepository
	senders            map[reminder.NotificationMethod]reminder.NotificationSender
	now                func() time.Time
}

func New(
	log logging.Logger,
	taskRepository task.Repository,
	categoryRepository category.Repository,
	userRepository user.UserRepository,
	senders map[reminder.NotificationMethod]reminder.NotificationSender,
	now func() time.Time,
) *Dispatcher {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if taskRepository == nil {
		panic(e.NewNilArgumentError("taskRepository"))
	}
	if categoryRepository == nil {
		panic(e.NewNilArgumentError("categoryRepository"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if len(senders) == 0 {
		panic("at least one notification sender must be registered")
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &Dispatcher{
		log:                log,
		taskRepository:     taskRepository,
		categoryRepository: categoryRepository,
		userRepository:     userRepository,
		senders:            senders,
		now:                now,
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, rem reminder.Reminder) error {
	t, err := d.taskRepository.GetByID(ctx, rem.TaskID)
	if errors.Is(err, task.ErrTaskDoesNotExist) {
		return reminder.ErrReminderOrphaned
	}
	if err != nil {
		return err
	}

	cat, err := d.categoryRepository.GetByID(ctx, t.CategoryID)
	if errors.Is(err, category.ErrCategoryDoesNotExist) {
		return reminder.ErrReminderOrphaned
	}
	if err != nil {
		return err
	}

	owner, err := d.userRepository.GetByID(ctx, cat.CreatedBy)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		return reminder.ErrReminderOrphaned
	}
	if err != nil {
		return err
	}

	sender, ok := d.senders[rem.Method]
	if !ok {
		return reminder.NewTransportError(
			rem.Method,
			fmt.Errorf("no sender registered for method %q", rem.Method),
		)
	}

	notification := buildNotification(owner, t, d.now())
	if err := sender.SendNotification(ctx, notification); err != nil {
		return reminder.NewTransportError(rem.Method, err)
	}

	d.log.Info(
		ctx,
		"Notification sent.",
		logging.Entry("reminderID", rem.ID),
		logging.Entry("taskID", t.ID),
		logging.Entry("method", rem.Method),
	)
	return nil
}

func buildNotification(owner user.User, t task.Task, now time.Time) reminder.Notification {
	dueInWords := carbon.Time2Carbon(t.DueDate).DiffForHumans(carbon.Time2Carbon(now))
	return reminder.Notification{
		Recipient: owner.Email,
		UserID:    owner.ID,
		Subject:   fmt.Sprintf("Reminder: %s", t.Title),
		Body: fmt.Sprintf(
			"You have an upcoming task: %s\nDue Date: %s (%s)\nDescription: %s",
			t.Title,
			t.DueDate.Format(time.RFC1123),
			dueInWords,
			t.Description,
		),
	}
}
