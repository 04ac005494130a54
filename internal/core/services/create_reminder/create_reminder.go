package createreminder

import (
	"context"
	"errors"
	"taskminder/internal/core/domain/category"
	e "taskminder/internal/core/domain/errors"
	"taskminder/internal/core/domain/logging"
	"taskminder/internal/core/domain/reminder"
	"taskminder/internal/core/domain/task"
	"taskminder/internal/core/domain/user"
	"taskminder/internal/core/services"
	"taskminder/internal/core/services/auth"
	"time"
)

type Input struct {
	UserID user.ID
	TaskID task.ID
	Method reminder.NotificationMethod
	At     time.Time
}

func (i Input) Validate() error {
	if i.At.Location() != time.UTC {
		return reminder.ErrReminderTimeNotUTC
	}
	return nil
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.UserID = u.ID
	return i
}

type Result struct {
	Reminder reminder.Reminder
}

type service struct {
	log                logging.Logger
	categoryRepository category.Repository
	taskRepository     task.Repository
	reminderRepository reminder.Repository
	now                func() time.Time
}

func New(
	log logging.Logger,
	categoryRepository category.Repository,
	taskRepository task.Repository,
	reminderRepository reminder.Repository,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if categoryRepository == nil {
		panic(e.NewNilArgumentError("categoryRepository"))
	}
	if taskRepository == nil {
		panic(e.NewNilArgumentError("taskRepository"))
	}
	if reminderRepository == nil {
		panic(e.NewNilArgumentError("reminderRepository"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                log,
		categoryRepository: categoryRepository,
		taskRepository:     taskRepository,
		reminderRepository: reminderRepository,
		now:                now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if err := input.Validate(); err != nil {
		return result, err
	}

	t, err := s.taskRepository.GetByID(ctx, input.TaskID)
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled):
		case errors.Is(err, task.ErrTaskDoesNotExist):
			s.log.Info(ctx, "Task not found.", logging.Entry("input", input))
		default:
			logging.Error(ctx, s.log, err, logging.Entry("input", input))
		}
		return result, err
	}

	cat, err := s.categoryRepository.GetByID(ctx, t.CategoryID)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	if cat.CreatedBy != input.UserID {
		s.log.Info(ctx, "Task belongs to another user.", logging.Entry("input", input))
		return result, task.ErrTaskPermission
	}

	// A reminder fired after the task is already due is useless,
	// reject it up front.
	if input.At.After(t.DueDate) {
		return result, reminder.ErrReminderAfterTaskDue
	}

	rem, err := s.reminderRepository.Create(ctx, reminder.CreateInput{
		TaskID:    input.TaskID,
		Method:    input.Method,
		At:        input.At,
		CreatedAt: s.now(),
	})
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	s.log.Info(
		ctx,
		"Reminder has been created.",
		logging.Entry("reminderId", rem.ID),
		logging.Entry("taskId", input.TaskID),
		logging.Entry("at", rem.At),
		logging.Entry("method", rem.Method),
	)
	return Result{Reminder: rem}, nil
}
