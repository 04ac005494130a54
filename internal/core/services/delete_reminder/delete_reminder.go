package deletereminder

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
)

type Input struct {
	UserID     user.ID
	ReminderID reminder.ID
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
}

func New(
	log logging.Logger,
	categoryRepository category.Repository,
	taskRepository task.Repository,
	reminderRepository reminder.Repository,
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
	return &service{
		log:                log,
		categoryRepository: categoryRepository,
		taskRepository:     taskRepository,
		reminderRepository: reminderRepository,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	rem, err := s.reminderRepository.GetByID(ctx, input.ReminderID)
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled):
		case errors.Is(err, reminder.ErrReminderDoesNotExist):
			s.log.Info(ctx, "Reminder not found.", logging.Entry("input", input))
		default:
			logging.Error(ctx, s.log, err, logging.Entry("input", input))
		}
		return result, err
	}

	t, err := s.taskRepository.GetByID(ctx, rem.TaskID)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	cat, err := s.categoryRepository.GetByID(ctx, t.CategoryID)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	if cat.CreatedBy != input.UserID {
		s.log.Info(ctx, "Reminder belongs to another user.", logging.Entry("input", input))
		return result, reminder.ErrReminderPermission
	}

	err = s.reminderRepository.Delete(ctx, rem.ID)
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled):
		case errors.Is(err, reminder.ErrReminderDoesNotExist):
			// deleted concurrently, nothing to do
		default:
			logging.Error(ctx, s.log, err, logging.Entry("input", input))
		}
		return result, err
	}

	s.log.Info(
		ctx,
		"Reminder has been deleted.",
		logging.Entry("reminderId", rem.ID),
		logging.Entry("userId", input.UserID),
	)
	return Result{Reminder: rem}, nil
}
