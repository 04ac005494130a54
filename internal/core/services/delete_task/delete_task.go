package deletetask

import (
	"context"
	"errors"
	"taskminder/internal/core/domain/category"
	e "taskminder/internal/core/domain/errors"
	"taskminder/internal/core/domain/logging"
	"taskminder/internal/core/domain/task"
	"taskminder/internal/core/domain/user"
	"taskminder/internal/core/services"
	"taskminder/internal/core/services/auth"
)

type Input struct {
	UserID user.ID
	TaskID task.ID
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.UserID = u.ID
	return i
}

type Result struct {
	Task task.Task
}

type service struct {
	log                logging.Logger
	categoryRepository category.Repository
	taskRepository     task.Repository
}

func New(
	log logging.Logger,
	categoryRepository category.Repository,
	taskRepository task.Repository,
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
	return &service{
		log:                log,
		categoryRepository: categoryRepository,
		taskRepository:     taskRepository,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
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

	err = s.taskRepository.Delete(ctx, t.ID)
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled):
		case errors.Is(err, task.ErrTaskDoesNotExist):
			// deleted concurrently, nothing to do
		default:
			logging.Error(ctx, s.log, err, logging.Entry("input", input))
		}
		return result, err
	}

	s.log.Info(
		ctx,
		"Task has been deleted.",
		logging.Entry("taskId", t.ID),
		logging.Entry("userId", input.UserID),
	)
	return Result{Task: t}, nil
}
