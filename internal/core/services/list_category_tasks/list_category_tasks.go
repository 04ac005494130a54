package listcategorytasks

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
	UserID     user.ID
	CategoryID category.ID
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.UserID = u.ID
	return i
}

type Result struct {
	Tasks []task.Task
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
	cat, err := s.categoryRepository.GetByID(ctx, input.CategoryID)
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled):
		case errors.Is(err, category.ErrCategoryDoesNotExist):
			s.log.Info(ctx, "Category not found.", logging.Entry("input", input))
		default:
			logging.Error(ctx, s.log, err, logging.Entry("input", input))
		}
		return result, err
	}
	if cat.CreatedBy != input.UserID {
		s.log.Info(ctx, "Category belongs to another user.", logging.Entry("input", input))
		return result, category.ErrCategoryPermission
	}

	tasks, err := s.taskRepository.ReadByCategory(ctx, input.CategoryID)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	return Result{Tasks: tasks}, nil
}
