package deletecategory

import (
	"context"
	"errors"
	"taskminder/internal/core/domain/category"
	e "taskminder/internal/core/domain/errors"
	"taskminder/internal/core/domain/logging"
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
	Category category.Category
}

type service struct {
	log                logging.Logger
	categoryRepository category.Repository
}

func New(
	log logging.Logger,
	categoryRepository category.Repository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if categoryRepository == nil {
		panic(e.NewNilArgumentError("categoryRepository"))
	}
	return &service{
		log:                log,
		categoryRepository: categoryRepository,
	}
}

// Run deletes the category with its tasks and their reminders, the
// store cascades the dependents.
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

	err = s.categoryRepository.Delete(ctx, cat.ID)
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled):
		case errors.Is(err, category.ErrCategoryDoesNotExist):
			// deleted concurrently, nothing to do
		default:
			logging.Error(ctx, s.log, err, logging.Entry("input", input))
		}
		return result, err
	}

	s.log.Info(
		ctx,
		"Category has been deleted.",
		logging.Entry("categoryId", cat.ID),
		logging.Entry("userId", input.UserID),
	)
	return Result{Category: cat}, nil
}
