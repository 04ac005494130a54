package listusercategories

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
	UserID user.ID
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.UserID = u.ID
	return i
}

type Result struct {
	Categories []category.Category
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

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	categories, err := s.categoryRepository.ReadByUser(ctx, input.UserID)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	return Result{Categories: categories}, nil
}
