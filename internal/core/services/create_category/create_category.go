package createcategory

import (
	"context"
	"errors"
	"taskminder/internal/core/domain/category"
	e "taskminder/internal/core/domain/errors"
	"taskminder/internal/core/domain/logging"
	"taskminder/internal/core/domain/user"
	"taskminder/internal/core/services"
	"taskminder/internal/core/services/auth"
	"time"
)

type Input struct {
	UserID user.ID
	Name   string
	Type   string
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
	now                func() time.Time
}

func New(
	log logging.Logger,
	categoryRepository category.Repository,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if categoryRepository == nil {
		panic(e.NewNilArgumentError("categoryRepository"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                log,
		categoryRepository: categoryRepository,
		now:                now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	cat, err := s.categoryRepository.Create(ctx, category.CreateInput{
		Name:      input.Name,
		Type:      input.Type,
		CreatedBy: input.UserID,
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
		"Category has been created.",
		logging.Entry("categoryId", cat.ID),
		logging.Entry("userId", input.UserID),
	)
	return Result{Category: cat}, nil
}
