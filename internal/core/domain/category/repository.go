package category

import (
	"context"
	"taskminder/internal/core/domain/user"
	"time"
)

type CreateInput struct {
	Name      string
	Type      string
	CreatedBy user.ID
	CreatedAt time.Time
}

type Repository interface {
	Create(ctx context.Context, input CreateInput) (Category, error)
	GetByID(ctx context.Context, id ID) (Category, error)
	ReadByUser(ctx context.Context, userID user.ID) ([]Category, error)
	Delete(ctx context.Context, id ID) error
}
