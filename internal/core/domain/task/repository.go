package task

import (
	"context"
	"taskminder/internal/core/domain/category"
	"taskminder/internal/core/domain/user"
	"time"
)

type CreateInput struct {
	Title       string
	Description string
	DueDate     time.Time
	CategoryID  category.ID
	CreatedAt   time.Time
}

type Repository interface {
	Create(ctx context.Context, input CreateInput) (Task, error)
	GetByID(ctx context.Context, id ID) (Task, error)
	ReadByCategory(ctx context.Context, categoryID category.ID) ([]Task, error)
	// ReadUpcoming returns the user's tasks with a due date not earlier
	// than dueAfter, ordered by due date ascending.
	ReadUpcoming(ctx context.Context, userID user.ID, dueAfter time.Time) ([]Task, error)
	Delete(ctx context.Context, id ID) error
}
