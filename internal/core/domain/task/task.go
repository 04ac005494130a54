package task

import (
	"taskminder/internal/core/domain/category"
	"time"
)

type ID int64

type Task struct {
	ID          ID
	Title       string
	Description string
	DueDate     time.Time
	CategoryID  category.ID
	CreatedAt   time.Time
}
