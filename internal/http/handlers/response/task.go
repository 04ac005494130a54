package response

import (
	"taskminder/internal/core/domain/task"
	"time"
)

type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
	CategoryID  int64     `json:"category_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func (t *Task) FromDomainTask(dt task.Task) {
	t.ID = int64(dt.ID)
	t.Title = dt.Title
	t.Description = dt.Description
	t.DueDate = dt.DueDate
	t.CategoryID = int64(dt.CategoryID)
	t.CreatedAt = dt.CreatedAt
}
