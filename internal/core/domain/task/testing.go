package task

import (
	"context"
	"sort"
	"sync"
	"taskminder/internal/core/domain/category"
	"taskminder/internal/core/domain/user"
	"time"
)

type TestTaskRepository struct {
	Tasks       map[ID]Task
	Categories  *category.TestCategoryRepository
	CreateError error
	GetError    error
	nextID      ID
	lock        sync.Mutex
}

func NewTestTaskRepository(categories *category.TestCategoryRepository) *TestTaskRepository {
	return &TestTaskRepository{
		Tasks:      make(map[ID]Task),
		Categories: categories,
	}
}

func (r *TestTaskRepository) Create(ctx context.Context, input CreateInput) (t Task, err error) {
	if r.CreateError != nil {
		return t, r.CreateError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.nextID++
	t = Task{
		ID:          r.nextID,
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		CategoryID:  input.CategoryID,
		CreatedAt:   input.CreatedAt,
	}
	r.Tasks[t.ID] = t
	return t, nil
}

func (r *TestTaskRepository) GetByID(ctx context.Context, id ID) (t Task, err error) {
	if r.GetError != nil {
		return t, r.GetError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	t, ok := r.Tasks[id]
	if !ok {
		return t, ErrTaskDoesNotExist
	}
	return t, nil
}

func (r *TestTaskRepository) ReadByCategory(ctx context.Context, categoryID category.ID) ([]Task, error) {
	if r.GetError != nil {
		return nil, r.GetError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	tasks := make([]Task, 0)
	for _, t := range r.Tasks {
		if t.CategoryID == categoryID {
			tasks = append(tasks, t)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

func (r *TestTaskRepository) ReadUpcoming(
	ctx context.Context,
	userID user.ID,
	dueAfter time.Time,
) ([]Task, error) {
	if r.GetError != nil {
		return nil, r.GetError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	tasks := make([]Task, 0)
	for _, t := range r.Tasks {
		cat, err := r.Categories.GetByID(ctx, t.CategoryID)
		if err != nil {
			continue
		}
		if cat.CreatedBy == userID && !t.DueDate.Before(dueAfter) {
			tasks = append(tasks, t)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].DueDate.Before(tasks[j].DueDate) })
	return tasks, nil
}

func (r *TestTaskRepository) Delete(ctx context.Context, id ID) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if _, ok := r.Tasks[id]; !ok {
		return ErrTaskDoesNotExist
	}
	delete(r.Tasks, id)
	return nil
}
