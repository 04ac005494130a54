package category

import (
	"context"
	"sync"
	"taskminder/internal/core/domain/user"
)

type TestCategoryRepository struct {
	Categories  map[ID]Category
	CreateError error
	GetError    error
	nextID      ID
	lock        sync.Mutex
}

func NewTestCategoryRepository() *TestCategoryRepository {
	return &TestCategoryRepository{Categories: make(map[ID]Category)}
}

func (r *TestCategoryRepository) Create(ctx context.Context, input CreateInput) (cat Category, err error) {
	if r.CreateError != nil {
		return cat, r.CreateError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.nextID++
	cat = Category{
		ID:        r.nextID,
		Name:      input.Name,
		Type:      input.Type,
		CreatedBy: input.CreatedBy,
		CreatedAt: input.CreatedAt,
	}
	r.Categories[cat.ID] = cat
	return cat, nil
}

func (r *TestCategoryRepository) GetByID(ctx context.Context, id ID) (cat Category, err error) {
	if r.GetError != nil {
		return cat, r.GetError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	cat, ok := r.Categories[id]
	if !ok {
		return cat, ErrCategoryDoesNotExist
	}
	return cat, nil
}

func (r *TestCategoryRepository) ReadByUser(ctx context.Context, userID user.ID) ([]Category, error) {
	if r.GetError != nil {
		return nil, r.GetError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	categories := make([]Category, 0)
	for _, cat := range r.Categories {
		if cat.CreatedBy == userID {
			categories = append(categories, cat)
		}
	}
	return categories, nil
}

func (r *TestCategoryRepository) Delete(ctx context.Context, id ID) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if _, ok := r.Categories[id]; !ok {
		return ErrCategoryDoesNotExist
	}
	delete(r.Categories, id)
	return nil
}
