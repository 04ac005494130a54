package user

import (
	"context"
	"sync"
	c "taskminder/internal/core/domain/common"
)

type TestUserRepository struct {
	Users       map[ID]User
	CreateError error
	GetError    error
	nextID      ID
	lock        sync.Mutex
}

func NewTestUserRepository() *TestUserRepository {
	return &TestUserRepository{Users: make(map[ID]User)}
}

func (r *TestUserRepository) Create(ctx context.Context, input CreateUserInput) (u User, err error) {
	if r.CreateError != nil {
		return u, r.CreateError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, existing := range r.Users {
		if existing.Email == input.Email {
			return u, &EmailAlreadyExistsError{Email: input.Email}
		}
	}
	r.nextID++
	u = User{
		ID:           r.nextID,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		CreatedAt:    input.CreatedAt,
	}
	r.Users[u.ID] = u
	return u, nil
}

func (r *TestUserRepository) GetByID(ctx context.Context, id ID) (u User, err error) {
	if r.GetError != nil {
		return u, r.GetError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	u, ok := r.Users[id]
	if !ok {
		return u, ErrUserDoesNotExist
	}
	return u, nil
}

func (r *TestUserRepository) GetByEmail(ctx context.Context, email c.Email) (u User, err error) {
	if r.GetError != nil {
		return u, r.GetError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, existing := range r.Users {
		if existing.Email == email {
			return existing, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *TestUserRepository) Delete(id ID) {
	r.lock.Lock()
	defer r.lock.Unlock()
	delete(r.Users, id)
}

type TestSessionRepository struct {
	Sessions    map[SessionToken]ID
	Users       *TestUserRepository
	CreateError error
	lock        sync.Mutex
}

func NewTestSessionRepository(users *TestUserRepository) *TestSessionRepository {
	return &TestSessionRepository{
		Sessions: make(map[SessionToken]ID),
		Users:    users,
	}
}

func (r *TestSessionRepository) Create(ctx context.Context, input CreateSessionInput) error {
	if r.CreateError != nil {
		return r.CreateError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.Sessions[input.Token] = input.UserID
	return nil
}

func (r *TestSessionRepository) GetUserByToken(ctx context.Context, token SessionToken) (u User, err error) {
	r.lock.Lock()
	userID, ok := r.Sessions[token]
	r.lock.Unlock()
	if !ok {
		return u, ErrUserDoesNotExist
	}
	return r.Users.GetByID(ctx, userID)
}

func (r *TestSessionRepository) Delete(ctx context.Context, token SessionToken) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if _, ok := r.Sessions[token]; !ok {
		return ErrSessionDoesNotExist
	}
	delete(r.Sessions, token)
	return nil
}
