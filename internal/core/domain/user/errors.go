package user

import (
	"errors"
	"fmt"
	c "taskminder/internal/core/domain/common"
)

var (
	ErrUserDoesNotExist    = errors.New("user does not exist")
	ErrSessionDoesNotExist = errors.New("session does not exist")
	ErrInvalidCredentials  = errors.New("invalid credentials")
)

type EmailAlreadyExistsError struct {
	Email c.Email
}

func (e *EmailAlreadyExistsError) Error() string {
	return fmt.Sprintf("user with email %s already exists", e.Email)
}
