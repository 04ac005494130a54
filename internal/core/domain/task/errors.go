package task

import "errors"

var (
	ErrTaskDoesNotExist = errors.New("task does not exist")
	ErrTaskPermission   = errors.New("task belongs to another user")
)
