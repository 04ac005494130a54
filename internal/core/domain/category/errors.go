package category

import "errors"

var (
	ErrCategoryDoesNotExist = errors.New("category does not exist")
	ErrCategoryPermission   = errors.New("category belongs to another user")
)
