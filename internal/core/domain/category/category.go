package category

import (
	"taskminder/internal/core/domain/user"
	"time"
)

type ID int64

type Category struct {
	ID        ID
	Name      string
	Type      string
	CreatedBy user.ID
	CreatedAt time.Time
}
