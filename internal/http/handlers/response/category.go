package response

import (
	"taskminder/internal/core/domain/category"
	"time"
)

type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	CreatedBy int64     `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Category) FromDomainCategory(dc category.Category) {
	c.ID = int64(dc.ID)
	c.Name = dc.Name
	c.Type = dc.Type
	c.CreatedBy = int64(dc.CreatedBy)
	c.CreatedAt = dc.CreatedAt
}
