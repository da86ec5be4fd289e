package category

import "time"

// Category is the schema-bound record for the categories table. A non-nil
// DeletedAt marks the row as soft-deleted; every read query filters on it.
type Category struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

func (c *Category) IsDeleted() bool {
	return c.DeletedAt != nil
}
