package movie

import "time"

// Movie is the schema-bound record for the movies table. CategoryName is
// populated by the join in read queries and never written back.
type Movie struct {
	ID          int64
	Title       string
	Description string
	CategoryID  int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time

	CategoryName *string
}

func (m *Movie) IsDeleted() bool {
	return m.DeletedAt != nil
}

// SearchParams are the combined filters for the movie list. Zero values mean
// "not set"; the service applies defaults before the query runs.
type SearchParams struct {
	Page         int
	ItemsPerPage int
	SearchQuery  string
	CategoryID   int64
	SortBy       string
	SortOrder    string
}
