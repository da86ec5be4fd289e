package movie

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// MovieRepository translates entity operations into queries. All reads
// exclude soft-deleted rows and join the owning category's name.
type MovieRepository interface {
	Create(ctx context.Context, entity *Movie) (*Movie, error)

	// Update persists the given fields and returns the post-update row.
	Update(ctx context.Context, entity *Movie) (*Movie, error)

	// SoftDelete stamps deleted_at on a live row. Returns ErrMovieNotFound
	// when no live row matches.
	SoftDelete(ctx context.Context, id int64) error

	GetByID(ctx context.Context, id int64) (*Movie, error)

	// Search applies the combined filters: substring title match, category
	// filter, pagination and sorting. Params must be sanitized by the caller.
	Search(ctx context.Context, params SearchParams) ([]Movie, error)

	// FindByTitle matches the title exactly, case-insensitively, against
	// live rows. Returns ErrMovieNotFound on no match.
	FindByTitle(ctx context.Context, title string) (*Movie, error)

	// FindByCategoryID returns all live movies referencing the category.
	FindByCategoryID(ctx context.Context, categoryID int64) ([]Movie, error)

	// WithTx returns a copy of the repository that executes against tx.
	// Transactional copies bypass the cache entirely.
	WithTx(tx pgx.Tx) MovieRepository

	// InvalidateCache drops cached entries. Callers invoke it after a
	// transaction commits, so stale reads cannot repopulate keys in the
	// window before the write becomes visible.
	InvalidateCache(ctx context.Context)
}
