package category

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// CategoryRepository translates entity operations into queries. All reads
// exclude soft-deleted rows.
type CategoryRepository interface {
	Create(ctx context.Context, entity *Category) (*Category, error)

	// Update persists the given fields and returns the post-update row.
	Update(ctx context.Context, entity *Category) (*Category, error)

	// SoftDelete stamps deleted_at on a live row. Returns
	// ErrCategoryNotFound when no live row matches.
	SoftDelete(ctx context.Context, id int64) error

	GetByID(ctx context.Context, id int64) (*Category, error)

	GetAll(ctx context.Context) ([]Category, error)

	// FindByName matches the name exactly, case-insensitively, against live
	// rows. Returns ErrCategoryNotFound on no match.
	FindByName(ctx context.Context, name string) (*Category, error)

	// WithTx returns a copy of the repository that executes against tx.
	// Transactional copies bypass the cache entirely.
	WithTx(tx pgx.Tx) CategoryRepository

	// InvalidateCache drops cached entries. Callers invoke it after a
	// transaction commits, so stale reads cannot repopulate keys in the
	// window before the write becomes visible.
	InvalidateCache(ctx context.Context)
}
