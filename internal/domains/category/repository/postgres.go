package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"moviecatalog-backend/internal/domains/category"
	"moviecatalog-backend/internal/infrastructure/database"
	"moviecatalog-backend/pkg/cache"
	"moviecatalog-backend/pkg/logger"
)

const (
	keyAll   = "category:all"
	cacheTTL = 5 * time.Minute

	// Partial unique index on lower(name) over live rows; see migrations.
	uniqueNameConstraint = "idx_categories_name_live"
)

func keyID(id int64) string {
	return fmt.Sprintf("category:id:%d", id)
}

type postgresRepository struct {
	db    database.Executor
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) category.CategoryRepository {
	return &postgresRepository{
		db:    pool,
		cache: cache,
	}
}

// WithTx returns a copy bound to tx with the cache dropped: in-transaction
// reads must see the transaction's own writes, and nothing may repopulate
// keys from uncommitted state. The service invalidates after commit.
func (r *postgresRepository) WithTx(tx pgx.Tx) category.CategoryRepository {
	return &postgresRepository{db: tx}
}

const categoryColumns = "id, name, created_at, updated_at, deleted_at"

func scanCategory(row pgx.Row) (*category.Category, error) {
	c := &category.Category{}
	err := row.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *postgresRepository) Create(ctx context.Context, entity *category.Category) (*category.Category, error) {
	const query = `
		INSERT INTO categories (name)
		VALUES ($1)
		RETURNING ` + categoryColumns

	created, err := scanCategory(r.db.QueryRow(ctx, query, entity.Name))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == uniqueNameConstraint {
			return nil, category.ErrDuplicateCategory
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	r.invalidate(ctx)
	return created, nil
}

func (r *postgresRepository) Update(ctx context.Context, entity *category.Category) (*category.Category, error) {
	const query = `
		UPDATE categories
		SET name = $2, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING ` + categoryColumns

	updated, err := scanCategory(r.db.QueryRow(ctx, query, entity.ID, entity.Name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, category.ErrCategoryNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == uniqueNameConstraint {
			return nil, category.ErrDuplicateCategory
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	r.invalidate(ctx)
	return updated, nil
}

func (r *postgresRepository) SoftDelete(ctx context.Context, id int64) error {
	const query = `
		UPDATE categories
		SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return category.ErrCategoryNotFound
	}

	r.invalidate(ctx)
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*category.Category, error) {
	if r.cache != nil {
		cached := &category.Category{}
		if found, err := r.cache.Get(ctx, keyID(id), cached); err != nil {
			logger.Error("category cache get failed", err)
		} else if found {
			return cached, nil
		}
	}

	const query = `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE id = $1 AND deleted_at IS NULL`

	c, err := scanCategory(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, category.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, keyID(id), c, cacheTTL); err != nil {
			logger.Error("category cache set failed", err)
		}
	}
	return c, nil
}

func (r *postgresRepository) GetAll(ctx context.Context) ([]category.Category, error) {
	if r.cache != nil {
		var cached []category.Category
		if found, err := r.cache.Get(ctx, keyAll, &cached); err != nil {
			logger.Error("category cache get failed", err)
		} else if found {
			return cached, nil
		}
	}

	const query = `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE deleted_at IS NULL
		ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]category.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, keyAll, categories, cacheTTL); err != nil {
			logger.Error("category cache set failed", err)
		}
	}
	return categories, nil
}

func (r *postgresRepository) FindByName(ctx context.Context, name string) (*category.Category, error) {
	const query = `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE LOWER(name) = LOWER($1) AND deleted_at IS NULL`

	c, err := scanCategory(r.db.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, category.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category by name: %w", err)
	}
	return c, nil
}

// InvalidateCache drops cached entries once a transactional write is
// committed and visible to other readers.
func (r *postgresRepository) InvalidateCache(ctx context.Context) {
	r.invalidate(ctx)
}

// invalidate drops category keys and the movie keys too: movie DTOs embed
// the owning category's name. Cache failures only get logged.
func (r *postgresRepository) invalidate(ctx context.Context) {
	if r.cache == nil {
		return
	}
	if err := r.cache.DeletePattern(ctx, "category:*"); err != nil {
		logger.Error("category cache invalidation failed", err)
	}
	if err := r.cache.DeletePattern(ctx, "movie:*"); err != nil {
		logger.Error("movie cache invalidation failed", err)
	}
}
