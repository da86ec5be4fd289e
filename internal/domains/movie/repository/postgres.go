package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"moviecatalog-backend/internal/domains/movie"
	"moviecatalog-backend/internal/infrastructure/database"
	"moviecatalog-backend/internal/shared/utils"
	"moviecatalog-backend/pkg/cache"
	"moviecatalog-backend/pkg/logger"
)

const (
	cacheTTL = 5 * time.Minute

	// Partial unique index on lower(title) over live rows; see migrations.
	uniqueTitleConstraint = "idx_movies_title_live"
)

// allowedSortColumns whitelists sort keys so user input never reaches the
// ORDER BY clause directly.
var allowedSortColumns = map[string]string{
	"title":     "m.title",
	"id":        "m.id",
	"createdAt": "m.created_at",
	"updatedAt": "m.updated_at",
}

func keyID(id int64) string {
	return fmt.Sprintf("movie:id:%d", id)
}

type postgresRepository struct {
	db    database.Executor
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) movie.MovieRepository {
	return &postgresRepository{
		db:    pool,
		cache: cache,
	}
}

// WithTx returns a copy bound to tx with the cache dropped: in-transaction
// reads must see the transaction's own writes, and nothing may repopulate
// keys from uncommitted state. The service invalidates after commit.
func (r *postgresRepository) WithTx(tx pgx.Tx) movie.MovieRepository {
	return &postgresRepository{db: tx}
}

// joinedColumns includes the owning category's name; the join keeps
// soft-deleted categories out so their names fall back to "Unknown".
const joinedColumns = `
	m.id, m.title, m.description, m.category_id,
	m.created_at, m.updated_at, m.deleted_at, c.name`

const fromJoined = `
	FROM movies m
	LEFT JOIN categories c ON c.id = m.category_id AND c.deleted_at IS NULL`

func scanMovie(row pgx.Row) (*movie.Movie, error) {
	m := &movie.Movie{}
	err := row.Scan(
		&m.ID, &m.Title, &m.Description, &m.CategoryID,
		&m.CreatedAt, &m.UpdatedAt, &m.DeletedAt, &m.CategoryName,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *postgresRepository) Create(ctx context.Context, entity *movie.Movie) (*movie.Movie, error) {
	const query = `
		WITH inserted AS (
			INSERT INTO movies (title, description, category_id)
			VALUES ($1, $2, $3)
			RETURNING id, title, description, category_id, created_at, updated_at, deleted_at
		)
		SELECT m.id, m.title, m.description, m.category_id,
		       m.created_at, m.updated_at, m.deleted_at, c.name
		FROM inserted m
		LEFT JOIN categories c ON c.id = m.category_id AND c.deleted_at IS NULL`

	created, err := scanMovie(r.db.QueryRow(ctx, query, entity.Title, entity.Description, entity.CategoryID))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == uniqueTitleConstraint {
			return nil, movie.ErrDuplicateMovie
		}
		return nil, fmt.Errorf("failed to create movie: %w", err)
	}

	r.invalidate(ctx)
	return created, nil
}

func (r *postgresRepository) Update(ctx context.Context, entity *movie.Movie) (*movie.Movie, error) {
	const query = `
		WITH updated AS (
			UPDATE movies
			SET title = $2, description = $3, category_id = $4, updated_at = now()
			WHERE id = $1 AND deleted_at IS NULL
			RETURNING id, title, description, category_id, created_at, updated_at, deleted_at
		)
		SELECT m.id, m.title, m.description, m.category_id,
		       m.created_at, m.updated_at, m.deleted_at, c.name
		FROM updated m
		LEFT JOIN categories c ON c.id = m.category_id AND c.deleted_at IS NULL`

	updated, err := scanMovie(r.db.QueryRow(ctx, query,
		entity.ID, entity.Title, entity.Description, entity.CategoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, movie.ErrMovieNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == uniqueTitleConstraint {
			return nil, movie.ErrDuplicateMovie
		}
		return nil, fmt.Errorf("failed to update movie: %w", err)
	}

	r.invalidate(ctx)
	return updated, nil
}

func (r *postgresRepository) SoftDelete(ctx context.Context, id int64) error {
	const query = `
		UPDATE movies
		SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete movie: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return movie.ErrMovieNotFound
	}

	r.invalidate(ctx)
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*movie.Movie, error) {
	if r.cache != nil {
		cached := &movie.Movie{}
		if found, err := r.cache.Get(ctx, keyID(id), cached); err != nil {
			logger.Error("movie cache get failed", err)
		} else if found {
			return cached, nil
		}
	}

	query := `SELECT` + joinedColumns + fromJoined + `
		WHERE m.id = $1 AND m.deleted_at IS NULL`

	m, err := scanMovie(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, movie.ErrMovieNotFound
		}
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, keyID(id), m, cacheTTL); err != nil {
			logger.Error("movie cache set failed", err)
		}
	}
	return m, nil
}

func (r *postgresRepository) Search(ctx context.Context, params movie.SearchParams) ([]movie.Movie, error) {
	clauses := []string{"m.deleted_at IS NULL"}
	args := []any{}

	if params.SearchQuery != "" {
		args = append(args, params.SearchQuery)
		clauses = append(clauses, fmt.Sprintf("m.title ILIKE '%%' || $%d || '%%'", len(args)))
	}
	if params.CategoryID > 0 {
		args = append(args, params.CategoryID)
		clauses = append(clauses, fmt.Sprintf("m.category_id = $%d", len(args)))
	}

	sortColumn, ok := allowedSortColumns[params.SortBy]
	if !ok {
		sortColumn = "m.title"
	}
	sortOrder := "DESC"
	if params.SortOrder == "ASC" {
		sortOrder = "ASC"
	}

	args = append(args, params.ItemsPerPage, params.ItemsPerPage*(params.Page-1))
	query := fmt.Sprintf(`SELECT%s%s
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d`,
		joinedColumns, fromJoined,
		utils.JoinWithAnd(clauses),
		sortColumn, sortOrder,
		len(args)-1, len(args),
	)

	return r.queryMovies(ctx, query, args...)
}

func (r *postgresRepository) FindByTitle(ctx context.Context, title string) (*movie.Movie, error) {
	query := `SELECT` + joinedColumns + fromJoined + `
		WHERE LOWER(m.title) = LOWER($1) AND m.deleted_at IS NULL`

	m, err := scanMovie(r.db.QueryRow(ctx, query, title))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, movie.ErrMovieNotFound
		}
		return nil, fmt.Errorf("failed to find movie by title: %w", err)
	}
	return m, nil
}

func (r *postgresRepository) FindByCategoryID(ctx context.Context, categoryID int64) ([]movie.Movie, error) {
	query := `SELECT` + joinedColumns + fromJoined + `
		WHERE m.category_id = $1 AND m.deleted_at IS NULL
		ORDER BY m.id`

	return r.queryMovies(ctx, query, categoryID)
}

func (r *postgresRepository) queryMovies(ctx context.Context, query string, args ...any) ([]movie.Movie, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query movies: %w", err)
	}
	defer rows.Close()

	movies := make([]movie.Movie, 0)
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to query movies: %w", err)
	}

	return movies, nil
}

// InvalidateCache drops cached entries once a transactional write is
// committed and visible to other readers.
func (r *postgresRepository) InvalidateCache(ctx context.Context) {
	r.invalidate(ctx)
}

func (r *postgresRepository) invalidate(ctx context.Context) {
	if r.cache == nil {
		return
	}
	if err := r.cache.DeletePattern(ctx, "movie:*"); err != nil {
		logger.Error("movie cache invalidation failed", err)
	}
}
