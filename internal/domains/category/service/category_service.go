package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"moviecatalog-backend/internal/domains/category"
	"moviecatalog-backend/internal/domains/movie"
	"moviecatalog-backend/pkg/database"
)

type categoryService struct {
	pool   *pgxpool.Pool
	repo   category.CategoryRepository
	movies movie.MovieRepository
}

// NewCategoryService wires the category business rules over the two
// repositories. The movie repository is needed for the delete guard.
func NewCategoryService(pool *pgxpool.Pool, repo category.CategoryRepository, movies movie.MovieRepository) category.CategoryService {
	return &categoryService{
		pool:   pool,
		repo:   repo,
		movies: movies,
	}
}

// inTx runs fn with transactional repository copies so check-then-act
// mutations are atomic. A nil pool runs fn against the base repositories.
// The cache is invalidated only after the commit so a concurrent read
// cannot repopulate keys from pre-commit state.
func (s *categoryService) inTx(ctx context.Context, fn func(cats category.CategoryRepository, movies movie.MovieRepository) error) error {
	if s.pool == nil {
		return fn(s.repo, s.movies)
	}
	err := database.WithTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(s.repo.WithTx(tx), s.movies.WithTx(tx))
	})
	if err != nil {
		return err
	}

	s.repo.InvalidateCache(ctx)
	return nil
}

func (s *categoryService) Create(ctx context.Context, req *category.CreateCategoryReq) (*category.CategoryResp, error) {
	name := strings.TrimSpace(req.Name)

	var created *category.Category
	err := s.inTx(ctx, func(cats category.CategoryRepository, _ movie.MovieRepository) error {
		existing, err := cats.FindByName(ctx, name)
		if err == nil {
			return &category.ConflictError{
				Err:  category.ErrDuplicateCategory,
				Data: category.ToResp(existing),
			}
		}
		if !errors.Is(err, category.ErrCategoryNotFound) {
			return err
		}

		created, err = cats.Create(ctx, &category.Category{Name: name})
		return err
	})
	if err != nil {
		return nil, err
	}

	return category.ToResp(created), nil
}

func (s *categoryService) Update(ctx context.Context, req *category.UpdateCategoryReq) (*category.CategoryResp, error) {
	var updated *category.Category
	err := s.inTx(ctx, func(cats category.CategoryRepository, _ movie.MovieRepository) error {
		current, err := cats.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}

		name := current.Name
		if req.Name != nil {
			name = strings.TrimSpace(*req.Name)
		}

		existing, err := cats.FindByName(ctx, name)
		if err == nil && existing.ID != current.ID {
			return &category.ConflictError{
				Err:  category.ErrDuplicateCategory,
				Data: category.ToResp(existing),
			}
		}
		if err != nil && !errors.Is(err, category.ErrCategoryNotFound) {
			return err
		}

		current.Name = name
		updated, err = cats.Update(ctx, current)
		return err
	})
	if err != nil {
		return nil, err
	}

	return category.ToResp(updated), nil
}

func (s *categoryService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return category.ErrInvalidCategoryID
	}

	return s.inTx(ctx, func(cats category.CategoryRepository, movies movie.MovieRepository) error {
		if _, err := cats.GetByID(ctx, id); err != nil {
			return err
		}

		blocking, err := movies.FindByCategoryID(ctx, id)
		if err != nil {
			return err
		}
		if len(blocking) > 0 {
			return &category.ConflictError{
				Err:  category.ErrCategoryHasMovies,
				Data: movie.ToRespList(blocking),
			}
		}

		return cats.SoftDelete(ctx, id)
	})
}

func (s *categoryService) GetByID(ctx context.Context, id int64) (*category.CategoryResp, error) {
	if id <= 0 {
		return nil, category.ErrInvalidCategoryID
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return category.ToResp(c), nil
}

func (s *categoryService) List(ctx context.Context) ([]category.CategoryResp, error) {
	categories, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return category.ToRespList(categories), nil
}
