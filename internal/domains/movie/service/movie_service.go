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

const (
	defaultItemsPerPage = 10
	maxItemsPerPage     = 100
)

type movieService struct {
	pool       *pgxpool.Pool
	repo       movie.MovieRepository
	categories category.CategoryRepository
}

// NewMovieService wires the movie business rules over the two repositories.
// The category repository resolves categoryId on every write.
func NewMovieService(pool *pgxpool.Pool, repo movie.MovieRepository, categories category.CategoryRepository) movie.MovieService {
	return &movieService{
		pool:       pool,
		repo:       repo,
		categories: categories,
	}
}

// inTx runs fn with transactional repository copies so check-then-act
// mutations are atomic. A nil pool runs fn against the base repositories.
// The cache is invalidated only after the commit so a concurrent read
// cannot repopulate keys from pre-commit state.
func (s *movieService) inTx(ctx context.Context, fn func(movies movie.MovieRepository, cats category.CategoryRepository) error) error {
	if s.pool == nil {
		return fn(s.repo, s.categories)
	}
	err := database.WithTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(s.repo.WithTx(tx), s.categories.WithTx(tx))
	})
	if err != nil {
		return err
	}

	s.repo.InvalidateCache(ctx)
	return nil
}

// resolveCategory checks that id references a live category and converts a
// miss into the 400-mapped unknown-category error.
func resolveCategory(ctx context.Context, cats category.CategoryRepository, id int64) error {
	if _, err := cats.GetByID(ctx, id); err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) {
			return &movie.UnknownCategoryError{ID: id}
		}
		return err
	}
	return nil
}

func (s *movieService) Create(ctx context.Context, req *movie.CreateMovieReq) (*movie.MovieResp, error) {
	title := strings.TrimSpace(req.Title)

	var created *movie.Movie
	err := s.inTx(ctx, func(movies movie.MovieRepository, cats category.CategoryRepository) error {
		existing, err := movies.FindByTitle(ctx, title)
		if err == nil {
			return &movie.ConflictError{
				Err:  movie.ErrDuplicateMovie,
				Data: movie.ToResp(existing),
			}
		}
		if !errors.Is(err, movie.ErrMovieNotFound) {
			return err
		}

		if err := resolveCategory(ctx, cats, req.CategoryID); err != nil {
			return err
		}

		created, err = movies.Create(ctx, &movie.Movie{
			Title:       title,
			Description: req.Description,
			CategoryID:  req.CategoryID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return movie.ToResp(created), nil
}

func (s *movieService) Update(ctx context.Context, req *movie.UpdateMovieReq) (*movie.MovieResp, error) {
	var updated *movie.Movie
	err := s.inTx(ctx, func(movies movie.MovieRepository, cats category.CategoryRepository) error {
		current, err := movies.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}

		title := current.Title
		if req.Title != nil {
			title = strings.TrimSpace(*req.Title)
		}

		existing, err := movies.FindByTitle(ctx, title)
		if err == nil && existing.ID != current.ID {
			return &movie.ConflictError{
				Err:  movie.ErrDuplicateMovie,
				Data: movie.ToResp(existing),
			}
		}
		if err != nil && !errors.Is(err, movie.ErrMovieNotFound) {
			return err
		}

		if req.CategoryID != nil {
			if err := resolveCategory(ctx, cats, *req.CategoryID); err != nil {
				return err
			}
			current.CategoryID = *req.CategoryID
		}

		current.Title = title
		if req.Description != nil {
			current.Description = *req.Description
		}

		updated, err = movies.Update(ctx, current)
		return err
	})
	if err != nil {
		return nil, err
	}

	return movie.ToResp(updated), nil
}

func (s *movieService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return movie.ErrInvalidMovieID
	}

	return s.inTx(ctx, func(movies movie.MovieRepository, _ category.CategoryRepository) error {
		if _, err := movies.GetByID(ctx, id); err != nil {
			return err
		}
		return movies.SoftDelete(ctx, id)
	})
}

func (s *movieService) GetByID(ctx context.Context, id int64) (*movie.MovieResp, error) {
	if id <= 0 {
		return nil, movie.ErrInvalidMovieID
	}

	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return movie.ToResp(m), nil
}

func (s *movieService) List(ctx context.Context, params movie.SearchParams) ([]movie.MovieResp, error) {
	params = sanitize(params)

	movies, err := s.repo.Search(ctx, params)
	if err != nil {
		return nil, err
	}
	return movie.ToRespList(movies), nil
}

// sanitize applies the documented defaults: page 1, ten items per page,
// sorted by title descending. Limits are capped to keep offsets bounded.
func sanitize(params movie.SearchParams) movie.SearchParams {
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.ItemsPerPage <= 0 {
		params.ItemsPerPage = defaultItemsPerPage
	}
	if params.ItemsPerPage > maxItemsPerPage {
		params.ItemsPerPage = maxItemsPerPage
	}
	if params.SortBy == "" {
		params.SortBy = "title"
	}
	params.SortOrder = strings.ToUpper(params.SortOrder)
	if params.SortOrder != "ASC" {
		params.SortOrder = "DESC"
	}
	return params
}
