package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"moviecatalog-backend/internal/config"
	infraCache "moviecatalog-backend/internal/infrastructure/cache"
	"moviecatalog-backend/internal/infrastructure/database"
	"moviecatalog-backend/pkg/cache"

	"moviecatalog-backend/internal/domains/category"
	categoryHandler "moviecatalog-backend/internal/domains/category/handler"
	categoryRepo "moviecatalog-backend/internal/domains/category/repository"
	categoryService "moviecatalog-backend/internal/domains/category/service"
	"moviecatalog-backend/internal/domains/movie"
	movieHandler "moviecatalog-backend/internal/domains/movie/handler"
	movieRepo "moviecatalog-backend/internal/domains/movie/repository"
	movieService "moviecatalog-backend/internal/domains/movie/service"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton shared across requests.
type Container struct {
	Config *config.Config
	DB     *database.PostgresDB
	Cache  cache.Cache

	CategoryRepo category.CategoryRepository
	MovieRepo    movie.MovieRepository

	CategoryService category.CategoryService
	MovieService    movie.MovieService

	CategoryHandler *categoryHandler.CategoryHandler
	MovieHandler    *movieHandler.MovieHandler
}

// NewContainer initializes the dependency graph bottom-up: config, then
// infrastructure, then repositories, services and handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	// A dead cache is non-critical: repositories fall through to Postgres.
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		if err := rc.Connect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("redis connection failed, running without cache")
		}
	}
	c.Cache = redisCache

	c.CategoryRepo = categoryRepo.NewPostgresRepository(db.Pool, c.Cache)
	c.MovieRepo = movieRepo.NewPostgresRepository(db.Pool, c.Cache)

	c.CategoryService = categoryService.NewCategoryService(db.Pool, c.CategoryRepo, c.MovieRepo)
	c.MovieService = movieService.NewMovieService(db.Pool, c.MovieRepo, c.CategoryRepo)

	c.CategoryHandler = categoryHandler.NewCategoryHandler(c.CategoryService)
	c.MovieHandler = movieHandler.NewMovieHandler(c.MovieService)

	return c, nil
}

func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
	}
	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis client")
		}
	}
}
