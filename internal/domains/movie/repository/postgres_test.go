package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type spyCache struct {
	deletedPatterns []string
}

func (s *spyCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }
func (s *spyCache) Set(context.Context, string, interface{}, time.Duration) error {
	return nil
}
func (s *spyCache) Delete(context.Context, ...string) error { return nil }
func (s *spyCache) DeletePattern(_ context.Context, pattern string) error {
	s.deletedPatterns = append(s.deletedPatterns, pattern)
	return nil
}
func (s *spyCache) Ping(context.Context) error { return nil }

func TestWithTxBypassesCache(t *testing.T) {
	spy := &spyCache{}
	base := NewPostgresRepository(nil, spy)

	txRepo, ok := base.WithTx(nil).(*postgresRepository)
	require.True(t, ok)
	assert.Nil(t, txRepo.cache, "transactional copies must not read or write the cache")

	// invalidation from a transactional copy is a no-op
	txRepo.InvalidateCache(context.Background())
	assert.Empty(t, spy.deletedPatterns)
}

func TestInvalidateCacheDropsMovieKeys(t *testing.T) {
	spy := &spyCache{}
	repo := NewPostgresRepository(nil, spy).(*postgresRepository)

	repo.InvalidateCache(context.Background())

	assert.Equal(t, []string{"movie:*"}, spy.deletedPatterns)
}
