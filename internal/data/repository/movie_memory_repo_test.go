package repository_test

import (
	"context"
	"sync"
	"testing"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/data/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMemoryGatewayContract(t *testing.T) {
	runGatewayContract(t, func(*testing.T) *repository.Repository {
		return repository.NewMemoryRepository(zap.NewNop())
	})
}

func TestMemoryTitleSearchFoldsUnicode(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository(zap.NewNop())

	_, err := repo.Movie.Create(ctx, &entity.Movie{Title: "Amélie"})
	require.NoError(t, err)

	for _, query := range []string{"AMÉLIE", "mÉl", "amélie"} {
		movies, err := repo.Movie.FindByTitleContains(ctx, query)
		require.NoError(t, err)
		assert.Len(t, movies, 1, query)
	}
}

func TestMemoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository(zap.NewNop())

	created, err := repo.Movie.Create(ctx, &entity.Movie{Title: "Heat", Genre: ptr("Crime")})
	require.NoError(t, err)

	*created.Genre = "Comedy"
	created.Title = "Changed"

	got, err := repo.Movie.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Heat", got.Title)
	assert.Equal(t, "Crime", *got.Genre)
}

func TestMemoryTransactionHandleExpires(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository(zap.NewNop())

	var leaked repository.MovieRepository
	require.NoError(t, repo.Tx.WithinTx(ctx, func(movies repository.MovieRepository) error {
		leaked = movies
		return nil
	}))

	_, err := leaked.Create(ctx, &entity.Movie{Title: "Too late"})
	var storageErr *repository.StorageError
	require.ErrorAs(t, err, &storageErr)

	movies, err := repo.Movie.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, movies)
}

func TestMemoryConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository(zap.NewNop())

	const writers = 32
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Movie.Create(ctx, &entity.Movie{Title: "Copy"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	movies, err := repo.Movie.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, movies, writers)
}
