package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/data/repository"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ignoreBookkeeping = cmpopts.IgnoreFields(entity.Base{}, "ID", "CreatedAt", "UpdatedAt")

func ptr[T any](v T) *T { return &v }

func day(s string) *time.Time {
	d, err := entity.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return &d
}

func titles(movies []*entity.Movie) []string {
	out := make([]string, len(movies))
	for i, m := range movies {
		out[i] = m.Title
	}
	return out
}

// runGatewayContract checks the behavior every MovieRepository
// implementation must share. fresh returns an empty store.
func runGatewayContract(t *testing.T, fresh func(t *testing.T) *repository.Repository) {
	t.Run("create assigns id and persists", func(t *testing.T) {
		ctx := context.Background()
		repo := fresh(t)

		candidate := &entity.Movie{
			Title:       "Arrival",
			Description: ptr("Linguist meets heptapods"),
			Director:    ptr("Denis Villeneuve"),
			Genre:       ptr("Sci-Fi"),
			Rating:      ptr(7.9),
			ReleaseDate: day("2016-11-11"),
		}
		created, err := repo.Movie.Create(ctx, candidate)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, created.ID)
		assert.False(t, created.CreatedAt.IsZero())

		got, err := repo.Movie.FindByID(ctx, created.ID)
		require.NoError(t, err)
		if diff := cmp.Diff(candidate, got, ignoreBookkeeping); diff != "" {
			t.Errorf("FindByID() mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, created.ID, got.ID)
	})

	t.Run("find missing returns nil", func(t *testing.T) {
		repo := fresh(t)

		got, err := repo.Movie.FindByID(context.Background(), uuid.New())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("find all keeps insertion order", func(t *testing.T) {
		ctx := context.Background()
		repo := fresh(t)

		for _, title := range []string{"Zodiac", "Alien", "Memento"} {
			_, err := repo.Movie.Create(ctx, &entity.Movie{Title: title})
			require.NoError(t, err)
		}

		movies, err := repo.Movie.FindAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Zodiac", "Alien", "Memento"}, titles(movies))
	})

	t.Run("exists and delete", func(t *testing.T) {
		ctx := context.Background()
		repo := fresh(t)

		created, err := repo.Movie.Create(ctx, &entity.Movie{Title: "Heat"})
		require.NoError(t, err)

		exists, err := repo.Movie.ExistsByID(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, exists)

		require.NoError(t, repo.Movie.DeleteByID(ctx, created.ID))

		exists, err = repo.Movie.ExistsByID(ctx, created.ID)
		require.NoError(t, err)
		assert.False(t, exists)

		got, err := repo.Movie.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("save replaces every field", func(t *testing.T) {
		ctx := context.Background()
		repo := fresh(t)

		created, err := repo.Movie.Create(ctx, &entity.Movie{
			Title:  "Alien",
			Genre:  ptr("Horror"),
			Rating: ptr(8.5),
		})
		require.NoError(t, err)

		replacement := created.Clone()
		replacement.Title = "Aliens"
		replacement.Genre = nil
		replacement.Rating = nil
		replacement.ReleaseDate = day("1986-07-18")
		replacement.UpdatedAt = created.UpdatedAt.Add(time.Hour)

		saved, err := repo.Movie.Save(ctx, replacement)
		require.NoError(t, err)
		assert.True(t, saved.UpdatedAt.Equal(replacement.UpdatedAt))
		assert.True(t, saved.CreatedAt.Equal(created.CreatedAt))

		got, err := repo.Movie.FindByID(ctx, created.ID)
		require.NoError(t, err)
		if diff := cmp.Diff(replacement, got, ignoreBookkeeping); diff != "" {
			t.Errorf("Save() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("save missing row", func(t *testing.T) {
		repo := fresh(t)

		_, err := repo.Movie.Save(context.Background(), &entity.Movie{Base: entity.Base{ID: uuid.New()}, Title: "Ghost"})
		assert.ErrorIs(t, err, repository.ErrMovieNotFound)
	})

	t.Run("filters", func(t *testing.T) {
		ctx := context.Background()
		repo := fresh(t)

		seed := []*entity.Movie{
			{Title: "Inception", Genre: ptr("Sci-Fi"), Rating: ptr(8.8), ReleaseDate: day("2010-07-16")},
			{Title: "The Princess Bride", Genre: ptr("Fantasy"), Rating: ptr(8.0), ReleaseDate: day("1987-09-25")},
			{Title: "100% Wolf", Genre: ptr("Animation"), Rating: ptr(5.6), ReleaseDate: day("2020-05-21")},
			{Title: "Heat", Genre: ptr("Crime"), Rating: ptr(8.3), ReleaseDate: day("1995-12-15")},
			{Title: "Unrated_Draft"},
			{Title: "Amélie"},
		}
		for _, movie := range seed {
			_, err := repo.Movie.Create(ctx, movie)
			require.NoError(t, err)
		}

		byTitle := func(s string) []string {
			movies, err := repo.Movie.FindByTitleContains(ctx, s)
			require.NoError(t, err)
			return titles(movies)
		}
		assert.Equal(t, []string{"Inception", "The Princess Bride"}, byTitle("INCE"))
		assert.Equal(t, []string{"100% Wolf"}, byTitle("0%"))
		assert.Equal(t, []string{"Unrated_Draft"}, byTitle("_"))
		assert.Empty(t, byTitle("%%"))
		// non-ASCII runes match byte for byte; only ASCII letters fold on every store
		assert.Equal(t, []string{"Amélie"}, byTitle("mél"))
		assert.Equal(t, []string{"Amélie"}, byTitle("AMé"))

		movies, err := repo.Movie.FindByGenre(ctx, "Crime")
		require.NoError(t, err)
		assert.Equal(t, []string{"Heat"}, titles(movies))

		movies, err = repo.Movie.FindByGenre(ctx, "crime")
		require.NoError(t, err)
		assert.Empty(t, movies)

		movies, err = repo.Movie.FindByRatingAtLeast(ctx, 8.3)
		require.NoError(t, err)
		assert.Equal(t, []string{"Inception", "Heat"}, titles(movies))

		movies, err = repo.Movie.FindByRatingAtLeast(ctx, 0)
		require.NoError(t, err)
		assert.NotContains(t, titles(movies), "Unrated_Draft")

		movies, err = repo.Movie.FindByReleaseDateBetween(ctx, *day("1987-09-25"), *day("2010-07-16"))
		require.NoError(t, err)
		assert.Equal(t, []string{"Inception", "The Princess Bride", "Heat"}, titles(movies))

		// bounds with a clock part still compare by calendar date
		start := time.Date(1995, 12, 15, 23, 30, 0, 0, time.UTC)
		movies, err = repo.Movie.FindByReleaseDateBetween(ctx, start, start)
		require.NoError(t, err)
		assert.Equal(t, []string{"Heat"}, titles(movies))

		movies, err = repo.Movie.FindByReleaseDateBetween(ctx, *day("2020-01-01"), *day("1900-01-01"))
		require.NoError(t, err)
		assert.Empty(t, movies)
	})

	t.Run("transaction commits", func(t *testing.T) {
		ctx := context.Background()
		repo := fresh(t)

		var created *entity.Movie
		err := repo.Tx.WithinTx(ctx, func(movies repository.MovieRepository) error {
			var err error
			created, err = movies.Create(ctx, &entity.Movie{Title: "Committed"})
			return err
		})
		require.NoError(t, err)

		got, err := repo.Movie.FindByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
	})

	t.Run("transaction rolls back", func(t *testing.T) {
		ctx := context.Background()
		repo := fresh(t)

		kept, err := repo.Movie.Create(ctx, &entity.Movie{Title: "Kept"})
		require.NoError(t, err)

		boom := errors.New("boom")
		err = repo.Tx.WithinTx(ctx, func(movies repository.MovieRepository) error {
			if _, err := movies.Create(ctx, &entity.Movie{Title: "Discarded"}); err != nil {
				return err
			}
			if err := movies.DeleteByID(ctx, kept.ID); err != nil {
				return err
			}

			// writes are visible inside the unit of work
			all, err := movies.FindAll(ctx)
			if err != nil {
				return err
			}
			assert.Equal(t, []string{"Discarded"}, titles(all))
			return boom
		})
		require.ErrorIs(t, err, boom)

		movies, err := repo.Movie.FindAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Kept"}, titles(movies))
	})

	t.Run("cancelled context", func(t *testing.T) {
		repo := fresh(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := repo.Movie.FindAll(ctx)
		var storageErr *repository.StorageError
		assert.ErrorAs(t, err, &storageErr)
	})
}
