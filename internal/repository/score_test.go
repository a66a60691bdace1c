package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thechiragji/THECHIRAGGAME/internal/entity"
	"github.com/Thechiragji/THECHIRAGGAME/internal/repository/storage"
)

func newScoreRepo(t *testing.T) (context.Context, ScoreRepository) {
	t.Helper()

	ctx := context.Background()

	st, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, st.Close())
	})

	require.NoError(t, st.Init(ctx))

	return ctx, NewScoreRepository(st.Connection)
}

func TestScoreRepository_GetByClientID(t *testing.T) {
	t.Run("Returns a zero tally for an unknown client", func(t *testing.T) {
		ctx, scoreRepo := newScoreRepo(t)

		// When: reading a tally nobody has written
		tally, err := scoreRepo.GetByClientID(ctx, "nobody")

		// Then: all counters are zero
		require.NoError(t, err)
		assert.Equal(t, &entity.ScoreTally{ClientID: "nobody"}, tally)
	})
}

func TestScoreRepository_AddResult(t *testing.T) {
	t.Run("Each finished match bumps exactly one counter", func(t *testing.T) {
		ctx, scoreRepo := newScoreRepo(t)

		// Given: two X wins, one O win, one draw
		require.NoError(t, scoreRepo.AddResult(ctx, "client-1", entity.MarkX))
		require.NoError(t, scoreRepo.AddResult(ctx, "client-1", entity.MarkX))
		require.NoError(t, scoreRepo.AddResult(ctx, "client-1", entity.MarkO))
		require.NoError(t, scoreRepo.AddResult(ctx, "client-1", entity.MarkTie))

		// When: reading the tally back
		tally, err := scoreRepo.GetByClientID(ctx, "client-1")

		// Then: the counters match the recorded results
		require.NoError(t, err)
		assert.Equal(t, 2, tally.XWins)
		assert.Equal(t, 1, tally.OWins)
		assert.Equal(t, 1, tally.Draws)
	})

	t.Run("Tallies are isolated per client", func(t *testing.T) {
		ctx, scoreRepo := newScoreRepo(t)

		require.NoError(t, scoreRepo.AddResult(ctx, "client-1", entity.MarkX))

		// When: reading another client's tally
		tally, err := scoreRepo.GetByClientID(ctx, "client-2")

		// Then: it is untouched
		require.NoError(t, err)
		assert.Zero(t, tally.XWins)
	})

	t.Run("Rejects an unknown result mark", func(t *testing.T) {
		ctx, scoreRepo := newScoreRepo(t)

		// When: recording a result that is not X, O, or a tie
		err := scoreRepo.AddResult(ctx, "client-1", "Z")

		// Then: ErrUnknownResult should be returned
		require.ErrorIs(t, err, ErrUnknownResult)
	})
}
