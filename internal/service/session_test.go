package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thechiragji/THECHIRAGGAME/internal/advisor"
	"github.com/Thechiragji/THECHIRAGGAME/internal/apperror"
	"github.com/Thechiragji/THECHIRAGGAME/internal/entity"
	"github.com/Thechiragji/THECHIRAGGAME/internal/repository"
	"github.com/Thechiragji/THECHIRAGGAME/internal/repository/storage"
)

// newSessionService wires the real repositories against miniredis and an
// in-memory sqlite database.
func newSessionService(t *testing.T) (context.Context, SessionService, ScoreService) {
	t.Helper()

	ctx := context.Background()

	mini := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
	})

	sqliteStorage, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	require.NoError(t, sqliteStorage.Init(ctx))
	t.Cleanup(func() {
		_ = sqliteStorage.Close()
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	sessionRepo := repository.NewSessionRepository(client)
	scoreService := NewScoreService(repository.NewScoreRepository(sqliteStorage.Connection))
	sessionService := NewSessionService(logger, sessionRepo, scoreService, advisor.NewHeuristicStrategy())

	return ctx, sessionService, scoreService
}

func TestSessionService_CreateSession(t *testing.T) {
	t.Run("Creates and persists a session with the requested mode", func(t *testing.T) {
		ctx, sessions, _ := newSessionService(t)

		// When: creating a vs-computer session
		match, err := sessions.CreateSession(ctx, "client-1", entity.ModeVsComputer)

		// Then: the session is retrievable and starts fresh
		require.NoError(t, err)
		assert.NotEmpty(t, match.ID)
		assert.Equal(t, "client-1", match.ClientID)

		stored, err := sessions.GetSession(ctx, match.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.StateInProgress, stored.State)
		assert.Equal(t, entity.MarkX, stored.Turn)
		assert.Equal(t, entity.ModeVsComputer, stored.Mode)
	})

	t.Run("Rejects an unknown mode", func(t *testing.T) {
		ctx, sessions, _ := newSessionService(t)

		// When: creating a session with a bogus mode
		_, err := sessions.CreateSession(ctx, "client-1", "minimax")

		// Then: ErrUnknownMode should be returned
		require.ErrorIs(t, err, apperror.ErrUnknownMode)
	})
}

func TestSessionService_MakeTurn(t *testing.T) {
	t.Run("Applies a legal move and persists it", func(t *testing.T) {
		ctx, sessions, _ := newSessionService(t)
		match, err := sessions.CreateSession(ctx, "client-1", entity.ModeTwoPlayer)
		require.NoError(t, err)

		// When: X plays cell 4
		updated, err := sessions.MakeTurn(ctx, match.ID, entity.MarkX, 4)
		require.NoError(t, err)
		assert.Equal(t, entity.MarkX, updated.Board[4])
		assert.Equal(t, entity.MarkO, updated.Turn)

		// Then: the stored session reflects the move
		stored, err := sessions.GetSession(ctx, match.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.MarkX, stored.Board[4])
	})

	t.Run("An illegal move leaves the stored session unchanged", func(t *testing.T) {
		ctx, sessions, _ := newSessionService(t)
		match, err := sessions.CreateSession(ctx, "client-1", entity.ModeTwoPlayer)
		require.NoError(t, err)

		_, err = sessions.MakeTurn(ctx, match.ID, entity.MarkX, 4)
		require.NoError(t, err)

		// When: O replays the occupied cell
		_, err = sessions.MakeTurn(ctx, match.ID, entity.MarkO, 4)
		require.ErrorIs(t, err, apperror.ErrCellOccupied)

		// Then: the stored board is untouched and it is still O's turn
		stored, err := sessions.GetSession(ctx, match.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, stored.TurnsPlayed)
		assert.Equal(t, entity.MarkO, stored.Turn)
	})

	t.Run("A winning sequence finishes the match and bumps the tally", func(t *testing.T) {
		ctx, sessions, scores := newSessionService(t)
		match, err := sessions.CreateSession(ctx, "client-1", entity.ModeTwoPlayer)
		require.NoError(t, err)

		// When: playing X@0, O@4, X@1, O@7, X@2
		moves := []struct {
			mark string
			cell int
		}{
			{entity.MarkX, 0}, {entity.MarkO, 4}, {entity.MarkX, 1}, {entity.MarkO, 7},
		}
		for _, m := range moves {
			_, err = sessions.MakeTurn(ctx, match.ID, m.mark, m.cell)
			require.NoError(t, err)
		}

		final, err := sessions.MakeTurn(ctx, match.ID, entity.MarkX, 2)
		require.NoError(t, err)

		// Then: X won the top row and the client's tally counts one X win
		assert.Equal(t, entity.StateWon, final.State)
		assert.Equal(t, entity.MarkX, final.Winner)
		assert.Equal(t, []int{0, 1, 2}, final.WinLine)

		tally, err := scores.GetTally(ctx, "client-1")
		require.NoError(t, err)
		assert.Equal(t, 1, tally.XWins)
		assert.Zero(t, tally.OWins)
		assert.Zero(t, tally.Draws)
	})

	t.Run("A drawn match records a draw", func(t *testing.T) {
		ctx, sessions, scores := newSessionService(t)
		match, err := sessions.CreateSession(ctx, "client-1", entity.ModeTwoPlayer)
		require.NoError(t, err)

		moves := []struct {
			mark string
			cell int
		}{
			{entity.MarkX, 0}, {entity.MarkO, 1}, {entity.MarkX, 2},
			{entity.MarkO, 4}, {entity.MarkX, 3}, {entity.MarkO, 5},
			{entity.MarkX, 7}, {entity.MarkO, 6}, {entity.MarkX, 8},
		}

		var final *entity.Match
		for _, m := range moves {
			final, err = sessions.MakeTurn(ctx, match.ID, m.mark, m.cell)
			require.NoError(t, err)
		}

		assert.Equal(t, entity.StateDrawn, final.State)
		assert.Equal(t, entity.MarkTie, final.Winner)

		tally, err := scores.GetTally(ctx, "client-1")
		require.NoError(t, err)
		assert.Equal(t, 1, tally.Draws)
	})
}

func TestSessionService_AdvisorTurn(t *testing.T) {
	t.Run("Plays the heuristic move for the current mover", func(t *testing.T) {
		ctx, sessions, _ := newSessionService(t)
		match, err := sessions.CreateSession(ctx, "client-1", entity.ModeVsComputer)
		require.NoError(t, err)

		// Given: the human X opened in a corner
		_, err = sessions.MakeTurn(ctx, match.ID, entity.MarkX, 0)
		require.NoError(t, err)

		// When: the advisor plays for O
		updated, cell, err := sessions.AdvisorTurn(ctx, match.ID, 1)

		// Then: the heuristic takes the center
		require.NoError(t, err)
		assert.Equal(t, 4, cell)
		assert.Equal(t, entity.MarkO, updated.Board[4])
		assert.Equal(t, entity.MarkX, updated.Turn)
	})

	t.Run("Blocks the human's open row", func(t *testing.T) {
		ctx, sessions, _ := newSessionService(t)
		match, err := sessions.CreateSession(ctx, "client-1", entity.ModeVsComputer)
		require.NoError(t, err)

		// Given: X threatens the top row after two exchanges
		_, err = sessions.MakeTurn(ctx, match.ID, entity.MarkX, 0)
		require.NoError(t, err)
		_, _, err = sessions.AdvisorTurn(ctx, match.ID, 1) // O takes the center
		require.NoError(t, err)
		_, err = sessions.MakeTurn(ctx, match.ID, entity.MarkX, 1)
		require.NoError(t, err)

		// When: the advisor replies
		_, cell, err := sessions.AdvisorTurn(ctx, match.ID, 3)

		// Then: it blocks at 2
		require.NoError(t, err)
		assert.Equal(t, 2, cell)
	})

	t.Run("Rejects advisor turns in two-player sessions", func(t *testing.T) {
		ctx, sessions, _ := newSessionService(t)
		match, err := sessions.CreateSession(ctx, "client-1", entity.ModeTwoPlayer)
		require.NoError(t, err)

		// When: asking the advisor to move
		_, _, err = sessions.AdvisorTurn(ctx, match.ID, 0)

		// Then: ErrNotVsComputer should be returned
		require.ErrorIs(t, err, apperror.ErrNotVsComputer)
	})

	t.Run("Rejects advisor turns on a finished match", func(t *testing.T) {
		ctx, sessions, _ := newSessionService(t)
		match, err := sessions.CreateSession(ctx, "client-1", entity.ModeVsComputer)
		require.NoError(t, err)

		// Given: X wins before the advisor ever fires
		moves := []struct {
			mark string
			cell int
		}{
			{entity.MarkX, 0}, {entity.MarkO, 3}, {entity.MarkX, 1}, {entity.MarkO, 4}, {entity.MarkX, 2},
		}
		for _, m := range moves {
			_, err = sessions.MakeTurn(ctx, match.ID, m.mark, m.cell)
			require.NoError(t, err)
		}

		// When: a stale advisor turn arrives
		_, _, err = sessions.AdvisorTurn(ctx, match.ID, 5)

		// Then: ErrMatchFinished should be returned and nothing is applied
		require.ErrorIs(t, err, apperror.ErrMatchFinished)
	})

	t.Run("A move scheduled before a reset never lands", func(t *testing.T) {
		ctx, sessions, _ := newSessionService(t)
		match, err := sessions.CreateSession(ctx, "client-1", entity.ModeVsComputer)
		require.NoError(t, err)

		// Given: the computer's reply was scheduled after the human's move,
		// but the session was reset before it fired
		_, err = sessions.MakeTurn(ctx, match.ID, entity.MarkX, 0)
		require.NoError(t, err)
		_, err = sessions.ResetSession(ctx, match.ID)
		require.NoError(t, err)

		// When: the delayed move arrives carrying the pre-reset board age
		_, _, err = sessions.AdvisorTurn(ctx, match.ID, 1)

		// Then: it is refused and the fresh board stays empty
		require.ErrorIs(t, err, apperror.ErrStaleMove)

		stored, err := sessions.GetSession(ctx, match.ID)
		require.NoError(t, err)
		assert.Equal(t, [9]string{}, stored.Board)
		assert.Equal(t, entity.MarkX, stored.Turn)
		assert.Zero(t, stored.TurnsPlayed)
	})
}

func TestSessionService_ResetSession(t *testing.T) {
	t.Run("Returns the session to the initial state", func(t *testing.T) {
		ctx, sessions, _ := newSessionService(t)
		match, err := sessions.CreateSession(ctx, "client-1", entity.ModeTwoPlayer)
		require.NoError(t, err)

		_, err = sessions.MakeTurn(ctx, match.ID, entity.MarkX, 4)
		require.NoError(t, err)

		// When: resetting the session
		reset, err := sessions.ResetSession(ctx, match.ID)

		// Then: the board is empty and X moves again
		require.NoError(t, err)
		assert.Equal(t, [9]string{}, reset.Board)
		assert.Equal(t, entity.MarkX, reset.Turn)
		assert.Equal(t, entity.StateInProgress, reset.State)
		assert.Zero(t, reset.TurnsPlayed)
	})
}

func TestSessionService_SwitchMode(t *testing.T) {
	t.Run("A mode change resets the match", func(t *testing.T) {
		ctx, sessions, _ := newSessionService(t)
		match, err := sessions.CreateSession(ctx, "client-1", entity.ModeTwoPlayer)
		require.NoError(t, err)

		_, err = sessions.MakeTurn(ctx, match.ID, entity.MarkX, 4)
		require.NoError(t, err)

		// When: switching to vs-computer
		switched, err := sessions.SwitchMode(ctx, match.ID, entity.ModeVsComputer)

		// Then: the mode changes and the board is wiped
		require.NoError(t, err)
		assert.Equal(t, entity.ModeVsComputer, switched.Mode)
		assert.Equal(t, [9]string{}, switched.Board)
		assert.Equal(t, entity.MarkX, switched.Turn)
	})

	t.Run("Switching to the current mode keeps the board", func(t *testing.T) {
		ctx, sessions, _ := newSessionService(t)
		match, err := sessions.CreateSession(ctx, "client-1", entity.ModeTwoPlayer)
		require.NoError(t, err)

		_, err = sessions.MakeTurn(ctx, match.ID, entity.MarkX, 4)
		require.NoError(t, err)

		// When: requesting the mode the session already has
		same, err := sessions.SwitchMode(ctx, match.ID, entity.ModeTwoPlayer)

		// Then: the match is untouched
		require.NoError(t, err)
		assert.Equal(t, entity.MarkX, same.Board[4])
		assert.Equal(t, 1, same.TurnsPlayed)
	})

	t.Run("Rejects an unknown mode", func(t *testing.T) {
		ctx, sessions, _ := newSessionService(t)
		match, err := sessions.CreateSession(ctx, "client-1", entity.ModeTwoPlayer)
		require.NoError(t, err)

		_, err = sessions.SwitchMode(ctx, match.ID, "alien")
		require.ErrorIs(t, err, apperror.ErrUnknownMode)
	})
}
