package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Thechiragji/THECHIRAGGAME/internal/entity"
)

var ErrUnknownResult = errors.New("unknown match result")

type ScoreRepository interface {
	AddResult(ctx context.Context, clientID, winner string) error
	GetByClientID(ctx context.Context, clientID string) (*entity.ScoreTally, error)
}

type dbScore struct {
	conn *sql.DB
}

func NewScoreRepository(conn *sql.DB) ScoreRepository {
	return &dbScore{
		conn: conn,
	}
}

func (that *dbScore) AddResult(ctx context.Context, clientID, winner string) error {
	var column string

	switch winner {
	case entity.MarkX:
		column = "x_wins"
	case entity.MarkO:
		column = "o_wins"
	case entity.MarkTie:
		column = "draws"
	default:
		return fmt.Errorf("%w: %q", ErrUnknownResult, winner)
	}

	// column comes from the fixed switch above, never from input
	query := fmt.Sprintf(`INSERT INTO scores (client_id, %s) VALUES (?, 1)
		ON CONFLICT(client_id) DO UPDATE SET %s = %s + 1`, column, column, column)

	if _, err := that.conn.ExecContext(ctx, query, clientID); err != nil {
		return fmt.Errorf("failed to add result: %w", err)
	}

	return nil
}

func (that *dbScore) GetByClientID(ctx context.Context, clientID string) (*entity.ScoreTally, error) {
	tally := &entity.ScoreTally{ClientID: clientID}

	query := `SELECT x_wins, o_wins, draws FROM scores WHERE client_id = ?`

	err := that.conn.QueryRowContext(ctx, query, clientID).Scan(&tally.XWins, &tally.OWins, &tally.Draws)

	// a client with no finished matches has an all-zero tally
	if errors.Is(err, sql.ErrNoRows) {
		return tally, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get tally by client ID: %w", err)
	}

	return tally, nil
}
