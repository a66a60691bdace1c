package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Thechiragji/THECHIRAGGAME/internal/advisor"
	"github.com/Thechiragji/THECHIRAGGAME/internal/apperror"
	"github.com/Thechiragji/THECHIRAGGAME/internal/entity"
	"github.com/Thechiragji/THECHIRAGGAME/internal/tictactoe"
)

type SessionService interface {
	CreateSession(ctx context.Context, clientID, mode string) (*entity.Match, error)
	GetSession(ctx context.Context, id string) (*entity.Match, error)

	MakeTurn(ctx context.Context, id, mark string, cell int) (*entity.Match, error)
	AdvisorTurn(ctx context.Context, id string, turnsPlayed int) (*entity.Match, int, error)

	ResetSession(ctx context.Context, id string) (*entity.Match, error)
	SwitchMode(ctx context.Context, id, mode string) (*entity.Match, error)
}

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, match *entity.Match) error
	GetByID(ctx context.Context, id string) (*entity.Match, error)
}

type sessionService struct {
	logger *slog.Logger

	sessionRepo  sessionRepo
	scoreService ScoreService
	strategy     advisor.Strategy
}

func NewSessionService(logger *slog.Logger, sessionRepo sessionRepo, scoreService ScoreService, strategy advisor.Strategy) SessionService {
	return &sessionService{
		logger:       logger,
		sessionRepo:  sessionRepo,
		scoreService: scoreService,
		strategy:     strategy,
	}
}

func (that *sessionService) CreateSession(ctx context.Context, clientID, mode string) (*entity.Match, error) {
	if !entity.ValidMode(mode) {
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownMode, mode)
	}

	match := entity.NewMatch(uuid.NewString(), mode)
	match.ClientID = clientID

	if err := that.sessionRepo.CreateOrUpdate(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return match, nil
}

func (that *sessionService) GetSession(ctx context.Context, id string) (*entity.Match, error) {
	match, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}

	return match, nil
}

func (that *sessionService) MakeTurn(ctx context.Context, id, mark string, cell int) (*entity.Match, error) {
	match, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}

	if err = tictactoe.ApplyMove(match, mark, cell); err != nil {
		return match, fmt.Errorf("failed to make turn: %w", err)
	}

	if err = that.settleAndSave(ctx, match); err != nil {
		return nil, err
	}

	return match, nil
}

// AdvisorTurn - plays one computer move for the current mover. Only valid
// in vs-computer sessions; the chosen cell is returned alongside the
// updated match. turnsPlayed is the caller's snapshot of the board age:
// when the stored session has moved on, because of a reset, a mode change
// or a replacement move, the stale request is refused with ErrStaleMove
// instead of touching the board.
func (that *sessionService) AdvisorTurn(ctx context.Context, id string, turnsPlayed int) (*entity.Match, int, error) {
	match, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, -1, fmt.Errorf("failed to get session by id: %w", err)
	}

	if !match.IsVsComputer() {
		return match, -1, apperror.ErrNotVsComputer
	}

	if match.IsFinished() {
		return match, -1, apperror.ErrMatchFinished
	}

	if match.TurnsPlayed != turnsPlayed {
		return match, -1, apperror.ErrStaleMove
	}

	mover := match.Turn
	cell, err := that.strategy.ChooseCell(match.Board, mover, entity.ToggleMark(mover))
	if err != nil {
		return match, -1, fmt.Errorf("advisor failed to choose cell: %w", err)
	}

	if err = tictactoe.ApplyMove(match, mover, cell); err != nil {
		return match, -1, fmt.Errorf("advisor failed to make turn: %w", err)
	}

	if err = that.settleAndSave(ctx, match); err != nil {
		return nil, -1, err
	}

	return match, cell, nil
}

func (that *sessionService) ResetSession(ctx context.Context, id string) (*entity.Match, error) {
	match, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}

	match.Reset()

	if err = that.sessionRepo.CreateOrUpdate(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	return match, nil
}

// SwitchMode - changes the game mode. A mode change resets the match;
// switching to the current mode is a no-op.
func (that *sessionService) SwitchMode(ctx context.Context, id, mode string) (*entity.Match, error) {
	if !entity.ValidMode(mode) {
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownMode, mode)
	}

	match, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}

	if match.Mode == mode {
		return match, nil
	}

	match.Mode = mode
	match.Reset()

	if err = that.sessionRepo.CreateOrUpdate(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	return match, nil
}

// settleAndSave - persists the match and bumps the client's tally when the
// move just finished it.
func (that *sessionService) settleAndSave(ctx context.Context, match *entity.Match) error {
	if match.IsFinished() && match.ClientID != "" {
		if err := that.scoreService.RecordResult(ctx, match.ClientID, match.Winner); err != nil {
			return fmt.Errorf("failed to record match result: %w", err)
		}

		that.logger.Info("match finished", "sessionID", match.ID, "winner", match.Winner)
	}

	if err := that.sessionRepo.CreateOrUpdate(ctx, match); err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	return nil
}
