package service

import (
	"context"
	"fmt"

	"github.com/Thechiragji/THECHIRAGGAME/internal/entity"
)

type ScoreService interface {
	RecordResult(ctx context.Context, clientID, winner string) error
	GetTally(ctx context.Context, clientID string) (*entity.ScoreTally, error)
}

type scoreRepo interface {
	AddResult(ctx context.Context, clientID, winner string) error
	GetByClientID(ctx context.Context, clientID string) (*entity.ScoreTally, error)
}

type scoreService struct {
	scoreRepo scoreRepo
}

func NewScoreService(scoreRepo scoreRepo) ScoreService {
	return &scoreService{
		scoreRepo: scoreRepo,
	}
}

func (that *scoreService) RecordResult(ctx context.Context, clientID, winner string) error {
	if err := that.scoreRepo.AddResult(ctx, clientID, winner); err != nil {
		return fmt.Errorf("failed to record result: %w", err)
	}

	return nil
}

func (that *scoreService) GetTally(ctx context.Context, clientID string) (*entity.ScoreTally, error) {
	tally, err := that.scoreRepo.GetByClientID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tally: %w", err)
	}

	return tally, nil
}
