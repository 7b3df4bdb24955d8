package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/germarr/fifaworldcup2026/models"
	"github.com/germarr/fifaworldcup2026/repositories"
)

// PredictionService manages a user's picks. One pick per (user, match);
// saving again replaces it, clearing deletes the row outright.
type PredictionService interface {
	Save(ctx context.Context, prediction *models.Prediction) error
	Clear(ctx context.Context, userID, matchID int) error
	ListByUser(ctx context.Context, userID int) ([]*models.Prediction, error)
}

type predictionService struct {
	predictionRepo repositories.PredictionRepository
	matchRepo      repositories.MatchRepository
	now            func() time.Time
}

func NewPredictionService(
	predictionRepo repositories.PredictionRepository,
	matchRepo repositories.MatchRepository,
) PredictionService {
	return &predictionService{
		predictionRepo: predictionRepo,
		matchRepo:      matchRepo,
		now:            time.Now,
	}
}

func (s *predictionService) Save(ctx context.Context, p *models.Prediction) error {
	if p.Score1 < 0 || p.Score2 < 0 {
		return ErrInvalidScore
	}

	match, err := s.matchRepo.GetByID(ctx, p.MatchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("failed to load match %d: %w", p.MatchID, err)
	}
	if !s.now().Before(match.KickoffAt) {
		return ErrPredictionLocked
	}

	return s.predictionRepo.Upsert(ctx, nil, p)
}

func (s *predictionService) Clear(ctx context.Context, userID, matchID int) error {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("failed to load match %d: %w", matchID, err)
	}
	if !s.now().Before(match.KickoffAt) {
		return ErrPredictionLocked
	}

	err = s.predictionRepo.DeleteByUserAndMatch(ctx, userID, matchID)
	if errors.Is(err, repositories.ErrPredictionNotFound) {
		return nil // clearing a pick that never existed is a no-op
	}
	return err
}

func (s *predictionService) ListByUser(ctx context.Context, userID int) ([]*models.Prediction, error) {
	return s.predictionRepo.ListByUser(ctx, userID)
}
