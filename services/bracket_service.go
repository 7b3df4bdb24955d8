package services

import (
	"context"
	"fmt"

	"github.com/germarr/fifaworldcup2026/brackets"
	"github.com/germarr/fifaworldcup2026/models"
	"github.com/germarr/fifaworldcup2026/repositories"
)

// BracketService loads tournament snapshots and runs the resolution
// pipeline over them: group standings feed the third-place solver, whose
// output feeds the bracket-wide placeholder resolution.
type BracketService interface {
	// LoadSnapshot fetches every team, match, prediction and tiebreak
	// override into one consistent in-memory view.
	LoadSnapshot(ctx context.Context) (*brackets.Snapshot, error)
	// UserBracket resolves the knockout bracket the way one user's
	// prediction chain builds it.
	UserBracket(ctx context.Context, userID int) (brackets.Resolution, error)
	// OfficialBracket resolves the bracket from recorded results only.
	OfficialBracket(ctx context.Context) (brackets.Resolution, error)
	// Champion returns the tournament winner for a user's view and
	// whether it is the real, finished-final champion.
	Champion(ctx context.Context, userID int) (*models.Team, bool, error)
}

type bracketService struct {
	format         *brackets.Format
	teamRepo       repositories.TeamRepository
	matchRepo      repositories.MatchRepository
	predictionRepo repositories.PredictionRepository
	tiebreakRepo   repositories.TiebreakOverrideRepository
}

func NewBracketService(
	format *brackets.Format,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	predictionRepo repositories.PredictionRepository,
	tiebreakRepo repositories.TiebreakOverrideRepository,
) BracketService {
	return &bracketService{
		format:         format,
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
		predictionRepo: predictionRepo,
		tiebreakRepo:   tiebreakRepo,
	}
}

func (s *bracketService) LoadSnapshot(ctx context.Context) (*brackets.Snapshot, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load teams: %w", err)
	}
	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load matches: %w", err)
	}
	predictions, err := s.predictionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load predictions: %w", err)
	}
	overrides, err := s.tiebreakRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tiebreak overrides: %w", err)
	}
	return brackets.NewSnapshot(s.format, teams, matches, predictions, overrides), nil
}

func (s *bracketService) UserBracket(ctx context.Context, userID int) (brackets.Resolution, error) {
	snap, err := s.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return brackets.ResolveUserBracket(snap, userID)
}

func (s *bracketService) OfficialBracket(ctx context.Context) (brackets.Resolution, error) {
	snap, err := s.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return brackets.ResolveOfficialBracket(snap)
}

func (s *bracketService) Champion(ctx context.Context, userID int) (*models.Team, bool, error) {
	snap, err := s.LoadSnapshot(ctx)
	if err != nil {
		return nil, false, err
	}
	return brackets.Champion(snap, userID)
}
