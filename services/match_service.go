package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/germarr/fifaworldcup2026/brackets"
	"github.com/germarr/fifaworldcup2026/repositories"
)

// MatchService is the admin surface for fixtures: entering results and
// pinning knockout fixtures once earlier rounds have settled.
type MatchService interface {
	// RecordResult stores a final score for a match. A drawn knockout
	// score requires a penalty winner from one of the fixture's sides.
	RecordResult(ctx context.Context, matchID, score1, score2 int, penaltyWinnerID *int) error
	// PinFixtures resolves the official bracket and pins every knockout
	// fixture whose sides are now determined, returning how many matches
	// were pinned. Placeholder codes are left in place.
	PinFixtures(ctx context.Context) (int, error)
}

type matchService struct {
	bracketSvc BracketService
	matchRepo  repositories.MatchRepository
	logger     *slog.Logger
}

func NewMatchService(
	bracketSvc BracketService,
	matchRepo repositories.MatchRepository,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		bracketSvc: bracketSvc,
		matchRepo:  matchRepo,
		logger:     logger,
	}
}

func (s *matchService) RecordResult(ctx context.Context, matchID, score1, score2 int, penaltyWinnerID *int) error {
	if score1 < 0 || score2 < 0 {
		return ErrInvalidScore
	}

	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("failed to load match %d: %w", matchID, err)
	}
	if match.Finished {
		return ErrMatchAlreadyFinished
	}

	if penaltyWinnerID != nil {
		if score1 != score2 {
			return fmt.Errorf("penalty winner only applies to a drawn score")
		}
		team1, team2 := match.SideTeamIDs()
		id := *penaltyWinnerID
		if id == 0 || (id != team1 && id != team2) {
			return fmt.Errorf("penalty winner %d is not part of match %d", id, match.MatchNumber)
		}
	}

	if err := s.matchRepo.UpdateResult(ctx, nil, matchID, score1, score2, penaltyWinnerID); err != nil {
		return err
	}
	s.logger.Info("match result recorded",
		slog.Int("match_number", match.MatchNumber),
		slog.Int("score1", score1),
		slog.Int("score2", score2))
	return nil
}

func (s *matchService) PinFixtures(ctx context.Context) (int, error) {
	snap, err := s.bracketSvc.LoadSnapshot(ctx)
	if err != nil {
		return 0, err
	}
	res, err := brackets.ResolveOfficialBracket(snap)
	if err != nil {
		return 0, err
	}

	pinned := 0
	for _, m := range snap.KnockoutMatches() {
		if m.Team1ID != nil && m.Team2ID != nil {
			continue
		}
		team1, team2, err := brackets.ResolvedTeams(m, res, snap)
		if err != nil {
			return pinned, err
		}
		if team1 == nil || team2 == nil {
			continue
		}
		if err := s.matchRepo.PinTeams(ctx, nil, m.ID, team1.ID, team2.ID); err != nil {
			return pinned, fmt.Errorf("failed to pin fixture for match %d: %w", m.MatchNumber, err)
		}
		pinned++
	}
	s.logger.Info("knockout fixtures pinned", slog.Int("pinned", pinned))
	return pinned, nil
}
