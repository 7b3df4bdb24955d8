package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/germarr/fifaworldcup2026/brackets"
	"github.com/germarr/fifaworldcup2026/models"
	"github.com/germarr/fifaworldcup2026/repositories"
)

// StandingsService computes group tables for both views: official (from
// recorded results, with admin tiebreak overrides) and per-user (from
// that user's predictions). The official tables are also persisted so
// read paths never recompute them.
type StandingsService interface {
	OfficialStandings(ctx context.Context) (map[string][]*brackets.TeamStanding, error)
	UserStandings(ctx context.Context, userID int) (map[string][]*brackets.TeamStanding, error)
	ThirdPlaceTable(ctx context.Context, userID int) ([]*brackets.ThirdPlaceCandidate, error)
	// RecomputeOfficial recalculates official standings from finished
	// results and replaces the persisted rows.
	RecomputeOfficial(ctx context.Context) error
}

type standingsService struct {
	bracketSvc   BracketService
	standingRepo repositories.GroupStandingRepository
	logger       *slog.Logger
}

func NewStandingsService(
	bracketSvc BracketService,
	standingRepo repositories.GroupStandingRepository,
	logger *slog.Logger,
) StandingsService {
	return &standingsService{
		bracketSvc:   bracketSvc,
		standingRepo: standingRepo,
		logger:       logger,
	}
}

func (s *standingsService) OfficialStandings(ctx context.Context) (map[string][]*brackets.TeamStanding, error) {
	snap, err := s.bracketSvc.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return brackets.ComputeStandings(snap.Teams(), snap.GroupMatches(), brackets.ActualScores{}, snap.Overrides()), nil
}

func (s *standingsService) UserStandings(ctx context.Context, userID int) (map[string][]*brackets.TeamStanding, error) {
	snap, err := s.bracketSvc.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	src := brackets.NewPredictedScores(snap, userID)
	return brackets.ComputeStandings(snap.Teams(), snap.GroupMatches(), src, nil), nil
}

// ThirdPlaceTable ranks the third-placed teams of a user's predicted
// groups; userID 0 ranks the official view instead.
func (s *standingsService) ThirdPlaceTable(ctx context.Context, userID int) ([]*brackets.ThirdPlaceCandidate, error) {
	snap, err := s.bracketSvc.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	var standings map[string][]*brackets.TeamStanding
	if userID == 0 {
		standings = brackets.ComputeStandings(snap.Teams(), snap.GroupMatches(), brackets.ActualScores{}, snap.Overrides())
	} else {
		src := brackets.NewPredictedScores(snap, userID)
		standings = brackets.ComputeStandings(snap.Teams(), snap.GroupMatches(), src, nil)
	}
	return brackets.ThirdPlaceTable(standings, snap.Format().ThirdPlaceQualifiers), nil
}

func (s *standingsService) RecomputeOfficial(ctx context.Context) error {
	tables, err := s.OfficialStandings(ctx)
	if err != nil {
		return err
	}

	var rows []*models.GroupStanding
	for group, table := range tables {
		for _, line := range table {
			rows = append(rows, &models.GroupStanding{
				TeamID:       line.Team.ID,
				GroupLetter:  group,
				Played:       line.Played,
				Won:          line.Won,
				Drawn:        line.Drawn,
				Lost:         line.Lost,
				GoalsFor:     line.GoalsFor,
				GoalsAgainst: line.GoalsAgainst,
				GoalDiff:     line.GoalDifference(),
				Points:       line.Points,
			})
		}
	}

	if err := s.standingRepo.ReplaceAll(ctx, rows); err != nil {
		return fmt.Errorf("failed to persist official standings: %w", err)
	}
	s.logger.Info("official standings recomputed", slog.Int("rows", len(rows)))
	return nil
}
