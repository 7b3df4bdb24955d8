package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/germarr/fifaworldcup2026/brackets"
	"github.com/germarr/fifaworldcup2026/models"
	"github.com/germarr/fifaworldcup2026/repositories"
)

// SimulationService fills a tournament with randomized data: results for
// every playable match and, optionally, a complete prediction set for a
// user. Useful for demos and for exercising the whole resolution pipeline
// against realistic data.
type SimulationService interface {
	// SimulateGroupStage records a random result for every unfinished
	// group match and returns how many results were written.
	SimulateGroupStage(ctx context.Context) (int, error)
	// SimulateKnockoutStage repeatedly resolves the official bracket and
	// plays every knockout match whose fixture is known, pinning real
	// teams onto the fixtures as rounds complete.
	SimulateKnockoutStage(ctx context.Context) (int, error)
	// SimulateUserPredictions writes a full random prediction set for the
	// user, replacing any existing picks.
	SimulateUserPredictions(ctx context.Context, userID int) (int, error)
}

type simulationService struct {
	bracketSvc     BracketService
	matchRepo      repositories.MatchRepository
	predictionRepo repositories.PredictionRepository
	faker          *gofakeit.Faker
	logger         *slog.Logger
}

func NewSimulationService(
	bracketSvc BracketService,
	matchRepo repositories.MatchRepository,
	predictionRepo repositories.PredictionRepository,
	seed uint64,
	logger *slog.Logger,
) SimulationService {
	return &simulationService{
		bracketSvc:     bracketSvc,
		matchRepo:      matchRepo,
		predictionRepo: predictionRepo,
		faker:          gofakeit.New(seed),
		logger:         logger,
	}
}

// randomScore skews low the way real football scorelines do.
func (s *simulationService) randomScore() int {
	return s.faker.RandomInt([]int{0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 3, 3, 4, 5})
}

func (s *simulationService) SimulateGroupStage(ctx context.Context) (int, error) {
	snap, err := s.bracketSvc.LoadSnapshot(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, m := range snap.GroupMatches() {
		if m.Finished || !m.Slot1.IsConcrete() || !m.Slot2.IsConcrete() {
			continue
		}
		if err := s.matchRepo.UpdateResult(ctx, nil, m.ID, s.randomScore(), s.randomScore(), nil); err != nil {
			return count, fmt.Errorf("failed to record group result for match %d: %w", m.MatchNumber, err)
		}
		count++
	}
	s.logger.Info("group stage simulated", slog.Int("results", count))
	return count, nil
}

func (s *simulationService) SimulateKnockoutStage(ctx context.Context) (int, error) {
	total := 0
	for {
		played, err := s.playResolvedKnockouts(ctx)
		if err != nil {
			return total, err
		}
		if played == 0 {
			break
		}
		total += played
	}
	s.logger.Info("knockout stage simulated", slog.Int("results", total))
	return total, nil
}

func (s *simulationService) playResolvedKnockouts(ctx context.Context) (int, error) {
	snap, err := s.bracketSvc.LoadSnapshot(ctx)
	if err != nil {
		return 0, err
	}
	res, err := brackets.ResolveOfficialBracket(snap)
	if err != nil {
		return 0, err
	}

	played := 0
	for _, m := range snap.KnockoutMatches() {
		if m.Finished {
			continue
		}
		team1, team2, err := brackets.ResolvedTeams(m, res, snap)
		if err != nil {
			return played, err
		}
		if team1 == nil || team2 == nil {
			continue
		}

		// Pin the resolved fixture onto the match, the way an admin would
		// once the previous round is official. The placeholder codes stay
		// so user bracket chains keep replaying.
		if err := s.matchRepo.PinTeams(ctx, nil, m.ID, team1.ID, team2.ID); err != nil {
			return played, fmt.Errorf("failed to pin fixture for match %d: %w", m.MatchNumber, err)
		}

		score1, score2 := s.randomScore(), s.randomScore()
		var penaltyWinnerID *int
		if score1 == score2 {
			// Knockout draws go to a shootout.
			winner := team1.ID
			if s.faker.Bool() {
				winner = team2.ID
			}
			penaltyWinnerID = &winner
		}
		if err := s.matchRepo.UpdateResult(ctx, nil, m.ID, score1, score2, penaltyWinnerID); err != nil {
			return played, fmt.Errorf("failed to record knockout result for match %d: %w", m.MatchNumber, err)
		}
		played++
	}
	return played, nil
}

func (s *simulationService) SimulateUserPredictions(ctx context.Context, userID int) (int, error) {
	snap, err := s.bracketSvc.LoadSnapshot(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, m := range snap.GroupMatches() {
		p := &models.Prediction{
			UserID:  userID,
			MatchID: m.ID,
			Score1:  s.randomScore(),
			Score2:  s.randomScore(),
		}
		if err := s.predictionRepo.Upsert(ctx, nil, p); err != nil {
			return count, err
		}
		count++
	}
	for _, m := range snap.KnockoutMatches() {
		score1, score2 := s.randomScore(), s.randomScore()
		for score1 == score2 {
			// Keep knockout picks decisive so no shootout pick is needed.
			score2 = s.randomScore()
		}
		p := &models.Prediction{
			UserID:  userID,
			MatchID: m.ID,
			Score1:  score1,
			Score2:  score2,
		}
		if err := s.predictionRepo.Upsert(ctx, nil, p); err != nil {
			return count, err
		}
		count++
	}
	s.logger.Info("user predictions simulated", slog.Int("user_id", userID), slog.Int("predictions", count))
	return count, nil
}
