package services

import (
	"context"
	"errors"
	"sort"

	"github.com/germarr/fifaworldcup2026/brackets"
	"github.com/germarr/fifaworldcup2026/repositories"
	"golang.org/x/sync/errgroup"
)

// LeaderboardEntry is one user's total across the whole tournament.
type LeaderboardEntry struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Points   int    `json:"points"`
	Rank     int    `json:"rank"`
}

// ScoringService computes user totals and the leaderboard.
type ScoringService interface {
	UserScore(ctx context.Context, userID int) (int, error)
	Leaderboard(ctx context.Context) ([]LeaderboardEntry, error)
}

type scoringService struct {
	bracketSvc BracketService
	userRepo   repositories.UserRepository
	policy     brackets.KnockoutCreditPolicy
}

func NewScoringService(
	bracketSvc BracketService,
	userRepo repositories.UserRepository,
	policy brackets.KnockoutCreditPolicy,
) ScoringService {
	return &scoringService{
		bracketSvc: bracketSvc,
		userRepo:   userRepo,
		policy:     policy,
	}
}

func (s *scoringService) UserScore(ctx context.Context, userID int) (int, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}
	snap, err := s.bracketSvc.LoadSnapshot(ctx)
	if err != nil {
		return 0, err
	}
	return brackets.TotalUserScore(snap, userID, s.policy)
}

// Leaderboard scores every user against one shared snapshot. Totals are
// independent per user, so they are computed concurrently; the snapshot
// is read-only and safe to share.
func (s *scoringService) Leaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	snap, err := s.bracketSvc.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, len(users))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, user := range users {
		g.Go(func() error {
			points, err := brackets.TotalUserScore(snap, user.ID, s.policy)
			if err != nil {
				return err
			}
			entries[i] = LeaderboardEntry{UserID: user.ID, Username: user.Username, Points: points}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].Username < entries[j].Username
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}
