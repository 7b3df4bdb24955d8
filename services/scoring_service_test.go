package services

import (
	"context"
	"testing"

	"github.com/germarr/fifaworldcup2026/brackets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserScore(t *testing.T) {
	w := newTestWorld()
	svc := NewScoringService(w.bracketSvc, w.userRepo, brackets.PartialCredit)

	// Alice: two exact group picks, final still unplayed.
	total, err := svc.UserScore(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 6, total)

	// Bob: one correct outcome.
	total, err = svc.UserScore(context.Background(), 8)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestLeaderboardOrderingAndRanks(t *testing.T) {
	w := newTestWorld()
	svc := NewScoringService(w.bracketSvc, w.userRepo, brackets.PartialCredit)

	entries, err := svc.Leaderboard(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 4)

	assert.Equal(t, "alice", entries[0].Username)
	assert.Equal(t, 6, entries[0].Points)
	assert.Equal(t, 1, entries[0].Rank)

	assert.Equal(t, "bob", entries[1].Username)
	assert.Equal(t, 1, entries[1].Points)
	assert.Equal(t, 2, entries[1].Rank)

	// Zero-point tie falls back to username order.
	assert.Equal(t, "carol", entries[2].Username)
	assert.Equal(t, 3, entries[2].Rank)
	assert.Equal(t, "dave", entries[3].Username)
	assert.Equal(t, 4, entries[3].Rank)
}

func TestLeaderboardScoresFinishedFinal(t *testing.T) {
	w := newTestWorld()
	// Pin and finish the final: Mexico 1-0 Brazil, exactly alice's pick.
	require.NoError(t, w.matchRepo.PinTeams(context.Background(), nil, 3, 1, 3))
	require.NoError(t, w.matchRepo.UpdateResult(context.Background(), nil, 3, 1, 0, nil))

	svc := NewScoringService(w.bracketSvc, w.userRepo, brackets.PartialCredit)
	total, err := svc.UserScore(context.Background(), 7)
	require.NoError(t, err)
	// 6 from the groups plus a doubled exact final (3 x2).
	assert.Equal(t, 12, total)
}
