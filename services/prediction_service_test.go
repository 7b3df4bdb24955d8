package services

import (
	"context"
	"testing"
	"time"

	"github.com/germarr/fifaworldcup2026/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPredictionServiceAt(w *testWorld, now time.Time) PredictionService {
	svc := NewPredictionService(w.predictionRepo, w.matchRepo)
	svc.(*predictionService).now = func() time.Time { return now }
	return svc
}

func TestSavePredictionBeforeKickoff(t *testing.T) {
	w := newTestWorld()
	final, err := w.matchRepo.GetByID(context.Background(), 3)
	require.NoError(t, err)
	svc := newPredictionServiceAt(w, final.KickoffAt.Add(-time.Hour))

	p := &models.Prediction{UserID: 9, MatchID: 3, Score1: 2, Score2: 1}
	require.NoError(t, svc.Save(context.Background(), p))

	stored, err := w.predictionRepo.GetByUserAndMatch(context.Background(), 9, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Score1)
}

func TestSavePredictionLockedAtKickoff(t *testing.T) {
	w := newTestWorld()
	final, err := w.matchRepo.GetByID(context.Background(), 3)
	require.NoError(t, err)
	svc := newPredictionServiceAt(w, final.KickoffAt)

	p := &models.Prediction{UserID: 9, MatchID: 3, Score1: 2, Score2: 1}
	assert.ErrorIs(t, svc.Save(context.Background(), p), ErrPredictionLocked)
}

func TestSavePredictionRejectsNegativeScores(t *testing.T) {
	w := newTestWorld()
	svc := newPredictionServiceAt(w, time.Time{})

	p := &models.Prediction{UserID: 9, MatchID: 3, Score1: -1, Score2: 0}
	assert.ErrorIs(t, svc.Save(context.Background(), p), ErrInvalidScore)
}

func TestSavePredictionUnknownMatch(t *testing.T) {
	w := newTestWorld()
	svc := newPredictionServiceAt(w, time.Time{})

	p := &models.Prediction{UserID: 9, MatchID: 999, Score1: 1, Score2: 0}
	assert.ErrorIs(t, svc.Save(context.Background(), p), ErrMatchNotFound)
}

func TestClearPrediction(t *testing.T) {
	w := newTestWorld()
	final, err := w.matchRepo.GetByID(context.Background(), 3)
	require.NoError(t, err)
	svc := newPredictionServiceAt(w, final.KickoffAt.Add(-time.Hour))

	require.NoError(t, svc.Clear(context.Background(), 7, 3))
	_, err = w.predictionRepo.GetByUserAndMatch(context.Background(), 7, 3)
	assert.Error(t, err)

	// Clearing a pick that never existed is not an error.
	assert.NoError(t, svc.Clear(context.Background(), 10, 3))
}
