package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/germarr/fifaworldcup2026/models"
)

var ErrPredictionNotFound = errors.New("prediction not found")

type PredictionRepository interface {
	// Upsert creates or replaces the single pick a user holds for a match.
	Upsert(ctx context.Context, exec SQLExecutor, prediction *models.Prediction) error
	GetByUserAndMatch(ctx context.Context, userID, matchID int) (*models.Prediction, error)
	ListByUser(ctx context.Context, userID int) ([]*models.Prediction, error)
	List(ctx context.Context) ([]*models.Prediction, error)
	DeleteByUserAndMatch(ctx context.Context, userID, matchID int) error
}

type postgresPredictionRepository struct {
	db *sql.DB
}

func NewPostgresPredictionRepository(db *sql.DB) PredictionRepository {
	return &postgresPredictionRepository{db: db}
}

const predictionColumns = `
	id, user_id, match_id, score1, score2, winner_id, penalty_winner_id, created_at, updated_at`

func (r *postgresPredictionRepository) Upsert(ctx context.Context, exec SQLExecutor, p *models.Prediction) error {
	if exec == nil {
		exec = r.db
	}
	now := time.Now()
	query := `
		INSERT INTO predictions
			(user_id, match_id, score1, score2, winner_id, penalty_winner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (user_id, match_id) DO UPDATE
		SET score1 = EXCLUDED.score1,
		    score2 = EXCLUDED.score2,
		    winner_id = EXCLUDED.winner_id,
		    penalty_winner_id = EXCLUDED.penalty_winner_id,
		    updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`
	err := exec.QueryRowContext(ctx, query,
		p.UserID, p.MatchID, p.Score1, p.Score2, p.WinnerID, p.PenaltyWinnerID, now,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert prediction (user %d, match %d): %w", p.UserID, p.MatchID, err)
	}
	p.UpdatedAt = now
	return nil
}

func (r *postgresPredictionRepository) GetByUserAndMatch(ctx context.Context, userID, matchID int) (*models.Prediction, error) {
	query := `SELECT` + predictionColumns + ` FROM predictions WHERE user_id = $1 AND match_id = $2`
	p := &models.Prediction{}
	err := r.db.QueryRowContext(ctx, query, userID, matchID).Scan(
		&p.ID, &p.UserID, &p.MatchID, &p.Score1, &p.Score2,
		&p.WinnerID, &p.PenaltyWinnerID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPredictionNotFound
		}
		return nil, fmt.Errorf("failed to scan prediction: %w", err)
	}
	return p, nil
}

func (r *postgresPredictionRepository) ListByUser(ctx context.Context, userID int) ([]*models.Prediction, error) {
	query := `SELECT` + predictionColumns + ` FROM predictions WHERE user_id = $1 ORDER BY match_id`
	return r.list(ctx, query, userID)
}

func (r *postgresPredictionRepository) List(ctx context.Context) ([]*models.Prediction, error) {
	query := `SELECT` + predictionColumns + ` FROM predictions ORDER BY user_id, match_id`
	return r.list(ctx, query)
}

func (r *postgresPredictionRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Prediction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions: %w", err)
	}
	defer rows.Close()

	var predictions []*models.Prediction
	for rows.Next() {
		p := &models.Prediction{}
		err := rows.Scan(
			&p.ID, &p.UserID, &p.MatchID, &p.Score1, &p.Score2,
			&p.WinnerID, &p.PenaltyWinnerID, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prediction row: %w", err)
		}
		predictions = append(predictions, p)
	}
	return predictions, rows.Err()
}

func (r *postgresPredictionRepository) DeleteByUserAndMatch(ctx context.Context, userID, matchID int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM predictions WHERE user_id = $1 AND match_id = $2`, userID, matchID)
	if err != nil {
		return fmt.Errorf("failed to delete prediction (user %d, match %d): %w", userID, matchID, err)
	}
	return checkAffectedRows(result, ErrPredictionNotFound)
}
