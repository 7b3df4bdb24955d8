package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/germarr/fifaworldcup2026/models"
)

// GroupStandingRepository persists the derived official standings so the
// read path never recomputes them per request. Rows are replaced
// wholesale on every recompute; they are never edited in place.
type GroupStandingRepository interface {
	ReplaceAll(ctx context.Context, standings []*models.GroupStanding) error
	ListByGroup(ctx context.Context, groupLetter string) ([]*models.GroupStanding, error)
	List(ctx context.Context) ([]*models.GroupStanding, error)
}

type postgresGroupStandingRepository struct {
	db *sql.DB
}

func NewPostgresGroupStandingRepository(db *sql.DB) GroupStandingRepository {
	return &postgresGroupStandingRepository{db: db}
}

func (r *postgresGroupStandingRepository) ReplaceAll(ctx context.Context, standings []*models.GroupStanding) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin standings transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM group_standings`); err != nil {
		return fmt.Errorf("failed to clear group standings: %w", err)
	}

	query := `
		INSERT INTO group_standings
			(team_id, group_letter, played, won, drawn, lost,
			 goals_for, goals_against, goal_difference, points, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`
	now := time.Now()
	for _, s := range standings {
		s.UpdatedAt = now
		err := tx.QueryRowContext(ctx, query,
			s.TeamID, s.GroupLetter, s.Played, s.Won, s.Drawn, s.Lost,
			s.GoalsFor, s.GoalsAgainst, s.GoalDiff, s.Points, s.UpdatedAt,
		).Scan(&s.ID)
		if err != nil {
			return fmt.Errorf("failed to insert standing for team %d: %w", s.TeamID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit standings: %w", err)
	}
	return nil
}

func (r *postgresGroupStandingRepository) ListByGroup(ctx context.Context, groupLetter string) ([]*models.GroupStanding, error) {
	query := standingSelect + ` WHERE group_letter = $1 ` + standingOrder
	return r.list(ctx, query, groupLetter)
}

func (r *postgresGroupStandingRepository) List(ctx context.Context) ([]*models.GroupStanding, error) {
	return r.list(ctx, standingSelect+standingOrder)
}

const standingSelect = `
	SELECT id, team_id, group_letter, played, won, drawn, lost,
	       goals_for, goals_against, goal_difference, points, updated_at
	FROM group_standings`

const standingOrder = ` ORDER BY group_letter, points DESC, goal_difference DESC, goals_for DESC`

func (r *postgresGroupStandingRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.GroupStanding, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list group standings: %w", err)
	}
	defer rows.Close()

	var standings []*models.GroupStanding
	for rows.Next() {
		s := &models.GroupStanding{}
		err := rows.Scan(
			&s.ID, &s.TeamID, &s.GroupLetter, &s.Played, &s.Won, &s.Drawn, &s.Lost,
			&s.GoalsFor, &s.GoalsAgainst, &s.GoalDiff, &s.Points, &s.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan standing row: %w", err)
		}
		standings = append(standings, s)
	}
	return standings, rows.Err()
}
