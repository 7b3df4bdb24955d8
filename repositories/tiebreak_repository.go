package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/germarr/fifaworldcup2026/models"
)

var ErrTiebreakNotFound = errors.New("tiebreak override not found")

// TiebreakOverrideRepository stores admin decisions that order two teams
// the standings criteria cannot separate.
type TiebreakOverrideRepository interface {
	Upsert(ctx context.Context, override *models.TiebreakOverride) error
	List(ctx context.Context) ([]models.TiebreakOverride, error)
	Delete(ctx context.Context, id int) error
}

type postgresTiebreakOverrideRepository struct {
	db *sql.DB
}

func NewPostgresTiebreakOverrideRepository(db *sql.DB) TiebreakOverrideRepository {
	return &postgresTiebreakOverrideRepository{db: db}
}

func (r *postgresTiebreakOverrideRepository) Upsert(ctx context.Context, ov *models.TiebreakOverride) error {
	query := `
		INSERT INTO tiebreak_overrides (group_letter, position, first_team_id, second_team_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (group_letter, position) DO UPDATE
		SET first_team_id = EXCLUDED.first_team_id,
		    second_team_id = EXCLUDED.second_team_id
		RETURNING id`
	err := r.db.QueryRowContext(ctx, query, ov.GroupLetter, ov.Position, ov.FirstTeamID, ov.SecondTeamID).Scan(&ov.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert tiebreak override (group %s, position %d): %w", ov.GroupLetter, ov.Position, err)
	}
	return nil
}

func (r *postgresTiebreakOverrideRepository) List(ctx context.Context) ([]models.TiebreakOverride, error) {
	query := `
		SELECT id, group_letter, position, first_team_id, second_team_id
		FROM tiebreak_overrides
		ORDER BY group_letter, position`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tiebreak overrides: %w", err)
	}
	defer rows.Close()

	var overrides []models.TiebreakOverride
	for rows.Next() {
		var ov models.TiebreakOverride
		if err := rows.Scan(&ov.ID, &ov.GroupLetter, &ov.Position, &ov.FirstTeamID, &ov.SecondTeamID); err != nil {
			return nil, fmt.Errorf("failed to scan tiebreak override: %w", err)
		}
		overrides = append(overrides, ov)
	}
	return overrides, rows.Err()
}

func (r *postgresTiebreakOverrideRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tiebreak_overrides WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tiebreak override %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrTiebreakNotFound)
}
