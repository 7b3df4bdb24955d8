package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/germarr/fifaworldcup2026/models"
)

var ErrTeamNotFound = errors.New("team not found")

type TeamRepository interface {
	Create(ctx context.Context, exec SQLExecutor, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	GetByCode(ctx context.Context, code string) (*models.Team, error)
	List(ctx context.Context) ([]*models.Team, error)
	UpdateFlag(ctx context.Context, id int, flagKey, flagURL string) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) Create(ctx context.Context, exec SQLExecutor, team *models.Team) error {
	if exec == nil {
		exec = r.db
	}
	query := `
		INSERT INTO teams (name, code, group_letter, flag_key)
		VALUES ($1, $2, NULLIF($3, ''), $4)
		RETURNING id`
	err := exec.QueryRowContext(ctx, query, team.Name, team.Code, team.Group, team.FlagKey).Scan(&team.ID)
	if err != nil {
		return fmt.Errorf("failed to insert team %q: %w", team.Code, err)
	}
	return nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	return r.getBy(ctx, "id = $1", id)
}

func (r *postgresTeamRepository) GetByCode(ctx context.Context, code string) (*models.Team, error) {
	return r.getBy(ctx, "code = $1", code)
}

func (r *postgresTeamRepository) getBy(ctx context.Context, where string, arg interface{}) (*models.Team, error) {
	query := `
		SELECT id, name, code, COALESCE(group_letter, ''), flag_key, flag_url
		FROM teams
		WHERE ` + where

	team := &models.Team{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&team.ID, &team.Name, &team.Code, &team.Group, &team.FlagKey, &team.FlagURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to scan team: %w", err)
	}
	return team, nil
}

func (r *postgresTeamRepository) List(ctx context.Context) ([]*models.Team, error) {
	query := `
		SELECT id, name, code, COALESCE(group_letter, ''), flag_key, flag_url
		FROM teams
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var teams []*models.Team
	for rows.Next() {
		team := &models.Team{}
		if err := rows.Scan(&team.ID, &team.Name, &team.Code, &team.Group, &team.FlagKey, &team.FlagURL); err != nil {
			return nil, fmt.Errorf("failed to scan team row: %w", err)
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

func (r *postgresTeamRepository) UpdateFlag(ctx context.Context, id int, flagKey, flagURL string) error {
	query := `UPDATE teams SET flag_key = $1, flag_url = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, flagKey, flagURL, id)
	if err != nil {
		return fmt.Errorf("failed to update flag for team %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}
