package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/germarr/fifaworldcup2026/models"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	GetByNumber(ctx context.Context, matchNumber int) (*models.Match, error)
	List(ctx context.Context) ([]*models.Match, error)
	UpdateResult(ctx context.Context, exec SQLExecutor, id int, score1, score2 int, penaltyWinnerID *int) error
	// PinTeams records the real fixture of a knockout match once its
	// placeholders have settled. The placeholder codes stay in place.
	PinTeams(ctx context.Context, exec SQLExecutor, id int, team1ID, team2ID int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `
	id, round, match_number, COALESCE(group_letter, ''),
	team1_id, team1_placeholder, team2_id, team2_placeholder,
	kickoff_at, score1, score2, finished, penalty_winner_id`

// The matches table keeps the legacy two-column shape per side (nullable
// team id, nullable placeholder); scanMatch folds each pair into a
// TeamSlot plus an optional pinned team so the ambiguity stops at this
// boundary. A side with a placeholder keeps it as its structural slot
// even once a team id is pinned alongside it.
func scanMatch(row interface{ Scan(...interface{}) error }) (*models.Match, error) {
	m := &models.Match{}
	var (
		team1ID, team2ID sql.NullInt64
		team1Ph, team2Ph sql.NullString
	)
	err := row.Scan(
		&m.ID, &m.Round, &m.MatchNumber, &m.GroupLetter,
		&team1ID, &team1Ph, &team2ID, &team2Ph,
		&m.KickoffAt, &m.Score1, &m.Score2, &m.Finished, &m.PenaltyWinnerID,
	)
	if err != nil {
		return nil, err
	}
	m.Slot1, m.Team1ID = foldSlot(team1ID, team1Ph)
	m.Slot2, m.Team2ID = foldSlot(team2ID, team2Ph)
	return m, nil
}

func foldSlot(teamID sql.NullInt64, placeholder sql.NullString) (models.TeamSlot, *int) {
	if placeholder.Valid && placeholder.String != "" {
		var pinned *int
		if teamID.Valid {
			id := int(teamID.Int64)
			pinned = &id
		}
		return models.PlaceholderSlot(placeholder.String), pinned
	}
	if teamID.Valid {
		return models.ConcreteSlot(int(teamID.Int64)), nil
	}
	return models.TeamSlot{}, nil
}

func slotColumns(slot models.TeamSlot) (teamID sql.NullInt64, placeholder sql.NullString) {
	if slot.IsConcrete() {
		teamID = sql.NullInt64{Int64: int64(slot.TeamID), Valid: true}
	}
	if slot.IsPlaceholder() {
		placeholder = sql.NullString{String: slot.Code, Valid: true}
	}
	return teamID, placeholder
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	if exec == nil {
		exec = r.db
	}
	t1ID, t1Ph := slotColumns(match.Slot1)
	t2ID, t2Ph := slotColumns(match.Slot2)
	query := `
		INSERT INTO matches
			(round, match_number, group_letter, team1_id, team1_placeholder,
			 team2_id, team2_placeholder, kickoff_at, score1, score2, finished, penalty_winner_id)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`
	err := exec.QueryRowContext(ctx, query,
		match.Round, match.MatchNumber, match.GroupLetter, t1ID, t1Ph,
		t2ID, t2Ph, match.KickoffAt, match.Score1, match.Score2, match.Finished, match.PenaltyWinnerID,
	).Scan(&match.ID)
	if err != nil {
		return fmt.Errorf("failed to insert match %d: %w", match.MatchNumber, err)
	}
	return nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	return r.getBy(ctx, "id = $1", id)
}

func (r *postgresMatchRepository) GetByNumber(ctx context.Context, matchNumber int) (*models.Match, error) {
	return r.getBy(ctx, "match_number = $1", matchNumber)
}

func (r *postgresMatchRepository) getBy(ctx context.Context, where string, arg interface{}) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE ` + where
	m, err := scanMatch(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match: %w", err)
	}
	return m, nil
}

func (r *postgresMatchRepository) List(ctx context.Context) ([]*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches ORDER BY match_number`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	var matches []*models.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (r *postgresMatchRepository) UpdateResult(ctx context.Context, exec SQLExecutor, id int, score1, score2 int, penaltyWinnerID *int) error {
	if exec == nil {
		exec = r.db
	}
	query := `
		UPDATE matches
		SET score1 = $1, score2 = $2, penalty_winner_id = $3, finished = TRUE
		WHERE id = $4`
	result, err := exec.ExecContext(ctx, query, score1, score2, penaltyWinnerID, id)
	if err != nil {
		return fmt.Errorf("failed to record result for match %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) PinTeams(ctx context.Context, exec SQLExecutor, id int, team1ID, team2ID int) error {
	if exec == nil {
		exec = r.db
	}
	query := `
		UPDATE matches
		SET team1_id = $1, team2_id = $2
		WHERE id = $3`
	result, err := exec.ExecContext(ctx, query, team1ID, team2ID, id)
	if err != nil {
		return fmt.Errorf("failed to pin teams for match %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}
