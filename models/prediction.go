package models

import "time"

// Prediction is one user's pick for one match. At most one row exists per
// (user, match); clearing a pick deletes the row.
type Prediction struct {
	ID      int `json:"id" db:"id"`
	UserID  int `json:"user_id" db:"user_id"`
	MatchID int `json:"match_id" db:"match_id"`

	Score1 int `json:"score1" db:"score1"`
	Score2 int `json:"score2" db:"score2"`

	// WinnerID disambiguates the pick when the user's bracket has the
	// teams on swapped sides from the actual fixture.
	WinnerID        *int `json:"winner_id,omitempty" db:"winner_id"`
	PenaltyWinnerID *int `json:"penalty_winner_id,omitempty" db:"penalty_winner_id"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
