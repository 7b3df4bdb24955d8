package models

import "time"

// GroupStanding is the persisted official standings row for one team,
// recomputed from finished group-stage results. Never edited directly.
type GroupStanding struct {
	ID           int       `json:"id" db:"id"`
	TeamID       int       `json:"team_id" db:"team_id"`
	GroupLetter  string    `json:"group_letter" db:"group_letter"`
	Played       int       `json:"played" db:"played"`
	Won          int       `json:"won" db:"won"`
	Drawn        int       `json:"drawn" db:"drawn"`
	Lost         int       `json:"lost" db:"lost"`
	GoalsFor     int       `json:"goals_for" db:"goals_for"`
	GoalsAgainst int       `json:"goals_against" db:"goals_against"`
	GoalDiff     int       `json:"goal_difference" db:"goal_difference"`
	Points       int       `json:"points" db:"points"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`

	Team *Team `json:"team,omitempty" db:"-"`
}

// TiebreakOverride is an admin-entered ordering for two teams that finish
// the group stage level on points, goal difference and goals scored. It
// targets the pair occupying Position and Position+1 of the official
// table; it is ignored unless that pair is still tied and consists of
// exactly the two designated teams.
type TiebreakOverride struct {
	ID           int    `json:"id" db:"id"`
	GroupLetter  string `json:"group_letter" db:"group_letter"`
	Position     int    `json:"position" db:"position"` // 1-based rank of the first team of the pair
	FirstTeamID  int    `json:"first_team_id" db:"first_team_id"`
	SecondTeamID int    `json:"second_team_id" db:"second_team_id"`
}
