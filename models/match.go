package models

import "time"

// Round identifies the tournament phase a match belongs to, matching the
// labels stored in the matches table.
type Round string

const (
	RoundGroupStage    Round = "Group Stage"
	RoundOf32          Round = "Round of 32"
	RoundOf16          Round = "Round of 16"
	RoundQuarterFinals Round = "Quarter Finals"
	RoundSemiFinals    Round = "Semi Finals"
	RoundThirdPlace    Round = "Third Place"
	RoundFinal         Round = "Final"
)

func (r Round) IsGroupStage() bool {
	return r == RoundGroupStage
}

func (r Round) IsKnockout() bool {
	return r != RoundGroupStage && r != ""
}

// TeamSlot holds one side of a fixture: either a concrete team, a symbolic
// placeholder code ("1A", "3ABCDF", "W73"), or nothing at all. Exactly one
// of the two fields is ever set.
type TeamSlot struct {
	TeamID int    `json:"team_id,omitempty" db:"team_id"`
	Code   string `json:"code,omitempty" db:"placeholder"`
}

func ConcreteSlot(teamID int) TeamSlot {
	return TeamSlot{TeamID: teamID}
}

func PlaceholderSlot(code string) TeamSlot {
	return TeamSlot{Code: code}
}

func (s TeamSlot) IsConcrete() bool {
	return s.TeamID != 0
}

func (s TeamSlot) IsPlaceholder() bool {
	return s.TeamID == 0 && s.Code != ""
}

func (s TeamSlot) IsUnset() bool {
	return s.TeamID == 0 && s.Code == ""
}

// Match is a single fixture. Actual scores and the penalty winner are
// entered by admins once the match finishes; the resolution engine only
// ever reads them.
type Match struct {
	ID          int       `json:"id" db:"id"`
	Round       Round     `json:"round" db:"round"`
	MatchNumber int       `json:"match_number" db:"match_number"` // tournament-wide sequence
	GroupLetter string    `json:"group_letter,omitempty" db:"group_letter"`
	Slot1       TeamSlot  `json:"slot1"`
	Slot2       TeamSlot  `json:"slot2"`
	KickoffAt   time.Time `json:"kickoff_at" db:"kickoff_at"`

	// Team1ID and Team2ID pin a knockout fixture to real teams once the
	// rounds feeding it have settled. The slots keep their placeholder
	// codes so each user's own bracket chain can still be replayed;
	// group-stage matches carry their teams in the slots and leave these
	// nil.
	Team1ID *int `json:"team1_id,omitempty" db:"team1_id"`
	Team2ID *int `json:"team2_id,omitempty" db:"team2_id"`

	Score1          *int `json:"score1,omitempty" db:"score1"`
	Score2          *int `json:"score2,omitempty" db:"score2"`
	Finished        bool `json:"finished" db:"finished"`
	PenaltyWinnerID *int `json:"penalty_winner_id,omitempty" db:"penalty_winner_id"`
}

// HasResult reports whether both actual scores have been recorded.
func (m *Match) HasResult() bool {
	return m.Score1 != nil && m.Score2 != nil
}

// SideTeamIDs returns the real team on each side of the fixture: the
// slot's team where the slot is concrete, otherwise the pinned team id.
// 0 means that side is not yet known.
func (m *Match) SideTeamIDs() (team1ID, team2ID int) {
	side := func(slot TeamSlot, pinned *int) int {
		if slot.IsConcrete() {
			return slot.TeamID
		}
		if pinned != nil {
			return *pinned
		}
		return 0
	}
	return side(m.Slot1, m.Team1ID), side(m.Slot2, m.Team2ID)
}
