package brackets

import (
	"sort"

	"github.com/germarr/fifaworldcup2026/models"
)

// TeamStanding is one team's aggregate line in a group table. Derived on
// demand, never persisted by this package.
type TeamStanding struct {
	Team         *models.Team
	Played       int
	Won          int
	Drawn        int
	Lost         int
	GoalsFor     int
	GoalsAgainst int
	Points       int
}

func (s *TeamStanding) GoalDifference() int {
	return s.GoalsFor - s.GoalsAgainst
}

// ComputeStandings builds ranked per-group tables from group-stage matches
// and whichever score source the caller supplies (official results or one
// user's predictions). Matches without an available score contribute
// nothing. Every team with a group letter gets a row, zero-filled if it
// has not played, so downstream third-place logic always sees complete
// groups.
//
// Ranking: points, goal difference, goals scored, all descending, then
// team name for stability. Overrides reorder a still-tied adjacent pair
// in the official view; pass nil for user-predicted views.
func ComputeStandings(
	teams []*models.Team,
	groupMatches []*models.Match,
	src ScoreSource,
	overrides []models.TiebreakOverride,
) map[string][]*TeamStanding {
	groups := make(map[string]map[int]*TeamStanding)
	for _, t := range teams {
		if t.Group == "" {
			continue
		}
		if groups[t.Group] == nil {
			groups[t.Group] = make(map[int]*TeamStanding)
		}
		groups[t.Group][t.ID] = &TeamStanding{Team: t}
	}

	for _, m := range groupMatches {
		if !m.Slot1.IsConcrete() || !m.Slot2.IsConcrete() {
			continue
		}
		s1, s2, ok := src.Score(m)
		if !ok {
			continue
		}

		group := groups[m.GroupLetter]
		if group == nil {
			continue
		}
		row1, row2 := group[m.Slot1.TeamID], group[m.Slot2.TeamID]
		if row1 == nil || row2 == nil {
			continue
		}

		row1.Played++
		row2.Played++
		row1.GoalsFor += s1
		row1.GoalsAgainst += s2
		row2.GoalsFor += s2
		row2.GoalsAgainst += s1

		switch {
		case s1 > s2:
			row1.Won++
			row1.Points += 3
			row2.Lost++
		case s2 > s1:
			row2.Won++
			row2.Points += 3
			row1.Lost++
		default:
			row1.Drawn++
			row2.Drawn++
			row1.Points++
			row2.Points++
		}
	}

	tables := make(map[string][]*TeamStanding, len(groups))
	for letter, rows := range groups {
		table := make([]*TeamStanding, 0, len(rows))
		for _, row := range rows {
			table = append(table, row)
		}
		sortStandings(table)
		applyOverrides(letter, table, overrides)
		tables[letter] = table
	}
	return tables
}

func sortStandings(table []*TeamStanding) {
	sort.Slice(table, func(i, j int) bool {
		a, b := table[i], table[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference() != b.GoalDifference() {
			return a.GoalDifference() > b.GoalDifference()
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.Team.Name < b.Team.Name
	})
}

// applyOverrides swaps an adjacent pair when an admin has manually ranked
// two teams the sorting criteria could not separate. The override only
// fires if the designated teams still occupy the targeted positions and
// remain tied on points, goal difference and goals scored.
func applyOverrides(group string, table []*TeamStanding, overrides []models.TiebreakOverride) {
	for _, ov := range overrides {
		if ov.GroupLetter != group {
			continue
		}
		i := ov.Position - 1
		if i < 0 || i+1 >= len(table) {
			continue
		}
		upper, lower := table[i], table[i+1]
		if !tied(upper, lower) {
			continue
		}
		pair := map[int]bool{upper.Team.ID: true, lower.Team.ID: true}
		if !pair[ov.FirstTeamID] || !pair[ov.SecondTeamID] || ov.FirstTeamID == ov.SecondTeamID {
			continue
		}
		if upper.Team.ID != ov.FirstTeamID {
			table[i], table[i+1] = lower, upper
		}
	}
}

func tied(a, b *TeamStanding) bool {
	return a.Points == b.Points &&
		a.GoalDifference() == b.GoalDifference() &&
		a.GoalsFor == b.GoalsFor
}

// ThirdPlaceCandidate is a third-place standings row annotated with its
// group and tournament-wide qualification rank.
type ThirdPlaceCandidate struct {
	Standing  *TeamStanding
	Group     string
	Rank      int
	Qualifies bool
}

// ThirdPlaceTable ranks every group's third-placed team across the whole
// tournament: points, goal difference, goals scored, descending, with the
// group letter as a deterministic last resort. The top qualifierCount
// candidates are flagged as qualifying; this ranking is the tournament's
// qualification order and is computed exactly once, before any slot
// assignment.
func ThirdPlaceTable(standings map[string][]*TeamStanding, qualifierCount int) []*ThirdPlaceCandidate {
	var candidates []*ThirdPlaceCandidate
	for group, table := range standings {
		if len(table) < 3 {
			continue
		}
		candidates = append(candidates, &ThirdPlaceCandidate{Standing: table[2], Group: group})
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i].Standing, candidates[j].Standing
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference() != b.GoalDifference() {
			return a.GoalDifference() > b.GoalDifference()
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return candidates[i].Group < candidates[j].Group
	})

	for i, c := range candidates {
		c.Rank = i + 1
		c.Qualifies = i < qualifierCount
	}
	return candidates
}

// QualifyingThirds slices a ranked third-place table down to the teams
// that actually advance, ready to hand to SolveThirdPlace.
func QualifyingThirds(candidates []*ThirdPlaceCandidate) []*ThirdPlaceCandidate {
	qualified := make([]*ThirdPlaceCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Qualifies {
			qualified = append(qualified, c)
		}
	}
	return qualified
}
