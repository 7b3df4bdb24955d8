package brackets

import (
	"fmt"

	"github.com/germarr/fifaworldcup2026/models"
)

func intp(v int) *int { return &v }

func newTeam(id int, name, group string) *models.Team {
	return &models.Team{ID: id, Name: name, Code: name, Group: group}
}

// groupFixture is a finished group-stage match between two concrete teams.
func groupFixture(id, number int, group string, team1, team2, score1, score2 int) *models.Match {
	return &models.Match{
		ID:          id,
		Round:       models.RoundGroupStage,
		MatchNumber: number,
		GroupLetter: group,
		Slot1:       models.ConcreteSlot(team1),
		Slot2:       models.ConcreteSlot(team2),
		Score1:      intp(score1),
		Score2:      intp(score2),
		Finished:    true,
	}
}

// knockoutFixture is a knockout match whose sides are placeholder codes and
// whose result, if any, the caller sets afterwards.
func knockoutFixture(id, number int, round models.Round, slot1, slot2 string) *models.Match {
	return &models.Match{
		ID:          id,
		Round:       round,
		MatchNumber: number,
		Slot1:       models.PlaceholderSlot(slot1),
		Slot2:       models.PlaceholderSlot(slot2),
	}
}

// fourTeamGroup builds one complete group of four with a full round robin:
// ids base+1..base+4, named <letter>1..<letter>4. Results give <letter>1
// nine points, <letter>2 six, <letter>3 three, <letter>4 none, with
// distinct goal tallies all the way down.
func fourTeamGroup(base int, letter string) ([]*models.Team, []*models.Match) {
	teams := []*models.Team{
		newTeam(base+1, letter+"1", letter),
		newTeam(base+2, letter+"2", letter),
		newTeam(base+3, letter+"3", letter),
		newTeam(base+4, letter+"4", letter),
	}
	num := base * 10
	matches := []*models.Match{
		groupFixture(num+1, num+1, letter, base+1, base+2, 2, 1),
		groupFixture(num+2, num+2, letter, base+3, base+4, 1, 0),
		groupFixture(num+3, num+3, letter, base+1, base+3, 3, 0),
		groupFixture(num+4, num+4, letter, base+2, base+4, 2, 0),
		groupFixture(num+5, num+5, letter, base+1, base+4, 4, 0),
		groupFixture(num+6, num+6, letter, base+2, base+3, 1, 0),
	}
	return teams, matches
}

func standingName(s *TeamStanding) string {
	if s == nil || s.Team == nil {
		return ""
	}
	return s.Team.Name
}

func tableNames(table []*TeamStanding) []string {
	names := make([]string, 0, len(table))
	for _, row := range table {
		names = append(names, standingName(row))
	}
	return names
}

func resolutionName(res Resolution, code string) string {
	team, ok := res[code]
	if !ok {
		return fmt.Sprintf("<missing %s>", code)
	}
	if team == nil {
		return ""
	}
	return team.Name
}
