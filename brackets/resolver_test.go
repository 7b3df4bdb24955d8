package brackets

import (
	"testing"

	"github.com/germarr/fifaworldcup2026/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoGroupBracket is two full groups feeding cross-group semi-finals, a
// third-place match and a final.
func twoGroupBracket() ([]*models.Team, []*models.Match) {
	teamsA, matchesA := fourTeamGroup(0, "A")
	teamsB, matchesB := fourTeamGroup(10, "B")

	knockout := []*models.Match{
		knockoutFixture(201, 201, models.RoundSemiFinals, "1A", "2B"),
		knockoutFixture(202, 202, models.RoundSemiFinals, "1B", "2A"),
		knockoutFixture(203, 203, models.RoundThirdPlace, "L201", "L202"),
		knockoutFixture(204, 204, models.RoundFinal, "W201", "W202"),
	}

	teams := append(teamsA, teamsB...)
	matches := append(append(matchesA, matchesB...), knockout...)
	return teams, matches
}

func officialStandings(snap *Snapshot) map[string][]*TeamStanding {
	return ComputeStandings(snap.Teams(), snap.GroupMatches(), ActualScores{}, snap.Overrides())
}

func TestResolveBracketSeedsGroupRanks(t *testing.T) {
	teams, matches := twoGroupBracket()
	snap := NewSnapshot(nil, teams, matches, nil, nil)

	res, err := ResolveBracket(snap, officialStandings(snap), nil, ActualScores{})
	require.NoError(t, err)

	assert.Equal(t, "A1", resolutionName(res, "1A"))
	assert.Equal(t, "A2", resolutionName(res, "2A"))
	assert.Equal(t, "A3", resolutionName(res, "3A"))
	assert.Equal(t, "B1", resolutionName(res, "1B"))
	assert.Equal(t, "B2", resolutionName(res, "2B"))
}

func TestResolveBracketSeedsShortTableAsNil(t *testing.T) {
	teams := []*models.Team{newTeam(1, "Solo", "A"), newTeam(2, "Duo", "A")}
	snap := NewSnapshot(nil, teams, nil, nil, nil)

	res, err := ResolveBracket(snap, officialStandings(snap), nil, ActualScores{})
	require.NoError(t, err)

	require.Contains(t, res, "3A")
	assert.Nil(t, res["3A"])
}

func TestResolveBracketSeedsThirdPlaceAssignment(t *testing.T) {
	teams, matches := twoGroupBracket()
	snap := NewSnapshot(nil, teams, matches, nil, nil)
	thirds := map[string]*models.Team{"3AB": snap.Team(3)}

	res, err := ResolveBracket(snap, officialStandings(snap), thirds, ActualScores{})
	require.NoError(t, err)
	assert.Equal(t, "A3", resolutionName(res, "3AB"))
}

func TestResolveBracketChainsMatchReferences(t *testing.T) {
	teams, matches := twoGroupBracket()
	// Semi 201: A1 beats B2. Semi 202: B1 beats A2. Final: B1 beats A1.
	byID := func(id int) *models.Match {
		for _, m := range matches {
			if m.ID == id {
				return m
			}
		}
		return nil
	}
	finish := func(id, s1, s2 int) {
		m := byID(id)
		m.Score1, m.Score2, m.Finished = intp(s1), intp(s2), true
	}
	finish(201, 2, 0)
	finish(202, 0, 1)
	finish(203, 3, 1)
	finish(204, 0, 2)

	snap := NewSnapshot(nil, teams, matches, nil, nil)
	res, err := ResolveBracket(snap, officialStandings(snap), nil, ActualScores{})
	require.NoError(t, err)

	assert.Equal(t, "A1", resolutionName(res, "W201"))
	assert.Equal(t, "B2", resolutionName(res, "L201"))
	assert.Equal(t, "B1", resolutionName(res, "W202"))
	assert.Equal(t, "A2", resolutionName(res, "L202"))
	// Third-place match: L201 (B2) 3-1 L202 (A2).
	assert.Equal(t, "B2", resolutionName(res, "W203"))
	// Final: W201 (A1) 0-2 W202 (B1).
	assert.Equal(t, "B1", resolutionName(res, "W204"))
	assert.Equal(t, "A1", resolutionName(res, "L204"))
}

func TestResolveBracketUnfinishedMatchPropagatesNil(t *testing.T) {
	teams, matches := twoGroupBracket()
	snap := NewSnapshot(nil, teams, matches, nil, nil)

	res, err := ResolveBracket(snap, officialStandings(snap), nil, ActualScores{})
	require.NoError(t, err)

	// Semis have no result, so every downstream entry exists but is nil.
	for _, code := range []string{"W201", "L201", "W202", "L202", "W203", "W204"} {
		require.Contains(t, res, code)
		assert.Nil(t, res[code], "code %s", code)
	}
}

// A drawn knockout score with no recorded shootout winner never guesses a
// side.
func TestResolveBracketDrawWithoutPenaltiesIsUndetermined(t *testing.T) {
	teams, matches := twoGroupBracket()
	for _, m := range matches {
		if m.ID == 201 {
			m.Score1, m.Score2, m.Finished = intp(1), intp(1), true
		}
	}

	snap := NewSnapshot(nil, teams, matches, nil, nil)
	res, err := ResolveBracket(snap, officialStandings(snap), nil, ActualScores{})
	require.NoError(t, err)

	require.Contains(t, res, "W201")
	assert.Nil(t, res["W201"])
	assert.Nil(t, res["L201"])
}

func TestResolveBracketPenaltyWinnerBreaksDraw(t *testing.T) {
	teams, matches := twoGroupBracket()
	for _, m := range matches {
		if m.ID == 201 {
			// A1 (id 1) wins the shootout against B2.
			m.Score1, m.Score2, m.Finished = intp(1), intp(1), true
			m.PenaltyWinnerID = intp(1)
		}
	}

	snap := NewSnapshot(nil, teams, matches, nil, nil)
	res, err := ResolveBracket(snap, officialStandings(snap), nil, ActualScores{})
	require.NoError(t, err)

	assert.Equal(t, "A1", resolutionName(res, "W201"))
	assert.Equal(t, "B2", resolutionName(res, "L201"))
}

func TestResolveBracketUnknownMatchReference(t *testing.T) {
	teams, matches := twoGroupBracket()
	for _, m := range matches {
		if m.ID == 204 {
			m.Slot1 = models.PlaceholderSlot("W999")
		}
	}

	snap := NewSnapshot(nil, teams, matches, nil, nil)
	_, err := ResolveBracket(snap, officialStandings(snap), nil, ActualScores{})

	var resErr *ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, ErrKindUnknownMatch, resErr.Kind)
	assert.Equal(t, "W999", resErr.Code)
}

func TestResolveBracketForwardReference(t *testing.T) {
	teams, matches := twoGroupBracket()
	for _, m := range matches {
		if m.ID == 203 {
			m.Slot1 = models.PlaceholderSlot("W204")
		}
	}

	snap := NewSnapshot(nil, teams, matches, nil, nil)
	_, err := ResolveBracket(snap, officialStandings(snap), nil, ActualScores{})

	var resErr *ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, ErrKindForwardReference, resErr.Kind)
}

func TestResolveBracketDuplicateMatchNumber(t *testing.T) {
	teams, matches := twoGroupBracket()
	matches = append(matches, knockoutFixture(205, 201, models.RoundSemiFinals, "1A", "1B"))

	snap := NewSnapshot(nil, teams, matches, nil, nil)
	_, err := ResolveBracket(snap, officialStandings(snap), nil, ActualScores{})

	var resErr *ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, ErrKindDuplicateEntry, resErr.Kind)
	assert.Equal(t, "W201", resErr.Code)
}

func TestResolveBracketFreeTextSlotIsTBD(t *testing.T) {
	teams, matches := twoGroupBracket()
	for _, m := range matches {
		if m.ID == 201 {
			m.Slot2 = models.PlaceholderSlot("Winner of playoff")
		}
	}

	snap := NewSnapshot(nil, teams, matches, nil, nil)
	res, err := ResolveBracket(snap, officialStandings(snap), nil, ActualScores{})
	require.NoError(t, err)
	assert.Nil(t, res["W201"])
}

func TestResolvedTeamsPrefersConcreteSlots(t *testing.T) {
	teams, matches := twoGroupBracket()
	for _, m := range matches {
		if m.ID == 201 {
			m.Slot1 = models.ConcreteSlot(14) // B4, regardless of standings
		}
	}

	snap := NewSnapshot(nil, teams, matches, nil, nil)
	res, err := ResolveBracket(snap, officialStandings(snap), nil, ActualScores{})
	require.NoError(t, err)

	team1, team2, err := ResolvedTeams(snap.Match(201), res, snap)
	require.NoError(t, err)
	assert.Equal(t, "B4", team1.Name)
	assert.Equal(t, "B2", team2.Name)
}
