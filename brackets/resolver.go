package brackets

import (
	"fmt"

	"github.com/germarr/fifaworldcup2026/models"
)

// Resolution maps placeholder codes to resolved teams. A key holding nil
// means the code is known but its team is not yet determined; a missing
// key means the code was never seeded or written. Entries are written at
// most once per resolution pass.
type Resolution map[string]*models.Team

// ResolveBracket turns every placeholder in the knockout bracket into a
// concrete team where the supplied data allows it.
//
// The map is seeded with group rank codes from the standings and with the
// solver's third-place assignment, then the knockout matches are walked
// strictly in match-number order. Each match's two resolved teams decide
// its own W/L entries, so a later match referencing "W73" finds the entry
// already present. Anything unresolvable stays nil and propagates; only
// structurally broken data (a W code pointing at a match that does not
// exist, or forwards) returns a *ResolutionError.
func ResolveBracket(
	snap *Snapshot,
	standings map[string][]*TeamStanding,
	thirds map[string]*models.Team,
	src ScoreSource,
) (Resolution, error) {
	res := make(Resolution)

	for group, table := range standings {
		for rank := 1; rank <= 3; rank++ {
			code := fmt.Sprintf("%d%s", rank, group)
			if rank <= len(table) {
				res[code] = table[rank-1].Team
			} else {
				res[code] = nil
			}
		}
	}
	for code, team := range thirds {
		res[code] = team
	}

	for _, m := range snap.KnockoutMatches() {
		team1, err := resolveSlot(m, m.Slot1, res, snap)
		if err != nil {
			return nil, err
		}
		team2, err := resolveSlot(m, m.Slot2, res, snap)
		if err != nil {
			return nil, err
		}

		winner, loser := decideMatch(m, team1, team2, src)

		wKey := fmt.Sprintf("W%d", m.MatchNumber)
		lKey := fmt.Sprintf("L%d", m.MatchNumber)
		if _, exists := res[wKey]; exists {
			return nil, &ResolutionError{Kind: ErrKindDuplicateEntry, Code: wKey, MatchNumber: m.MatchNumber}
		}
		res[wKey] = winner
		res[lKey] = loser
	}

	return res, nil
}

// resolveSlot resolves one side of a match: the concrete team if one is
// set, otherwise the resolution map's entry for its placeholder. The match
// itself is never written back to.
func resolveSlot(m *models.Match, slot models.TeamSlot, res Resolution, snap *Snapshot) (*models.Team, error) {
	if slot.IsConcrete() {
		return snap.Team(slot.TeamID), nil
	}
	if slot.IsUnset() {
		return nil, nil
	}

	code := ParseCode(slot.Code)
	switch code.Kind {
	case CodeMatchWinner, CodeMatchLoser:
		if snap.MatchByNumber(code.MatchNumber) == nil {
			return nil, &ResolutionError{Kind: ErrKindUnknownMatch, Code: slot.Code, MatchNumber: code.MatchNumber}
		}
		if code.MatchNumber >= m.MatchNumber {
			return nil, &ResolutionError{Kind: ErrKindForwardReference, Code: slot.Code, MatchNumber: m.MatchNumber}
		}
		return res[slot.Code], nil
	case CodeGroupRank, CodeBestThird:
		return res[slot.Code], nil
	default:
		// Free text stands for TBD.
		return nil, nil
	}
}

// decideMatch picks a match's winner and loser from its two resolved
// teams, in priority order: an explicit winner pick, then the scores,
// then a penalty-shootout winner on a drawn score. A draw with no penalty
// information is undetermined; neither side is guessed.
func decideMatch(m *models.Match, team1, team2 *models.Team, src ScoreSource) (winner, loser *models.Team) {
	if team1 == nil || team2 == nil {
		return nil, nil
	}

	if id, ok := src.ExplicitWinner(m); ok {
		switch id {
		case team1.ID:
			return team1, team2
		case team2.ID:
			return team2, team1
		}
	}

	s1, s2, ok := src.Score(m)
	if !ok {
		return nil, nil
	}
	switch {
	case s1 > s2:
		return team1, team2
	case s2 > s1:
		return team2, team1
	}

	if id, ok := src.PenaltyWinner(m); ok {
		switch id {
		case team1.ID:
			return team1, team2
		case team2.ID:
			return team2, team1
		}
	}

	return nil, nil
}

// ResolvedTeams looks both sides of a knockout match up against a
// completed resolution. Used by scoring to recover the matchup a user's
// bracket implies for a given fixture.
func ResolvedTeams(m *models.Match, res Resolution, snap *Snapshot) (*models.Team, *models.Team, error) {
	team1, err := resolveSlot(m, m.Slot1, res, snap)
	if err != nil {
		return nil, nil, err
	}
	team2, err := resolveSlot(m, m.Slot2, res, snap)
	if err != nil {
		return nil, nil, err
	}
	return team1, team2, nil
}
