package brackets

import (
	"github.com/germarr/fifaworldcup2026/models"
)

// ScoreStatus reports whether a prediction could be scored at all.
// Pending means required data (a recorded result, a resolved matchup) is
// still missing; it is not an error.
type ScoreStatus string

const (
	ScoreStatusPending  ScoreStatus = "pending"
	ScoreStatusComplete ScoreStatus = "complete"
)

// KnockoutCreditPolicy selects how a knockout prediction whose matchup
// does not equal the actual fixture is treated. Both variants shipped at
// different points of this game's history, so the choice is explicit
// per deployment rather than baked in.
type KnockoutCreditPolicy int

const (
	// PartialCredit awards the doubled outcome point when the actual
	// winner was one of the predicted teams and the user predicted it to
	// win, even though the predicted matchup itself was wrong. Exact-score
	// credit is never available on a mismatch.
	PartialCredit KnockoutCreditPolicy = iota
	// StrictMatchup awards nothing unless the predicted matchup equals
	// the actual fixture.
	StrictMatchup
)

// MatchScore is the outcome of scoring one prediction against one match.
type MatchScore struct {
	Points         int
	Status         ScoreStatus
	OutcomeCorrect bool
	ScoreCorrect   bool
	Breakdown      []string
}

func pendingScore() MatchScore {
	return MatchScore{Status: ScoreStatusPending}
}

// ScoreGroupMatch scores a group-stage prediction: one point for the
// correct outcome, two more for the exact score. The bonuses are
// independent and additive, so an exact correct score is worth three.
// Outcomes are derived from the scores, with a recorded penalty-shootout
// winner breaking a tie on either side; group-stage draws simply leave
// both sides without one.
func ScoreGroupMatch(p *models.Prediction, m *models.Match) MatchScore {
	if p == nil || !m.HasResult() {
		return pendingScore()
	}

	team1, team2 := m.SideTeamIDs()
	actualWinner := outcomeWinner(*m.Score1, *m.Score2, team1, team2, m.PenaltyWinnerID)
	predictedWinner := outcomeWinner(p.Score1, p.Score2, team1, team2, p.PenaltyWinnerID)

	score := MatchScore{Status: ScoreStatusComplete}
	if actualWinner == predictedWinner {
		score.OutcomeCorrect = true
		score.Points++
		score.Breakdown = append(score.Breakdown, "Correct Outcome (+1)")
	}
	if p.Score1 == *m.Score1 && p.Score2 == *m.Score2 {
		score.ScoreCorrect = true
		score.Points += 2
		score.Breakdown = append(score.Breakdown, "Exact Score (+2)")
	}
	return score
}

// outcomeWinner derives a winning team id from a scoreline; 0 means a
// draw. A penalty winner only counts when it belongs to the match and the
// score is level.
func outcomeWinner(s1, s2, team1ID, team2ID int, penaltyWinnerID *int) int {
	switch {
	case s1 > s2:
		return team1ID
	case s2 > s1:
		return team2ID
	}
	if penaltyWinnerID != nil && (*penaltyWinnerID == team1ID || *penaltyWinnerID == team2ID) {
		return *penaltyWinnerID
	}
	return 0
}

// ScoreKnockoutMatch scores a knockout prediction. predTeam1 and predTeam2
// are the teams the user's own bracket put in this fixture, recovered via
// ResolveBracket over their prediction chain; either being zero means the
// path is unresolved and the prediction stays pending.
//
// When the predicted pair equals the actual pair, order ignored, group
// rules apply with the knockout doubling, comparing scores by team rather
// than by side so a swapped fixture still counts. Otherwise the credit
// policy decides between partial outcome credit and nothing.
func ScoreKnockoutMatch(
	p *models.Prediction,
	m *models.Match,
	predTeam1, predTeam2 int,
	policy KnockoutCreditPolicy,
) MatchScore {
	if p == nil || !m.HasResult() {
		return pendingScore()
	}
	if predTeam1 == 0 || predTeam2 == 0 {
		return pendingScore()
	}
	actual1, actual2 := m.SideTeamIDs()
	if actual1 == 0 || actual2 == 0 {
		return pendingScore()
	}

	actualWinner := outcomeWinner(*m.Score1, *m.Score2, actual1, actual2, m.PenaltyWinnerID)
	predictedWinner := outcomeWinner(p.Score1, p.Score2, predTeam1, predTeam2, p.PenaltyWinnerID)

	sameMatchup := (predTeam1 == actual1 && predTeam2 == actual2) ||
		(predTeam1 == actual2 && predTeam2 == actual1)

	if sameMatchup {
		// Align the predicted scores to the actual fixture's sides before
		// comparing exact scores.
		ps1, ps2 := p.Score1, p.Score2
		if predTeam1 == actual2 {
			ps1, ps2 = ps2, ps1
		}

		score := MatchScore{Status: ScoreStatusComplete}
		if predictedWinner == actualWinner {
			score.OutcomeCorrect = true
			score.Points++
			score.Breakdown = append(score.Breakdown, "Correct Outcome (+1) x2")
		}
		if ps1 == *m.Score1 && ps2 == *m.Score2 {
			score.ScoreCorrect = true
			score.Points += 2
			score.Breakdown = append(score.Breakdown, "Exact Score (+2) x2")
		}
		score.Points *= 2
		return score
	}

	if policy == PartialCredit && actualWinner != 0 &&
		(actualWinner == predTeam1 || actualWinner == predTeam2) &&
		predictedWinner == actualWinner {
		return MatchScore{
			Points:         2,
			Status:         ScoreStatusComplete,
			OutcomeCorrect: true,
			Breakdown:      []string{"Correct Outcome (+1) x2"},
		}
	}

	return MatchScore{Status: ScoreStatusComplete}
}

// TotalUserScore sums a user's group-stage and knockout scores across the
// whole tournament. Knockout matchups are re-derived from the user's own
// prediction chain, so points reflect the bracket the user actually
// built.
func TotalUserScore(snap *Snapshot, userID int, policy KnockoutCreditPolicy) (int, error) {
	total := 0
	for _, m := range snap.GroupMatches() {
		if p := snap.Prediction(userID, m.ID); p != nil {
			total += ScoreGroupMatch(p, m).Points
		}
	}

	res, err := ResolveUserBracket(snap, userID)
	if err != nil {
		return 0, err
	}
	for _, m := range snap.KnockoutMatches() {
		p := snap.Prediction(userID, m.ID)
		if p == nil {
			continue
		}
		team1, team2, err := ResolvedTeams(m, res, snap)
		if err != nil {
			return 0, err
		}
		id1, id2 := 0, 0
		if team1 != nil {
			id1 = team1.ID
		}
		if team2 != nil {
			id2 = team2.ID
		}
		total += ScoreKnockoutMatch(p, m, id1, id2, policy).Points
	}
	return total, nil
}

// ResolveUserBracket runs the full resolution pipeline over one user's
// prediction chain: predicted standings, third-place assignment, then the
// bracket walk. The user's picks drive every step even where actual
// results have diverged.
func ResolveUserBracket(snap *Snapshot, userID int) (Resolution, error) {
	src := NewPredictedScores(snap, userID)
	standings := ComputeStandings(snap.Teams(), snap.GroupMatches(), src, nil)
	thirds := solveFormatThirds(snap, standings)
	return ResolveBracket(snap, standings, thirds, src)
}

// ResolveOfficialBracket resolves the ground-truth view: recorded results
// only, manual tiebreak overrides applied.
func ResolveOfficialBracket(snap *Snapshot) (Resolution, error) {
	src := ActualScores{}
	standings := ComputeStandings(snap.Teams(), snap.GroupMatches(), src, snap.Overrides())
	thirds := solveFormatThirds(snap, standings)
	return ResolveBracket(snap, standings, thirds, src)
}

func solveFormatThirds(snap *Snapshot, standings map[string][]*TeamStanding) map[string]*models.Team {
	f := snap.Format()
	if f == nil || f.ThirdPlaceQualifiers == 0 {
		return nil
	}
	table := ThirdPlaceTable(standings, f.ThirdPlaceQualifiers)
	return SolveThirdPlace(f.ThirdPlaceSlots(), QualifyingThirds(table))
}

// Champion returns the tournament winner for a user's bracket view: the
// user's predicted final outcome when one exists, otherwise the actual
// final result once it is in. The second return reports whether the
// champion is the real one.
func Champion(snap *Snapshot, userID int) (*models.Team, bool, error) {
	var final *models.Match
	for _, m := range snap.KnockoutMatches() {
		if m.Round == models.RoundFinal {
			final = m
			break
		}
	}
	if final == nil {
		return nil, false, nil
	}

	if p := snap.Prediction(userID, final.ID); p != nil {
		res, err := ResolveUserBracket(snap, userID)
		if err != nil {
			return nil, false, err
		}
		team1, team2, err := ResolvedTeams(final, res, snap)
		if err != nil {
			return nil, false, err
		}
		winner, _ := decideMatch(final, team1, team2, NewPredictedScores(snap, userID))
		if winner != nil {
			return winner, false, nil
		}
	}

	if final.Finished {
		id1, id2 := final.SideTeamIDs()
		winner, _ := decideMatch(final, snap.Team(id1), snap.Team(id2), ActualScores{})
		if winner != nil {
			return winner, true, nil
		}
	}

	return nil, false, nil
}
