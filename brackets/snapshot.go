package brackets

import (
	"sort"

	"github.com/germarr/fifaworldcup2026/models"
)

// Snapshot is an immutable, pre-fetched view of one tournament: every
// team, match and prediction the engine may touch, indexed for O(1)
// lookup. Callers build it once per computation; nothing in this package
// mutates it or reaches past it for data.
type Snapshot struct {
	format *Format

	teams           map[int]*models.Team
	teamList        []*models.Team
	matchesByID     map[int]*models.Match
	matchesByNumber map[int]*models.Match
	groupMatches    []*models.Match
	knockoutMatches []*models.Match
	predictions     map[int]map[int]*models.Prediction
	overrides       []models.TiebreakOverride
}

// NewSnapshot indexes the supplied entities. Matches are kept in ascending
// match-number order; predictions are indexed by user then match.
func NewSnapshot(
	format *Format,
	teams []*models.Team,
	matches []*models.Match,
	predictions []*models.Prediction,
	overrides []models.TiebreakOverride,
) *Snapshot {
	s := &Snapshot{
		format:          format,
		teams:           make(map[int]*models.Team, len(teams)),
		teamList:        make([]*models.Team, 0, len(teams)),
		matchesByID:     make(map[int]*models.Match, len(matches)),
		matchesByNumber: make(map[int]*models.Match, len(matches)),
		predictions:     make(map[int]map[int]*models.Prediction),
		overrides:       overrides,
	}

	for _, t := range teams {
		s.teams[t.ID] = t
		s.teamList = append(s.teamList, t)
	}

	sorted := make([]*models.Match, len(matches))
	copy(sorted, matches)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].MatchNumber < sorted[j].MatchNumber
	})
	for _, m := range sorted {
		s.matchesByID[m.ID] = m
		s.matchesByNumber[m.MatchNumber] = m
		if m.Round.IsKnockout() {
			s.knockoutMatches = append(s.knockoutMatches, m)
		} else {
			s.groupMatches = append(s.groupMatches, m)
		}
	}

	for _, p := range predictions {
		byMatch, ok := s.predictions[p.UserID]
		if !ok {
			byMatch = make(map[int]*models.Prediction)
			s.predictions[p.UserID] = byMatch
		}
		byMatch[p.MatchID] = p
	}

	return s
}

func (s *Snapshot) Format() *Format { return s.format }

func (s *Snapshot) Team(id int) *models.Team { return s.teams[id] }

// Teams returns every team in the snapshot, in input order.
func (s *Snapshot) Teams() []*models.Team { return s.teamList }

func (s *Snapshot) Match(id int) *models.Match { return s.matchesByID[id] }

func (s *Snapshot) MatchByNumber(n int) *models.Match { return s.matchesByNumber[n] }

// GroupMatches returns the group-stage matches in match-number order.
func (s *Snapshot) GroupMatches() []*models.Match { return s.groupMatches }

// KnockoutMatches returns the knockout matches in match-number order. The
// ordering is load-bearing: W/L codes may only look backwards.
func (s *Snapshot) KnockoutMatches() []*models.Match { return s.knockoutMatches }

// Prediction returns one user's pick for a match, or nil.
func (s *Snapshot) Prediction(userID, matchID int) *models.Prediction {
	return s.predictions[userID][matchID]
}

func (s *Snapshot) Overrides() []models.TiebreakOverride { return s.overrides }

// ScoreSource abstracts where a match's score comes from: the officially
// recorded result or one user's prediction. A false ok means the match
// contributes nothing anywhere; it is never treated as 0-0.
type ScoreSource interface {
	Score(m *models.Match) (score1, score2 int, ok bool)
	// PenaltyWinner is the shootout winner used to break a drawn score,
	// when one is recorded.
	PenaltyWinner(m *models.Match) (teamID int, ok bool)
	// ExplicitWinner is an explicitly picked winner, used to disambiguate
	// predictions whose placeholders resolved to swapped sides. Actual
	// results never carry one.
	ExplicitWinner(m *models.Match) (teamID int, ok bool)
}

// ActualScores reads officially recorded results.
type ActualScores struct{}

func (ActualScores) Score(m *models.Match) (int, int, bool) {
	if !m.HasResult() {
		return 0, 0, false
	}
	return *m.Score1, *m.Score2, true
}

func (ActualScores) PenaltyWinner(m *models.Match) (int, bool) {
	if m.PenaltyWinnerID == nil {
		return 0, false
	}
	return *m.PenaltyWinnerID, true
}

func (ActualScores) ExplicitWinner(*models.Match) (int, bool) {
	return 0, false
}

// PredictedScores reads one user's predictions out of a snapshot.
type PredictedScores struct {
	snap   *Snapshot
	userID int
}

func NewPredictedScores(snap *Snapshot, userID int) PredictedScores {
	return PredictedScores{snap: snap, userID: userID}
}

func (p PredictedScores) Score(m *models.Match) (int, int, bool) {
	pred := p.snap.Prediction(p.userID, m.ID)
	if pred == nil {
		return 0, 0, false
	}
	return pred.Score1, pred.Score2, true
}

func (p PredictedScores) PenaltyWinner(m *models.Match) (int, bool) {
	pred := p.snap.Prediction(p.userID, m.ID)
	if pred == nil || pred.PenaltyWinnerID == nil {
		return 0, false
	}
	return *pred.PenaltyWinnerID, true
}

func (p PredictedScores) ExplicitWinner(m *models.Match) (int, bool) {
	pred := p.snap.Prediction(p.userID, m.ID)
	if pred == nil || pred.WinnerID == nil {
		return 0, false
	}
	return *pred.WinnerID, true
}
