package services

import (
	"io"
	"log/slog"
	"time"

	"github.com/germarr/fifaworldcup2026/brackets"
	"github.com/germarr/fifaworldcup2026/models"
)

func intp(v int) *int { return &v }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testFormat is a miniature tournament: two groups of two, winners meet
// in the final, no third-place qualifiers.
func testFormat() *brackets.Format {
	return &brackets.Format{
		Groups:          []string{"A", "B"},
		TeamsPerGroup:   2,
		GroupMatchCount: 2,
		OpeningPairings: []brackets.SlotPair{{Slot1: "1A", Slot2: "1B"}},
	}
}

// testWorld is the miniature tournament mid-flight: both group matches
// played (A1 2-0 A2, B1 1-0 B2), the final still placeholder-coded and
// unplayed. Predictions: alice picked both group results exactly and a
// 1-0 final; bob got one outcome right; carol got everything wrong; dave
// never picked.
type testWorld struct {
	teamRepo       *fakeTeamRepo
	matchRepo      *fakeMatchRepo
	predictionRepo *fakePredictionRepo
	userRepo       *fakeUserRepo
	standingRepo   *fakeStandingRepo
	tiebreakRepo   *fakeTiebreakRepo

	bracketSvc BracketService
}

func newTestWorld() *testWorld {
	kickoff := time.Date(2026, time.June, 11, 18, 0, 0, 0, time.UTC)

	w := &testWorld{
		teamRepo: newFakeTeamRepo(
			&models.Team{ID: 1, Name: "Mexico", Code: "MEX", Group: "A"},
			&models.Team{ID: 2, Name: "Canada", Code: "CAN", Group: "A"},
			&models.Team{ID: 3, Name: "Brazil", Code: "BRA", Group: "B"},
			&models.Team{ID: 4, Name: "Japan", Code: "JPN", Group: "B"},
		),
		matchRepo: newFakeMatchRepo(
			&models.Match{
				ID: 1, Round: models.RoundGroupStage, MatchNumber: 1, GroupLetter: "A",
				Slot1: models.ConcreteSlot(1), Slot2: models.ConcreteSlot(2),
				KickoffAt: kickoff,
				Score1:    intp(2), Score2: intp(0), Finished: true,
			},
			&models.Match{
				ID: 2, Round: models.RoundGroupStage, MatchNumber: 2, GroupLetter: "B",
				Slot1: models.ConcreteSlot(3), Slot2: models.ConcreteSlot(4),
				KickoffAt: kickoff.Add(3 * time.Hour),
				Score1:    intp(1), Score2: intp(0), Finished: true,
			},
			&models.Match{
				ID: 3, Round: models.RoundFinal, MatchNumber: 3,
				Slot1: models.PlaceholderSlot("1A"), Slot2: models.PlaceholderSlot("1B"),
				KickoffAt: kickoff.Add(30 * 24 * time.Hour),
			},
		),
		predictionRepo: newFakePredictionRepo(
			&models.Prediction{UserID: 7, MatchID: 1, Score1: 2, Score2: 0},
			&models.Prediction{UserID: 7, MatchID: 2, Score1: 1, Score2: 0},
			&models.Prediction{UserID: 7, MatchID: 3, Score1: 1, Score2: 0},
			&models.Prediction{UserID: 8, MatchID: 1, Score1: 2, Score2: 1},
			&models.Prediction{UserID: 8, MatchID: 2, Score1: 0, Score2: 1},
			&models.Prediction{UserID: 9, MatchID: 1, Score1: 0, Score2: 2},
		),
		userRepo: newFakeUserRepo(
			&models.User{ID: 7, Username: "alice"},
			&models.User{ID: 8, Username: "bob"},
			&models.User{ID: 9, Username: "carol"},
			&models.User{ID: 10, Username: "dave"},
		),
		standingRepo: &fakeStandingRepo{},
		tiebreakRepo: &fakeTiebreakRepo{},
	}

	w.bracketSvc = NewBracketService(testFormat(), w.teamRepo, w.matchRepo, w.predictionRepo, w.tiebreakRepo)
	return w
}
