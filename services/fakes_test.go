package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/germarr/fifaworldcup2026/models"
	"github.com/germarr/fifaworldcup2026/repositories"
)

// In-memory repositories backing the service tests. They honor the same
// not-found sentinels as the Postgres implementations.

type fakeTeamRepo struct {
	teams map[int]*models.Team
}

func newFakeTeamRepo(teams ...*models.Team) *fakeTeamRepo {
	r := &fakeTeamRepo{teams: make(map[int]*models.Team)}
	for _, t := range teams {
		r.teams[t.ID] = t
	}
	return r
}

func (r *fakeTeamRepo) Create(_ context.Context, _ repositories.SQLExecutor, team *models.Team) error {
	team.ID = len(r.teams) + 1
	r.teams[team.ID] = team
	return nil
}

func (r *fakeTeamRepo) GetByID(_ context.Context, id int) (*models.Team, error) {
	t, ok := r.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	return t, nil
}

func (r *fakeTeamRepo) GetByCode(_ context.Context, code string) (*models.Team, error) {
	for _, t := range r.teams {
		if t.Code == code {
			return t, nil
		}
	}
	return nil, repositories.ErrTeamNotFound
}

func (r *fakeTeamRepo) List(_ context.Context) ([]*models.Team, error) {
	teams := make([]*models.Team, 0, len(r.teams))
	for _, t := range r.teams {
		teams = append(teams, t)
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].ID < teams[j].ID })
	return teams, nil
}

func (r *fakeTeamRepo) UpdateFlag(_ context.Context, id int, flagKey, flagURL string) error {
	t, ok := r.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	t.FlagKey = &flagKey
	t.FlagURL = &flagURL
	return nil
}

type fakeMatchRepo struct {
	matches map[int]*models.Match
}

func newFakeMatchRepo(matches ...*models.Match) *fakeMatchRepo {
	r := &fakeMatchRepo{matches: make(map[int]*models.Match)}
	for _, m := range matches {
		r.matches[m.ID] = m
	}
	return r
}

func (r *fakeMatchRepo) Create(_ context.Context, _ repositories.SQLExecutor, match *models.Match) error {
	match.ID = len(r.matches) + 1
	r.matches[match.ID] = match
	return nil
}

func (r *fakeMatchRepo) GetByID(_ context.Context, id int) (*models.Match, error) {
	m, ok := r.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	return m, nil
}

func (r *fakeMatchRepo) GetByNumber(_ context.Context, matchNumber int) (*models.Match, error) {
	for _, m := range r.matches {
		if m.MatchNumber == matchNumber {
			return m, nil
		}
	}
	return nil, repositories.ErrMatchNotFound
}

func (r *fakeMatchRepo) List(_ context.Context) ([]*models.Match, error) {
	matches := make([]*models.Match, 0, len(r.matches))
	for _, m := range r.matches {
		matches = append(matches, m)
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].MatchNumber < matches[j].MatchNumber })
	return matches, nil
}

func (r *fakeMatchRepo) UpdateResult(_ context.Context, _ repositories.SQLExecutor, id int, score1, score2 int, penaltyWinnerID *int) error {
	m, ok := r.matches[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	m.Score1, m.Score2 = &score1, &score2
	m.PenaltyWinnerID = penaltyWinnerID
	m.Finished = true
	return nil
}

func (r *fakeMatchRepo) PinTeams(_ context.Context, _ repositories.SQLExecutor, id int, team1ID, team2ID int) error {
	m, ok := r.matches[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	m.Team1ID, m.Team2ID = &team1ID, &team2ID
	return nil
}

type fakePredictionRepo struct {
	predictions map[string]*models.Prediction
}

func newFakePredictionRepo(predictions ...*models.Prediction) *fakePredictionRepo {
	r := &fakePredictionRepo{predictions: make(map[string]*models.Prediction)}
	for _, p := range predictions {
		r.predictions[predictionKey(p.UserID, p.MatchID)] = p
	}
	return r
}

func predictionKey(userID, matchID int) string {
	return fmt.Sprintf("%d/%d", userID, matchID)
}

func (r *fakePredictionRepo) Upsert(_ context.Context, _ repositories.SQLExecutor, p *models.Prediction) error {
	r.predictions[predictionKey(p.UserID, p.MatchID)] = p
	return nil
}

func (r *fakePredictionRepo) GetByUserAndMatch(_ context.Context, userID, matchID int) (*models.Prediction, error) {
	p, ok := r.predictions[predictionKey(userID, matchID)]
	if !ok {
		return nil, repositories.ErrPredictionNotFound
	}
	return p, nil
}

func (r *fakePredictionRepo) ListByUser(_ context.Context, userID int) ([]*models.Prediction, error) {
	var out []*models.Prediction
	for _, p := range r.predictions {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MatchID < out[j].MatchID })
	return out, nil
}

func (r *fakePredictionRepo) List(_ context.Context) ([]*models.Prediction, error) {
	var out []*models.Prediction
	for _, p := range r.predictions {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UserID != out[j].UserID {
			return out[i].UserID < out[j].UserID
		}
		return out[i].MatchID < out[j].MatchID
	})
	return out, nil
}

func (r *fakePredictionRepo) DeleteByUserAndMatch(_ context.Context, userID, matchID int) error {
	key := predictionKey(userID, matchID)
	if _, ok := r.predictions[key]; !ok {
		return repositories.ErrPredictionNotFound
	}
	delete(r.predictions, key)
	return nil
}

type fakeUserRepo struct {
	users map[int]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[int]*models.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, _ repositories.SQLExecutor, user *models.User) error {
	user.ID = len(r.users) + 1
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) List(_ context.Context) ([]*models.User, error) {
	users := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

type fakeStandingRepo struct {
	rows []*models.GroupStanding
}

func (r *fakeStandingRepo) ReplaceAll(_ context.Context, standings []*models.GroupStanding) error {
	r.rows = standings
	return nil
}

func (r *fakeStandingRepo) ListByGroup(_ context.Context, groupLetter string) ([]*models.GroupStanding, error) {
	var out []*models.GroupStanding
	for _, row := range r.rows {
		if row.GroupLetter == groupLetter {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *fakeStandingRepo) List(_ context.Context) ([]*models.GroupStanding, error) {
	return r.rows, nil
}

type fakeTiebreakRepo struct {
	overrides []models.TiebreakOverride
}

func (r *fakeTiebreakRepo) Upsert(_ context.Context, override *models.TiebreakOverride) error {
	r.overrides = append(r.overrides, *override)
	return nil
}

func (r *fakeTiebreakRepo) List(_ context.Context) ([]models.TiebreakOverride, error) {
	return r.overrides, nil
}

func (r *fakeTiebreakRepo) Delete(_ context.Context, id int) error {
	for i, ov := range r.overrides {
		if ov.ID == id {
			r.overrides = append(r.overrides[:i], r.overrides[i+1:]...)
			return nil
		}
	}
	return repositories.ErrTiebreakNotFound
}
