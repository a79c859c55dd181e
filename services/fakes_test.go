package services

import (
	"context"
	"sort"

	"github.com/bombers-fc/club-manager/models"
	"github.com/bombers-fc/club-manager/repositories"
)

// In-memory repository fakes. They mirror the Postgres behavior the services
// rely on: sort orders, zero-clamped points, unique constraints, not-found
// sentinels.

type fakeTxManager struct{}

func (m *fakeTxManager) WithinTx(_ context.Context, fn func(exec repositories.SQLExecutor) error) error {
	return fn(nil)
}

type fakePlayerRepo struct {
	players map[int]*models.Player
	nextID  int
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{players: make(map[int]*models.Player), nextID: 1}
}

func (r *fakePlayerRepo) Create(_ context.Context, _ repositories.SQLExecutor, player *models.Player) error {
	for _, existing := range r.players {
		if existing.Name == player.Name {
			return repositories.ErrPlayerNameConflict
		}
	}
	player.ID = r.nextID
	r.nextID++
	copied := *player
	r.players[player.ID] = &copied
	return nil
}

func (r *fakePlayerRepo) GetByID(_ context.Context, _ repositories.SQLExecutor, id int) (*models.Player, error) {
	player, ok := r.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	copied := *player
	return &copied, nil
}

func (r *fakePlayerRepo) List(_ context.Context, _ repositories.SQLExecutor) ([]models.Player, error) {
	out := make([]models.Player, 0, len(r.players))
	for _, player := range r.players {
		out = append(out, *player)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakePlayerRepo) ListByIDs(_ context.Context, _ repositories.SQLExecutor, ids []int) ([]models.Player, error) {
	out := make([]models.Player, 0, len(ids))
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if player, ok := r.players[id]; ok {
			out = append(out, *player)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakePlayerRepo) Update(_ context.Context, _ repositories.SQLExecutor, player *models.Player) error {
	existing, ok := r.players[player.ID]
	if !ok {
		return repositories.ErrPlayerNotFound
	}
	for id, other := range r.players {
		if id != player.ID && other.Name == player.Name {
			return repositories.ErrPlayerNameConflict
		}
	}
	existing.Name = player.Name
	existing.Position = player.Position
	existing.PhotoKey = player.PhotoKey
	return nil
}

func (r *fakePlayerRepo) AdjustPoints(_ context.Context, _ repositories.SQLExecutor, playerIDs []int, delta int) error {
	for _, id := range playerIDs {
		player, ok := r.players[id]
		if !ok {
			continue
		}
		player.Points += delta
		if player.Points < 0 {
			player.Points = 0
		}
	}
	return nil
}

func (r *fakePlayerRepo) UpdateDerivedTotals(_ context.Context, _ repositories.SQLExecutor, id int, totalOwed float64, paid bool) error {
	player, ok := r.players[id]
	if !ok {
		return repositories.ErrPlayerNotFound
	}
	player.TotalOwed = totalOwed
	player.Paid = paid
	return nil
}

func (r *fakePlayerRepo) Delete(_ context.Context, _ repositories.SQLExecutor, id int) error {
	if _, ok := r.players[id]; !ok {
		return repositories.ErrPlayerNotFound
	}
	delete(r.players, id)
	return nil
}

func (r *fakePlayerRepo) mustGet(id int) *models.Player {
	return r.players[id]
}

type fakeMatchRepo struct {
	matches map[int]*models.Match
	nextID  int
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{matches: make(map[int]*models.Match), nextID: 1}
}

func copyMatch(match *models.Match) *models.Match {
	copied := *match
	copied.TeamA = append([]int{}, match.TeamA...)
	copied.TeamB = append([]int{}, match.TeamB...)
	return &copied
}

func (r *fakeMatchRepo) Create(_ context.Context, _ repositories.SQLExecutor, match *models.Match) error {
	match.ID = r.nextID
	r.nextID++
	r.matches[match.ID] = copyMatch(match)
	return nil
}

func (r *fakeMatchRepo) GetByID(_ context.Context, _ repositories.SQLExecutor, id int) (*models.Match, error) {
	match, ok := r.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	return copyMatch(match), nil
}

func (r *fakeMatchRepo) List(_ context.Context, _ repositories.SQLExecutor) ([]models.Match, error) {
	out := make([]models.Match, 0, len(r.matches))
	for _, match := range r.matches {
		out = append(out, *copyMatch(match))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *fakeMatchRepo) Update(_ context.Context, _ repositories.SQLExecutor, match *models.Match) error {
	existing, ok := r.matches[match.ID]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	existing.Date = match.Date
	existing.Time = match.Time
	existing.Price = match.Price
	existing.Location = match.Location
	existing.Pitch = match.Pitch
	return nil
}

func (r *fakeMatchRepo) UpdateTeams(_ context.Context, _ repositories.SQLExecutor, id int, teamA, teamB []int) error {
	match, ok := r.matches[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	match.TeamA = append([]int{}, teamA...)
	match.TeamB = append([]int{}, teamB...)
	return nil
}

func (r *fakeMatchRepo) UpdateWinner(_ context.Context, _ repositories.SQLExecutor, id int, winner models.Winner) error {
	match, ok := r.matches[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	match.Winner = winner
	return nil
}

func (r *fakeMatchRepo) Delete(_ context.Context, _ repositories.SQLExecutor, id int) error {
	if _, ok := r.matches[id]; !ok {
		return repositories.ErrMatchNotFound
	}
	delete(r.matches, id)
	return nil
}

func (r *fakeMatchRepo) mustGet(id int) *models.Match {
	return r.matches[id]
}

type fakePaymentRepo struct {
	payments map[int]*models.Payment
	nextID   int
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[int]*models.Payment), nextID: 1}
}

func (r *fakePaymentRepo) Create(_ context.Context, _ repositories.SQLExecutor, payment *models.Payment) error {
	for _, existing := range r.payments {
		if existing.PlayerID == payment.PlayerID && existing.MatchID == payment.MatchID {
			return repositories.ErrPaymentConflict
		}
	}
	payment.ID = r.nextID
	r.nextID++
	copied := *payment
	r.payments[payment.ID] = &copied
	return nil
}

func (r *fakePaymentRepo) GetByPlayerAndMatch(_ context.Context, _ repositories.SQLExecutor, playerID, matchID int) (*models.Payment, error) {
	for _, payment := range r.payments {
		if payment.PlayerID == playerID && payment.MatchID == matchID {
			copied := *payment
			return &copied, nil
		}
	}
	return nil, repositories.ErrPaymentNotFound
}

func (r *fakePaymentRepo) List(_ context.Context, _ repositories.SQLExecutor) ([]models.Payment, error) {
	out := make([]models.Payment, 0, len(r.payments))
	for _, payment := range r.payments {
		out = append(out, *payment)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MatchID != out[j].MatchID {
			return out[i].MatchID < out[j].MatchID
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out, nil
}

func (r *fakePaymentRepo) ListByPlayer(_ context.Context, _ repositories.SQLExecutor, playerID int) ([]models.Payment, error) {
	out := make([]models.Payment, 0)
	for _, payment := range r.payments {
		if payment.PlayerID == playerID {
			out = append(out, *payment)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MatchID < out[j].MatchID })
	return out, nil
}

func (r *fakePaymentRepo) ListByMatch(_ context.Context, _ repositories.SQLExecutor, matchID int) ([]models.Payment, error) {
	out := make([]models.Payment, 0)
	for _, payment := range r.payments {
		if payment.MatchID == matchID {
			out = append(out, *payment)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out, nil
}

func (r *fakePaymentRepo) SetPaid(_ context.Context, _ repositories.SQLExecutor, playerID, matchID int, paid bool) error {
	for _, payment := range r.payments {
		if payment.PlayerID == playerID && payment.MatchID == matchID {
			payment.Paid = paid
			return nil
		}
	}
	return repositories.ErrPaymentNotFound
}

func (r *fakePaymentRepo) MarkAllPaidForPlayer(_ context.Context, _ repositories.SQLExecutor, playerID int) error {
	for _, payment := range r.payments {
		if payment.PlayerID == playerID {
			payment.Paid = true
		}
	}
	return nil
}

func (r *fakePaymentRepo) DeleteByMatch(_ context.Context, _ repositories.SQLExecutor, matchID int) error {
	for id, payment := range r.payments {
		if payment.MatchID == matchID {
			delete(r.payments, id)
		}
	}
	return nil
}

func (r *fakePaymentRepo) DeleteByPlayer(_ context.Context, _ repositories.SQLExecutor, playerID int) error {
	for id, payment := range r.payments {
		if payment.PlayerID == playerID {
			delete(r.payments, id)
		}
	}
	return nil
}

// testEnv bundles the fakes with fully wired services for the scenario tests.
type testEnv struct {
	playerRepo  *fakePlayerRepo
	matchRepo   *fakeMatchRepo
	paymentRepo *fakePaymentRepo

	players     PlayerService
	matches     MatchService
	payments    PaymentService
	leaderboard LeaderboardService
}

func newTestEnv() *testEnv {
	playerRepo := newFakePlayerRepo()
	matchRepo := newFakeMatchRepo()
	paymentRepo := newFakePaymentRepo()
	tx := &fakeTxManager{}

	return &testEnv{
		playerRepo:  playerRepo,
		matchRepo:   matchRepo,
		paymentRepo: paymentRepo,
		players:     NewPlayerService(playerRepo, matchRepo, paymentRepo, tx, nil, nil),
		matches:     NewMatchService(matchRepo, playerRepo, paymentRepo, tx, nil),
		payments:    NewPaymentService(paymentRepo, playerRepo, matchRepo, tx, nil),
		leaderboard: NewLeaderboardService(playerRepo, matchRepo),
	}
}

func (e *testEnv) addPlayer(id int, name string, position models.Position, points int) {
	e.playerRepo.players[id] = &models.Player{
		ID:       id,
		Name:     name,
		Position: position,
		Points:   points,
		Paid:     true,
	}
	if id >= e.playerRepo.nextID {
		e.playerRepo.nextID = id + 1
	}
}

func (e *testEnv) addMatch(id int, date string, price float64, teamA, teamB []int, winner models.Winner) {
	e.matchRepo.matches[id] = &models.Match{
		ID:     id,
		Date:   date,
		Time:   "19:00",
		Price:  price,
		TeamA:  append([]int{}, teamA...),
		TeamB:  append([]int{}, teamB...),
		Winner: winner,
	}
	if id >= e.matchRepo.nextID {
		e.matchRepo.nextID = id + 1
	}
}
