package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bombers-fc/club-manager/live"
	"github.com/bombers-fc/club-manager/models"
	"github.com/bombers-fc/club-manager/repositories"
	"github.com/bombers-fc/club-manager/teams"
)

type CreateMatchInput struct {
	Date     string  `json:"date"`
	Time     string  `json:"time"`
	Price    float64 `json:"price"`
	Location string  `json:"location"`
	Pitch    string  `json:"pitch"`
}

type UpdateMatchInput struct {
	Date     *string  `json:"date"`
	Time     *string  `json:"time"`
	Price    *float64 `json:"price"`
	Location *string  `json:"location"`
	Pitch    *string  `json:"pitch"`
}

type AssignTeamsInput struct {
	TeamA []int `json:"teamA"`
	TeamB []int `json:"teamB"`
}

type RandomizeTeamsInput struct {
	Attendees []int `json:"attendees"`
	TeamA     []int `json:"teamA"`
	TeamB     []int `json:"teamB"`
}

type MatchService interface {
	ListMatches(ctx context.Context) ([]models.Match, error)
	GetMatchByID(ctx context.Context, id int) (*models.Match, error)
	CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error)
	UpdateMatch(ctx context.Context, id int, input UpdateMatchInput) (*models.Match, error)
	DeleteMatch(ctx context.Context, id int) error
	AssignTeams(ctx context.Context, matchID int, input AssignTeamsInput) (*models.Match, error)
	RandomizeTeams(ctx context.Context, matchID int, input RandomizeTeamsInput) (*models.Match, error)
	SetWinner(ctx context.Context, matchID int, winner models.Winner) (*models.Match, error)
}

type matchService struct {
	matchRepo   repositories.MatchRepository
	playerRepo  repositories.PlayerRepository
	paymentRepo repositories.PaymentRepository
	txManager   repositories.TxManager
	hub         *live.Hub
}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	playerRepo repositories.PlayerRepository,
	paymentRepo repositories.PaymentRepository,
	txManager repositories.TxManager,
	hub *live.Hub,
) MatchService {
	return &matchService{
		matchRepo:   matchRepo,
		playerRepo:  playerRepo,
		paymentRepo: paymentRepo,
		txManager:   txManager,
		hub:         hub,
	}
}

func (s *matchService) ListMatches(ctx context.Context) ([]models.Match, error) {
	matches, err := s.matchRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}

func (s *matchService) GetMatchByID(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %d: %w", id, err)
	}
	return match, nil
}

func (s *matchService) CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error) {
	if strings.TrimSpace(input.Date) == "" {
		return nil, ErrMatchDateRequired
	}
	if strings.TrimSpace(input.Time) == "" {
		return nil, ErrMatchTimeRequired
	}
	if input.Price < 0 {
		return nil, ErrMatchPriceNegative
	}

	match := &models.Match{
		Date:     input.Date,
		Time:     input.Time,
		Price:    input.Price,
		Location: input.Location,
		Pitch:    input.Pitch,
		TeamA:    []int{},
		TeamB:    []int{},
		Winner:   models.WinnerNotPlayed,
	}
	if err := s.matchRepo.Create(ctx, nil, match); err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	s.notifyMatchUpdated(match.ID)
	return match, nil
}

func (s *matchService) UpdateMatch(ctx context.Context, id int, input UpdateMatchInput) (*models.Match, error) {
	if input.Price != nil && *input.Price < 0 {
		return nil, ErrMatchPriceNegative
	}

	var updated *models.Match
	err := s.txManager.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		match, err := s.matchRepo.GetByID(ctx, exec, id)
		if err != nil {
			if errors.Is(err, repositories.ErrMatchNotFound) {
				return ErrMatchNotFound
			}
			return err
		}

		priceChanged := input.Price != nil && *input.Price != match.Price
		if input.Date != nil {
			match.Date = *input.Date
		}
		if input.Time != nil {
			match.Time = *input.Time
		}
		if input.Price != nil {
			match.Price = *input.Price
		}
		if input.Location != nil {
			match.Location = *input.Location
		}
		if input.Pitch != nil {
			match.Pitch = *input.Pitch
		}

		if err := s.matchRepo.Update(ctx, exec, match); err != nil {
			return err
		}

		// A new price changes everyone's share, so the billing is rebuilt.
		if priceChanged && match.Winner != models.WinnerNotPlayed {
			if err := recalculateMatchPayments(ctx, exec, s.paymentRepo, match); err != nil {
				return err
			}
			if err := recalculatePlayerTotals(ctx, exec, s.playerRepo, s.paymentRepo, match.Attendees()); err != nil {
				return err
			}
		}

		updated = match
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyMatchUpdated(id)
	return updated, nil
}

// DeleteMatch reverses the match's points effect under its current outcome,
// drops its payments and the match itself, then recomputes all derived
// totals. One transaction.
func (s *matchService) DeleteMatch(ctx context.Context, id int) error {
	err := s.txManager.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		match, err := s.matchRepo.GetByID(ctx, exec, id)
		if err != nil {
			if errors.Is(err, repositories.ErrMatchNotFound) {
				return ErrMatchNotFound
			}
			return err
		}

		if err := reverseOutcomePoints(ctx, exec, s.playerRepo, match.TeamA, match.TeamB, match.Winner); err != nil {
			return err
		}
		if err := s.paymentRepo.DeleteByMatch(ctx, exec, match.ID); err != nil {
			return err
		}
		if err := s.matchRepo.Delete(ctx, exec, match.ID); err != nil {
			return err
		}

		return recalculateAllPlayerTotals(ctx, exec, s.playerRepo, s.paymentRepo)
	})
	if err != nil {
		return err
	}

	s.notifyMatchUpdated(id)
	return nil
}

// AssignTeams replaces both rosters. If the match already has a decided
// outcome the old rosters' points are reversed and the new rosters earn
// points under the same, unchanged outcome, and payments are rebuilt.
func (s *matchService) AssignTeams(ctx context.Context, matchID int, input AssignTeamsInput) (*models.Match, error) {
	if overlap(input.TeamA, input.TeamB) || hasDuplicates(input.TeamA) || hasDuplicates(input.TeamB) {
		return nil, ErrTeamOverlap
	}

	var updated *models.Match
	err := s.txManager.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		match, err := s.matchRepo.GetByID(ctx, exec, matchID)
		if err != nil {
			if errors.Is(err, repositories.ErrMatchNotFound) {
				return ErrMatchNotFound
			}
			return err
		}

		roster := append(append([]int{}, input.TeamA...), input.TeamB...)
		if err := s.verifyPlayersExist(ctx, exec, roster); err != nil {
			return err
		}

		if match.Winner != models.WinnerNotPlayed {
			if err := reverseOutcomePoints(ctx, exec, s.playerRepo, match.TeamA, match.TeamB, match.Winner); err != nil {
				return err
			}
			if err := applyOutcomePoints(ctx, exec, s.playerRepo, input.TeamA, input.TeamB, match.Winner); err != nil {
				return err
			}
		}

		if err := s.matchRepo.UpdateTeams(ctx, exec, match.ID, input.TeamA, input.TeamB); err != nil {
			return err
		}
		match.TeamA = input.TeamA
		match.TeamB = input.TeamB

		if match.Winner != models.WinnerNotPlayed {
			if err := recalculateMatchPayments(ctx, exec, s.paymentRepo, match); err != nil {
				return err
			}
			if err := recalculateAllPlayerTotals(ctx, exec, s.playerRepo, s.paymentRepo); err != nil {
				return err
			}
		}

		updated = match
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyMatchUpdated(matchID)
	return updated, nil
}

// RandomizeTeams splits the attendee list into two balanced sides (locked
// players keep theirs) and persists the result through AssignTeams.
func (s *matchService) RandomizeTeams(ctx context.Context, matchID int, input RandomizeTeamsInput) (*models.Match, error) {
	if len(input.Attendees) < 2 {
		return nil, ErrNotEnoughAttendees
	}
	if overlap(input.TeamA, input.TeamB) {
		return nil, ErrTeamOverlap
	}
	if _, err := s.GetMatchByID(ctx, matchID); err != nil {
		return nil, err
	}

	players, err := s.playerRepo.ListByIDs(ctx, nil, input.Attendees)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendees: %w", err)
	}
	if len(players) != len(input.Attendees) {
		return nil, ErrRosterPlayerInvalid
	}

	result := teams.Randomize(teams.RandomizeParams{
		Attendees:   players,
		LockedTeamA: input.TeamA,
		LockedTeamB: input.TeamB,
	}, nil)

	return s.AssignTeams(ctx, matchID, AssignTeamsInput{TeamA: result.TeamA, TeamB: result.TeamB})
}

// SetWinner moves the match to any of the four outcomes. The previous
// outcome's points are always reversed before the new outcome's points are
// applied; billing follows the new outcome.
func (s *matchService) SetWinner(ctx context.Context, matchID int, winner models.Winner) (*models.Match, error) {
	if !winner.Valid() {
		return nil, ErrInvalidWinner
	}

	var updated *models.Match
	err := s.txManager.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		match, err := s.matchRepo.GetByID(ctx, exec, matchID)
		if err != nil {
			if errors.Is(err, repositories.ErrMatchNotFound) {
				return ErrMatchNotFound
			}
			return err
		}

		if winner != models.WinnerNotPlayed && len(match.TeamA) == 0 && len(match.TeamB) == 0 {
			return ErrWinnerRequiresTeams
		}

		if err := reverseOutcomePoints(ctx, exec, s.playerRepo, match.TeamA, match.TeamB, match.Winner); err != nil {
			return err
		}
		if err := applyOutcomePoints(ctx, exec, s.playerRepo, match.TeamA, match.TeamB, winner); err != nil {
			return err
		}

		if err := s.matchRepo.UpdateWinner(ctx, exec, match.ID, winner); err != nil {
			return err
		}
		match.Winner = winner

		if winner == models.WinnerNotPlayed {
			if err := s.paymentRepo.DeleteByMatch(ctx, exec, match.ID); err != nil {
				return err
			}
		} else {
			if err := recalculateMatchPayments(ctx, exec, s.paymentRepo, match); err != nil {
				return err
			}
		}

		if err := recalculateAllPlayerTotals(ctx, exec, s.playerRepo, s.paymentRepo); err != nil {
			return err
		}

		updated = match
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyMatchUpdated(matchID)
	return updated, nil
}

func (s *matchService) verifyPlayersExist(ctx context.Context, exec repositories.SQLExecutor, ids []int) error {
	if len(ids) == 0 {
		return nil
	}
	players, err := s.playerRepo.ListByIDs(ctx, exec, ids)
	if err != nil {
		return err
	}
	if len(players) != len(ids) {
		return ErrRosterPlayerInvalid
	}
	return nil
}

func (s *matchService) notifyMatchUpdated(matchID int) {
	if s.hub != nil {
		s.hub.Notify(live.EventMatchUpdated, map[string]int{"matchId": matchID})
	}
}
