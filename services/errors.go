package services

import "errors"

// Shared error values, mapped to HTTP statuses by the handlers layer.
var (
	// Not found
	ErrPlayerNotFound  = errors.New("player not found")
	ErrMatchNotFound   = errors.New("match not found")
	ErrPaymentNotFound = errors.New("payment not found")

	// Validation and business rules
	ErrPlayerNameRequired  = errors.New("player name is required")
	ErrInvalidPosition     = errors.New("position must be Attack, Midfield, or Defense")
	ErrInvalidWinner       = errors.New("winner must be 'Team A', 'Team B', 'Draw', or 'Not Played'")
	ErrMatchDateRequired   = errors.New("match date is required")
	ErrMatchTimeRequired   = errors.New("match time is required")
	ErrMatchPriceNegative  = errors.New("match price cannot be negative")
	ErrTeamOverlap         = errors.New("players cannot be on both teams")
	ErrWinnerRequiresTeams = errors.New("cannot set winner without teams assigned")
	ErrNotEnoughAttendees  = errors.New("at least 2 players required for team randomization")
	ErrRosterPlayerInvalid = errors.New("team roster references an unknown player")
	ErrUnsupportedPhoto    = errors.New("unsupported photo content type")

	// Conflicts
	ErrPlayerNameConflict = errors.New("a player with this name already exists")

	// Authentication
	ErrAuthDisabled    = errors.New("password protection is disabled")
	ErrInvalidPassword = errors.New("incorrect password")
)
