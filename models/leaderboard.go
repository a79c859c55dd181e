package models

type FormResult string

const (
	FormWin  FormResult = "W"
	FormDraw FormResult = "D"
	FormLoss FormResult = "L"
)

// LeaderboardEntry is one row of the standings table. Form holds up to the
// five most recent outcomes, oldest first.
type LeaderboardEntry struct {
	Rank              int          `json:"rank"`
	PlayerID          int          `json:"playerId"`
	Name              string       `json:"name"`
	Points            int          `json:"points"`
	MatchesPlayed     int          `json:"matchesPlayed"`
	AvgPointsPerMatch float64      `json:"avgPointsPerMatch"`
	LastPlayedDate    *string      `json:"lastPlayedDate"`
	WinRate           int          `json:"winRate"`
	Wins              int          `json:"wins"`
	Draws             int          `json:"draws"`
	Losses            int          `json:"losses"`
	Form              []FormResult `json:"form"`
}
