package models

type Winner string

const (
	WinnerTeamA     Winner = "Team A"
	WinnerTeamB     Winner = "Team B"
	WinnerDraw      Winner = "Draw"
	WinnerNotPlayed Winner = "Not Played"
)

// Valid reports whether w is one of the four known outcomes.
func (w Winner) Valid() bool {
	switch w {
	case WinnerTeamA, WinnerTeamB, WinnerDraw, WinnerNotPlayed:
		return true
	}
	return false
}

// Match is a single club fixture. Date and Time are stored as strings
// ("2006-01-02" and "15:04") and ordered lexicographically.
type Match struct {
	ID       int     `json:"id"`
	Date     string  `json:"date"`
	Time     string  `json:"time"`
	Price    float64 `json:"price"`
	Location string  `json:"location"`
	Pitch    string  `json:"pitch"`
	TeamA    []int   `json:"teamA"`
	TeamB    []int   `json:"teamB"`
	Winner   Winner  `json:"winner"`
}

// Attendees returns the union of both rosters, team A first.
func (m *Match) Attendees() []int {
	out := make([]int, 0, len(m.TeamA)+len(m.TeamB))
	out = append(out, m.TeamA...)
	out = append(out, m.TeamB...)
	return out
}
