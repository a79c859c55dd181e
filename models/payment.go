package models

// Payment is a player's share of a played match's price. One row exists per
// (player, match) pair while the match has a decided outcome.
type Payment struct {
	ID         int     `json:"id"`
	PlayerID   int     `json:"playerId"`
	MatchID    int     `json:"matchId"`
	AmountOwed float64 `json:"amountOwed"`
	Paid       bool    `json:"paid"`
}

// PaymentMatrix is the derived per-player, per-match grid shown on the
// payments page.
type PaymentMatrix struct {
	Players  []PaymentMatrixPlayer `json:"players"`
	Matches  []PaymentMatrixMatch  `json:"matches"`
	Payments []PaymentCell         `json:"payments"`
	Totals   []PlayerTotal         `json:"totals"`
}

type PaymentMatrixPlayer struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type PaymentMatrixMatch struct {
	ID    int     `json:"id"`
	Date  string  `json:"date"`
	Time  string  `json:"time"`
	Price float64 `json:"price"`
}

type PaymentCell struct {
	PlayerID   int     `json:"playerId"`
	MatchID    int     `json:"matchId"`
	AmountOwed float64 `json:"amountOwed"`
	Paid       bool    `json:"paid"`
}

type PlayerTotal struct {
	PlayerID  int     `json:"playerId"`
	TotalOwed float64 `json:"totalOwed"`
}
