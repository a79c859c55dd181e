package models

type Position string

const (
	PositionAttack   Position = "Attack"
	PositionMidfield Position = "Midfield"
	PositionDefense  Position = "Defense"
)

// Valid reports whether p is one of the three known positions.
func (p Position) Valid() bool {
	switch p {
	case PositionAttack, PositionMidfield, PositionDefense:
		return true
	}
	return false
}

type Player struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Position Position `json:"position"`

	// Derived fields, maintained by the services layer.
	Points    int     `json:"points"`
	TotalOwed float64 `json:"totalOwed"`
	Paid      bool    `json:"paid"`

	PhotoKey *string `json:"-"`
	PhotoURL *string `json:"photo_url,omitempty"`
}
