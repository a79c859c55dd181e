// Package teams holds the pure team-assignment logic: position-balanced
// random splitting of a set of attendees onto two sides.
package teams

import (
	"math/rand"
	"time"

	"github.com/bombers-fc/club-manager/models"
)

// RandomizeParams describes one randomization request. LockedTeamA and
// LockedTeamB are pre-assigned players that keep their side; everyone else in
// Attendees gets shuffled.
type RandomizeParams struct {
	Attendees   []models.Player
	LockedTeamA []int
	LockedTeamB []int
}

// RandomizeResult is a pair of disjoint player-id rosters.
type RandomizeResult struct {
	TeamA []int
	TeamB []int
}

// Randomize splits the unlocked attendees across both teams. Players are
// grouped by position, each group is shuffled independently, then groups are
// drained in order Defense, Midfield, Attack, always placing the next player
// on the side that currently has fewer (or equally many) members. Ties go to
// team A. Distributing defenders first keeps the back lines even when the
// attendee count is odd.
//
// rng may be nil, in which case a time-seeded source is used.
func Randomize(params RandomizeParams, rng *rand.Rand) RandomizeResult {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	locked := make(map[int]bool, len(params.LockedTeamA)+len(params.LockedTeamB))
	for _, id := range params.LockedTeamA {
		locked[id] = true
	}
	for _, id := range params.LockedTeamB {
		locked[id] = true
	}

	byPosition := map[models.Position][]int{}
	for _, player := range params.Attendees {
		if locked[player.ID] {
			continue
		}
		byPosition[player.Position] = append(byPosition[player.Position], player.ID)
	}

	for _, group := range byPosition {
		rng.Shuffle(len(group), func(i, j int) {
			group[i], group[j] = group[j], group[i]
		})
	}

	teamA := append([]int{}, params.LockedTeamA...)
	teamB := append([]int{}, params.LockedTeamB...)

	for _, position := range []models.Position{models.PositionDefense, models.PositionMidfield, models.PositionAttack} {
		for _, id := range byPosition[position] {
			if len(teamA) <= len(teamB) {
				teamA = append(teamA, id)
			} else {
				teamB = append(teamB, id)
			}
		}
	}

	return RandomizeResult{TeamA: teamA, TeamB: teamB}
}
