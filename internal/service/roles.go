package service

import (
	"math/rand/v2"
	"sort"

	"github.com/SpotTheSpy/backend/internal/model"
)

// Random-mode odds: below 0.10 no spies, below 0.55 one, otherwise two.
const (
	randomNoSpyChance  = 0.10
	randomOneSpyChance = 0.55
)

// SpyIndices picks which seats become spies for a game of playerAmount
// players. Pure computation over the supplied source, so role assignment
// is testable independent of storage.
func SpyIndices(r *rand.Rand, mode model.SpyCount, playerAmount int) []int {
	indices := make([]int, playerAmount)
	for i := range indices {
		indices[i] = i
	}
	r.Shuffle(len(indices), func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})

	count := 0
	switch mode {
	case model.SpyCountSingle:
		count = 1
	case model.SpyCountDouble:
		count = 2
	case model.SpyCountRandom:
		switch chance := r.Float64(); {
		case chance < randomNoSpyChance:
			count = 0
		case chance < randomOneSpyChance:
			count = 1
		default:
			count = 2
		}
	}
	if count > playerAmount {
		count = playerAmount
	}

	selected := indices[:count]
	sort.Ints(selected)
	return selected
}

// AssignRoles marks the players at the given indices as spies and everyone
// else as citizens. Indices refer to join order.
func AssignRoles(players []model.Player, spyIndices []int) {
	spies := make(map[int]bool, len(spyIndices))
	for _, idx := range spyIndices {
		spies[idx] = true
	}
	for i := range players {
		if spies[i] {
			players[i].Role = model.RoleSpy
		} else {
			players[i].Role = model.RoleCitizen
		}
	}
}
