package combat

import "github.com/cory-johannsen/mechanics/internal/game/character"

// sortByInitiativeDesc sorts in place, highest initiative first. Ties keep
// their insertion order.
func sortByInitiativeDesc(cs []*character.Character) {
	for i := 1; i < len(cs); i++ {
		for j := i; j > 0 && cs[j].Stats.Initiative > cs[j-1].Stats.Initiative; j-- {
			cs[j], cs[j-1] = cs[j-1], cs[j]
		}
	}
}
