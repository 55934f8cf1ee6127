package skirmish

import (
	"github.com/cory-johannsen/mechanics/internal/game/character"
	"github.com/cory-johannsen/mechanics/internal/game/currency"
)

// Award is what one survivor gained from a won skirmish.
type Award struct {
	Character  *character.Character
	Experience int
	Copper     int
	LevelledUp bool
}

// AwardSpoils empties the purses of the winner's fallen enemies and splits
// the total evenly, in copper, among the survivors; the remainder goes one
// copper each to the first survivors. Every survivor gains xpPerDefeat per
// fallen enemy.
//
// Postcondition: returns nil on a draw; total copper across roster is unchanged.
func AwardSpoils(out Outcome, roster []Combatant, xpPerDefeat int) []Award {
	if out.Winner == "" || len(out.Survivors) == 0 {
		return nil
	}
	fallen := 0
	var pot currency.Currency
	for _, c := range roster {
		if c.Side == out.Winner || c.Character.IsAlive() {
			continue
		}
		fallen++
		pot = currency.Add(pot, c.Character.Purse)
		c.Character.Purse = currency.Currency{}
	}

	total := currency.ToCopper(pot)
	share, rem := total/len(out.Survivors), total%len(out.Survivors)
	xp := xpPerDefeat * fallen
	awards := make([]Award, 0, len(out.Survivors))
	for i, s := range out.Survivors {
		amt := share
		if i < rem {
			amt++
		}
		s.Purse = currency.Add(s.Purse, currency.FromCopper(amt))
		levelled := s.GainExperience(xp)
		awards = append(awards, Award{Character: s, Experience: xp, Copper: amt, LevelledUp: levelled})
	}
	return awards
}
