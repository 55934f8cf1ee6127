package skirmish

import (
	"context"

	"go.uber.org/zap"

	"github.com/cory-johannsen/mechanics/internal/game/action"
	"github.com/cory-johannsen/mechanics/internal/game/ai"
	"github.com/cory-johannsen/mechanics/internal/game/character"
	"github.com/cory-johannsen/mechanics/internal/game/combat"
)

// DefaultMaxRounds bounds a skirmish that neither side can win.
const DefaultMaxRounds = 100

// Outcome summarises a finished skirmish.
type Outcome struct {
	// Winner is the last side standing; empty on a draw.
	Winner    string
	Rounds    int
	Turns     int
	Survivors []*character.Character
}

// Runner drives encounters to completion, picking every action with the
// acting character's tactics planner.
type Runner struct {
	engine    *combat.Engine
	content   *Content
	economy   action.Economy
	logger    *zap.Logger
	MaxRounds int
}

// NewRunner creates a Runner starting encounters on engine.
//
// Precondition: engine and content must not be nil.
func NewRunner(engine *combat.Engine, content *Content, economy action.Economy, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{engine: engine, content: content, economy: economy, logger: logger, MaxRounds: DefaultMaxRounds}
}

// Run starts encounter id with roster and plays turns until at most one side
// has living members or MaxRounds have passed. Dead characters and
// characters that cannot act pass their turn.
//
// Postcondition: the encounter is ended on the engine before Run returns.
// Returns ctx.Err() if ctx is cancelled between turns.
func (r *Runner) Run(ctx context.Context, id string, roster []Combatant) (Outcome, error) {
	sides := make(map[string]string, len(roster))
	tactics := make(map[string]string, len(roster))
	byID := make(map[string]*character.Character, len(roster))
	chars := make([]*character.Character, 0, len(roster))
	for _, c := range roster {
		sides[c.Character.ID] = c.Side
		tactics[c.Character.ID] = c.Tactics
		byID[c.Character.ID] = c.Character
		chars = append(chars, c.Character)
	}

	enc, err := r.engine.Start(id, r.content.Catalog, chars,
		combat.WithEconomy(r.economy),
		combat.WithBehaviors(r.content.Behaviors),
		combat.WithLogger(r.logger),
	)
	if err != nil {
		return Outcome{}, err
	}
	defer r.engine.End(id)
	enc.OnRoundEnd(func(int) { r.content.Books.UpdateCooldowns() })

	sideOf := func(id string) string { return sides[id] }
	turns := 0
	for len(standing(enc, sides)) > 1 && enc.Round() <= r.MaxRounds {
		if err := ctx.Err(); err != nil {
			return Outcome{}, err
		}
		actor := enc.CurrentCharacter()
		turns++
		if !actor.IsAlive() {
			enc.Pass(actor)
			continue
		}
		r.takeTurn(enc, actor, tactics[actor.ID], sideOf, byID)
	}

	out := Outcome{Rounds: min(enc.Round(), r.MaxRounds), Turns: turns, Survivors: enc.Living()}
	if left := standing(enc, sides); len(left) == 1 {
		out.Winner = left[0]
	}
	r.logger.Info("skirmish finished",
		zap.String("encounter", id),
		zap.String("winner", out.Winner),
		zap.Int("rounds", out.Rounds),
		zap.Int("turns", out.Turns),
		zap.Int("survivors", len(out.Survivors)),
	)
	return out, nil
}

// takeTurn executes the first planned step the actor can afford, or passes.
func (r *Runner) takeTurn(enc *combat.Encounter, actor *character.Character, tactics string, sideOf func(string) string, byID map[string]*character.Character) {
	planner, ok := r.content.Planners.PlannerFor(tactics)
	if !ok {
		planner, _ = r.content.Planners.PlannerFor(DefaultTactics)
	}
	ws := ai.BuildWorldState(enc, r.content.Catalog, r.content.Books, actor, sideOf)
	plan, err := planner.Plan(ws)
	if err != nil {
		r.logger.Warn("planning failed", zap.String("actor", actor.Name), zap.Error(err))
	}

	round := enc.Round()
	for _, step := range plan {
		if step.Action == ai.ActionPass {
			break
		}
		if ws.Facts["can_"+step.Action] != 1 {
			continue
		}
		target := byID[step.Target]
		res := enc.Perform(step.Action, actor, target)
		targetName := ""
		if target != nil {
			targetName = target.Name
		}
		r.logger.Info("turn",
			zap.Int("round", round),
			zap.String("actor", actor.Name),
			zap.String("action", step.Action),
			zap.String("target", targetName),
			zap.Bool("success", res.Success),
			zap.Int("damage", res.Damage),
			zap.String("message", res.Message),
		)
		return
	}
	res := enc.Pass(actor)
	r.logger.Info("turn", zap.Int("round", round), zap.String("actor", actor.Name), zap.String("message", res.Message))
}

// standing returns the sides with at least one living member, in first-seen order.
func standing(enc *combat.Encounter, sides map[string]string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, c := range enc.Living() {
		s := sides[c.ID]
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
