package combat

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/mechanics/internal/game/action"
	"github.com/cory-johannsen/mechanics/internal/game/character"
	"github.com/cory-johannsen/mechanics/internal/game/condition"
)

// Option configures an Encounter.
type Option func(*Encounter)

// WithEconomy sets the action-point cost table.
func WithEconomy(e action.Economy) Option {
	return func(enc *Encounter) { enc.economy = e }
}

// WithBehaviors sets the status-effect behaviour table used for ticks.
func WithBehaviors(b *condition.Behaviors) Option {
	return func(enc *Encounter) { enc.behaviors = b }
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l *zap.Logger) Option {
	return func(enc *Encounter) {
		if l != nil {
			enc.logger = l
		}
	}
}

// Encounter is one combat session: a roster, its initiative order, and the
// per-action phase machine. Combat never ends on its own; the host stops
// calling ExecuteAction when it decides the fight is over.
//
// It is not safe for concurrent use.
type Encounter struct {
	ID string

	participants []*character.Character
	turnOrder    []*character.Character
	turnIndex    int
	round        int
	phase        Phase

	catalog    *action.Catalog
	economy    action.Economy
	behaviors  *condition.Behaviors
	onRoundEnd []func(round int)
	logger     *zap.Logger
}

// NewEncounter creates an empty encounter resolving actions through catalog.
//
// Precondition: catalog must not be nil.
// Postcondition: Phase() == PhaseNone; defaults are action.DefaultEconomy and
// condition.NewBehaviors.
func NewEncounter(id string, catalog *action.Catalog, opts ...Option) *Encounter {
	enc := &Encounter{
		ID:        id,
		catalog:   catalog,
		economy:   action.DefaultEconomy(),
		behaviors: condition.NewBehaviors(),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(enc)
	}
	enc.logger = enc.logger.With(zap.String("encounter", id))
	return enc
}

// AddParticipant appends c to the roster. Participants added after Initiate
// are ticked but do not take turns until the next Initiate.
func (e *Encounter) AddParticipant(c *character.Character) {
	e.participants = append(e.participants, c)
}

// Participants returns the roster in insertion order.
func (e *Encounter) Participants() []*character.Character {
	out := make([]*character.Character, len(e.participants))
	copy(out, e.participants)
	return out
}

// TurnOrder returns the initiative-sorted roster.
func (e *Encounter) TurnOrder() []*character.Character {
	out := make([]*character.Character, len(e.turnOrder))
	copy(out, e.turnOrder)
	return out
}

// Initiate sorts the roster by initiative descending (stable) and starts round 1.
//
// Postcondition: Phase() == PhaseInitiative, TurnIndex() == 0, Round() == 1.
func (e *Encounter) Initiate() {
	e.phase = PhaseInitiative
	e.turnOrder = e.Participants()
	sortByInitiativeDesc(e.turnOrder)
	e.turnIndex = 0
	e.round = 1
	for _, c := range e.turnOrder {
		e.logger.Debug("initiative",
			zap.String("character", c.Name),
			zap.Int("initiative", c.Stats.Initiative),
		)
	}
}

// CurrentCharacter returns the character whose turn it is, or nil when the
// turn order is empty.
func (e *Encounter) CurrentCharacter() *character.Character {
	if e.turnIndex < 0 || e.turnIndex >= len(e.turnOrder) {
		return nil
	}
	return e.turnOrder[e.turnIndex]
}

// TurnIndex returns the index into TurnOrder of the current actor.
func (e *Encounter) TurnIndex() int { return e.turnIndex }

// Phase returns the phase reached by the most recent call.
func (e *Encounter) Phase() Phase { return e.phase }

// Round returns the current round number, starting at 1 after Initiate.
func (e *Encounter) Round() int { return e.round }

// Economy returns the encounter's cost table.
func (e *Encounter) Economy() action.Economy { return e.economy }

// OnRoundEnd registers fn to run after each round rollover with the number of
// the round that just ended.
func (e *Encounter) OnRoundEnd(fn func(round int)) {
	e.onRoundEnd = append(e.onRoundEnd, fn)
}

// Living returns the participants with HP above zero, in roster order.
func (e *Encounter) Living() []*character.Character {
	var out []*character.Character
	for _, c := range e.participants {
		if c.IsAlive() {
			out = append(out, c)
		}
	}
	return out
}

// Perform looks up actionID in the catalog and executes it.
func (e *Encounter) Perform(actionID string, actor, target *character.Character) action.Result {
	a, ok := e.catalog.Action(actionID)
	if !ok {
		return action.Fail("Unknown action %s", actionID)
	}
	return e.ExecuteAction(a, actor, target)
}

// ExecuteAction runs one actor turn.
//
// An unaffordable action returns a failed Result with no state change beyond
// the phase. Otherwise the action's resolver runs; on success the actor pays
// the table cost of the action's type. Every participant's effects then tick
// and the turn advances. When the turn index wraps, every participant's
// action points refill and the round hooks run.
//
// Precondition: actor must not be nil; target may be nil.
func (e *Encounter) ExecuteAction(a action.Action, actor, target *character.Character) action.Result {
	e.phase = PhaseAction
	if !e.economy.CanPerform(actor, a.Type, 1) {
		e.logger.Debug("action rejected",
			zap.String("actor", actor.Name),
			zap.String("action", a.ID),
			zap.Int("ap", actor.Stats.ActionPoints),
			zap.Int("cost", e.economy.Cost(a.Type, 1)),
		)
		return action.Fail("Insufficient action points for %s", a.Name)
	}

	e.phase = PhaseResolution
	result := e.resolve(a, actor, target)
	if result.Success {
		e.economy.Consume(actor, a.Type, 1)
	}
	e.logger.Debug("action resolved",
		zap.String("actor", actor.Name),
		zap.String("action", a.ID),
		zap.Bool("success", result.Success),
		zap.Int("damage", result.Damage),
		zap.String("message", result.Message),
	)

	e.endTurn()
	return result
}

// Pass ends actor's turn without acting: effects tick and the turn advances
// exactly as after a resolved action, but no action points are spent.
func (e *Encounter) Pass(actor *character.Character) action.Result {
	e.logger.Debug("turn passed", zap.String("actor", actor.Name))
	e.endTurn()
	return action.Result{Success: true, Message: fmt.Sprintf("%s passes", actor.Name)}
}

func (e *Encounter) endTurn() {
	e.phase = PhaseStatus
	for _, c := range e.participants {
		if expired := c.TickEffects(e.behaviors); len(expired) > 0 {
			e.logger.Debug("effects expired", zap.String("character", c.Name), zap.Strings("effects", expired))
		}
	}

	e.phase = PhaseEnd
	e.advance()
}

func (e *Encounter) resolve(a action.Action, actor, target *character.Character) action.Result {
	r, ok := e.catalog.Resolver(a.ID)
	if !ok {
		return action.Fail("%s cannot be performed", a.Name)
	}
	return r.Resolve(actor, target)
}

func (e *Encounter) advance() {
	e.turnIndex++
	if e.turnIndex < len(e.turnOrder) {
		return
	}
	e.turnIndex = 0
	for _, c := range e.participants {
		e.economy.Reset(c)
	}
	ended := e.round
	e.round++
	e.logger.Debug("round ended", zap.Int("round", ended))
	for _, fn := range e.onRoundEnd {
		fn(ended)
	}
}
