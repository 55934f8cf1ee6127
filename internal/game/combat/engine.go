package combat

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/cory-johannsen/mechanics/internal/game/action"
	"github.com/cory-johannsen/mechanics/internal/game/character"
)

// Engine tracks active encounters keyed by encounter ID.
// Engine methods are safe for concurrent use; the returned Encounters are not.
type Engine struct {
	mu         sync.RWMutex
	encounters map[string]*Encounter
	logger     *zap.Logger
}

// NewEngine creates an empty Engine. A nil logger discards output.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{encounters: make(map[string]*Encounter), logger: logger}
}

// Start creates an encounter with the given participants and initiates it.
//
// Precondition: id must be non-empty; catalog must not be nil.
// Postcondition: Returns the initiated Encounter, or an error if id is empty
// or already active.
func (e *Engine) Start(id string, catalog *action.Catalog, participants []*character.Character, opts ...Option) (*Encounter, error) {
	if id == "" {
		return nil, fmt.Errorf("encounter id must not be empty")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.encounters[id]; exists {
		return nil, fmt.Errorf("encounter %q already active", id)
	}
	enc := NewEncounter(id, catalog, append([]Option{WithLogger(e.logger)}, opts...)...)
	for _, c := range participants {
		enc.AddParticipant(c)
	}
	enc.Initiate()
	e.encounters[id] = enc
	e.logger.Info("encounter started", zap.String("encounter", id), zap.Int("participants", len(participants)))
	return enc, nil
}

// Get returns the active encounter with id.
func (e *Engine) Get(id string) (*Encounter, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	enc, ok := e.encounters[id]
	return enc, ok
}

// End removes the encounter with id. Unknown IDs are a no-op.
func (e *Engine) End(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.encounters[id]; ok {
		delete(e.encounters, id)
		e.logger.Info("encounter ended", zap.String("encounter", id))
	}
}

// Active returns the IDs of all active encounters, sorted.
func (e *Engine) Active() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	ids := make([]string, 0, len(e.encounters))
	for id := range e.encounters {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
