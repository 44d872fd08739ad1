package simulation

import (
	"log"

	"github.com/KirkDiggler/hexcrawl-survival/internal/domain/events"
	"github.com/KirkDiggler/hexcrawl-survival/internal/interfaces"
	"github.com/KirkDiggler/hexcrawl-survival/internal/services/disease"
	"github.com/KirkDiggler/hexcrawl-survival/internal/services/effect"
	"github.com/KirkDiggler/hexcrawl-survival/internal/services/hazard"
	"github.com/KirkDiggler/hexcrawl-survival/internal/services/weather"
)

// TriggerEventTurnStart is the effect trigger event fired at the top of
// every turn, after durations advance.
const TriggerEventTurnStart = "turn_start"

// Engine reacts to the external scheduler's notifications and runs the
// rule passes in their fixed order: the effect engine's own tick first
// so expiring effects are gone before anything evaluates against them,
// then Disease, then Weather. Hazards run only on movement, against the
// weather outcome of the same tick.
type Engine interface {
	// OnTurnBegan handles the scheduler's turn notification
	OnTurnBegan(turnIndex, dayIndex int, period string)

	// OnDayBegan handles the scheduler's day notification
	OnDayBegan(dayIndex int)

	// OnMove resolves hazards for the cell the party just entered
	OnMove() *hazard.Result

	// ToSnapshot assembles the versioned session snapshot
	ToSnapshot() *Snapshot

	// RestoreSnapshot loads a session snapshot, reconciling disease
	// stage effects into the effect engine
	RestoreSnapshot(snap *Snapshot) error
}

// EngineConfig holds configuration for the simulation engine
type EngineConfig struct {
	CharacterID string
	Effects     effect.Service
	Diseases    disease.Service
	Weather     weather.Service
	Hazards     hazard.Service
	Terrain     interfaces.TerrainLookup
	EventBus    *events.EventBus
}

type engine struct {
	characterID string
	effects     effect.Service
	diseases    disease.Service
	weather     weather.Service
	hazards     hazard.Service
	terrain     interfaces.TerrainLookup
	eventBus    *events.EventBus
}

// NewEngine creates a new simulation engine
func NewEngine(cfg *EngineConfig) Engine {
	if cfg.CharacterID == "" {
		panic("character id is required")
	}
	if cfg.Effects == nil || cfg.Diseases == nil || cfg.Weather == nil || cfg.Hazards == nil {
		panic("all four rule services are required")
	}
	if cfg.Terrain == nil {
		panic("terrain lookup is required")
	}

	return &engine{
		characterID: cfg.CharacterID,
		effects:     cfg.Effects,
		diseases:    cfg.Diseases,
		weather:     cfg.Weather,
		hazards:     cfg.Hazards,
		terrain:     cfg.Terrain,
		eventBus:    cfg.EventBus,
	}
}

func (e *engine) OnTurnBegan(turnIndex, dayIndex int, period string) {
	e.emit(events.NewGameEvent(events.OnTurnBegan).
		WithContext(events.ContextCharacterID, e.characterID).
		WithContext(events.ContextTurn, turnIndex).
		WithContext(events.ContextDay, dayIndex).
		WithContext(events.ContextPeriod, period))

	e.effects.Tick(e.characterID)
	e.effects.ProcessTrigger(e.characterID, TriggerEventTurnStart, map[string]interface{}{
		events.ContextTurn:   turnIndex,
		events.ContextPeriod: period,
	})

	e.diseases.Tick(e.characterID)
	e.weather.Tick(e.characterID, e.terrain.CurrentTerrain(), period)
}

func (e *engine) OnDayBegan(dayIndex int) {
	e.emit(events.NewGameEvent(events.OnDayBegan).
		WithContext(events.ContextCharacterID, e.characterID).
		WithContext(events.ContextDay, dayIndex))

	e.effects.TickDay(e.characterID)
	e.diseases.TickDay(e.characterID)
}

func (e *engine) OnMove() *hazard.Result {
	return e.hazards.CheckMovement(e.characterID, e.terrain.CurrentTerrain(), e.terrain.CurrentPeriod())
}

func (e *engine) emit(evt *events.GameEvent) {
	if e.eventBus == nil {
		return
	}
	if err := e.eventBus.Emit(evt); err != nil {
		log.Printf("simulation: event dispatch failed: %v", err)
	}
}
