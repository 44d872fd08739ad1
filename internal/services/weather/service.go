package weather

import (
	"log"
	"sync"

	"github.com/KirkDiggler/hexcrawl-survival/internal/dice"
	"github.com/KirkDiggler/hexcrawl-survival/internal/domain/events"
	"github.com/KirkDiggler/hexcrawl-survival/internal/domain/rulebook"
	weatherdomain "github.com/KirkDiggler/hexcrawl-survival/internal/domain/weather"
	"github.com/KirkDiggler/hexcrawl-survival/internal/interfaces"
	"github.com/KirkDiggler/hexcrawl-survival/internal/services/effect"
)

// timeDampening scales a weather weight when the current period falls
// outside a non-empty time restriction; the entry stays possible, just
// unlikely.
const timeDampening = 0.3

// defaultCheckChance is the per-tick probability of rolling for new
// weather while the sky is clear.
const defaultCheckChance = 0.15

// Service owns the single session-wide ambient weather state and the
// context-weighted selection that replaces it.
type Service interface {
	// Tick advances the weather for one scheduler tick in the given
	// map context, applying per-tick damage to the character
	Tick(characterID, terrain, period string)

	// Force sets the weather directly for scripted events, ending any
	// active weather first. Forcing weatherdomain.TypeClear just clears.
	Force(characterID, weatherID string) bool

	// Current returns a copy of the ambient state
	Current() weatherdomain.State

	// CurrentDefinition returns the active weather's catalog entry;
	// ok is false while clear
	CurrentDefinition() (*weatherdomain.Definition, bool)

	// Ambient readouts, neutral while clear so consumers never
	// special-case the rest state
	TemperatureOffset() float64
	Visibility() float64
	EncounterRate() float64
	TravelSpeed() float64
	FatigueRate() float64
	ThirstRate() float64

	// ToSnapshot captures the ambient state
	ToSnapshot() *Snapshot

	// RestoreSnapshot replaces the ambient state
	RestoreSnapshot(snap *Snapshot)
}

// ServiceConfig holds configuration for the weather service
type ServiceConfig struct {
	Catalog     *rulebook.Catalog
	Roller      dice.Roller
	EventBus    *events.EventBus
	Survival    interfaces.SurvivalAuthority // Optional; per-tick damage is skipped without it
	Effects     effect.Service               // Optional; environmental statuses are skipped without it
	CheckChance float64                      // 0 uses defaultCheckChance
}

type service struct {
	mu          sync.RWMutex
	state       weatherdomain.State
	catalog     *rulebook.Catalog
	roller      dice.Roller
	eventBus    *events.EventBus
	survival    interfaces.SurvivalAuthority
	effects     effect.Service
	checkChance float64
}

// NewService creates a new weather service starting clear
func NewService(cfg *ServiceConfig) Service {
	if cfg.Catalog == nil {
		panic("catalog is required")
	}

	svc := &service{
		state:       weatherdomain.State{TypeID: weatherdomain.TypeClear},
		catalog:     cfg.Catalog,
		roller:      cfg.Roller,
		eventBus:    cfg.EventBus,
		survival:    cfg.Survival,
		effects:     cfg.Effects,
		checkChance: cfg.CheckChance,
	}

	if svc.roller == nil {
		svc.roller = dice.NewRandomRoller()
	}
	if svc.checkChance <= 0 {
		svc.checkChance = defaultCheckChance
	}

	return svc
}

func sourceTag(weatherID string) string {
	return "weather:" + weatherID
}

func (s *service) Tick(characterID, terrain, period string) {
	s.mu.RLock()
	clear := s.state.IsClear()
	s.mu.RUnlock()

	if clear {
		if !s.roller.Chance(s.checkChance) {
			return
		}
		if def := s.selectWeather(terrain, period); def != nil {
			s.start(characterID, def)
		}
		return
	}

	s.advance(characterID)
}

// selectWeather runs the context-weighted draw over the catalog.
// Returns nil when every candidate weighs out, which leaves the sky
// clear.
func (s *service) selectWeather(terrain, period string) *weatherdomain.Definition {
	type weighted struct {
		def    *weatherdomain.Definition
		weight float64
	}

	var candidates []weighted
	total := 0.0
	for _, def := range s.catalog.WeatherDefinitions() {
		if !def.AllowsTerrain(terrain) {
			continue
		}
		w := def.BaseWeight
		if !def.AllowsPeriod(period) {
			w *= timeDampening
		}
		if mod, ok := def.TerrainModifiers[terrain]; ok {
			w *= mod
		}
		if w <= 0 {
			continue
		}
		candidates = append(candidates, weighted{def: def, weight: w})
		total += w
	}

	if total <= 0 {
		return nil
	}

	draw := s.roller.Float() * total
	cumulative := 0.0
	for _, c := range candidates {
		cumulative += c.weight
		if draw < cumulative {
			return c.def
		}
	}
	// Float rounding can leave the draw at the boundary
	return candidates[len(candidates)-1].def
}

func (s *service) start(characterID string, def *weatherdomain.Definition) {
	duration := s.roller.Between(def.DurationMin, def.DurationMax)

	s.mu.Lock()
	s.state = weatherdomain.State{
		TypeID:    def.ID,
		Remaining: duration,
		Intensity: 1.0,
	}
	s.mu.Unlock()

	if def.EffectID != "" && s.effects != nil {
		s.effects.Apply(characterID, def.EffectID, sourceTag(def.ID))
	}

	s.emit(events.NewGameEvent(events.OnWeatherStarted).
		WithContext(events.ContextCharacterID, characterID).
		WithContext(events.ContextWeatherID, def.ID).
		WithContext(events.ContextDuration, duration))
}

func (s *service) advance(characterID string) {
	s.mu.Lock()
	typeID := s.state.TypeID
	s.state.Remaining--
	remaining := s.state.Remaining
	s.mu.Unlock()

	def, ok := s.catalog.Weather(typeID)
	if !ok {
		// A restored save can carry weather the catalog no longer
		// defines; it cannot be processed, so revert to clear.
		log.Printf("weather: clearing unknown active weather %q", typeID)
		s.end(characterID, typeID)
		return
	}

	if def.DamagePerTurn > 0 && s.survival != nil {
		s.survival.ModifyHealth(characterID, -def.DamagePerTurn, sourceTag(def.ID))
	}

	if remaining <= 0 || s.roller.Chance(def.EarlyEndChance) {
		s.end(characterID, def.ID)
	}
}

func (s *service) end(characterID, weatherID string) {
	s.mu.Lock()
	s.state = weatherdomain.State{TypeID: weatherdomain.TypeClear}
	s.mu.Unlock()

	if s.effects != nil {
		s.effects.RemoveBySource(characterID, sourceTag(weatherID))
	}

	s.emit(events.NewGameEvent(events.OnWeatherEnded).
		WithContext(events.ContextCharacterID, characterID).
		WithContext(events.ContextWeatherID, weatherID))
}

func (s *service) Force(characterID, weatherID string) bool {
	s.mu.RLock()
	current := s.state
	s.mu.RUnlock()

	if !current.IsClear() {
		s.end(characterID, current.TypeID)
	}

	if weatherID == weatherdomain.TypeClear {
		return true
	}

	def, ok := s.catalog.Weather(weatherID)
	if !ok {
		log.Printf("weather: force of unknown weather %q ignored", weatherID)
		return false
	}

	s.start(characterID, def)
	return true
}

func (s *service) Current() weatherdomain.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *service) CurrentDefinition() (*weatherdomain.Definition, bool) {
	s.mu.RLock()
	typeID := s.state.TypeID
	clear := s.state.IsClear()
	s.mu.RUnlock()

	if clear {
		return nil, false
	}
	return s.catalog.Weather(typeID)
}

func (s *service) TemperatureOffset() float64 {
	if def, ok := s.CurrentDefinition(); ok {
		return def.TemperatureOffset
	}
	return 0
}

func (s *service) Visibility() float64 {
	return s.multiplier(func(def *weatherdomain.Definition) float64 { return def.Visibility })
}

func (s *service) EncounterRate() float64 {
	return s.multiplier(func(def *weatherdomain.Definition) float64 { return def.EncounterRate })
}

func (s *service) TravelSpeed() float64 {
	return s.multiplier(func(def *weatherdomain.Definition) float64 { return def.TravelSpeed })
}

func (s *service) FatigueRate() float64 {
	return s.multiplier(func(def *weatherdomain.Definition) float64 { return def.FatigueRate })
}

func (s *service) ThirstRate() float64 {
	return s.multiplier(func(def *weatherdomain.Definition) float64 { return def.ThirstRate })
}

// multiplier returns the definition's value, defaulting to the neutral
// 1.0 when clear or when the catalog entry leaves it unset
func (s *service) multiplier(read func(*weatherdomain.Definition) float64) float64 {
	if def, ok := s.CurrentDefinition(); ok {
		if v := read(def); v > 0 {
			return v
		}
	}
	return 1.0
}

func (s *service) emit(evt *events.GameEvent) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Emit(evt); err != nil {
		log.Printf("weather: event dispatch failed: %v", err)
	}
}
