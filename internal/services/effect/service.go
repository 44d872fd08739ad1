package effect

import (
	"log"
	"sync"
	"time"

	"github.com/KirkDiggler/hexcrawl-survival/internal/dice"
	"github.com/KirkDiggler/hexcrawl-survival/internal/domain/effects"
	"github.com/KirkDiggler/hexcrawl-survival/internal/domain/events"
	"github.com/KirkDiggler/hexcrawl-survival/internal/domain/rulebook"
	"github.com/KirkDiggler/hexcrawl-survival/internal/interfaces"
	"github.com/KirkDiggler/hexcrawl-survival/internal/uuid"
)

// Service is the Effect Engine: it owns per-character tables of active
// effect instances and is the sole source of truth for "is X currently
// buffed or debuffed". Consumers never cache totals across ticks.
type Service interface {
	// Apply creates or stacks an instance of the effect. Returns false
	// when the definition is unknown, blocked, missing a requirement,
	// or saturated; unknown ids log and no-op because catalogs are data.
	Apply(characterID, effectID, source string) bool

	// Remove destroys the active instance of the effect, if any
	Remove(characterID, effectID string) bool

	// RemoveBySource destroys every instance applied under the source
	// tag and returns how many were removed
	RemoveBySource(characterID, source string) int

	// RemoveByCategory destroys every instance whose definition carries
	// the category and returns how many were removed
	RemoveByCategory(characterID string, category effects.Category) int

	// Has reports whether the effect is currently active
	Has(characterID, effectID string) bool

	// Get returns the active instance of the effect
	Get(characterID, effectID string) (*effects.ActiveEffect, bool)

	// ActiveEffects returns all active instances in application order
	ActiveEffects(characterID string) []*effects.ActiveEffect

	// Totals sums matching modifiers across active instances, weighted
	// by stack count. Flat and percentage sums are reported separately;
	// combining them with the base value is the attribute ledger's job.
	Totals(characterID string, target effects.ModifierTarget, name string) (flat, percent float64)

	// Tick advances turn-scoped durations for the character. Expiring
	// instances fire their on_expire triggers before removal.
	Tick(characterID string)

	// TickDay advances day-scoped durations for the character
	TickDay(characterID string)

	// ProcessTrigger draws every active trigger matching the event and
	// executes the successful ones
	ProcessTrigger(characterID, event string, ctx map[string]interface{})

	// ToSnapshot captures all mutable state
	ToSnapshot() *Snapshot

	// RestoreSnapshot replaces all mutable state with the snapshot's,
	// re-registering ledger modifiers for the restored instances
	RestoreSnapshot(snap *Snapshot)
}

// ServiceConfig holds configuration for the effect engine
type ServiceConfig struct {
	Catalog       *rulebook.Catalog
	Roller        dice.Roller
	EventBus      *events.EventBus
	Ledger        interfaces.AttributeLedger  // Optional; modifier push is skipped without it
	Survival      interfaces.SurvivalAuthority // Optional; damage/heal triggers no-op without it
	UUIDGenerator uuid.Generator
}

type characterTable struct {
	order []string // Effect ids in application order, for deterministic draws
	byID  map[string]*effects.ActiveEffect
}

type service struct {
	mu       sync.RWMutex
	tables   map[string]*characterTable
	catalog  *rulebook.Catalog
	roller   dice.Roller
	eventBus *events.EventBus
	ledger   interfaces.AttributeLedger
	survival interfaces.SurvivalAuthority
	uuidGen  uuid.Generator
}

// NewService creates a new effect engine
func NewService(cfg *ServiceConfig) Service {
	if cfg.Catalog == nil {
		panic("catalog is required")
	}

	svc := &service{
		tables:   make(map[string]*characterTable),
		catalog:  cfg.Catalog,
		roller:   cfg.Roller,
		eventBus: cfg.EventBus,
		ledger:   cfg.Ledger,
		survival: cfg.Survival,
		uuidGen:  cfg.UUIDGenerator,
	}

	if svc.roller == nil {
		svc.roller = dice.NewRandomRoller()
	}
	if svc.uuidGen == nil {
		svc.uuidGen = uuid.NewGoogleUUIDGenerator()
	}

	return svc
}

func (s *service) table(characterID string) *characterTable {
	tbl, ok := s.tables[characterID]
	if !ok {
		tbl = &characterTable{byID: make(map[string]*effects.ActiveEffect)}
		s.tables[characterID] = tbl
	}
	return tbl
}

func (s *service) Apply(characterID, effectID, source string) bool {
	def, ok := s.catalog.Effect(effectID)
	if !ok {
		log.Printf("effect engine: apply of unknown effect %q on %s ignored", effectID, characterID)
		return false
	}

	s.mu.Lock()
	tbl := s.table(characterID)

	// Requirements must all be active
	for _, req := range def.Conditions.Requires {
		if _, active := tbl.byID[req]; !active {
			s.mu.Unlock()
			return false
		}
	}

	// An active blocker rejects the new application; the existing
	// instance stays (first-applied-wins).
	for _, blocker := range def.Conditions.Blocks {
		if _, active := tbl.byID[blocker]; active {
			s.mu.Unlock()
			return false
		}
	}

	// Active effects can grant immunity against this id
	for _, id := range tbl.order {
		other, ok := s.catalog.Effect(id)
		if !ok {
			continue
		}
		for _, immune := range other.Conditions.Immunities {
			if immune == effectID {
				s.mu.Unlock()
				return false
			}
		}
	}

	if existing, active := tbl.byID[effectID]; active {
		switch def.Stacking {
		case effects.StackingNone:
			s.mu.Unlock()
			return false
		case effects.StackingRefresh:
			existing.Remaining = initialDuration(def)
			existing.Stacks = 1
			s.pushModifiers(def, existing)
			s.mu.Unlock()
			s.emitEffect(events.OnEffectApplied, characterID, existing)
			return true
		case effects.StackingStack:
			if existing.Stacks >= def.MaxStacks {
				s.mu.Unlock()
				return false
			}
			existing.Stacks++
			s.pushModifiers(def, existing)
			s.mu.Unlock()
			s.emitEffect(events.OnEffectApplied, characterID, existing)
			return true
		case effects.StackingReplace:
			s.destroyLocked(tbl, characterID, existing, events.OnEffectRemoved)
		}
	}

	instance := &effects.ActiveEffect{
		ID:        s.uuidGen.New(),
		EffectID:  effectID,
		Source:    source,
		Remaining: initialDuration(def),
		Stacks:    1,
		AppliedAt: time.Now(),
	}
	tbl.byID[effectID] = instance
	tbl.order = append(tbl.order, effectID)
	s.pushModifiers(def, instance)
	s.mu.Unlock()

	s.emitEffect(events.OnEffectApplied, characterID, instance)
	return true
}

func initialDuration(def *effects.Definition) int {
	switch def.Duration {
	case effects.DurationTurns, effects.DurationDays:
		return def.DurationValue
	default:
		// Permanent, and instant-already-resolved
		return -1
	}
}

// pushModifiers registers the instance's flat stat modifiers with the
// attribute ledger, replacing any previous registration so stack
// changes re-weight cleanly. Callers hold the lock.
func (s *service) pushModifiers(def *effects.Definition, instance *effects.ActiveEffect) {
	if s.ledger == nil {
		return
	}

	tag := ledgerTag(instance)
	s.ledger.RemoveModifiersBySource(tag)
	for _, mod := range def.Modifiers {
		if mod.Target != effects.TargetStat || mod.Kind != effects.KindFlat {
			continue
		}
		s.ledger.AddModifier(mod.Name, mod.Value*float64(instance.Stacks), tag)
	}
}

func ledgerTag(instance *effects.ActiveEffect) string {
	return "effect:" + instance.ID
}

func (s *service) Remove(characterID, effectID string) bool {
	s.mu.Lock()
	tbl, ok := s.tables[characterID]
	if !ok {
		s.mu.Unlock()
		return false
	}
	instance, active := tbl.byID[effectID]
	if !active {
		s.mu.Unlock()
		return false
	}
	s.destroyLocked(tbl, characterID, instance, events.OnEffectRemoved)
	s.mu.Unlock()
	return true
}

func (s *service) RemoveBySource(characterID, source string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	tbl, ok := s.tables[characterID]
	if !ok {
		return 0
	}

	removed := 0
	for _, id := range append([]string(nil), tbl.order...) {
		instance := tbl.byID[id]
		if instance != nil && instance.Source == source {
			s.destroyLocked(tbl, characterID, instance, events.OnEffectRemoved)
			removed++
		}
	}
	return removed
}

func (s *service) RemoveByCategory(characterID string, category effects.Category) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	tbl, ok := s.tables[characterID]
	if !ok {
		return 0
	}

	removed := 0
	for _, id := range append([]string(nil), tbl.order...) {
		def, ok := s.catalog.Effect(id)
		if !ok || def.Category != category {
			continue
		}
		if instance := tbl.byID[id]; instance != nil {
			s.destroyLocked(tbl, characterID, instance, events.OnEffectRemoved)
			removed++
		}
	}
	return removed
}

// destroyLocked removes the instance from the table and unwinds its
// ledger modifiers. Callers hold the lock; the removal event is
// emitted inline since the bus only feeds presentation.
func (s *service) destroyLocked(tbl *characterTable, characterID string, instance *effects.ActiveEffect, eventType events.EventType) {
	delete(tbl.byID, instance.EffectID)
	for i, id := range tbl.order {
		if id == instance.EffectID {
			tbl.order = append(tbl.order[:i], tbl.order[i+1:]...)
			break
		}
	}
	if s.ledger != nil {
		s.ledger.RemoveModifiersBySource(ledgerTag(instance))
	}
	s.emitEffect(eventType, characterID, instance)
}

func (s *service) Has(characterID, effectID string) bool {
	_, ok := s.Get(characterID, effectID)
	return ok
}

func (s *service) Get(characterID, effectID string) (*effects.ActiveEffect, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tbl, ok := s.tables[characterID]
	if !ok {
		return nil, false
	}
	instance, active := tbl.byID[effectID]
	return instance, active
}

func (s *service) ActiveEffects(characterID string) []*effects.ActiveEffect {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tbl, ok := s.tables[characterID]
	if !ok {
		return nil
	}

	out := make([]*effects.ActiveEffect, 0, len(tbl.order))
	for _, id := range tbl.order {
		if instance := tbl.byID[id]; instance != nil {
			out = append(out, instance)
		}
	}
	return out
}

func (s *service) Totals(characterID string, target effects.ModifierTarget, name string) (flat, percent float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tbl, ok := s.tables[characterID]
	if !ok {
		return 0, 0
	}

	for _, id := range tbl.order {
		instance := tbl.byID[id]
		def, known := s.catalog.Effect(id)
		if instance == nil || !known {
			continue
		}
		weight := float64(instance.Stacks)
		for _, mod := range def.Modifiers {
			if mod.Target != target || mod.Name != name {
				continue
			}
			switch mod.Kind {
			case effects.KindFlat:
				flat += mod.Value * weight
			case effects.KindPercentage:
				percent += mod.Value * weight
			}
		}
	}
	return flat, percent
}

func (s *service) Tick(characterID string) {
	s.tickScoped(characterID, effects.DurationTurns)
}

func (s *service) TickDay(characterID string) {
	s.tickScoped(characterID, effects.DurationDays)
}

func (s *service) tickScoped(characterID string, scope effects.DurationType) {
	s.mu.Lock()
	tbl, ok := s.tables[characterID]
	if !ok {
		s.mu.Unlock()
		return
	}

	var expired []*effects.ActiveEffect
	for _, id := range append([]string(nil), tbl.order...) {
		instance := tbl.byID[id]
		def, known := s.catalog.Effect(id)
		if instance == nil || !known || def.Duration != scope {
			continue
		}
		if instance.Remaining > 0 {
			instance.Remaining--
		}
		if instance.Remaining == 0 {
			expired = append(expired, instance)
		}
	}
	s.mu.Unlock()

	// Expiry triggers run outside the lock so their actions can call
	// back into the engine.
	for _, instance := range expired {
		s.fireTriggers(characterID, instance, effects.EventExpire)

		s.mu.Lock()
		if tbl, ok := s.tables[characterID]; ok {
			if current := tbl.byID[instance.EffectID]; current == instance {
				s.destroyLocked(tbl, characterID, instance, events.OnEffectExpired)
			}
		}
		s.mu.Unlock()
	}
}

func (s *service) ProcessTrigger(characterID, event string, ctx map[string]interface{}) {
	s.mu.RLock()
	tbl, ok := s.tables[characterID]
	var active []*effects.ActiveEffect
	if ok {
		for _, id := range tbl.order {
			if instance := tbl.byID[id]; instance != nil {
				active = append(active, instance)
			}
		}
	}
	s.mu.RUnlock()

	for _, instance := range active {
		s.fireTriggersWithContext(characterID, instance, event, ctx)
	}
}

func (s *service) fireTriggers(characterID string, instance *effects.ActiveEffect, event string) {
	s.fireTriggersWithContext(characterID, instance, event, nil)
}

func (s *service) fireTriggersWithContext(characterID string, instance *effects.ActiveEffect, event string, ctx map[string]interface{}) {
	def, ok := s.catalog.Effect(instance.EffectID)
	if !ok {
		return
	}

	for _, trig := range def.Triggers {
		if trig.Event != event {
			continue
		}
		if !s.roller.Chance(trig.Probability) {
			continue
		}
		s.executeAction(characterID, def, trig, ctx)
	}
}

func (s *service) executeAction(characterID string, def *effects.Definition, trig effects.Trigger, ctx map[string]interface{}) {
	switch trig.Action {
	case effects.ActionDamage:
		if s.survival != nil {
			s.survival.ModifyHealth(characterID, -int(trig.Value), "effect:"+def.ID)
		}
	case effects.ActionHeal:
		if s.survival != nil {
			s.survival.ModifyHealth(characterID, int(trig.Value), "effect:"+def.ID)
		}
	case effects.ActionApplyEffect:
		s.Apply(characterID, trig.Target, "trigger:"+def.ID)
	case effects.ActionRemoveEffect:
		s.Remove(characterID, trig.Target)
	case effects.ActionGrantXP, effects.ActionBonusInitiative, effects.ActionReroll, effects.ActionCustom:
		// Dispatched for external systems; the engine does not know
		// their identities.
		if s.eventBus != nil {
			evt := events.NewGameEvent(events.OnCustomTrigger).
				WithContext(events.ContextCharacterID, characterID).
				WithContext(events.ContextEffectID, def.ID).
				WithContext(events.ContextAction, string(trig.Action)).
				WithContext(events.ContextValue, trig.Value)
			if trig.Target != "" {
				evt.WithContext("target", trig.Target)
			}
			for k, v := range ctx {
				evt.WithContext(k, v)
			}
			if err := s.eventBus.Emit(evt); err != nil {
				log.Printf("effect engine: custom trigger dispatch failed: %v", err)
			}
		}
	default:
		log.Printf("effect engine: unknown trigger action %q on effect %q ignored", trig.Action, def.ID)
	}
}

func (s *service) emitEffect(eventType events.EventType, characterID string, instance *effects.ActiveEffect) {
	if s.eventBus == nil {
		return
	}
	evt := events.NewGameEvent(eventType).
		WithContext(events.ContextCharacterID, characterID).
		WithContext(events.ContextEffectID, instance.EffectID).
		WithContext(events.ContextSource, instance.Source).
		WithContext(events.ContextStacks, instance.Stacks)
	if err := s.eventBus.Emit(evt); err != nil {
		log.Printf("effect engine: event dispatch failed: %v", err)
	}
}
