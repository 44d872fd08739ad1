package hazard

import (
	"log"

	"github.com/KirkDiggler/hexcrawl-survival/internal/dice"
	"github.com/KirkDiggler/hexcrawl-survival/internal/domain/events"
	hazarddomain "github.com/KirkDiggler/hexcrawl-survival/internal/domain/hazard"
	"github.com/KirkDiggler/hexcrawl-survival/internal/domain/rulebook"
	"github.com/KirkDiggler/hexcrawl-survival/internal/interfaces"
	"github.com/KirkDiggler/hexcrawl-survival/internal/services/effect"
	"github.com/KirkDiggler/hexcrawl-survival/internal/services/weather"
)

// Result reports one movement check. A nil Result means no hazard was
// eligible for the cell's context.
type Result struct {
	HazardID       string
	Triggered      bool
	SaveSuccess    bool
	SaveMargin     int
	Damage         int
	EffectsApplied []string
	TurnCost       int
}

// Service resolves point hazards when the party enters a new map cell.
// It keeps no state between invocations.
type Service interface {
	// CheckMovement filters the hazard catalog against the cell's
	// context, picks one eligible entry, and resolves it
	CheckMovement(characterID, terrain, period string) *Result
}

// ServiceConfig holds configuration for the hazard service
type ServiceConfig struct {
	Catalog   *rulebook.Catalog
	Roller    dice.Roller
	EventBus  *events.EventBus
	Weather   weather.Service              // Optional; context weather is clear without it
	Ledger    interfaces.AttributeLedger   // Optional; saves auto-fail without it
	Survival  interfaces.SurvivalAuthority // Optional; bundle damage is skipped without it
	Effects   effect.Service
	Scheduler interfaces.TickScheduler // Optional; turn costs are skipped without it
}

type service struct {
	catalog   *rulebook.Catalog
	roller    dice.Roller
	eventBus  *events.EventBus
	weather   weather.Service
	ledger    interfaces.AttributeLedger
	survival  interfaces.SurvivalAuthority
	effects   effect.Service
	scheduler interfaces.TickScheduler
}

// NewService creates a new hazard resolution service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Catalog == nil {
		panic("catalog is required")
	}
	if cfg.Effects == nil {
		panic("effect service is required")
	}

	svc := &service{
		catalog:   cfg.Catalog,
		roller:    cfg.Roller,
		eventBus:  cfg.EventBus,
		weather:   cfg.Weather,
		ledger:    cfg.Ledger,
		survival:  cfg.Survival,
		effects:   cfg.Effects,
		scheduler: cfg.Scheduler,
	}

	if svc.roller == nil {
		svc.roller = dice.NewRandomRoller()
	}

	return svc
}

func sourceTag(hazardID string) string {
	return "hazard:" + hazardID
}

func (s *service) CheckMovement(characterID, terrain, period string) *Result {
	weatherID := "clear"
	if s.weather != nil {
		weatherID = s.weather.Current().TypeID
	}

	var eligible []*hazarddomain.Definition
	for _, def := range s.catalog.Hazards() {
		if def.MatchesContext(terrain, weatherID, period) {
			eligible = append(eligible, def)
		}
	}
	if len(eligible) == 0 {
		return nil
	}

	// Uniform pick; rarity weighting is a catalog extension point
	def := eligible[s.roller.Between(0, len(eligible)-1)]

	result := &Result{HazardID: def.ID}
	if !s.roller.Chance(def.BaseChance) {
		// Observable for telemetry even though nothing happened
		s.emit(events.NewGameEvent(events.OnHazardChecked).
			WithContext(events.ContextCharacterID, characterID).
			WithContext(events.ContextHazardID, def.ID).
			WithContext(events.ContextTriggered, false))
		return result
	}
	result.Triggered = true

	result.SaveSuccess, result.SaveMargin = s.rollSave(def)

	bundle := def.OnFailure
	if result.SaveSuccess {
		bundle = def.OnSuccess
	}
	s.applyBundle(characterID, def, bundle, result)

	s.emit(events.NewGameEvent(events.OnHazardTriggered).
		WithContext(events.ContextCharacterID, characterID).
		WithContext(events.ContextHazardID, def.ID).
		WithContext(events.ContextSaveSuccess, result.SaveSuccess).
		WithContext(events.ContextDamage, result.Damage).
		WithContext(events.ContextTurnCost, result.TurnCost))

	return result
}

// rollSave resolves the stat save through the attribute ledger. No
// save descriptor or no ledger means the save auto-fails; that is the
// documented fallback, not an error path.
func (s *service) rollSave(def *hazarddomain.Definition) (success bool, margin int) {
	if def.Save == nil || s.ledger == nil {
		return false, 0
	}

	check, err := s.ledger.RollCheck(def.Save.Stat, def.Save.DifficultyClass, 0)
	if err != nil || check == nil {
		log.Printf("hazard: save roll for %q failed (%v), treating as auto-fail", def.ID, err)
		return false, 0
	}
	return check.Success, check.Margin
}

func (s *service) applyBundle(characterID string, def *hazarddomain.Definition, bundle hazarddomain.EffectBundle, result *Result) {
	if bundle.Damage > 0 && s.survival != nil {
		s.survival.ModifyHealth(characterID, -bundle.Damage, sourceTag(def.ID))
		result.Damage = bundle.Damage
	}

	for _, effectID := range bundle.EffectIDs {
		if s.effects.Apply(characterID, effectID, sourceTag(def.ID)) {
			result.EffectsApplied = append(result.EffectsApplied, effectID)
		}
	}

	if bundle.TurnCost > 0 {
		result.TurnCost = bundle.TurnCost
		if s.scheduler != nil {
			s.scheduler.ConsumeTicks(bundle.TurnCost)
		}
	}
}

func (s *service) emit(evt *events.GameEvent) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Emit(evt); err != nil {
		log.Printf("hazard: event dispatch failed: %v", err)
	}
}
