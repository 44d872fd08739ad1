package disease

import (
	"log"
	"sync"

	"github.com/KirkDiggler/hexcrawl-survival/internal/dice"
	diseasedomain "github.com/KirkDiggler/hexcrawl-survival/internal/domain/disease"
	"github.com/KirkDiggler/hexcrawl-survival/internal/domain/events"
	"github.com/KirkDiggler/hexcrawl-survival/internal/domain/rulebook"
	"github.com/KirkDiggler/hexcrawl-survival/internal/interfaces"
	"github.com/KirkDiggler/hexcrawl-survival/internal/services/effect"
)

// Contraction probability bounds after the immunity modifier is applied
const (
	minContractChance = 0.01
	maxContractChance = 0.95
)

// Service runs the staged disease state machine for every character:
// contraction, incubation, progression, treatment, cure, and immunity.
type Service interface {
	// TryContract rolls for contraction. chance < 0 uses the
	// definition's base chance. No-op when already infected or immune.
	TryContract(characterID, diseaseID string, chance float64, source string) bool

	// Contract forces contraction without a roll
	Contract(characterID, diseaseID, source string) bool

	// Treat applies a treatment from the disease's definition
	Treat(characterID, diseaseID, treatmentID string) diseasedomain.TreatmentOutcome

	// Cure force-cures the disease, starting immunity if configured
	Cure(characterID, diseaseID string) bool

	// Tick runs the per-turn progression pass for the character
	Tick(characterID string)

	// TickDay decrements immunity timers for the character
	TickDay(characterID string)

	// IsInfected reports whether the disease is active (incubating counts)
	IsInfected(characterID, diseaseID string) bool

	// IsImmune reports whether a non-expired immunity record blocks the disease
	IsImmune(characterID, diseaseID string) bool

	// ActiveDiseases returns the character's disease states in contraction order
	ActiveDiseases(characterID string) []*diseasedomain.State

	// ImmunityModifier derives the character's signed resistance scalar
	// from their current hunger, thirst, and fatigue stages
	ImmunityModifier(characterID string) float64

	// ThirstRateMultiplier returns the maximum thirst-rate multiplier
	// across active diseases' current stages; 1.0 when none apply
	ThirstRateMultiplier(characterID string) float64

	// FatigueRateMultiplier is the fatigue-rate counterpart of
	// ThirstRateMultiplier
	FatigueRateMultiplier(characterID string) float64

	// ToSnapshot captures all mutable state
	ToSnapshot() *Snapshot

	// RestoreSnapshot replaces all mutable state and reconciles active
	// stage effects into the effect engine
	RestoreSnapshot(snap *Snapshot)
}

// DefaultStageOffsets maps survival-need stage names to immunity
// modifier contributions. Overridable via ServiceConfig.
var DefaultStageOffsets = map[string]float64{
	"well_fed":            0.15,
	"hungry":              -0.05,
	"starving":            -0.25,
	"rested":              0.10,
	"tired":               -0.10,
	"collapsing":          -0.30,
	"hydrated":            0.05,
	"thirsty":             -0.05,
	"severely_dehydrated": -0.20,
}

// ServiceConfig holds configuration for the disease service
type ServiceConfig struct {
	Catalog      *rulebook.Catalog
	Roller       dice.Roller
	EventBus     *events.EventBus
	Effects      effect.Service
	Ledger       interfaces.AttributeLedger   // Optional; immunity modifier is 0 without it
	Survival     interfaces.SurvivalAuthority // Optional; HP loss and rest bonus are skipped without it
	StageOffsets map[string]float64           // nil uses DefaultStageOffsets
}

type characterState struct {
	order      []string // Disease ids in contraction order
	byID       map[string]*diseasedomain.State
	immunities map[string]*diseasedomain.Immunity
}

type service struct {
	mu           sync.RWMutex
	characters   map[string]*characterState
	catalog      *rulebook.Catalog
	roller       dice.Roller
	eventBus     *events.EventBus
	effects      effect.Service
	ledger       interfaces.AttributeLedger
	survival     interfaces.SurvivalAuthority
	stageOffsets map[string]float64
}

// NewService creates a new disease progression service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Catalog == nil {
		panic("catalog is required")
	}
	if cfg.Effects == nil {
		panic("effect service is required")
	}

	svc := &service{
		characters:   make(map[string]*characterState),
		catalog:      cfg.Catalog,
		roller:       cfg.Roller,
		eventBus:     cfg.EventBus,
		effects:      cfg.Effects,
		ledger:       cfg.Ledger,
		survival:     cfg.Survival,
		stageOffsets: cfg.StageOffsets,
	}

	if svc.roller == nil {
		svc.roller = dice.NewRandomRoller()
	}
	if svc.stageOffsets == nil {
		svc.stageOffsets = DefaultStageOffsets
	}

	return svc
}

func (s *service) state(characterID string) *characterState {
	st, ok := s.characters[characterID]
	if !ok {
		st = &characterState{
			byID:       make(map[string]*diseasedomain.State),
			immunities: make(map[string]*diseasedomain.Immunity),
		}
		s.characters[characterID] = st
	}
	return st
}

func sourceTag(diseaseID string) string {
	return "disease:" + diseaseID
}

func (s *service) TryContract(characterID, diseaseID string, chance float64, source string) bool {
	def, ok := s.catalog.Disease(diseaseID)
	if !ok {
		log.Printf("disease: contraction roll for unknown disease %q ignored", diseaseID)
		return false
	}
	if s.IsInfected(characterID, diseaseID) || s.IsImmune(characterID, diseaseID) {
		return false
	}

	p := chance
	if p < 0 {
		p = def.BaseChance
	}
	p *= 1 - s.ImmunityModifier(characterID)
	if p < minContractChance {
		p = minContractChance
	}
	if p > maxContractChance {
		p = maxContractChance
	}

	if !s.roller.Chance(p) {
		return false
	}
	return s.Contract(characterID, diseaseID, source)
}

func (s *service) Contract(characterID, diseaseID, source string) bool {
	def, ok := s.catalog.Disease(diseaseID)
	if !ok {
		log.Printf("disease: contraction of unknown disease %q ignored", diseaseID)
		return false
	}

	s.mu.Lock()
	st := s.state(characterID)
	if _, infected := st.byID[diseaseID]; infected {
		s.mu.Unlock()
		return false
	}

	state := &diseasedomain.State{
		DiseaseID:      diseaseID,
		Source:         source,
		Incubating:     def.IncubationTurns > 0,
		IncubationLeft: def.IncubationTurns,
	}
	st.byID[diseaseID] = state
	st.order = append(st.order, diseaseID)
	s.mu.Unlock()

	s.emit(events.NewGameEvent(events.OnDiseaseContracted).
		WithContext(events.ContextCharacterID, characterID).
		WithContext(events.ContextDiseaseID, diseaseID).
		WithContext(events.ContextSource, source))

	if !state.Incubating {
		s.enterStage(characterID, def, state, 0)
	}
	return true
}

// enterStage swaps the character onto the given stage: the previous
// stage's effect goes away, the new one applies, and the symptom is
// announced. The stage index is clamped into the definition's range.
func (s *service) enterStage(characterID string, def *diseasedomain.Definition, state *diseasedomain.State, stageIdx int) {
	if stageIdx < 0 {
		stageIdx = 0
	}
	if stageIdx >= len(def.Stages) {
		stageIdx = len(def.Stages) - 1
	}

	s.effects.RemoveBySource(characterID, sourceTag(def.ID))

	s.mu.Lock()
	state.Incubating = false
	state.IncubationLeft = 0
	state.Stage = stageIdx
	state.TicksInStage = 0
	s.mu.Unlock()

	stage := def.Stages[stageIdx]
	if stage.EffectID != "" {
		s.effects.Apply(characterID, stage.EffectID, sourceTag(def.ID))
	}

	evt := events.NewGameEvent(events.OnDiseaseStaged).
		WithContext(events.ContextCharacterID, characterID).
		WithContext(events.ContextDiseaseID, def.ID).
		WithContext(events.ContextStage, stageIdx)
	s.emit(evt)

	if stage.Symptom != "" {
		s.emit(events.NewGameEvent(events.OnDiseaseSymptom).
			WithContext(events.ContextCharacterID, characterID).
			WithContext(events.ContextDiseaseID, def.ID).
			WithContext(events.ContextStage, stageIdx).
			WithContext(events.ContextSymptom, stage.Symptom))
	}
}

func (s *service) Tick(characterID string) {
	s.mu.RLock()
	st, ok := s.characters[characterID]
	var active []*diseasedomain.State
	if ok {
		for _, id := range st.order {
			if state := st.byID[id]; state != nil {
				active = append(active, state)
			}
		}
	}
	s.mu.RUnlock()

	resting := false
	if s.survival != nil {
		resting = s.survival.IsResting(characterID)
	}
	immunityMod := s.ImmunityModifier(characterID)

	for _, state := range active {
		def, known := s.catalog.Disease(state.DiseaseID)
		if !known {
			// A restored save can carry a disease the catalog no longer
			// defines; it cannot progress, so drop it.
			log.Printf("disease: dropping unknown disease %q from %s", state.DiseaseID, characterID)
			s.removeState(characterID, state.DiseaseID)
			continue
		}

		if state.Incubating {
			s.mu.Lock()
			state.IncubationLeft--
			done := state.IncubationLeft <= 0
			s.mu.Unlock()
			if done {
				s.enterStage(characterID, def, state, 0)
			}
			continue
		}

		stage := def.Stages[state.Stage]
		if stage.HPLossPerTurn > 0 && s.survival != nil {
			s.survival.ModifyHealth(characterID, -stage.HPLossPerTurn, sourceTag(def.ID))
		}

		recovery := def.BaseRecoveryChance
		if resting {
			recovery += def.RestRecoveryBonus
		}
		if immunityMod > 0 {
			recovery += immunityMod
		}
		if s.roller.Chance(recovery) {
			s.cure(characterID, def, "natural")
			continue
		}

		s.mu.Lock()
		state.TicksInStage++
		advance := stage.DurationTurns > 0 && state.TicksInStage >= stage.DurationTurns
		atFinal := state.Stage >= len(def.Stages)-1
		s.mu.Unlock()

		if advance && !atFinal {
			s.enterStage(characterID, def, state, state.Stage+1)
		}
	}
}

func (s *service) Treat(characterID, diseaseID, treatmentID string) diseasedomain.TreatmentOutcome {
	def, ok := s.catalog.Disease(diseaseID)
	if !ok {
		log.Printf("disease: treatment of unknown disease %q ignored", diseaseID)
		return diseasedomain.TreatmentFailed
	}
	treatment := def.Treatment(treatmentID)
	if treatment == nil {
		log.Printf("disease: unknown treatment %q for disease %q ignored", treatmentID, diseaseID)
		return diseasedomain.TreatmentFailed
	}

	s.mu.RLock()
	st, ok := s.characters[characterID]
	var state *diseasedomain.State
	if ok {
		state = st.byID[diseaseID]
	}
	s.mu.RUnlock()
	if state == nil {
		return diseasedomain.TreatmentFailed
	}

	cureChance := treatment.CureChance + s.ImmunityModifier(characterID)
	if cureChance < 0 {
		cureChance = 0
	}
	if s.roller.Chance(cureChance) {
		s.cure(characterID, def, "treatment:"+treatmentID)
		return diseasedomain.TreatmentCured
	}

	if treatment.StageReduction > 0 && !state.Incubating {
		target := state.Stage - treatment.StageReduction
		if target < 0 {
			target = 0
		}
		if target != state.Stage {
			s.enterStage(characterID, def, state, target)
		}
		return diseasedomain.TreatmentPartial
	}

	return diseasedomain.TreatmentFailed
}

func (s *service) Cure(characterID, diseaseID string) bool {
	def, ok := s.catalog.Disease(diseaseID)
	if !ok {
		log.Printf("disease: forced cure of unknown disease %q ignored", diseaseID)
		return false
	}
	if !s.IsInfected(characterID, diseaseID) {
		return false
	}
	s.cure(characterID, def, "forced")
	return true
}

// cure destroys the state, clears the disease's effect engine
// modifiers, and starts the immunity timer when configured.
func (s *service) cure(characterID string, def *diseasedomain.Definition, cause string) {
	s.removeState(characterID, def.ID)
	s.effects.RemoveBySource(characterID, sourceTag(def.ID))

	if def.ImmunityDays > 0 {
		s.mu.Lock()
		st := s.state(characterID)
		st.immunities[def.ID] = &diseasedomain.Immunity{
			DiseaseID:     def.ID,
			RemainingDays: def.ImmunityDays,
		}
		s.mu.Unlock()
	}

	s.emit(events.NewGameEvent(events.OnDiseaseCured).
		WithContext(events.ContextCharacterID, characterID).
		WithContext(events.ContextDiseaseID, def.ID).
		WithContext(events.ContextSource, cause))
}

func (s *service) removeState(characterID, diseaseID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.characters[characterID]
	if !ok {
		return
	}
	delete(st.byID, diseaseID)
	for i, id := range st.order {
		if id == diseaseID {
			st.order = append(st.order[:i], st.order[i+1:]...)
			break
		}
	}
}

func (s *service) TickDay(characterID string) {
	s.mu.Lock()
	st, ok := s.characters[characterID]
	var expired []string
	if ok {
		for id, immunity := range st.immunities {
			immunity.RemainingDays--
			if immunity.RemainingDays <= 0 {
				expired = append(expired, id)
			}
		}
		for _, id := range expired {
			delete(st.immunities, id)
		}
	}
	s.mu.Unlock()

	for _, id := range expired {
		s.emit(events.NewGameEvent(events.OnImmunityExpired).
			WithContext(events.ContextCharacterID, characterID).
			WithContext(events.ContextDiseaseID, id))
	}
}

func (s *service) IsInfected(characterID, diseaseID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.characters[characterID]
	if !ok {
		return false
	}
	_, infected := st.byID[diseaseID]
	return infected
}

func (s *service) IsImmune(characterID, diseaseID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.characters[characterID]
	if !ok {
		return false
	}
	immunity, exists := st.immunities[diseaseID]
	return exists && immunity.RemainingDays > 0
}

func (s *service) ActiveDiseases(characterID string) []*diseasedomain.State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.characters[characterID]
	if !ok {
		return nil
	}

	out := make([]*diseasedomain.State, 0, len(st.order))
	for _, id := range st.order {
		if state := st.byID[id]; state != nil {
			out = append(out, state)
		}
	}
	return out
}

func (s *service) ImmunityModifier(characterID string) float64 {
	if s.ledger == nil {
		return 0
	}

	total := 0.0
	for _, stage := range []string{
		s.ledger.HungerStage(characterID),
		s.ledger.ThirstStage(characterID),
		s.ledger.FatigueStage(characterID),
	} {
		total += s.stageOffsets[stage]
	}
	return total
}

func (s *service) ThirstRateMultiplier(characterID string) float64 {
	return s.maxStageRate(characterID, func(stage diseasedomain.Stage) float64 {
		return stage.ThirstRate
	})
}

func (s *service) FatigueRateMultiplier(characterID string) float64 {
	return s.maxStageRate(characterID, func(stage diseasedomain.Stage) float64 {
		return stage.FatigueRate
	})
}

func (s *service) maxStageRate(characterID string, rate func(diseasedomain.Stage) float64) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	max := 1.0
	st, ok := s.characters[characterID]
	if !ok {
		return max
	}

	for _, id := range st.order {
		state := st.byID[id]
		def, known := s.catalog.Disease(id)
		if state == nil || !known || state.Incubating {
			continue
		}
		if r := rate(def.Stages[state.Stage]); r > max {
			max = r
		}
	}
	return max
}

func (s *service) emit(evt *events.GameEvent) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Emit(evt); err != nil {
		log.Printf("disease: event dispatch failed: %v", err)
	}
}
