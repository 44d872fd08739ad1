package disease_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mockdice "github.com/KirkDiggler/hexcrawl-survival/internal/dice/mock"
	diseasedomain "github.com/KirkDiggler/hexcrawl-survival/internal/domain/disease"
	"github.com/KirkDiggler/hexcrawl-survival/internal/domain/events"
	mockinterfaces "github.com/KirkDiggler/hexcrawl-survival/internal/interfaces/mock"
	"github.com/KirkDiggler/hexcrawl-survival/internal/services/disease"
	"github.com/KirkDiggler/hexcrawl-survival/internal/services/effect"
	"github.com/KirkDiggler/hexcrawl-survival/internal/testutils"
)

const charID = "char-1"

type harness struct {
	roller  *mockdice.ManualMockRoller
	effects effect.Service
	bus     *events.EventBus
	svc     disease.Service
}

func newHarness(t *testing.T, cfg *disease.ServiceConfig) *harness {
	t.Helper()

	catalog := testutils.TestCatalog(t)
	roller := mockdice.NewManualMockRoller()
	bus := events.NewEventBus()
	effectSvc := effect.NewService(&effect.ServiceConfig{
		Catalog: catalog,
		Roller:  roller,
	})

	if cfg == nil {
		cfg = &disease.ServiceConfig{}
	}
	cfg.Catalog = catalog
	cfg.Roller = roller
	cfg.EventBus = bus
	cfg.Effects = effectSvc

	return &harness{
		roller:  roller,
		effects: effectSvc,
		bus:     bus,
		svc:     disease.NewService(cfg),
	}
}

func TestContract_IncubationDelaysStageEffect(t *testing.T) {
	h := newHarness(t, nil)

	require.True(t, h.svc.Contract(charID, "festering_fever", "tainted_water"))
	assert.True(t, h.svc.IsInfected(charID, "festering_fever"))

	states := h.svc.ActiveDiseases(charID)
	require.Len(t, states, 1)
	assert.True(t, states[0].Incubating)
	assert.Equal(t, 3, states[0].IncubationLeft)
	assert.False(t, h.effects.Has(charID, "fever_stage_0"))

	// Incubation ticks draw nothing and apply nothing until done
	h.svc.Tick(charID)
	h.svc.Tick(charID)
	assert.False(t, h.effects.Has(charID, "fever_stage_0"))

	h.svc.Tick(charID)
	assert.True(t, h.effects.Has(charID, "fever_stage_0"))
	states = h.svc.ActiveDiseases(charID)
	require.Len(t, states, 1)
	assert.False(t, states[0].Incubating)
	assert.Zero(t, states[0].Stage)
}

func TestContract_NoIncubationAppliesImmediately(t *testing.T) {
	h := newHarness(t, nil)

	require.True(t, h.svc.Contract(charID, "marsh_rot", "bog_crossing"))
	assert.True(t, h.effects.Has(charID, "sprain"))

	instance, ok := h.effects.Get(charID, "sprain")
	require.True(t, ok)
	assert.Equal(t, "disease:marsh_rot", instance.Source)
}

func TestContract_DoubleContractionRejected(t *testing.T) {
	h := newHarness(t, nil)

	require.True(t, h.svc.Contract(charID, "marsh_rot", "bog_crossing"))
	assert.False(t, h.svc.Contract(charID, "marsh_rot", "bog_crossing"))
	assert.Len(t, h.svc.ActiveDiseases(charID), 1)
}

func TestTryContract_UsesBaseChanceAndDraw(t *testing.T) {
	h := newHarness(t, nil)

	// festering_fever base chance 0.3; a 0.29 draw contracts
	h.roller.SetFloats([]float64{0.29})
	assert.True(t, h.svc.TryContract(charID, "festering_fever", -1, "tainted_water"))

	h2 := newHarness(t, nil)
	h2.roller.SetFloats([]float64{0.31})
	assert.False(t, h2.svc.TryContract(charID, "festering_fever", -1, "tainted_water"))
	assert.False(t, h2.svc.IsInfected(charID, "festering_fever"))
}

func TestTryContract_ClampsProbability(t *testing.T) {
	// Below the floor: an explicit 0.005 chance still contracts on a
	// draw under the 0.01 minimum
	h := newHarness(t, nil)
	h.roller.SetFloats([]float64{0.009})
	assert.True(t, h.svc.TryContract(charID, "marsh_rot", 0.005, "bog_crossing"))

	// Above the ceiling: a certain exposure is still capped at 0.95
	h2 := newHarness(t, nil)
	h2.roller.SetFloats([]float64{0.96})
	assert.False(t, h2.svc.TryContract(charID, "marsh_rot", 1.0, "bog_crossing"))
}

func TestTryContract_ImmunityModifierScalesChance(t *testing.T) {
	ctrl := gomock.NewController(t)
	ledger := mockinterfaces.NewMockAttributeLedger(ctrl)
	ledger.EXPECT().HungerStage(charID).Return("well_fed").AnyTimes()
	ledger.EXPECT().ThirstStage(charID).Return("hydrated").AnyTimes()
	ledger.EXPECT().FatigueStage(charID).Return("rested").AnyTimes()

	h := newHarness(t, &disease.ServiceConfig{Ledger: ledger})

	assert.InDelta(t, 0.30, h.svc.ImmunityModifier(charID), 1e-9)

	// p = 0.3 * (1 - 0.30) = 0.21: a 0.22 draw that would have
	// contracted at base chance now misses
	h.roller.SetFloats([]float64{0.22})
	assert.False(t, h.svc.TryContract(charID, "festering_fever", -1, "tainted_water"))
}

func TestTryContract_WeakenedCharacterIsEasierToInfect(t *testing.T) {
	ctrl := gomock.NewController(t)
	ledger := mockinterfaces.NewMockAttributeLedger(ctrl)
	ledger.EXPECT().HungerStage(charID).Return("starving").AnyTimes()
	ledger.EXPECT().ThirstStage(charID).Return("severely_dehydrated").AnyTimes()
	ledger.EXPECT().FatigueStage(charID).Return("collapsing").AnyTimes()

	h := newHarness(t, &disease.ServiceConfig{Ledger: ledger})

	assert.InDelta(t, -0.75, h.svc.ImmunityModifier(charID), 1e-9)

	// p = 0.3 * 1.75 = 0.525
	h.roller.SetFloats([]float64{0.52})
	assert.True(t, h.svc.TryContract(charID, "festering_fever", -1, "tainted_water"))
}

func TestTryContract_BlockedWhileInfected(t *testing.T) {
	h := newHarness(t, nil)

	require.True(t, h.svc.Contract(charID, "marsh_rot", "bog_crossing"))

	// No draw is consumed for a character who cannot contract
	assert.False(t, h.svc.TryContract(charID, "marsh_rot", 1.0, "bog_crossing"))
}

func TestCure_StartsImmunityWindow(t *testing.T) {
	h := newHarness(t, nil)

	require.True(t, h.svc.Contract(charID, "festering_fever", "tainted_water"))
	require.True(t, h.svc.Cure(charID, "festering_fever"))

	assert.False(t, h.svc.IsInfected(charID, "festering_fever"))
	assert.True(t, h.svc.IsImmune(charID, "festering_fever"))
	assert.False(t, h.svc.TryContract(charID, "festering_fever", 1.0, "tainted_water"))

	// festering_fever grants 5 immune days
	for day := 0; day < 4; day++ {
		h.svc.TickDay(charID)
		assert.True(t, h.svc.IsImmune(charID, "festering_fever"), "day %d", day)
	}

	var expired *events.GameEvent
	h.bus.Subscribe(events.OnImmunityExpired, &captureListener{into: &expired})
	h.svc.TickDay(charID)

	assert.False(t, h.svc.IsImmune(charID, "festering_fever"))
	require.NotNil(t, expired)
	id, _ := expired.GetStringContext(events.ContextDiseaseID)
	assert.Equal(t, "festering_fever", id)
}

func TestCure_NoImmunityWhenNotConfigured(t *testing.T) {
	h := newHarness(t, nil)

	require.True(t, h.svc.Contract(charID, "marsh_rot", "bog_crossing"))
	require.True(t, h.svc.Cure(charID, "marsh_rot"))

	assert.False(t, h.svc.IsImmune(charID, "marsh_rot"))
	assert.False(t, h.effects.Has(charID, "sprain"))
}

func TestTick_StageAdvancementAndFinalStageCap(t *testing.T) {
	h := newHarness(t, nil)

	require.True(t, h.svc.Contract(charID, "festering_fever", "tainted_water"))
	for i := 0; i < 3; i++ {
		h.svc.Tick(charID) // incubation
	}

	// Recovery draws come from an empty queue and always fail, so the
	// fever walks its stages on schedule: 5 ticks onset, 5 ticks grip,
	// then delirium forever.
	for i := 0; i < 5; i++ {
		h.svc.Tick(charID)
	}
	states := h.svc.ActiveDiseases(charID)
	require.Len(t, states, 1)
	assert.Equal(t, 1, states[0].Stage)
	assert.True(t, h.effects.Has(charID, "fever_stage_1"))
	assert.False(t, h.effects.Has(charID, "fever_stage_0"))

	for i := 0; i < 5; i++ {
		h.svc.Tick(charID)
	}
	assert.Equal(t, 2, h.svc.ActiveDiseases(charID)[0].Stage)
	assert.True(t, h.effects.Has(charID, "fever_stage_2"))

	// The final stage has no duration and never advances past itself
	for i := 0; i < 20; i++ {
		h.svc.Tick(charID)
	}
	assert.Equal(t, 2, h.svc.ActiveDiseases(charID)[0].Stage)
}

func TestTick_HPLossThroughSurvival(t *testing.T) {
	ctrl := gomock.NewController(t)
	survival := mockinterfaces.NewMockSurvivalAuthority(ctrl)
	survival.EXPECT().IsResting(charID).Return(false).AnyTimes()

	h := newHarness(t, &disease.ServiceConfig{Survival: survival})

	require.True(t, h.svc.Contract(charID, "festering_fever", "tainted_water"))
	for i := 0; i < 3; i++ {
		h.svc.Tick(charID) // incubation
	}
	for i := 0; i < 5; i++ {
		h.svc.Tick(charID) // onset stage, no HP loss
	}

	// Grip drains 1 HP at the top of each tick
	survival.EXPECT().ModifyHealth(charID, -1, "disease:festering_fever")
	h.svc.Tick(charID)
}

func TestTick_NaturalRecovery(t *testing.T) {
	h := newHarness(t, nil)

	require.True(t, h.svc.Contract(charID, "marsh_rot", "bog_crossing"))
	require.True(t, h.effects.Has(charID, "sprain"))

	// marsh_rot recovers at 0.1 per tick
	h.roller.SetFloats([]float64{0.05})
	h.svc.Tick(charID)

	assert.False(t, h.svc.IsInfected(charID, "marsh_rot"))
	assert.False(t, h.effects.Has(charID, "sprain"))
}

func TestTick_RestImprovesRecovery(t *testing.T) {
	ctrl := gomock.NewController(t)
	survival := mockinterfaces.NewMockSurvivalAuthority(ctrl)
	survival.EXPECT().IsResting(charID).Return(true).AnyTimes()

	h := newHarness(t, &disease.ServiceConfig{Survival: survival})

	require.True(t, h.svc.Contract(charID, "festering_fever", "tainted_water"))
	for i := 0; i < 3; i++ {
		h.svc.Tick(charID) // incubation
	}

	// Base 0.05 + rest bonus 0.1: a 0.12 draw only cures while resting
	h.roller.SetFloats([]float64{0.12})
	h.svc.Tick(charID)

	assert.False(t, h.svc.IsInfected(charID, "festering_fever"))
	assert.True(t, h.svc.IsImmune(charID, "festering_fever"))
}

func TestTreat_CureRoll(t *testing.T) {
	h := newHarness(t, nil)

	require.True(t, h.svc.Contract(charID, "festering_fever", "tainted_water"))

	// herbal_poultice cures at 0.4
	h.roller.SetFloats([]float64{0.39})
	outcome := h.svc.Treat(charID, "festering_fever", "herbal_poultice")

	assert.Equal(t, diseasedomain.TreatmentCured, outcome)
	assert.False(t, h.svc.IsInfected(charID, "festering_fever"))
	assert.True(t, h.svc.IsImmune(charID, "festering_fever"))
}

func TestTreat_FailedCureRetreatsStage(t *testing.T) {
	h := newHarness(t, nil)

	require.True(t, h.svc.Contract(charID, "festering_fever", "tainted_water"))
	for i := 0; i < 3; i++ {
		h.svc.Tick(charID) // incubation
	}
	for i := 0; i < 5; i++ {
		h.svc.Tick(charID) // advance to grip
	}
	require.Equal(t, 1, h.svc.ActiveDiseases(charID)[0].Stage)

	h.roller.SetFloats([]float64{0.9})
	outcome := h.svc.Treat(charID, "festering_fever", "herbal_poultice")

	assert.Equal(t, diseasedomain.TreatmentPartial, outcome)
	assert.Zero(t, h.svc.ActiveDiseases(charID)[0].Stage)
	assert.True(t, h.effects.Has(charID, "fever_stage_0"))
	assert.False(t, h.effects.Has(charID, "fever_stage_1"))
}

func TestTreat_ZeroCureChanceTreatmentNeverDraws(t *testing.T) {
	h := newHarness(t, nil)

	require.True(t, h.svc.Contract(charID, "festering_fever", "tainted_water"))
	for i := 0; i < 3; i++ {
		h.svc.Tick(charID)
	}

	// bitter_tonic cannot cure; it only retreats the stage. The float
	// queue stays empty because a zero chance never rolls.
	outcome := h.svc.Treat(charID, "festering_fever", "bitter_tonic")
	assert.Equal(t, diseasedomain.TreatmentPartial, outcome)
	assert.Zero(t, h.svc.ActiveDiseases(charID)[0].Stage)
}

func TestTreat_UnknownTreatmentFails(t *testing.T) {
	h := newHarness(t, nil)

	require.True(t, h.svc.Contract(charID, "festering_fever", "tainted_water"))
	assert.Equal(t, diseasedomain.TreatmentFailed, h.svc.Treat(charID, "festering_fever", "leeches"))
}

func TestTreat_NotInfectedFails(t *testing.T) {
	h := newHarness(t, nil)

	assert.Equal(t, diseasedomain.TreatmentFailed, h.svc.Treat(charID, "festering_fever", "herbal_poultice"))
}

func TestRateMultipliers(t *testing.T) {
	h := newHarness(t, nil)

	assert.Equal(t, 1.0, h.svc.ThirstRateMultiplier(charID))
	assert.Equal(t, 1.0, h.svc.FatigueRateMultiplier(charID))

	require.True(t, h.svc.Contract(charID, "festering_fever", "tainted_water"))

	// Incubating diseases do not drain anything yet
	assert.Equal(t, 1.0, h.svc.ThirstRateMultiplier(charID))

	for i := 0; i < 3; i++ {
		h.svc.Tick(charID)
	}

	// Onset raises thirst, not fatigue
	assert.Equal(t, 1.5, h.svc.ThirstRateMultiplier(charID))
	assert.Equal(t, 1.0, h.svc.FatigueRateMultiplier(charID))

	for i := 0; i < 5; i++ {
		h.svc.Tick(charID)
	}

	// Grip flips the pair
	assert.Equal(t, 1.0, h.svc.ThirstRateMultiplier(charID))
	assert.Equal(t, 1.5, h.svc.FatigueRateMultiplier(charID))
}

func TestSnapshot_RoundTrip(t *testing.T) {
	h := newHarness(t, nil)

	require.True(t, h.svc.Contract(charID, "festering_fever", "tainted_water"))
	require.True(t, h.svc.Contract(charID, "marsh_rot", "bog_crossing"))
	require.True(t, h.svc.Cure(charID, "marsh_rot"))
	for i := 0; i < 3; i++ {
		h.svc.Tick(charID)
	}

	snap := h.svc.ToSnapshot()

	restored := newHarness(t, nil)
	restored.svc.RestoreSnapshot(snap)

	assert.True(t, restored.svc.IsInfected(charID, "festering_fever"))
	states := restored.svc.ActiveDiseases(charID)
	require.Len(t, states, 1)
	assert.Zero(t, states[0].Stage)
	assert.False(t, states[0].Incubating)

	// The stage effect is reconciled into the fresh effect engine
	assert.True(t, restored.effects.Has(charID, "fever_stage_0"))
}

func TestSnapshot_ClampsStageAgainstCatalog(t *testing.T) {
	h := newHarness(t, nil)

	snap := &disease.Snapshot{
		Characters: map[string]*disease.CharacterSnapshot{
			charID: {
				Diseases: []*diseasedomain.State{
					{DiseaseID: "festering_fever", Stage: 9, Source: "old_save"},
					{DiseaseID: "gone_from_catalog", Stage: 1, Source: "old_save"},
				},
			},
		},
	}
	h.svc.RestoreSnapshot(snap)

	states := h.svc.ActiveDiseases(charID)
	require.Len(t, states, 1)
	assert.Equal(t, 2, states[0].Stage)
	assert.True(t, h.effects.Has(charID, "fever_stage_2"))
}

// captureListener stores the last event it sees
type captureListener struct {
	into **events.GameEvent
}

func (l *captureListener) HandleEvent(event *events.GameEvent) error {
	*l.into = event
	return nil
}

func (l *captureListener) Priority() int { return 100 }
