package disease

// Stage is one step in a disease's ordered progression
type Stage struct {
	Name          string  `json:"name"`
	DurationTurns int     `json:"duration_turns"` // Ticks spent in this stage before advancing
	EffectID      string  `json:"effect_id,omitempty"`
	Symptom       string  `json:"symptom,omitempty"`
	HPLossPerTurn int     `json:"hp_loss_per_turn,omitempty"`
	ThirstRate    float64 `json:"thirst_rate,omitempty"`  // Multiplier, 0 means neutral
	FatigueRate   float64 `json:"fatigue_rate,omitempty"` // Multiplier, 0 means neutral
}

// Treatment is one way of curing or reducing a disease
type Treatment struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	CureChance     float64 `json:"cure_chance"`
	StageReduction int     `json:"stage_reduction,omitempty"`
}

// Definition is an immutable disease catalog entry
type Definition struct {
	ID                 string      `json:"id"`
	Name               string      `json:"name"`
	Description        string      `json:"description,omitempty"`
	BaseChance         float64     `json:"base_chance"`
	IncubationTurns    int         `json:"incubation_turns"`
	Stages             []Stage     `json:"stages"`
	BaseRecoveryChance float64     `json:"base_recovery_chance"`
	RestRecoveryBonus  float64     `json:"rest_recovery_bonus,omitempty"`
	ImmunityDays       int         `json:"immunity_days,omitempty"`
	Treatments         []Treatment `json:"treatments,omitempty"`
}

// Treatment looks up a treatment by id; nil if unknown
func (d *Definition) Treatment(id string) *Treatment {
	for i := range d.Treatments {
		if d.Treatments[i].ID == id {
			return &d.Treatments[i]
		}
	}
	return nil
}

// State is the mutable per-character record for one active disease
type State struct {
	DiseaseID       string `json:"disease_id"`
	Stage           int    `json:"stage"`
	TicksInStage    int    `json:"ticks_in_stage"`
	Incubating      bool   `json:"incubating"`
	IncubationLeft  int    `json:"incubation_left"`
	Source          string `json:"source"`
}

// Immunity blocks re-contraction of a disease until it expires
type Immunity struct {
	DiseaseID     string `json:"disease_id"`
	RemainingDays int    `json:"remaining_days"`
}

// TreatmentOutcome is the result of a treatment attempt
type TreatmentOutcome string

const (
	TreatmentCured   TreatmentOutcome = "cured"
	TreatmentPartial TreatmentOutcome = "partial" // Stage reduced, not cured
	TreatmentFailed  TreatmentOutcome = "failed"
)
