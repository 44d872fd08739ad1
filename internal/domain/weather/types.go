package weather

// TypeClear is the rest state; it is never timed and never selected by
// weight, only reverted to.
const TypeClear = "clear"

// Definition is an immutable weather catalog entry
type Definition struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	Description      string             `json:"description,omitempty"`
	BaseWeight       float64            `json:"base_weight"`
	AllowedTerrains  []string           `json:"allowed_terrains,omitempty"` // Empty = any
	BlockedTerrains  []string           `json:"blocked_terrains,omitempty"`
	TimeRestriction  []string           `json:"time_restriction,omitempty"` // Empty = any period
	TerrainModifiers map[string]float64 `json:"terrain_modifiers,omitempty"`
	DurationMin      int                `json:"duration_min"`
	DurationMax      int                `json:"duration_max"`
	DamagePerTurn    int                `json:"damage_per_turn,omitempty"`
	EarlyEndChance   float64            `json:"early_end_chance,omitempty"`
	EffectID         string             `json:"effect_id,omitempty"` // Environmental status applied while active

	// Ambient readouts other subsystems query; zero values mean the
	// neutral defaults reported by the accessors.
	TemperatureOffset float64 `json:"temperature_offset,omitempty"`
	Visibility        float64 `json:"visibility,omitempty"`
	EncounterRate     float64 `json:"encounter_rate,omitempty"`
	TravelSpeed       float64 `json:"travel_speed,omitempty"`
	FatigueRate       float64 `json:"fatigue_rate,omitempty"`
	ThirstRate        float64 `json:"thirst_rate,omitempty"`
}

// AllowsTerrain applies the blocked/allowed terrain gating
func (d *Definition) AllowsTerrain(terrain string) bool {
	for _, t := range d.BlockedTerrains {
		if t == terrain {
			return false
		}
	}
	if len(d.AllowedTerrains) == 0 {
		return true
	}
	for _, t := range d.AllowedTerrains {
		if t == terrain {
			return true
		}
	}
	return false
}

// AllowsPeriod reports whether the time restriction includes the period.
// An empty restriction allows every period.
func (d *Definition) AllowsPeriod(period string) bool {
	if len(d.TimeRestriction) == 0 {
		return true
	}
	for _, p := range d.TimeRestriction {
		if p == period {
			return true
		}
	}
	return false
}

// State is the single session-wide ambient weather record
type State struct {
	TypeID    string  `json:"type_id"`
	Remaining int     `json:"remaining"`
	Intensity float64 `json:"intensity"` // Reserved for gradual effects
}

// IsClear reports whether the ambient state is the rest state
func (s State) IsClear() bool {
	return s.TypeID == TypeClear || s.TypeID == ""
}
