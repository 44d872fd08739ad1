package hazard

// StatSave describes the saving throw that decides a triggered hazard's
// severity. A nil StatSave on a definition means the save auto-fails.
type StatSave struct {
	Stat            string `json:"stat"`
	DifficultyClass int    `json:"difficulty_class"`
}

// EffectBundle is the consequence package for one save outcome
type EffectBundle struct {
	Damage    int      `json:"damage,omitempty"`
	EffectIDs []string `json:"effect_ids,omitempty"`
	TurnCost  int      `json:"turn_cost,omitempty"` // Extra scheduler ticks consumed
}

// Definition is an immutable hazard catalog entry. Empty trigger sets
// are wildcards matching any context value.
type Definition struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Description string      `json:"description,omitempty"`
	Terrains   []string     `json:"terrains,omitempty"`
	Weather    []string     `json:"weather,omitempty"`
	TimesOfDay []string     `json:"times_of_day,omitempty"`
	BaseChance float64      `json:"base_chance"`
	Save       *StatSave    `json:"save,omitempty"`
	OnSuccess  EffectBundle `json:"on_success"`
	OnFailure  EffectBundle `json:"on_failure"`
}

// MatchesContext applies the wildcard set filtering for the current
// terrain, weather, and time-of-day period.
func (d *Definition) MatchesContext(terrain, weather, period string) bool {
	return matchesSet(d.Terrains, terrain) &&
		matchesSet(d.Weather, weather) &&
		matchesSet(d.TimesOfDay, period)
}

func matchesSet(set []string, value string) bool {
	if len(set) == 0 {
		return true
	}
	for _, v := range set {
		if v == value {
			return true
		}
	}
	return false
}
