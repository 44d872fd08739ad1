package rulebook

import (
	"github.com/KirkDiggler/hexcrawl-survival/internal/domain/effects"
)

// TargetRegistry holds the known modifier names per target kind.
// Catalog validation resolves every modifier name against it at load
// time, so an authoring typo fails the load instead of silently
// no-opping at apply time.
type TargetRegistry struct {
	names map[effects.ModifierTarget]map[string]struct{}
}

// NewTargetRegistry creates an empty registry
func NewTargetRegistry() *TargetRegistry {
	return &TargetRegistry{
		names: make(map[effects.ModifierTarget]map[string]struct{}),
	}
}

// Register adds names under a target kind
func (r *TargetRegistry) Register(target effects.ModifierTarget, names ...string) *TargetRegistry {
	set, ok := r.names[target]
	if !ok {
		set = make(map[string]struct{})
		r.names[target] = set
	}
	for _, n := range names {
		set[n] = struct{}{}
	}
	return r
}

// Knows reports whether the name is registered under the target kind
func (r *TargetRegistry) Knows(target effects.ModifierTarget, name string) bool {
	set, ok := r.names[target]
	if !ok {
		return false
	}
	_, ok = set[name]
	return ok
}

// DefaultTargetRegistry returns the registry for the base game's stats,
// skills, derived values, and rate multipliers.
func DefaultTargetRegistry() *TargetRegistry {
	return NewTargetRegistry().
		Register(effects.TargetStat,
			"strength", "agility", "fortitude", "intellect", "willpower", "charisma").
		Register(effects.TargetSkill,
			"survival", "foraging", "tracking", "stealth", "medicine", "navigation", "perception").
		Register(effects.TargetDerived,
			"max_hp", "initiative", "carry_capacity", "visibility_range").
		Register(effects.TargetMultiplier,
			"travel_speed", "thirst_rate", "hunger_rate", "fatigue_rate", "encounter_rate", "recovery_rate")
}
