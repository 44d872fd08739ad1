package effects

import (
	"time"
)

// Category classifies an effect definition
type Category string

const (
	CategoryTalent        Category = "talent"
	CategoryDisease       Category = "disease"
	CategoryEnvironmental Category = "environmental"
	CategoryBuff          Category = "buff"
	CategoryDebuff        Category = "debuff"
	CategoryEquipment     Category = "equipment"
	CategoryStatus        Category = "status"
)

// DurationType represents different duration types
type DurationType string

const (
	DurationPermanent DurationType = "permanent"
	DurationTurns     DurationType = "turns"
	DurationDays      DurationType = "days"
	DurationInstant   DurationType = "instant"
)

// StackingMode defines how repeated applications of an effect combine
type StackingMode string

const (
	StackingNone    StackingMode = "none"    // Second application is rejected
	StackingReplace StackingMode = "replace" // New instance replaces the old
	StackingStack   StackingMode = "stack"   // Stack count grows up to MaxStacks
	StackingRefresh StackingMode = "refresh" // Duration resets, stack count stays 1
)

// ModifierTarget represents the kind of value an effect modifies
type ModifierTarget string

const (
	TargetStat       ModifierTarget = "stat"
	TargetSkill      ModifierTarget = "skill"
	TargetDerived    ModifierTarget = "derived"
	TargetMultiplier ModifierTarget = "multiplier"
)

// ModifierKind distinguishes flat offsets from percentage scaling
type ModifierKind string

const (
	KindFlat       ModifierKind = "flat"
	KindPercentage ModifierKind = "percentage"
)

// TriggerAction is what fires when a trigger's probability draw succeeds
type TriggerAction string

const (
	ActionDamage          TriggerAction = "damage"
	ActionHeal            TriggerAction = "heal"
	ActionApplyEffect     TriggerAction = "apply_effect"
	ActionRemoveEffect    TriggerAction = "remove_effect"
	ActionGrantXP         TriggerAction = "grant_xp"
	ActionBonusInitiative TriggerAction = "bonus_initiative"
	ActionReroll          TriggerAction = "reroll"
	ActionCustom          TriggerAction = "custom"
)

// EventExpire is the trigger event fired just before an instance is
// destroyed by duration expiry
const EventExpire = "on_expire"

// Modifier represents a single modification an effect makes
type Modifier struct {
	Target  ModifierTarget `json:"target"`
	Name    string         `json:"name"`
	Kind    ModifierKind   `json:"kind"`
	Value   float64        `json:"value"`
	Context string         `json:"context,omitempty"` // Optional situational tag, e.g. "night"
}

// Trigger represents an event-driven action on an effect definition
type Trigger struct {
	Event       string        `json:"event"`
	Action      TriggerAction `json:"action"`
	Value       float64       `json:"value,omitempty"`
	Target      string        `json:"target,omitempty"` // Effect id for apply/remove, payload name for custom
	Probability float64       `json:"probability"`
}

// Conditions gate effect application against other active effects
type Conditions struct {
	Requires   []string `json:"requires,omitempty"`
	Blocks     []string `json:"blocks,omitempty"`
	Immunities []string `json:"immunities,omitempty"`
}

// Definition is an immutable effect catalog entry. Never mutated after load.
type Definition struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Description   string       `json:"description,omitempty"`
	Category      Category     `json:"category"`
	Duration      DurationType `json:"duration"`
	DurationValue int          `json:"duration_value,omitempty"`
	Stacking      StackingMode `json:"stacking"`
	MaxStacks     int          `json:"max_stacks,omitempty"`
	Modifiers     []Modifier   `json:"modifiers,omitempty"`
	Triggers      []Trigger    `json:"triggers,omitempty"`
	Conditions    Conditions   `json:"conditions"`
	Tags          []string     `json:"tags,omitempty"`
}

// HasTag reports whether the definition carries the given tag
func (d *Definition) HasTag(tag string) bool {
	for _, t := range d.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ActiveEffect is a mutable per-character instance of a definition
type ActiveEffect struct {
	ID        string    `json:"id"`
	EffectID  string    `json:"effect_id"`
	Source    string    `json:"source"`
	Remaining int       `json:"remaining"` // Ticks or days left; -1 for permanent
	Stacks    int       `json:"stacks"`
	AppliedAt time.Time `json:"applied_at"`
}

// IsPermanent reports whether the instance never expires on its own
func (a *ActiveEffect) IsPermanent() bool {
	return a.Remaining < 0
}
