package interfaces

//go:generate mockgen -destination=mock/mock_game.go -package=mockinterfaces -source=game.go

// CheckResult is the outcome of a stat-based check rolled by the
// attribute ledger.
type CheckResult struct {
	Success bool
	Margin  int // Roll total minus difficulty class
}

// AttributeLedger is the external character stat store. It owns base
// attribute values; this core only contributes modifiers and asks for
// checks against the combined totals.
type AttributeLedger interface {
	// AddModifier registers a flat stat modifier under a source tag
	AddModifier(statName string, value float64, sourceTag string)

	// RemoveModifiersBySource removes every modifier registered under the tag
	RemoveModifiersBySource(sourceTag string)

	// RollCheck rolls the named stat against a difficulty class
	RollCheck(statName string, difficultyClass, bonus int) (*CheckResult, error)

	// HungerStage, ThirstStage, and FatigueStage expose the character's
	// current survival-need stage names for immunity derivation
	HungerStage(characterID string) string
	ThirstStage(characterID string) string
	FatigueStage(characterID string) string
}

// SurvivalAuthority owns character health and rest state
type SurvivalAuthority interface {
	// ModifyHealth applies a health delta attributed to a source tag
	ModifyHealth(characterID string, delta int, sourceTag string)

	// IsResting reports whether the character is currently sleeping or camping
	IsResting(characterID string) bool
}

// TerrainLookup resolves map context for the party's current position
type TerrainLookup interface {
	// CurrentTerrain returns the terrain type id of the occupied hex
	CurrentTerrain() string

	// CurrentPeriod returns the time-of-day period id
	CurrentPeriod() string
}

// TickScheduler is the slice of the turn scheduler this core calls back
// into: hazards can cost the party extra time.
type TickScheduler interface {
	// ConsumeTicks requests n additional scheduler ticks be spent
	ConsumeTicks(n int)
}
