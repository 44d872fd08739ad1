package dice

//go:generate mockgen -destination=mock/mock_roller.go -package=mockdice -source=roller.go

// Roller is the single pseudorandom stream for a play session.
// Every probabilistic draw in the simulation core goes through one
// Roller instance so that replaying a seed reproduces identical
// outcomes; components must never create their own generators.
type Roller interface {
	// Roll rolls a number of dice with the given sides and adds a bonus
	Roll(count, sides, bonus int) (*RollResult, error)

	// Chance draws uniformly in [0,1) and reports whether the draw
	// fell below probability. Probabilities <= 0 never succeed,
	// >= 1 always succeed.
	Chance(probability float64) bool

	// Between returns a uniform integer in [low, high] inclusive
	Between(low, high int) int

	// Float returns a uniform float64 in [0,1)
	Float() float64
}

// RollResult holds the outcome of a dice roll
type RollResult struct {
	Total    int
	Rolls    []int
	Bonus    int
	Count    int
	Sides    int
	RawTotal int
}
