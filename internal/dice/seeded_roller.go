package dice

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// seededRoller implements Roller with a single seeded math/rand source
type seededRoller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededRoller creates a roller whose draws replay exactly for a given seed
func NewSeededRoller(seed int64) Roller {
	return &seededRoller{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// NewRandomRoller creates a roller seeded from the clock, for sessions
// that do not need replay
func NewRandomRoller() Roller {
	return NewSeededRoller(time.Now().UnixNano())
}

// Roll implements Roller.Roll
func (r *seededRoller) Roll(count, sides, bonus int) (*RollResult, error) {
	if count <= 0 {
		return nil, fmt.Errorf("dice count must be positive, got %d", count)
	}
	if sides <= 0 {
		return nil, fmt.Errorf("dice sides must be positive, got %d", sides)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rolls := make([]int, count)
	rawTotal := 0
	for i := range rolls {
		rolls[i] = r.rng.Intn(sides) + 1
		rawTotal += rolls[i]
	}

	return &RollResult{
		Total:    rawTotal + bonus,
		Rolls:    rolls,
		Bonus:    bonus,
		Count:    count,
		Sides:    sides,
		RawTotal: rawTotal,
	}, nil
}

// Chance implements Roller.Chance
func (r *seededRoller) Chance(probability float64) bool {
	if probability <= 0 {
		return false
	}
	if probability >= 1 {
		return true
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64() < probability
}

// Between implements Roller.Between
func (r *seededRoller) Between(low, high int) int {
	if high <= low {
		return low
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return low + r.rng.Intn(high-low+1)
}

// Float implements Roller.Float
func (r *seededRoller) Float() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}
