package mockdice

import (
	"fmt"
	"sync"

	"github.com/KirkDiggler/hexcrawl-survival/internal/dice"
)

// ManualMockRoller implements dice.Roller for testing with predetermined results.
// Chance and Float consume from the float queue; Roll and Between consume
// from the int queue.
type ManualMockRoller struct {
	mu         sync.Mutex
	rolls      []int
	rollIndex  int
	floats     []float64
	floatIndex int
}

// NewManualMockRoller creates a new mock dice roller
func NewManualMockRoller() *ManualMockRoller {
	return &ManualMockRoller{}
}

// SetRolls sets the queue of integer results for Roll and Between
func (m *ManualMockRoller) SetRolls(rolls []int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = rolls
	m.rollIndex = 0
}

// SetFloats sets the queue of results for Float and Chance draws
func (m *ManualMockRoller) SetFloats(floats []float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.floats = floats
	m.floatIndex = 0
}

// QueueFloat appends a single float draw
func (m *ManualMockRoller) QueueFloat(f float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.floats = append(m.floats, f)
}

// QueueRoll appends a single integer result
func (m *ManualMockRoller) QueueRoll(roll int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = append(m.rolls, roll)
}

// Reset clears both queues
func (m *ManualMockRoller) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = nil
	m.rollIndex = 0
	m.floats = nil
	m.floatIndex = 0
}

func (m *ManualMockRoller) nextRoll() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.rollIndex >= len(m.rolls) {
		return 0, fmt.Errorf("mock roller: no rolls queued (asked for roll %d)", m.rollIndex+1)
	}
	roll := m.rolls[m.rollIndex]
	m.rollIndex++
	return roll, nil
}

func (m *ManualMockRoller) nextFloat() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.floatIndex >= len(m.floats) {
		// Out-of-queue draws fail their chance checks, which keeps
		// tests deterministic when a path draws more than expected.
		return 1.0
	}
	f := m.floats[m.floatIndex]
	m.floatIndex++
	return f
}

// Roll implements dice.Roller using queued integers as per-die results
func (m *ManualMockRoller) Roll(count, sides, bonus int) (*dice.RollResult, error) {
	if count <= 0 || sides <= 0 {
		return nil, fmt.Errorf("invalid roll %dd%d", count, sides)
	}

	rolls := make([]int, count)
	rawTotal := 0
	for i := range rolls {
		roll, err := m.nextRoll()
		if err != nil {
			return nil, err
		}
		rolls[i] = roll
		rawTotal += roll
	}

	return &dice.RollResult{
		Total:    rawTotal + bonus,
		Rolls:    rolls,
		Bonus:    bonus,
		Count:    count,
		Sides:    sides,
		RawTotal: rawTotal,
	}, nil
}

// Chance implements dice.Roller.Chance against the float queue
func (m *ManualMockRoller) Chance(probability float64) bool {
	if probability <= 0 {
		return false
	}
	if probability >= 1 {
		return true
	}
	return m.nextFloat() < probability
}

// Between implements dice.Roller.Between using the int queue, clamped to range
func (m *ManualMockRoller) Between(low, high int) int {
	if high <= low {
		return low
	}
	roll, err := m.nextRoll()
	if err != nil {
		return low
	}
	if roll < low {
		return low
	}
	if roll > high {
		return high
	}
	return roll
}

// Float implements dice.Roller.Float against the float queue
func (m *ManualMockRoller) Float() float64 {
	return m.nextFloat()
}
