package combat

import "math/rand"

// Roller produces attack rolls. The resolver takes the interface so
// tests can pin outcomes.
type Roller interface {
	Roll() int
}

// Dice rolls a fair n-sided die from a seeded source, yielding values
// in [1, sides].
type Dice struct {
	sides int
	rng   *rand.Rand
}

// NewDice creates a die with the given number of sides. The same seed
// always produces the same roll sequence.
func NewDice(sides int, seed int64) *Dice {
	if sides < 1 {
		sides = 1
	}
	return &Dice{
		sides: sides,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// Roll returns the next die result.
func (d *Dice) Roll() int {
	return d.rng.Intn(d.sides) + 1
}

// FixedRoller always returns the same value. Useful for deterministic
// combat assertions.
type FixedRoller int

// Roll returns the fixed value.
func (f FixedRoller) Roll() int {
	return int(f)
}
