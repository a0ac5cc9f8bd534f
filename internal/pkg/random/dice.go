package random

import (
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"
)

// floatDieSize is the face count used to derive a float from a single die
const floatDieSize = 1 << 30

// Dice is a Source that rolls rpg-toolkit dice. With a nil Roller each draw
// goes through dice.NewRoll and the toolkit's default crypto roller.
type Dice struct {
	Roller dice.Roller
}

// NewDice creates a dice backed source
func NewDice(roller dice.Roller) *Dice {
	return &Dice{Roller: roller}
}

// Float64 implements Source
func (d *Dice) Float64() float64 {
	return float64(d.roll(floatDieSize)-1) / floatDieSize
}

// IntN implements Source
func (d *Dice) IntN(n int) int {
	if n <= 1 {
		return 0
	}
	return d.roll(n) - 1
}

// roll returns a value in [1, size]
func (d *Dice) roll(size int) int {
	if d.Roller != nil {
		v, err := d.Roller.Roll(size)
		if err == nil {
			return v
		}
		slog.Warn("dice roller failed, using toolkit roll", "size", size, "error", err)
	}

	r, err := dice.NewRoll(1, size)
	if err != nil {
		slog.Error("failed to create dice roll", "size", size, "error", err)
		return 1
	}
	return r.GetValue()
}
