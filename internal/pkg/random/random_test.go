package random_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"pgregory.net/rapid"

	"github.com/KirkDiggler/cultivation-sim/internal/pkg/random"
)

type RandomTestSuite struct {
	suite.Suite
}

func TestRandomSuite(t *testing.T) {
	suite.Run(t, new(RandomTestSuite))
}

func (s *RandomTestSuite) TestIntRange() {
	testCases := []struct {
		name     string
		u        float64
		lo, hi   int64
		expected int64
	}{
		{"bottom", 0, 10, 20, 10},
		{"top", 0.9999, 10, 20, 20},
		{"middle", 0.5, 0, 1, 1},
		{"degenerate", 0.7, 5, 5, 5},
		{"inverted", 0.7, 5, 3, 5},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, random.IntRange(random.NewScripted(tc.u), tc.lo, tc.hi))
		})
	}
}

func (s *RandomTestSuite) TestScriptedCycles() {
	src := random.NewScripted(0.1, 0.9)
	s.Equal(0.1, src.Float64())
	s.Equal(0.9, src.Float64())
	s.Equal(0.1, src.Float64())
	s.Equal(8, src.IntN(9))
}

func (s *RandomTestSuite) TestChance() {
	s.True(random.Chance(random.NewScripted(0.29), 0.3))
	s.False(random.Chance(random.NewScripted(0.3), 0.3))
	s.False(random.Chance(random.NewScripted(0), 0))
}

func (s *RandomTestSuite) TestPick() {
	s.Equal("c", random.Pick(random.NewScripted(0.99), []string{"a", "b", "c"}))
	s.Equal("", random.Pick(random.NewScripted(0.5), []string{}))
}

func (s *RandomTestSuite) TestSeededIsReproducible() {
	a := random.NewSeeded(42)
	b := random.NewSeeded(42)
	for i := 0; i < 20; i++ {
		s.Equal(a.Float64(), b.Float64())
		s.Equal(a.IntN(13), b.IntN(13))
	}
}

type stubRoller struct {
	value int
	err   error
	sizes []int
}

func (r *stubRoller) Roll(size int) (int, error) {
	r.sizes = append(r.sizes, size)
	return r.value, r.err
}

func (r *stubRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, count)
	for i := range out {
		out[i] = r.value
	}
	return out, r.err
}

func (s *RandomTestSuite) TestDiceUsesRoller() {
	roller := &stubRoller{value: 4}
	src := random.NewDice(roller)

	s.Equal(3, src.IntN(6))
	s.Equal(0, src.IntN(1))
	s.Equal([]int{6}, roller.sizes)
	s.InDelta(3.0/(1<<30), src.Float64(), 1e-15)
}

func (s *RandomTestSuite) TestDiceFallsBackOnError() {
	src := random.NewDice(&stubRoller{err: errors.New("bad size")})
	v := src.IntN(6)
	s.GreaterOrEqual(v, 0)
	s.Less(v, 6)
}

func (s *RandomTestSuite) TestDiceWithoutRoller() {
	src := random.NewDice(nil)
	for i := 0; i < 50; i++ {
		f := src.Float64()
		s.GreaterOrEqual(f, 0.0)
		s.Less(f, 1.0)
	}
}

func TestIntRangeStaysInBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lo := rapid.Int64Range(-1000, 1000).Draw(t, "lo")
		span := rapid.Int64Range(0, 1000).Draw(t, "span")
		u := rapid.Float64Range(0, 0.999999).Draw(t, "u")

		v := random.IntRange(random.NewScripted(u), lo, lo+span)
		if v < lo || v > lo+span {
			t.Fatalf("IntRange(%d,%d) = %d out of bounds", lo, lo+span, v)
		}
	})
}
