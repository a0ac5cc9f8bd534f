// Package rarity implements the weighted draws behind every rarity and
// quality roll.
package rarity

import (
	"math"

	"github.com/KirkDiggler/cultivation-sim/internal/entities"
	"github.com/KirkDiggler/cultivation-sim/internal/pkg/random"
)

// Entry is one weighted key
type Entry[K any] struct {
	Key    K
	Weight float64
}

// Table is an ordered weight table. Order is significant: skew adjustment
// and the fallback both depend on position.
type Table[K any] []Entry[K]

// NewTable zips keys with weights. Extra keys get weight 0.
func NewTable[K any](keys []K, weights []float64) Table[K] {
	t := make(Table[K], len(keys))
	for i, k := range keys {
		t[i].Key = k
		if i < len(weights) {
			t[i].Weight = weights[i]
		}
	}
	return t
}

// Total is the sum of the weights
func (t Table[K]) Total() float64 {
	var total float64
	for _, e := range t {
		total += e.Weight
	}
	return total
}

// Draw picks a key with probability weight/total. A uniform value in
// [0, total) is walked down the table; the first entry that brings it to
// zero or below wins. If rounding leaves it positive after the last entry,
// the first entry is returned. An empty table yields the zero key.
func Draw[K any](src random.Source, t Table[K]) K {
	return draw(src, t, 0)
}

func draw[K any](src random.Source, t Table[K], fallback int) K {
	var zero K
	if len(t) == 0 {
		return zero
	}

	r := src.Float64() * t.Total()
	for _, e := range t {
		r -= e.Weight
		if r <= 0 {
			return e.Key
		}
	}
	return t[fallback].Key
}

// Adjust shifts weight toward the rare end as skew grows. The two most
// common entries lose 5 per skew point with a floor of 1; entries from
// index 4 on gain 2 per skew point; indexes 2 and 3 are unchanged.
func Adjust[K any](t Table[K], skew float64) Table[K] {
	out := make(Table[K], len(t))
	for i, e := range t {
		w := e.Weight
		switch {
		case i < 2:
			w = math.Max(w-skew*5, 1)
		case i > 3:
			w = w + skew*2
		}
		out[i] = Entry[K]{Key: e.Key, Weight: w}
	}
	return out
}

// Select draws from t after applying the skew adjustment
func Select[K any](src random.Source, t Table[K], skew float64) K {
	return Draw(src, Adjust(t, skew))
}

// EquipmentTable builds the equipment rarity table from weights given
// common first.
func EquipmentTable(weights []float64) Table[entities.Rarity] {
	keys := make([]entities.Rarity, entities.RarityCount)
	for i := range keys {
		keys[i] = entities.Rarity(i)
	}
	return NewTable(keys, weights)
}

// SkillTable builds the skill rarity table from weights given lowest first
func SkillTable(weights []float64) Table[entities.SkillRarity] {
	keys := make([]entities.SkillRarity, entities.SkillRarityCount)
	for i := range keys {
		keys[i] = entities.SkillRarity(i)
	}
	return NewTable(keys, weights)
}

// QualityTable builds the quality table from weights given low first
func QualityTable(weights []float64) Table[entities.Quality] {
	return NewTable(entities.AllQualities, weights)
}

// BandTable weights the listed band members by 2^i, i being the position in
// the list, so the last member is the most likely. Only the members can be
// drawn; rarities between them are skipped.
func BandTable(members []entities.Rarity) Table[entities.Rarity] {
	t := make(Table[entities.Rarity], len(members))
	for i, r := range members {
		t[i] = Entry[entities.Rarity]{Key: r, Weight: math.Pow(2, float64(i))}
	}
	return t
}

// SelectInBand draws from BandTable(members). Here the rounding fallback is
// the last member. An empty band yields common.
func SelectInBand(src random.Source, members []entities.Rarity) entities.Rarity {
	if len(members) == 0 {
		return entities.RarityCommon
	}
	t := BandTable(members)
	return draw(src, t, len(t)-1)
}
