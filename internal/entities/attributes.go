package entities

import "math"

// Stat names one component of an Attributes vector
type Stat string

// Stats
const (
	StatHP         Stat = "hp"
	StatHPMax      Stat = "hpMax"
	StatMP         Stat = "mp"
	StatMPMax      Stat = "mpMax"
	StatAttack     Stat = "attack"
	StatDefense    Stat = "defense"
	StatSpeed      Stat = "speed"
	StatCritRate   Stat = "critRate"
	StatCritDamage Stat = "critDamage"
	StatDodge      Stat = "dodge"
	StatBlock      Stat = "block"
)

// AllStats lists every stat in display order
var AllStats = []Stat{
	StatHP, StatHPMax, StatMP, StatMPMax, StatAttack, StatDefense,
	StatSpeed, StatCritRate, StatCritDamage, StatDodge, StatBlock,
}

// Attributes is the fixed-shape stat vector shared by players, monsters,
// equipment bonuses and passive skills. A zero component means "absent".
type Attributes struct {
	HP         float64 `json:"hp" yaml:"hp"`
	HPMax      float64 `json:"hpMax" yaml:"hp_max"`
	MP         float64 `json:"mp" yaml:"mp"`
	MPMax      float64 `json:"mpMax" yaml:"mp_max"`
	Attack     float64 `json:"attack" yaml:"attack"`
	Defense    float64 `json:"defense" yaml:"defense"`
	Speed      float64 `json:"speed" yaml:"speed"`
	CritRate   float64 `json:"critRate" yaml:"crit_rate"`
	CritDamage float64 `json:"critDamage" yaml:"crit_damage"`
	Dodge      float64 `json:"dodge" yaml:"dodge"`
	Block      float64 `json:"block" yaml:"block"`
}

func (a *Attributes) field(s Stat) *float64 {
	switch s {
	case StatHP:
		return &a.HP
	case StatHPMax:
		return &a.HPMax
	case StatMP:
		return &a.MP
	case StatMPMax:
		return &a.MPMax
	case StatAttack:
		return &a.Attack
	case StatDefense:
		return &a.Defense
	case StatSpeed:
		return &a.Speed
	case StatCritRate:
		return &a.CritRate
	case StatCritDamage:
		return &a.CritDamage
	case StatDodge:
		return &a.Dodge
	case StatBlock:
		return &a.Block
	default:
		return nil
	}
}

// Get returns the value of s, or 0 for an unknown stat
func (a Attributes) Get(s Stat) float64 {
	if p := a.field(s); p != nil {
		return *p
	}
	return 0
}

// Set assigns v to s. Unknown stats are ignored.
func (a *Attributes) Set(s Stat, v float64) {
	if p := a.field(s); p != nil {
		*p = v
	}
}

// Add returns the component-wise sum of a and o
func (a Attributes) Add(o Attributes) Attributes {
	out := a
	for _, s := range AllStats {
		out.Set(s, a.Get(s)+o.Get(s))
	}
	return out
}

// ScaleFloor multiplies each listed stat by factor and floors the result.
// Absent (zero) stats stay absent.
func (a *Attributes) ScaleFloor(factor float64, stats ...Stat) {
	for _, s := range stats {
		if v := a.Get(s); v != 0 {
			a.Set(s, math.Floor(v*factor))
		}
	}
}

// NonZero lists the stats that carry a value
func (a Attributes) NonZero() []Stat {
	var out []Stat
	for _, s := range AllStats {
		if a.Get(s) != 0 {
			out = append(out, s)
		}
	}
	return out
}
