package entities

import (
	"fmt"
)

// Slot is a body location that holds at most one piece of equipment
type Slot string

// Equipment slots
const (
	SlotWeapon   Slot = "weapon"
	SlotArmor    Slot = "armor"
	SlotHelmet   Slot = "helmet"
	SlotBoots    Slot = "boots"
	SlotRing     Slot = "ring"
	SlotNecklace Slot = "necklace"
)

// AllSlots lists the slots in display order
var AllSlots = []Slot{SlotWeapon, SlotArmor, SlotHelmet, SlotBoots, SlotRing, SlotNecklace}

// Valid reports whether s is a known slot
func (s Slot) Valid() bool {
	for _, known := range AllSlots {
		if s == known {
			return true
		}
	}
	return false
}

// Rarity is the ordered equipment rarity. Higher is rarer.
type Rarity int

// Equipment rarities, lowest first
const (
	RarityCommon Rarity = iota
	RarityYellow
	RarityDark
	RarityEarth
	RarityHeaven
	RarityImmortal
	RarityArtifact
	RarityPostnatalTreasure
	RarityPostnatalSupreme
	RarityInnateTreasure
	RarityInnateSupreme
	RarityChaosTreasure
	RarityChaosSupreme
)

// RarityCount is the number of equipment rarities
const RarityCount = int(RarityChaosSupreme) + 1

var rarityNames = [RarityCount]string{
	"common", "yellow", "dark", "earth", "heaven", "immortal", "artifact",
	"postnatal_treasure", "postnatal_supreme", "innate_treasure", "innate_supreme",
	"chaos_treasure", "chaos_supreme",
}

// String returns the rarity name
func (r Rarity) String() string {
	if r < 0 || int(r) >= RarityCount {
		return fmt.Sprintf("rarity(%d)", int(r))
	}
	return rarityNames[r]
}

// MarshalText implements encoding.TextMarshaler
func (r Rarity) MarshalText() ([]byte, error) {
	if r < 0 || int(r) >= RarityCount {
		return nil, fmt.Errorf("unknown rarity %d", int(r))
	}
	return []byte(rarityNames[r]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (r *Rarity) UnmarshalText(text []byte) error {
	for i, name := range rarityNames {
		if name == string(text) {
			*r = Rarity(i)
			return nil
		}
	}
	return fmt.Errorf("unknown rarity %q", string(text))
}

// Quality grades equipment within a rarity. QualityUnset only appears in
// snapshots written before quality existed.
type Quality int

// Qualities, lowest first
const (
	QualityUnset Quality = iota
	QualityLow
	QualityMedium
	QualityHigh
	QualityPerfect
)

// AllQualities lists the real qualities, lowest first
var AllQualities = []Quality{QualityLow, QualityMedium, QualityHigh, QualityPerfect}

var qualityNames = map[Quality]string{
	QualityUnset:   "",
	QualityLow:     "low",
	QualityMedium:  "medium",
	QualityHigh:    "high",
	QualityPerfect: "perfect",
}

// String returns the quality name
func (q Quality) String() string {
	if name, ok := qualityNames[q]; ok {
		return name
	}
	return fmt.Sprintf("quality(%d)", int(q))
}

// MarshalText implements encoding.TextMarshaler
func (q Quality) MarshalText() ([]byte, error) {
	name, ok := qualityNames[q]
	if !ok {
		return nil, fmt.Errorf("unknown quality %d", int(q))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (q *Quality) UnmarshalText(text []byte) error {
	for k, name := range qualityNames {
		if name == string(text) {
			*q = k
			return nil
		}
	}
	return fmt.Errorf("unknown quality %q", string(text))
}

// SkillRarity is the ordered skill rarity
type SkillRarity int

// Skill rarities, lowest first
const (
	SkillRarityYellow SkillRarity = iota
	SkillRarityDark
	SkillRarityEarth
	SkillRarityHeaven
	SkillRarityImmortal
	SkillRarityGod
)

// SkillRarityCount is the number of skill rarities
const SkillRarityCount = int(SkillRarityGod) + 1

var skillRarityNames = [SkillRarityCount]string{"yellow", "dark", "earth", "heaven", "immortal", "god"}

// String returns the rarity name
func (r SkillRarity) String() string {
	if r < 0 || int(r) >= SkillRarityCount {
		return fmt.Sprintf("skill_rarity(%d)", int(r))
	}
	return skillRarityNames[r]
}

// MarshalText implements encoding.TextMarshaler
func (r SkillRarity) MarshalText() ([]byte, error) {
	if r < 0 || int(r) >= SkillRarityCount {
		return nil, fmt.Errorf("unknown skill rarity %d", int(r))
	}
	return []byte(skillRarityNames[r]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (r *SkillRarity) UnmarshalText(text []byte) error {
	for i, name := range skillRarityNames {
		if name == string(text) {
			*r = SkillRarity(i)
			return nil
		}
	}
	return fmt.Errorf("unknown skill rarity %q", string(text))
}

// SkillType separates skills cast in combat from always-on bonuses
type SkillType string

// Skill types
const (
	SkillActive  SkillType = "active"
	SkillPassive SkillType = "passive"
)

// Equipment is a generated item. Identity fields never change after
// generation; EnhanceLevel and Bonus move with enhancement.
type Equipment struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Slot         Slot       `json:"slot"`
	Rarity       Rarity     `json:"rarity"`
	Quality      Quality    `json:"quality"`
	Level        int        `json:"level"`
	RequireTier  int        `json:"requireRealm"`
	RequireLevel int        `json:"requireRealmLevel"`
	Bonus        Attributes `json:"attributes"`
	EnhanceLevel int        `json:"enhanceLevel"`
}

// Clone returns a copy of e
func (e *Equipment) Clone() *Equipment {
	if e == nil {
		return nil
	}
	out := *e
	return &out
}

// SkillEffect is what an active skill does when cast
type SkillEffect struct {
	Kind  string  `json:"type"`
	Value float64 `json:"value"`
}

// Effect kinds
const (
	EffectDamage = "damage"
	EffectBuff   = "buff"
)

// LearnCost is paid once to move a skill book into the skill set
type LearnCost struct {
	Currency int64 `json:"currency"`
}

// UpgradeCost is paid per skill level
type UpgradeCost struct {
	Comprehension int64 `json:"comprehension"`
	Currency      int64 `json:"currency"`
}

// Skill is a generated skill, either sitting in the inventory as a book or
// learned into the active/passive lists.
type Skill struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Type        SkillType   `json:"type"`
	Rarity      SkillRarity `json:"rarity"`
	Level       int         `json:"level"`
	MaxLevel    int         `json:"maxLevel"`
	ManaCost    float64     `json:"manaCost,omitempty"`
	CooldownMS  int64       `json:"cooldown,omitempty"`
	Effect      SkillEffect `json:"effect"`
	Passive     Attributes  `json:"passive"`
	LearnCost   LearnCost   `json:"learnCost"`
	UpgradeCost UpgradeCost `json:"upgradeCost"`
}

// Clone returns a copy of s
func (s *Skill) Clone() *Skill {
	if s == nil {
		return nil
	}
	out := *s
	return &out
}
