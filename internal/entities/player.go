package entities

import "time"

// RealmProgress is the player's position on the realm ladder
type RealmProgress struct {
	Tier           int   `json:"realmIndex"`
	Level          int   `json:"level"`
	Cultivation    int64 `json:"cultivation"`
	CultivationMax int64 `json:"cultivationMax"`
	FailCount      int   `json:"breakthroughFailCount"`
}

// Resources are the spendable balances. All are non-negative.
type Resources struct {
	Currency      int64 `json:"currency"`
	Comprehension int64 `json:"comprehension"`
	Experience    int64 `json:"experience"`
	EnhanceStones int64 `json:"enhanceStones"`
}

// Equipped maps each slot to the item worn there
type Equipped map[Slot]*Equipment

// SkillSet holds learned skills
type SkillSet struct {
	Active  []*Skill `json:"active"`
	Passive []*Skill `json:"passive"`
}

// Inventory holds unequipped items. Each list is bounded by Capacity
// independently.
type Inventory struct {
	Equipment  []*Equipment `json:"equipments"`
	SkillBooks []*Skill     `json:"skillBooks"`
	Capacity   int          `json:"maxSize"`
}

// BattleStats tracks the combat loop
type BattleStats struct {
	MapIndex     int   `json:"currentMap"`
	AutoMeditate bool  `json:"autoMeditate"`
	AutoBattle   bool  `json:"autoBattle"`
	Kills        int64 `json:"killCount"`
	Deaths       int64 `json:"deathCount"`
	TotalDamage  int64 `json:"totalDamage"`
}

// OfflineState is the bookkeeping for offline projection
type OfflineState struct {
	LastOnline      time.Time `json:"lastOnlineTime"`
	MaxOfflineHours float64   `json:"maxOfflineHours"`
}

// Player is the whole persisted aggregate
type Player struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	CreatedAt  time.Time     `json:"createdAt"`
	Realm      RealmProgress `json:"realm"`
	Attributes Attributes    `json:"attributes"`
	Resources  Resources     `json:"resources"`
	Equipped   Equipped      `json:"equipment"`
	Skills     SkillSet      `json:"skills"`
	Inventory  Inventory     `json:"inventory"`
	Battle     BattleStats   `json:"battle"`
	Offline    OfflineState  `json:"offline"`
}

// TotalAttributes is base attributes plus every equipped bonus plus every
// passive skill bonus.
func (p *Player) TotalAttributes() Attributes {
	total := p.Attributes
	for _, slot := range AllSlots {
		if eq := p.Equipped[slot]; eq != nil {
			total = total.Add(eq.Bonus)
		}
	}
	for _, skill := range p.Skills.Passive {
		if skill != nil {
			total = total.Add(skill.Passive)
		}
	}
	return total
}

// Clone returns a deep copy of p, safe to hand to another goroutine. Nil
// containers stay nil.
func (p *Player) Clone() *Player {
	if p == nil {
		return nil
	}
	out := *p

	if p.Equipped != nil {
		out.Equipped = make(Equipped, len(p.Equipped))
		for slot, eq := range p.Equipped {
			out.Equipped[slot] = eq.Clone()
		}
	}
	out.Skills.Active = cloneSkills(p.Skills.Active)
	out.Skills.Passive = cloneSkills(p.Skills.Passive)
	out.Inventory.SkillBooks = cloneSkills(p.Inventory.SkillBooks)

	if p.Inventory.Equipment != nil {
		out.Inventory.Equipment = make([]*Equipment, len(p.Inventory.Equipment))
		for i, eq := range p.Inventory.Equipment {
			out.Inventory.Equipment[i] = eq.Clone()
		}
	}
	return &out
}

func cloneSkills(in []*Skill) []*Skill {
	if in == nil {
		return nil
	}
	out := make([]*Skill, len(in))
	for i, s := range in {
		out[i] = s.Clone()
	}
	return out
}

// AddEquipment appends eq unless the list is full
func (inv *Inventory) AddEquipment(eq *Equipment) bool {
	if len(inv.Equipment) >= inv.Capacity {
		return false
	}
	inv.Equipment = append(inv.Equipment, eq)
	return true
}

// AddSkillBook appends s unless the list is full
func (inv *Inventory) AddSkillBook(s *Skill) bool {
	if len(inv.SkillBooks) >= inv.Capacity {
		return false
	}
	inv.SkillBooks = append(inv.SkillBooks, s)
	return true
}

// FindEquipment returns the inventory item with id
func (inv *Inventory) FindEquipment(id string) (*Equipment, bool) {
	for _, eq := range inv.Equipment {
		if eq.ID == id {
			return eq, true
		}
	}
	return nil, false
}

// TakeEquipment removes and returns the inventory item with id
func (inv *Inventory) TakeEquipment(id string) (*Equipment, bool) {
	for i, eq := range inv.Equipment {
		if eq.ID == id {
			inv.Equipment = append(inv.Equipment[:i], inv.Equipment[i+1:]...)
			return eq, true
		}
	}
	return nil, false
}

// TakeSkillBook removes and returns the skill book with id
func (inv *Inventory) TakeSkillBook(id string) (*Skill, bool) {
	for i, s := range inv.SkillBooks {
		if s.ID == id {
			inv.SkillBooks = append(inv.SkillBooks[:i], inv.SkillBooks[i+1:]...)
			return s, true
		}
	}
	return nil, false
}

// FindEquipment looks for id in the inventory first, then in the equipped
// slots.
func (p *Player) FindEquipment(id string) (*Equipment, bool) {
	if eq, ok := p.Inventory.FindEquipment(id); ok {
		return eq, true
	}
	for _, slot := range AllSlots {
		if eq := p.Equipped[slot]; eq != nil && eq.ID == id {
			return eq, true
		}
	}
	return nil, false
}
