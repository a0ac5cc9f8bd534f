package entities_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/cultivation-sim/internal/entities"
)

type PlayerTestSuite struct {
	suite.Suite
	player *entities.Player
}

func TestPlayerSuite(t *testing.T) {
	suite.Run(t, new(PlayerTestSuite))
}

func (s *PlayerTestSuite) SetupTest() {
	s.player = &entities.Player{
		ID:         "player_1",
		Attributes: entities.Attributes{HP: 80, HPMax: 80, Attack: 8, Defense: 4, CritRate: 0.05},
		Equipped: entities.Equipped{
			entities.SlotWeapon: {ID: "eq_1", Slot: entities.SlotWeapon, Bonus: entities.Attributes{Attack: 5, CritRate: 0.04}},
			entities.SlotArmor:  nil,
		},
		Skills: entities.SkillSet{
			Passive: []*entities.Skill{{ID: "sk_1", Type: entities.SkillPassive, Passive: entities.Attributes{Defense: 15}}},
		},
		Inventory: entities.Inventory{Capacity: 2},
	}
}

func (s *PlayerTestSuite) TestTotalAttributes() {
	total := s.player.TotalAttributes()

	s.Equal(13.0, total.Attack)
	s.Equal(19.0, total.Defense)
	s.InDelta(0.09, total.CritRate, 1e-9)
	s.Equal(80.0, total.HP)
	s.Equal(8.0, s.player.Attributes.Attack, "base must not change")
}

func (s *PlayerTestSuite) TestCloneIsDeep() {
	s.player.Inventory.Equipment = []*entities.Equipment{{ID: "eq_2", EnhanceLevel: 1}}

	clone := s.player.Clone()
	clone.Equipped[entities.SlotWeapon].Bonus.Attack = 99
	clone.Inventory.Equipment[0].EnhanceLevel = 7
	clone.Skills.Passive[0].Level = 3

	s.Equal(5.0, s.player.Equipped[entities.SlotWeapon].Bonus.Attack)
	s.Equal(1, s.player.Inventory.Equipment[0].EnhanceLevel)
	s.Equal(0, s.player.Skills.Passive[0].Level)
	s.Nil(clone.Equipped[entities.SlotArmor])
}

func (s *PlayerTestSuite) TestCloneKeepsNilContainers() {
	bare := &entities.Player{ID: "player_2"}

	clone := bare.Clone()

	s.Equal(bare, clone)
	s.Nil(clone.Equipped)
	s.Nil(clone.Skills.Active)
	s.Nil(clone.Inventory.Equipment)
	s.Nil(clone.Inventory.SkillBooks)
}

func (s *PlayerTestSuite) TestInventoryCapacity() {
	s.True(s.player.Inventory.AddEquipment(&entities.Equipment{ID: "a"}))
	s.True(s.player.Inventory.AddEquipment(&entities.Equipment{ID: "b"}))
	s.False(s.player.Inventory.AddEquipment(&entities.Equipment{ID: "c"}))
	s.Len(s.player.Inventory.Equipment, 2)

	eq, ok := s.player.Inventory.TakeEquipment("a")
	s.Require().True(ok)
	s.Equal("a", eq.ID)
	s.Len(s.player.Inventory.Equipment, 1)

	_, ok = s.player.Inventory.TakeEquipment("a")
	s.False(ok)
}

func (s *PlayerTestSuite) TestFindEquipmentChecksSlots() {
	eq, ok := s.player.FindEquipment("eq_1")
	s.Require().True(ok)
	s.Equal(entities.SlotWeapon, eq.Slot)

	_, ok = s.player.FindEquipment("missing")
	s.False(ok)
}

func (s *PlayerTestSuite) TestSnapshotJSON() {
	s.player.Equipped[entities.SlotWeapon].Rarity = entities.RarityInnateTreasure
	s.player.Equipped[entities.SlotWeapon].Quality = entities.QualityPerfect

	data, err := json.Marshal(s.player)
	s.Require().NoError(err)
	s.Contains(string(data), `"rarity":"innate_treasure"`)
	s.Contains(string(data), `"quality":"perfect"`)

	var decoded entities.Player
	s.Require().NoError(json.Unmarshal(data, &decoded))
	s.Equal(entities.RarityInnateTreasure, decoded.Equipped[entities.SlotWeapon].Rarity)
	s.Equal(entities.QualityPerfect, decoded.Equipped[entities.SlotWeapon].Quality)
}

func (s *PlayerTestSuite) TestMissingQualityDecodesUnset() {
	var eq entities.Equipment
	s.Require().NoError(json.Unmarshal([]byte(`{"id":"old","rarity":"dark"}`), &eq))
	s.Equal(entities.QualityUnset, eq.Quality)
	s.Equal(entities.RarityDark, eq.Rarity)

	s.Error(json.Unmarshal([]byte(`{"rarity":"shiny"}`), &eq))
}

func (s *PlayerTestSuite) TestMapUnlocked() {
	m := entities.Map{RequireTier: 1, RequireLevel: 5}

	s.False(m.Unlocked(0, 9))
	s.False(m.Unlocked(1, 4))
	s.True(m.Unlocked(1, 5))
	s.True(m.Unlocked(2, 1))
}

func (s *PlayerTestSuite) TestScaleFloorSkipsAbsentStats() {
	a := entities.Attributes{Attack: 21, Speed: 3}
	a.ScaleFloor(1.05, entities.StatAttack, entities.StatDefense, entities.StatSpeed)

	s.Equal(22.0, a.Attack)
	s.Equal(0.0, a.Defense)
	s.Equal(3.0, a.Speed)
}
