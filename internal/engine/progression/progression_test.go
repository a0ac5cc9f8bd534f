package progression_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"pgregory.net/rapid"

	"github.com/KirkDiggler/cultivation-sim/internal/config"
	"github.com/KirkDiggler/cultivation-sim/internal/engine/combat"
	"github.com/KirkDiggler/cultivation-sim/internal/engine/loot"
	"github.com/KirkDiggler/cultivation-sim/internal/engine/progression"
	"github.com/KirkDiggler/cultivation-sim/internal/entities"
	"github.com/KirkDiggler/cultivation-sim/internal/pkg/idgen"
	"github.com/KirkDiggler/cultivation-sim/internal/pkg/random"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newLedger(game *config.Game, src random.Source) (*progression.Ledger, error) {
	gen, err := loot.NewGenerator(&loot.Config{
		Loot:   game.Loot,
		IDs:    idgen.NewSequential("t"),
		Random: src,
	})
	if err != nil {
		return nil, err
	}
	return progression.NewLedger(&progression.Config{Game: game, Loot: gen, Random: src})
}

type ProgressionTestSuite struct {
	suite.Suite
	game   *config.Game
	player *entities.Player
}

func TestProgressionSuite(t *testing.T) {
	suite.Run(t, new(ProgressionTestSuite))
}

func (s *ProgressionTestSuite) SetupTest() {
	game, err := config.DefaultGame()
	s.Require().NoError(err)
	s.game = game
	s.player = s.ledger(random.NewScripted(0)).NewPlayer("player_1", testNow)
}

func (s *ProgressionTestSuite) ledger(src random.Source) *progression.Ledger {
	l, err := newLedger(s.game, src)
	s.Require().NoError(err)
	return l
}

func (s *ProgressionTestSuite) monster(id string) *entities.Monster {
	m, ok := s.game.Monster(id)
	s.Require().True(ok, id)
	return m
}

func (s *ProgressionTestSuite) TestNewLedgerValidation() {
	_, err := progression.NewLedger(&progression.Config{})
	s.Require().Error(err)
	s.Contains(err.Error(), "Game")
	s.Contains(err.Error(), "Loot")
	s.Contains(err.Error(), "Random")
}

func (s *ProgressionTestSuite) TestNewPlayer() {
	p := s.player

	s.Equal("player_1", p.ID)
	s.Equal(0, p.Realm.Tier)
	s.Equal(1, p.Realm.Level)
	s.Equal(int64(10000), p.Realm.CultivationMax)
	s.Equal(int64(100), p.Resources.Currency)
	s.Equal(80.0, p.Attributes.HP)
	s.Equal(20.0, p.Attributes.MPMax)
	s.Equal(500, p.Inventory.Capacity)
	s.True(p.Battle.AutoMeditate)
	s.True(p.Battle.AutoBattle)
	s.Equal(testNow, p.Offline.LastOnline)
	s.Equal(24.0, p.Offline.MaxOfflineHours)
}

// Breakthrough

func (s *ProgressionTestSuite) TestSubLevelBreakthroughCarriesOverflow() {
	p := s.player
	p.Realm.Cultivation = 12000
	p.Resources.Currency = 10000

	res := s.ledger(random.NewScripted(0)).Breakthrough(p)

	s.True(res.Success)
	s.Equal(progression.TransitionLevel, res.Transition)
	s.Equal(2, p.Realm.Level)
	s.Equal(int64(2000), p.Realm.Cultivation)
	s.Equal(int64(1000), p.Realm.CultivationMax)
	s.Equal(int64(5000), p.Resources.Currency)
	// floor(10/9) hp max, floor(1/9) attack
	s.Equal(81.0, p.Attributes.HPMax)
	s.Equal(8.0, p.Attributes.Attack)
	s.Equal(81.0, p.Attributes.HP)
}

func (s *ProgressionTestSuite) TestBreakthroughPreconditions() {
	testCases := []struct {
		name        string
		cultivation int64
		currency    int64
		reason      string
	}{
		{"not enough cultivation", 9999, 10000, "need 1 more cultivation"},
		{"not enough currency", 10000, 4999, "need 1 more currency"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			p := s.player.Clone()
			p.Realm.Cultivation = tc.cultivation
			p.Resources.Currency = tc.currency
			before := p.Clone()

			res := s.ledger(random.NewScripted(0)).Breakthrough(p)

			s.False(res.Success)
			s.Equal(progression.TransitionNone, res.Transition)
			s.Equal(tc.reason, res.Reason)
			s.Equal(before, p)
		})
	}
}

func (s *ProgressionTestSuite) TestTierBreakthroughSuccess() {
	p := s.player
	p.Realm.Level = 9
	p.Realm.Cultivation = 1500
	p.Realm.CultivationMax = 1000
	p.Realm.FailCount = 3
	p.Resources.Currency = 5000

	res := s.ledger(random.NewScripted(0)).Breakthrough(p)

	s.True(res.Success)
	s.Equal(progression.TransitionTier, res.Transition)
	s.Equal(1, p.Realm.Tier)
	s.Equal(1, p.Realm.Level)
	s.Equal(int64(500), p.Realm.Cultivation)
	s.Equal(int64(5000), p.Realm.CultivationMax)
	s.Zero(p.Realm.FailCount)
	s.Zero(p.Resources.Currency)
	s.Equal(110.0, p.Attributes.HPMax)
	s.Equal(11.0, p.Attributes.Attack)
	s.Equal(110.0, p.Attributes.HP)
}

func (s *ProgressionTestSuite) TestTierBreakthroughFailureStillPays() {
	p := s.player
	p.Realm.Level = 9
	p.Realm.Cultivation = 1000
	p.Realm.CultivationMax = 1000
	p.Resources.Currency = 6000

	res := s.ledger(random.NewScripted(0.95)).Breakthrough(p)

	s.False(res.Success)
	s.Equal(progression.TransitionFailed, res.Transition)
	s.Equal(0, p.Realm.Tier)
	s.Equal(9, p.Realm.Level)
	s.Equal(1, p.Realm.FailCount)
	s.Equal(int64(1000), p.Realm.Cultivation)
	s.Equal(int64(1000), p.Resources.Currency)
}

func (s *ProgressionTestSuite) TestFinalTierHasNoSideEffects() {
	p := s.player
	p.Realm.Tier = s.game.FinalTier()
	p.Realm.Level = 1
	p.Realm.CultivationMax = 0
	p.Resources.Currency = 100
	before := p.Clone()

	res := s.ledger(random.NewScripted(0)).Breakthrough(p)

	s.False(res.Success)
	s.Equal("max tier reached", res.Reason)
	s.Equal(before, p)
}

// Enhancement

func (s *ProgressionTestSuite) TestEnhancePreview() {
	l := s.ledger(random.NewScripted(0))

	testCases := []struct {
		level    int
		stones   int64
		currency int64
		rate     float64
		maxed    bool
	}{
		{0, 10, 100, 1, false},
		{5, 75, 3200, 0.8, false},
		{12, 1297, 409600, 0.52, false},
		{19, 22168, 52428800, 0.24, false},
		{20, 33252, 104857600, 0.2, true},
	}

	for _, tc := range testCases {
		q := l.EnhancePreview(&entities.Equipment{EnhanceLevel: tc.level})
		s.Equal(tc.stones, q.StoneCost, "level %d", tc.level)
		s.Equal(tc.currency, q.CurrencyCost, "level %d", tc.level)
		s.InDelta(tc.rate, q.SuccessRate, 1e-9, "level %d", tc.level)
		s.Equal(tc.maxed, q.Maxed, "level %d", tc.level)
	}
}

func (s *ProgressionTestSuite) carry(eq *entities.Equipment) *entities.Equipment {
	s.Require().True(s.player.Inventory.AddEquipment(eq))
	return eq
}

func (s *ProgressionTestSuite) TestEnhanceSuccessGrowsFlatStats() {
	eq := s.carry(&entities.Equipment{
		ID: "eq_1", Name: "Wooden Sword", Slot: entities.SlotWeapon,
		Bonus: entities.Attributes{Attack: 100, HPMax: 33, CritRate: 0.05},
	})
	s.player.Resources.EnhanceStones = 10
	s.player.Resources.Currency = 150

	res := s.ledger(random.NewScripted(0)).Enhance(s.player, "eq_1")

	s.True(res.Success)
	s.True(res.Attempted)
	s.Equal(1, eq.EnhanceLevel)
	s.Equal(105.0, eq.Bonus.Attack)
	s.Equal(34.0, eq.Bonus.HPMax)
	s.Equal(0.05, eq.Bonus.CritRate)
	s.Zero(eq.Bonus.Defense)
	s.Zero(s.player.Resources.EnhanceStones)
	s.Equal(int64(50), s.player.Resources.Currency)
}

func (s *ProgressionTestSuite) TestEnhanceWornEquipment() {
	eq := &entities.Equipment{ID: "eq_w", Slot: entities.SlotArmor, Bonus: entities.Attributes{Defense: 20}}
	s.player.Equipped[entities.SlotArmor] = eq
	s.player.Resources.EnhanceStones = 10
	s.player.Resources.Currency = 100

	res := s.ledger(random.NewScripted(0)).Enhance(s.player, "eq_w")

	s.True(res.Success)
	s.Equal(21.0, eq.Bonus.Defense)
}

func (s *ProgressionTestSuite) TestEnhanceFailure() {
	testCases := []struct {
		name       string
		level      int
		expected   int
		downgraded bool
	}{
		{"below downgrade level keeps level", 5, 5, false},
		{"at downgrade level loses one", 10, 9, true},
		{"high level loses one", 12, 11, true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			eq := s.carry(&entities.Equipment{ID: "eq_1", Name: "Robe", EnhanceLevel: tc.level,
				Bonus: entities.Attributes{Defense: 50}})
			s.player.Resources.EnhanceStones = 1_000_000
			s.player.Resources.Currency = 1_000_000_000

			res := s.ledger(random.NewScripted(0.99)).Enhance(s.player, "eq_1")

			s.False(res.Success)
			s.True(res.Attempted)
			s.Equal(tc.downgraded, res.Downgraded)
			s.Equal(tc.expected, eq.EnhanceLevel)
			s.Equal(50.0, eq.Bonus.Defense)
			s.Less(s.player.Resources.EnhanceStones, int64(1_000_000))
		})
	}
}

func (s *ProgressionTestSuite) TestEnhanceRefusals() {
	testCases := []struct {
		name   string
		id     string
		level  int
		stones int64
		reason string
	}{
		{"unknown item", "nope", 0, 100, "equipment nope not found"},
		{"maxed", "eq_1", 20, 1_000_000, "Robe is already +20"},
		{"too few stones", "eq_1", 0, 9, "need 10 enhance stones"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			s.carry(&entities.Equipment{ID: "eq_1", Name: "Robe", EnhanceLevel: tc.level})
			s.player.Resources.EnhanceStones = tc.stones
			s.player.Resources.Currency = 1_000_000_000
			before := s.player.Clone()

			res := s.ledger(random.NewScripted(0)).Enhance(s.player, tc.id)

			s.False(res.Success)
			s.False(res.Attempted)
			s.Equal(tc.reason, res.Reason)
			s.Equal(before, s.player)
		})
	}
}

// Rewards

func (s *ProgressionTestSuite) TestBossRewards() {
	l := s.ledger(random.NewSeeded(42))
	boss := s.monster("goblin_chief")
	band := s.game.Loot.MapBands[boss.RequireTier]

	for i := 0; i < 200; i++ {
		r := l.GenerateReward(boss, 0)

		s.GreaterOrEqual(len(r.Equipment), 1)
		s.LessOrEqual(len(r.Equipment), 2)
		s.Len(r.SkillBooks, 1)
		s.Zero(r.Currency % 3)
		s.GreaterOrEqual(r.Currency, int64(60))
		s.LessOrEqual(r.Currency, int64(120))
		s.GreaterOrEqual(r.EnhanceStones, int64(3))
		for _, eq := range r.Equipment {
			s.True(band.Contains(eq.Rarity), "%s not in band %v", eq.Rarity, band)
			s.Equal(boss.Level, eq.Level)
		}
	}
}

func (s *ProgressionTestSuite) TestNormalRewards() {
	l := s.ledger(random.NewSeeded(7))
	goblin := s.monster("goblin")

	for i := 0; i < 200; i++ {
		r := l.GenerateReward(goblin, 0)

		s.LessOrEqual(len(r.Equipment), 1)
		s.LessOrEqual(len(r.SkillBooks), 1)
		s.GreaterOrEqual(r.Currency, int64(8))
		s.LessOrEqual(r.Currency, int64(15))
		s.Contains([]int64{0, 1}, r.Comprehension)
		s.Zero(r.EnhanceStones)
	}
}

func (s *ProgressionTestSuite) TestNormalRewardLowestRolls() {
	r := s.ledger(random.NewScripted(0)).GenerateReward(s.monster("goblin"), 0)

	s.Equal(int64(8), r.Currency)
	s.Equal(int64(20), r.Experience)
	s.Zero(r.Comprehension)
	s.Len(r.Equipment, 1)
	s.Len(r.SkillBooks, 1)
	s.Equal(entities.SkillActive, r.SkillBooks[0].Type)
}

func (s *ProgressionTestSuite) TestApplyRewardRespectsCapacity() {
	s.player.Inventory.Capacity = 1
	r := &progression.Reward{
		Currency:      10,
		Experience:    5,
		Comprehension: 2,
		EnhanceStones: 3,
		Equipment:     []*entities.Equipment{{ID: "a"}, {ID: "b"}},
		SkillBooks:    []*entities.Skill{{ID: "c"}},
	}

	res := progression.ApplyReward(s.player, r)

	s.Equal(progression.ApplyResult{KeptEquipment: 1, DroppedEquipment: 1, KeptSkillBooks: 1}, res)
	s.Equal(int64(110), s.player.Resources.Currency)
	s.Equal(int64(5), s.player.Resources.Experience)
	s.Equal(int64(2), s.player.Resources.Comprehension)
	s.Equal(int64(3), s.player.Resources.EnhanceStones)
	s.Len(s.player.Inventory.Equipment, 1)
	s.Equal("a", s.player.Inventory.Equipment[0].ID)
}

func (s *ProgressionTestSuite) TestDropRates() {
	boss := progression.DropRates(s.monster("goblin_chief"))
	s.Equal("1-2", boss.EquipmentCount)
	s.Equal("1", boss.SkillCount)
	s.Equal(1.0, boss.EquipmentRate)
	s.Equal(1.0, boss.EnhanceStoneRate)
	s.Equal("1-3", boss.EnhanceStoneRange)

	normal := progression.DropRates(s.monster("goblin"))
	s.Equal("1", normal.EquipmentCount)
	s.Equal(0.05, normal.EquipmentRate)
	s.Equal(0.005, normal.SkillRate)
	s.Zero(normal.EnhanceStoneRate)
	s.Equal("0", normal.EnhanceStoneRange)
}

// Market

func (s *ProgressionTestSuite) TestEquipmentPrice() {
	l := s.ledger(random.NewScripted(0))

	testCases := []struct {
		name     string
		eq       entities.Equipment
		expected int64
	}{
		{"common medium level one", entities.Equipment{Rarity: entities.RarityCommon, Quality: entities.QualityMedium, Level: 1}, 10},
		{"low quality discount", entities.Equipment{Rarity: entities.RarityYellow, Quality: entities.QualityLow, Level: 3, EnhanceLevel: 2}, 80},
		{"perfect dark", entities.Equipment{Rarity: entities.RarityDark, Quality: entities.QualityPerfect, Level: 1}, 360},
		{"unset quality counts as medium price", entities.Equipment{Rarity: entities.RarityCommon, Level: 1}, 10},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, l.EquipmentPrice(&tc.eq))
		})
	}
}

func (s *ProgressionTestSuite) TestSellEquipment() {
	l := s.ledger(random.NewScripted(0))
	s.carry(&entities.Equipment{ID: "eq_1", Name: "Sword", Quality: entities.QualityMedium, Level: 1})

	res := l.SellEquipment(s.player, "eq_1")
	s.True(res.Success)
	s.Equal(int64(10), res.Price)
	s.Equal(int64(110), s.player.Resources.Currency)
	s.Empty(s.player.Inventory.Equipment)

	again := l.SellEquipment(s.player, "eq_1")
	s.False(again.Success)
	s.Equal(int64(110), s.player.Resources.Currency)
}

func (s *ProgressionTestSuite) TestSellSkill() {
	l := s.ledger(random.NewScripted(0))
	s.Require().True(s.player.Inventory.AddSkillBook(&entities.Skill{ID: "sk_1", Name: "Palm",
		LearnCost: entities.LearnCost{Currency: 1001}}))

	res := l.SellSkill(s.player, "sk_1")

	s.True(res.Success)
	s.Equal(int64(500), res.Price)
	s.Equal(int64(600), s.player.Resources.Currency)
	s.Empty(s.player.Inventory.SkillBooks)
}

// Gear and skills

func (s *ProgressionTestSuite) TestEquipSwapsWornItem() {
	l := s.ledger(random.NewScripted(0))
	old := &entities.Equipment{ID: "old", Slot: entities.SlotWeapon}
	s.player.Equipped[entities.SlotWeapon] = old
	s.carry(&entities.Equipment{ID: "new", Slot: entities.SlotWeapon, Bonus: entities.Attributes{Attack: 5}})

	res := l.Equip(s.player, "new")

	s.True(res.Success)
	s.Equal("new", s.player.Equipped[entities.SlotWeapon].ID)
	s.Len(s.player.Inventory.Equipment, 1)
	s.Equal("old", s.player.Inventory.Equipment[0].ID)
	s.Equal(13.0, s.player.TotalAttributes().Attack)
}

func (s *ProgressionTestSuite) TestEquipRequirement() {
	l := s.ledger(random.NewScripted(0))
	s.carry(&entities.Equipment{ID: "eq_1", Name: "Azure Cloud Sword", Slot: entities.SlotWeapon, RequireTier: 1, RequireLevel: 2})

	res := l.Equip(s.player, "eq_1")

	s.False(res.Success)
	s.Nil(s.player.Equipped[entities.SlotWeapon])
	s.Len(s.player.Inventory.Equipment, 1)

	s.player.Realm.Tier = 1
	s.player.Realm.Level = 2
	s.True(l.Equip(s.player, "eq_1").Success)
}

func (s *ProgressionTestSuite) TestUnequip() {
	l := s.ledger(random.NewScripted(0))
	s.player.Equipped[entities.SlotArmor] = &entities.Equipment{ID: "robe", Slot: entities.SlotArmor,
		Bonus: entities.Attributes{HPMax: 20}}
	s.player.Attributes.HP = 100

	s.Run("full inventory refuses", func() {
		s.player.Inventory.Capacity = 0
		s.False(l.Unequip(s.player, entities.SlotArmor).Success)
		s.NotNil(s.player.Equipped[entities.SlotArmor])
	})

	s.Run("moves to inventory and clamps hp", func() {
		s.player.Inventory.Capacity = 10
		s.True(l.Unequip(s.player, entities.SlotArmor).Success)
		s.Nil(s.player.Equipped[entities.SlotArmor])
		s.Len(s.player.Inventory.Equipment, 1)
		s.Equal(80.0, s.player.Attributes.HP)
	})

	s.Run("empty slot", func() {
		s.False(l.Unequip(s.player, entities.SlotBoots).Success)
	})
}

func (s *ProgressionTestSuite) TestLearnSkill() {
	l := s.ledger(random.NewScripted(0))
	s.player.Resources.Currency = 1500
	s.Require().True(s.player.Inventory.AddSkillBook(&entities.Skill{ID: "a", Type: entities.SkillActive,
		LearnCost: entities.LearnCost{Currency: 1000}}))
	s.Require().True(s.player.Inventory.AddSkillBook(&entities.Skill{ID: "p", Name: "Qi Shield", Type: entities.SkillPassive,
		LearnCost: entities.LearnCost{Currency: 1000}, Passive: entities.Attributes{Attack: 20}}))

	s.True(l.LearnSkill(s.player, "a").Success)
	s.Len(s.player.Skills.Active, 1)
	s.Equal(int64(500), s.player.Resources.Currency)

	res := l.LearnSkill(s.player, "p")
	s.False(res.Success)
	s.Equal("need 1000 currency to learn Qi Shield", res.Reason)
	s.Len(s.player.Inventory.SkillBooks, 1)

	s.player.Resources.Currency = 1000
	s.True(l.LearnSkill(s.player, "p").Success)
	s.Len(s.player.Skills.Passive, 1)
	s.Empty(s.player.Inventory.SkillBooks)
	s.Equal(28.0, s.player.TotalAttributes().Attack)
}

func (s *ProgressionTestSuite) TestSelectMap() {
	l := s.ledger(random.NewScripted(0))

	s.False(l.SelectMap(s.player, 1).Success)
	s.False(l.SelectMap(s.player, 99).Success)
	s.Equal([]int{0}, l.AvailableMaps(s.player))

	s.player.Realm.Level = 5
	s.True(l.SelectMap(s.player, 1).Success)
	s.Equal(1, s.player.Battle.MapIndex)
	s.Equal([]int{0, 1}, l.AvailableMaps(s.player))
}

// Ticks and bookkeeping

func (s *ProgressionTestSuite) TestMeditate() {
	l := s.ledger(random.NewScripted(0))

	s.Equal(int64(100000), l.Meditate(s.player))
	s.player.Realm.Tier = 2
	s.Equal(int64(200000), l.Meditate(s.player))
	s.Equal(int64(300000), s.player.Realm.Cultivation)
}

func (s *ProgressionTestSuite) TestRecordBattleAndRevive() {
	p := s.player
	p.Equipped[entities.SlotHelmet] = &entities.Equipment{ID: "h", Bonus: entities.Attributes{HPMax: 20, MPMax: 10}}

	progression.RecordBattle(p, &combat.Result{Outcome: combat.OutcomeWin, FinalHP: 50, FinalMP: 5, DamageDealt: 30})
	s.Equal(50.0, p.Attributes.HP)
	s.Equal(int64(1), p.Battle.Kills)
	s.Equal(int64(30), p.Battle.TotalDamage)

	progression.RecordBattle(p, &combat.Result{Outcome: combat.OutcomeLoss, FinalHP: 3})
	s.Zero(p.Attributes.HP)
	s.Equal(int64(1), p.Battle.Deaths)

	progression.Revive(p)
	s.Equal(100.0, p.Attributes.HP)
	s.Equal(30.0, p.Attributes.MP)
}

func (s *ProgressionTestSuite) TestMigrate() {
	l := s.ledger(random.NewScripted(0))
	s.False(l.Migrate(s.player))

	legacy := &entities.Player{
		Realm:    entities.RealmProgress{Tier: 1, Level: 3},
		Equipped: entities.Equipped{entities.SlotRing: {ID: "r"}, entities.SlotBoots: nil},
		Inventory: entities.Inventory{
			Equipment: []*entities.Equipment{{ID: "i", Quality: entities.QualityHigh}, {ID: "j"}},
		},
		Battle: entities.BattleStats{MapIndex: 42},
	}

	s.True(l.Migrate(legacy))
	s.Equal(entities.QualityMedium, legacy.Equipped[entities.SlotRing].Quality)
	s.NotContains(legacy.Equipped, entities.SlotBoots)
	s.Equal(entities.QualityHigh, legacy.Inventory.Equipment[0].Quality)
	s.Equal(entities.QualityMedium, legacy.Inventory.Equipment[1].Quality)
	s.NotNil(legacy.Skills.Active)
	s.NotNil(legacy.Inventory.SkillBooks)
	s.Equal(500, legacy.Inventory.Capacity)
	s.Equal(24.0, legacy.Offline.MaxOfflineHours)
	s.Equal(int64(5000), legacy.Realm.CultivationMax)
	s.Zero(legacy.Battle.MapIndex)
}

func TestEnhanceProperties(t *testing.T) {
	game, err := config.DefaultGame()
	if err != nil {
		t.Fatal(err)
	}

	rapid.Check(t, func(t *rapid.T) {
		l, err := newLedger(game, random.NewSeeded(rapid.Uint64().Draw(t, "seed")))
		if err != nil {
			t.Fatal(err)
		}
		level := rapid.IntRange(0, 19).Draw(t, "level")

		cur := l.EnhancePreview(&entities.Equipment{EnhanceLevel: level})
		next := l.EnhancePreview(&entities.Equipment{EnhanceLevel: level + 1})
		if next.StoneCost <= cur.StoneCost || next.CurrencyCost <= cur.CurrencyCost {
			t.Fatalf("costs must grow: %+v -> %+v", cur, next)
		}
		if next.SuccessRate > cur.SuccessRate || cur.SuccessRate < 0.2 {
			t.Fatalf("rate must not grow or drop below the floor: %+v -> %+v", cur, next)
		}

		p := l.NewPlayer("p", testNow)
		p.Resources.EnhanceStones = cur.StoneCost
		p.Resources.Currency = cur.CurrencyCost
		p.Inventory.AddEquipment(&entities.Equipment{ID: "eq", EnhanceLevel: level,
			Bonus: entities.Attributes{Attack: rapid.Float64Range(1, 1e6).Draw(t, "atk")}})

		res := l.Enhance(p, "eq")
		eq, _ := p.FindEquipment("eq")

		if eq.EnhanceLevel < 0 || eq.EnhanceLevel > 20 || eq.EnhanceLevel-level > 1 || level-eq.EnhanceLevel > 1 {
			t.Fatalf("level moved from %d to %d", level, eq.EnhanceLevel)
		}
		if res.Success != (eq.EnhanceLevel == level+1) {
			t.Fatalf("success %v but level %d -> %d", res.Success, level, eq.EnhanceLevel)
		}
		if p.Resources.EnhanceStones != 0 || p.Resources.Currency != 0 {
			t.Fatalf("cost not paid exactly: %+v", p.Resources)
		}
	})
}
