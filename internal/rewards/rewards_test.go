package rewards_test

import (
	"context"
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-arena/internal/catalog"
	"github.com/KirkDiggler/rpg-arena/internal/entities"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/inventory"
	"github.com/KirkDiggler/rpg-arena/internal/rewards"
)

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
		v, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

type recordingBus struct {
	published []events.Event
}

func (b *recordingBus) Publish(_ context.Context, e events.Event) error {
	b.published = append(b.published, e)
	return nil
}
func (b *recordingBus) Subscribe(_ string, _ events.Handler) string { return "sub-id" }
func (b *recordingBus) SubscribeFunc(_ string, _ int, _ events.HandlerFunc) string {
	return "sub-id"
}
func (b *recordingBus) Unsubscribe(_ string) error { return nil }
func (b *recordingBus) Clear(_ string)             {}
func (b *recordingBus) ClearAll()                  {}

type RewardsTestSuite struct {
	suite.Suite
	ctx     context.Context
	catalog *catalog.Catalog
	hero    *entities.Character
	inv     *inventory.Inventory
	roller  *stubRoller
	bus     *recordingBus
	policy  *rewards.Policy
}

func (s *RewardsTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.catalog = catalog.Default()
	s.hero = entities.NewCharacter("char-1", "Hero")
	s.inv = inventory.New(s.hero, s.catalog)
	s.roller = &stubRoller{value: 3}
	s.bus = &recordingBus{}

	policy, err := rewards.New(&rewards.Config{Roller: s.roller, EventBus: s.bus})
	s.Require().NoError(err)
	s.policy = policy
}

func (s *RewardsTestSuite) enemy(key string) *entities.EnemyTemplate {
	template, err := s.catalog.Enemy(key)
	s.Require().NoError(err)
	return template
}

func (s *RewardsTestSuite) TestGoblinRewards() {
	grant, err := s.policy.Apply(s.ctx, s.inv, s.enemy(catalog.EnemyGoblin))
	s.Require().NoError(err)

	s.Equal([]string{"Small Healing Potion"}, grant.Loot)
	s.Equal(1, s.inv.Count(catalog.ItemSmallHeal))
	// roll 3 on a d16 over 5..20
	s.Equal([]int{16}, s.roller.sizes)
	s.Equal(7, grant.Gold)
	s.Equal(7, s.hero.Gold)
	s.Equal(25, grant.Exp)
	s.Equal(25, s.hero.Exp)
	s.Equal(0, grant.LevelsGained)
	s.Equal(1, grant.Level)
	s.Equal([]string{
		"Found Small Healing Potion.",
		"Gained 7 gold.",
		"Gained 25 experience.",
	}, grant.Messages)
	s.Empty(s.bus.published)
}

func (s *RewardsTestSuite) TestTrollLootOrder() {
	grant, err := s.policy.Apply(s.ctx, s.inv, s.enemy(catalog.EnemyTroll))
	s.Require().NoError(err)

	s.Equal([]string{"Large Healing Potion", "Steel Sword"}, grant.Loot)
	entries := s.inv.Entries()
	s.Require().Len(entries, 2)
	s.Equal(catalog.ItemLargeHeal, entries[0].Item.ID)
	s.Equal(catalog.ItemSteelSword, entries[1].Item.ID)
}

func (s *RewardsTestSuite) TestLevelUp() {
	troll := s.enemy(catalog.EnemyTroll)

	_, err := s.policy.Apply(s.ctx, s.inv, troll)
	s.Require().NoError(err)
	s.hero.TakeDamage(40)

	grant, err := s.policy.Apply(s.ctx, s.inv, troll)
	s.Require().NoError(err)

	s.Equal(1, grant.LevelsGained)
	s.Equal(2, grant.Level)
	s.Equal(20, s.hero.Exp)
	s.Equal(150, s.hero.ExpToNext)
	s.Equal(120, s.hero.Health)
	s.Contains(grant.Messages, "Level up! Hero is now level 2.")

	s.Require().Len(s.bus.published, 1)
	event := s.bus.published[0]
	s.Equal(rewards.EventLevelUp, event.Type())
	level, ok := event.Context().Get(rewards.ContextKeyLevel)
	s.Require().True(ok)
	s.Equal(2, level)
}

func (s *RewardsTestSuite) TestSeveralLevelsAtOnce() {
	boss := &entities.EnemyTemplate{Key: "dragon", Name: "Dragon", Health: 1, ExpReward: 260}

	grant, err := s.policy.Apply(s.ctx, s.inv, boss)
	s.Require().NoError(err)

	// 100 for level 2, 150 for level 3, 10 left over
	s.Equal(2, grant.LevelsGained)
	s.Equal(3, s.hero.Level)
	s.Equal(10, s.hero.Exp)
	s.Len(s.bus.published, 2)
	s.Contains(grant.Messages, "Level up! Hero is now level 2.")
	s.Contains(grant.Messages, "Level up! Hero is now level 3.")
}

func (s *RewardsTestSuite) TestFixedGoldSkipsRoll() {
	template := &entities.EnemyTemplate{Key: "bandit", Name: "Bandit", Health: 1, GoldMin: 12, GoldMax: 12}

	grant, err := s.policy.Apply(s.ctx, s.inv, template)
	s.Require().NoError(err)

	s.Equal(12, grant.Gold)
	s.Empty(s.roller.sizes)
}

func (s *RewardsTestSuite) TestGoldStaysInRange() {
	policy, err := rewards.New(&rewards.Config{Roller: dice.DefaultRoller})
	s.Require().NoError(err)
	goblin := s.enemy(catalog.EnemyGoblin)

	for i := 0; i < 200; i++ {
		grant, err := policy.Apply(s.ctx, s.inv, goblin)
		s.Require().NoError(err)
		s.GreaterOrEqual(grant.Gold, goblin.GoldMin)
		s.LessOrEqual(grant.Gold, goblin.GoldMax)
	}
}

func (s *RewardsTestSuite) TestRollerFailure() {
	s.roller.err = errors.Internal("dice fell off the table")

	grant, err := s.policy.Apply(s.ctx, s.inv, s.enemy(catalog.EnemyGoblin))
	s.Require().Error(err)
	s.Nil(grant)
	s.True(errors.IsInternal(err))
	s.Equal(0, s.inv.Size())
	s.Equal(0, s.hero.Exp)
}

func (s *RewardsTestSuite) TestUnknownLoot() {
	template := &entities.EnemyTemplate{Key: "imp", Name: "Imp", Health: 1, Loot: []string{"cursed_idol"}}

	_, err := s.policy.Apply(s.ctx, s.inv, template)
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RewardsTestSuite) TestInvalidInput() {
	_, err := s.policy.Apply(s.ctx, nil, s.enemy(catalog.EnemyGoblin))
	s.True(errors.IsInvalidArgument(err))

	_, err = s.policy.Apply(s.ctx, s.inv, nil)
	s.True(errors.IsInvalidArgument(err))
}

func (s *RewardsTestSuite) TestNewRequiresRoller() {
	_, err := rewards.New(&rewards.Config{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))

	_, err = rewards.New(nil)
	s.True(errors.IsInvalidArgument(err))
}

func TestRewardsTestSuite(t *testing.T) {
	suite.Run(t, new(RewardsTestSuite))
}
