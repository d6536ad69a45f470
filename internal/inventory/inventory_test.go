package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-arena/internal/catalog"
	"github.com/KirkDiggler/rpg-arena/internal/entities"
	"github.com/KirkDiggler/rpg-arena/internal/entities/equipment"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/inventory"
	inventorymock "github.com/KirkDiggler/rpg-arena/internal/inventory/mock"
)

type InventoryTestSuite struct {
	suite.Suite
	hero *entities.Character
	inv  *inventory.Inventory
}

func TestInventorySuite(t *testing.T) {
	suite.Run(t, new(InventoryTestSuite))
}

func (s *InventoryTestSuite) SetupTest() {
	s.hero = entities.NewCharacter("char_1", "Hero")
	s.inv = inventory.New(s.hero, catalog.Default())
}

func (s *InventoryTestSuite) ids() []string {
	var out []string
	for _, e := range s.inv.Entries() {
		out = append(out, e.Item.ID)
	}
	return out
}

func (s *InventoryTestSuite) TestAddItemStacksInInsertionOrder() {
	s.Require().NoError(s.inv.AddItem(catalog.ItemSmallHeal, 3))
	s.Require().NoError(s.inv.AddItem(catalog.ItemIronSword, 1))
	s.Require().NoError(s.inv.AddItem(catalog.ItemSmallHeal, 2))

	s.Equal([]string{catalog.ItemSmallHeal, catalog.ItemIronSword}, s.ids())
	s.Equal(5, s.inv.Count(catalog.ItemSmallHeal))
	s.Equal(6, s.inv.Size())

	entry, ok := s.inv.Entry(1)
	s.True(ok)
	s.Equal(catalog.ItemIronSword, entry.Item.ID)

	_, ok = s.inv.Entry(2)
	s.False(ok)
	_, ok = s.inv.Entry(-1)
	s.False(ok)
}

func (s *InventoryTestSuite) TestAddItemRejectsUnknownAndBadCount() {
	err := s.inv.AddItem("excalibur", 1)
	s.True(errors.IsNotFound(err))

	err = s.inv.AddItem(catalog.ItemSmallHeal, 0)
	s.True(errors.IsInvalidArgument(err))

	s.Equal(0, s.inv.Size())
}

func (s *InventoryTestSuite) TestUseSmallHealThreeTimes() {
	s.Require().NoError(s.inv.AddItem(catalog.ItemSmallHeal, 3))
	s.hero.TakeDamage(90)

	for i := 0; i < 3; i++ {
		before := s.inv.Size()
		s.True(s.inv.UseItem(catalog.ItemSmallHeal))
		s.Equal(before-1, s.inv.Size())
	}

	s.Equal(10+3*20, s.hero.Health)
	s.Equal(0, s.inv.Count(catalog.ItemSmallHeal))
	s.Empty(s.inv.Entries())

	snapshot := s.hero.Snapshot()
	s.False(s.inv.UseItem(catalog.ItemSmallHeal))
	s.Equal(snapshot, s.hero.Snapshot())
}

func (s *InventoryTestSuite) TestUseManaPotion() {
	s.Require().NoError(s.inv.AddItem(catalog.ItemManaPotion, 1))
	s.hero.SpendMana(40)

	s.True(s.inv.UseItem(catalog.ItemManaPotion))
	s.Equal(35, s.hero.Mana)
}

func (s *InventoryTestSuite) TestUseNonConsumableFails() {
	s.Require().NoError(s.inv.AddItem(catalog.ItemIronSword, 1))

	s.False(s.inv.UseItem(catalog.ItemIronSword))
	s.Equal(1, s.inv.Count(catalog.ItemIronSword))
}

func (s *InventoryTestSuite) TestEquipIntoEmptySlot() {
	s.Require().NoError(s.inv.AddItem(catalog.ItemIronSword, 1))
	s.Require().NoError(s.inv.AddItem(catalog.ItemSmallHeal, 1))
	before := s.inv.Size()

	s.True(s.inv.EquipItem(catalog.ItemIronSword))

	s.Equal(before-1, s.inv.Size())
	s.Equal(0, s.inv.Count(catalog.ItemIronSword))
	s.Equal(catalog.ItemIronSword, s.hero.Equipped(equipment.SlotWeapon).ID)
	s.Equal(15, s.hero.EffectiveAttack())
	s.Equal(10, s.hero.Attack)
}

func (s *InventoryTestSuite) TestEquipSwapsOccupiedSlot() {
	s.Require().NoError(s.inv.AddItem(catalog.ItemIronSword, 1))
	s.Require().NoError(s.inv.AddItem(catalog.ItemSteelSword, 1))
	s.True(s.inv.EquipItem(catalog.ItemIronSword))
	before := s.inv.Size()

	s.True(s.inv.EquipItem(catalog.ItemSteelSword))

	s.Equal(before, s.inv.Size(), "swap leaves the count unchanged")
	s.Equal(1, s.inv.Count(catalog.ItemIronSword))
	s.Equal(0, s.inv.Count(catalog.ItemSteelSword))
	s.Equal(catalog.ItemSteelSword, s.hero.Equipped(equipment.SlotWeapon).ID)
	s.Equal(18, s.hero.EffectiveAttack())
}

func (s *InventoryTestSuite) TestEquipFromStackLeavesRest() {
	s.Require().NoError(s.inv.AddItem(catalog.ItemIronSword, 2))

	s.True(s.inv.EquipItem(catalog.ItemIronSword))

	s.Equal(1, s.inv.Count(catalog.ItemIronSword))
	s.NotNil(s.hero.Equipped(equipment.SlotWeapon))
}

func (s *InventoryTestSuite) TestEquipInvalid() {
	s.Require().NoError(s.inv.AddItem(catalog.ItemSmallHeal, 1))

	s.False(s.inv.EquipItem(catalog.ItemSmallHeal))
	s.False(s.inv.EquipItem(catalog.ItemIronSword))
	s.Equal(1, s.inv.Size())
	s.Nil(s.hero.Equipped(equipment.SlotWeapon))
}

func (s *InventoryTestSuite) TestUnequipReturnsItem() {
	s.Require().NoError(s.inv.AddItem(catalog.ItemLeatherArmor, 1))
	s.True(s.inv.EquipItem(catalog.ItemLeatherArmor))
	s.Equal(2, s.hero.EffectiveDefense())

	s.True(s.inv.UnequipItem(equipment.SlotArmor))

	s.Nil(s.hero.Equipped(equipment.SlotArmor))
	s.Equal(1, s.inv.Count(catalog.ItemLeatherArmor))
	s.Equal(0, s.hero.EffectiveDefense())

	s.False(s.inv.UnequipItem(equipment.SlotArmor))
	s.False(s.inv.UnequipItem("tail"))
}

func (s *InventoryTestSuite) TestItemNeverBothHeldAndEquipped() {
	s.Require().NoError(s.inv.AddItem(catalog.ItemPowerRing, 1))

	s.True(s.inv.EquipItem(catalog.ItemPowerRing))
	s.Equal(0, s.inv.Count(catalog.ItemPowerRing))
	s.NotNil(s.hero.Equipped(equipment.SlotAccessory))

	s.True(s.inv.UnequipItem(equipment.SlotAccessory))
	s.Equal(1, s.inv.Count(catalog.ItemPowerRing))
	s.Nil(s.hero.Equipped(equipment.SlotAccessory))
}

func TestAddItemPropagatesLookupError(t *testing.T) {
	ctrl := gomock.NewController(t)
	lookup := inventorymock.NewMockItemLookup(ctrl)
	lookup.EXPECT().
		Item("ghost").
		Return(nil, errors.NotFound("item not in catalog"))

	inv := inventory.New(entities.NewCharacter("char_1", "Hero"), lookup)

	err := inv.AddItem("ghost", 1)
	if !errors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if inv.Size() != 0 {
		t.Fatalf("expected empty inventory, got %d", inv.Size())
	}
}
