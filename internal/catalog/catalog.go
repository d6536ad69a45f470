// Package catalog is the read-only registry of item definitions and enemy
// templates. A Catalog is built once at startup and handed to every component
// that needs lookups; there is no package-level instance.
package catalog

import (
	stderrors "errors"
	"log/slog"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/KirkDiggler/rpg-arena/internal/entities"
	"github.com/KirkDiggler/rpg-arena/internal/entities/equipment"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

// Catalog holds immutable item and enemy definitions. Returned pointers are
// shared and must not be modified.
type Catalog struct {
	items    map[string]*entities.Item
	enemies  map[string]*entities.EnemyTemplate
	itemIDs  []string
	enemyIDs []string
}

// New validates the definitions and builds a catalog from them. Any problem
// with the table is returned as an InvalidArgument error.
func New(items []entities.Item, enemies []entities.EnemyTemplate) (*Catalog, error) {
	v, err := newValidator()
	if err != nil {
		return nil, err
	}
	vb := errors.NewValidationBuilder()

	c := &Catalog{
		items:   make(map[string]*entities.Item, len(items)),
		enemies: make(map[string]*entities.EnemyTemplate, len(enemies)),
	}

	for i := range items {
		item := items[i]
		field := "items[" + item.ID + "]"

		if err := v.Struct(&item); err != nil {
			addValidatorErrors(vb, field, err)
			continue
		}
		if item.Kind == entities.ItemKindConsumable && item.Equipment != nil {
			vb.InvalidField(field, "consumable carries an equipment payload")
			continue
		}
		if item.Kind == entities.ItemKindEquipment && item.Consumable != nil {
			vb.InvalidField(field, "equipment carries a consumable payload")
			continue
		}
		if _, dup := c.items[item.ID]; dup {
			vb.Field(field, "is defined more than once")
			continue
		}

		c.items[item.ID] = &item
		c.itemIDs = append(c.itemIDs, item.ID)
	}

	for i := range enemies {
		enemy := enemies[i]
		field := "enemies[" + enemy.Key + "]"

		if err := v.Struct(&enemy); err != nil {
			addValidatorErrors(vb, field, err)
			continue
		}
		if _, dup := c.enemies[enemy.Key]; dup {
			vb.Field(field, "is defined more than once")
			continue
		}
		for _, lootID := range enemy.Loot {
			if _, ok := c.items[lootID]; !ok {
				vb.Fieldf(field, "loot %q is not a catalog item", lootID)
			}
		}

		enemy.Loot = append([]string(nil), enemy.Loot...)
		c.enemies[enemy.Key] = &enemy
		c.enemyIDs = append(c.enemyIDs, enemy.Key)
	}

	if err := vb.Build(); err != nil {
		return nil, errors.Wrap(err, "invalid catalog")
	}

	sort.Strings(c.itemIDs)
	sort.Strings(c.enemyIDs)

	return c, nil
}

// Item looks up an item definition
func (c *Catalog) Item(id string) (*entities.Item, error) {
	item, ok := c.items[id]
	if !ok {
		slog.Error("Item missing from catalog", "item_id", id)
		return nil, errors.NotFoundf("item %q not in catalog", id).WithMeta("item_id", id)
	}
	return item, nil
}

// Enemy looks up an enemy template
func (c *Catalog) Enemy(key string) (*entities.EnemyTemplate, error) {
	enemy, ok := c.enemies[key]
	if !ok {
		slog.Error("Enemy missing from catalog", "enemy_key", key)
		return nil, errors.NotFoundf("enemy %q not in catalog", key).WithMeta("enemy_key", key)
	}
	return enemy, nil
}

// Items lists every item definition ordered by id
func (c *Catalog) Items() []*entities.Item {
	out := make([]*entities.Item, len(c.itemIDs))
	for i, id := range c.itemIDs {
		out[i] = c.items[id]
	}
	return out
}

// Enemies lists every enemy template ordered by key
func (c *Catalog) Enemies() []*entities.EnemyTemplate {
	out := make([]*entities.EnemyTemplate, len(c.enemyIDs))
	for i, key := range c.enemyIDs {
		out[i] = c.enemies[key]
	}
	return out
}

// slotRuleTag is the struct tag that checks an equipment slot name
const slotRuleTag = "equipment_slot"

func newValidator() (*validator.Validate, error) {
	v := validator.New()
	if err := registerRule(v, slotRuleTag, validateEquipmentSlot); err != nil {
		return nil, err
	}
	return v, nil
}

func registerRule(v *validator.Validate, tag string, fn validator.Func) error {
	if err := v.RegisterValidation(tag, fn); err != nil {
		return errors.WrapWithCode(err, errors.CodeInternal, "failed to register validation rule").
			WithMeta("tag", tag)
	}
	return nil
}

func validateEquipmentSlot(fl validator.FieldLevel) bool {
	return equipment.EquipmentSlot(fl.Field().String()).IsValid()
}

func addValidatorErrors(vb *errors.ValidationBuilder, field string, err error) {
	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		vb.InvalidField(field, err.Error())
		return
	}
	for _, fe := range fieldErrs {
		vb.Fieldf(field, "%s failed %q", fe.Namespace(), fe.Tag())
	}
}
