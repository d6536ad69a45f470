package catalog

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

type ValidatorTestSuite struct {
	suite.Suite
}

func TestValidatorSuite(t *testing.T) {
	suite.Run(t, new(ValidatorTestSuite))
}

func (s *ValidatorTestSuite) TestSlotRuleRegistered() {
	v, err := newValidator()
	s.Require().NoError(err)

	type slotted struct {
		Slot string `validate:"equipment_slot"`
	}
	s.NoError(v.Struct(slotted{Slot: "weapon"}))
	s.Error(v.Struct(slotted{Slot: "boots"}))
}

func (s *ValidatorTestSuite) TestRegisterRuleFailure() {
	err := registerRule(validator.New(), "", validateEquipmentSlot)

	s.Require().Error(err)
	s.True(errors.IsInternal(err))
	s.Equal("", errors.GetMeta(err)["tag"])
}
