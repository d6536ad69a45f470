package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-arena/internal/config"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/game"
	"github.com/KirkDiggler/rpg-arena/internal/testutils"
)

// lowRoller always rolls a one
type lowRoller struct{}

func (lowRoller) Roll(_ int) (int, error) { return 1, nil }

func (lowRoller) RollN(count, _ int) ([]int, error) {
	rolls := make([]int, count)
	for i := range rolls {
		rolls[i] = 1
	}
	return rolls, nil
}

type AppTestSuite struct {
	suite.Suite
	ctx context.Context
	cfg *config.Config
	out *bytes.Buffer
}

func (s *AppTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.out = &bytes.Buffer{}
	s.cfg = &config.Config{
		LogLevel:     "warn",
		LogFormat:    "text",
		PlayerName:   "Hero",
		MaxRounds:    100,
		HistoryLimit: 10,
	}
}

func (s *AppTestSuite) play(a *app, input string) {
	c := &console{
		service:      a.service,
		out:          s.out,
		playerName:   s.cfg.PlayerName,
		historyLimit: s.cfg.HistoryLimit,
	}
	s.Require().NoError(c.run(s.ctx, strings.NewReader(input)))
}

func (s *AppTestSuite) TestPlaySession() {
	a, err := newApp(s.ctx, s.cfg, lowRoller{})
	s.Require().NoError(err)
	defer a.Close()

	s.play(a, strings.Join([]string{
		"fight goblin",
		"use 1",
		"equip 2",
		"inv",
		"status",
		"history",
		"quit",
	}, "\n"))

	out := s.out.String()
	s.Contains(out, "Round 1: Hero hits the Goblin for 10 damage (Goblin HP: 20/30)")
	s.Contains(out, "Victory! Hero defeated the Goblin in 3 rounds.")
	s.Contains(out, "Found Small Healing Potion.")
	s.Contains(out, "Gained 5 gold.")
	s.Contains(out, "Gained 25 experience.")
	s.Contains(out, "Used Small Healing Potion.")
	s.Contains(out, "Equipped Iron Sword.")
	s.Contains(out, "weapon: Iron Sword")
	s.Contains(out, "HP 100/100")
	s.Contains(out, "Attack 15 (base 10)")
	s.Contains(out, "Goblin")
	s.Contains(out, "victory")
}

func (s *AppTestSuite) TestRedisBattleHistory() {
	_, mr, cleanup := testutils.CreateTestRedisClient(s.T())
	defer cleanup()
	s.cfg.RedisAddr = mr.Addr()

	a, err := newApp(s.ctx, s.cfg, lowRoller{})
	s.Require().NoError(err)
	defer a.Close()

	start, err := a.service.StartNewGame(s.ctx, &game.StartNewGameInput{PlayerName: "Hero"})
	s.Require().NoError(err)

	_, err = a.service.StartCombat(s.ctx, &game.StartCombatInput{SessionID: start.SessionID, EnemyKey: "goblin"})
	s.Require().NoError(err)

	s.True(mr.Exists("battlelog:session:" + start.SessionID))
}

func (s *AppTestSuite) TestRedisUnavailable() {
	s.cfg.RedisAddr = "127.0.0.1:1"

	_, err := newApp(s.ctx, s.cfg, lowRoller{})

	s.Require().Error(err)
	s.Equal(errors.CodeUnavailable, errors.GetCode(err))
}

func (s *AppTestSuite) TestCatalogListsDefaults() {
	a, err := newApp(s.ctx, s.cfg, lowRoller{})
	s.Require().NoError(err)
	defer a.Close()

	renderCatalog(s.out, a.catalog)

	out := s.out.String()
	s.Contains(out, "small_heal")
	s.Contains(out, "weapon +5 atk")
	s.Contains(out, "troll")
	s.Contains(out, "large_heal, steel_sword")
}

func TestAppTestSuite(t *testing.T) {
	suite.Run(t, new(AppTestSuite))
}
