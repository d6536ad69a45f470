package main

import (
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/game"
)

var battleCmd = &cobra.Command{
	Use:   "battle <enemy>",
	Short: "Fight one battle with a fresh hero",
	Long:  `Create a new hero, fight the named enemy once and print the result.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runBattle,
}

func init() {
	addGameplayFlags(battleCmd)
}

func runBattle(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	w := cmd.OutOrStdout()

	a, err := newApp(ctx, cfg, dice.DefaultRoller)
	if err != nil {
		return err
	}
	defer a.Close()

	start, err := a.service.StartNewGame(ctx, &game.StartNewGameInput{PlayerName: cfg.PlayerName})
	if err != nil {
		return err
	}

	out, err := a.service.StartCombat(ctx, &game.StartCombatInput{
		SessionID: start.SessionID,
		EnemyKey:  strings.ToLower(args[0]),
	})
	if err != nil {
		return err
	}

	renderCombat(w, out)
	renderCharacter(w, out.Character)
	return nil
}
