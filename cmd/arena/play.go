package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/game"
)

const helpText = `Commands:
  fight <enemy>       fight goblin, troll, ...
  use <n>             use inventory item n
  equip <n>           equip inventory item n
  unequip <slot>      unequip weapon, armor or accessory
  add <item> [count]  add items from the catalog
  status              show your hero
  inv                 show your pack and gear
  history [limit]     show recent battles
  new                 abandon this game and start over
  quit                leave the arena`

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play an interactive session",
	Long:  `Start a new game and read commands from standard input until quit.`,
	Args:  cobra.NoArgs,
	RunE:  runPlay,
}

func init() {
	addGameplayFlags(playCmd)
	playCmd.Flags().String("redis", "", "redis address for battle history; overrides ARENA_REDIS_ADDR")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, cfg, dice.DefaultRoller)
	if err != nil {
		return err
	}
	defer a.Close()

	c := &console{
		service:      a.service,
		out:          cmd.OutOrStdout(),
		playerName:   cfg.PlayerName,
		historyLimit: cfg.HistoryLimit,
	}
	return c.run(ctx, cmd.InOrStdin())
}

// console turns text commands into orchestrator calls for one player
type console struct {
	service      game.Service
	out          io.Writer
	playerName   string
	historyLimit int
	sessionID    string
}

// run starts a game and processes lines until quit or end of input
func (c *console) run(ctx context.Context, in io.Reader) error {
	if err := c.newGame(ctx); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Type 'help' for commands.")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(c.out, "> ")
		if !scanner.Scan() {
			break
		}

		quit, err := c.handle(ctx, scanner.Text())
		if err != nil {
			return err
		}
		if quit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "failed to read input")
	}

	_, err := c.service.EndGame(ctx, &game.EndGameInput{SessionID: c.sessionID})
	if err != nil && !errors.IsNotFound(err) {
		return err
	}
	fmt.Fprintln(c.out, "Farewell.")
	return nil
}

// handle runs one command. Bad input and refused actions are reported to the
// player; only failures of the game itself come back as errors.
func (c *console) handle(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	command, args := strings.ToLower(fields[0]), fields[1:]

	var err error
	switch command {
	case "quit", "exit":
		return true, nil
	case "help", "?":
		fmt.Fprintln(c.out, helpText)
	case "fight":
		err = c.fight(ctx, args)
	case "use":
		err = c.use(ctx, args)
	case "equip":
		err = c.equip(ctx, args)
	case "unequip":
		err = c.unequip(ctx, args)
	case "add":
		err = c.add(ctx, args)
	case "status":
		err = c.status(ctx)
	case "inv", "inventory":
		err = c.inventory(ctx)
	case "history":
		err = c.history(ctx, args)
	case "new":
		err = c.restart(ctx)
	default:
		fmt.Fprintf(c.out, "Unknown command %q. Type 'help' for commands.\n", command)
	}

	return false, c.report(err)
}

// report prints errors the player can act on and returns the rest
func (c *console) report(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.IsFailedPrecondition(err):
		fmt.Fprintln(c.out, "The game is over. Type 'new' to start again.")
		return nil
	case errors.IsConfiguration(err):
		fmt.Fprintf(c.out, "Cannot do that: %s\n", errors.GetMessage(err))
		return nil
	default:
		return err
	}
}

func (c *console) newGame(ctx context.Context) error {
	out, err := c.service.StartNewGame(ctx, &game.StartNewGameInput{PlayerName: c.playerName})
	if err != nil {
		return err
	}
	c.sessionID = out.SessionID

	fmt.Fprintf(c.out, "%s enters the arena.\n", out.Character.Name)
	renderCharacter(c.out, out.Character)
	return nil
}

func (c *console) restart(ctx context.Context) error {
	if _, err := c.service.EndGame(ctx, &game.EndGameInput{SessionID: c.sessionID}); err != nil {
		return err
	}
	return c.newGame(ctx)
}

func (c *console) fight(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.InvalidArgument("usage: fight <enemy>")
	}

	out, err := c.service.StartCombat(ctx, &game.StartCombatInput{
		SessionID: c.sessionID,
		EnemyKey:  strings.ToLower(args[0]),
	})
	if err != nil {
		return err
	}

	renderCombat(c.out, out)
	return nil
}

func (c *console) use(ctx context.Context, args []string) error {
	index, err := parsePosition(args, "use <n>")
	if err != nil {
		return err
	}

	out, err := c.service.UseItem(ctx, &game.UseItemInput{SessionID: c.sessionID, Index: index})
	if err != nil {
		return err
	}

	c.printAction(out.Applied, out.Message, out.Reason)
	return nil
}

func (c *console) equip(ctx context.Context, args []string) error {
	index, err := parsePosition(args, "equip <n>")
	if err != nil {
		return err
	}

	out, err := c.service.EquipItem(ctx, &game.EquipItemInput{SessionID: c.sessionID, Index: index})
	if err != nil {
		return err
	}

	c.printAction(out.Applied, out.Message, out.Reason)
	return nil
}

func (c *console) unequip(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.InvalidArgument("usage: unequip <slot>")
	}

	out, err := c.service.UnequipItem(ctx, &game.UnequipItemInput{
		SessionID: c.sessionID,
		Slot:      strings.ToLower(args[0]),
	})
	if err != nil {
		return err
	}

	c.printAction(out.Applied, out.Message, out.Reason)
	return nil
}

func (c *console) add(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errors.InvalidArgument("usage: add <item> [count]")
	}

	count := 1
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return errors.InvalidArgumentf("count must be a number, got %q", args[1])
		}
		count = n
	}

	out, err := c.service.AddItem(ctx, &game.AddItemInput{
		SessionID: c.sessionID,
		ItemID:    strings.ToLower(args[0]),
		Count:     count,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out, out.Message)
	return nil
}

func (c *console) status(ctx context.Context) error {
	out, err := c.service.GetCharacter(ctx, &game.GetCharacterInput{SessionID: c.sessionID})
	if err != nil {
		return err
	}

	renderCharacter(c.out, out.Character)
	if out.GameOver {
		fmt.Fprintln(c.out, "  (fallen)")
	}
	return nil
}

func (c *console) inventory(ctx context.Context) error {
	out, err := c.service.ListInventory(ctx, &game.ListInventoryInput{SessionID: c.sessionID})
	if err != nil {
		return err
	}

	renderInventory(c.out, out)
	return nil
}

func (c *console) history(ctx context.Context, args []string) error {
	limit := c.historyLimit
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return errors.InvalidArgumentf("limit must be a positive number, got %q", args[0])
		}
		limit = n
	}

	out, err := c.service.ListBattles(ctx, &game.ListBattlesInput{SessionID: c.sessionID, Limit: limit})
	if err != nil {
		return err
	}

	renderBattles(c.out, out.Battles)
	return nil
}

func (c *console) printAction(applied bool, message, reason string) {
	if applied {
		fmt.Fprintln(c.out, message)
		return
	}
	fmt.Fprintf(c.out, "Nothing happens: %s.\n", reason)
}

// parsePosition reads a one-based inventory position and returns the index
func parsePosition(args []string, usage string) (int, error) {
	if len(args) != 1 {
		return 0, errors.InvalidArgumentf("usage: %s", usage)
	}

	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, errors.InvalidArgumentf("%q is not an inventory position", args[0])
	}
	return n - 1, nil
}
