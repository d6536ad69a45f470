package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/KirkDiggler/rpg-arena/internal/catalog"
	"github.com/KirkDiggler/rpg-arena/internal/entities"
	"github.com/KirkDiggler/rpg-arena/internal/metrics"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/game"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/battlelog"
)

func renderCharacter(w io.Writer, c entities.CharacterSnapshot) {
	fmt.Fprintf(w, "%s  Level %d  (%d/%d exp)\n", c.Name, c.Level, c.Exp, c.ExpToNext)
	fmt.Fprintf(w, "  HP %d/%d  MP %d/%d  Gold %d\n", c.Health, c.MaxHealth, c.Mana, c.MaxMana, c.Gold)
	fmt.Fprintf(w, "  Attack %d (base %d)  Defense %d\n", c.EffectiveAttack, c.Attack, c.EffectiveDefense)
}

func renderCombat(w io.Writer, out *game.StartCombatOutput) {
	for _, line := range out.Log {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w, out.Summary)

	if out.Rewards != nil {
		for _, msg := range out.Rewards.Messages {
			fmt.Fprintf(w, "  %s\n", msg)
		}
	}
	if out.GameOver {
		fmt.Fprintln(w, "Game over! Type 'new' to start again.")
	}
}

func renderInventory(w io.Writer, out *game.ListInventoryOutput) {
	if len(out.Items) == 0 {
		fmt.Fprintln(w, "Your pack is empty.")
	} else {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tITEM\tKIND\tQTY")
		for _, item := range out.Items {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", item.Index+1, item.Name, item.Kind, item.Count)
		}
		_ = tw.Flush()
	}

	parts := make([]string, 0, len(out.Equipped))
	for _, slot := range out.Equipped {
		name := slot.Name
		if name == "" {
			name = "-"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", slot.Slot, name))
	}
	fmt.Fprintf(w, "Equipped  %s\n", strings.Join(parts, "  "))
}

func renderBattles(w io.Writer, records []*battlelog.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No battles fought yet.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tENEMY\tRESULT\tROUNDS\tGOLD\tEXP")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\n",
			r.RecordedAt.Format("15:04:05"), r.EnemyName, metrics.Outcome(r.Victory, r.Stalemate), r.Rounds, r.Gold, r.Exp)
	}
	_ = tw.Flush()
}

func renderCatalog(w io.Writer, cat *catalog.Catalog) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "ITEM\tNAME\tKIND\tEFFECT")
	for _, item := range cat.Items() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", item.ID, item.Name, item.Kind, describeEffect(item))
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "ENEMY\tNAME\tHP\tATK\tEXP\tGOLD\tLOOT")
	for _, e := range cat.Enemies() {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d-%d\t%s\n",
			e.Key, e.Name, e.Health, e.Attack, e.ExpReward, e.GoldMin, e.GoldMax, strings.Join(e.Loot, ", "))
	}
	_ = tw.Flush()
}

func describeEffect(item *entities.Item) string {
	switch {
	case item.IsConsumable():
		return fmt.Sprintf("%s %d", item.Consumable.Effect, item.Consumable.Magnitude)
	case item.IsEquipment():
		var bonuses []string
		if item.Equipment.Bonuses.Attack > 0 {
			bonuses = append(bonuses, fmt.Sprintf("+%d atk", item.Equipment.Bonuses.Attack))
		}
		if item.Equipment.Bonuses.Defense > 0 {
			bonuses = append(bonuses, fmt.Sprintf("+%d def", item.Equipment.Bonuses.Defense))
		}
		return fmt.Sprintf("%s %s", item.Equipment.Slot, strings.Join(bonuses, " "))
	default:
		return ""
	}
}
