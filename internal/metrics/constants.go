package metrics

// Metric names
const (
	Namespace = "arena"

	MetricNameBattlesTotal       = "battles_total"
	MetricNameItemsUsedTotal     = "items_used_total"
	MetricNameItemsEquippedTotal = "items_equipped_total"
	MetricNameLevelUpsTotal      = "level_ups_total"
)

// Metric help text
const (
	HelpTextBattlesTotal       = "Total number of battles fought, by enemy and outcome"
	HelpTextItemsUsedTotal     = "Total number of consumables used"
	HelpTextItemsEquippedTotal = "Total number of items equipped"
	HelpTextLevelUpsTotal      = "Total number of levels gained"
)

// Label names
const (
	LabelEnemy   = "enemy"
	LabelOutcome = "outcome"
	LabelItem    = "item"
)

// Battle outcomes
const (
	OutcomeVictory   = "victory"
	OutcomeDefeat    = "defeat"
	OutcomeStalemate = "stalemate"
)
