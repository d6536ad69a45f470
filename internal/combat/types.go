package combat

// State is a position in the battle state machine
type State string

// Battle states. A battle starts on the player's turn and ends in exactly one
// of the resolved states.
const (
	StatePlayerTurn State = "player_turn"
	StateEnemyTurn  State = "enemy_turn"
	StateVictory    State = "victory"
	StateDefeat     State = "defeat"
)

// IsResolved reports whether the battle is over
func (s State) IsResolved() bool {
	return s == StateVictory || s == StateDefeat
}

// DefaultMaxRounds caps a battle whose combatants cannot finish each other
const DefaultMaxRounds = 100

// Event types published to the event bus
const (
	EventCombatStarted  = "combat.started"
	EventCombatRound    = "combat.round"
	EventCombatResolved = "combat.resolved"
)

// Event context keys
const (
	ContextKeyRound        = "round"
	ContextKeyPlayerDamage = "player_damage"
	ContextKeyEnemyDamage  = "enemy_damage"
	ContextKeyPlayerHealth = "player_health"
	ContextKeyEnemyHealth  = "enemy_health"
	ContextKeyState        = "state"
	ContextKeyStalemate    = "stalemate"
)

// Result is the outcome of one battle
type Result struct {
	Victory   bool
	Stalemate bool
	Summary   string
	Log       []string
	Rounds    int
	State     State

	DamageDealt  int
	DamageTaken  int
	PlayerHealth int
	EnemyHealth  int
}
