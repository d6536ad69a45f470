package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.BattleResolved("goblin", OutcomeVictory)
	r.BattleResolved("goblin", OutcomeVictory)
	r.BattleResolved("troll", OutcomeDefeat)
	r.ItemUsed("small_heal")
	r.ItemEquipped("iron_sword")
	r.LevelsGained(2)
	r.LevelsGained(0)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.battles.WithLabelValues("goblin", OutcomeVictory)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.battles.WithLabelValues("troll", OutcomeDefeat)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.itemsUsed.WithLabelValues("small_heal")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.itemsEquipped.WithLabelValues("iron_sword")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.levelUps))

	count, err := testutil.GatherAndCount(reg, "arena_battles_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestNilRegistererStillCounts(t *testing.T) {
	r := New(nil)
	r.ItemUsed("mana_potion")
	assert.Equal(t, 1.0, testutil.ToFloat64(r.itemsUsed.WithLabelValues("mana_potion")))
}

func TestTwoRecordersOnSeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, OutcomeVictory, Outcome(true, false))
	assert.Equal(t, OutcomeStalemate, Outcome(false, true))
	assert.Equal(t, OutcomeDefeat, Outcome(false, false))
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg).LevelsGained(1)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "arena_level_ups_total 1")
}
