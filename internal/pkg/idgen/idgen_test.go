package idgen_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-arena/internal/pkg/idgen"
)

func TestSequential(t *testing.T) {
	gen := idgen.NewSequential("enemy")
	assert.Equal(t, "enemy_1", gen.Generate())
	assert.Equal(t, "enemy_2", gen.Generate())

	bare := idgen.NewSequential("")
	assert.Equal(t, "1", bare.Generate())
}

func TestSequentialConcurrent(t *testing.T) {
	gen := idgen.NewSequential("")
	seen := sync.Map{}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, loaded := seen.LoadOrStore(gen.Generate(), true)
			assert.False(t, loaded)
		}()
	}
	wg.Wait()
}

func TestUUID(t *testing.T) {
	gen := idgen.NewUUID("game")
	id := gen.Generate()

	require.True(t, strings.HasPrefix(id, "game_"))
	_, err := uuid.Parse(strings.TrimPrefix(id, "game_"))
	assert.NoError(t, err)
	assert.NotEqual(t, id, gen.Generate())

	_, err = uuid.Parse(idgen.NewUUID("").Generate())
	assert.NoError(t, err)
}
