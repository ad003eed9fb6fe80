package knowledge

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomLayout(r *rand.Rand, height, width, hazards int) layoutOracle {
	o := layoutOracle{}
	for len(o) < hazards {
		o[Cell{Row: r.IntN(height), Col: r.IntN(width)}] = true
	}
	return o
}

func hazardCount(o layoutOracle, c Cell, height, width int) int {
	n := 0
	for _, nb := range Neighbors(c, height, width) {
		if o[nb] {
			n++
		}
	}
	return n
}

func isSuperset(t *testing.T, now, before []Cell) {
	t.Helper()
	have := map[Cell]bool{}
	for _, c := range now {
		have[c] = true
	}
	for _, c := range before {
		assert.True(t, have[c], "%s was forgotten", c)
	}
}

// TestRandomGames plays until a hazard is opened or nothing is left, and
// checks the knowledge base after every observation.
func TestRandomGames(t *testing.T) {
	sizes := []struct{ height, width, hazards int }{
		{3, 3, 1},
		{5, 7, 4},
		{9, 9, 10},
		{16, 16, 40},
		{30, 30, 150},
	}
	for _, size := range sizes {
		for _, saturate := range []bool{false, true} {
			name := fmt.Sprintf("%dx%d:%d saturate=%t",
				size.height, size.width, size.hazards, saturate)
			t.Run(name, func(t *testing.T) {
				for seed := range uint64(3) {
					r := rand.New(rand.NewPCG(seed, 7))
					layout := randomLayout(r, size.height, size.width, size.hazards)
					opts := []Option{WithOracle(layout)}
					if saturate {
						opts = append(opts, WithSaturation())
					}
					playRandom(t, New(size.height, size.width, opts...), layout, r)
				}
			})
		}
	}
}

func playRandom(t *testing.T, kb *KnowledgeBase, layout layoutOracle, r *rand.Rand) {
	t.Helper()
	h, w := kb.Height(), kb.Width()

	ingests := 0
	for {
		c, ok := kb.PickKnownSafeMove()
		if !ok {
			var err error
			c, err = kb.PickFallbackMove(r)
			if err != nil {
				require.ErrorIs(t, err, ErrNoMovesAvailable)
				break
			}
		}
		if layout[c] {
			break
		}

		safe, hazards := kb.KnownSafe(), kb.KnownHazards()
		require.NoError(t, kb.Ingest(c, hazardCount(layout, c, h, w)))
		ingests++

		assertInvariants(t, kb)
		isSuperset(t, kb.KnownSafe(), safe)
		isSuperset(t, kb.KnownHazards(), hazards)
		require.LessOrEqual(t, ingests, h*w)
	}

	for _, c := range kb.KnownSafe() {
		assert.False(t, layout[c], "%s deduced safe", c)
	}
	for _, c := range kb.KnownHazards() {
		assert.True(t, layout[c], "%s deduced hazard", c)
	}
}
