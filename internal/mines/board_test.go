package mines

import (
	"math/rand/v2"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vancomm/minesweeper-ai/internal/knowledge"
)

func TestMain(m *testing.M) {
	Log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	m.Run()
}

func TestParseParams(t *testing.T) {
	tests := []struct {
		seed    string
		want    *Params
		wantErr bool
	}{
		{seed: "8:8:8", want: &Params{Height: 8, Width: 8, Hazards: 8}},
		{seed: "16:30:99", want: &Params{Height: 16, Width: 30, Hazards: 99}},
		{seed: "3:3:9", wantErr: true},
		{seed: "0:5:1", wantErr: true},
		{seed: "8:8", wantErr: true},
		{seed: "a:b:c", wantErr: true},
	}
	for _, test := range tests {
		t.Run(test.seed, func(t *testing.T) {
			p, err := ParseParams(test.seed)
			if test.wantErr {
				assert.ErrorIs(t, err, ErrInvalidParams)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, p)
			assert.Equal(t, test.seed, p.String())
		})
	}
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name   string
		params Params
	}{
		{name: "8x8(10)", params: Params{Height: 8, Width: 8, Hazards: 10}},
		{name: "16x16(40)", params: Params{Height: 16, Width: 16, Hazards: 40}},
		{name: "16x30(99)", params: Params{Height: 16, Width: 30, Hazards: 99}},
		{name: "5x5(16)", params: Params{Height: 5, Width: 5, Hazards: 16}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := rand.New(rand.NewPCG(1, 2))
			start := knowledge.Cell{Row: test.params.Height / 2, Col: test.params.Width / 2}

			b, err := Generate(test.params, &start, r)
			require.NoError(t, err)

			assert.Equal(t, test.params, b.Params())
			assert.Len(t, b.HazardCells(), test.params.Hazards)
			assert.False(t, b.IsHazard(start))
			assert.Zero(t, b.AdjacentHazards(start))
		})
	}
}

func TestGenerateTooManyHazards(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	start := knowledge.Cell{Row: 1, Col: 1}
	_, err := Generate(Params{Height: 3, Width: 3, Hazards: 1}, &start, r)
	assert.ErrorIs(t, err, ErrTooManyHazards)
}

func TestGenerateIsDeterministic(t *testing.T) {
	p := Params{Height: 9, Width: 9, Hazards: 10}
	a, err := Generate(p, nil, rand.New(rand.NewPCG(7, 7)))
	require.NoError(t, err)
	b, err := Generate(p, nil, rand.New(rand.NewPCG(7, 7)))
	require.NoError(t, err)
	assert.Equal(t, a.HazardCells(), b.HazardCells())
}

func TestFromLayout(t *testing.T) {
	b, err := FromLayout(
		"*..",
		".*.",
		"...",
	)
	require.NoError(t, err)

	assert.Equal(t, 3, b.Height())
	assert.Equal(t, 3, b.Width())
	assert.Equal(t, 2, b.Hazards())
	assert.Equal(t, "* - - \n- * - \n- - - \n", b.String())

	_, err = FromLayout("..", "...")
	assert.ErrorIs(t, err, ErrInvalidLayout)
	_, err = FromLayout("x")
	assert.ErrorIs(t, err, ErrInvalidLayout)
}

func TestAdjacentHazards(t *testing.T) {
	b, err := FromLayout(
		"*..",
		".*.",
		"...",
	)
	require.NoError(t, err)

	tests := []struct {
		cell knowledge.Cell
		want int
	}{
		{knowledge.Cell{Row: 0, Col: 0}, 1},
		{knowledge.Cell{Row: 0, Col: 1}, 2},
		{knowledge.Cell{Row: 0, Col: 2}, 1},
		{knowledge.Cell{Row: 1, Col: 0}, 2},
		{knowledge.Cell{Row: 1, Col: 1}, 1},
		{knowledge.Cell{Row: 2, Col: 2}, 1},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, b.AdjacentHazards(test.cell), test.cell.String())
	}

	assert.False(t, b.IsHazard(knowledge.Cell{Row: -1, Col: 0}))
}

func TestWon(t *testing.T) {
	b, err := FromLayout("*.", ".*")
	require.NoError(t, err)

	assert.True(t, b.Won(b.HazardCells()))
	assert.False(t, b.Won(b.HazardCells()[:1]))
	assert.False(t, b.Won([]knowledge.Cell{{Row: 0, Col: 0}, {Row: 0, Col: 1}}))
}
