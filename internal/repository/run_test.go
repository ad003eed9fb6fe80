package repository

import (
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/vancomm/minesweeper-ai/internal/mines"
)

func TestRunFilterWhereClause(t *testing.T) {
	saturate := true
	tests := []struct {
		name       string
		filter     RunFilter
		wantClause string
		wantArgs   pgx.NamedArgs
	}{
		{
			name:       "empty",
			wantClause: "",
			wantArgs:   pgx.NamedArgs{},
		},
		{
			name:       "params",
			filter:     RunFilter{Params: &mines.Params{Height: 9, Width: 9, Hazards: 10}},
			wantClause: "height = @height AND width = @width AND hazards = @hazards",
			wantArgs:   pgx.NamedArgs{"height": 9, "width": 9, "hazards": 10},
		},
		{
			name: "params and saturate",
			filter: RunFilter{
				Params:   &mines.Params{Height: 16, Width: 30, Hazards: 99},
				Saturate: &saturate,
				Limit:    5,
			},
			wantClause: "height = @height AND width = @width AND hazards = @hazards AND saturate = @saturate",
			wantArgs:   pgx.NamedArgs{"height": 16, "width": 30, "hazards": 99, "saturate": true},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			clause, args := test.filter.WhereClause()
			assert.Equal(t, test.wantClause, clause)
			assert.Equal(t, test.wantArgs, args)
		})
	}
}

func TestRunWinRate(t *testing.T) {
	assert.Zero(t, Run{}.WinRate())
	assert.InDelta(t, 0.25, Run{Games: 8, Wins: 2}.WinRate(), 1e-9)
}
