package optim

import (
	"context"
	"math"

	"github.com/san-kum/slitsim/internal/dynamo"
	"github.com/san-kum/slitsim/internal/physics"
)

// Score rates a rendered row; lower is better.
type Score func(row dynamo.Row, p dynamo.Params) float64

// GridSearch evaluates every combination of the given parameter values and
// keeps the one with the lowest score.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{lo}
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	return out
}

// Search renders one row of width columns per candidate. Candidates that fail
// validation are skipped. It returns base unchanged and +Inf when nothing
// valid was found.
func (g *GridSearch) Search(ctx context.Context, base dynamo.Params, width int, score Score) (dynamo.Params, float64, error) {
	best := math.Inf(1)
	bestParams := base
	row := make(dynamo.Row, width)

	err := g.searchRecursive(ctx, 0, base, row, score, &best, &bestParams)
	return bestParams, best, err
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current dynamo.Params,
	row dynamo.Row,
	score Score,
	best *float64,
	bestParams *dynamo.Params,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		if current.Validate() != nil {
			return nil
		}
		physics.FillRow(row, current, 0)

		val := score(row, current)
		if val < *best {
			*best = val
			*bestParams = current
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		next, err := current.Set(paramName, val)
		if err != nil {
			return err
		}
		if err := g.searchRecursive(ctx, depth+1, next, row, score, best, bestParams); err != nil {
			return err
		}
	}
	return nil
}
