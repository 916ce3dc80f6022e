package sim

import (
	"context"
	"sync"

	"github.com/san-kum/slitsim/internal/dynamo"
	"github.com/san-kum/slitsim/internal/physics"
)

// Sweep evaluates one row per parameter set concurrently. Results keep the
// order of params.
func Sweep(ctx context.Context, params []dynamo.Params, width int) ([]dynamo.Row, error) {
	if width <= 0 {
		return nil, dynamo.ErrInvalidDimensions
	}
	for _, p := range params {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}

	rows := make([]dynamo.Row, len(params))
	errs := make([]error, len(params))

	var wg sync.WaitGroup
	for i := range params {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			if err := ctx.Err(); err != nil {
				errs[idx] = err
				return
			}
			row := make(dynamo.Row, width)
			physics.FillRow(row, params[idx], 1)
			rows[idx] = row
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return rows, nil
}
