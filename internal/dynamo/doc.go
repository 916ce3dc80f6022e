// Package dynamo provides the core primitives shared by the interference
// kernel, the scrolling renderer and the tick loop.
//
//   - [Params]: slit geometry and wave parameters for one evaluation
//   - [Row]: raw intensities, one per screen column
//   - [Control]: slider-style bounds for an adjustable parameter
//   - [ParallelFor]: chunked fan-out over independent columns
//
// # Example
//
//	p := dynamo.DefaultParams()
//	if err := p.Validate(); err != nil {
//		return err
//	}
//	row := make(dynamo.Row, width)
//	physics.FillRow(row, p, 0)
//
// # Thread Safety
//
// Params is a value type and is safe to copy between goroutines. Row is not
// synchronized; a row is owned by whoever filled it.
package dynamo
