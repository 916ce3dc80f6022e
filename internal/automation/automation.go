package automation

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/slitsim/internal/analysis"
	"github.com/san-kum/slitsim/internal/dynamo"
	"github.com/san-kum/slitsim/internal/metrics"
	"github.com/san-kum/slitsim/internal/sim"
)

// Scenario scripts parameter changes over a single continuous run. The time
// offset keeps advancing across steps, so the waterfall shows each change
// as a seam in one image.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep applies Params on top of the current parameters and then
// renders Ticks rows.
type ScenarioStep struct {
	Label  string             `yaml:"label"`
	Params map[string]float64 `yaml:"params"`
	Ticks  int                `yaml:"ticks"`
}

// StepResult summarizes the rows rendered during one step.
type StepResult struct {
	Label   string
	Params  dynamo.Params
	Ticks   int
	Offset  float64
	Metrics map[string]float64
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("%s: scenario has no steps", path)
	}

	return &scenario, nil
}

// RunScenario executes all steps on loop. Progress lines go to log when it is
// non-nil.
func RunScenario(ctx context.Context, scenario *Scenario, loop *sim.Loop, log io.Writer) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		if step.Ticks <= 0 {
			return results, fmt.Errorf("step %d: ticks must be positive, got %d", i+1, step.Ticks)
		}

		p := loop.Params()
		for k, v := range step.Params {
			var err error
			if p, err = p.Set(k, v); err != nil {
				return results, fmt.Errorf("step %d: %w", i+1, err)
			}
		}
		if err := loop.SetParams(p); err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		if log != nil {
			fmt.Fprintf(log, "step %d/%d: %s %s\n", i+1, len(scenario.Steps), step.Label, p)
		}

		loop.Play()
		res, err := loop.Run(ctx, sim.Config{MaxTicks: step.Ticks})
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, StepResult{
			Label:   step.Label,
			Params:  p,
			Ticks:   res.Ticks,
			Offset:  res.Offset,
			Metrics: res.Metrics,
		})
	}

	return results, nil
}

// ParameterSweep varies one parameter linearly and analyzes a single row per
// value.
type ParameterSweep struct {
	Base      dynamo.Params
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
	Width     int
	Margin    float64
}

// SweepResult holds the fringe statistics for one swept value.
type SweepResult struct {
	ParamValue float64
	Peak       float64
	Maxima     int
	Spacing    float64
	Expected   float64
	Visibility float64
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, sweep *ParameterSweep) ([]SweepResult, error) {
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d", sweep.NumSteps)
	}

	paramStep := (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	values := make([]float64, sweep.NumSteps)
	params := make([]dynamo.Params, sweep.NumSteps)
	for i := range params {
		values[i] = sweep.ParamMin + float64(i)*paramStep
		p, err := sweep.Base.Set(sweep.ParamName, values[i])
		if err != nil {
			return nil, err
		}
		params[i] = p
	}

	rows, err := sim.Sweep(ctx, params, sweep.Width)
	if err != nil {
		return nil, err
	}

	results := make([]SweepResult, len(rows))
	for i, row := range rows {
		p := params[i]
		r := analysis.Analyze(row, p, sweep.Margin)
		lo := math.Min(p.Slit1, p.Slit2) + sweep.Margin
		hi := math.Max(p.Slit1, p.Slit2) - sweep.Margin
		results[i] = SweepResult{
			ParamValue: values[i],
			Peak:       r.Peak,
			Maxima:     r.Maxima,
			Spacing:    r.Spacing,
			Expected:   r.ExpectedSpacing,
			Visibility: metrics.RowVisibility(analysis.Window(row, lo, hi)),
		}
	}

	return results, nil
}
