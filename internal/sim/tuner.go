package sim

import (
	"fmt"

	"github.com/san-kum/slitsim/internal/dynamo"
)

// Tuner tracks which control the keyboard currently adjusts. All front ends
// share it so tab and up/down behave the same everywhere.
type Tuner struct {
	sel int
}

func (t *Tuner) Selected() dynamo.Control { return dynamo.Controls[t.sel] }

func (t *Tuner) Index() int { return t.sel }

// Cycle moves the selection by dir controls, wrapping at either end.
func (t *Tuner) Cycle(dir int) dynamo.Control {
	n := len(dynamo.Controls)
	t.sel = ((t.sel+dir)%n + n) % n
	return t.Selected()
}

// Nudge steps the selected parameter on l by dir and publishes the result.
func (t *Tuner) Nudge(l *Loop, dir int) (dynamo.Params, error) {
	p := l.Params().Nudge(t.Selected(), dir)
	if err := l.SetParams(p); err != nil {
		return l.Params(), err
	}
	return p, nil
}

// Describe renders every control with the selected one marked.
func (t *Tuner) Describe(p dynamo.Params) []string {
	lines := make([]string, len(dynamo.Controls))
	for i, c := range dynamo.Controls {
		v, _ := p.Get(c.Key)
		marker := " "
		if i == t.sel {
			marker = ">"
		}
		lines[i] = fmt.Sprintf("%s %-6s %5.2f", marker, c.Label, v)
	}
	return lines
}
