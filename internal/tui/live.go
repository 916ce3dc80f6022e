package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/slitsim/internal/dynamo"
	"github.com/san-kum/slitsim/internal/sim"
)

const (
	width       = 70
	height      = 20
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer redraws an ASCII waterfall of the loop's heatmap as rows
// arrive, at most frameRate times per second.
type LiveRenderer struct {
	loop      *sim.Loop
	out       io.Writer
	frameRate int
	lastFrame time.Time
}

func NewLiveRenderer(loop *sim.Loop, out io.Writer, frameRate int) *LiveRenderer {
	if frameRate <= 0 {
		frameRate = 30
	}
	return &LiveRenderer{loop: loop, out: out, frameRate: frameRate}
}

func (r *LiveRenderer) OnRow(row dynamo.Row, gray []uint8, t float64) {
	elapsed := time.Since(r.lastFrame)
	if elapsed < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = time.Now()
	r.render(t)
}

func (r *LiveRenderer) render(t float64) {
	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  %s  t=%.2f\n", r.loop.Params(), t))
	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	for _, line := range strings.Split(strings.TrimRight(renderASCII(r.loop.Heatmap(), width, height), "\n"), "\n") {
		b.WriteString("  " + line + "\n")
	}

	b.WriteString("  " + strings.Repeat("-", width) + "\n")
	fmt.Fprint(r.out, b.String())
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }
