//go:build ebiten

package window

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/san-kum/slitsim/internal/sim"
	"github.com/san-kum/slitsim/internal/storage"
)

// Game adapts the tick loop to the ebiten.Game interface. Update runs one
// tick per frame; Draw uploads the heatmap unchanged.
type Game struct {
	loop    *sim.Loop
	tuner   sim.Tuner
	store   *storage.Store
	img     *ebiten.Image
	scale   int
	showHUD bool
	status  string
}

// New constructs a Game drawing the loop's heatmap at the given integer scale.
func New(loop *sim.Loop, opts Options) *Game {
	if opts.Scale < 1 {
		opts.Scale = 1
	}
	return &Game{
		loop:    loop,
		store:   opts.Store,
		scale:   opts.Scale,
		showHUD: true,
	}
}

// Run opens the window and blocks until it is closed.
func Run(loop *sim.Loop, opts Options) error {
	g := New(loop, opts)
	h := loop.Heatmap()

	ebiten.SetWindowTitle("slitsim")
	if opts.FPS > 0 {
		ebiten.SetTPS(opts.FPS)
	}
	ebiten.SetWindowSize(h.Width()*g.scale, h.Height()*g.scale)

	loop.Play()
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.loop.Toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		dir := 1
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			dir = -1
		}
		g.tuner.Cycle(dir)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		g.nudge(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		g.nudge(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		h := g.loop.Heatmap()
		if err := g.loop.Renderer().Recreate(h.Width(), h.Height()); err != nil {
			g.status = err.Error()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.save()
	}

	g.loop.Tick()
	return nil
}

func (g *Game) nudge(dir int) {
	if _, err := g.tuner.Nudge(g.loop, dir); err != nil {
		g.status = err.Error()
	}
}

func (g *Game) save() {
	if g.store == nil {
		g.status = "no data dir"
		return
	}
	if err := g.store.Init(); err != nil {
		g.status = err.Error()
		return
	}
	id, err := g.store.SaveLoop(g.loop)
	if err != nil {
		g.status = err.Error()
		return
	}
	g.status = "saved " + id
}

func (g *Game) Draw(screen *ebiten.Image) {
	h := g.loop.Heatmap()
	if g.img == nil || g.img.Bounds().Dx() != h.Width() || g.img.Bounds().Dy() != h.Height() {
		g.img = ebiten.NewImage(h.Width(), h.Height())
	}
	g.img.WritePixels(h.Pix())

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.scale), float64(g.scale))
	screen.DrawImage(g.img, op)

	if g.showHUD {
		lines := g.tuner.Describe(g.loop.Params())
		lines = append(lines, fmt.Sprintf("offset %.2f  tps %.0f", g.loop.Renderer().Offset(), ebiten.ActualTPS()))
		if g.status != "" {
			lines = append(lines, g.status)
		}
		ebitenutil.DebugPrint(screen, strings.Join(lines, "\n"))
	}
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	h := g.loop.Heatmap()
	return h.Width() * g.scale, h.Height() * g.scale
}
