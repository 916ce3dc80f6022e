package gui

import (
	"fmt"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/slitsim/internal/audio"
	"github.com/san-kum/slitsim/internal/dynamo"
	"github.com/san-kum/slitsim/internal/sim"
	"github.com/san-kum/slitsim/internal/storage"
)

// Theme Colors (Monochrome Hyper-Minimalist)
var (
	ColPanel   = rl.NewColor(10, 10, 10, 200)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(90, 90, 90, 255)
)

const statusFrames = 120

type Options struct {
	FPS   int
	Audio bool
	Store *storage.Store
}

type App struct {
	Loop  *sim.Loop
	Tuner sim.Tuner
	Store *storage.Store
	Font  rl.Font

	Tex    rl.Texture2D
	pixels []color.RGBA

	ShowHUD bool
	status  string
	statusT int

	Audio *audio.Processor
}

func initWindow(width, height, fps int) {
	rl.InitWindow(int32(width), int32(height), "slitsim")
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

// loadFont prefers Liberation Mono and falls back to raylib's built-in font.
func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	if font.Texture.ID == 0 {
		return rl.GetFontDefault()
	}
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// Run opens a window the size of the loop's heatmap and blocks until it is
// closed. The loop starts playing.
func Run(loop *sim.Loop, opts Options) error {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	h := loop.Heatmap()
	initWindow(h.Width(), h.Height(), opts.FPS)
	defer rl.CloseWindow()

	app := NewApp(loop, opts)
	defer app.Close()

	loop.Play()
	app.RunLoop()
	return nil
}

func NewApp(loop *sim.Loop, opts Options) *App {
	app := &App{
		Loop:    loop,
		Store:   opts.Store,
		Font:    loadFont(),
		ShowHUD: true,
	}

	if opts.Audio {
		proc := audio.NewProcessor()
		if err := proc.Start(); err != nil {
			app.flash(fmt.Sprintf("audio off: %v", err))
		} else {
			app.Audio = proc
			loop.AddObserver(sim.ObserverFunc(func(_ dynamo.Row, gray []uint8, _ float64) {
				proc.SetRow(gray)
			}))
		}
	}

	app.loadTexture()
	return app
}

func (a *App) loadTexture() {
	h := a.Loop.Heatmap()
	img := rl.GenImageColor(h.Width(), h.Height(), rl.Black)
	a.Tex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	a.pixels = make([]color.RGBA, h.Width()*h.Height())
}

func (a *App) Close() {
	rl.UnloadTexture(a.Tex)
	if a.Audio != nil {
		a.Audio.Stop()
	}
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

func (a *App) flash(msg string) {
	a.status = msg
	a.statusT = statusFrames
}

// Update handles input and advances the loop by one row. It returns false
// once the user asked to quit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		return false
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		if a.Loop.Toggle() {
			a.flash("playing")
		} else {
			a.flash("paused")
		}
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		dir := 1
		if rl.IsKeyDown(rl.KeyLeftShift) {
			dir = -1
		}
		a.Tuner.Cycle(dir)
	}
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK) {
		a.nudge(1)
	}
	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ) {
		a.nudge(-1)
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.ShowHUD = !a.ShowHUD
	}
	if rl.IsKeyPressed(rl.KeyR) {
		h := a.Loop.Heatmap()
		if err := a.Loop.Renderer().Recreate(h.Width(), h.Height()); err != nil {
			a.flash(err.Error())
		} else {
			a.flash("cleared")
		}
	}
	if rl.IsKeyPressed(rl.KeyS) {
		a.save()
	}

	a.Loop.Tick()
	if a.statusT > 0 {
		a.statusT--
	}
	return true
}

func (a *App) nudge(dir int) {
	if _, err := a.Tuner.Nudge(a.Loop, dir); err != nil {
		a.flash(err.Error())
	}
}

func (a *App) save() {
	if a.Store == nil {
		a.flash("no data dir")
		return
	}
	if err := a.Store.Init(); err != nil {
		a.flash(err.Error())
		return
	}
	id, err := a.Store.SaveLoop(a.Loop)
	if err != nil {
		a.flash(err.Error())
		return
	}
	a.flash("saved " + id)
}

// upload copies the heatmap into the texture.
func (a *App) upload() {
	pix := a.Loop.Heatmap().Pix()
	for i := range a.pixels {
		o := i * 4
		a.pixels[i] = color.RGBA{R: pix[o], G: pix[o+1], B: pix[o+2], A: pix[o+3]}
	}
	rl.UpdateTexture(a.Tex, a.pixels)
}

func (a *App) Draw() {
	a.upload()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	rl.DrawTexture(a.Tex, 0, 0, rl.White)

	if a.ShowHUD {
		a.DrawHUD()
	}
	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	rl.DrawRectangle(10, 10, 220, 150, ColPanel)
	a.drawText("slitsim", 20, 18, 20, ColSelect)

	status := "RUNNING"
	col := ColSelect
	if !a.Loop.Playing() {
		status = "PAUSED"
		col = ColTextDim
	}
	a.drawText(status, 140, 22, 14, col)

	y := 48
	for i, line := range a.Tuner.Describe(a.Loop.Params()) {
		c := ColText
		if i == a.Tuner.Index() {
			c = ColSelect
		}
		a.drawText(line, 20, y, 16, c)
		y += 20
	}
	a.drawText(fmt.Sprintf("offset %.2f  %d FPS", a.Loop.Renderer().Offset(), int32(rl.GetFPS())), 20, y+4, 12, ColTextDim)

	bottom := int(rl.GetScreenHeight()) - 20
	a.drawText("[SPACE] PLAY  [TAB] PARAM  [UP/DOWN] ADJUST  [S] SAVE  [R] CLEAR  [H] HUD  [Q] QUIT", 10, bottom, 12, ColTextDim)
	if a.statusT > 0 {
		a.drawText(a.status, 10, bottom-18, 14, ColAccent)
	}
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}
