// Package scope shows the DAC output in an oscilloscope window
package scope

import (
	"fmt"
	"image/color"

	"dacwave/core"
	"dacwave/host/keys"
	"dacwave/host/scope/plot"
	"dacwave/output"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	screenWidth  = 512
	screenHeight = 288
	traceTop     = 24
	traceHeight  = screenHeight - traceTop - 8
	gridDivs     = 8
)

var (
	colorGrid  = color.RGBA{0x20, 0x40, 0x20, 0xFF}
	colorTrace = color.RGBA{0x40, 0xFF, 0x40, 0xFF}
)

// Scope is an ebiten game drawing the most recent samples of a ring.
// A, B and Space press the buttons when buttons is set; Escape or Q closes.
type Scope struct {
	ring    *output.Ring
	buttons keys.Buttons
	mode    func() core.Mode

	samples []core.Sample
	points  []plot.Point
}

// New creates a scope over ring. buttons and mode may be nil.
func New(ring *output.Ring, buttons keys.Buttons, mode func() core.Mode) *Scope {
	return &Scope{ring: ring, buttons: buttons, mode: mode}
}

// Run opens the window and blocks until it is closed
func Run(s *Scope, title string) error {
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(screenWidth*2, screenHeight*2)
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(s); err != nil && err != ebiten.Termination {
		return err
	}
	return nil
}

func (s *Scope) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if s.buttons == nil {
		return nil
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace), inpututil.IsKeyJustPressed(ebiten.KeyX):
		keys.Apply(keys.ActionPressBoth, s.buttons)
	case inpututil.IsKeyJustPressed(ebiten.KeyA):
		keys.Apply(keys.ActionPressA, s.buttons)
	case inpututil.IsKeyJustPressed(ebiten.KeyB):
		keys.Apply(keys.ActionPressB, s.buttons)
	}
	return nil
}

func (s *Scope) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	for i := 0; i <= gridDivs; i++ {
		x := float32(i) * screenWidth / gridDivs
		y := traceTop + float32(i)*traceHeight/gridDivs
		vector.StrokeLine(screen, x, traceTop, x, traceTop+traceHeight, 1, colorGrid, false)
		vector.StrokeLine(screen, 0, y, screenWidth, y, 1, colorGrid, false)
	}

	s.samples = s.ring.Snapshot(s.samples[:0])
	s.points = plot.Points(s.points[:0], s.samples, screenWidth, traceHeight)
	for i := 1; i < len(s.points); i++ {
		a, b := s.points[i-1], s.points[i]
		vector.StrokeLine(screen, a.X, traceTop+a.Y, b.X, traceTop+b.Y, 1, colorTrace, true)
	}

	st := plot.Measure(s.samples)
	mode := "?"
	if s.mode != nil {
		mode = s.mode().String()
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("mode %-8s min %3d max %3d period %4d ticks   total %d",
		mode, st.Min, st.Max, st.Period, s.ring.Total()))
}

func (s *Scope) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}
