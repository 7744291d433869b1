// Package render draws the puzzle board onto a tcell screen.
//
// Parts are boxes with a centered id label and one marker per probe.
// The held part draws last so it sits on top of anything it crosses,
// and the bottom row is reserved for the status bar.
package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"snapfit/core"
	"snapfit/engine"
	"snapfit/part"
	"snapfit/status"
)

var (
	styleBorder   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleLinked   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleHeld     = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleFill     = tcell.StyleDefault
	styleLabel    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleProbe    = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleProbeHot = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
	styleBanner   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorGreen).Bold(true)
)

// Renderer draws session state. It never mutates the session.
type Renderer struct {
	screen tcell.Screen
	reg    *status.Registry

	width  int
	height int
	muted  bool
}

func NewRenderer(screen tcell.Screen, reg *status.Registry) *Renderer {
	r := &Renderer{screen: screen, reg: reg}
	r.width, r.height = screen.Size()
	return r
}

// Resize records the new screen dimensions
func (r *Renderer) Resize(width, height int) {
	r.width = width
	r.height = height
}

// SetMuted controls the muted indicator in the status bar
func (r *Renderer) SetMuted(muted bool) {
	r.muted = muted
}

// Draw renders one frame and flushes it to the terminal
func (r *Renderer) Draw(sess *engine.Session) {
	r.screen.Clear()

	held := sess.Held()
	for _, p := range sess.Parts() {
		if p == held {
			continue
		}
		r.drawPart(p, false)
	}
	if held != nil {
		r.drawPart(held, true)
	}

	r.drawStatusBar(sess)
	if sess.Solved() {
		r.drawBanner()
	}

	r.screen.Show()
}

func (r *Renderer) drawPart(p *part.Part, held bool) {
	b := p.Bounds()
	border := styleBorder
	if p.ConnectedTo() != core.None {
		border = styleLinked
	}
	if held {
		border = styleHeld
	}

	// Interior first so borders, label, and probes draw over it
	for y := b.Y + 1; y < b.Bottom()-1; y++ {
		for x := b.X + 1; x < b.Right()-1; x++ {
			r.setCell(x, y, ' ', styleFill)
		}
	}
	for x := b.X; x < b.Right(); x++ {
		r.setCell(x, b.Y, '─', border)
		r.setCell(x, b.Bottom()-1, '─', border)
	}
	for y := b.Y; y < b.Bottom(); y++ {
		r.setCell(b.X, y, '│', border)
		r.setCell(b.Right()-1, y, '│', border)
	}
	r.setCell(b.X, b.Y, '┌', border)
	r.setCell(b.Right()-1, b.Y, '┐', border)
	r.setCell(b.X, b.Bottom()-1, '└', border)
	r.setCell(b.Right()-1, b.Bottom()-1, '┘', border)

	label := string(p.ID())
	if b.W > 2 && len(label) > b.W-2 {
		label = label[:b.W-2]
	}
	r.drawText(b.X+(b.W-len(label))/2, b.Center().Y, label, styleLabel)

	mark := '◦'
	probeStyle := styleProbe
	if p.ConnectedTo() != core.None {
		mark = '●'
		probeStyle = styleProbeHot
	}
	for _, pr := range p.Probes() {
		c := p.Pos().Add(pr.Offset)
		r.setCell(c.X, c.Y, mark, probeStyle)
	}
}

func (r *Renderer) drawStatusBar(sess *engine.Session) {
	y := r.height - 1
	if y < 0 {
		return
	}
	for x := 0; x < r.width; x++ {
		r.screen.SetContent(x, y, ' ', nil, styleStatus)
	}

	hint := "r reset  m sound  q quit "
	if r.muted {
		hint = "muted  " + hint
	}
	r.drawText(r.width-len(hint), y, hint, styleStatus)

	// Drawn after the hint so the counters win when the screen is narrow
	v := sess.Verifier()
	left := fmt.Sprintf(" %s  tick %d  pairs %d/%d  drags %d  snaps %d",
		sess.Name(), sess.Tick(), v.ActiveCount(), v.SolutionSize(),
		r.counter("session.drags"), r.counter("session.snaps"))
	if sess.Solved() {
		left += "  solved"
	}
	r.drawText(0, y, left, styleStatus)
}

func (r *Renderer) drawBanner() {
	lines := []string{"ASSEMBLY COMPLETE", "press r to play again"}
	w := 0
	for _, line := range lines {
		if len(line) > w {
			w = len(line)
		}
	}
	w += 4
	h := len(lines) + 2

	x0 := (r.width - w) / 2
	y0 := (r.height - h) / 3
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r.setCell(x0+x, y0+y, ' ', styleBanner)
		}
	}
	for i, line := range lines {
		r.drawText(x0+(w-len(line))/2, y0+1+i, line, styleBanner)
	}
}

func (r *Renderer) counter(key string) int64 {
	return r.reg.Ints.Get(key).Load()
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	for i, ch := range []rune(text) {
		r.setCell(x+i, y, ch, style)
	}
}

func (r *Renderer) setCell(x, y int, ch rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return
	}
	r.screen.SetContent(x, y, ch, nil, style)
}
