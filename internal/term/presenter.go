// Package term renders frames into a terminal with tcell. Each cell shows
// two vertically stacked pixels using the upper half block glyph.
package term

import (
	"sync"
	"time"

	"raycaster/internal/engine"
	"raycaster/internal/graphics"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const halfBlock = '▀'

// action is a movement request decoded from one key event
type action uint8

const (
	actionNone action = iota
	actionForward
	actionBack
	actionLeft
	actionRight
	actionStrafeLeft
	actionStrafeRight
	numActions
)

// Presenter is both the engine.InputSource and engine.Presenter of the
// terminal front end. Terminals only send key presses (with auto-repeat),
// so a press counts as held for the hold window after its last event.
type Presenter struct {
	screen tcell.Screen
	events chan tcell.Event
	done   chan struct{} // closed by Close
	pumped chan struct{} // closed when the event goroutine exits
	once   sync.Once

	hold     time.Duration
	held     [numActions]time.Time // expiry per action
	quit     bool
	now      func() time.Time
	minFrame time.Duration
	lastShow time.Time

	status string
}

// NewPresenter wraps an initialised screen. hold is how long a key press
// keeps its intent active.
func NewPresenter(screen tcell.Screen, hold time.Duration) *Presenter {
	return &Presenter{
		screen: screen,
		events: make(chan tcell.Event, 64),
		done:   make(chan struct{}),
		pumped: make(chan struct{}),
		hold:   hold,
		now:    time.Now,
	}
}

// SetFrameInterval limits Present to one frame per interval; zero disables.
func (p *Presenter) SetFrameInterval(d time.Duration) {
	p.minFrame = d
}

// Start begins reading terminal events on a separate goroutine. The
// goroutine ends when the screen is finalised or Close is called, even if
// nobody drains the queue any more.
func (p *Presenter) Start() {
	go func() {
		defer close(p.pumped)
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				close(p.events)
				return
			}
			select {
			case p.events <- ev:
			case <-p.done:
				return
			}
		}
	}()
}

// Close stops the event goroutine and restores the terminal. Safe to call
// more than once.
func (p *Presenter) Close() {
	p.once.Do(func() {
		close(p.done)
		p.screen.Fini()
	})
}

// ViewSize returns the framebuffer size that fills the screen above the
// status line: one pixel per column, two per row. Columns are capped at
// maxColumns when positive.
func (p *Presenter) ViewSize(maxColumns int) (width, height int) {
	sw, sh := p.screen.Size()
	if maxColumns > 0 && sw > maxColumns {
		sw = maxColumns
	}
	rows := sh - 1
	if rows < 1 {
		rows = 1
	}
	if sw < 1 {
		sw = 1
	}
	return sw, rows * 2
}

// SetStatus sets the text of the bottom line
func (p *Presenter) SetStatus(s string) {
	p.status = s
}

// Poll drains pending terminal events and returns the intents whose hold
// window is still open.
func (p *Presenter) Poll() (engine.Intents, bool) {
drain:
	for {
		select {
		case ev, ok := <-p.events:
			if !ok {
				p.quit = true
				break drain
			}
			p.handleEvent(ev)
		default:
			break drain
		}
	}
	return p.intents(p.now()), p.quit
}

func (p *Presenter) intents(now time.Time) engine.Intents {
	active := func(a action) bool { return now.Before(p.held[a]) }
	strafeLeft, strafeRight := active(actionStrafeLeft), active(actionStrafeRight)
	return engine.Intents{
		Forward: active(actionForward),
		Back:    active(actionBack),
		Left:    active(actionLeft) || strafeLeft,
		Right:   active(actionRight) || strafeRight,
		Strafe:  strafeLeft || strafeRight,
	}
}

func (p *Presenter) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		p.screen.Sync()
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			p.quit = true
			return
		}
		if ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q') {
			p.quit = true
			return
		}
		if a := keyToAction(ev); a != actionNone {
			p.held[a] = p.now().Add(p.hold)
		}
	}
}

// keyToAction maps a key event to a movement action. Alt turns the
// left/right keys into strafing.
func keyToAction(ev *tcell.EventKey) action {
	alt := ev.Modifiers()&tcell.ModAlt != 0

	key := ev.Key()
	if key == tcell.KeyRune {
		switch ev.Rune() {
		case 'w', 'W':
			key = tcell.KeyUp
		case 's', 'S':
			key = tcell.KeyDown
		case 'a', 'A':
			key = tcell.KeyLeft
		case 'd', 'D':
			key = tcell.KeyRight
		case ',', '<':
			return actionStrafeLeft
		case '.', '>':
			return actionStrafeRight
		}
	}

	switch key {
	case tcell.KeyUp:
		return actionForward
	case tcell.KeyDown:
		return actionBack
	case tcell.KeyLeft:
		if alt {
			return actionStrafeLeft
		}
		return actionLeft
	case tcell.KeyRight:
		if alt {
			return actionStrafeRight
		}
		return actionRight
	}
	return actionNone
}

// Present draws fb scaled to the screen above the status line.
func (p *Presenter) Present(fb *graphics.Framebuffer) error {
	if p.minFrame > 0 && !p.lastShow.IsZero() {
		if wait := p.minFrame - p.now().Sub(p.lastShow); wait > 0 {
			time.Sleep(wait)
		}
	}

	sw, sh := p.screen.Size()
	rows := sh - 1
	cols := sw
	if fb.Width() < cols {
		cols = fb.Width()
	}
	if rows > 0 && cols > 0 && fb.Height() > 0 {
		pixelRows := rows * 2
		for cy := 0; cy < rows; cy++ {
			topY := (2 * cy) * fb.Height() / pixelRows
			botY := (2*cy + 1) * fb.Height() / pixelRows
			for cx := 0; cx < cols; cx++ {
				x := cx * fb.Width() / cols
				top, bot := fb.At(x, topY), fb.At(x, botY)
				style := tcell.StyleDefault.
					Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
					Background(tcell.NewRGBColor(int32(bot.R), int32(bot.G), int32(bot.B)))
				p.screen.SetContent(cx, cy, halfBlock, nil, style)
			}
		}
	}
	if sh > 0 {
		p.drawStatus(sh-1, sw)
	}

	p.screen.Show()
	p.lastShow = p.now()
	return nil
}

// drawStatus writes the status text on row y, truncated and padded to width
func (p *Presenter) drawStatus(y, width int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	text := runewidth.Truncate(p.status, width, "…")
	x := 0
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		p.screen.SetContent(x, y, r, nil, style)
		x += w
	}
	for ; x < width; x++ {
		p.screen.SetContent(x, y, ' ', nil, style)
	}
}
