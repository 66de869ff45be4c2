package host

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/vscompat/internal/logging"
)

// DefaultToastDuration is how long a toast stays visible when the caller
// does not choose.
const DefaultToastDuration = 5 * time.Second

// Toaster shows a transient message. Toasts cannot collect input.
type Toaster interface {
	Toast(message string, duration time.Duration)
}

// ToasterFunc adapts a function to the Toaster interface.
type ToasterFunc func(message string, duration time.Duration)

// Toast calls f.
func (f ToasterFunc) Toast(message string, duration time.Duration) {
	f(message, duration)
}

// LogToaster writes toasts to a logger. It is used when no terminal is attached.
type LogToaster struct {
	log *logging.Logger
}

// NewLogToaster creates a toaster that logs at info level.
func NewLogToaster(l *logging.Logger) *LogToaster {
	return &LogToaster{log: l}
}

// Toast logs message.
func (t *LogToaster) Toast(message string, duration time.Duration) {
	t.log.Info("toast (%s): %s", duration, message)
}

// TerminalToaster draws toasts on the bottom row of a tcell screen and clears
// them once their duration has elapsed. A newer toast replaces an older one.
type TerminalToaster struct {
	mu     sync.Mutex
	screen tcell.Screen
	style  tcell.Style
	timer  *time.Timer
	gen    int
}

// NewTerminalToaster creates a toaster drawing on screen.
func NewTerminalToaster(screen tcell.Screen) *TerminalToaster {
	return &TerminalToaster{
		screen: screen,
		style:  tcell.StyleDefault.Reverse(true),
	}
}

// Toast shows message for duration. Non-positive durations use
// DefaultToastDuration.
func (t *TerminalToaster) Toast(message string, duration time.Duration) {
	if duration <= 0 {
		duration = DefaultToastDuration
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
	}
	t.gen++
	gen := t.gen
	t.draw(message, t.style)
	t.timer = time.AfterFunc(duration, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.gen == gen {
			t.draw("", tcell.StyleDefault)
		}
	})
}

// Clear removes any visible toast immediately.
func (t *TerminalToaster) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
	}
	t.gen++
	t.draw("", tcell.StyleDefault)
}

// draw renders message on the bottom row, padded to the screen width.
func (t *TerminalToaster) draw(message string, style tcell.Style) {
	width, height := t.screen.Size()
	if width <= 0 || height <= 0 {
		return
	}
	y := height - 1
	x := 0
	g := uniseg.NewGraphemes(message)
	for g.Next() {
		w := g.Width()
		if x+w > width {
			break
		}
		runes := g.Runes()
		t.screen.SetContent(x, y, runes[0], runes[1:], style)
		x += max(w, 1)
	}
	for ; x < width; x++ {
		t.screen.SetContent(x, y, ' ', nil, style)
	}
	t.screen.Show()
}
