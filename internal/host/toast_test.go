package host

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func newTestScreen(t *testing.T, width, height int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	s.SetSize(width, height)
	t.Cleanup(s.Fini)
	return s
}

func bottomRow(s tcell.Screen) string {
	width, height := s.Size()
	var out []rune
	for x := 0; x < width; x++ {
		r, _, _, _ := s.GetContent(x, height-1) //nolint:staticcheck
		out = append(out, r)
	}
	return string(out)
}

func TestTerminalToasterDrawsAndClears(t *testing.T) {
	screen := newTestScreen(t, 10, 3)
	toaster := NewTerminalToaster(screen)

	toaster.Toast("boom", time.Hour)
	if got := bottomRow(screen); got != "boom      " {
		t.Errorf("expected toast on bottom row, got %q", got)
	}

	toaster.Clear()
	if got := bottomRow(screen); got != "          " {
		t.Errorf("expected cleared row, got %q", got)
	}
}

func TestTerminalToasterTruncates(t *testing.T) {
	screen := newTestScreen(t, 4, 1)
	NewTerminalToaster(screen).Toast("overflowing", time.Hour)

	if got := bottomRow(screen); got != "over" {
		t.Errorf("expected truncated toast, got %q", got)
	}
}

func TestTerminalToasterExpires(t *testing.T) {
	screen := newTestScreen(t, 6, 1)
	toaster := NewTerminalToaster(screen)
	toaster.Toast("gone", 10*time.Millisecond)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		toaster.mu.Lock()
		row := bottomRow(screen)
		toaster.mu.Unlock()
		if row == "      " {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Error("expected toast to clear after its duration")
}

func TestToasterFunc(t *testing.T) {
	var got string
	var d time.Duration
	var toaster Toaster = ToasterFunc(func(msg string, dur time.Duration) {
		got, d = msg, dur
	})
	toaster.Toast("hi", time.Second)
	if got != "hi" || d != time.Second {
		t.Errorf("unexpected toast %q %v", got, d)
	}
}
