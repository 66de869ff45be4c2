package vscode

import (
	"sync"
	"testing"
	"time"

	"github.com/dshills/vscompat/internal/engine"
	"github.com/dshills/vscompat/internal/host"
	"github.com/dshills/vscompat/internal/logging"
)

type toast struct {
	message  string
	duration time.Duration
}

type fakeToaster struct {
	mu     sync.Mutex
	toasts []toast
}

func (f *fakeToaster) Toast(message string, d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.toasts = append(f.toasts, toast{message, d})
}

func newTestAPI(t *testing.T, contents ...string) (*API, *host.EditorManager, *fakeToaster) {
	t.Helper()
	m := host.NewEditorManager(host.WithManagerLogger(logging.Nop()))
	for i, c := range contents {
		m.OpenFile(string(rune('a'+i))+".txt", "", c)
	}
	toaster := &fakeToaster{}
	api := New(m, nil, toaster, nil, WithLogger(logging.Nop()))
	return api, m, toaster
}

func activeSession(t *testing.T, m *host.EditorManager) *engine.EditSession {
	t.Helper()
	s := m.Editor().Session()
	if s == nil {
		t.Fatal("expected an active session")
	}
	return s
}
