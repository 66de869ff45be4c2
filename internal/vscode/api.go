package vscode

import (
	"time"

	"github.com/dshills/vscompat/internal/host"
	"github.com/dshills/vscompat/internal/logging"
)

// API is the extension-facing surface.
type API struct {
	Commands  *Commands
	Window    *Window
	Workspace *Workspace
}

type options struct {
	log           *logging.Logger
	toastDuration time.Duration
}

// Option configures New.
type Option func(*options)

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

// WithToastDuration sets how long messages stay on screen.
func WithToastDuration(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.toastDuration = d
		}
	}
}

// New builds the API over manager. contribs, toaster and settings may be
// nil; nil settings are replaced with an empty in-memory set.
func New(manager *host.EditorManager, contribs *host.Contributions, toaster host.Toaster, settings *host.Settings, opts ...Option) *API {
	o := options{
		log:           logging.New("vscode"),
		toastDuration: host.DefaultToastDuration,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if settings == nil {
		settings = host.NewSettings(nil)
	}
	return &API{
		Commands: newCommands(manager, contribs, o.log.WithComponent("commands")),
		Window: &Window{
			manager:       manager,
			toaster:       toaster,
			toastDuration: o.toastDuration,
			log:           o.log.WithComponent("window"),
		},
		Workspace: &Workspace{
			manager:  manager,
			settings: settings,
			log:      o.log.WithComponent("workspace"),
		},
	}
}
