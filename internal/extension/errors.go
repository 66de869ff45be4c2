package extension

import (
	"errors"

	"github.com/dshills/vscompat/internal/host"
)

var (
	// ErrNilManifest is returned when a nil manifest is provided.
	ErrNilManifest = errors.New("manifest is nil")

	// ErrInvalidManifest is returned when package.json cannot be used.
	ErrInvalidManifest = host.ErrInvalidManifest

	// ErrAlreadyLoaded is returned when loading a loaded extension.
	ErrAlreadyLoaded = errors.New("extension is already loaded")

	// ErrNotLoaded is returned when activating an extension that is not loaded.
	ErrNotLoaded = errors.New("extension is not loaded")
)
