package host

import "errors"

// Host errors.
var (
	// ErrFileNotFound is returned when a file id does not name an open file.
	ErrFileNotFound = errors.New("file not found")

	// ErrNotOnDisk is returned when saving a file that has no file:// URI.
	ErrNotOnDisk = errors.New("file has no location on disk")

	// ErrInvalidManifest is returned when an extension manifest cannot be parsed.
	ErrInvalidManifest = errors.New("invalid extension manifest")

	// ErrUnsupportedSettingsFormat is returned for settings files with an
	// unknown extension.
	ErrUnsupportedSettingsFormat = errors.New("unsupported settings format")
)
