package engine

// Default configuration values.
const (
	DefaultTabSize = 4
)

// Option configures an EditSession during creation.
type Option func(*EditSession)

// WithContent sets the initial content of the session.
func WithContent(content string) Option {
	return func(s *EditSession) {
		s.initContent = content
	}
}

// WithTabSize sets the tab size for the session.
func WithTabSize(size int) Option {
	return func(s *EditSession) {
		if size > 0 {
			s.tabSize = size
		}
	}
}

// WithNewLineMode sets the new line mode of the session document.
// Unknown modes are ignored and the default (auto) is kept.
func WithNewLineMode(mode NewLineMode) Option {
	return func(s *EditSession) {
		if mode.valid() {
			s.doc.newLineMode = mode
		}
	}
}

// WithWrapLimit enables soft wrapping at the given number of screen columns.
// A limit of zero disables wrapping.
func WithWrapLimit(columns int) Option {
	return func(s *EditSession) {
		if columns >= 0 {
			s.wrapLimit = columns
		}
	}
}

// WithViewport sets the first visible screen row and the number of visible
// screen rows. A row count of zero means the whole session is visible.
func WithViewport(firstRow, rows int) Option {
	return func(s *EditSession) {
		if firstRow >= 0 {
			s.scrollTop = firstRow
		}
		if rows >= 0 {
			s.visibleRows = rows
		}
	}
}

// WithReadOnly creates a read-only session.
// Write operations will return ErrReadOnly.
func WithReadOnly() Option {
	return func(s *EditSession) {
		s.readOnly = true
	}
}

// WithID overrides the generated session identifier.
func WithID(id string) Option {
	return func(s *EditSession) {
		if id != "" {
			s.id = id
		}
	}
}
