package vscode

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/dshills/vscompat/internal/engine"
	"github.com/dshills/vscompat/internal/host"
)

// TextDocument is a live view of an engine session. Every read goes to the
// session, so two documents wrapping the same session always agree.
type TextDocument struct {
	session *engine.EditSession
	manager *host.EditorManager
}

func newTextDocument(s *engine.EditSession, m *host.EditorManager) *TextDocument {
	if s == nil {
		return nil
	}
	return &TextDocument{session: s, manager: m}
}

// Session returns the engine session behind the document.
func (d *TextDocument) Session() *engine.EditSession {
	return d.session
}

// ID returns the id of the underlying session.
func (d *TextDocument) ID() string {
	return d.session.ID()
}

// Equal reports whether d and other wrap the same session.
func (d *TextDocument) Equal(other *TextDocument) bool {
	if d == nil || other == nil {
		return d == other
	}
	return d.session.ID() == other.session.ID()
}

func (d *TextDocument) file() *host.File {
	if d.manager == nil {
		return nil
	}
	f, _ := d.manager.FileForSession(d.session)
	return f
}

// URI returns the location of the document.
func (d *TextDocument) URI() string {
	if f := d.file(); f != nil {
		return f.URI()
	}
	return "untitled:" + d.session.ID()
}

// FileName returns the file system path of the document, or its display
// name when it has none.
func (d *TextDocument) FileName() string {
	f := d.file()
	if f == nil {
		return d.session.ID()
	}
	if p, err := f.Path(); err == nil {
		return p
	}
	return f.Name()
}

// IsUntitled reports whether the document has never been saved to disk.
func (d *TextDocument) IsUntitled() bool {
	f := d.file()
	return f == nil || f.IsUnsaved()
}

// IsDirty reports whether the document has unsaved changes.
func (d *TextDocument) IsDirty() bool {
	f := d.file()
	if f == nil {
		return d.session.Revision() > 0
	}
	return f.IsDirty()
}

// IsClosed reports whether the document's tab has been closed.
func (d *TextDocument) IsClosed() bool {
	return d.manager != nil && d.file() == nil
}

var languageIDs = map[string]string{
	".go":   "go",
	".lua":  "lua",
	".js":   "javascript",
	".ts":   "typescript",
	".json": "json",
	".md":   "markdown",
	".py":   "python",
	".toml": "toml",
	".yaml": "yaml",
	".yml":  "yaml",
	".html": "html",
	".css":  "css",
}

// LanguageID guesses the language from the file extension.
func (d *TextDocument) LanguageID() string {
	name := d.FileName()
	if id, ok := languageIDs[strings.ToLower(filepath.Ext(name))]; ok {
		return id
	}
	return "plaintext"
}

// Version increases with every edit. It starts at 1.
func (d *TextDocument) Version() int {
	return d.session.Revision() + 1
}

// LineCount returns the number of lines.
func (d *TextDocument) LineCount() int {
	return d.session.Length()
}

// EOL returns the document's line terminator.
func (d *TextDocument) EOL() (EndOfLine, error) {
	return EndOfLineFromNative(d.session.NewLineMode(), d.session.NewLineCharacter())
}

// GetText returns the text in r, or the whole document when r is nil.
func (d *TextDocument) GetText(r *Range) (string, error) {
	if r == nil {
		return d.session.Value(), nil
	}
	nr, err := r.ToNative()
	if err != nil {
		return "", err
	}
	return d.session.TextRange(nr), nil
}

// OffsetAt converts a position into a UTF-16 offset from the start of the
// document. Positions past the end are clamped first.
func (d *TextDocument) OffsetAt(p Position) (int, error) {
	pt, err := p.ToNative()
	if err != nil {
		return 0, err
	}
	return d.session.PositionToIndex(pt), nil
}

// PositionAt converts a UTF-16 offset into a position. Offsets past the end
// map to the end of the document.
func (d *TextDocument) PositionAt(offset int) (Position, error) {
	if offset < 0 {
		return Position{}, fmt.Errorf("%w: offset %d", ErrInvalidCoordinate, offset)
	}
	return PositionFromNative(d.session.IndexToPosition(offset)), nil
}

// ValidatePosition clamps p into the document.
func (d *TextDocument) ValidatePosition(p Position) Position {
	return PositionFromNative(d.session.ClipPosition(engine.Point{Row: p.Line, Column: p.Character}))
}

// ValidateRange clamps both ends of r into the document.
func (d *TextDocument) ValidateRange(r Range) Range {
	return NewRange(d.ValidatePosition(r.Start), d.ValidatePosition(r.End))
}

// GetWordRangeAtPosition returns the word touching p. ok is false when there
// is none.
func (d *TextDocument) GetWordRangeAtPosition(p Position) (Range, bool) {
	pt, err := p.ToNative()
	if err != nil {
		return Range{}, false
	}
	r := d.session.Selection().WordRange(pt)
	if r.IsEmpty() {
		return Range{}, false
	}
	return RangeFromNative(r), true
}

// TextLine describes one line of a document.
type TextLine struct {
	LineNumber                       int
	Text                             string
	Range                            Range
	RangeIncludingLineBreak          Range
	FirstNonWhitespaceCharacterIndex int
	IsEmptyOrWhitespace              bool
}

// LineAt returns the line with the given number.
func (d *TextDocument) LineAt(line int) (TextLine, error) {
	if line < 0 || line >= d.session.Length() {
		return TextLine{}, fmt.Errorf("%w: line %d", ErrInvalidCoordinate, line)
	}
	text := d.session.Line(line)
	end := Position{Line: line, Character: engine.UTF16Len(text)}
	tl := TextLine{
		LineNumber:              line,
		Text:                    text,
		Range:                   Range{Start: Position{Line: line}, End: end},
		RangeIncludingLineBreak: Range{Start: Position{Line: line}, End: end},
	}
	if line < d.session.Length()-1 {
		tl.RangeIncludingLineBreak.End = Position{Line: line + 1}
	}
	tl.FirstNonWhitespaceCharacterIndex = firstNonWhitespace(text)
	tl.IsEmptyOrWhitespace = tl.FirstNonWhitespaceCharacterIndex == end.Character
	return tl, nil
}

// LineAtPosition returns the line containing p.
func (d *TextDocument) LineAtPosition(p Position) (TextLine, error) {
	return d.LineAt(p.Line)
}

func firstNonWhitespace(s string) int {
	col := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return col
		}
		col += utf16.RuneLen(r)
	}
	return col
}
