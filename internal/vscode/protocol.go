package vscode

import (
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Protocol converts p to an LSP position. Both count UTF-16 code units.
func (p Position) Protocol() protocol.Position {
	return protocol.Position{Line: protocol.UInteger(p.Line), Character: protocol.UInteger(p.Character)}
}

// PositionFromProtocol converts an LSP position.
func PositionFromProtocol(p protocol.Position) Position {
	return Position{Line: int(p.Line), Character: int(p.Character)}
}

// Protocol converts r to an LSP range.
func (r Range) Protocol() protocol.Range {
	return protocol.Range{Start: r.Start.Protocol(), End: r.End.Protocol()}
}

// RangeFromProtocol converts an LSP range.
func RangeFromProtocol(r protocol.Range) Range {
	return NewRange(PositionFromProtocol(r.Start), PositionFromProtocol(r.End))
}

// Protocol converts c to an incremental LSP change.
func (c TextDocumentContentChangeEvent) Protocol() protocol.TextDocumentContentChangeEvent {
	r := c.Range.Protocol()
	n := protocol.UInteger(c.RangeLength)
	return protocol.TextDocumentContentChangeEvent{Range: &r, RangeLength: &n, Text: c.Text}
}

// Protocol converts e to didChange notification parameters.
func (e TextDocumentChangeEvent) Protocol() protocol.DidChangeTextDocumentParams {
	changes := make([]any, len(e.ContentChanges))
	for i, c := range e.ContentChanges {
		changes[i] = c.Protocol()
	}
	return protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: protocol.DocumentUri(e.Document.URI())},
			Version:                protocol.Integer(e.Document.Version()),
		},
		ContentChanges: changes,
	}
}
