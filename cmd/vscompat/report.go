package main

import (
	"github.com/tidwall/sjson"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dshills/vscompat/internal/extension"
	"github.com/dshills/vscompat/internal/vscode"
)

// report is the JSON summary printed by the run command.
type report struct {
	data []byte
}

func newReport(m *extension.Manifest) *report {
	r := &report{data: []byte(`{}`)}
	r.set("extension.id", m.ID())
	if m.Version != "" {
		r.set("extension.version", m.Version)
	}
	return r
}

func (r *report) set(path string, value any) {
	if out, err := sjson.SetBytes(r.data, path, value); err == nil {
		r.data = out
	}
}

func (r *report) setState(s extension.State) {
	r.set("extension.state", s.String())
}

func (r *report) setCommands(ids []string) {
	if ids == nil {
		ids = []string{}
	}
	r.set("commands", ids)
}

func (r *report) setMessages(msgs []string) {
	if msgs == nil {
		msgs = []string{}
	}
	r.set("messages", msgs)
}

func (r *report) setChanges(changes []protocol.DidChangeTextDocumentParams) {
	if changes == nil {
		changes = []protocol.DidChangeTextDocumentParams{}
	}
	r.set("changes", changes)
}

func (r *report) setResult(id string, result any, err error) {
	r.set("command.id", id)
	if err != nil {
		r.set("command.error", err.Error())
		return
	}
	switch v := result.(type) {
	case *vscode.TextDocument:
		r.set("command.result", v.URI())
	case *vscode.TextEditor:
		r.set("command.result", v.Document().URI())
	default:
		r.set("command.result", v)
	}
}

func (r *report) setDocument(doc *vscode.TextDocument) {
	r.set("document.uri", doc.URI())
	r.set("document.version", doc.Version())
	r.set("document.lineCount", doc.LineCount())
	r.set("document.dirty", doc.IsDirty())
	if text, err := doc.GetText(nil); err == nil {
		r.set("document.text", text)
	}
}

func (r *report) bytes() []byte {
	return r.data
}
