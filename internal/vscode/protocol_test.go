package vscode

import (
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestProtocolRangeRoundTrip(t *testing.T) {
	r, _ := NewRangeFromCoords(2, 3, 4, 1)
	pr := r.Protocol()
	if pr.Start.Line != 2 || pr.Start.Character != 3 || pr.End.Line != 4 {
		t.Errorf("unexpected protocol range %+v", pr)
	}
	if back := RangeFromProtocol(pr); !back.IsEqual(r) {
		t.Errorf("expected %s, got %s", r, back)
	}
}

func TestProtocolDidChange(t *testing.T) {
	api, _, _ := newTestAPI(t, "hello")
	var params protocol.DidChangeTextDocumentParams
	api.Workspace.OnDidChangeTextDocument(func(ev TextDocumentChangeEvent) {
		params = ev.Protocol()
	})
	api.Window.ActiveTextEditor().Edit(func(edit *TextEditorEdit) {
		edit.Insert(Position{0, 5}, " world")
	})

	if params.TextDocument.Version != 2 {
		t.Errorf("expected version 2, got %d", params.TextDocument.Version)
	}
	if len(params.ContentChanges) != 1 {
		t.Fatalf("expected 1 change, got %d", len(params.ContentChanges))
	}
	c, ok := params.ContentChanges[0].(protocol.TextDocumentContentChangeEvent)
	if !ok {
		t.Fatalf("unexpected change type %T", params.ContentChanges[0])
	}
	if c.Text != " world" || c.Range.Start.Character != 5 || *c.RangeLength != 0 {
		t.Errorf("unexpected change %+v", c)
	}
}
