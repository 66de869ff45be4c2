// Package engine provides the native text-editing engine the vscompat host is
// built around.
//
// The engine has its own object model, which the extension API layer in
// internal/vscode translates to and from:
//
//   - Document: rows of text without terminators and a new line mode
//     (unix, windows, auto)
//   - EditSession: a document plus selection, tab size and screen metrics
//   - Selection: one anchor/lead pair with changeSelection and changeCursor events
//   - CommandManager: a named command registry with synchronous Exec
//   - Editor: a command registry bound to the session currently shown
//
// # Coordinates
//
// Points are (Row, Column) pairs. Columns and character indexes are counted
// in UTF-16 code units so they line up with the extension API. Screen
// coordinates differ from document coordinates when rows soft-wrap or contain
// tabs and wide characters; ScreenToDocumentPosition and
// DocumentToScreenPosition convert between the two using the live layout.
//
// # Events
//
// Every event source embeds Emitter. On returns a ListenerID and Off takes it
// back; removing a listener twice is harmless. Listeners run synchronously on
// the goroutine that caused the event:
//
//	s := engine.NewEditSession(engine.WithContent("hello"))
//	id := s.On(engine.EventChange, func(data any) {
//	    d := data.(engine.Delta)
//	    fmt.Println(d.Action, d.Start, d.End)
//	})
//	s.Insert(engine.Point{Row: 0, Column: 5}, " world")
//	s.Off(engine.EventChange, id)
package engine
