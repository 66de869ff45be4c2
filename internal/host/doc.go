// Package host provides the application shell around the native engine: the
// file/tab manager that owns sessions, the command contributions table read
// from an extension manifest, transient toast notifications, and workspace
// settings.
//
// The extension API layer in internal/vscode receives these as explicit
// dependencies; nothing here is reachable through package-level globals.
package host
