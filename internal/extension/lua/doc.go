// Package lua runs extension code in a sandboxed gopher-lua state and exposes
// the vscode API to it as a preloaded "vscode" module.
//
// A State is owned by one goroutine. Go callbacks registered by extensions
// (commands, event listeners) call back into the same state, so they must be
// delivered on that goroutine too. Nested calls are fine: a command handler
// may execute another Lua command.
package lua
