// Package extension loads VS Code style extensions written in Lua.
//
// An extension is a directory with a package.json manifest and a main Lua
// file. The main chunk may define global activate and deactivate functions,
// or return a table holding them. activate receives a context whose
// subscriptions list is disposed when the extension is deactivated.
package extension
