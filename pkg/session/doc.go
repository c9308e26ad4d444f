/*
Package session owns the single live traversal session of a process.

A Manager wraps a stateless engine and holds the current session value.
Every operation computes the next session from the current one and swaps it
in under a mutex, so concurrent callers (an HTTP handler and an MCP tool, for
example) always observe a complete before or after state.
*/
package session
