// Package dom adapts golang.org/x/net/html nodes to the attribute surface
// reactive properties expect, so server-rendered markup can host component
// instances.
//
// Nodes are not safe for concurrent mutation; callers serialise access to a
// document the same way a browser main thread would.
package dom
