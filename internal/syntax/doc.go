// Package syntax holds the syntax tree of an ASP document.
//
// The tree has two layers:
//
//   - Green nodes are immutable and position-free: a node knows its kind,
//     its width in bytes and its children. An edit builds a new root that
//     points at the untouched green subtrees of the previous version.
//   - Tree is the red layer for one document version. It owns the source
//     text, addresses nodes by NodeID in an arena and knows absolute ranges
//     and parents. The arena is built on first access, so several readers
//     may share one Tree without locking.
//
// Text is never stored in nodes; Tree.Text slices the source by range, so
// the tree and its text cannot diverge.
package syntax
