// Package incremental re-parses a document after a text edit.
//
// An edit that stays inside one script block interior, or inside one markup
// fragment, and cannot move a delimiter reparses only that span; every other
// span keeps its green node. Anything else falls back to a full parse. Both
// paths produce the same tree a fresh parse would.
package incremental
