// Package blocks pairs block openers with their closers across script
// blocks of one document.
//
// A page may open a construct in one script block and close it in another:
//
//	<% If user.IsAdmin Then %>
//	  <a href="/admin">admin</a>
//	<% End If %>
//
// The parser treats every script block on its own and leaves such
// constructs open. This pass walks the spans in document order with a
// stack of open constructs, reports closers that match nothing, constructs
// that are never closed, and stray Else/Case clauses, and produces the
// pairs used for folding.
//
// Per-span work depends only on the span's green node, so an Analyzer keeps
// it cached and recomputes only the spans an edit replaced.
package blocks
