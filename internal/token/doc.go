// Package token defines lexical token kinds for Classic ASP sources.
// Invariants:
//   - Token.Text is the exact source text covered by Token.Span.
//   - Whitespace, newlines, comments and line continuations are ordinary
//     tokens (trivia kinds), never dropped, so token texts concatenate back
//     to the scanned region.
//   - Keywords are case-insensitive; Token.Text keeps the author's casing.
//   - Contextual words (Property, Step, Error, Explicit, Default, Preserve)
//     are keyword kinds; the parser accepts them as names where allowed.
package token
