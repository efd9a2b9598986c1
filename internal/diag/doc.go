// Package diag defines the diagnostic model shared by the scanner, lexer,
// parser and block pairing passes.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity: Info, Warning or Error (severity.go).
//   - Code: compact numeric identifier with a stable string form (codes.go).
//   - Message: short, human oriented text.
//   - Primary: the source.Span pointing at the problem.
//   - Notes: optional secondary spans, e.g. "block opened here".
//
// # Emitting
//
// Producers talk to a Reporter, usually through ReportError/ReportWarning
// builders, and never to a concrete store. BagReporter collects into a Bag,
// which sorts, caps and deduplicates.
//
// Diagnostics are informational output, not control flow: every stage keeps
// going after reporting.
//
// Rendering lives in internal/diagfmt.
package diag
