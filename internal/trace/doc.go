// Package trace records what the scanner, parser and drivers are doing.
//
// Enable tracing from the command line:
//
//	aspkit diag --trace=- --trace-level=phase site/
//
// Tracers:
//
//   - Nop: disabled tracing, no allocations on the hot path
//   - StreamTracer: writes each event as it happens
//   - RingTracer: keeps the last events in memory for dumps
//   - MultiTracer: fans out to several tracers
//
// Scopes, coarse to fine: ScopeDriver (a CLI command or LSP request),
// ScopePass (one file through scan/parse/blocks), ScopeSpan (one script
// block), ScopeNode.
//
// The tracer travels in context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	sp := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse_file", 0)
//	defer sp.End(path)
package trace
