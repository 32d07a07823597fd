// Package diag carries diagnostics produced by the lexer, parser and symbol
// table phases.
//
// Phases never abort on recoverable findings: every duplicate declaration or
// unresolved reference becomes a Diagnostic routed through a Reporter into a
// Bag, and the pass keeps going. Bags are bounded, mergeable across files,
// and sortable into a deterministic order for output and golden comparisons.
package diag
