// Package peg implements a parsing-expression-grammar matching core:
// grammars are built in-process from a closed set of matcher
// combinators, then run against a character input buffer by one of
// the match handlers (runners) to produce a parse tree, a success
// flag and, under the reporting and recovering runners, diagnostics.
package peg
