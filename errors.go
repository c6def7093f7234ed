package peg

import "fmt"

// ErrorKind distinguishes the three parse error kinds described by
// the error model: an ordinary mismatch, a user action fault, and a
// malformed matcher graph. GrammarException is synchronous (it is
// panicked from combinator constructors) and never appears in a
// ParsingResult's ParseErrors list.
type ErrorKind int

const (
	InvalidInput ErrorKind = iota
	ActionException
	GrammarException
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidInput:
		return "InvalidInput"
	case ActionException:
		return "ActionException"
	case GrammarException:
		return "GrammarException"
	default:
		return "Unknown"
	}
}

// ParseError is a single diagnostic. InvalidInput errors are produced
// by the reporting and recovering runners; ActionException errors are
// recorded when an action predicate panics.
type ParseError struct {
	Kind    ErrorKind
	Start   int
	End     int
	Span    Span
	Message string
	Path    *MatcherPath

	// Repaired is set by the recovering runner when this error
	// records a repair that was actually applied (resync, delete
	// or insert) rather than a plain unrecovered mismatch.
	Repaired string
}

func (e ParseError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s at %d..%d", e.Kind, e.Start, e.End)
}

// grammarError is panicked by combinator constructors when given
// malformed arguments. Nothing in this package recovers it: the panic
// propagates out of grammar construction to the caller.
type grammarError struct {
	Message string
}

func (e grammarError) Error() string { return e.Message }

func panicGrammar(format string, args ...any) {
	panic(grammarError{Message: fmt.Sprintf(format, args...)})
}

// MatcherPath is a singly-linked chain of (matcher, startIndex) pairs
// from root to leaf, used to locate the failed rule(s) behind a parse
// error and to pick the best "expected" label.
type MatcherPath struct {
	Parent     *MatcherPath
	Matcher    Matcher
	StartIndex int
}

// Elements returns the path as a root-to-leaf slice.
func (p *MatcherPath) Elements() []*MatcherPath {
	if p == nil {
		return nil
	}
	var out []*MatcherPath
	for cur := p; cur != nil; cur = cur.Parent {
		out = append(out, cur)
	}
	// reverse so index 0 is the root
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// findProperLabelMatcher returns the deepest matcher on path whose
// frame began exactly at errorIndex and whose label is custom. It
// walks the path from root to leaf and keeps the last (hence
// deepest) match.
func findProperLabelMatcher(path *MatcherPath, errorIndex int) Matcher {
	var found Matcher
	for _, e := range path.Elements() {
		if e.StartIndex == errorIndex && e.Matcher.base().custom {
			found = e.Matcher
		}
	}
	return found
}

// expectedLabel picks the label used in an "expected X" message for a
// failure at errorIndex along path: the deepest custom label if any,
// falling back to the label of the matcher that actually failed (the
// leaf of the path).
func expectedLabel(path *MatcherPath, errorIndex int) string {
	if m := findProperLabelMatcher(path, errorIndex); m != nil {
		return m.base().label
	}
	elems := path.Elements()
	if len(elems) == 0 {
		return "<unknown>"
	}
	return elems[len(elems)-1].Matcher.base().label
}
