package peg

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

// TestBacktrackingLeavesNoTrace checks that a failed alternative
// inside FirstOf leaves neither a value-stack residue nor a stray
// parse-tree node behind once a later alternative takes over.
func TestBacktrackingLeavesNoTrace(t *testing.T) {
	b := NewBuilder()
	pushAndFail := b.Sequence(
		b.Action(func(a ActionContext) bool { a.ValueStack().Push("pushed-by-loser"); return true }),
		b.Nothing(),
	)
	root := b.FirstOf(pushAndFail, b.Char('x'))

	result := NewBasicParseRunner().Run(root, NewDefaultInputBuffer("x"))
	require.True(t, result.Matched)
	require.Equal(t, 0, result.ValueStack.Len())
	require.Len(t, result.ParseTreeRoot.Children, 1)
	require.Equal(t, "'x'", result.ParseTreeRoot.Children[0].Label)
}

// TestCacheIdentityForNonRecursiveCombinators checks the caching
// guarantee for composites built without Rule: the same argument
// list, by matcher identity, returns the same instance.
func TestCacheIdentityForNonRecursiveCombinators(t *testing.T) {
	b := NewBuilder()
	a1, a2 := b.Char('a'), b.Char('a')
	require.Same(t, a1, a2)

	seq1 := b.Sequence(b.Char('x'), b.Char('y'))
	seq2 := b.Sequence(b.Char('x'), b.Char('y'))
	require.Same(t, seq1, seq2)

	opt1, opt2 := b.Optional(a1), b.Optional(a1)
	require.Same(t, opt1, opt2)

	zom1, zom2 := b.ZeroOrMore(a1), b.ZeroOrMore(a1)
	require.Same(t, zom1, zom2)
}

// TestCacheDistinguishesDifferentArguments guards against the cache
// collapsing distinct combinators into one instance.
func TestCacheDistinguishesDifferentArguments(t *testing.T) {
	b := NewBuilder()
	require.NotSame(t, b.Char('a'), b.Char('b'))
	require.NotSame(t, b.Sequence(b.Char('a'), b.Char('b')), b.Sequence(b.Char('b'), b.Char('a')))
}

// TestNodeCoverageIsContiguousAndSpansChildren checks that a
// composite node's span covers exactly what its children span, back
// to back with no gaps.
func TestNodeCoverageIsContiguousAndSpansChildren(t *testing.T) {
	b := NewBuilder()
	root := b.Sequence(b.Char('a'), b.Char('b'), b.Char('c'))

	result := NewBasicParseRunner().Run(root, NewDefaultInputBuffer("abc"))
	require.True(t, result.Matched)

	node := result.ParseTreeRoot
	require.Equal(t, 0, node.Start)
	require.Equal(t, 3, node.End)
	require.Len(t, node.Children, 3)

	cursor := node.Start
	for _, c := range node.Children {
		require.Equal(t, cursor, c.Start)
		cursor = c.End
	}
	require.Equal(t, node.End, cursor)
}

// TestZeroOrMoreStopsOnZeroWidthIteration checks that a repetition
// whose body can match without consuming input still terminates.
func TestZeroOrMoreStopsOnZeroWidthIteration(t *testing.T) {
	b := NewBuilder()
	root := b.Sequence(b.ZeroOrMore(b.Optional(b.Char('a'))), b.EOI())

	result := NewBasicParseRunner().Run(root, NewDefaultInputBuffer(""))
	require.True(t, result.Matched)
}

func TestOneOrMoreStopsOnZeroWidthIteration(t *testing.T) {
	b := NewBuilder()
	root := b.Sequence(b.OneOrMore(b.Optional(b.Char('a'))), b.EOI())

	result := NewBasicParseRunner().Run(root, NewDefaultInputBuffer(""))
	require.True(t, result.Matched)
}

// TestParseTreeDiffWithGoCmp exercises the tree shape structurally
// rather than node by node, the way a regression test comparing a
// whole parse tree against a golden fixture would.
func TestParseTreeDiffWithGoCmp(t *testing.T) {
	b := NewBuilder()
	root := b.Sequence(b.Char('a'), b.Char('b'))

	result := NewBasicParseRunner().Run(root, NewDefaultInputBuffer("ab"))
	require.True(t, result.Matched)

	want := &Node{
		Label: "Sequence",
		Start: 0,
		End:   2,
		Children: []*Node{
			{Label: "'a'", Start: 0, End: 1},
			{Label: "'b'", Start: 1, End: 2},
		},
	}
	// Span is derived from Start/End by GetPosition; the fixture
	// above only spells out the cursor range it cares about.
	if diff := cmp.Diff(want, result.ParseTreeRoot, cmpopts.IgnoreFields(Node{}, "Span")); diff != "" {
		t.Fatalf("parse tree mismatch (-want +got):\n%s", diff)
	}
}
