package peg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTestLookaheadDoesNotConsume(t *testing.T) {
	b := NewBuilder()
	root := b.Sequence(b.Test(b.Char('a')), b.Char('a'))

	result := NewBasicParseRunner().Run(root, NewDefaultInputBuffer("a"))
	require.True(t, result.Matched)
	require.Equal(t, 1, result.ParseTreeRoot.End)

	result = NewBasicParseRunner().Run(root, NewDefaultInputBuffer("b"))
	require.False(t, result.Matched)
}

func TestTestEmitsNoNodes(t *testing.T) {
	b := NewBuilder()
	root := b.Sequence(b.Test(b.Char('a')), b.Char('a'))

	result := NewBasicParseRunner().Run(root, NewDefaultInputBuffer("a"))
	require.True(t, result.Matched)
	require.Len(t, result.ParseTreeRoot.Children, 1)
	require.Equal(t, "'a'", result.ParseTreeRoot.Children[0].Label)
}

func TestTestNotInvertsAndLeavesCursor(t *testing.T) {
	b := NewBuilder()
	root := b.Sequence(b.TestNot(b.Char('a')), b.Char('b'))

	result := NewBasicParseRunner().Run(root, NewDefaultInputBuffer("b"))
	require.True(t, result.Matched)

	result = NewBasicParseRunner().Run(root, NewDefaultInputBuffer("a"))
	require.False(t, result.Matched)
}

func TestDoubleTestNotMatchesTestOutcome(t *testing.T) {
	b := NewBuilder()
	inner := b.Char('a')
	test := b.Sequence(b.Test(inner), b.Any())
	doubleNot := b.Sequence(b.TestNot(b.TestNot(inner)), b.Any())

	for _, input := range []string{"a", "b"} {
		r1 := NewBasicParseRunner().Run(test, NewDefaultInputBuffer(input))
		r2 := NewBasicParseRunner().Run(doubleNot, NewDefaultInputBuffer(input))
		require.Equal(t, r1.Matched, r2.Matched)
	}
}
