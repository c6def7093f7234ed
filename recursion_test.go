package peg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// lotsOfAs builds a directly self-referential grammar, adapted from
// original_source/RecursionTest.java's Parser.LotsOfAs rule.
func lotsOfAs(b *Builder) Matcher {
	return b.Rule("LotsOfAs", func() Matcher {
		return b.Sequence(b.IgnoreCase('a'), b.Optional(lotsOfAs(b)))
	})
}

func TestRecursionLotsOfAs(t *testing.T) {
	b := NewBuilder()
	root := lotsOfAs(b)

	result := NewBasicParseRunner().Run(root, NewDefaultInputBuffer("AaA"))
	require.True(t, result.Matched)

	tree := result.ParseTreeRoot
	require.NotNil(t, tree)
	require.Equal(t, "LotsOfAs", tree.Label)
	require.Equal(t, 0, tree.Start)
	require.Equal(t, 3, tree.End)
	require.Len(t, tree.Children, 2)
	require.Equal(t, "'a/A'", tree.Children[0].Label)
	require.Equal(t, "Optional", tree.Children[1].Label)

	opt := tree.Children[1]
	require.Equal(t, 1, opt.Start)
	require.Equal(t, 3, opt.End)
	require.Len(t, opt.Children, 1)
	require.Equal(t, "LotsOfAs", opt.Children[0].Label)
}

func TestRecursionCacheReturnsSameInstance(t *testing.T) {
	b := NewBuilder()
	first := lotsOfAs(b)
	second := lotsOfAs(b)
	require.Same(t, first, second)
}

func TestRecursionFailsOnNonMatchingInput(t *testing.T) {
	b := NewBuilder()
	root := lotsOfAs(b)
	result := NewBasicParseRunner().Run(root, NewDefaultInputBuffer("bbb"))
	require.False(t, result.Matched)
	require.Nil(t, result.ParseTreeRoot)
}
