package peg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFirstOfStringsOrderedChoice(t *testing.T) {
	b := NewBuilder()
	root := b.FirstOf(b.String("foo"), b.String("foobar"))

	result := NewBasicParseRunner().Run(root, NewDefaultInputBuffer("foobar"))
	require.True(t, result.Matched)
	require.Equal(t, 3, result.ParseTreeRoot.End)
	require.Equal(t, "foo", result.ParseTreeRoot.Text(result.InputBuffer))
}

func TestFirstOfStringsFallsThroughToShorterLiteral(t *testing.T) {
	b := NewBuilder()
	root := b.FirstOf(b.String("foobar"), b.String("foo"))

	result := NewBasicParseRunner().Run(root, NewDefaultInputBuffer("foo"))
	require.True(t, result.Matched)
	require.Equal(t, 3, result.ParseTreeRoot.End)
}

func TestFirstOfStringsFoldsWhenAllLiteral(t *testing.T) {
	b := NewBuilder()
	m := b.FirstOf(b.String("foo"), b.String("bar"))
	_, ok := m.(*firstOfStringsMatcher)
	require.True(t, ok)
}
