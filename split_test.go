package peg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// These rules mirror original_source/SplitParserTest.java's pattern
// of one parser reusing another parser's subrules (Digit, Operator)
// inside its own top-level Clause rule.
func digitRule(b *Builder) Matcher {
	return b.Rule("Digit", func() Matcher { return b.CharRange('0', '9') })
}

func operatorRule(b *Builder) Matcher {
	return b.Rule("Operator", func() Matcher { return b.FirstOf(b.Char('+'), b.Char('-')) })
}

func clauseRule(b *Builder) Matcher {
	digit := digitRule(b)
	operator := operatorRule(b)
	return b.Rule("Clause", func() Matcher {
		return b.Sequence(digit, operator, digit, b.EOI())
	})
}

func TestSplitClauseMatches(t *testing.T) {
	b := NewBuilder()
	root := clauseRule(b)

	result := NewBasicParseRunner().Run(root, NewDefaultInputBuffer("1+5"))
	require.True(t, result.Matched)

	tree := result.ParseTreeRoot
	require.Equal(t, "Clause", tree.Label)
	require.Len(t, tree.Children, 4)
	require.Equal(t, "Digit", tree.Children[0].Label)
	require.Equal(t, "1", tree.Children[0].Text(result.InputBuffer))
	require.Equal(t, "Operator", tree.Children[1].Label)
	require.Equal(t, "+", tree.Children[1].Text(result.InputBuffer))
	require.Equal(t, "Digit", tree.Children[2].Label)
	require.Equal(t, "5", tree.Children[2].Text(result.InputBuffer))
	require.Equal(t, "EOI", tree.Children[3].Label)
}

func TestSplitClauseRejectsMissingOperand(t *testing.T) {
	b := NewBuilder()
	root := clauseRule(b)

	result := NewBasicParseRunner().Run(root, NewDefaultInputBuffer("1+"))
	require.False(t, result.Matched)
}
