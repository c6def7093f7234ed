package peg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecoveringRunnerDeletesOneCharacter(t *testing.T) {
	b := NewBuilder()
	root := b.Sequence(b.Char('a'), b.Char('b'), b.Char('c'))

	result := NewRecoveringParseRunner().Run(root, NewDefaultInputBuffer("abXc"))
	require.True(t, result.Matched)
	require.Len(t, result.ParseErrors, 1)
	require.Equal(t, "deleted", result.ParseErrors[0].Repaired)
	require.Equal(t, 2, result.ParseErrors[0].Start)
}

func TestRecoveringRunnerInsertsMissingCharacter(t *testing.T) {
	b := NewBuilder()
	root := b.Sequence(b.Char('a'), b.Char('b'), b.Char('c'))

	result := NewRecoveringParseRunner().Run(root, NewDefaultInputBuffer("ac"))
	require.True(t, result.Matched)
	require.NotEmpty(t, result.ParseErrors)
	require.Equal(t, "inserted", result.ParseErrors[0].Repaired)
}

func TestRecoveringRunnerGivesUpWhenNoRepairHelps(t *testing.T) {
	b := NewBuilder()
	root := b.Nothing()

	result := NewRecoveringParseRunner().Run(root, NewDefaultInputBuffer("x"))
	require.False(t, result.Matched)
}
