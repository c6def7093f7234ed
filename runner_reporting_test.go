package peg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReportingRunnerLocatesFarthestFailure(t *testing.T) {
	b := NewBuilder()
	root := b.Sequence(b.Char('a'), b.Char('b'), b.Char('c'))

	result := NewReportingParseRunner().Run(root, NewDefaultInputBuffer("abX"))
	require.False(t, result.Matched)
	require.Len(t, result.ParseErrors, 1)

	err := result.ParseErrors[0]
	require.Equal(t, InvalidInput, err.Kind)
	require.Equal(t, 2, err.Start)
	require.Equal(t, 3, err.End)
	require.Equal(t, "Expected 'c'", err.Message)
}

func TestReportingRunnerSucceedsWithoutErrors(t *testing.T) {
	b := NewBuilder()
	root := b.Sequence(b.Char('a'), b.Char('b'), b.Char('c'))

	result := NewReportingParseRunner().Run(root, NewDefaultInputBuffer("abc"))
	require.True(t, result.Matched)
	require.Empty(t, result.ParseErrors)
}

func TestReportingRunnerPicksDeepestCustomLabel(t *testing.T) {
	b := NewBuilder()
	digit := Label("digit", b.CharRange('0', '9'))
	root := b.Sequence(b.Char('a'), digit)

	result := NewReportingParseRunner().Run(root, NewDefaultInputBuffer("aX"))
	require.False(t, result.Matched)
	require.Equal(t, "Expected digit", result.ParseErrors[0].Message)
}
