package peg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultInputBufferCharAtAndEOI(t *testing.T) {
	buf := NewDefaultInputBuffer("ab")
	require.Equal(t, 'a', buf.CharAt(0))
	require.Equal(t, 'b', buf.CharAt(1))
	require.Equal(t, EOI, buf.CharAt(2))
	require.Equal(t, EOI, buf.CharAt(100))
	require.Equal(t, 2, buf.Length())
}

func TestDefaultInputBufferLineColumnMapping(t *testing.T) {
	buf := NewDefaultInputBuffer("ab\ncd\r\nef")

	require.Equal(t, Location{Line: 1, Column: 1, Cursor: 0}, buf.GetPosition(0))
	require.Equal(t, Location{Line: 1, Column: 3, Cursor: 2}, buf.GetPosition(2))
	require.Equal(t, Location{Line: 2, Column: 1, Cursor: 3}, buf.GetPosition(3))
	require.Equal(t, Location{Line: 3, Column: 1, Cursor: 7}, buf.GetPosition(7))

	require.Equal(t, "ab", buf.ExtractLine(1))
	require.Equal(t, "cd", buf.ExtractLine(2))
	require.Equal(t, "ef", buf.ExtractLine(3))
}

func TestDefaultInputBufferExtract(t *testing.T) {
	buf := NewDefaultInputBuffer("hello")
	require.Equal(t, "ell", buf.Extract(1, 4))
	require.Equal(t, "", buf.Extract(4, 1))
	require.Equal(t, "hello", buf.Extract(-3, 50))
}

func TestIndentDedentBufferEmitsSentinels(t *testing.T) {
	b, err := NewIndentDedentBuffer("a\n  b\n  c\nd\n")
	require.NoError(t, err)

	var seen []rune
	for i := 0; i < b.Length(); i++ {
		seen = append(seen, b.CharAt(i))
	}

	indentCount, dedentCount := 0, 0
	for _, c := range seen {
		switch c {
		case Indent:
			indentCount++
		case Dedent:
			dedentCount++
		}
	}
	require.Equal(t, 1, indentCount)
	require.Equal(t, 1, dedentCount)
}

func TestIndentDedentBufferRejectsMixedTabsAndSpaces(t *testing.T) {
	_, err := NewIndentDedentBuffer("a\n \tb\n")
	require.Error(t, err)
}

func TestIndentDedentBufferExtractSkipsSentinels(t *testing.T) {
	b, err := NewIndentDedentBuffer("a\n  b\n")
	require.NoError(t, err)
	require.Equal(t, "a\n  b\n", b.Extract(0, b.Length()))
}
