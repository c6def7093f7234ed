package peg

import (
	"fmt"
	"strings"
)

// InputBuffer is a random-access character source with line/column
// mapping and a virtual end-of-input sentinel. Implementations must
// return EOI for any index at or beyond Length.
type InputBuffer interface {
	// CharAt returns the character at index i, or EOI if i is at
	// or past the end of the buffer.
	CharAt(i int) rune

	// Extract returns the text in [start, end).
	Extract(start, end int) string

	// ExtractLine returns line n (1-based), without its
	// terminator.
	ExtractLine(n int) string

	// GetPosition maps an absolute index to its 1-based
	// line/column Location.
	GetPosition(i int) Location

	// Length returns the number of real characters in the
	// buffer.
	Length() int
}

// DefaultInputBuffer is a plain, immutable character source over a
// rune slice. Line boundaries are recognized as "\n", "\r\n" or "\r".
type DefaultInputBuffer struct {
	input     []rune
	lineStart []int
}

// NewDefaultInputBuffer builds a buffer over text.
func NewDefaultInputBuffer(text string) *DefaultInputBuffer {
	input := []rune(text)
	lineStart := []int{0}
	for i := 0; i < len(input); i++ {
		switch input[i] {
		case '\r':
			if i+1 < len(input) && input[i+1] == '\n' {
				i++
			}
			lineStart = append(lineStart, i+1)
		case '\n':
			lineStart = append(lineStart, i+1)
		}
	}
	return &DefaultInputBuffer{input: input, lineStart: lineStart}
}

func (b *DefaultInputBuffer) Length() int { return len(b.input) }

func (b *DefaultInputBuffer) CharAt(i int) rune {
	if i < 0 || i >= len(b.input) {
		return EOI
	}
	return b.input[i]
}

func (b *DefaultInputBuffer) Extract(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(b.input) {
		end = len(b.input)
	}
	if start >= end {
		return ""
	}
	return string(b.input[start:end])
}

func (b *DefaultInputBuffer) lineBounds(n int) (int, int) {
	if n < 1 {
		n = 1
	}
	idx := n - 1
	if idx >= len(b.lineStart) {
		return len(b.input), len(b.input)
	}
	start := b.lineStart[idx]
	end := len(b.input)
	if idx+1 < len(b.lineStart) {
		end = b.lineStart[idx+1]
	}
	// trim a trailing line terminator from [start, end)
	trimmed := end
	if trimmed > start && b.input[trimmed-1] == '\n' {
		trimmed--
	}
	if trimmed > start && b.input[trimmed-1] == '\r' {
		trimmed--
	}
	return start, trimmed
}

func (b *DefaultInputBuffer) ExtractLine(n int) string {
	start, end := b.lineBounds(n)
	return string(b.input[start:end])
}

func (b *DefaultInputBuffer) GetPosition(i int) Location {
	if i < 0 {
		i = 0
	}
	if i > len(b.input) {
		i = len(b.input)
	}
	// binary search for the line containing i
	lo, hi := 0, len(b.lineStart)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if b.lineStart[mid] <= i {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	line := lo + 1
	column := i - b.lineStart[lo] + 1
	return Location{Line: line, Column: column, Cursor: i}
}

// indentRun describes one INDENT or DEDENT sentinel inserted into the
// expanded stream at a given source offset.
type indentRun struct {
	expandedIndex int
	sourceIndex   int
	sentinel      rune
}

// IndentDedentBuffer preprocesses an input into a stream that
// interleaves the real characters with virtual INDENT/DEDENT
// sentinels, derived from the leading whitespace run of each line and
// a stack of indentation columns. Mixing tabs and spaces within one
// indent prefix is rejected at construction time.
type IndentDedentBuffer struct {
	source *DefaultInputBuffer
	expand []int32 // expanded index -> source index (a sentinel maps to the source index it was inserted at)
	chars  []rune  // expanded index -> character (real rune or Indent/Dedent)
}

// NewIndentDedentBuffer builds an indentation-aware buffer over text.
// It returns a GrammarException-free construction error when an
// indent prefix mixes tabs and spaces.
func NewIndentDedentBuffer(text string) (*IndentDedentBuffer, error) {
	src := NewDefaultInputBuffer(text)
	b := &IndentDedentBuffer{source: src}

	stack := []int{0}
	cursor := 0
	n := src.Length()

	pushChar := func(sourceIdx int, c rune) {
		b.expand = append(b.expand, int32(sourceIdx))
		b.chars = append(b.chars, c)
	}
	pushSentinel := func(sourceIdx int, c rune) {
		b.expand = append(b.expand, int32(sourceIdx))
		b.chars = append(b.chars, c)
	}

	atLineStart := true
	for cursor < n {
		if atLineStart {
			width, tabs, spaces, consumed := measureIndent(src, cursor)
			if tabs > 0 && spaces > 0 {
				return nil, fmt.Errorf("mixed tabs and spaces in indent at index %d", cursor)
			}
			// blank or comment-free line handling is left to
			// the grammar; we still emit INDENT/DEDENT purely
			// based on leading whitespace width.
			top := stack[len(stack)-1]
			switch {
			case width > top:
				stack = append(stack, width)
				pushSentinel(cursor, Indent)
			case width < top:
				for len(stack) > 1 && stack[len(stack)-1] > width {
					stack = stack[:len(stack)-1]
					pushSentinel(cursor, Dedent)
				}
			}
			// the indent run's own runes stay addressable in the
			// expanded stream, right after the sentinels that
			// describe it, so Extract/CharAt never drop input.
			for i := 0; i < consumed; i++ {
				pushChar(cursor+i, src.CharAt(cursor+i))
			}
			cursor += consumed
			atLineStart = false
			continue
		}
		c := src.CharAt(cursor)
		pushChar(cursor, c)
		cursor++
		if c == '\n' {
			atLineStart = true
		}
	}
	for len(stack) > 1 {
		stack = stack[:len(stack)-1]
		pushSentinel(n, Dedent)
	}
	return b, nil
}

// measureIndent scans the whitespace run starting at idx (which must
// be the first column of a line) and returns its visual width (tabs
// count as 8 columns), how many tabs/spaces it contains, and how many
// source runes were consumed.
func measureIndent(src *DefaultInputBuffer, idx int) (width, tabs, spaces, consumed int) {
	i := idx
	for {
		c := src.CharAt(i)
		switch c {
		case ' ':
			width++
			spaces++
			i++
		case '\t':
			width += 8 - (width % 8)
			tabs++
			i++
		default:
			return width, tabs, spaces, i - idx
		}
	}
}

func (b *IndentDedentBuffer) Length() int { return len(b.chars) }

func (b *IndentDedentBuffer) CharAt(i int) rune {
	if i < 0 || i >= len(b.chars) {
		return EOI
	}
	return b.chars[i]
}

func (b *IndentDedentBuffer) Extract(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(b.chars) {
		end = len(b.chars)
	}
	if start >= end {
		return ""
	}
	var sb strings.Builder
	for i := start; i < end; i++ {
		if !isSentinel(b.chars[i]) {
			sb.WriteRune(b.chars[i])
		}
	}
	return sb.String()
}

func (b *IndentDedentBuffer) ExtractLine(n int) string {
	return b.source.ExtractLine(n)
}

func (b *IndentDedentBuffer) GetPosition(i int) Location {
	if i < 0 {
		i = 0
	}
	if i >= len(b.expand) {
		return b.source.GetPosition(b.source.Length())
	}
	return b.source.GetPosition(int(b.expand[i]))
}
