package peg

import (
	"strconv"
	"strings"
)

// FormatParseError renders a single error as a message line followed
// by the offending source line and a caret span under it, the layout
// lifted from the caret-printing routine in parboiled's error
// reporting utilities.
func FormatParseError(err ParseError, buf InputBuffer) string {
	pos := err.Span.Start
	var sb strings.Builder

	sb.WriteString(err.Error())
	sb.WriteString(" (line ")
	sb.WriteString(strconv.Itoa(pos.Line))
	sb.WriteString(", pos ")
	sb.WriteString(strconv.Itoa(pos.Column))
	sb.WriteString("):\n")

	line := buf.ExtractLine(pos.Line)
	sb.WriteString(line)
	sb.WriteString("\n")

	charCount := err.End - err.Start
	if room := len(line) - pos.Column + 2; room < charCount {
		charCount = room
	}
	if charCount < 1 {
		charCount = 1
	}
	for i := 0; i < pos.Column-1; i++ {
		sb.WriteByte(' ')
	}
	for i := 0; i < charCount; i++ {
		sb.WriteByte('^')
	}
	sb.WriteString("\n")

	return sb.String()
}

// FormatParseErrors renders every error in errs, separated by a
// "---" line, matching parboiled's printParseErrors.
func FormatParseErrors(errs []ParseError, buf InputBuffer) string {
	var sb strings.Builder
	for i, err := range errs {
		if i > 0 {
			sb.WriteString("---\n")
		}
		sb.WriteString(FormatParseError(err, buf))
	}
	return sb.String()
}
