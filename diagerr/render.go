package diagerr

import (
	"fmt"
	"strings"
)

// Render formats e against the original source as a 1-based line number,
// the failing message, the source line containing the span, and a caret
// run underlining the span (spec §4.4):
//
//	line <N>: <message>
//	<line text>
//	<leading spaces><carets>
//
// Errors with no meaningful position (OddMapLength) render as the bare
// message.
func (e *Error) Render(source string) string {
	msg := message(e.Kind, e.Detail)
	if !e.HasSpan {
		return msg
	}

	line, col, lineText := locate(source, e.Span.Start)
	caretLen := e.Span.End - e.Span.Start
	if caretLen < 1 {
		caretLen = 1
	}

	return fmt.Sprintf("line %d: %s\n%s\n%s%s",
		line, msg, lineText, strings.Repeat(" ", col), strings.Repeat("^", caretLen))
}

// locate returns the 1-based line number, the byte column within that line,
// and the text of the line containing byte offset off in source.
func locate(source string, off int) (line, col int, lineText string) {
	if off > len(source) {
		off = len(source)
	}

	line = 1
	lineStart := 0
	for i := 0; i < off; i++ {
		if source[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	col = off - lineStart

	lineEnd := len(source)
	if idx := strings.IndexByte(source[lineStart:], '\n'); idx >= 0 {
		lineEnd = lineStart + idx
	}
	lineText = source[lineStart:lineEnd]
	return line, col, lineText
}
