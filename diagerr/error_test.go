package diagerr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPointsAtSpan(t *testing.T) {
	source := `{"key1": 1, "key2": 2, "key1": 3}`
	// "key1" (second occurrence, with quotes) starts at byte 23.
	start := 23
	end := start + len(`"key1"`)
	err := DuplicateMapKey(Span{start, end})

	rendered := err.Render(source)
	assert.Contains(t, rendered, "line 1: duplicate map key")
	assert.Contains(t, rendered, source)
	lines := splitLines(rendered)
	require.Len(t, lines, 3)
	assert.Equal(t, start, len(lines[2])-len(trimCarets(lines[2])))
}

func TestRenderMultiLine(t *testing.T) {
	source := "[1,\n2,\n]"
	err := UnexpectedEndOfInput(len(source))
	rendered := err.Render(source)
	assert.Contains(t, rendered, "line 3:")
}

func TestRenderNoSpan(t *testing.T) {
	err := OddMapLength()
	assert.Equal(t, "odd number of fragments passed to compose map", err.Render("anything"))
}

func TestUnknownNameDetailInMessage(t *testing.T) {
	err := UnknownTagName("bogus", Span{0, 5})
	assert.Contains(t, err.Error(), "bogus")
	assert.Contains(t, err.Render("bogus(1)"), "unknown tag name: bogus")
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	lines = append(lines, s[start:])
	return lines
}

func trimCarets(s string) string {
	i := 0
	for i < len(s) && s[i] == ' ' {
		i++
	}
	return s[i:]
}
