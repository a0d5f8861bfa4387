package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/blockchaincommons/bc-dcbor-diag-go/dcbor"
)

func nan() float64          { return math.NaN() }
func inf(sign int) float64 { return math.Inf(sign) }

// parseNumber converts a lexed Number token's text into an Int (when it
// parses as a plain decimal integer with no fractional part or exponent)
// or a Float otherwise, matching CBOR's distinct integer/float major types.
func parseNumber(text string) dcbor.Value {
	if !strings.ContainsAny(text, ".eE") {
		if n, err := strconv.ParseInt(text, 10, 64); err == nil {
			return dcbor.Int(n)
		}
	}
	f, _ := strconv.ParseFloat(text, 64)
	return dcbor.Float(f)
}

// unescapeString strips the outer quotes from a lexed String token's raw
// text and resolves backslash escapes to their target characters.
func unescapeString(raw string) string {
	inner := raw[1 : len(raw)-1]
	var b strings.Builder
	b.Grow(len(inner))

	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(inner) {
			break
		}
		switch inner[i] {
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		case '/':
			b.WriteByte('/')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'u':
			if i+4 < len(inner) {
				if r, err := strconv.ParseUint(inner[i+1:i+5], 16, 32); err == nil {
					writeEscapedRune(&b, rune(r), inner, &i)
				}
			}
		}
	}
	return b.String()
}

// writeEscapedRune handles a \uXXXX escape already positioned at the 'u',
// including the surrogate-pair case where a high surrogate is immediately
// followed by a second \uXXXX low surrogate.
func writeEscapedRune(b *strings.Builder, r rune, inner string, i *int) {
	*i += 4
	if r >= 0xD800 && r <= 0xDBFF && *i+6 < len(inner) && inner[*i+1] == '\\' && inner[*i+2] == 'u' {
		if low, err := strconv.ParseUint(inner[*i+3:*i+7], 16, 32); err == nil && low >= 0xDC00 && low <= 0xDFFF {
			combined := 0x10000 + (r-0xD800)<<10 + (rune(low) - 0xDC00)
			b.WriteRune(combined)
			*i += 6
			return
		}
	}
	b.WriteRune(r)
}
