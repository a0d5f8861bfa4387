// Package lexer implements the hand-rolled, state-machine byte scanner for
// CBOR extended diagnostic notation. It recognizes tokens in priority
// order (punctuation, strings, known values, byte strings, URs,
// -Infinity and negative numbers, then digit-led date literals, tag heads
// and numbers, then tag names and keywords), eagerly sub-decodes each
// token's payload, and records any decode failure against the token's
// start offset rather than raising it immediately — the parser raises it
// only if and when it actually consumes that token.
package lexer

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/blockchaincommons/bc-dcbor-diag-go/dateliteral"
	"github.com/blockchaincommons/bc-dcbor-diag-go/diagerr"
	"github.com/blockchaincommons/bc-dcbor-diag-go/parser/lexer/token"
	"github.com/blockchaincommons/bc-dcbor-diag-go/ur"
)

var (
	dateRe    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}(T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})?)?`)
	tagHeadRe = regexp.MustCompile(`^(0|[1-9]\d*)\(`)
	numberRe  = regexp.MustCompile(`^-?(0|[1-9]\d*)(\.\d+)?([eE][+-]?\d+)?`)
	urRe      = regexp.MustCompile(`^ur:[A-Za-z0-9][A-Za-z0-9-]*/[A-Za-z]{8,}`)
)

// Lexer holds the scanning state and implements participle's lexer.Lexer.
//
// participle's lexer.Token is a fixed struct with no room for a per-token
// decode error, so eager sub-decode failures (bad hex, bad date, tag
// overflow, ...) are recorded here keyed by the token's start offset
// instead of riding along on the token itself. The parser, which holds
// both this Lexer and the lexer.PeekingLexer wrapping it, looks failures
// up by DecodeErrAt when it actually consumes a token's payload.
type Lexer struct {
	input    string
	filename string
	start    int
	pos      int

	decodeErrs map[int]error
}

// DecodeErrAt returns the eager sub-decode error recorded for the token
// starting at byte offset, or nil if that token decoded cleanly (or isn't
// a kind the lexer sub-decodes).
func (l *Lexer) DecodeErrAt(offset int) error {
	return l.decodeErrs[offset]
}

func (l *Lexer) recordDecodeErr(tok lexer.Token, err error) lexer.Token {
	if err == nil {
		return tok
	}
	if l.decodeErrs == nil {
		l.decodeErrs = make(map[int]error)
	}
	l.decodeErrs[tok.Pos.Offset] = err
	return tok
}

// NewLexer creates a lexer over input, identifying it as filename in
// reported positions.
func NewLexer(filename, input string) *Lexer {
	return &Lexer{input: input, filename: filename}
}

func (l *Lexer) peekByte() (byte, bool) {
	if l.pos >= len(l.input) {
		return 0, false
	}
	return l.input[l.pos], true
}

func (l *Lexer) peekAt(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) advance(n int) {
	l.pos += n
	if l.pos > len(l.input) {
		l.pos = len(l.input)
	}
}

// emitToken packages input[l.start:l.pos] as a token of type t and
// advances start past it.
func (l *Lexer) emitToken(t token.TokenType) lexer.Token {
	tok := lexer.Token{
		Type:  lexer.TokenType(t),
		Value: l.input[l.start:l.pos],
		Pos: lexer.Position{
			Filename: l.filename,
			Offset:   l.start,
			Line:     1,
			Column:   l.start + 1,
		},
	}
	l.start = l.pos
	return tok
}

func spanOf(tok lexer.Token) diagerr.Span {
	return diagerr.Span{Start: tok.Pos.Offset, End: tok.Pos.Offset + len(tok.Value)}
}

// Next returns the next token, implementing participle's lexer.Lexer.
// Lexical failures are returned as ILLEGAL tokens rather than as a non-nil
// error; the parser turns those into diagerr.UnrecognizedToken at the
// point it would have consumed them.
func (l *Lexer) Next() (lexer.Token, error) {
	for {
		l.start = l.pos
		b, ok := l.peekByte()
		if !ok {
			return l.emitToken(token.EOF), nil
		}
		switch {
		case isWhitespace(b):
			l.advance(1)
			continue
		case b == '#':
			l.skipLineComment()
			continue
		case b == '/':
			if !l.skipInlineComment() {
				return l.emitToken(token.ILLEGAL), nil
			}
			continue
		}
		break
	}
	return l.lexToken(), nil
}

func (l *Lexer) skipLineComment() {
	l.advance(1) // '#'
	for {
		b, ok := l.peekByte()
		if !ok {
			return
		}
		l.advance(1)
		if b == '\n' {
			return
		}
	}
}

// skipInlineComment consumes a `/…/` comment, returning false if input
// runs out before the closing '/'.
func (l *Lexer) skipInlineComment() bool {
	l.advance(1) // opening '/'
	for {
		b, ok := l.peekByte()
		if !ok {
			return false
		}
		l.advance(1)
		if b == '/' {
			return true
		}
	}
}

func (l *Lexer) lexToken() lexer.Token {
	b, _ := l.peekByte()
	rest := l.input[l.pos:]

	switch {
	case b == '{':
		l.advance(1)
		return l.emitToken(token.BraceOpen)
	case b == '}':
		l.advance(1)
		return l.emitToken(token.BraceClose)
	case b == '[':
		l.advance(1)
		return l.emitToken(token.BracketOpen)
	case b == ']':
		l.advance(1)
		return l.emitToken(token.BracketClose)
	case b == '(':
		l.advance(1)
		return l.emitToken(token.ParenthesisOpen)
	case b == ')':
		l.advance(1)
		return l.emitToken(token.ParenthesisClose)
	case b == ':':
		l.advance(1)
		return l.emitToken(token.Colon)
	case b == ',':
		l.advance(1)
		return l.emitToken(token.Comma)
	case b == '"':
		return l.lexString()
	case b == '\'':
		return l.lexQuoted()
	case b == 'h' && l.peekAt(1) == '\'':
		return l.lexHexByteString()
	case strings.HasPrefix(rest, "b64'"):
		return l.lexBase64ByteString()
	case strings.HasPrefix(rest, "ur:"):
		return l.lexUR()
	case b == '-':
		return l.lexMinusLed()
	case isDigit(b):
		return l.lexDigitLed()
	case isIdentStart(b):
		return l.lexIdentOrKeywordOrTagName()
	default:
		l.advance(1)
		return l.emitToken(token.ILLEGAL)
	}
}

func (l *Lexer) lexString() lexer.Token {
	l.advance(1) // opening '"'
	for {
		b, ok := l.peekByte()
		if !ok {
			return l.emitToken(token.ILLEGAL)
		}
		if b == '"' {
			l.advance(1)
			return l.emitToken(token.String)
		}
		if b == '\\' {
			l.advance(1)
			esc, ok := l.peekByte()
			if !ok || !isValidEscape(esc) {
				return l.emitToken(token.ILLEGAL)
			}
			l.advance(1)
			if esc == 'u' {
				for i := 0; i < 4; i++ {
					h, ok := l.peekByte()
					if !ok || !isHexDigit(h) {
						return l.emitToken(token.ILLEGAL)
					}
					l.advance(1)
				}
			}
			continue
		}
		if b < 0x20 {
			return l.emitToken(token.ILLEGAL)
		}
		l.advance(1)
	}
}

func (l *Lexer) lexQuoted() lexer.Token {
	l.advance(1) // opening '\''
	if b, ok := l.peekByte(); ok && b == '\'' {
		l.advance(1)
		return l.emitToken(token.KnownValueName)
	}

	contentStart := l.pos
	first, ok := l.peekByte()
	if !ok {
		return l.emitToken(token.ILLEGAL)
	}
	numeric := isDigit(first)

	for {
		b, ok := l.peekByte()
		if !ok {
			return l.emitToken(token.ILLEGAL)
		}
		if b == '\'' {
			break
		}
		if numeric {
			if !isDigit(b) {
				return l.emitToken(token.ILLEGAL)
			}
		} else if !isIdentCont(b) {
			return l.emitToken(token.ILLEGAL)
		}
		l.advance(1)
	}
	content := l.input[contentStart:l.pos]
	l.advance(1) // closing '\''

	if numeric {
		tok := l.emitToken(token.KnownValueNumber)
		if _, err := strconv.ParseUint(content, 10, 64); err != nil {
			return l.recordDecodeErr(tok, diagerr.InvalidKnownValue(spanOf(tok)))
		}
		return tok
	}
	return l.emitToken(token.KnownValueName)
}

func (l *Lexer) lexHexByteString() lexer.Token {
	l.advance(2) // "h'"
	contentStart := l.pos
	for {
		b, ok := l.peekByte()
		if !ok {
			return l.emitToken(token.ILLEGAL)
		}
		if b == '\'' {
			break
		}
		l.advance(1)
	}
	content := l.input[contentStart:l.pos]
	l.advance(1) // closing '\''

	tok := l.emitToken(token.ByteStringHex)
	if _, err := hex.DecodeString(content); err != nil {
		return l.recordDecodeErr(tok, diagerr.InvalidHexString(spanOf(tok)))
	}
	return tok
}

func (l *Lexer) lexBase64ByteString() lexer.Token {
	l.advance(4) // "b64'"
	contentStart := l.pos
	for {
		b, ok := l.peekByte()
		if !ok {
			return l.emitToken(token.ILLEGAL)
		}
		if b == '\'' {
			break
		}
		l.advance(1)
	}
	content := l.input[contentStart:l.pos]
	l.advance(1) // closing '\''

	tok := l.emitToken(token.ByteStringBase64)
	if len(content) < 2 {
		return l.recordDecodeErr(tok, diagerr.InvalidBase64String(spanOf(tok)))
	}
	if _, err := base64.StdEncoding.DecodeString(content); err != nil {
		return l.recordDecodeErr(tok, diagerr.InvalidBase64String(spanOf(tok)))
	}
	return tok
}

func (l *Lexer) lexUR() lexer.Token {
	m := urRe.FindString(l.input[l.pos:])
	if m == "" {
		l.advance(1)
		return l.emitToken(token.ILLEGAL)
	}
	l.advance(len(m))
	tok := l.emitToken(token.UR)
	if _, err := ur.FromString(tok.Value); err != nil {
		return l.recordDecodeErr(tok, diagerr.InvalidUr(spanOf(tok)))
	}
	return tok
}

func (l *Lexer) lexMinusLed() lexer.Token {
	rest := l.input[l.pos:]
	if strings.HasPrefix(rest, "-Infinity") {
		after := l.pos + len("-Infinity")
		if after >= len(l.input) || !isIdentCont(l.input[after]) {
			l.advance(len("-Infinity"))
			return l.emitToken(token.NegInfinity)
		}
	}
	if m := numberRe.FindString(rest); m != "" {
		l.advance(len(m))
		return l.emitToken(token.Number)
	}
	l.advance(1)
	return l.emitToken(token.ILLEGAL)
}

// lexDigitLed resolves the date/number/tag-head ambiguity: a date literal
// is tried first since its shape (4 digits, then '-') never overlaps a
// bare number or a tag head (digits immediately followed by '(').
func (l *Lexer) lexDigitLed() lexer.Token {
	rest := l.input[l.pos:]

	if m := dateRe.FindString(rest); m != "" {
		l.advance(len(m))
		tok := l.emitToken(token.DateLiteral)
		if _, err := dateliteral.Parse(tok.Value); err != nil {
			return l.recordDecodeErr(tok, diagerr.InvalidDateString(spanOf(tok)))
		}
		return tok
	}
	if m := tagHeadRe.FindString(rest); m != "" {
		l.advance(len(m))
		tok := l.emitToken(token.TagValue)
		digits := strings.TrimSuffix(tok.Value, "(")
		if _, err := strconv.ParseUint(digits, 10, 64); err != nil {
			return l.recordDecodeErr(tok, diagerr.InvalidTagValue(spanOf(tok)))
		}
		return tok
	}
	if m := numberRe.FindString(rest); m != "" {
		l.advance(len(m))
		return l.emitToken(token.Number)
	}

	l.advance(1)
	return l.emitToken(token.ILLEGAL)
}

var keywords = map[string]token.TokenType{
	"true":     token.Bool,
	"false":    token.Bool,
	"null":     token.Null,
	"NaN":      token.NaN,
	"Infinity": token.Infinity,
	"Unit":     token.Unit,
}

func (l *Lexer) lexIdentOrKeywordOrTagName() lexer.Token {
	for {
		b, ok := l.peekByte()
		if !ok || !isIdentCont(b) {
			break
		}
		l.advance(1)
	}
	if b, ok := l.peekByte(); ok && b == '(' {
		l.advance(1)
		return l.emitToken(token.TagName)
	}

	ident := l.input[l.start:l.pos]
	if tt, ok := keywords[ident]; ok {
		return l.emitToken(tt)
	}
	return l.emitToken(token.ILLEGAL)
}

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n' || b == '\f'
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isIdentStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_'
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || isDigit(b) || b == '-'
}

func isValidEscape(b byte) bool {
	switch b {
	case '"', '\\', '/', 'b', 'n', 'f', 'r', 't', 'u':
		return true
	default:
		return false
	}
}

// --- lexer.Definition ---

// Definition implements participle's lexer.Definition over Lexer.
type Definition struct{}

func (Definition) Lex(filename string, r io.Reader) (lexer.Lexer, error) {
	buf := new(strings.Builder)
	if _, err := io.Copy(buf, r); err != nil {
		return nil, fmt.Errorf("lexer: reading input: %w", err)
	}
	return NewLexer(filename, buf.String()), nil
}

func (Definition) LexString(filename string, input string) (lexer.Lexer, error) {
	return NewLexer(filename, input), nil
}

func (Definition) LexBytes(filename string, input []byte) (lexer.Lexer, error) {
	return NewLexer(filename, string(input)), nil
}

func (Definition) Symbols() map[string]lexer.TokenType {
	out := make(map[string]lexer.TokenType, len(token.Symbols))
	for tt, name := range token.Symbols {
		out[name] = lexer.TokenType(tt)
	}
	return out
}
