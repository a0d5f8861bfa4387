// Package token defines the token vocabulary the diagnostic-notation lexer
// produces. Every TokenType here corresponds to one lexical production of
// spec.md §4.1; keyword/number/date/tag-head ambiguities are resolved by
// the lexer's recognition order, not by anything in this package.
package token

import (
	"fmt"
	"strconv"

	"github.com/alecthomas/participle/v2/lexer"
)

// TokenType identifies the lexical class of a Token.
type TokenType int

const (
	EOF TokenType = iota - 1
	ILLEGAL

	// Keywords / specials.
	Bool        // true, false
	Null        // null
	NaN         // NaN
	Infinity    // Infinity
	NegInfinity // -Infinity
	Unit        // Unit

	// Literals.
	Number           // decimal float, spec §4.1
	String           // "..." (raw slice, including quotes; unescaped by the parser)
	ByteStringHex    // h'...'
	ByteStringBase64 // b64'...'
	DateLiteral      // ISO-8601 calendar date / date-time
	TagValue         // <digits>(
	TagName          // <ident>(
	KnownValueNumber // '<digits>'
	KnownValueName   // '<ident>'
	UR               // ur:<type>/<bytewords>

	// Punctuation.
	BraceOpen
	BraceClose
	BracketOpen
	BracketClose
	ParenthesisOpen
	ParenthesisClose
	Colon
	Comma
)

// Token is a lexed token: its type, the exact source slice it covers, and
// its byte-range Position. DecodeErr carries the result of any eager
// sub-decoding the lexer performed on the payload (hex, base64, date, UR,
// or integer-overflow checks); it is filled in by internal/dbg.Tokens from
// Lexer.DecodeErrAt, while the parser reads Lexer.DecodeErrAt directly.
type Token struct {
	Type      TokenType
	Value     string
	Pos       lexer.Position
	DecodeErr error
}

// IsEOF reports whether t is the end-of-input sentinel.
func (t Token) IsEOF() bool { return t.Type == EOF }

func (t Token) String() string {
	val := t.Value
	if len(val) > 20 {
		val = val[:17] + "..."
	}
	return fmt.Sprintf("%s: %q (%s)", t.Pos, val, TypeString(t.Type))
}

// TypeString returns a human-readable name for a TokenType.
func TypeString(tt TokenType) string {
	switch tt {
	case EOF:
		return "EOF"
	case ILLEGAL:
		return "ILLEGAL"
	case Bool:
		return "Bool"
	case Null:
		return "Null"
	case NaN:
		return "NaN"
	case Infinity:
		return "Infinity"
	case NegInfinity:
		return "NegInfinity"
	case Unit:
		return "Unit"
	case Number:
		return "Number"
	case String:
		return "String"
	case ByteStringHex:
		return "ByteStringHex"
	case ByteStringBase64:
		return "ByteStringBase64"
	case DateLiteral:
		return "DateLiteral"
	case TagValue:
		return "TagValue"
	case TagName:
		return "TagName"
	case KnownValueNumber:
		return "KnownValueNumber"
	case KnownValueName:
		return "KnownValueName"
	case UR:
		return "UR"
	case BraceOpen:
		return "BraceOpen"
	case BraceClose:
		return "BraceClose"
	case BracketOpen:
		return "BracketOpen"
	case BracketClose:
		return "BracketClose"
	case ParenthesisOpen:
		return "ParenthesisOpen"
	case ParenthesisClose:
		return "ParenthesisClose"
	case Colon:
		return "Colon"
	case Comma:
		return "Comma"
	default:
		return "Unknown(" + strconv.Itoa(int(tt)) + ")"
	}
}

// Symbols maps token types to names for participle's lexer.Definition
// interface, which the hand-rolled Lexer implements so it can drive a
// lexer.PeekingLexer (see parser/lexer.Lexer and parser.Parser).
var Symbols = map[TokenType]string{
	EOF:              "EOF",
	ILLEGAL:          "ILLEGAL",
	Bool:             "Bool",
	Null:             "Null",
	NaN:              "NaN",
	Infinity:         "Infinity",
	NegInfinity:      "NegInfinity",
	Unit:             "Unit",
	Number:           "Number",
	String:           "String",
	ByteStringHex:    "ByteStringHex",
	ByteStringBase64: "ByteStringBase64",
	DateLiteral:      "DateLiteral",
	TagValue:         "TagValue",
	TagName:          "TagName",
	KnownValueNumber: "KnownValueNumber",
	KnownValueName:   "KnownValueName",
	UR:               "UR",
	BraceOpen:        "BraceOpen",
	BraceClose:       "BraceClose",
	BracketOpen:      "BracketOpen",
	BracketClose:     "BracketClose",
	ParenthesisOpen:  "ParenthesisOpen",
	ParenthesisClose: "ParenthesisClose",
	Colon:            "Colon",
	Comma:            "Comma",
}
