// Package diagerr implements the closed error-kind sum of spec §7 and the
// line/caret diagnostic renderer of spec §4.4. Every failure mode the lexer,
// parser, and composer can raise has a constructor here; the lexer, parser,
// and composer report failures through no other error type.
package diagerr

import "fmt"

// Kind identifies one of the closed set of failure modes.
type Kind int

const (
	// Input framing.
	EmptyInputKind Kind = iota
	UnexpectedEndOfInputKind
	ExtraDataKind

	// Lexical.
	UnrecognizedTokenKind
	InvalidHexStringKind
	InvalidBase64StringKind
	InvalidTagValueKind
	InvalidKnownValueKind
	InvalidDateStringKind
	InvalidUrKind

	// Structural.
	UnexpectedTokenKind
	ExpectedCommaKind
	ExpectedColonKind
	ExpectedMapKeyKind
	UnmatchedParenthesesKind
	UnmatchedBracesKind

	// Semantic / registry.
	UnknownTagNameKind
	UnknownUrTypeKind
	UnknownKnownValueNameKind

	// Deterministic-map rule.
	DuplicateMapKeyKind

	// Composer.
	OddMapLengthKind
)

func (k Kind) String() string {
	switch k {
	case EmptyInputKind:
		return "EmptyInput"
	case UnexpectedEndOfInputKind:
		return "UnexpectedEndOfInput"
	case ExtraDataKind:
		return "ExtraData"
	case UnrecognizedTokenKind:
		return "UnrecognizedToken"
	case InvalidHexStringKind:
		return "InvalidHexString"
	case InvalidBase64StringKind:
		return "InvalidBase64String"
	case InvalidTagValueKind:
		return "InvalidTagValue"
	case InvalidKnownValueKind:
		return "InvalidKnownValue"
	case InvalidDateStringKind:
		return "InvalidDateString"
	case InvalidUrKind:
		return "InvalidUr"
	case UnexpectedTokenKind:
		return "UnexpectedToken"
	case ExpectedCommaKind:
		return "ExpectedComma"
	case ExpectedColonKind:
		return "ExpectedColon"
	case ExpectedMapKeyKind:
		return "ExpectedMapKey"
	case UnmatchedParenthesesKind:
		return "UnmatchedParentheses"
	case UnmatchedBracesKind:
		return "UnmatchedBraces"
	case UnknownTagNameKind:
		return "UnknownTagName"
	case UnknownUrTypeKind:
		return "UnknownUrType"
	case UnknownKnownValueNameKind:
		return "UnknownKnownValueName"
	case DuplicateMapKeyKind:
		return "DuplicateMapKey"
	case OddMapLengthKind:
		return "OddMapLength"
	default:
		return "Unknown"
	}
}

// Error is the single concrete error type the lexer, parser, and composer
// return. Kind
// selects the failure mode; Span (when HasSpan is true) pins it to a byte
// range of the source that the renderer underlines.
type Error struct {
	Kind    Kind
	Span    Span
	HasSpan bool
	Detail  string // e.g. the unresolved name, empty for kinds with no detail
}

func (e *Error) Error() string {
	msg := message(e.Kind, e.Detail)
	if !e.HasSpan {
		return msg
	}
	return fmt.Sprintf("%s (at byte %d)", msg, e.Span.Start)
}

func message(k Kind, detail string) string {
	switch k {
	case EmptyInputKind:
		return "empty input"
	case UnexpectedEndOfInputKind:
		return "unexpected end of input"
	case ExtraDataKind:
		return "extra data after the first item"
	case UnrecognizedTokenKind:
		return "unrecognized token"
	case InvalidHexStringKind:
		return "invalid hex byte string"
	case InvalidBase64StringKind:
		return "invalid base64 byte string"
	case InvalidTagValueKind:
		return "invalid tag value"
	case InvalidKnownValueKind:
		return "invalid known value number"
	case InvalidDateStringKind:
		return "invalid date literal"
	case InvalidUrKind:
		return "invalid UR"
	case UnexpectedTokenKind:
		if detail != "" {
			return "unexpected token: " + detail
		}
		return "unexpected token"
	case ExpectedCommaKind:
		return "expected ','"
	case ExpectedColonKind:
		return "expected ':'"
	case ExpectedMapKeyKind:
		return "expected an item for the map value"
	case UnmatchedParenthesesKind:
		return "unmatched '('"
	case UnmatchedBracesKind:
		return "unmatched '{'"
	case UnknownTagNameKind:
		return "unknown tag name: " + detail
	case UnknownUrTypeKind:
		return "unknown UR type: " + detail
	case UnknownKnownValueNameKind:
		return "unknown known value name: " + detail
	case DuplicateMapKeyKind:
		return "duplicate map key"
	case OddMapLengthKind:
		return "odd number of fragments passed to compose map"
	default:
		return "unknown error"
	}
}

func withSpan(k Kind, span Span, detail string) *Error {
	return &Error{Kind: k, Span: span, HasSpan: true, Detail: detail}
}

// EmptyInput reports that the source contained no first token.
func EmptyInput() *Error {
	return &Error{Kind: EmptyInputKind, Span: Span{0, 0}, HasSpan: true}
}

// UnexpectedEndOfInput reports running out of tokens mid-construct. Per
// spec §4.4 its span is the degenerate [len, len) at the end of the source.
func UnexpectedEndOfInput(sourceLen int) *Error {
	return withSpan(UnexpectedEndOfInputKind, Span{sourceLen, sourceLen}, "")
}

// ExtraData reports a stray token remaining after a complete top-level item.
func ExtraData(span Span) *Error { return withSpan(ExtraDataKind, span, "") }

// UnrecognizedToken reports a byte sequence the lexer could not classify.
func UnrecognizedToken(span Span) *Error { return withSpan(UnrecognizedTokenKind, span, "") }

// InvalidHexString reports a malformed h'...' literal (e.g. odd hex length).
func InvalidHexString(span Span) *Error { return withSpan(InvalidHexStringKind, span, "") }

// InvalidBase64String reports a malformed b64'...' literal.
func InvalidBase64String(span Span) *Error { return withSpan(InvalidBase64StringKind, span, "") }

// InvalidTagValue reports a numeric tag head that overflows its integer type.
func InvalidTagValue(span Span) *Error { return withSpan(InvalidTagValueKind, span, "") }

// InvalidKnownValue reports a known-value number literal that overflows.
func InvalidKnownValue(span Span) *Error { return withSpan(InvalidKnownValueKind, span, "") }

// InvalidDateString reports a date literal that fails to parse.
func InvalidDateString(span Span) *Error { return withSpan(InvalidDateStringKind, span, "") }

// InvalidUr reports a UR literal that fails Bytewords/CRC decoding.
func InvalidUr(span Span) *Error { return withSpan(InvalidUrKind, span, "") }

// UnexpectedToken reports a token appearing where the grammar forbids it.
// detail, if non-empty, names either the offending token's type or what
// was expected in its place.
func UnexpectedToken(span Span, detail string) *Error {
	return withSpan(UnexpectedTokenKind, span, detail)
}

// ExpectedComma reports a missing ',' between container elements.
func ExpectedComma(span Span) *Error { return withSpan(ExpectedCommaKind, span, "") }

// ExpectedColon reports a missing ':' between a map key and its value.
func ExpectedColon(span Span) *Error { return withSpan(ExpectedColonKind, span, "") }

// ExpectedMapKey reports an empty map-value position (e.g. "{k: }").
func ExpectedMapKey(span Span) *Error { return withSpan(ExpectedMapKeyKind, span, "") }

// UnmatchedParentheses reports a tagged value whose inner item is never
// followed by a closing ')'.
func UnmatchedParentheses(span Span) *Error {
	return withSpan(UnmatchedParenthesesKind, span, "")
}

// UnmatchedBraces reports a map that is never closed by '}'.
func UnmatchedBraces(span Span) *Error { return withSpan(UnmatchedBracesKind, span, "") }

// UnknownTagName reports a TagName identifier absent from the tag registry.
// span excludes the trailing '('.
func UnknownTagName(name string, span Span) *Error {
	return withSpan(UnknownTagNameKind, span, name)
}

// UnknownUrType reports a UR "type" prefix absent from the tag registry.
func UnknownUrType(urType string, span Span) *Error {
	return withSpan(UnknownUrTypeKind, span, urType)
}

// UnknownKnownValueName reports a 'name' literal absent from the
// known-value registry. span excludes the surrounding quotes.
func UnknownKnownValueName(name string, span Span) *Error {
	return withSpan(UnknownKnownValueNameKind, span, name)
}

// DuplicateMapKey reports a map literal whose key collides, under dCBOR
// numeric/structural equivalence, with an earlier key. span covers the
// second (offending) key's token range.
func DuplicateMapKey(span Span) *Error { return withSpan(DuplicateMapKeyKind, span, "") }

// OddMapLength reports compose_map being given an odd number of fragments.
func OddMapLength() *Error {
	return &Error{Kind: OddMapLengthKind}
}
