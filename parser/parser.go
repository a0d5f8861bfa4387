// Package parser implements the recursive-descent consumer of the token
// stream produced by parser/lexer: it builds dcbor.Value trees, enforces
// container grammar (arrays, maps, tagged values), and resolves names
// against a registry.Environment.
package parser

import (
	"encoding/base64"
	"encoding/hex"
	"strconv"
	"strings"

	plexer "github.com/alecthomas/participle/v2/lexer"

	"github.com/blockchaincommons/bc-dcbor-diag-go/dateliteral"
	"github.com/blockchaincommons/bc-dcbor-diag-go/dcbor"
	"github.com/blockchaincommons/bc-dcbor-diag-go/diagerr"
	ownlexer "github.com/blockchaincommons/bc-dcbor-diag-go/parser/lexer"
	"github.com/blockchaincommons/bc-dcbor-diag-go/parser/lexer/token"
	"github.com/blockchaincommons/bc-dcbor-diag-go/registry"
	"github.com/blockchaincommons/bc-dcbor-diag-go/ur"
)

// Parser is a single-use recursive-descent parser over one source string.
// It is not safe for concurrent use; construct one per call.
type Parser struct {
	raw    *ownlexer.Lexer
	lex    *plexer.PeekingLexer
	source string
	env    *registry.Environment
}

// New builds a Parser over source, resolving names against env.
func New(source string, env *registry.Environment) (*Parser, error) {
	raw := ownlexer.NewLexer("", source)
	pl, err := plexer.Upgrade(raw)
	if err != nil {
		return nil, err
	}
	return &Parser{raw: raw, lex: pl, source: source, env: env}, nil
}

// ParseItem implements parse_item: it succeeds iff source contains exactly
// one well-formed item, trailing whitespace and comments permitted.
func ParseItem(source string, env *registry.Environment) (dcbor.Value, error) {
	p, err := New(source, env)
	if err != nil {
		return nil, err
	}
	return p.ParseItem()
}

// ParseItemPartial implements parse_item_partial: it succeeds on the first
// well-formed item even if more source follows, reporting how many bytes
// were consumed.
func ParseItemPartial(source string, env *registry.Environment) (dcbor.Value, int, error) {
	p, err := New(source, env)
	if err != nil {
		return nil, 0, err
	}
	return p.ParseItemPartial()
}

func (p *Parser) ParseItem() (dcbor.Value, error) {
	v, consumed, err := p.ParseItemPartial()
	if err != nil {
		return nil, err
	}
	if consumed != len(p.source) {
		next := p.lex.Peek()
		return nil, diagerr.ExtraData(p.tokenSpan(next))
	}
	return v, nil
}

func (p *Parser) ParseItemPartial() (dcbor.Value, int, error) {
	if p.lex.Peek().EOF() {
		return nil, 0, diagerr.EmptyInput()
	}
	v, err := p.parseItem()
	if err != nil {
		return nil, 0, err
	}
	next := p.lex.Peek()
	if next.EOF() {
		return v, len(p.source), nil
	}
	return v, next.Pos.Offset, nil
}

func (p *Parser) tokenSpan(tok plexer.Token) diagerr.Span {
	if tok.EOF() {
		return diagerr.Span{Start: len(p.source), End: len(p.source)}
	}
	return diagerr.Span{Start: tok.Pos.Offset, End: tok.Pos.Offset + len(tok.Value)}
}

func (p *Parser) decodeErr(tok plexer.Token) error {
	return p.raw.DecodeErrAt(tok.Pos.Offset)
}

// parseItem dispatches on the next token's type: item := atom | array |
// map | tagged | knownval.
func (p *Parser) parseItem() (dcbor.Value, error) {
	next := p.lex.Peek()
	if next.EOF() {
		return nil, diagerr.UnexpectedEndOfInput(len(p.source))
	}

	switch token.TokenType(next.Type) {
	case token.BracketOpen:
		return p.parseArray()
	case token.BraceOpen:
		return p.parseMap()
	case token.TagValue:
		return p.parseTaggedValue(next)
	case token.TagName:
		return p.parseTaggedName(next)
	case token.KnownValueNumber, token.KnownValueName, token.Unit:
		return p.parseKnownValue(next)
	default:
		return p.parseAtom(next)
	}
}

func (p *Parser) parseAtom(next plexer.Token) (dcbor.Value, error) {
	switch token.TokenType(next.Type) {
	case token.Bool:
		p.lex.Next()
		return dcbor.Bool(next.Value == "true"), nil
	case token.Null:
		p.lex.Next()
		return dcbor.Null{}, nil
	case token.NaN:
		p.lex.Next()
		return dcbor.Float(nan()), nil
	case token.Infinity:
		p.lex.Next()
		return dcbor.Float(inf(1)), nil
	case token.NegInfinity:
		p.lex.Next()
		return dcbor.Float(inf(-1)), nil
	case token.Number:
		p.lex.Next()
		return parseNumber(next.Value), nil
	case token.String:
		p.lex.Next()
		return dcbor.Text(unescapeString(next.Value)), nil
	case token.ByteStringHex:
		p.lex.Next()
		if err := p.decodeErr(next); err != nil {
			return nil, err
		}
		raw, _ := hex.DecodeString(strings.TrimSuffix(strings.TrimPrefix(next.Value, "h'"), "'"))
		return dcbor.Bytes(raw), nil
	case token.ByteStringBase64:
		p.lex.Next()
		if err := p.decodeErr(next); err != nil {
			return nil, err
		}
		raw, _ := base64.StdEncoding.DecodeString(strings.TrimSuffix(strings.TrimPrefix(next.Value, "b64'"), "'"))
		return dcbor.Bytes(raw), nil
	case token.DateLiteral:
		p.lex.Next()
		if err := p.decodeErr(next); err != nil {
			return nil, err
		}
		v, _ := dateliteral.Parse(next.Value)
		return v, nil
	case token.UR:
		p.lex.Next()
		return p.resolveUR(next)
	case token.ILLEGAL:
		p.lex.Next()
		return nil, diagerr.UnrecognizedToken(p.tokenSpan(next))
	default:
		return nil, diagerr.UnexpectedToken(p.tokenSpan(next), token.TypeString(token.TokenType(next.Type)))
	}
}

func (p *Parser) resolveUR(tok plexer.Token) (dcbor.Value, error) {
	if err := p.decodeErr(tok); err != nil {
		return nil, err
	}
	decoded, err := ur.FromString(tok.Value)
	if err != nil {
		return nil, diagerr.InvalidUr(p.tokenSpan(tok))
	}
	typeOffset := tok.Pos.Offset + len("ur:")
	typeSpan := diagerr.Span{Start: typeOffset, End: typeOffset + len(decoded.Type)}

	number, ok := p.env.Tags.LookupName(decoded.Type)
	if !ok {
		return nil, diagerr.UnknownUrType(decoded.Type, typeSpan)
	}
	return dcbor.NewTagged(number, decoded.Content), nil
}

// parseArray implements array := '[' ( item ( ',' item )* )? ']'.
func (p *Parser) parseArray() (dcbor.Value, error) {
	p.lex.Next() // consume '['
	var items dcbor.Array

	awaitsItem := true
	for {
		next := p.lex.Peek()
		if next.EOF() {
			return nil, diagerr.UnexpectedEndOfInput(len(p.source))
		}
		if token.TokenType(next.Type) == token.BracketClose {
			if !awaitsItem || len(items) == 0 {
				p.lex.Next()
				return items, nil
			}
			return nil, diagerr.UnexpectedToken(p.tokenSpan(next), "item")
		}
		if !awaitsItem {
			if token.TokenType(next.Type) != token.Comma {
				return nil, diagerr.ExpectedComma(p.tokenSpan(next))
			}
			p.lex.Next()
			awaitsItem = true
			continue
		}

		item, err := p.parseItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		awaitsItem = false
	}
}

// parseMap implements map := '{' ( pair ( ',' pair )* )? '}' with
// pair := item ':' item.
func (p *Parser) parseMap() (dcbor.Value, error) {
	p.lex.Next() // consume '{'
	m := dcbor.NewMap()

	awaitsItem := true
	for {
		next := p.lex.Peek()
		if next.EOF() {
			return nil, diagerr.UnmatchedBraces(p.tokenSpan(next))
		}
		if token.TokenType(next.Type) == token.BraceClose {
			if !awaitsItem || m.Len() == 0 {
				p.lex.Next()
				return m, nil
			}
			return nil, diagerr.UnexpectedToken(p.tokenSpan(next), "item")
		}
		if !awaitsItem {
			if token.TokenType(next.Type) != token.Comma {
				return nil, diagerr.ExpectedComma(p.tokenSpan(next))
			}
			p.lex.Next()
			awaitsItem = true
			continue
		}

		keyTok := p.lex.Peek()
		key, err := p.parseItem()
		if err != nil {
			return nil, err
		}

		colon := p.lex.Peek()
		if colon.EOF() {
			return nil, diagerr.UnmatchedBraces(p.tokenSpan(colon))
		}
		if token.TokenType(colon.Type) != token.Colon {
			return nil, diagerr.ExpectedColon(p.tokenSpan(colon))
		}
		p.lex.Next()

		valTok := p.lex.Peek()
		if valTok.EOF() || isTerminator(valTok) {
			return nil, diagerr.ExpectedMapKey(p.tokenSpan(valTok))
		}
		value, err := p.parseItem()
		if err != nil {
			return nil, err
		}

		if ok, _ := m.InsertUnique(key, value); !ok {
			return nil, diagerr.DuplicateMapKey(p.tokenSpan(keyTok))
		}
		awaitsItem = false
	}
}

func isTerminator(tok plexer.Token) bool {
	switch token.TokenType(tok.Type) {
	case token.Comma, token.BraceClose, token.BracketClose, token.ParenthesisClose:
		return true
	default:
		return false
	}
}

// parseTaggedValue implements tagged := TagValue item ')'.
func (p *Parser) parseTaggedValue(head plexer.Token) (dcbor.Value, error) {
	p.lex.Next()
	if err := p.decodeErr(head); err != nil {
		return nil, err
	}
	number, _ := strconv.ParseUint(strings.TrimSuffix(head.Value, "("), 10, 64)
	return p.parseTaggedBody(number, head)
}

// parseTaggedName implements tagged := TagName item ')'.
func (p *Parser) parseTaggedName(head plexer.Token) (dcbor.Value, error) {
	p.lex.Next()
	name := strings.TrimSuffix(head.Value, "(")
	number, ok := p.env.Tags.LookupName(name)
	if !ok {
		nameSpan := diagerr.Span{Start: head.Pos.Offset, End: head.Pos.Offset + len(name)}
		return nil, diagerr.UnknownTagName(name, nameSpan)
	}
	return p.parseTaggedBody(number, head)
}

func (p *Parser) parseTaggedBody(number uint64, head plexer.Token) (dcbor.Value, error) {
	if p.lex.Peek().EOF() {
		return nil, diagerr.UnmatchedParentheses(p.tokenSpan(head))
	}
	inner, err := p.parseItem()
	if err != nil {
		return nil, err
	}
	closeTok := p.lex.Peek()
	if closeTok.EOF() {
		return nil, diagerr.UnmatchedParentheses(p.tokenSpan(head))
	}
	if token.TokenType(closeTok.Type) != token.ParenthesisClose {
		return nil, diagerr.UnmatchedParentheses(p.tokenSpan(closeTok))
	}
	p.lex.Next()
	return dcbor.NewTagged(number, inner), nil
}

const knownValueTag = 40000

// parseKnownValue implements knownval := KnownValueNumber | KnownValueName
// | Unit.
func (p *Parser) parseKnownValue(tok plexer.Token) (dcbor.Value, error) {
	p.lex.Next()
	switch token.TokenType(tok.Type) {
	case token.Unit:
		return dcbor.NewTagged(knownValueTag, dcbor.Int(0)), nil
	case token.KnownValueNumber:
		if err := p.decodeErr(tok); err != nil {
			return nil, err
		}
		digits := strings.TrimSuffix(strings.TrimPrefix(tok.Value, "'"), "'")
		n, _ := strconv.ParseUint(digits, 10, 64)
		return dcbor.NewTagged(knownValueTag, dcbor.Int(n)), nil
	default: // token.KnownValueName
		if tok.Value == "''" {
			return dcbor.NewTagged(knownValueTag, dcbor.Int(0)), nil
		}
		name := strings.TrimSuffix(strings.TrimPrefix(tok.Value, "'"), "'")
		number, ok := p.env.KnownValues.LookupName(name)
		if !ok {
			nameSpan := diagerr.Span{Start: tok.Pos.Offset + 1, End: tok.Pos.Offset + len(tok.Value) - 1}
			return nil, diagerr.UnknownKnownValueName(name, nameSpan)
		}
		return dcbor.NewTagged(knownValueTag, dcbor.Int(number)), nil
	}
}
