// Package dbg provides test and debugging helpers that pretty-print token
// streams and parsed value trees, using the same github.com/alecthomas/repr
// formatter participle-based parsers conventionally reach for in their own
// test output.
package dbg

import (
	"github.com/alecthomas/repr"

	"github.com/blockchaincommons/bc-dcbor-diag-go/dcbor"
	ownlexer "github.com/blockchaincommons/bc-dcbor-diag-go/parser/lexer"
	"github.com/blockchaincommons/bc-dcbor-diag-go/parser/lexer/token"
)

// Tokens lexes source to completion and returns the full token.Token
// sequence, including EOF, with each token's eagerly-decoded error (if any)
// folded back onto the DecodeErr field for inspection.
func Tokens(source string) ([]token.Token, error) {
	l := ownlexer.NewLexer("dbg", source)
	var out []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return out, err
		}
		out = append(out, token.Token{
			Type:      token.TokenType(tok.Type),
			Value:     tok.Value,
			Pos:       tok.Pos,
			DecodeErr: l.DecodeErrAt(tok.Pos.Offset),
		})
		if token.TokenType(tok.Type) == token.EOF {
			break
		}
	}
	return out, nil
}

// DumpTokens renders source's token stream as a repr tree, for use in test
// failure output and ad hoc inspection.
func DumpTokens(source string) string {
	toks, err := Tokens(source)
	if err != nil {
		return repr.String(err, repr.Indent("  "))
	}
	return repr.String(toks, repr.Indent("  "))
}

// DumpValue renders a parsed dcbor.Value as a repr tree.
func DumpValue(v dcbor.Value) string {
	return repr.String(v, repr.Indent("  "))
}
