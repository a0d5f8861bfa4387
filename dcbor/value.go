// Package dcbor implements the in-memory value model produced by the
// diagnostic notation parser: a small sum type over the CBOR major types,
// together with the equivalence and canonical-encoding rules the
// deterministic CBOR (dCBOR) profile requires of map keys.
package dcbor

import (
	"bytes"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Kind identifies the concrete shape of a Value.
type Kind int

const (
	KindBool Kind = iota
	KindNull
	KindInt
	KindFloat
	KindBytes
	KindText
	KindArray
	KindMap
	KindTagged
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBytes:
		return "bytes"
	case KindText:
		return "text"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	case KindTagged:
		return "tagged"
	default:
		return "unknown"
	}
}

// Value is a CBOR data item. The concrete types implementing it are Bool,
// Null, Int, Float, Bytes, Text, Array, *Map, and Tagged. The interface is
// sealed to this package: external code consumes Values through the Kind
// tag and a type switch, it never implements new variants.
type Value interface {
	Kind() Kind
	cborValue()
	// Encode returns the deterministic CBOR encoding of the value.
	Encode() ([]byte, error)
}

// Bool is the CBOR boolean major type.
type Bool bool

func (Bool) Kind() Kind   { return KindBool }
func (Bool) cborValue()   {}
func (b Bool) Encode() ([]byte, error) { return cbor.Marshal(bool(b)) }

// Null is the CBOR null simple value.
type Null struct{}

func (Null) Kind() Kind             { return KindNull }
func (Null) cborValue()             {}
func (Null) Encode() ([]byte, error) { return cbor.Marshal(nil) }

// Int is a CBOR integer (major type 0 or 1).
type Int int64

func (Int) Kind() Kind   { return KindInt }
func (Int) cborValue()   {}
func (n Int) Encode() ([]byte, error) { return cbor.Marshal(int64(n)) }

// Float is a CBOR floating point number (major type 7).
type Float float64

func (Float) Kind() Kind   { return KindFloat }
func (Float) cborValue()   {}
func (f Float) Encode() ([]byte, error) { return coreDetEncMode.Marshal(float64(f)) }

// coreDetEncMode encodes floats in their shortest exact width, as RFC 8949's
// core deterministic encoding requires; plain cbor.Marshal always writes
// float64 values as 8-byte floats.
var coreDetEncMode, _ = cbor.CoreDetEncOptions().EncMode()

// Bytes is a CBOR byte string (major type 2).
type Bytes []byte

func (Bytes) Kind() Kind   { return KindBytes }
func (Bytes) cborValue()   {}
func (b Bytes) Encode() ([]byte, error) { return cbor.Marshal([]byte(b)) }

// Text is a CBOR text string (major type 3).
type Text string

func (Text) Kind() Kind   { return KindText }
func (Text) cborValue()   {}
func (t Text) Encode() ([]byte, error) { return cbor.Marshal(string(t)) }

// Array is a CBOR array (major type 4); element order is significant and
// preserved exactly as constructed.
type Array []Value

func (Array) Kind() Kind { return KindArray }
func (Array) cborValue() {}

func (a Array) Encode() ([]byte, error) {
	raws := make([]cbor.RawMessage, len(a))
	for i, v := range a {
		enc, err := v.Encode()
		if err != nil {
			return nil, fmt.Errorf("encode array element %d: %w", i, err)
		}
		raws[i] = cbor.RawMessage(enc)
	}
	var buf bytes.Buffer
	buf.Write(encodeHead(4, uint64(len(raws))))
	for _, r := range raws {
		buf.Write(r)
	}
	return buf.Bytes(), nil
}

// Tagged is a CBOR tagged value (major type 6): a non-negative tag number
// wrapping exactly one inner item.
type Tagged struct {
	Number  uint64
	Content Value
}

func (Tagged) Kind() Kind { return KindTagged }
func (Tagged) cborValue() {}

func (t Tagged) Encode() ([]byte, error) {
	inner, err := t.Content.Encode()
	if err != nil {
		return nil, fmt.Errorf("encode tag %d content: %w", t.Number, err)
	}
	var buf bytes.Buffer
	buf.Write(encodeHead(6, t.Number))
	buf.Write(inner)
	return buf.Bytes(), nil
}

// NewTagged constructs a Tagged value.
func NewTagged(number uint64, content Value) Tagged {
	return Tagged{Number: number, Content: content}
}

// encodeHead packs a CBOR major-type/length head using the minimal
// additional-information form, per RFC 8949 §3. fxamacker/cbor does not
// expose this as a standalone helper because it is normally reached only
// through its reflection-driven encoder; Map needs it directly so it can
// control key ordering itself (see Map.Encode), so it is reproduced here.
func encodeHead(major byte, n uint64) []byte {
	hi := major << 5
	switch {
	case n < 24:
		return []byte{hi | byte(n)}
	case n <= 0xff:
		return []byte{hi | 24, byte(n)}
	case n <= 0xffff:
		return []byte{hi | 25, byte(n >> 8), byte(n)}
	case n <= 0xffffffff:
		return []byte{hi | 26, byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)}
	default:
		return []byte{hi | 27,
			byte(n >> 56), byte(n >> 48), byte(n >> 40), byte(n >> 32),
			byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)}
	}
}
