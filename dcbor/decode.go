package dcbor

import (
	"fmt"
	"math"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// Decode parses raw deterministic-or-not CBOR bytes into a Value tree. It is
// used to turn the inner CBOR payload of a Bytewords-decoded UR into the
// same value model the diagnostic-notation parser produces, so URs and
// textual literals are indistinguishable once parsed (spec §6, UR type).
//
// Decode accepts any well-formed CBOR, not just the deterministic subset:
// the source of these bytes (a UR) is an external encoding this module does
// not control the production of. Date/time tags (0 and 1), which the
// underlying decoder turns into time.Time, come back as tag 1 over epoch
// seconds, the same shape dateliteral produces.
func Decode(data []byte) (Value, error) {
	var raw interface{}
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode cbor: %w", err)
	}
	return fromRaw(raw)
}

func fromRaw(raw interface{}) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return Null{}, nil
	case bool:
		return Bool(v), nil
	case int64:
		return Int(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return nil, fmt.Errorf("decode cbor: integer %d exceeds supported range", v)
		}
		return Int(int64(v)), nil
	case float32:
		return Float(float64(v)), nil
	case float64:
		return Float(v), nil
	case []byte:
		return Bytes(v), nil
	case string:
		return Text(v), nil
	case []interface{}:
		arr := make(Array, len(v))
		for i, elem := range v {
			cv, err := fromRaw(elem)
			if err != nil {
				return nil, fmt.Errorf("decode cbor: array element %d: %w", i, err)
			}
			arr[i] = cv
		}
		return arr, nil
	case map[interface{}]interface{}:
		m := NewMap()
		for k, val := range v {
			kv, err := fromRaw(k)
			if err != nil {
				return nil, fmt.Errorf("decode cbor: map key: %w", err)
			}
			vv, err := fromRaw(val)
			if err != nil {
				return nil, fmt.Errorf("decode cbor: map value: %w", err)
			}
			m.InsertLastWriterWins(kv, vv)
		}
		return m, nil
	case cbor.Tag:
		content, err := fromRaw(v.Content)
		if err != nil {
			return nil, fmt.Errorf("decode cbor: tag %d content: %w", v.Number, err)
		}
		return Tagged{Number: v.Number, Content: content}, nil
	case time.Time:
		if v.Nanosecond() == 0 {
			return Tagged{Number: 1, Content: Int(v.Unix())}, nil
		}
		return Tagged{Number: 1, Content: Float(float64(v.Unix()) + float64(v.Nanosecond())/1e9)}, nil
	default:
		return nil, fmt.Errorf("decode cbor: unsupported decoded Go type %T", raw)
	}
}
