package parser

import (
	"github.com/blockchaincommons/bc-dcbor-diag-go/dcbor"
	"github.com/blockchaincommons/bc-dcbor-diag-go/diagerr"
	"github.com/blockchaincommons/bc-dcbor-diag-go/registry"
)

// ComposeArray implements compose_array: each fragment is parsed as a
// complete item and the results collected in order. A fragment's parse
// error propagates unchanged, with its own internal span rather than one
// remapped to the fragment's position in the list.
func ComposeArray(fragments []string, env *registry.Environment) (dcbor.Value, error) {
	items := make(dcbor.Array, 0, len(fragments))
	for _, fragment := range fragments {
		v, err := ParseItem(fragment, env)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, nil
}

// ComposeMap implements compose_map: fragments are consumed in (key, value)
// pairs. Unlike a parsed map literal, duplicate keys do not raise
// DuplicateMapKey here; the last pair with a given key wins, matching the
// reference composer's relaxed policy (spec §4.3).
func ComposeMap(fragments []string, env *registry.Environment) (dcbor.Value, error) {
	if len(fragments)%2 != 0 {
		return nil, diagerr.OddMapLength()
	}

	m := dcbor.NewMap()
	for i := 0; i < len(fragments); i += 2 {
		key, err := ParseItem(fragments[i], env)
		if err != nil {
			return nil, err
		}
		value, err := ParseItem(fragments[i+1], env)
		if err != nil {
			return nil, err
		}
		m.InsertLastWriterWins(key, value)
	}
	return m, nil
}
