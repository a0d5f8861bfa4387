// Package ur decodes `ur:<type>/<bytewords>` literals (spec §4.1 "UR",
// §6 "UR type"): split the type from the payload, decode the payload's
// Bytewords, verify its trailing CRC-32, and decode the remaining bytes as
// a CBOR item.
package ur

import (
	"encoding/binary"
	"hash/crc32"
	"strings"

	"github.com/blockchaincommons/bc-dcbor-diag-go/bytewords"
	"github.com/blockchaincommons/bc-dcbor-diag-go/dcbor"
)

// Decoded holds the result of splitting and decoding a UR literal: the
// "type" prefix (not yet resolved against any tag registry) and the CBOR
// item carried by its payload.
type Decoded struct {
	Type    string
	Content dcbor.Value
}

// FromString decodes s, with or without its leading "ur:" scheme (the
// lexer's UR token keeps the scheme in Value; callers pass the full token
// text here and FromString does the stripping).
func FromString(s string) (Decoded, error) {
	rest := strings.TrimPrefix(s, "ur:")
	slash := strings.IndexByte(rest, '/')
	if slash < 0 {
		return Decoded{}, errInvalid("missing '/' separator")
	}
	urType := rest[:slash]
	payload := rest[slash+1:]

	raw, err := bytewords.DecodeMinimal(payload)
	if err != nil {
		return Decoded{}, err
	}
	if len(raw) < 4 {
		return Decoded{}, errInvalid("payload shorter than its checksum")
	}

	data, checksum := raw[:len(raw)-4], raw[len(raw)-4:]
	if binary.BigEndian.Uint32(checksum) != crc32.ChecksumIEEE(data) {
		return Decoded{}, errInvalid("checksum mismatch")
	}

	content, err := dcbor.Decode(data)
	if err != nil {
		return Decoded{}, err
	}
	return Decoded{Type: urType, Content: content}, nil
}

type invalidError struct{ reason string }

func (e *invalidError) Error() string { return "ur: invalid literal: " + e.reason }

func errInvalid(reason string) error { return &invalidError{reason} }
