package ur

import (
	"encoding/binary"
	"hash/crc32"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockchaincommons/bc-dcbor-diag-go/bytewords"
	"github.com/blockchaincommons/bc-dcbor-diag-go/dcbor"
)

func buildUR(t *testing.T, urType string, content dcbor.Value) string {
	t.Helper()
	encoded, err := content.Encode()
	require.NoError(t, err)
	checksum := make([]byte, 4)
	binary.BigEndian.PutUint32(checksum, crc32.ChecksumIEEE(encoded))
	payload := append(append([]byte{}, encoded...), checksum...)
	return "ur:" + urType + "/" + bytewords.EncodeMinimal(payload)
}

func TestFromStringDecodesValidUR(t *testing.T) {
	s := buildUR(t, "test", dcbor.Int(42))
	decoded, err := FromString(s)
	require.NoError(t, err)
	assert.Equal(t, "test", decoded.Type)
	assert.Equal(t, dcbor.Int(42), decoded.Content)
}

func TestFromStringRejectsMissingSlash(t *testing.T) {
	_, err := FromString("ur:test-no-slash")
	assert.Error(t, err)
}

func TestFromStringRejectsBadChecksum(t *testing.T) {
	s := buildUR(t, "test", dcbor.Int(42))
	corrupted := s[:len(s)-2] + "aa"
	_, err := FromString(corrupted)
	assert.Error(t, err)
}

func TestFromStringRejectsShortPayload(t *testing.T) {
	_, err := FromString("ur:test/" + bytewords.EncodeMinimal([]byte{1, 2}))
	assert.Error(t, err)
}
