package parser

import (
	"encoding/binary"
	"hash/crc32"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockchaincommons/bc-dcbor-diag-go/bytewords"
	"github.com/blockchaincommons/bc-dcbor-diag-go/dcbor"
	"github.com/blockchaincommons/bc-dcbor-diag-go/diagerr"
	"github.com/blockchaincommons/bc-dcbor-diag-go/registry"
)

func newEnv() *registry.Environment {
	env := registry.NewEnvironment()
	env.Tags.Register("date", 1)
	env.KnownValues.Register("isA", 1)
	return env
}

func asDiagErr(t *testing.T, err error) *diagerr.Error {
	t.Helper()
	de, ok := err.(*diagerr.Error)
	require.True(t, ok, "expected *diagerr.Error, got %T: %v", err, err)
	return de
}

func TestParseAtoms(t *testing.T) {
	env := newEnv()

	v, err := ParseItem(`true`, env)
	require.NoError(t, err)
	assert.Equal(t, dcbor.Bool(true), v)

	v, err = ParseItem(`null`, env)
	require.NoError(t, err)
	assert.Equal(t, dcbor.Null{}, v)

	v, err = ParseItem(`42`, env)
	require.NoError(t, err)
	assert.Equal(t, dcbor.Int(42), v)

	v, err = ParseItem(`-1`, env)
	require.NoError(t, err)
	assert.Equal(t, dcbor.Int(-1), v)

	v, err = ParseItem(`3.14`, env)
	require.NoError(t, err)
	assert.Equal(t, dcbor.Float(3.14), v)

	v, err = ParseItem(`1e9`, env)
	require.NoError(t, err)
	assert.Equal(t, dcbor.Float(1e9), v)

	v, err = ParseItem(`"hello"`, env)
	require.NoError(t, err)
	assert.Equal(t, dcbor.Text("hello"), v)

	v, err = ParseItem(`NaN`, env)
	require.NoError(t, err)
	f, ok := v.(dcbor.Float)
	require.True(t, ok)
	assert.True(t, float64(f) != float64(f)) // NaN != NaN

	v, err = ParseItem(`Infinity`, env)
	require.NoError(t, err)
	assert.Equal(t, dcbor.KindFloat, v.Kind())

	v, err = ParseItem(`-Infinity`, env)
	require.NoError(t, err)
	assert.Equal(t, dcbor.KindFloat, v.Kind())
}

func TestParseStringEscapes(t *testing.T) {
	env := newEnv()
	v, err := ParseItem(`"a\nb\tc"`, env)
	require.NoError(t, err)
	assert.Equal(t, dcbor.Text("a\nb\tc"), v)
}

func TestParseByteStrings(t *testing.T) {
	env := newEnv()

	v, err := ParseItem(`h'68656c6c6f'`, env)
	require.NoError(t, err)
	assert.Equal(t, dcbor.Bytes("hello"), v)

	v, err = ParseItem(`b64'AQIDBAUGBwgJCg=='`, env)
	require.NoError(t, err)
	assert.Equal(t, dcbor.Bytes{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, v)
}

// Scenario 1: array of date-tagged values.
func TestParseDateArray(t *testing.T) {
	env := newEnv()
	v, err := ParseItem(`[1965-05-15, 2000-07-25, 2004-10-30]`, env)
	require.NoError(t, err)
	arr, ok := v.(dcbor.Array)
	require.True(t, ok)
	require.Len(t, arr, 3)
	for _, item := range arr {
		tagged, ok := item.(dcbor.Tagged)
		require.True(t, ok)
		assert.Equal(t, uint64(1), tagged.Number)
		assert.Equal(t, dcbor.KindInt, tagged.Content.Kind())
	}
}

// Scenario 2: duplicate key at the exact reference span.
func TestParseDuplicateMapKeySpan(t *testing.T) {
	env := newEnv()
	_, err := ParseItem(`{"key1": 1, "key2": 2, "key1": 3}`, env)
	require.Error(t, err)
	de := asDiagErr(t, err)
	assert.Equal(t, diagerr.DuplicateMapKeyKind, de.Kind)
	assert.Equal(t, diagerr.Span{Start: 23, End: 29}, de.Span)
	assert.Contains(t, de.Render(`{"key1": 1, "key2": 2, "key1": 3}`), "duplicate map key")
}

// Scenario 3: duplicate key under numeric equivalence (1 vs 1.0).
func TestParseDuplicateMapKeyNumericEquivalence(t *testing.T) {
	env := newEnv()
	_, err := ParseItem(`{1: "a", 1.0: "b"}`, env)
	require.Error(t, err)
	de := asDiagErr(t, err)
	assert.Equal(t, diagerr.DuplicateMapKeyKind, de.Kind)
}

// Scenario 4: truncated array.
func TestParseUnexpectedEndOfInput(t *testing.T) {
	env := newEnv()
	_, err := ParseItem(`[1, 2,`, env)
	require.Error(t, err)
	de := asDiagErr(t, err)
	assert.Equal(t, diagerr.UnexpectedEndOfInputKind, de.Kind)
}

// Scenario 5: trailing data after the first item.
func TestParseExtraData(t *testing.T) {
	env := newEnv()
	_, err := ParseItem(`1 1`, env)
	require.Error(t, err)
	de := asDiagErr(t, err)
	assert.Equal(t, diagerr.ExtraDataKind, de.Kind)
	assert.Equal(t, diagerr.Span{Start: 2, End: 3}, de.Span)
}

// Scenario 6: UR literal resolves through the tag registry. The fixture is
// built locally (rather than pasted from a known-good UR string) so the
// test doesn't depend on this package's Bytewords table matching the
// reference wordlist byte for byte.
func TestParseURResolvesTag(t *testing.T) {
	env := newEnv()
	v, err := ParseItem(buildURFixture(t, "date", dcbor.Int(19037)), env)
	require.NoError(t, err)
	tagged, ok := v.(dcbor.Tagged)
	require.True(t, ok)
	assert.Equal(t, uint64(1), tagged.Number)
	assert.Equal(t, dcbor.Int(19037), tagged.Content)
}

func TestParseURUnknownType(t *testing.T) {
	env := newEnv()
	_, err := ParseItem(buildURFixture(t, "unregistered", dcbor.Int(1)), env)
	require.Error(t, err)
	de := asDiagErr(t, err)
	assert.Equal(t, diagerr.UnknownUrTypeKind, de.Kind)
}

func buildURFixture(t *testing.T, urType string, content dcbor.Value) string {
	t.Helper()
	encoded, err := content.Encode()
	require.NoError(t, err)
	checksum := make([]byte, 4)
	binary.BigEndian.PutUint32(checksum, crc32.ChecksumIEEE(encoded))
	payload := append(append([]byte{}, encoded...), checksum...)
	return "ur:" + urType + "/" + bytewords.EncodeMinimal(payload)
}

// Scenario 7: known value resolved by name.
func TestParseKnownValueByName(t *testing.T) {
	env := newEnv()
	v, err := ParseItem(`'isA'`, env)
	require.NoError(t, err)
	assert.Equal(t, dcbor.NewTagged(40000, dcbor.Int(1)), v)
}

func TestParseKnownValueByNumber(t *testing.T) {
	env := newEnv()
	v, err := ParseItem(`'7'`, env)
	require.NoError(t, err)
	assert.Equal(t, dcbor.NewTagged(40000, dcbor.Int(7)), v)
}

func TestParseUnitAndEmptyQuotesAreKnownValueZero(t *testing.T) {
	env := newEnv()
	v, err := ParseItem(`Unit`, env)
	require.NoError(t, err)
	assert.Equal(t, dcbor.NewTagged(40000, dcbor.Int(0)), v)

	v, err = ParseItem(`''`, env)
	require.NoError(t, err)
	assert.Equal(t, dcbor.NewTagged(40000, dcbor.Int(0)), v)
}

func TestParseUnknownKnownValueName(t *testing.T) {
	env := newEnv()
	_, err := ParseItem(`'notRegistered'`, env)
	require.Error(t, err)
	de := asDiagErr(t, err)
	assert.Equal(t, diagerr.UnknownKnownValueNameKind, de.Kind)
}

// Scenario 8: comments are skipped entirely.
func TestParseCommentsSkipped(t *testing.T) {
	env := newEnv()
	v, err := ParseItem("/hello/ [1, # comment\n 2, 3]", env)
	require.NoError(t, err)
	assert.Equal(t, dcbor.Array{dcbor.Int(1), dcbor.Int(2), dcbor.Int(3)}, v)
}

// Scenario 9: partial parse reports consumed-byte count up to the next
// significant token, not just the end of the recognized item's own text.
func TestParsePartialConsumption(t *testing.T) {
	env := newEnv()
	v, n, err := ParseItemPartial(`true )`, env)
	require.NoError(t, err)
	assert.Equal(t, dcbor.Bool(true), v)
	assert.Equal(t, 5, n)
}

// Scenario 10: malformed hex byte string.
func TestParseInvalidHexString(t *testing.T) {
	env := newEnv()
	_, err := ParseItem(`h'01020'`, env)
	require.Error(t, err)
	de := asDiagErr(t, err)
	assert.Equal(t, diagerr.InvalidHexStringKind, de.Kind)
}

func TestParseNumericTag(t *testing.T) {
	env := newEnv()
	v, err := ParseItem(`1234("hello")`, env)
	require.NoError(t, err)
	assert.Equal(t, dcbor.NewTagged(1234, dcbor.Text("hello")), v)
}

func TestParseNamedTag(t *testing.T) {
	env := newEnv()
	v, err := ParseItem(`date(2023-01-01)`, env)
	require.NoError(t, err)
	tagged, ok := v.(dcbor.Tagged)
	require.True(t, ok)
	assert.Equal(t, uint64(1), tagged.Number)
}

func TestParseUnknownTagName(t *testing.T) {
	env := newEnv()
	_, err := ParseItem(`bogus(1)`, env)
	require.Error(t, err)
	de := asDiagErr(t, err)
	assert.Equal(t, diagerr.UnknownTagNameKind, de.Kind)
}

func TestParseMapWithMixedKeyTypes(t *testing.T) {
	env := newEnv()
	v, err := ParseItem(`{"k": 1, 2: "v"}`, env)
	require.NoError(t, err)
	m, ok := v.(*dcbor.Map)
	require.True(t, ok)
	assert.Equal(t, 2, m.Len())
}

func TestParseEmptyArrayAndMap(t *testing.T) {
	env := newEnv()

	v, err := ParseItem(`[]`, env)
	require.NoError(t, err)
	assert.Equal(t, dcbor.Array(nil), v)

	v, err = ParseItem(`{}`, env)
	require.NoError(t, err)
	m, ok := v.(*dcbor.Map)
	require.True(t, ok)
	assert.Equal(t, 0, m.Len())
}

func TestParseEmptyInput(t *testing.T) {
	env := newEnv()
	_, err := ParseItem(``, env)
	require.Error(t, err)
	de := asDiagErr(t, err)
	assert.Equal(t, diagerr.EmptyInputKind, de.Kind)
}

func TestParseTrailingCommaIsRejected(t *testing.T) {
	env := newEnv()
	_, err := ParseItem(`[1, 2,]`, env)
	require.Error(t, err)
}

func TestParseMapMissingColon(t *testing.T) {
	env := newEnv()
	_, err := ParseItem(`{"a" 1}`, env)
	require.Error(t, err)
	de := asDiagErr(t, err)
	assert.Equal(t, diagerr.ExpectedColonKind, de.Kind)
}

func TestParseBareOpenParenthesisIsUnexpectedToken(t *testing.T) {
	env := newEnv()
	_, err := ParseItem(`(`, env)
	require.Error(t, err)
	de := asDiagErr(t, err)
	assert.Equal(t, diagerr.UnexpectedTokenKind, de.Kind)
}

func TestParseUnmatchedParentheses(t *testing.T) {
	env := newEnv()
	_, err := ParseItem(`1234("hello"`, env)
	require.Error(t, err)
	de := asDiagErr(t, err)
	assert.Equal(t, diagerr.UnmatchedParenthesesKind, de.Kind)
}

func TestComposeArray(t *testing.T) {
	env := newEnv()
	v, err := ComposeArray([]string{"1", `"two"`, "true"}, env)
	require.NoError(t, err)
	assert.Equal(t, dcbor.Array{dcbor.Int(1), dcbor.Text("two"), dcbor.Bool(true)}, v)
}

func TestComposeArrayPropagatesFragmentError(t *testing.T) {
	env := newEnv()
	_, err := ComposeArray([]string{"1", `h'01020'`}, env)
	require.Error(t, err)
	de := asDiagErr(t, err)
	assert.Equal(t, diagerr.InvalidHexStringKind, de.Kind)
}

func TestComposeMapLastWriterWins(t *testing.T) {
	env := newEnv()
	v, err := ComposeMap([]string{`"k"`, "1", `"k"`, "2"}, env)
	require.NoError(t, err)
	m, ok := v.(*dcbor.Map)
	require.True(t, ok)
	require.Equal(t, 1, m.Len())
	assert.Equal(t, dcbor.Int(2), m.Pairs()[0].Value)
}

func TestComposeMapOddLength(t *testing.T) {
	env := newEnv()
	_, err := ComposeMap([]string{`"k"`}, env)
	require.Error(t, err)
	de := asDiagErr(t, err)
	assert.Equal(t, diagerr.OddMapLengthKind, de.Kind)
}
