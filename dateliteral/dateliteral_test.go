package dateliteral

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockchaincommons/bc-dcbor-diag-go/dcbor"
)

func tagged(t *testing.T, v dcbor.Value) dcbor.Tagged {
	t.Helper()
	tg, ok := v.(dcbor.Tagged)
	require.True(t, ok)
	assert.Equal(t, uint64(1), tg.Number)
	return tg
}

func TestParseBareDate(t *testing.T) {
	v, err := Parse("2023-02-08")
	require.NoError(t, err)
	tg := tagged(t, v)
	n, ok := tg.Content.(dcbor.Int)
	require.True(t, ok)
	assert.Equal(t, int64(n)%86400, int64(0))
}

func TestParseDateTimeUTCWithoutFraction(t *testing.T) {
	v, err := Parse("2023-02-08T15:30:45Z")
	require.NoError(t, err)
	tg := tagged(t, v)
	assert.Equal(t, dcbor.KindInt, tg.Content.Kind())
}

func TestParseDateTimeWithFraction(t *testing.T) {
	v, err := Parse("2023-02-08T15:30:45.123Z")
	require.NoError(t, err)
	tg := tagged(t, v)
	assert.Equal(t, dcbor.KindFloat, tg.Content.Kind())
}

func TestParseDateTimeWithOffset(t *testing.T) {
	v, err := Parse("2023-02-08T15:30:45+05:30")
	require.NoError(t, err)
	tagged(t, v)
}

func TestParseDateTimeWithoutZoneAssumesUTC(t *testing.T) {
	v1, err := Parse("2023-02-08T15:30:45")
	require.NoError(t, err)
	v2, err := Parse("2023-02-08T15:30:45Z")
	require.NoError(t, err)
	assert.Equal(t, v1, v2)
}

func TestParseRejectsMalformedDate(t *testing.T) {
	_, err := Parse("not-a-date")
	assert.Error(t, err)
}
