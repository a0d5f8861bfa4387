// Package dateliteral parses the ISO-8601 calendar-date and date-time
// literals recognized by the lexer (spec §4.1 "DateLiteral") into a CBOR
// tag-1 (epoch date/time) value, per RFC 8949 §3.4.2.
package dateliteral

import (
	"fmt"
	"strings"
	"time"

	"github.com/blockchaincommons/bc-dcbor-diag-go/dcbor"
)

const tagNumber = 1

// Parse parses s (without surrounding syntax, exactly the lexer's matched
// DateLiteral text) into a dcbor.Tagged wrapping tag 1.
func Parse(s string) (dcbor.Value, error) {
	hasTime := strings.Contains(s, "T")
	hasZone := strings.HasSuffix(s, "Z") || hasOffsetSuffix(s)

	t, err := parseWithLayouts(s, hasTime, hasZone)
	if err != nil {
		return nil, fmt.Errorf("dateliteral: %q: %w", s, err)
	}

	if !hasTime {
		days := t.Unix() / 86400
		return dcbor.NewTagged(tagNumber, dcbor.Int(days*86400)), nil
	}

	sec := t.Unix()
	nsec := t.Nanosecond()
	if nsec == 0 {
		return dcbor.NewTagged(tagNumber, dcbor.Int(sec)), nil
	}
	return dcbor.NewTagged(tagNumber, dcbor.Float(float64(sec)+float64(nsec)/1e9)), nil
}

func parseWithLayouts(s string, hasTime, hasZone bool) (time.Time, error) {
	switch {
	case !hasTime:
		return time.Parse("2006-01-02", s)
	case hasZone:
		if t, err := time.Parse("2006-01-02T15:04:05.999999999Z07:00", s); err == nil {
			return t, nil
		}
		return time.Parse("2006-01-02T15:04:05Z07:00", s)
	default:
		// No zone suffix: treat as UTC, matching the tag's UTC-seconds model.
		if t, err := time.Parse("2006-01-02T15:04:05.999999999", s); err == nil {
			return t.UTC(), nil
		}
		t, err := time.Parse("2006-01-02T15:04:05", s)
		return t.UTC(), err
	}
}

func hasOffsetSuffix(s string) bool {
	if len(s) < 6 {
		return false
	}
	tail := s[len(s)-6:]
	return (tail[0] == '+' || tail[0] == '-') && tail[3] == ':'
}
