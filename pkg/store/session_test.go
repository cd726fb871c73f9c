package store

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionRoundTrip(t *testing.T) {
	original := Session{
		LeadID:    42,
		LeadName:  "Proposta ACME",
		StartedAt: 1735689600,
	}

	decoded := DecodeSession(EncodeSession(original))

	assert.Equal(t, original, decoded)
	assert.True(t, decoded.Active())
}

func TestDecodeSessionEmpty(t *testing.T) {
	s := DecodeSession("")
	assert.Equal(t, Session{}, s)
	assert.False(t, s.Active())
}

func TestDecodeSessionMalformed(t *testing.T) {
	cases := map[string]string{
		"not base64":   "!!!not-base64!!!",
		"not json":     base64.StdEncoding.EncodeToString([]byte("hello")),
		"wrong shape":  base64.StdEncoding.EncodeToString([]byte(`[1,2,3]`)),
		"truncated":    EncodeSession(Session{LeadID: 7, LeadName: "x", StartedAt: 1})[:8],
		"empty object": base64.StdEncoding.EncodeToString([]byte(`{}`)),
	}

	for name, value := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, Session{}, DecodeSession(value))
		})
	}
}

func TestDecodeSessionNormalizesPartialState(t *testing.T) {
	// Name and timestamp without a lead id must collapse to inactive.
	raw := base64.StdEncoding.EncodeToString([]byte(`{"lead_name":"Orphan","started_at":123}`))

	s := DecodeSession(raw)

	assert.False(t, s.Active())
	assert.Equal(t, Session{}, s)
}
