package store

import (
	"encoding/base64"
	"encoding/json"
)

// Session represents the lead currently being serviced. It is never stored
// server-side: the only copy lives in the caller-held X-Session header, so a
// session either has all fields set (active) or none (inactive).
type Session struct {
	LeadID    int64  `json:"lead_id,omitempty"`
	LeadName  string `json:"lead_name,omitempty"`
	StartedAt int64  `json:"started_at,omitempty"` // Unix seconds
}

// Active reports whether the session points at a lead.
func (s Session) Active() bool {
	return s.LeadID != 0
}

// EncodeSession serializes a session into the opaque header value.
func EncodeSession(s Session) string {
	raw, err := json.Marshal(s)
	if err != nil {
		return ""
	}
	return base64.StdEncoding.EncodeToString(raw)
}

// DecodeSession is total: an absent, corrupted, or partially populated value
// yields the inactive session. Callers never see a decode failure.
func DecodeSession(value string) Session {
	if value == "" {
		return Session{}
	}
	raw, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return Session{}
	}
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return Session{}
	}
	if !s.Active() {
		// Normalize partial states: without a lead id the rest is meaningless.
		return Session{}
	}
	return s
}
