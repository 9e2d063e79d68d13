// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package sdpagent

import (
	"fmt"

	"github.com/gofeeling/kms-core/sdpcontext"
	"github.com/pion/sdp/v3"
)

// SessionDescription is used to expose local and remote session descriptions.
type SessionDescription struct {
	Type SDPType `json:"type"`
	SDP  string  `json:"sdp"`

	// This will never be initialized by callers, internal use only
	parsed *sdp.SessionDescription
}

// Unmarshal is a helper to deserialize the sdp.
func (sd *SessionDescription) Unmarshal() (*sdp.SessionDescription, error) {
	parsed, err := sdpcontext.Parse(sd.SDP)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSDPUnmarshalling, err)
	}
	sd.parsed = parsed

	return sd.parsed, nil
}

// copy returns a detached copy. The parsed form is dropped so the copy
// shares no state with sd.
func (sd *SessionDescription) copy() *SessionDescription {
	if sd == nil {
		return nil
	}

	return &SessionDescription{Type: sd.Type, SDP: sd.SDP}
}

func newSessionDescription(sdpType SDPType, parsed *sdp.SessionDescription) (SessionDescription, error) {
	raw, err := sdpcontext.Marshal(parsed)
	if err != nil {
		return SessionDescription{}, fmt.Errorf("%w: %w", ErrUnexpected, err)
	}

	return SessionDescription{
		Type:   sdpType,
		SDP:    raw,
		parsed: parsed,
	}, nil
}
