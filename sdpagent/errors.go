// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package sdpagent

import (
	"errors"
)

var (
	// ErrInvalidParameter indicates a mandatory session field could not be
	// set. The wrapped error names the field.
	ErrInvalidParameter = errors.New("invalid session parameter")

	// ErrDuplicateBinding indicates a handler is already registered for the
	// media and protocol pair.
	ErrDuplicateBinding = errors.New("handler already bound to media and protocol")

	// ErrUnknownGroup indicates the group id was never created.
	ErrUnknownGroup = errors.New("unknown group")

	// ErrUnknownHandler indicates the handler id was never assigned.
	ErrUnknownHandler = errors.New("unknown handler")

	// ErrInvalidHandler indicates a nil handler or a handler reporting an
	// empty protocol.
	ErrInvalidHandler = errors.New("invalid media handler")

	// ErrUnexpected indicates a structural failure while building a document.
	ErrUnexpected = errors.New("unexpected error")

	// ErrSDPUnmarshalling indicates a session description could not be parsed.
	ErrSDPUnmarshalling = errors.New("failed to unmarshal SDP")

	// ErrInvalidSignalingTransition indicates the description type is not
	// allowed in the current signaling state.
	ErrInvalidSignalingTransition = errors.New("invalid signaling state transition")

	// ErrAgentClosed indicates the agent was closed.
	ErrAgentClosed = errors.New("agent closed")

	// ErrUnknownType indicates an error with Unknown info.
	ErrUnknownType = errors.New("unknown")

	errInvalidSDPTypeString = errors.New("invalid SDP type string")
	errHandlerReturnedNil   = errors.New("handler returned no media")
)
