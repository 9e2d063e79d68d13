// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package sdpagent

import (
	"github.com/looplab/fsm"
)

type stateChangeOp int

const (
	stateChangeOpSetLocal stateChangeOp = iota + 1
	stateChangeOpSetRemote
)

func (op stateChangeOp) String() string {
	switch op {
	case stateChangeOpSetLocal:
		return "SetLocal"
	case stateChangeOpSetRemote:
		return "SetRemote"
	default:
		return "Unknown State Change Operation"
	}
}

// SignalingState indicates the signaling state of the offer/answer process.
type SignalingState int

const (
	// SignalingStateStable indicates there is no offer/answer exchange in
	// progress. This is also the initial state, in which case the local and
	// remote descriptions are nil.
	SignalingStateStable SignalingState = iota + 1

	// SignalingStateHaveLocalOffer indicates that a local description, of
	// type "offer", has been successfully applied.
	SignalingStateHaveLocalOffer

	// SignalingStateHaveRemoteOffer indicates that a remote description, of
	// type "offer", has been successfully applied.
	SignalingStateHaveRemoteOffer

	// SignalingStateHaveLocalPranswer indicates that a remote description
	// of type "offer" has been successfully applied and a local description
	// of type "pranswer" has been successfully applied.
	SignalingStateHaveLocalPranswer

	// SignalingStateHaveRemotePranswer indicates that a local description
	// of type "offer" has been successfully applied and a remote description
	// of type "pranswer" has been successfully applied.
	SignalingStateHaveRemotePranswer

	// SignalingStateClosed indicates the Agent has been closed.
	SignalingStateClosed
)

// This is done this way because of a linter.
const (
	signalingStateStableStr             = "stable"
	signalingStateHaveLocalOfferStr     = "have-local-offer"
	signalingStateHaveRemoteOfferStr    = "have-remote-offer"
	signalingStateHaveLocalPranswerStr  = "have-local-pranswer"
	signalingStateHaveRemotePranswerStr = "have-remote-pranswer"
	signalingStateClosedStr             = "closed"
)

func newSignalingState(raw string) SignalingState {
	switch raw {
	case signalingStateStableStr:
		return SignalingStateStable
	case signalingStateHaveLocalOfferStr:
		return SignalingStateHaveLocalOffer
	case signalingStateHaveRemoteOfferStr:
		return SignalingStateHaveRemoteOffer
	case signalingStateHaveLocalPranswerStr:
		return SignalingStateHaveLocalPranswer
	case signalingStateHaveRemotePranswerStr:
		return SignalingStateHaveRemotePranswer
	case signalingStateClosedStr:
		return SignalingStateClosed
	default:
		return SignalingState(Unknown)
	}
}

func (t SignalingState) String() string {
	switch t {
	case SignalingStateStable:
		return signalingStateStableStr
	case SignalingStateHaveLocalOffer:
		return signalingStateHaveLocalOfferStr
	case SignalingStateHaveRemoteOffer:
		return signalingStateHaveRemoteOfferStr
	case SignalingStateHaveLocalPranswer:
		return signalingStateHaveLocalPranswerStr
	case SignalingStateHaveRemotePranswer:
		return signalingStateHaveRemotePranswerStr
	case SignalingStateClosed:
		return signalingStateClosedStr
	default:
		return ErrUnknownType.Error()
	}
}

const (
	eventSetLocalOffer     = "set-local-offer"
	eventSetRemoteOffer    = "set-remote-offer"
	eventSetLocalPranswer  = "set-local-pranswer"
	eventSetRemotePranswer = "set-remote-pranswer"
	eventSetLocalAnswer    = "set-local-answer"
	eventSetRemoteAnswer   = "set-remote-answer"
	eventRollback          = "rollback"
	eventClose             = "close"
)

// signalingEvent maps a description being applied to the event that drives
// the signaling machine. Unknown combinations map to "", which the machine
// rejects.
func signalingEvent(op stateChangeOp, sdpType SDPType) string {
	if sdpType == SDPTypeRollback {
		return eventRollback
	}

	switch op {
	case stateChangeOpSetLocal:
		switch sdpType {
		case SDPTypeOffer:
			return eventSetLocalOffer
		case SDPTypePranswer:
			return eventSetLocalPranswer
		case SDPTypeAnswer:
			return eventSetLocalAnswer
		}
	case stateChangeOpSetRemote:
		switch sdpType {
		case SDPTypeOffer:
			return eventSetRemoteOffer
		case SDPTypePranswer:
			return eventSetRemotePranswer
		case SDPTypeAnswer:
			return eventSetRemoteAnswer
		}
	}

	return ""
}

// newSignalingFSM encodes the valid transitions of JSEP section 4.3.1.
// Rollback is rejected in stable.
func newSignalingFSM(callbacks fsm.Callbacks) *fsm.FSM {
	return fsm.NewFSM(
		signalingStateStableStr,
		fsm.Events{
			// stable->SetLocal(offer)->have-local-offer
			{Name: eventSetLocalOffer, Src: []string{signalingStateStableStr}, Dst: signalingStateHaveLocalOfferStr},
			// stable->SetRemote(offer)->have-remote-offer
			{Name: eventSetRemoteOffer, Src: []string{signalingStateStableStr}, Dst: signalingStateHaveRemoteOfferStr},
			// have-remote-offer->SetLocal(pranswer)->have-local-pranswer
			{Name: eventSetLocalPranswer, Src: []string{signalingStateHaveRemoteOfferStr}, Dst: signalingStateHaveLocalPranswerStr},
			// have-local-offer->SetRemote(pranswer)->have-remote-pranswer
			{Name: eventSetRemotePranswer, Src: []string{signalingStateHaveLocalOfferStr}, Dst: signalingStateHaveRemotePranswerStr},
			// have-remote-offer|have-local-pranswer->SetLocal(answer)->stable
			{
				Name: eventSetLocalAnswer,
				Src:  []string{signalingStateHaveRemoteOfferStr, signalingStateHaveLocalPranswerStr},
				Dst:  signalingStateStableStr,
			},
			// have-local-offer|have-remote-pranswer->SetRemote(answer)->stable
			{
				Name: eventSetRemoteAnswer,
				Src:  []string{signalingStateHaveLocalOfferStr, signalingStateHaveRemotePranswerStr},
				Dst:  signalingStateStableStr,
			},
			{
				Name: eventRollback,
				Src: []string{
					signalingStateHaveLocalOfferStr,
					signalingStateHaveRemoteOfferStr,
					signalingStateHaveLocalPranswerStr,
					signalingStateHaveRemotePranswerStr,
				},
				Dst: signalingStateStableStr,
			},
			{
				Name: eventClose,
				Src: []string{
					signalingStateStableStr,
					signalingStateHaveLocalOfferStr,
					signalingStateHaveRemoteOfferStr,
					signalingStateHaveLocalPranswerStr,
					signalingStateHaveRemotePranswerStr,
				},
				Dst: signalingStateClosedStr,
			},
		},
		callbacks,
	)
}
