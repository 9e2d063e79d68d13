// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package sdpagent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSignalingState(t *testing.T) {
	testCases := []struct {
		stateString   string
		expectedState SignalingState
	}{
		{unknownStr, SignalingState(Unknown)},
		{"stable", SignalingStateStable},
		{"have-local-offer", SignalingStateHaveLocalOffer},
		{"have-remote-offer", SignalingStateHaveRemoteOffer},
		{"have-local-pranswer", SignalingStateHaveLocalPranswer},
		{"have-remote-pranswer", SignalingStateHaveRemotePranswer},
		{"closed", SignalingStateClosed},
	}

	for i, testCase := range testCases {
		assert.Equal(t,
			testCase.expectedState,
			newSignalingState(testCase.stateString),
			"testCase: %d %v", i, testCase,
		)
	}
}

func TestSignalingState_String(t *testing.T) {
	testCases := []struct {
		state          SignalingState
		expectedString string
	}{
		{SignalingState(Unknown), unknownStr},
		{SignalingStateStable, "stable"},
		{SignalingStateHaveLocalOffer, "have-local-offer"},
		{SignalingStateHaveRemoteOffer, "have-remote-offer"},
		{SignalingStateHaveLocalPranswer, "have-local-pranswer"},
		{SignalingStateHaveRemotePranswer, "have-remote-pranswer"},
		{SignalingStateClosed, "closed"},
	}

	for i, testCase := range testCases {
		assert.Equal(t,
			testCase.expectedString,
			testCase.state.String(),
			"testCase: %d %v", i, testCase,
		)
	}
}

type signalingStep struct {
	op      stateChangeOp
	sdpType SDPType
}

func applyStep(a *Agent, step signalingStep) error {
	desc := SessionDescription{Type: step.sdpType, SDP: audioVideoOffer}
	if step.sdpType == SDPTypeRollback {
		desc.SDP = ""
	}

	if step.op == stateChangeOpSetLocal {
		return a.SetLocalDescription(desc)
	}

	return a.SetRemoteDescription(desc)
}

func TestSignalingState_Transitions(t *testing.T) {
	local := func(sdpType SDPType) signalingStep { return signalingStep{stateChangeOpSetLocal, sdpType} }
	remote := func(sdpType SDPType) signalingStep { return signalingStep{stateChangeOpSetRemote, sdpType} }

	testCases := []struct {
		desc        string
		steps       []signalingStep
		expected    SignalingState
		expectedErr error
	}{
		{
			"stable->SetLocal(offer)->have-local-offer",
			[]signalingStep{local(SDPTypeOffer)},
			SignalingStateHaveLocalOffer, nil,
		},
		{
			"stable->SetRemote(offer)->have-remote-offer",
			[]signalingStep{remote(SDPTypeOffer)},
			SignalingStateHaveRemoteOffer, nil,
		},
		{
			"have-local-offer->SetRemote(answer)->stable",
			[]signalingStep{local(SDPTypeOffer), remote(SDPTypeAnswer)},
			SignalingStateStable, nil,
		},
		{
			"have-local-offer->SetRemote(pranswer)->have-remote-pranswer",
			[]signalingStep{local(SDPTypeOffer), remote(SDPTypePranswer)},
			SignalingStateHaveRemotePranswer, nil,
		},
		{
			"have-remote-pranswer->SetRemote(answer)->stable",
			[]signalingStep{local(SDPTypeOffer), remote(SDPTypePranswer), remote(SDPTypeAnswer)},
			SignalingStateStable, nil,
		},
		{
			"have-remote-offer->SetLocal(answer)->stable",
			[]signalingStep{remote(SDPTypeOffer), local(SDPTypeAnswer)},
			SignalingStateStable, nil,
		},
		{
			"have-remote-offer->SetLocal(pranswer)->have-local-pranswer",
			[]signalingStep{remote(SDPTypeOffer), local(SDPTypePranswer)},
			SignalingStateHaveLocalPranswer, nil,
		},
		{
			"have-local-pranswer->SetLocal(answer)->stable",
			[]signalingStep{remote(SDPTypeOffer), local(SDPTypePranswer), local(SDPTypeAnswer)},
			SignalingStateStable, nil,
		},
		{
			"have-local-offer->SetLocal(rollback)->stable",
			[]signalingStep{local(SDPTypeOffer), local(SDPTypeRollback)},
			SignalingStateStable, nil,
		},
		{
			"(invalid) stable->SetRemote(pranswer)->have-remote-pranswer",
			[]signalingStep{remote(SDPTypePranswer)},
			SignalingStateStable, ErrInvalidSignalingTransition,
		},
		{
			"(invalid) stable->SetLocal(answer)->stable",
			[]signalingStep{local(SDPTypeAnswer)},
			SignalingStateStable, ErrInvalidSignalingTransition,
		},
		{
			"(invalid) stable->SetLocal(rollback)->stable",
			[]signalingStep{local(SDPTypeRollback)},
			SignalingStateStable, ErrInvalidSignalingTransition,
		},
		{
			"(invalid) have-local-offer->SetLocal(answer)->stable",
			[]signalingStep{local(SDPTypeOffer), local(SDPTypeAnswer)},
			SignalingStateHaveLocalOffer, ErrInvalidSignalingTransition,
		},
		{
			"(invalid) have-remote-offer->SetRemote(offer)->have-remote-offer",
			[]signalingStep{remote(SDPTypeOffer), remote(SDPTypeOffer)},
			SignalingStateHaveRemoteOffer, ErrInvalidSignalingTransition,
		},
		{
			"(invalid) stable->SetLocal(unknown)",
			[]signalingStep{local(SDPType(Unknown))},
			SignalingStateStable, ErrInvalidSignalingTransition,
		},
	}

	for i, testCase := range testCases {
		agent := NewAgent()

		var err error
		for _, step := range testCase.steps {
			if err = applyStep(agent, step); err != nil {
				break
			}
		}

		if testCase.expectedErr != nil {
			assert.ErrorIs(t, err, testCase.expectedErr, "testCase: %d %v", i, testCase)
		} else {
			assert.NoError(t, err, "testCase: %d %v", i, testCase)
		}
		assert.Equal(t, testCase.expected, agent.SignalingState(), "testCase: %d %v", i, testCase)
	}
}

func TestAgent_Descriptions(t *testing.T) {
	agent := NewAgent()
	assert.Nil(t, agent.LocalDescription())
	assert.Nil(t, agent.RemoteDescription())

	offer, err := agent.CreateOffer()
	require.NoError(t, err)
	require.NoError(t, agent.SetLocalDescription(offer))
	assert.Equal(t, offer.SDP, agent.LocalDescription().SDP)
	assert.Nil(t, agent.RemoteDescription())

	// callers get a copy of the stored description
	agent.LocalDescription().SDP = "changed"
	assert.Equal(t, offer.SDP, agent.LocalDescription().SDP)

	// an invalid transition leaves the stored descriptions alone
	assert.ErrorIs(t, agent.SetRemoteDescription(SessionDescription{Type: SDPTypeOffer, SDP: audioVideoOffer}),
		ErrInvalidSignalingTransition)
	assert.Nil(t, agent.RemoteDescription())

	answer := SessionDescription{Type: SDPTypeAnswer, SDP: audioVideoOffer}
	require.NoError(t, agent.SetRemoteDescription(answer))
	assert.Equal(t, SignalingStateStable, agent.SignalingState())
	assert.Equal(t, offer.SDP, agent.LocalDescription().SDP)
	assert.Equal(t, answer.SDP, agent.RemoteDescription().SDP)

	// a rolled back offer restores the last stable descriptions
	second, err := agent.CreateOffer()
	require.NoError(t, err)
	require.NoError(t, agent.SetLocalDescription(second))
	assert.Equal(t, second.SDP, agent.LocalDescription().SDP)

	require.NoError(t, agent.SetLocalDescription(SessionDescription{Type: SDPTypeRollback}))
	assert.Equal(t, SignalingStateStable, agent.SignalingState())
	assert.Equal(t, offer.SDP, agent.LocalDescription().SDP)
	assert.Equal(t, answer.SDP, agent.RemoteDescription().SDP)
}

func TestAgent_SetDescriptionUnparseable(t *testing.T) {
	agent := NewAgent()

	err := agent.SetRemoteDescription(SessionDescription{Type: SDPTypeOffer, SDP: "v=0\r\nbroken"})
	assert.ErrorIs(t, err, ErrSDPUnmarshalling)
	assert.Equal(t, SignalingStateStable, agent.SignalingState())
	assert.Nil(t, agent.RemoteDescription())
}

func TestAgent_AnswerRemoteOffer(t *testing.T) {
	agent := NewAgent()
	_, err := agent.AddHandler("audio", &testHandler{protocol: "RTP/AVP"})
	require.NoError(t, err)

	remote := SessionDescription{Type: SDPTypeOffer, SDP: audioVideoOffer}
	require.NoError(t, agent.SetRemoteDescription(remote))

	answer, err := agent.CreateAnswer(*agent.RemoteDescription())
	require.NoError(t, err)
	require.NoError(t, agent.SetLocalDescription(answer))

	assert.Equal(t, SignalingStateStable, agent.SignalingState())
	assert.Equal(t, answer.SDP, agent.LocalDescription().SDP)
	assert.Equal(t, remote.SDP, agent.RemoteDescription().SDP)
}
