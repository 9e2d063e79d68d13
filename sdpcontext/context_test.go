// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package sdpcontext

import (
	"testing"

	"github.com/pion/sdp/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMedia(kind string) *sdp.MediaDescription {
	return &sdp.MediaDescription{
		MediaName: sdp.MediaName{
			Media:   kind,
			Port:    sdp.RangedPort{Value: 9},
			Protos:  []string{"RTP", "AVP"},
			Formats: []string{"0"},
		},
	}
}

func TestMessageContextAddMedia(t *testing.T) {
	ctx := NewMessageContext()

	_, err := ctx.AddMedia(nil)
	assert.ErrorIs(t, err, ErrNilMedia)

	audio, err := ctx.AddMedia(testMedia("audio"))
	require.NoError(t, err)
	video, err := ctx.AddMedia(testMedia("video"))
	require.NoError(t, err)

	assert.Equal(t, 0, audio.Index())
	assert.Equal(t, 1, video.Index())
	assert.Equal(t, "video", video.Media().MediaName.Media)
	assert.Len(t, ctx.Medias(), 2)
}

func TestMediaGroupAddMedia(t *testing.T) {
	ctx := NewMessageContext()
	media, err := ctx.AddMedia(testMedia("audio"))
	require.NoError(t, err)

	group := ctx.GetOrCreateGroup(3)
	require.NoError(t, group.AddMedia(media))
	require.NoError(t, group.AddMedia(media))
	assert.Equal(t, 1, group.Len())
	assert.Same(t, group, ctx.GetOrCreateGroup(3))

	other := NewMessageContext()
	foreign, err := other.AddMedia(testMedia("video"))
	require.NoError(t, err)
	assert.ErrorIs(t, group.AddMedia(foreign), ErrForeignMedia)
	assert.ErrorIs(t, group.AddMedia(nil), ErrForeignMedia)
	assert.Equal(t, 1, group.Len())
}

func TestMessageContextCreateGroup(t *testing.T) {
	ctx := NewMessageContext()

	group, err := ctx.CreateGroup(1, "LS")
	require.NoError(t, err)
	assert.Equal(t, uint32(1), group.ID())

	_, err = ctx.CreateGroup(1, SemanticsBundle)
	assert.ErrorIs(t, err, ErrGroupExists)
	assert.Nil(t, ctx.Group(2))
}

func TestMessageContextPack(t *testing.T) {
	ctx := NewMessageContext()
	audio, err := ctx.AddMedia(testMedia("audio"))
	require.NoError(t, err)
	video, err := ctx.AddMedia(testMedia("video").WithValueAttribute(sdp.AttrKeyMID, "0"))
	require.NoError(t, err)
	_, err = ctx.AddMedia(testMedia("text"))
	require.NoError(t, err)

	second := ctx.GetOrCreateGroup(7)
	require.NoError(t, second.AddMedia(video))
	first := ctx.GetOrCreateGroup(2)
	require.NoError(t, first.AddMedia(audio))
	require.NoError(t, first.AddMedia(video))
	ctx.GetOrCreateGroup(9)

	desc := ctx.Pack()
	require.Len(t, desc.MediaDescriptions, 3)

	// audio sits at index 0 but "0" is taken by video
	assert.Equal(t, "1", MediaMid(desc.MediaDescriptions[0]))
	assert.Equal(t, "0", MediaMid(desc.MediaDescriptions[1]))
	assert.Equal(t, "", MediaMid(desc.MediaDescriptions[2]))

	assert.Equal(t, [][]string{{"1", "0"}, {"0"}}, Groups(desc, SemanticsBundle))
}

func TestPackLeavesAddedMediaUntouched(t *testing.T) {
	template := testMedia("audio").WithValueAttribute(sdp.AttrKeyRTCPMux, "")

	ctx := NewMessageContext()
	media, err := ctx.AddMedia(template)
	require.NoError(t, err)
	assert.NotSame(t, template, media.Media())
	require.NoError(t, ctx.GetOrCreateGroup(0).AddMedia(media))

	desc := ctx.Pack()
	assert.Equal(t, "0", MediaMid(desc.MediaDescriptions[0]))

	assert.Equal(t, "", MediaMid(template))
	assert.Len(t, template.Attributes, 1)

	// a second context built from the same value starts clean
	other := NewMessageContext()
	_, err = other.AddMedia(template)
	require.NoError(t, err)
	assert.Equal(t, "", MediaMid(other.Pack().MediaDescriptions[0]))
}

func TestSetters(t *testing.T) {
	ctx := NewMessageContext()

	assert.ErrorIs(t, ctx.SetVersion(1), ErrInvalidVersion)
	assert.NoError(t, ctx.SetVersion(0))

	assert.ErrorIs(t, ctx.SetSessionName(""), ErrEmptySessionName)
	assert.NoError(t, ctx.SetSessionName("test"))

	origin := sdp.Origin{
		Username:       "-",
		SessionID:      1,
		SessionVersion: 2,
		NetworkType:    "IN",
		AddressType:    "IP4",
		UnicastAddress: "0.0.0.0",
	}
	assert.NoError(t, ctx.SetOrigin(origin))

	for i, testCase := range []struct {
		mutate func(o *sdp.Origin)
		err    error
	}{
		{func(o *sdp.Origin) { o.Username = "" }, ErrEmptyUsername},
		{func(o *sdp.Origin) { o.NetworkType = "ATM" }, ErrInvalidNetType},
		{func(o *sdp.Origin) { o.AddressType = "IPX" }, ErrInvalidAddrType},
		{func(o *sdp.Origin) { o.UnicastAddress = "::" }, ErrInvalidAddress},
		{func(o *sdp.Origin) { o.UnicastAddress = "" }, ErrInvalidAddress},
		{func(o *sdp.Origin) { o.UnicastAddress = "bad host!" }, ErrInvalidAddress},
		{func(o *sdp.Origin) { o.AddressType = "IP6" }, ErrInvalidAddress},
		{func(o *sdp.Origin) { o.UnicastAddress = "media.example.com" }, nil},
		{func(o *sdp.Origin) { o.AddressType, o.UnicastAddress = "IP6", "::" }, nil},
	} {
		o := origin
		testCase.mutate(&o)
		if testCase.err == nil {
			assert.NoError(t, ctx.SetOrigin(o), "testCase: %d %v", i, testCase)
		} else {
			assert.ErrorIs(t, ctx.SetOrigin(o), testCase.err, "testCase: %d %v", i, testCase)
		}
	}

	conn := sdp.ConnectionInformation{
		NetworkType: "IN",
		AddressType: "IP6",
		Address:     &sdp.Address{Address: "::"},
	}
	require.NoError(t, ctx.SetConnection(conn))
	conn.Address.Address = "changed"
	assert.Equal(t, "::", ctx.desc.ConnectionInformation.Address.Address)

	assert.ErrorIs(t, ctx.SetConnection(sdp.ConnectionInformation{NetworkType: "IN", AddressType: "IP4"}), ErrInvalidAddress)
	assert.ErrorIs(t, ctx.SetConnection(sdp.ConnectionInformation{
		NetworkType: "IN",
		AddressType: "IP4",
		Address:     &sdp.Address{Address: "::1"},
	}), ErrInvalidAddress)
}

func TestPackMarshalRoundTrip(t *testing.T) {
	ctx := NewMessageContext()
	require.NoError(t, ctx.SetVersion(0))
	require.NoError(t, ctx.SetOrigin(sdp.Origin{
		Username:       "-",
		SessionID:      42,
		SessionVersion: 1,
		NetworkType:    "IN",
		AddressType:    "IP4",
		UnicastAddress: "0.0.0.0",
	}))
	require.NoError(t, ctx.SetSessionName("round trip"))
	require.NoError(t, ctx.SetConnection(sdp.ConnectionInformation{
		NetworkType: "IN",
		AddressType: "IP4",
		Address:     &sdp.Address{Address: "0.0.0.0"},
	}))
	ctx.SetTimings([]sdp.TimeDescription{{Timing: sdp.Timing{StartTime: 0, StopTime: 0}}})

	audio, err := ctx.AddMedia(testMedia("audio"))
	require.NoError(t, err)
	require.NoError(t, ctx.GetOrCreateGroup(0).AddMedia(audio))

	raw, err := Marshal(ctx.Pack())
	require.NoError(t, err)
	assert.Contains(t, raw, "a=group:BUNDLE 0\r\n")
	assert.Contains(t, raw, "a=mid:0\r\n")

	parsed, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), parsed.Origin.SessionID)
	assert.Equal(t, "round trip", string(parsed.SessionName))
	require.Len(t, parsed.MediaDescriptions, 1)
	assert.Equal(t, "RTP/AVP", MediaProtocol(parsed.MediaDescriptions[0]))
}
