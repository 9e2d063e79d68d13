// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package mediahandler provides sdpagent.MediaHandler implementations for
// RTP media and SCTP data channels.
package mediahandler

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/gofeeling/kms-core/sdpcontext"
	"github.com/pion/sdp/v3"
)

// RTP transport protocols.
const (
	ProtoRTPAVP         = "RTP/AVP"
	ProtoRTPAVPF        = "RTP/AVPF"
	ProtoRTPSAVPF       = "RTP/SAVPF"
	ProtoUDPTLSRTPSAVPF = "UDP/TLS/RTP/SAVPF"
)

// discardPort is the placeholder port used when the transport is negotiated
// elsewhere (RFC 8839).
const discardPort = 9

// RTPHandler offers and answers audio or video media lines carried over RTP.
type RTPHandler struct {
	// Proto is one of the RTP transport protocols, e.g. ProtoRTPAVP.
	Proto string

	Codecs []Codec

	// Direction defaults to sendrecv.
	Direction sdp.Direction

	RTCPMux bool
}

// Protocol implements sdpagent.MediaHandler.
func (h *RTPHandler) Protocol() string {
	return h.Proto
}

func (h *RTPHandler) direction() sdp.Direction {
	if h.Direction == 0 {
		return sdp.DirectionSendRecv
	}

	return h.Direction
}

func newMedia(media, proto string) *sdp.MediaDescription {
	return &sdp.MediaDescription{
		MediaName: sdp.MediaName{
			Media:  media,
			Port:   sdp.RangedPort{Value: discardPort},
			Protos: strings.Split(proto, "/"),
		},
	}
}

func checkRTPMedia(media string) error {
	if media != "audio" && media != "video" {
		return fmt.Errorf("%w: %s", ErrUnsupportedMedia, media)
	}

	return nil
}

// CreateOffer implements sdpagent.MediaHandler.
func (h *RTPHandler) CreateOffer(media string) (*sdp.MediaDescription, error) {
	if err := checkRTPMedia(media); err != nil {
		return nil, err
	}
	if len(h.Codecs) == 0 {
		return nil, ErrNoCodecs
	}

	offer := newMedia(media, h.Proto)
	for _, codec := range h.Codecs {
		addCodec(offer, codec, codec.Feedback)
	}
	offer.WithPropertyAttribute(h.direction().String())
	if h.RTCPMux {
		offer.WithPropertyAttribute(sdp.AttrKeyRTCPMux)
	}

	return offer, nil
}

// CreateAnswer implements sdpagent.MediaHandler. The answer keeps the
// offered payload type numbers and their order.
func (h *RTPHandler) CreateAnswer(offered *sdp.MediaDescription) (*sdp.MediaDescription, error) {
	if err := checkRTPMedia(offered.MediaName.Media); err != nil {
		return nil, err
	}
	if proto := sdpcontext.MediaProtocol(offered); proto != h.Proto {
		return nil, fmt.Errorf("%w: %s", ErrProtocolMismatch, proto)
	}

	answer := newMedia(offered.MediaName.Media, h.Proto)
	for _, format := range offered.MediaName.Formats {
		pt, err := strconv.ParseUint(format, 10, 8)
		if err != nil {
			continue
		}

		remote, ok := offeredCodec(offered, uint8(pt))
		if !ok {
			continue
		}

		idx := slices.IndexFunc(h.Codecs, func(c Codec) bool { return c.matches(remote) })
		if idx < 0 {
			continue
		}

		local := h.Codecs[idx]
		accepted := Codec{
			PayloadType: remote.PayloadType,
			Name:        remote.Name,
			ClockRate:   remote.ClockRate,
			Fmtp:        local.Fmtp,
		}
		if n, err := strconv.ParseUint(remote.EncodingParameters, 10, 16); err == nil {
			accepted.Channels = uint16(n)
		}
		if accepted.Fmtp == "" {
			accepted.Fmtp = remote.Fmtp
		}

		var feedback []string
		for _, fb := range remote.RTCPFeedback {
			if slices.Contains(local.Feedback, fb) {
				feedback = append(feedback, fb)
			}
		}
		addCodec(answer, accepted, feedback)
	}

	if len(answer.MediaName.Formats) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoCommonCodec, strings.Join(offered.MediaName.Formats, " "))
	}

	answer.WithPropertyAttribute(answerDirection(h.direction(), offeredDirection(offered)).String())
	if _, ok := offered.Attribute(sdp.AttrKeyRTCPMux); ok && h.RTCPMux {
		answer.WithPropertyAttribute(sdp.AttrKeyRTCPMux)
	}
	if mid := sdpcontext.MediaMid(offered); mid != "" {
		answer.WithValueAttribute(sdp.AttrKeyMID, mid)
	}

	return answer, nil
}

func offeredDirection(media *sdp.MediaDescription) sdp.Direction {
	for _, attr := range media.Attributes {
		if d, err := sdp.NewDirection(attr.Key); err == nil {
			return d
		}
	}

	return sdp.DirectionSendRecv
}

// answerDirection applies RFC 3264 section 6.1: the answer reverses the
// offered direction, limited to what the answerer supports.
func answerDirection(local, offered sdp.Direction) sdp.Direction {
	canSend := local == sdp.DirectionSendRecv || local == sdp.DirectionSendOnly
	canRecv := local == sdp.DirectionSendRecv || local == sdp.DirectionRecvOnly

	switch offered {
	case sdp.DirectionSendOnly:
		if canRecv {
			return sdp.DirectionRecvOnly
		}
	case sdp.DirectionRecvOnly:
		if canSend {
			return sdp.DirectionSendOnly
		}
	case sdp.DirectionSendRecv:
		return local
	}

	return sdp.DirectionInactive
}
