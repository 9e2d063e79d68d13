// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package mediahandler

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/gofeeling/kms-core/sdpcontext"
	"github.com/pion/sdp/v3"
)

// SCTP transport protocols.
const (
	ProtoUDPDTLSSCTP = "UDP/DTLS/SCTP"

	// ProtoDTLSSCTP is the pre RFC 8841 syntax that carries the SCTP port as
	// the format and describes it with a=sctpmap.
	ProtoDTLSSCTP = "DTLS/SCTP"
)

const (
	defaultSCTPPort     = 5000
	dataChannelFormat   = "webrtc-datachannel"
	attrKeySCTPPort     = "sctp-port"
	attrKeySCTPMap      = "sctpmap"
	attrKeyMaxMsgSize   = "max-message-size"
	legacyStreamsNumber = 1024
)

// SCTPHandler offers and answers WebRTC data channel media lines.
type SCTPHandler struct {
	// Proto defaults to ProtoUDPDTLSSCTP.
	Proto string

	// Port is the SCTP port, 5000 when zero.
	Port uint16

	// MaxMessageSize is left out of the media line when zero.
	MaxMessageSize uint32
}

// Protocol implements sdpagent.MediaHandler.
func (h *SCTPHandler) Protocol() string {
	if h.Proto == "" {
		return ProtoUDPDTLSSCTP
	}

	return h.Proto
}

func (h *SCTPHandler) port() string {
	if h.Port == 0 {
		return strconv.Itoa(defaultSCTPPort)
	}

	return strconv.Itoa(int(h.Port))
}

func (h *SCTPHandler) describe(media *sdp.MediaDescription, format string) {
	media.MediaName.Formats = append(media.MediaName.Formats, format)
	if h.Protocol() == ProtoDTLSSCTP {
		media.WithValueAttribute(attrKeySCTPMap, fmt.Sprintf("%s %s %d", h.port(), dataChannelFormat, legacyStreamsNumber))
	} else {
		media.WithValueAttribute(attrKeySCTPPort, h.port())
	}
	if h.MaxMessageSize > 0 {
		media.WithValueAttribute(attrKeyMaxMsgSize, strconv.FormatUint(uint64(h.MaxMessageSize), 10))
	}
}

// CreateOffer implements sdpagent.MediaHandler.
func (h *SCTPHandler) CreateOffer(media string) (*sdp.MediaDescription, error) {
	if media != "application" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMedia, media)
	}

	offer := newMedia(media, h.Protocol())
	format := dataChannelFormat
	if h.Protocol() == ProtoDTLSSCTP {
		format = h.port()
	}
	h.describe(offer, format)

	return offer, nil
}

// CreateAnswer implements sdpagent.MediaHandler.
func (h *SCTPHandler) CreateAnswer(offered *sdp.MediaDescription) (*sdp.MediaDescription, error) {
	if offered.MediaName.Media != "application" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMedia, offered.MediaName.Media)
	}
	if proto := sdpcontext.MediaProtocol(offered); proto != h.Protocol() {
		return nil, fmt.Errorf("%w: %s", ErrProtocolMismatch, proto)
	}

	format := dataChannelFormat
	if h.Protocol() == ProtoDTLSSCTP {
		if len(offered.MediaName.Formats) == 0 {
			return nil, fmt.Errorf("%w: missing SCTP port", ErrNoCommonCodec)
		}
		format = offered.MediaName.Formats[0]
	} else if !slices.Contains(offered.MediaName.Formats, dataChannelFormat) {
		return nil, fmt.Errorf("%w: %v", ErrNoCommonCodec, offered.MediaName.Formats)
	}

	answer := newMedia(offered.MediaName.Media, h.Protocol())
	h.describe(answer, format)
	if mid := sdpcontext.MediaMid(offered); mid != "" {
		answer.WithValueAttribute(sdp.AttrKeyMID, mid)
	}

	return answer, nil
}
