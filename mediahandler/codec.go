// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package mediahandler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pion/sdp/v3"
)

// Codec is an RTP payload format an RTPHandler offers or accepts.
type Codec struct {
	PayloadType uint8

	// Name is the encoding name of the rtpmap line, e.g. "opus" or "H264".
	Name      string
	ClockRate uint32
	Channels  uint16
	Fmtp      string

	// Feedback holds rtcp-fb values such as "nack" or "nack pli".
	Feedback []string
}

func (c Codec) String() string {
	return fmt.Sprintf("%d %s/%d/%d (%s)", c.PayloadType, c.Name, c.ClockRate, c.Channels, c.Fmtp)
}

// Static payload types pion/sdp does not resolve without an rtpmap line.
var staticCodecs = map[uint8]sdp.Codec{
	18: {PayloadType: 18, Name: "G729", ClockRate: 8000},
}

// offeredCodec resolves the payload format pt of media, falling back to the
// RFC 3551 static assignments.
func offeredCodec(media *sdp.MediaDescription, pt uint8) (sdp.Codec, bool) {
	desc := &sdp.SessionDescription{MediaDescriptions: []*sdp.MediaDescription{media}}
	if codec, err := desc.GetCodecForPayloadType(pt); err == nil {
		return codec, true
	}
	codec, ok := staticCodecs[pt]

	return codec, ok
}

func defaultClockRate(name string) uint32 {
	switch strings.ToLower(name) {
	case "opus":
		return 48000
	case "pcmu", "pcma", "g722", "g729", "telephone-event":
		return 8000
	default:
		return 90000
	}
}

func defaultChannels(name string) uint16 {
	if strings.EqualFold(name, "opus") {
		return 2
	}

	return 1
}

// matches reports whether the offered payload format can be answered with c.
func (c Codec) matches(offered sdp.Codec) bool {
	if !strings.EqualFold(c.Name, offered.Name) {
		return false
	}

	localRate, offeredRate := c.ClockRate, offered.ClockRate
	if localRate == 0 {
		localRate = defaultClockRate(c.Name)
	}
	if offeredRate == 0 {
		offeredRate = defaultClockRate(offered.Name)
	}
	if localRate != offeredRate {
		return false
	}

	localChannels := c.Channels
	if localChannels == 0 {
		localChannels = defaultChannels(c.Name)
	}
	offeredChannels := defaultChannels(offered.Name)
	if offered.EncodingParameters != "" {
		n, err := strconv.ParseUint(offered.EncodingParameters, 10, 16)
		if err != nil {
			return false
		}
		offeredChannels = uint16(n)
	}
	if localChannels != offeredChannels {
		return false
	}

	return fmtpMatch(c.Name, parseParameters(c.Fmtp), parseParameters(offered.Fmtp))
}

func parseParameters(line string) map[string]string {
	parameters := map[string]string{}
	for _, p := range strings.Split(line, ";") {
		key, value, _ := strings.Cut(strings.TrimSpace(p), "=")
		if key == "" {
			continue
		}
		parameters[strings.ToLower(key)] = value
	}

	return parameters
}

func parameter(parameters map[string]string, key, fallback string) string {
	if v, ok := parameters[key]; ok {
		return v
	}

	return fallback
}

// fmtpMatch checks the format parameters that decide whether two payload
// formats can interoperate.
func fmtpMatch(name string, local, offered map[string]string) bool {
	switch strings.ToLower(name) {
	case "h264":
		// RFC 6184 section 8.1: packetization-mode defaults to 0
		return parameter(local, "packetization-mode", "0") == parameter(offered, "packetization-mode", "0")
	case "vp9":
		// profile 0 when profile-id is absent
		return parameter(local, "profile-id", "0") == parameter(offered, "profile-id", "0")
	case "av1":
		return parameter(local, "profile", "0") == parameter(offered, "profile", "0")
	}

	for k, v := range local {
		if ov, ok := offered[k]; ok && !strings.EqualFold(ov, v) {
			return false
		}
	}

	return true
}

func addCodec(media *sdp.MediaDescription, codec Codec, feedback []string) {
	media.WithCodec(codec.PayloadType, codec.Name, codec.ClockRate, codec.Channels, codec.Fmtp)
	for _, fb := range feedback {
		media.WithValueAttribute("rtcp-fb", fmt.Sprintf("%d %s", codec.PayloadType, fb))
	}
}
