// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package sdpcontext

import (
	"strings"

	"github.com/pion/sdp/v3"
)

// Parse unmarshals a wire format session description.
func Parse(raw string) (*sdp.SessionDescription, error) {
	desc := &sdp.SessionDescription{}
	if err := desc.UnmarshalString(raw); err != nil {
		return nil, err
	}

	return desc, nil
}

// Marshal serializes desc into its wire format.
func Marshal(desc *sdp.SessionDescription) (string, error) {
	if desc == nil {
		return "", ErrNilDescription
	}

	raw, err := desc.Marshal()
	if err != nil {
		return "", err
	}

	return string(raw), nil
}

// ForEachMedia calls fn for every media line of desc in document order and
// stops at the first error.
func ForEachMedia(desc *sdp.SessionDescription, fn func(index int, media *sdp.MediaDescription) error) error {
	if desc == nil {
		return ErrNilDescription
	}

	for i, media := range desc.MediaDescriptions {
		if media == nil {
			return ErrNilMedia
		}
		if err := fn(i, media); err != nil {
			return err
		}
	}

	return nil
}

// MediaProtocol returns the transport protocol of a media line, e.g.
// "UDP/TLS/RTP/SAVPF".
func MediaProtocol(media *sdp.MediaDescription) string {
	return strings.Join(media.MediaName.Protos, "/")
}

// MediaMid returns the a=mid value of a media line, or "".
func MediaMid(media *sdp.MediaDescription) string {
	mid, _ := media.Attribute(sdp.AttrKeyMID)

	return mid
}

// Groups returns the identification tags of every a=group line with the
// given semantics.
func Groups(desc *sdp.SessionDescription, semantics string) [][]string {
	var groups [][]string
	for _, attr := range desc.Attributes {
		if attr.Key != sdp.AttrKeyGroup {
			continue
		}

		fields := strings.Fields(attr.Value)
		if len(fields) == 0 || !strings.EqualFold(fields[0], semantics) {
			continue
		}
		groups = append(groups, fields[1:])
	}

	return groups
}

// CopyTimings deep copies t= and r= lines.
func CopyTimings(timings []sdp.TimeDescription) []sdp.TimeDescription {
	if timings == nil {
		return nil
	}

	out := make([]sdp.TimeDescription, len(timings))
	for i, t := range timings {
		out[i].Timing = t.Timing
		for _, r := range t.RepeatTimes {
			out[i].RepeatTimes = append(out[i].RepeatTimes, sdp.RepeatTime{
				Interval: r.Interval,
				Duration: r.Duration,
				Offsets:  append([]int64(nil), r.Offsets...),
			})
		}
	}

	return out
}
