// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package sdpagent

import (
	"fmt"
	"slices"

	"github.com/gofeeling/kms-core/sdpcontext"
	"github.com/pion/sdp/v3"
)

// rejectMedia returns the RFC 3264 section 6 rejection of offered: same
// media and protocol, port 0 and the offered formats.
func rejectMedia(offered *sdp.MediaDescription) *sdp.MediaDescription {
	return &sdp.MediaDescription{
		MediaName: sdp.MediaName{
			Media:   offered.MediaName.Media,
			Port:    sdp.RangedPort{Value: 0},
			Protos:  slices.Clone(offered.MediaName.Protos),
			Formats: slices.Clone(offered.MediaName.Formats),
		},
	}
}

func (a *Agent) answerMedia(offered *sdp.MediaDescription) *sdp.MediaDescription {
	kind, protocol := offered.MediaName.Media, sdpcontext.MediaProtocol(offered)

	handler := a.handlers.lookup(kind, protocol)
	if handler == nil {
		a.log.Warnf("no handler for %s %s, rejecting media", kind, protocol)
		a.metrics.mediaRejected(kind)

		return rejectMedia(offered)
	}

	media, err := handler.CreateAnswer(offered)
	if err == nil && media == nil {
		err = errHandlerReturnedNil
	}
	if err != nil {
		a.log.Errorf("handler for %s %s failed to create answer: %v", kind, protocol, err)
		a.metrics.handlerFailed("answer", kind, protocol)
		a.metrics.mediaRejected(kind)

		return rejectMedia(offered)
	}

	return media
}

func (a *Agent) createAnswer(offer *sdp.SessionDescription) (SessionDescription, error) {
	ctx := sdpcontext.NewMessageContext()
	if err := a.applySessionDefaults(ctx); err != nil {
		return SessionDescription{}, err
	}
	if offer != nil && len(offer.TimeDescriptions) > 0 {
		ctx.SetTimings(offer.TimeDescriptions)
	}

	var bundles [][]string
	if a.bundle && offer != nil {
		bundles = sdpcontext.Groups(offer, sdpcontext.SemanticsBundle)
	}

	err := sdpcontext.ForEachMedia(offer, func(_ int, offered *sdp.MediaDescription) error {
		media := a.answerMedia(offered)

		config, err := ctx.AddMedia(media)
		if err != nil {
			return err
		}
		if media.MediaName.Port.Value == 0 {
			return nil
		}

		mid := sdpcontext.MediaMid(offered)
		if mid == "" {
			return nil
		}
		// the context owns a copy, the handler's value stays as returned
		if sdpcontext.MediaMid(config.Media()) == "" {
			config.Media().WithValueAttribute(sdp.AttrKeyMID, mid)
		}
		for i, bundle := range bundles {
			if slices.Contains(bundle, mid) {
				if err := ctx.GetOrCreateGroup(uint32(i)).AddMedia(config); err != nil {
					return err
				}
			}
		}

		return nil
	})
	if err != nil {
		return SessionDescription{}, fmt.Errorf("%w: %w", ErrUnexpected, err)
	}

	answer, err := newSessionDescription(SDPTypeAnswer, ctx.Pack())
	if err != nil {
		return SessionDescription{}, err
	}
	a.metrics.answerCreated()
	a.log.Tracef("created answer:\n%s", answer.SDP)

	return answer, nil
}
