// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package sdpagent

import (
	"fmt"

	"github.com/gofeeling/kms-core/sdpcontext"
)

func (a *Agent) createOffer() (SessionDescription, error) {
	ctx := sdpcontext.NewMessageContext()
	if err := a.applySessionDefaults(ctx); err != nil {
		return SessionDescription{}, err
	}

	for entry := range a.handlers.entries() {
		media, err := entry.handler.CreateOffer(entry.media)
		if err == nil && media == nil {
			err = errHandlerReturnedNil
		}
		if err != nil {
			a.log.Errorf("handler %d (%s %s) failed to create offer: %v", entry.id, entry.media, entry.protocol, err)
			a.metrics.handlerFailed("offer", entry.media, entry.protocol)

			continue
		}

		config, err := ctx.AddMedia(media)
		if err != nil {
			return SessionDescription{}, fmt.Errorf("%w: %w", ErrUnexpected, err)
		}

		for group := range a.groups.containing(entry.id) {
			if err := ctx.GetOrCreateGroup(uint32(group.id)).AddMedia(config); err != nil {
				return SessionDescription{}, fmt.Errorf("%w: %w", ErrUnexpected, err)
			}
		}
	}

	offer, err := newSessionDescription(SDPTypeOffer, ctx.Pack())
	if err != nil {
		return SessionDescription{}, err
	}
	a.metrics.offerCreated()
	a.log.Tracef("created offer:\n%s", offer.SDP)

	return offer, nil
}
