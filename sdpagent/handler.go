// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package sdpagent

import (
	"fmt"
	"iter"

	"github.com/pion/sdp/v3"
)

// HandlerID identifies a registered MediaHandler for the lifetime of an Agent.
type HandlerID uint32

// MediaHandler builds the media lines of one media type and transport
// protocol.
//
// The Agent holds its lock while it calls CreateOffer and CreateAnswer. A
// MediaHandler must not call back into the Agent that invokes it, directly or
// from another goroutine it waits on, or it deadlocks.
type MediaHandler interface {
	// Protocol is the transport protocol of the media lines this handler
	// produces, e.g. "UDP/TLS/RTP/SAVPF". It must not be empty.
	Protocol() string

	// CreateOffer returns the media line to offer for media.
	CreateOffer(media string) (*sdp.MediaDescription, error)

	// CreateAnswer returns the media line answering offered.
	CreateAnswer(offered *sdp.MediaDescription) (*sdp.MediaDescription, error)
}

type handlerEntry struct {
	id       HandlerID
	media    string
	protocol string
	handler  MediaHandler
}

type handlerRegistry struct {
	byMedia map[string]map[string]*handlerEntry
	ordered []*handlerEntry
	nextID  HandlerID
}

func newHandlerRegistry() *handlerRegistry {
	return &handlerRegistry{
		byMedia: map[string]map[string]*handlerEntry{},
	}
}

func (r *handlerRegistry) register(media string, handler MediaHandler) (HandlerID, error) {
	if handler == nil {
		return 0, ErrInvalidHandler
	}

	protocol := handler.Protocol()
	if protocol == "" {
		return 0, fmt.Errorf("%w: empty protocol", ErrInvalidHandler)
	}

	protocols, ok := r.byMedia[media]
	if !ok {
		protocols = map[string]*handlerEntry{}
		r.byMedia[media] = protocols
	}
	if _, ok := protocols[protocol]; ok {
		return 0, fmt.Errorf("%w: %s %s", ErrDuplicateBinding, media, protocol)
	}

	entry := &handlerEntry{
		id:       r.nextID,
		media:    media,
		protocol: protocol,
		handler:  handler,
	}
	r.nextID++
	protocols[protocol] = entry
	r.ordered = append(r.ordered, entry)

	return entry.id, nil
}

func (r *handlerRegistry) lookup(media, protocol string) MediaHandler {
	if entry, ok := r.byMedia[media][protocol]; ok {
		return entry.handler
	}

	return nil
}

func (r *handlerRegistry) get(id HandlerID) *handlerEntry {
	// ids are dense and never reused
	if int(id) < len(r.ordered) {
		return r.ordered[id]
	}

	return nil
}

// entries yields the handlers in registration order.
func (r *handlerRegistry) entries() iter.Seq[*handlerEntry] {
	return func(yield func(*handlerEntry) bool) {
		for _, entry := range r.ordered {
			if !yield(entry) {
				return
			}
		}
	}
}
