// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package sdpcontext builds session descriptions on top of pion/sdp while
// tracking which media lines are grouped together (RFC 5888).
package sdpcontext

import (
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/pion/sdp/v3"
)

// SemanticsBundle is the grouping semantics defined by RFC 8843.
const SemanticsBundle = "BUNDLE"

// MessageContext accumulates the session level fields, the media and the
// media groups of one session description until it is packed.
type MessageContext struct {
	desc   *sdp.SessionDescription
	medias []*MediaConfig
	groups []*MediaGroup
}

// MediaConfig is the handle returned when a media description is added to a
// MessageContext. It is only meaningful for the context that created it.
type MediaConfig struct {
	ctx   *MessageContext
	index int
	media *sdp.MediaDescription
}

// Index is the position of the media line in the packed description.
func (m *MediaConfig) Index() int {
	return m.index
}

// Media returns the media description behind the handle.
func (m *MediaConfig) Media() *sdp.MediaDescription {
	return m.media
}

// MediaGroup collects the media that end up in one grouping attribute line.
type MediaGroup struct {
	ctx       *MessageContext
	id        uint32
	semantics string
	medias    []*MediaConfig
}

// ID returns the identifier the group was created with.
func (g *MediaGroup) ID() uint32 {
	return g.id
}

// Len returns the number of media in the group.
func (g *MediaGroup) Len() int {
	return len(g.medias)
}

// AddMedia adds media to the group. Adding media that is already a member is
// a no-op.
func (g *MediaGroup) AddMedia(media *MediaConfig) error {
	if media == nil || media.ctx != g.ctx {
		return ErrForeignMedia
	}

	for _, m := range g.medias {
		if m == media {
			return nil
		}
	}
	g.medias = append(g.medias, media)

	return nil
}

// NewMessageContext returns an empty context.
func NewMessageContext() *MessageContext {
	return &MessageContext{
		desc: &sdp.SessionDescription{},
	}
}

// AddMedia appends a copy of a media description and returns its handle.
// Later changes made through the context never reach the caller's value.
func (c *MessageContext) AddMedia(media *sdp.MediaDescription) (*MediaConfig, error) {
	if media == nil {
		return nil, ErrNilMedia
	}

	config := &MediaConfig{
		ctx:   c,
		index: len(c.medias),
		media: copyMedia(media),
	}
	c.medias = append(c.medias, config)

	return config, nil
}

func copyMedia(media *sdp.MediaDescription) *sdp.MediaDescription {
	dup := *media
	dup.MediaName.Protos = slices.Clone(media.MediaName.Protos)
	dup.MediaName.Formats = slices.Clone(media.MediaName.Formats)
	dup.Bandwidth = slices.Clone(media.Bandwidth)
	dup.Attributes = slices.Clone(media.Attributes)

	return &dup
}

// Medias returns the media handles in the order they were added.
func (c *MessageContext) Medias() []*MediaConfig {
	return append([]*MediaConfig(nil), c.medias...)
}

// Group returns the group registered under id, or nil.
func (c *MessageContext) Group(id uint32) *MediaGroup {
	for _, g := range c.groups {
		if g.id == id {
			return g
		}
	}

	return nil
}

// CreateGroup registers a new group under id with the given semantics.
func (c *MessageContext) CreateGroup(id uint32, semantics string) (*MediaGroup, error) {
	if c.Group(id) != nil {
		return nil, ErrGroupExists
	}

	g := &MediaGroup{
		ctx:       c,
		id:        id,
		semantics: semantics,
	}
	c.groups = append(c.groups, g)

	return g, nil
}

// GetOrCreateGroup returns the BUNDLE group registered under id, creating it
// when it does not exist yet.
func (c *MessageContext) GetOrCreateGroup(id uint32) *MediaGroup {
	if g := c.Group(id); g != nil {
		return g
	}
	g, _ := c.CreateGroup(id, SemanticsBundle)

	return g
}

// Pack produces the session description. Every grouped media that has no
// a=mid gets one, and every non-empty group becomes an a=group line. Groups
// are emitted in ascending id order.
func (c *MessageContext) Pack() *sdp.SessionDescription {
	desc := *c.desc
	desc.Attributes = append([]sdp.Attribute(nil), c.desc.Attributes...)
	desc.MediaDescriptions = make([]*sdp.MediaDescription, 0, len(c.medias))

	taken := map[string]bool{}
	for _, m := range c.medias {
		desc.MediaDescriptions = append(desc.MediaDescriptions, m.media)
		if mid := MediaMid(m.media); mid != "" {
			taken[mid] = true
		}
	}

	groups := append([]*MediaGroup(nil), c.groups...)
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].id < groups[j].id
	})

	for _, g := range groups {
		if len(g.medias) == 0 {
			continue
		}

		mids := make([]string, 0, len(g.medias))
		for _, m := range g.medias {
			mid := MediaMid(m.media)
			if mid == "" {
				mid = nextMid(taken, m.index)
				m.media.WithValueAttribute(sdp.AttrKeyMID, mid)
			}
			mids = append(mids, mid)
		}
		desc.WithValueAttribute(sdp.AttrKeyGroup, g.semantics+" "+strings.Join(mids, " "))
	}

	return &desc
}

func nextMid(taken map[string]bool, index int) string {
	for i := index; ; i++ {
		mid := strconv.Itoa(i)
		if !taken[mid] {
			taken[mid] = true

			return mid
		}
	}
}
