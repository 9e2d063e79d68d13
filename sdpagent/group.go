// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package sdpagent

import (
	"fmt"
	"iter"
	"slices"
)

// GroupID identifies a bundle group for the lifetime of an Agent.
type GroupID uint32

type handlerGroup struct {
	id       GroupID
	handlers []HandlerID
}

type groupRegistry struct {
	groups []*handlerGroup
	nextID GroupID
}

func (r *groupRegistry) create() GroupID {
	group := &handlerGroup{id: r.nextID}
	r.nextID++
	r.groups = append(r.groups, group)

	return group.id
}

func (r *groupRegistry) get(id GroupID) *handlerGroup {
	if int(id) < len(r.groups) {
		return r.groups[id]
	}

	return nil
}

// add puts hid into group gid. known reports whether a handler id was
// assigned by the handler registry.
func (r *groupRegistry) add(gid GroupID, hid HandlerID, known func(HandlerID) bool) error {
	group := r.get(gid)
	if group == nil {
		return fmt.Errorf("%w: %d", ErrUnknownGroup, gid)
	}
	if !known(hid) {
		return fmt.Errorf("%w: %d", ErrUnknownHandler, hid)
	}

	if !slices.Contains(group.handlers, hid) {
		group.handlers = append(group.handlers, hid)
	}

	return nil
}

func (r *groupRegistry) members(gid GroupID) ([]HandlerID, error) {
	group := r.get(gid)
	if group == nil {
		return nil, fmt.Errorf("%w: %d", ErrUnknownGroup, gid)
	}

	return slices.Clone(group.handlers), nil
}

// containing yields the groups hid belongs to in creation order.
func (r *groupRegistry) containing(hid HandlerID) iter.Seq[*handlerGroup] {
	return func(yield func(*handlerGroup) bool) {
		for _, group := range r.groups {
			if slices.Contains(group.handlers, hid) && !yield(group) {
				return
			}
		}
	}
}
