// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package sdpcontext

import "errors"

var (
	// ErrInvalidVersion is returned when a protocol version other than 0 is set.
	ErrInvalidVersion = errors.New("sdpcontext: protocol version must be 0")
	// ErrInvalidNetType is returned when a network type other than IN is set.
	ErrInvalidNetType = errors.New("sdpcontext: network type must be IN")
	// ErrInvalidAddrType is returned when an address type is neither IP4 nor IP6.
	ErrInvalidAddrType = errors.New("sdpcontext: address type must be IP4 or IP6")
	// ErrInvalidAddress is returned when an address does not belong to the
	// declared address type.
	ErrInvalidAddress = errors.New("sdpcontext: address does not match address type")
	// ErrEmptyUsername is returned when the origin username is empty.
	ErrEmptyUsername = errors.New("sdpcontext: origin username must not be empty")
	// ErrEmptySessionName is returned when the session name is empty.
	ErrEmptySessionName = errors.New("sdpcontext: session name must not be empty")
	// ErrNilDescription is returned when a nil description is walked or packed.
	ErrNilDescription = errors.New("sdpcontext: nil session description")
	// ErrNilMedia is returned when a nil media description is added.
	ErrNilMedia = errors.New("sdpcontext: nil media description")
	// ErrForeignMedia is returned when a media config from another context is
	// added to a group.
	ErrForeignMedia = errors.New("sdpcontext: media belongs to another context")
	// ErrGroupExists is returned by CreateGroup when the id is already in use.
	ErrGroupExists = errors.New("sdpcontext: group already exists")
)
