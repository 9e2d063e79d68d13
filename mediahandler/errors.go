// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package mediahandler

import "errors"

var (
	// ErrNoCodecs is returned when an RTPHandler without codecs builds an offer.
	ErrNoCodecs = errors.New("mediahandler: no codecs configured")
	// ErrNoCommonCodec is returned when none of the offered formats is supported.
	ErrNoCommonCodec = errors.New("mediahandler: no codec in common with the offer")
	// ErrProtocolMismatch is returned when the offered protocol is not the
	// handler's.
	ErrProtocolMismatch = errors.New("mediahandler: offered protocol does not match")
	// ErrUnsupportedMedia is returned for a media type the handler cannot carry.
	ErrUnsupportedMedia = errors.New("mediahandler: unsupported media type")
)
