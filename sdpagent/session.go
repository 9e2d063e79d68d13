// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package sdpagent

import (
	"fmt"

	"github.com/gofeeling/kms-core/sdpcontext"
	"github.com/pion/randutil"
	"github.com/pion/sdp/v3"
)

const (
	defaultOriginUsername = "-"
	defaultSessionName    = "Kurento Media Server"

	unspecifiedIPv4 = "0.0.0.0"
	unspecifiedIPv6 = "::"
)

// newSessionID returns a session id with the most significant bit cleared,
// as required by JSEP.
func newSessionID() (uint64, error) {
	id, err := randutil.CryptoUint64()

	return id & (^(uint64(1) << 63)), err
}

// applySessionDefaults fills the v=, o=, s=, c= and t= lines of ctx. Every
// call bumps the session version.
func (a *Agent) applySessionDefaults(ctx *sdpcontext.MessageContext) error {
	if a.sessionID == 0 {
		id, err := newSessionID()
		if err != nil {
			return fmt.Errorf("%w: origin: %w", ErrInvalidParameter, err)
		}
		a.sessionID = id
	}
	a.sessionVersion++

	addrType, address := sdpcontext.AddrTypeIP4, unspecifiedIPv4
	if a.useIPv6 {
		addrType, address = sdpcontext.AddrTypeIP6, unspecifiedIPv6
	}
	if a.address != "" {
		address = a.address
	}

	if err := ctx.SetVersion(0); err != nil {
		return fmt.Errorf("%w: version: %w", ErrInvalidParameter, err)
	}

	if err := ctx.SetOrigin(sdp.Origin{
		Username:       a.originUsername,
		SessionID:      a.sessionID,
		SessionVersion: a.sessionVersion,
		NetworkType:    sdpcontext.NetTypeIN,
		AddressType:    addrType,
		UnicastAddress: address,
	}); err != nil {
		return fmt.Errorf("%w: origin: %w", ErrInvalidParameter, err)
	}

	if err := ctx.SetSessionName(a.sessionName); err != nil {
		return fmt.Errorf("%w: session: %w", ErrInvalidParameter, err)
	}

	if err := ctx.SetConnection(sdp.ConnectionInformation{
		NetworkType: sdpcontext.NetTypeIN,
		AddressType: addrType,
		Address:     &sdp.Address{Address: address},
	}); err != nil {
		return fmt.Errorf("%w: connection: %w", ErrInvalidParameter, err)
	}

	ctx.SetTimings([]sdp.TimeDescription{{Timing: sdp.Timing{StartTime: 0, StopTime: 0}}})

	return nil
}
