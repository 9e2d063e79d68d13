// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package sdpcontext

import (
	"fmt"
	"net/netip"

	"github.com/pion/sdp/v3"
)

// Network and address types accepted by the session setters.
const (
	NetTypeIN   = "IN"
	AddrTypeIP4 = "IP4"
	AddrTypeIP6 = "IP6"
)

// SetVersion sets the v= line. Only version 0 exists.
func (c *MessageContext) SetVersion(version int) error {
	if version != 0 {
		return fmt.Errorf("%w: %d", ErrInvalidVersion, version)
	}
	c.desc.Version = sdp.Version(version)

	return nil
}

// SetOrigin sets the o= line.
func (c *MessageContext) SetOrigin(origin sdp.Origin) error {
	if origin.Username == "" {
		return ErrEmptyUsername
	}
	if origin.NetworkType != NetTypeIN {
		return fmt.Errorf("%w: %q", ErrInvalidNetType, origin.NetworkType)
	}
	if err := validateAddress(origin.AddressType, origin.UnicastAddress); err != nil {
		return err
	}
	c.desc.Origin = origin

	return nil
}

// SetSessionName sets the s= line.
func (c *MessageContext) SetSessionName(name string) error {
	if name == "" {
		return ErrEmptySessionName
	}
	c.desc.SessionName = sdp.SessionName(name)

	return nil
}

// SetConnection sets the session level c= line.
func (c *MessageContext) SetConnection(conn sdp.ConnectionInformation) error {
	if conn.NetworkType != NetTypeIN {
		return fmt.Errorf("%w: %q", ErrInvalidNetType, conn.NetworkType)
	}
	if conn.Address == nil {
		return fmt.Errorf("%w: missing address", ErrInvalidAddress)
	}
	if err := validateAddress(conn.AddressType, conn.Address.Address); err != nil {
		return err
	}

	address := *conn.Address
	conn.Address = &address
	c.desc.ConnectionInformation = &conn

	return nil
}

// SetTimings replaces the t= and r= lines.
func (c *MessageContext) SetTimings(timings []sdp.TimeDescription) {
	c.desc.TimeDescriptions = CopyTimings(timings)
}

// validateAddress accepts literal addresses of the declared family and
// fully qualified domain names.
func validateAddress(addrType, address string) error {
	if addrType != AddrTypeIP4 && addrType != AddrTypeIP6 {
		return fmt.Errorf("%w: %q", ErrInvalidAddrType, addrType)
	}
	if address == "" {
		return fmt.Errorf("%w: empty address", ErrInvalidAddress)
	}

	ip, err := netip.ParseAddr(address)
	if err != nil {
		if !isHostname(address) {
			return fmt.Errorf("%w: %q", ErrInvalidAddress, address)
		}

		return nil
	}

	if (addrType == AddrTypeIP4) != ip.Is4() {
		return fmt.Errorf("%w: %s is not %s", ErrInvalidAddress, address, addrType)
	}

	return nil
}

func isHostname(name string) bool {
	if len(name) > 253 {
		return false
	}

	label := 0
	letters := false
	for i := 0; i < len(name); i++ {
		switch ch := name[i]; {
		case ch == '.':
			if label == 0 {
				return false
			}
			label = 0

			continue
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z':
			letters = true
		case ch >= '0' && ch <= '9':
		case ch == '-':
			if label == 0 {
				return false
			}
		default:
			return false
		}
		label++
		if label > 63 {
			return false
		}
	}

	return letters && label > 0
}
