package osc

import (
	"encoding"
	"fmt"
)

const (
	bit32Size = 4
	bit64Size = 8

	// MaxPacketSize is the largest UDP payload the transport reads into;
	// the codec itself has no size limit.
	MaxPacketSize = 65507
)

// Packet is the interface implemented by Message and Bundle.
type Packet interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
}

// ParsePacket parses a binary buffer into a Message or a Bundle, resolved by
// the leading byte: '/' for a message, '#' for a bundle. A leading ','
// decodes as an address-less message (see Message.UnmarshalBinary).
func ParsePacket(data []byte) (Packet, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("ParsePacket: empty buffer: %w", ErrTruncatedBuffer)
	}

	switch data[0] {
	case '/', ',':
		return NewMessageFromData(data)
	case '#':
		return NewBundleFromData(data)
	default:
		return nil, fmt.Errorf("ParsePacket: leading byte %q is neither '/' nor '#': %w", data[0], ErrMalformedMessage)
	}
}
