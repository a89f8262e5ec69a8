package osc

import (
	"encoding/binary"
	"fmt"
	"strings"
	"time"
)

const bundleTagString = "#bundle"

// bundleHeaderSize is the padded "#bundle" literal plus the time tag.
const bundleHeaderSize = 8 + bit64Size

// Bundle represents an OSC bundle. It consists of the OSC-string "#bundle"
// followed by an OSC Time Tag, followed by zero or more OSC bundle/message
// elements. The OSC-timetag is a 64-bit fixed point time tag. See
// http://opensoundcontrol.org/spec-1_0.html for more information.
type Bundle struct {
	Timetag  Timetag
	Elements []Packet
}

// Verify that Bundle implements the Packet interface.
var _ Packet = (*Bundle)(nil)

// NewBundle returns an OSC Bundle with the immediate time tag.
func NewBundle() *Bundle {
	return &Bundle{Timetag: TimetagImmediate}
}

// NewBundleWithTime returns an OSC Bundle scheduled for the given time.
func NewBundleWithTime(t time.Time) *Bundle {
	return &Bundle{Timetag: NewTimetagFromTime(t)}
}

// Append appends an OSC bundle or OSC message to the bundle.
func (b *Bundle) Append(pck Packet) error {
	switch t := pck.(type) {
	default:
		return fmt.Errorf("unsupported OSC packet type %T: only Bundle and Message are supported", pck)

	case *Bundle, *Message:
		b.Elements = append(b.Elements, t)
	}

	return nil
}

// String implements the fmt.Stringer interface.
func (b *Bundle) String() string {
	if b == nil {
		return ""
	}

	var s strings.Builder
	fmt.Fprintf(&s, "#bundle %d [", uint64(b.Timetag))
	for i, e := range b.Elements {
		if i > 0 {
			s.WriteString(", ")
		}
		fmt.Fprint(&s, e)
	}
	s.WriteByte(']')
	return s.String()
}

// MarshalBinary implements the encoding.BinaryMarshaler interface. The wire
// form is the padded "#bundle" literal, the time tag, then each element's
// binary form prefixed by its big-endian int32 length. Elements carry no
// type tags at the bundle level; they self-describe.
func (b *Bundle) MarshalBinary() ([]byte, error) {
	buf, err := appendPaddedString(nil, bundleTagString)
	if err != nil {
		return nil, err
	}
	buf = b.Timetag.appendTo(buf)

	for _, e := range b.Elements {
		bb, err := e.MarshalBinary()
		if err != nil {
			return nil, err
		}

		buf = appendUint32(buf, uint32(len(bb)))
		buf = append(buf, bb...)
	}

	return buf, nil
}

// NewBundleFromData returns a new OSC bundle created from the binary data.
func NewBundleFromData(data []byte) (*Bundle, error) {
	b := &Bundle{}
	if err := b.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return b, nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (b *Bundle) UnmarshalBinary(data []byte) error {
	if len(data) < bundleHeaderSize {
		return fmt.Errorf("UnmarshalBinary: bundle needs at least %d bytes, have %d: %w", bundleHeaderSize, len(data), ErrTruncatedBuffer)
	}

	if len(data)%bit32Size != 0 {
		return fmt.Errorf("UnmarshalBinary: buffer length %d is not 32-bit aligned: %w", len(data), ErrMalformedMessage)
	}

	startTag, n, err := parsePaddedString(data)
	if err != nil {
		return fmt.Errorf("UnmarshalBinary: %w", err)
	}
	data = data[n:]

	if startTag != bundleTagString {
		return fmt.Errorf("UnmarshalBinary: invalid bundle start tag %q: %w", startTag, ErrMalformedMessage)
	}

	tt, n, err := parseTimetag(data)
	if err != nil {
		return fmt.Errorf("UnmarshalBinary: %w", err)
	}
	b.Timetag = tt
	data = data[n:]

	for len(data) > 0 {
		if len(data) < bit32Size {
			return fmt.Errorf("UnmarshalBinary: missing element length: %w", ErrTruncatedBuffer)
		}

		length := int(int32(binary.BigEndian.Uint32(data[:bit32Size])))
		data = data[bit32Size:]

		if length < 0 || length > len(data) {
			return fmt.Errorf("UnmarshalBinary: element length %d exceeds remaining %d bytes: %w", length, len(data), ErrTruncatedBuffer)
		}

		p, err := ParsePacket(data[:length])
		if err != nil {
			return fmt.Errorf("UnmarshalBinary: %w", err)
		}
		data = data[length:]

		if err := b.Append(p); err != nil {
			return fmt.Errorf("UnmarshalBinary: %w", err)
		}
	}

	return nil
}
