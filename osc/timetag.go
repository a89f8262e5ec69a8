package osc

import (
	"encoding/binary"
	"fmt"
	"time"
)

const (
	// secondsFrom1900To1970 offsets the NTP epoch (1900-01-01T00:00:00Z)
	// against the Unix epoch.
	secondsFrom1900To1970 = 2208988800

	// ntpUnitsPerSecond is the value of one second in the fractional part
	// of a time tag, about 232 picoseconds per unit.
	ntpUnitsPerSecond = 1 << 32
)

// TimetagImmediate is the special time tag meaning "process immediately":
// 63 zero bits followed by a one in the least significant bit.
const TimetagImmediate = Timetag(1)

// Timetag represents an OSC Time Tag.
// An OSC Time Tag is defined as follows:
// Time tags are represented by a 64 bit fixed point number. The first 32 bits
// specify the number of seconds since midnight on January 1, 1900, and the
// last 32 bits specify fractional parts of a second to a precision of about
// 200 picoseconds. This is the representation used by Internet NTP timestamps.
type Timetag uint64

// NewTimetagFromTime returns a new OSC time tag from a time.Time.
func NewTimetagFromTime(timeStamp time.Time) Timetag {
	secs := uint64(secondsFrom1900To1970 + timeStamp.Unix())
	frac := uint64(timeStamp.Nanosecond()) * ntpUnitsPerSecond / 1e9
	return Timetag(secs<<32 | frac)
}

// NewImmediateTimetag returns the "immediately" time tag.
func NewImmediateTimetag() Timetag {
	return TimetagImmediate
}

// IsImmediate reports whether the time tag is the "immediately" sentinel.
func (t Timetag) IsImmediate() bool {
	return t == TimetagImmediate
}

// Time returns the time. The result is meaningless for the immediate
// sentinel.
func (t Timetag) Time() time.Time {
	secs := int64(t>>32) - secondsFrom1900To1970
	nsec := int64(uint64(uint32(t)) * 1e9 / ntpUnitsPerSecond)
	return time.Unix(secs, nsec)
}

// SecondsSinceEpoch returns the first 32 bits (the number of seconds since
// midnight 1900) from the OSC time tag.
func (t Timetag) SecondsSinceEpoch() uint32 {
	return uint32(t >> 32)
}

// FractionalSecond returns the last 32 bits of the OSC time tag, the
// fractional part of a second.
func (t Timetag) FractionalSecond() uint32 {
	return uint32(t)
}

// ExpiresIn calculates the duration until the current time reaches the value
// of the time tag. It returns zero for the immediate sentinel and for time
// tags in the past.
func (t Timetag) ExpiresIn() time.Duration {
	if t <= TimetagImmediate {
		return 0
	}

	d := time.Until(t.Time())
	if d <= 0 {
		return 0
	}

	return d
}

// MarshalBinary converts the OSC time tag to its 8 byte big-endian form. The
// immediate sentinel marshals to exactly 00 00 00 00 00 00 00 01.
func (t Timetag) MarshalBinary() (b []byte, err error) {
	b = make([]byte, bit64Size)
	binary.BigEndian.PutUint64(b, uint64(t))
	return
}

// appendTo appends the wire form of the time tag to b.
func (t Timetag) appendTo(b []byte) []byte {
	b = append(b, make([]byte, bit64Size)...)
	binary.BigEndian.PutUint64(b[len(b)-bit64Size:], uint64(t))
	return b
}

// parseTimetag reads a time tag from the start of data. The (0, 1) word pair
// produces the immediate sentinel.
func parseTimetag(data []byte) (Timetag, int, error) {
	if len(data) < bit64Size {
		return 0, 0, fmt.Errorf("parseTimetag: need %d bytes, have %d: %w", bit64Size, len(data), ErrTruncatedBuffer)
	}
	return Timetag(binary.BigEndian.Uint64(data[:bit64Size])), bit64Size, nil
}
