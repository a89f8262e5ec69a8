package osc

import "errors"

// Decode and encode failures wrap one of these sentinels, so callers can
// classify a failure with errors.Is without parsing the message text.
var (
	// ErrTruncatedBuffer reports that fewer bytes remain in a buffer than a
	// declared or required field needs. A short read is always surfaced,
	// never substituted with a zero value.
	ErrTruncatedBuffer = errors.New("osc: truncated buffer")

	// ErrMalformedMessage reports a structural violation: a type tag string
	// without its leading comma, a bundle without the "#bundle" literal, or
	// a packet that starts with neither '/' nor '#'.
	ErrMalformedMessage = errors.New("osc: malformed packet")

	// ErrUnknownTypeTag reports a type tag character with no registered
	// decoder.
	ErrUnknownTypeTag = errors.New("osc: unknown type tag")

	// ErrEncoding reports an argument that cannot be represented on the
	// wire, such as a string with a code point outside Latin-1.
	ErrEncoding = errors.New("osc: unencodable argument")

	// ErrRange reports a numeric argument outside its wire type's range,
	// or a color/MIDI argument without exactly four 0-255 channels.
	ErrRange = errors.New("osc: value out of range")
)
