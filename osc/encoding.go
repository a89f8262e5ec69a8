package osc

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"golang.org/x/text/encoding/charmap"
)

////
// De/Encoding functions
////

// appendPaddedString appends str as an OSC-string: Latin-1 bytes, a NUL
// terminator, then zero padding to the next 4 byte boundary (1 to 4 zero
// bytes in total).
func appendPaddedString(b []byte, str string) ([]byte, error) {
	enc, err := charmap.ISO8859_1.NewEncoder().String(str)
	if err != nil {
		return nil, fmt.Errorf("appendPaddedString: %q is not Latin-1: %w", str, ErrEncoding)
	}

	b = append(b, enc...)
	b = append(b, 0)
	for i := padBytesNeeded(len(enc) + 1); i > 0; i-- {
		b = append(b, 0)
	}

	return b, nil
}

// parsePaddedString reads an OSC-string from the start of data. It returns
// the decoded string and the number of bytes consumed, terminator and
// padding included.
func parsePaddedString(data []byte) (string, int, error) {
	pos := bytes.IndexByte(data, 0)
	if pos == -1 {
		return "", 0, fmt.Errorf("parsePaddedString: no string terminator: %w", ErrTruncatedBuffer)
	}

	dec, _ := charmap.ISO8859_1.NewDecoder().Bytes(data[:pos])

	n := pos + 1 + padBytesNeeded(pos+1)
	if n > len(data) {
		n = len(data)
	}

	return string(dec), n, nil
}

// appendBlob appends data as an OSC-blob: a big-endian int32 length (the
// unpadded byte count), the payload, then 0 to 3 zero bytes of padding.
// Unlike strings, blobs carry no terminator.
func appendBlob(b, data []byte) []byte {
	b = append(b, make([]byte, bit32Size)...)
	binary.BigEndian.PutUint32(b[len(b)-bit32Size:], uint32(len(data)))

	b = append(b, data...)
	for i := padBytesNeeded(len(data)); i > 0; i-- {
		b = append(b, 0)
	}

	return b
}

// parseBlob reads an OSC-blob from the start of data. The returned payload
// is a copy, safe to hold after the input buffer is reused. Padding is
// counted from the start of the payload, not the length prefix.
func parseBlob(data []byte) ([]byte, int, error) {
	if len(data) < bit32Size {
		return nil, 0, fmt.Errorf("parseBlob: missing blob length: %w", ErrTruncatedBuffer)
	}

	blobLen := int(int32(binary.BigEndian.Uint32(data[:bit32Size])))
	if blobLen < 0 || blobLen > len(data)-bit32Size {
		return nil, 0, fmt.Errorf("parseBlob: blob length %d exceeds buffer: %w", blobLen, ErrTruncatedBuffer)
	}

	blob := make([]byte, blobLen)
	copy(blob, data[bit32Size:bit32Size+blobLen])

	n := bit32Size + blobLen + padBytesNeeded(blobLen)
	if n > len(data) {
		n = len(data)
	}

	return blob, n, nil
}

// padBytesNeeded determines how many bytes are needed to fill up to the next
// 4 byte length.
func padBytesNeeded(elementLen int) int {
	return (4 - (elementLen % 4)) % 4
}
