package osc

import (
	"fmt"
	"sort"
	"strings"
)

// Message represents a single OSC message. An OSC message consists of an OSC
// address pattern and zero or more arguments.
type Message struct {
	Address   string
	Arguments []Argument
}

// Verify that Message implements the Packet interface.
var _ Packet = (*Message)(nil)

// NewMessage returns a new Message. The address parameter is the OSC
// address. Any further values are appended with inferred type tags.
func NewMessage(addr string, args ...interface{}) (*Message, error) {
	m := &Message{Address: addr}
	if err := m.Append(args...); err != nil {
		return nil, err
	}
	return m, nil
}

// Clear clears the OSC address and all arguments.
func (m *Message) Clear() {
	m.Address = ""
	m.Arguments = m.Arguments[:0]
}

// Append appends values to the argument list, inferring each type tag from
// the value's native kind. Slices expand element by element and maps flatten
// to their key/value pairs (in key order) before expansion.
func (m *Message) Append(args ...interface{}) error {
	for _, a := range args {
		if expanded, ok := expandCollection(a); ok {
			if err := m.Append(expanded...); err != nil {
				return err
			}
			continue
		}

		arg, err := newArgument(a)
		if err != nil {
			return fmt.Errorf("Append: %w", err)
		}
		m.Arguments = append(m.Arguments, arg)
	}
	return nil
}

// AppendTyped appends values using an explicit type hint. A hinted 'i', 'f'
// or 'd' value that does not parse as a number is appended as a string
// instead; this leniency is kept for wire compatibility with existing
// callers. Values that parse but overflow the wire type fail with ErrRange.
// Collections expand as in Append, every element carrying the same hint.
func (m *Message) AppendTyped(tag TypeTag, args ...interface{}) error {
	for _, a := range args {
		if expanded, ok := expandCollection(a); ok {
			if err := m.AppendTyped(tag, expanded...); err != nil {
				return err
			}
			continue
		}

		arg, err := newTypedArgument(tag, a)
		if err != nil {
			return fmt.Errorf("AppendTyped: %w", err)
		}
		m.Arguments = append(m.Arguments, arg)
	}
	return nil
}

// expandCollection splits a slice or map value into its elements. Maps have
// no stable iteration order in Go, so keys are sorted; each pair expands as
// key then value.
func expandCollection(value interface{}) ([]interface{}, bool) {
	switch t := value.(type) {
	case []interface{}:
		return t, true
	case map[string]interface{}:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		out := make([]interface{}, 0, 2*len(t))
		for _, k := range keys {
			out = append(out, k, t[k])
		}
		return out, true
	default:
		return nil, false
	}
}

// InsertAt inserts a value (with inferred tag) at index i.
func (m *Message) InsertAt(i int, value interface{}) error {
	if i < 0 || i > len(m.Arguments) {
		return fmt.Errorf("InsertAt: index %d out of range: %w", i, ErrRange)
	}

	arg, err := newArgument(value)
	if err != nil {
		return fmt.Errorf("InsertAt: %w", err)
	}

	m.Arguments = append(m.Arguments, Argument{})
	copy(m.Arguments[i+1:], m.Arguments[i:])
	m.Arguments[i] = arg
	return nil
}

// RemoveAt removes the argument at index i and returns it.
func (m *Message) RemoveAt(i int) (Argument, error) {
	if i < 0 || i >= len(m.Arguments) {
		return Argument{}, fmt.Errorf("RemoveAt: index %d out of range: %w", i, ErrRange)
	}

	arg := m.Arguments[i]
	m.Arguments = append(m.Arguments[:i], m.Arguments[i+1:]...)
	return arg, nil
}

// Concat appends the arguments of other to this message. The other
// message's address is ignored.
func (m *Message) Concat(other *Message) {
	m.Arguments = append(m.Arguments, other.Arguments...)
}

// CountArguments returns the number of arguments.
func (m *Message) CountArguments() int {
	return len(m.Arguments)
}

// TypeTags returns the type tag string, leading comma included. Its length
// minus the comma always equals the argument count.
func (m *Message) TypeTags() string {
	tags := make([]byte, 0, len(m.Arguments)+1)
	tags = append(tags, ',')
	for _, a := range m.Arguments {
		tags = append(tags, byte(a.Tag))
	}
	return string(tags)
}

// String implements the fmt.Stringer interface.
func (m *Message) String() string {
	if m == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.Address)
	b.WriteByte(' ')
	b.WriteString(m.TypeTags())

	for _, a := range m.Arguments {
		switch v := a.Value.(type) {
		case nil:
			b.WriteString(" Nil")
		case Impulse:
			b.WriteString(" Impulse")
		case []byte:
			b.WriteString(" blob")
		case Timetag:
			fmt.Fprintf(&b, " %d", uint64(v))
		default:
			fmt.Fprintf(&b, " %v", v)
		}
	}

	return b.String()
}

// MarshalBinary implements the encoding.BinaryMarshaler interface. The wire
// form is the padded address, the padded type tag string, then each
// argument's payload in append order.
func (m *Message) MarshalBinary() ([]byte, error) {
	b, err := appendPaddedString(nil, m.Address)
	if err != nil {
		return nil, fmt.Errorf("MarshalBinary: %w", err)
	}

	if b, err = appendPaddedString(b, m.TypeTags()); err != nil {
		return nil, fmt.Errorf("MarshalBinary: %w", err)
	}

	for _, a := range m.Arguments {
		if b, err = appendArgument(b, a); err != nil {
			return nil, fmt.Errorf("MarshalBinary: %w", err)
		}
	}

	return b, nil
}

// NewMessageFromData returns a new Message created from the binary data.
func NewMessageFromData(data []byte) (*Message, error) {
	m := &Message{}
	if err := m.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return m, nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
// Decoded strings and blobs never alias the input buffer.
//
// A buffer whose first padded string starts with ',' decodes as an
// address-less message with that string as its type tag string. Bundle
// sub-elements produced by some OSC implementations are framed this way, so
// the shortcut is kept for compatibility.
func (m *Message) UnmarshalBinary(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("UnmarshalBinary: empty buffer: %w", ErrTruncatedBuffer)
	}

	if len(data)%bit32Size != 0 {
		return fmt.Errorf("UnmarshalBinary: buffer length %d is not 32-bit aligned: %w", len(data), ErrMalformedMessage)
	}

	first, n, err := parsePaddedString(data)
	if err != nil {
		return fmt.Errorf("UnmarshalBinary: %w", err)
	}
	rest := data[n:]

	var tags string
	switch {
	case strings.HasPrefix(first, "/"):
		m.Address = first
		if len(rest) == 0 {
			// Address only, no type tag string: a legal empty message.
			m.Arguments = nil
			return nil
		}
		if tags, n, err = parsePaddedString(rest); err != nil {
			return fmt.Errorf("UnmarshalBinary: %w", err)
		}
		rest = rest[n:]

	case strings.HasPrefix(first, ","):
		m.Address = ""
		tags = first

	default:
		return fmt.Errorf("UnmarshalBinary: %q is not an OSC address: %w", first, ErrMalformedMessage)
	}

	if len(tags) == 0 || tags[0] != ',' {
		return fmt.Errorf("UnmarshalBinary: type tag string %q lacks the leading comma: %w", tags, ErrMalformedMessage)
	}

	m.Arguments = nil
	if len(tags) > 1 {
		m.Arguments = make([]Argument, 0, len(tags)-1)
	}
	for _, c := range tags[1:] {
		read, ok := argReaders[TypeTag(c)]
		if !ok {
			return fmt.Errorf("UnmarshalBinary: no decoder for tag %q: %w", string(c), ErrUnknownTypeTag)
		}

		value, n, err := read(rest)
		if err != nil {
			return fmt.Errorf("UnmarshalBinary: tag %q: %w", string(c), err)
		}
		rest = rest[n:]

		m.Arguments = append(m.Arguments, Argument{Tag: TypeTag(c), Value: value})
	}

	return nil
}
