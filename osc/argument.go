package osc

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"golang.org/x/text/encoding/charmap"
)

// Argument is one (type tag, value) pair of an OSC message. The value is
// held in its canonical wire kind for the tag: int32 for 'i', float32 for
// 'f', float64 for 'd', string for 's', []byte for 'b', Timetag for 't',
// bool for 'T'/'F', nil for 'N', Impulse for 'I', Color for 'r' and
// MIDIMessage for 'm'.
type Argument struct {
	Tag   TypeTag
	Value interface{}
}

// Impulse is the value of an 'I' (impulse/bang) argument. It carries no
// payload; the tag alone is the datum.
type Impulse struct{}

// Color is a 32-bit RGBA color argument. Channel order is red, green, blue,
// alpha.
type Color [4]byte

// MIDIMessage is a 4-byte MIDI argument. Bytes from most significant to
// least significant are: port id, status byte, data1, data2.
type MIDIMessage [4]byte

// ColorFromInts builds a Color from a slice of channel values. The slice
// must hold exactly four integers in [0, 255].
func ColorFromInts(channels []int) (Color, error) {
	b, err := fourBytes(channels)
	return Color(b), err
}

// MIDIFromInts builds a MIDIMessage from a slice of byte values. The slice
// must hold exactly four integers in [0, 255].
func MIDIFromInts(channels []int) (MIDIMessage, error) {
	b, err := fourBytes(channels)
	return MIDIMessage(b), err
}

func fourBytes(channels []int) ([4]byte, error) {
	var b [4]byte
	if len(channels) != 4 {
		return b, fmt.Errorf("need exactly 4 channel values, got %d: %w", len(channels), ErrRange)
	}
	for i, c := range channels {
		if c < 0 || c > 255 {
			return b, fmt.Errorf("channel value %d outside [0, 255]: %w", c, ErrRange)
		}
		b[i] = byte(c)
	}
	return b, nil
}

// newArgument converts a native value into an Argument, inferring the type
// tag from the value's kind. Integers out of int32 range are an error;
// unsupported kinds are stringified.
func newArgument(value interface{}) (Argument, error) {
	switch t := value.(type) {
	case Argument:
		return t, nil
	case bool:
		if t {
			return Argument{TypeTrue, true}, nil
		}
		return Argument{TypeFalse, false}, nil
	case nil:
		return Argument{TypeNil, nil}, nil
	case int32:
		return Argument{TypeInt32, t}, nil
	case int:
		return argInt32(int64(t))
	case int64:
		return argInt32(t)
	case float32:
		return Argument{TypeFloat32, t}, nil
	case float64:
		return Argument{TypeFloat32, float32(t)}, nil
	case string:
		return Argument{TypeString, t}, nil
	case []byte:
		return Argument{TypeBlob, t}, nil
	case Timetag:
		return Argument{TypeTimeTag, t}, nil
	case Color:
		return Argument{TypeColor, t}, nil
	case MIDIMessage:
		return Argument{TypeMIDI, t}, nil
	case Impulse:
		return Argument{TypeImpulse, t}, nil
	default:
		return Argument{TypeString, fmt.Sprint(t)}, nil
	}
}

// newTypedArgument converts a value according to an explicit type hint.
// A hinted 'i', 'f' or 'd' value that does not parse as a number falls back
// to a string argument rather than failing the message; a value that parses
// but overflows the wire type is an ErrRange. Blob and time tag hints go
// straight to their encoders.
func newTypedArgument(tag TypeTag, value interface{}) (Argument, error) {
	switch tag {
	case TypeInt32:
		return coerceInt32(value)
	case TypeFloat32:
		return coerceFloat32(value)
	case TypeFloat64:
		return coerceFloat64(value)
	case TypeBlob:
		return coerceBlob(value)
	case TypeTimeTag:
		return coerceTimetag(value)
	case TypeTrue:
		return Argument{TypeTrue, true}, nil
	case TypeFalse:
		return Argument{TypeFalse, false}, nil
	case TypeNil:
		return Argument{TypeNil, nil}, nil
	case TypeImpulse:
		return Argument{TypeImpulse, Impulse{}}, nil
	case TypeColor:
		return coerceFour(value, TypeColor)
	case TypeMIDI:
		return coerceFour(value, TypeMIDI)
	default:
		// Anything else, the 's' hint included, encodes as a string.
		return Argument{TypeString, stringify(value)}, nil
	}
}

func argInt32(v int64) (Argument, error) {
	if v > math.MaxInt32 || v < math.MinInt32 {
		return Argument{}, fmt.Errorf("%d overflows int32: %w", v, ErrRange)
	}
	return Argument{TypeInt32, int32(v)}, nil
}

func coerceInt32(value interface{}) (Argument, error) {
	switch t := value.(type) {
	case int:
		return argInt32(int64(t))
	case int32:
		return Argument{TypeInt32, t}, nil
	case int64:
		return argInt32(t)
	case float32:
		return argInt32(int64(t))
	case float64:
		return argInt32(int64(t))
	case bool:
		if t {
			return Argument{TypeInt32, int32(1)}, nil
		}
		return Argument{TypeInt32, int32(0)}, nil
	case string:
		i, err := strconv.ParseInt(t, 10, 64)
		if errors.Is(err, strconv.ErrRange) {
			return Argument{}, fmt.Errorf("%q overflows int32: %w", t, ErrRange)
		}
		if err != nil {
			return Argument{TypeString, t}, nil
		}
		return argInt32(i)
	default:
		return Argument{TypeString, stringify(value)}, nil
	}
}

func coerceFloat32(value interface{}) (Argument, error) {
	f, fallback := coerceFloat(value, 32)
	if fallback != nil {
		return *fallback, nil
	}
	return Argument{TypeFloat32, float32(f)}, nil
}

func coerceFloat64(value interface{}) (Argument, error) {
	f, fallback := coerceFloat(value, 64)
	if fallback != nil {
		return *fallback, nil
	}
	return Argument{TypeFloat64, f}, nil
}

// coerceFloat resolves a float-hinted value to either a float or a fallback
// string argument.
func coerceFloat(value interface{}, bitSize int) (float64, *Argument) {
	switch t := value.(type) {
	case float32:
		return float64(t), nil
	case float64:
		return t, nil
	case int:
		return float64(t), nil
	case int32:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case string:
		f, err := strconv.ParseFloat(t, bitSize)
		if errors.Is(err, strconv.ErrSyntax) {
			return 0, &Argument{TypeString, t}
		}
		// An out-of-range literal saturates to an infinity, which the wire
		// format can carry.
		return f, nil
	default:
		return 0, &Argument{TypeString, stringify(value)}
	}
}

func coerceBlob(value interface{}) (Argument, error) {
	switch t := value.(type) {
	case []byte:
		return Argument{TypeBlob, t}, nil
	case string:
		enc, err := charmap.ISO8859_1.NewEncoder().String(t)
		if err != nil {
			return Argument{}, fmt.Errorf("blob string %q is not Latin-1: %w", t, ErrEncoding)
		}
		return Argument{TypeBlob, []byte(enc)}, nil
	default:
		return Argument{}, fmt.Errorf("cannot encode %T as a blob: %w", value, ErrEncoding)
	}
}

func coerceTimetag(value interface{}) (Argument, error) {
	switch t := value.(type) {
	case Timetag:
		return Argument{TypeTimeTag, t}, nil
	case time.Time:
		return Argument{TypeTimeTag, NewTimetagFromTime(t)}, nil
	case uint64:
		return Argument{TypeTimeTag, Timetag(t)}, nil
	case float64:
		// Seconds since the Unix epoch; zero and below mean immediately.
		if t <= 0 {
			return Argument{TypeTimeTag, TimetagImmediate}, nil
		}
		sec, frac := math.Modf(t)
		return Argument{TypeTimeTag, NewTimetagFromTime(time.Unix(int64(sec), int64(frac*1e9)))}, nil
	default:
		return Argument{}, fmt.Errorf("cannot encode %T as a time tag: %w", value, ErrEncoding)
	}
}

func coerceFour(value interface{}, tag TypeTag) (Argument, error) {
	switch t := value.(type) {
	case Color:
		if tag == TypeColor {
			return Argument{TypeColor, t}, nil
		}
		return Argument{TypeMIDI, MIDIMessage(t)}, nil
	case MIDIMessage:
		if tag == TypeMIDI {
			return Argument{TypeMIDI, t}, nil
		}
		return Argument{TypeColor, Color(t)}, nil
	case []int:
		b, err := fourBytes(t)
		if err != nil {
			return Argument{}, err
		}
		if tag == TypeColor {
			return Argument{TypeColor, Color(b)}, nil
		}
		return Argument{TypeMIDI, MIDIMessage(b)}, nil
	default:
		return Argument{}, fmt.Errorf("cannot encode %T with tag %c: %w", value, tag, ErrRange)
	}
}

func stringify(value interface{}) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

// appendArgument appends the wire form of an argument's payload to b.
// Dataless tags contribute nothing.
func appendArgument(b []byte, a Argument) ([]byte, error) {
	switch a.Tag {
	case TypeInt32:
		v, ok := a.Value.(int32)
		if !ok {
			return nil, argValueError(a)
		}
		return appendUint32(b, uint32(v)), nil

	case TypeFloat32:
		v, ok := a.Value.(float32)
		if !ok {
			return nil, argValueError(a)
		}
		return appendUint32(b, math.Float32bits(v)), nil

	case TypeFloat64:
		v, ok := a.Value.(float64)
		if !ok {
			return nil, argValueError(a)
		}
		b = append(b, make([]byte, bit64Size)...)
		binary.BigEndian.PutUint64(b[len(b)-bit64Size:], math.Float64bits(v))
		return b, nil

	case TypeString:
		return appendPaddedString(b, stringify(a.Value))

	case TypeBlob:
		v, ok := a.Value.([]byte)
		if !ok {
			return nil, argValueError(a)
		}
		return appendBlob(b, v), nil

	case TypeTimeTag:
		v, ok := a.Value.(Timetag)
		if !ok {
			return nil, argValueError(a)
		}
		return v.appendTo(b), nil

	case TypeTrue, TypeFalse, TypeNil, TypeImpulse:
		return b, nil

	case TypeColor:
		v, ok := a.Value.(Color)
		if !ok {
			return nil, argValueError(a)
		}
		return append(b, v[:]...), nil

	case TypeMIDI:
		v, ok := a.Value.(MIDIMessage)
		if !ok {
			return nil, argValueError(a)
		}
		return append(b, v[:]...), nil

	default:
		return nil, fmt.Errorf("no encoder for tag %q: %w", string(a.Tag), ErrUnknownTypeTag)
	}
}

func appendUint32(b []byte, v uint32) []byte {
	b = append(b, make([]byte, bit32Size)...)
	binary.BigEndian.PutUint32(b[len(b)-bit32Size:], v)
	return b
}

func argValueError(a Argument) error {
	return fmt.Errorf("value %T does not match tag %q: %w", a.Value, string(a.Tag), ErrEncoding)
}

////
// Argument payload readers
////

func readInt32(data []byte) (interface{}, int, error) {
	if len(data) < bit32Size {
		return nil, 0, fmt.Errorf("readInt32: need %d bytes, have %d: %w", bit32Size, len(data), ErrTruncatedBuffer)
	}
	return int32(binary.BigEndian.Uint32(data[:bit32Size])), bit32Size, nil
}

func readFloat32(data []byte) (interface{}, int, error) {
	if len(data) < bit32Size {
		return nil, 0, fmt.Errorf("readFloat32: need %d bytes, have %d: %w", bit32Size, len(data), ErrTruncatedBuffer)
	}
	return math.Float32frombits(binary.BigEndian.Uint32(data[:bit32Size])), bit32Size, nil
}

func readFloat64(data []byte) (interface{}, int, error) {
	if len(data) < bit64Size {
		return nil, 0, fmt.Errorf("readFloat64: need %d bytes, have %d: %w", bit64Size, len(data), ErrTruncatedBuffer)
	}
	return math.Float64frombits(binary.BigEndian.Uint64(data[:bit64Size])), bit64Size, nil
}

func readString(data []byte) (interface{}, int, error) {
	s, n, err := parsePaddedString(data)
	if err != nil {
		return nil, 0, err
	}
	return s, n, nil
}

func readBlob(data []byte) (interface{}, int, error) {
	b, n, err := parseBlob(data)
	if err != nil {
		return nil, 0, err
	}
	return b, n, nil
}

func readTimetag(data []byte) (interface{}, int, error) {
	t, n, err := parseTimetag(data)
	if err != nil {
		return nil, 0, err
	}
	return t, n, nil
}

func readColor(data []byte) (interface{}, int, error) {
	if len(data) < 4 {
		return nil, 0, fmt.Errorf("readColor: need 4 bytes, have %d: %w", len(data), ErrTruncatedBuffer)
	}
	return Color{data[0], data[1], data[2], data[3]}, 4, nil
}

func readMIDI(data []byte) (interface{}, int, error) {
	if len(data) < 4 {
		return nil, 0, fmt.Errorf("readMIDI: need 4 bytes, have %d: %w", len(data), ErrTruncatedBuffer)
	}
	return MIDIMessage{data[0], data[1], data[2], data[3]}, 4, nil
}
