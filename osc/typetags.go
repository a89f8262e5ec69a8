package osc

// TypeTag is the one-character code identifying an argument's wire encoding.
type TypeTag rune

const (
	TypeInt32   TypeTag = 'i'
	TypeFloat32 TypeTag = 'f'
	TypeFloat64 TypeTag = 'd'
	TypeString  TypeTag = 's'
	TypeBlob    TypeTag = 'b'
	TypeTimeTag TypeTag = 't'
	TypeTrue    TypeTag = 'T'
	TypeFalse   TypeTag = 'F'
	TypeNil     TypeTag = 'N'
	TypeImpulse TypeTag = 'I'
	TypeColor   TypeTag = 'r'
	TypeMIDI    TypeTag = 'm'
	TypeInvalid TypeTag = 0
)

// InferTypeTag returns the OSC TypeTag for the given argument based on its
// native kind. Unknown kinds infer as TypeString; they are stringified when
// the argument is built.
func InferTypeTag(arg interface{}) TypeTag {
	switch t := arg.(type) {
	case bool:
		if t {
			return TypeTrue
		}
		return TypeFalse
	case nil:
		return TypeNil
	case int, int32, int64:
		return TypeInt32
	case float32, float64:
		return TypeFloat32
	case string:
		return TypeString
	case []byte:
		return TypeBlob
	case Timetag:
		return TypeTimeTag
	case Color:
		return TypeColor
	case MIDIMessage:
		return TypeMIDI
	case Impulse:
		return TypeImpulse
	case Argument:
		return t.Tag
	default:
		return TypeString
	}
}

// argReader decodes one argument payload from the start of data, returning
// the value and the number of bytes consumed.
type argReader func(data []byte) (interface{}, int, error)

// argReaders is the decoder registry, keyed by type tag. Read-only after
// package init.
var argReaders = map[TypeTag]argReader{
	TypeInt32:   readInt32,
	TypeFloat32: readFloat32,
	TypeFloat64: readFloat64,
	TypeString:  readString,
	TypeBlob:    readBlob,
	TypeTimeTag: readTimetag,
	TypeTrue:    func([]byte) (interface{}, int, error) { return true, 0, nil },
	TypeFalse:   func([]byte) (interface{}, int, error) { return false, 0, nil },
	TypeNil:     func([]byte) (interface{}, int, error) { return nil, 0, nil },
	TypeImpulse: func([]byte) (interface{}, int, error) { return Impulse{}, 0, nil },
	TypeColor:   readColor,
	TypeMIDI:    readMIDI,
}
