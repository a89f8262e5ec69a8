package osc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorFromInts(t *testing.T) {
	c, err := ColorFromInts([]int{255, 128, 0, 255})
	require.NoError(t, err)
	assert.Equal(t, Color{255, 128, 0, 255}, c)

	_, err = ColorFromInts([]int{255, 128, 0})
	require.ErrorIs(t, err, ErrRange)

	_, err = ColorFromInts([]int{255, 128, 0, 256})
	require.ErrorIs(t, err, ErrRange)

	_, err = ColorFromInts([]int{-1, 0, 0, 0})
	require.ErrorIs(t, err, ErrRange)
}

func TestMIDIFromInts(t *testing.T) {
	m, err := MIDIFromInts([]int{0, 0x90, 60, 127})
	require.NoError(t, err)
	assert.Equal(t, MIDIMessage{0, 0x90, 60, 127}, m)

	_, err = MIDIFromInts([]int{0, 0x90, 60, 127, 0})
	require.ErrorIs(t, err, ErrRange)
}

func TestInferTypeTag(t *testing.T) {
	tests := []struct {
		value interface{}
		want  TypeTag
	}{
		{int32(1), TypeInt32},
		{42, TypeInt32},
		{int64(1), TypeInt32},
		{float32(1), TypeFloat32},
		{1.5, TypeFloat32},
		{"s", TypeString},
		{[]byte{1}, TypeBlob},
		{TimetagImmediate, TypeTimeTag},
		{true, TypeTrue},
		{false, TypeFalse},
		{nil, TypeNil},
		{Impulse{}, TypeImpulse},
		{Color{}, TypeColor},
		{MIDIMessage{}, TypeMIDI},
		{struct{}{}, TypeString},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, InferTypeTag(tt.value), "InferTypeTag(%#v)", tt.value)
	}
}

// Every scalar reader must report a short buffer instead of producing a
// zero value.
func TestReadersRejectShortBuffers(t *testing.T) {
	short := []byte{1, 2, 3}
	tests := []struct {
		name string
		read argReader
	}{
		{"int32", readInt32},
		{"float32", readFloat32},
		{"float64", readFloat64},
		{"timetag", readTimetag},
		{"color", readColor},
		{"midi", readMIDI},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := tt.read(short)
			require.ErrorIs(t, err, ErrTruncatedBuffer)
		})
	}
}

func TestDatalessReadersConsumeNothing(t *testing.T) {
	for _, tag := range []TypeTag{TypeTrue, TypeFalse, TypeNil, TypeImpulse} {
		_, n, err := argReaders[tag](nil)
		require.NoError(t, err)
		assert.Zero(t, n, "tag %c", tag)
	}
}

func TestAppendArgumentRejectsMismatchedValue(t *testing.T) {
	_, err := appendArgument(nil, Argument{TypeInt32, "not an int"})
	require.ErrorIs(t, err, ErrEncoding)
}
