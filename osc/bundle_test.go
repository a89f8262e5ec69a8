package osc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBundleMarshalBinary(t *testing.T) {
	for _, tt := range bundleTestCases {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.obj.MarshalBinary()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.raw, got)
		})
	}
}

func TestBundleUnmarshalBinary(t *testing.T) {
	for _, tt := range bundleTestCases {
		t.Run(tt.name, func(t *testing.T) {
			b := new(Bundle)
			err := b.UnmarshalBinary(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.obj, b)
		})
	}
}

// A bundle holding a message and a nested bundle must reproduce the same
// element count, types and contents after a round trip.
func TestBundleNestedRoundTrip(t *testing.T) {
	inner := NewBundleWithTime(time.Unix(1404390615, 0))
	require.NoError(t, inner.Append(testMessage("/inner", int32(7), "deep")))

	outer := NewBundle()
	require.NoError(t, outer.Append(testMessage("/outer", piFloat32)))
	require.NoError(t, outer.Append(inner))

	raw, err := outer.MarshalBinary()
	require.NoError(t, err)
	require.Zero(t, len(raw)%4)

	got, err := NewBundleFromData(raw)
	require.NoError(t, err)

	require.Len(t, got.Elements, 2)
	assert.IsType(t, &Message{}, got.Elements[0])
	assert.IsType(t, &Bundle{}, got.Elements[1])
	assert.Equal(t, outer, got)
}

func TestBundleAppendRejectsNil(t *testing.T) {
	var other Packet
	require.Error(t, NewBundle().Append(other))
}

func TestBundleUnmarshalMissingLiteral(t *testing.T) {
	raw := cat(
		[]byte("#bundlx"), []byte{0},
		[]byte{0, 0, 0, 0, 0, 0, 0, 1},
	)
	err := new(Bundle).UnmarshalBinary(raw)
	require.ErrorIs(t, err, ErrMalformedMessage)
}

func TestBundleUnmarshalTruncated(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
	}{
		{"too_short_for_header", []byte("#bundle\x00")},
		{"element_over_declared", cat(
			[]byte("#bundle"), []byte{0},
			[]byte{0, 0, 0, 0, 0, 0, 0, 1},
			[]byte{0, 0, 0, 64}, // longer than what follows
			rawPing,
		)},
		{"dangling_length_prefix", cat(
			[]byte("#bundle"), []byte{0},
			[]byte{0, 0, 0, 0, 0, 0, 0, 1},
			[]byte{0, 0, 0, 16},
		)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := new(Bundle).UnmarshalBinary(tt.raw)
			require.ErrorIs(t, err, ErrTruncatedBuffer)
		})
	}
}

func TestBundleTimetagScheduling(t *testing.T) {
	b := NewBundleWithTime(time.Now().Add(time.Second))
	assert.InDelta(t, time.Second, b.Timetag.ExpiresIn(), float64(50*time.Millisecond))

	assert.Zero(t, NewBundle().Timetag.ExpiresIn())
}
