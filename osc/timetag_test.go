package osc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImmediateTimetagWire(t *testing.T) {
	b, err := TimetagImmediate.MarshalBinary()
	require.NoError(t, err)

	// The sentinel is exactly 63 zero bits and a trailing one.
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 1}, b)

	tt, n, err := parseTimetag(b)
	require.NoError(t, err)
	assert.Equal(t, bit64Size, n)
	assert.True(t, tt.IsImmediate())
}

func TestTimetagFromTime(t *testing.T) {
	now := time.Date(2014, time.July, 3, 12, 30, 15, 500e6, time.UTC)
	tt := NewTimetagFromTime(now)

	assert.Equal(t, uint32(now.Unix()+secondsFrom1900To1970), tt.SecondsSinceEpoch())
	// Half a second is half the 32-bit fractional range.
	assert.Equal(t, uint32(1<<31), tt.FractionalSecond())
	assert.False(t, tt.IsImmediate())

	got := tt.Time()
	assert.WithinDuration(t, now, got, time.Microsecond)
}

func TestTimetagRoundTrip(t *testing.T) {
	tt := NewTimetagFromTime(time.Unix(1404390615, 250e6))

	b, err := tt.MarshalBinary()
	require.NoError(t, err)

	got, _, err := parseTimetag(b)
	require.NoError(t, err)
	assert.Equal(t, tt, got)
}

func TestParseTimetagTruncated(t *testing.T) {
	_, _, err := parseTimetag([]byte{0, 0, 0, 0, 0, 0, 1})
	require.ErrorIs(t, err, ErrTruncatedBuffer)
}

func TestTimetagExpiresIn(t *testing.T) {
	tests := []struct {
		name string
		t    Timetag
		want time.Duration
	}{
		{"one_second", NewTimetagFromTime(time.Now().Add(time.Second)), time.Second},
		{"immediate", NewImmediateTimetag(), 0},
		{"late", NewTimetagFromTime(time.Now().Add(-time.Second)), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.t.ExpiresIn()
			assert.Equal(t, tt.want, got.Round(100*time.Millisecond))
		})
	}
}
