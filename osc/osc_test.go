package osc

import "math"

// Shared wire fixtures, hand-assembled so the tests pin the exact byte
// layout rather than whatever the codec happens to produce.

type testCase struct {
	name    string
	obj     Packet
	raw     []byte
	wantErr bool
}

// testMessage builds a message from native values, panicking on bad test
// input.
func testMessage(addr string, args ...interface{}) *Message {
	m, err := NewMessage(addr, args...)
	if err != nil {
		panic(err)
	}
	return m
}

func cat(segments ...[]byte) []byte {
	var out []byte
	for _, s := range segments {
		out = append(out, s...)
	}
	return out
}

// piFloat32 is the float32 carried by the /ping reference vector,
// 0x40490FD0 on the wire.
var piFloat32 = math.Float32frombits(0x40490FD0)

var (
	rawPing = cat(
		[]byte("/ping"), []byte{0, 0, 0},
		[]byte(",f"), []byte{0, 0},
		[]byte{0x40, 0x49, 0x0F, 0xD0},
	)

	rawCheese = cat(
		[]byte("/cheese/cheddar"), []byte{0},
		[]byte(",s"), []byte{0, 0},
		[]byte("brie"), []byte{0, 0, 0, 0},
	)

	rawHamEgg = cat(
		[]byte("/ham/egg"), []byte{0, 0, 0, 0},
		[]byte(",si"), []byte{0},
		[]byte("pig"), []byte{0},
		[]byte{0, 0, 0, 6},
	)
)

var messageTestCases = []testCase{
	{
		name: "no_arguments",
		obj:  testMessage("/a"),
		raw:  cat([]byte("/a"), []byte{0, 0}, []byte(","), []byte{0, 0, 0}),
	},
	{
		name: "ping_float",
		obj:  testMessage("/ping", piFloat32),
		raw:  rawPing,
	},
	{
		name: "ham_egg_string_int",
		obj:  testMessage("/ham/egg", "pig", int32(6)),
		raw:  rawHamEgg,
	},
	{
		name: "cheese_string",
		obj:  testMessage("/cheese/cheddar", "brie"),
		raw:  rawCheese,
	},
	{
		name: "blob",
		obj:  testMessage("/b", []byte{1, 2, 3}),
		raw: cat(
			[]byte("/b"), []byte{0, 0},
			[]byte(",b"), []byte{0, 0},
			[]byte{0, 0, 0, 3}, []byte{1, 2, 3, 0},
		),
	},
	{
		name: "dataless_tags",
		obj:  testMessage("/flags", true, false, nil, Impulse{}),
		raw: cat(
			[]byte("/flags"), []byte{0, 0},
			[]byte(",TFNI"), []byte{0, 0, 0},
		),
	},
	{
		name: "color_and_midi",
		obj:  testMessage("/paint", Color{255, 0, 0, 255}, MIDIMessage{0, 0x90, 60, 127}),
		raw: cat(
			[]byte("/paint"), []byte{0, 0},
			[]byte(",rm"), []byte{0},
			[]byte{255, 0, 0, 255},
			[]byte{0, 0x90, 60, 127},
		),
	},
}

var bundleTestCases = []testCase{
	{
		name: "immediate_two_messages",
		obj: &Bundle{
			Timetag: TimetagImmediate,
			Elements: []Packet{
				testMessage("/ping", piFloat32),
				testMessage("/cheese/cheddar", "brie"),
			},
		},
		raw: cat(
			[]byte("#bundle"), []byte{0},
			[]byte{0, 0, 0, 0, 0, 0, 0, 1},
			[]byte{0, 0, 0, 16}, rawPing,
			[]byte{0, 0, 0, 28}, rawCheese,
		),
	},
	{
		name: "empty",
		obj:  &Bundle{Timetag: TimetagImmediate},
		raw: cat(
			[]byte("#bundle"), []byte{0},
			[]byte{0, 0, 0, 0, 0, 0, 0, 1},
		),
	},
}
