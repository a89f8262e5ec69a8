//Package osc implements the Open Sound Control 1.0 binary wire format:
//encoding typed arguments into OSC messages and bundles, and decoding
//binary buffers back into typed values.
//
//This implementation follows the Open Sound Control 1.0 Specification
//(http://opensoundcontrol.org/spec-1_0.html).
//
//Open Sound Control (OSC) is an open, transport-independent, message-based
//protocol developed for communication among computers, sound synthesizers,
//and other multimedia devices.
//
//Features
//
//- Supports OSC messages with the following TypeTags:
//
//	'i' (int32)
//	'f' (float32)
//	'd' (float64)
//	's' (string, Latin-1)
//	'b' ([]byte)
//	't' (Timetag)
//	'T' (true)
//	'F' (false)
//	'N' (nil)
//	'I' (Impulse)
//	'r' (Color)
//	'm' (MIDIMessage)
//
//- Supports OSC bundles, including TimeTags and nested bundles
//
//- A thin UDP client and server for moving encoded packets around
//
//Packets
//
//The unit of transmission of OSC is an OSC Packet, a contiguous block of
//binary data. The size of an OSC packet is always 32-bit aligned.
//
//OSC packets come in two flavors:
//
//OSC Messages: an OSC message consists of an OSC address pattern and zero
//or more OSC arguments.
//
//OSC Bundles: an OSC Bundle consists of an OSC Timetag, followed by zero or
//more OSC bundle elements. Each bundle element can be another OSC bundle
//(note this recursive definition: a bundle may contain bundles) or an OSC
//message.
//
//Usage
//
//Encoding:
//  msg, err := osc.NewMessage("/osc/address")
//  msg.Append(int32(111))
//  msg.Append(true)
//  msg.Append("hello")
//  data, err := msg.MarshalBinary()
//
//Decoding:
//  pkt, err := osc.ParsePacket(data)
//
//Sending over UDP:
//  client, err := osc.Dial("localhost:8765")
//  client.Send(msg)
package osc
