// oscat sends and dumps Open Sound Control packets over UDP.
//
// Send a message, letting argument types be inferred or hinted:
//
//	oscat send --to localhost:8765 /filter/cutoff f:440.5 i:1 hello
//
// Dump every packet arriving on a port:
//
//	oscat listen --addr :8765
package main

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/urfave/cli/v2"

	"github.com/labomedia/go-oscodec/osc"
)

var logger = log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))

func main() {
	app := &cli.App{
		Name:  "oscat",
		Usage: "send and receive Open Sound Control packets",
		Commands: []*cli.Command{
			sendCommand(),
			listenCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log("err", err)
		os.Exit(1)
	}
}

func sendCommand() *cli.Command {
	return &cli.Command{
		Name:      "send",
		Usage:     "encode a message and send it as one UDP datagram",
		ArgsUsage: "/osc/address [tag:value | value]...",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "to", Value: "localhost:8765", Usage: "destination host:port"},
			&cli.BoolFlag{Name: "bundle", Usage: "wrap the message in an immediate bundle"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return fmt.Errorf("need an OSC address, e.g. /ping")
			}

			msg, err := osc.NewMessage(c.Args().First())
			if err != nil {
				return err
			}
			for _, tok := range c.Args().Tail() {
				if err := appendToken(msg, tok); err != nil {
					return err
				}
			}

			var packet osc.Packet = msg
			if c.Bool("bundle") {
				b := osc.NewBundle()
				if err := b.Append(msg); err != nil {
					return err
				}
				packet = b
			}

			client, err := osc.Dial(c.String("to"))
			if err != nil {
				return err
			}
			defer client.Close()

			if err := client.Send(packet); err != nil {
				return err
			}
			logger.Log("event", "sent", "to", c.String("to"), "packet", fmt.Sprint(packet))
			return nil
		},
	}
}

func listenCommand() *cli.Command {
	return &cli.Command{
		Name:  "listen",
		Usage: "bind a UDP port and print every decoded packet",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Value: ":8765", Usage: "listen address"},
			&cli.DurationFlag{Name: "timeout", Value: time.Second, Usage: "per-read deadline"},
		},
		Action: func(c *cli.Context) error {
			server := &osc.Server{
				Addr:        c.String("addr"),
				ReadTimeout: c.Duration("timeout"),
				Logger:      logger,
			}
			if err := server.Listen(); err != nil {
				return err
			}
			defer server.Close()
			logger.Log("event", "listening", "addr", server.LocalAddr().String())

			for {
				packet, from, err := server.Receive()
				if err != nil {
					if ne, ok := err.(net.Error); ok {
						if ne.Timeout() {
							continue
						}
						return err
					}
					// Decode failure, already logged; keep reading.
					continue
				}
				fmt.Printf("%s %s\n", from, packet)
			}
		},
	}
}

// appendToken appends one command line token to the message. A token like
// "f:3.14" carries an explicit type hint; anything else gets its type
// inferred (int, then float, then string).
func appendToken(m *osc.Message, tok string) error {
	if len(tok) >= 2 && tok[1] == ':' && strings.ContainsRune("ifdsbtTFNIrm", rune(tok[0])) {
		return appendHinted(m, osc.TypeTag(tok[0]), tok[2:])
	}

	if i, err := strconv.ParseInt(tok, 10, 32); err == nil {
		return m.Append(int32(i))
	}
	if f, err := strconv.ParseFloat(tok, 32); err == nil {
		return m.Append(float32(f))
	}
	return m.Append(tok)
}

func appendHinted(m *osc.Message, tag osc.TypeTag, value string) error {
	switch tag {
	case osc.TypeBlob:
		return m.AppendTyped(tag, []byte(value))

	case osc.TypeTimeTag:
		if value == "" || value == "now" {
			return m.AppendTyped(tag, osc.TimetagImmediate)
		}
		secs, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("time tag %q: %w", value, err)
		}
		return m.AppendTyped(tag, secs)

	case osc.TypeColor, osc.TypeMIDI:
		parts := strings.Split(value, ",")
		channels := make([]int, 0, len(parts))
		for _, p := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil {
				return fmt.Errorf("channel %q: %w", p, err)
			}
			channels = append(channels, n)
		}
		return m.AppendTyped(tag, channels)

	default:
		return m.AppendTyped(tag, value)
	}
}
