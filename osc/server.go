package osc

import (
	"net"
	"sync"
	"time"

	"github.com/go-kit/kit/log"
)

var readBufPool = sync.Pool{
	New: func() interface{} {
		b := make([]byte, MaxPacketSize)
		return &b
	},
}

// Server receives OSC packets over UDP. It reads one datagram per Receive
// call and hands back the decoded Packet; scheduling, dispatch and retry are
// the caller's business.
type Server struct {
	// Addr is the UDP address to listen on, e.g. ":8765".
	Addr string

	// ReadTimeout bounds each Receive call. Zero means block until a
	// datagram arrives.
	ReadTimeout time.Duration

	// Logger reports read and decode failures. Defaults to a nop logger;
	// the codec itself never logs.
	Logger log.Logger

	conn net.PacketConn
}

// Listen binds the server's UDP socket.
func (s *Server) Listen() error {
	if s.Logger == nil {
		s.Logger = log.NewNopLogger()
	}

	conn, err := net.ListenPacket("udp", s.Addr)
	if err != nil {
		return err
	}
	s.conn = conn
	return nil
}

// LocalAddr returns the bound socket address, or nil before Listen.
func (s *Server) LocalAddr() net.Addr {
	if s.conn == nil {
		return nil
	}
	return s.conn.LocalAddr()
}

// Receive reads one datagram from the bound socket and decodes it. Decode
// failures are logged and returned; they are never converted to "no value".
func (s *Server) Receive() (Packet, net.Addr, error) {
	return s.ReceiveFrom(s.conn)
}

// ReceiveFrom reads one datagram from the given connection and decodes it.
func (s *Server) ReceiveFrom(c net.PacketConn) (Packet, net.Addr, error) {
	if s.Logger == nil {
		s.Logger = log.NewNopLogger()
	}

	if s.ReadTimeout != 0 {
		if err := c.SetReadDeadline(time.Now().Add(s.ReadTimeout)); err != nil {
			return nil, nil, err
		}
	}

	buf := readBufPool.Get().(*[]byte)
	defer readBufPool.Put(buf)

	n, a, err := c.ReadFrom(*buf)
	if err != nil {
		s.Logger.Log("event", "read failed", "err", err)
		return nil, a, err
	}

	data := make([]byte, n)
	copy(data, *buf)

	p, err := ParsePacket(data)
	if err != nil {
		s.Logger.Log("event", "decode failed", "from", a.String(), "err", err)
		return nil, a, err
	}

	return p, a, nil
}

// Close closes the bound socket.
func (s *Server) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}
