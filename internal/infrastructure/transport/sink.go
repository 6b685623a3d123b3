package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"
)

// ErrClosed is returned by Send after Close.
var ErrClosed = errors.New("transport: sink closed")

// Sink accepts raw printer commands.
type Sink interface {
	Send(ctx context.Context, data []byte) error
	Close() error
}

// TCPOptions configure a raw socket connection.
type TCPOptions struct {
	DialTimeout  time.Duration
	WriteTimeout time.Duration
	// ChunkSize bounds a single write; zero writes everything at once.
	ChunkSize int
}

// DefaultTCPOptions match common port 9100 print servers.
func DefaultTCPOptions() TCPOptions {
	return TCPOptions{
		DialTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ChunkSize:    512,
	}
}

// TCPSink writes to a raw print port.
type TCPSink struct {
	addr string
	opts TCPOptions

	mu     sync.Mutex
	conn   net.Conn
	closed bool
}

// DialTCP connects to addr ("host:port").
func DialTCP(ctx context.Context, addr string, opts TCPOptions) (*TCPSink, error) {
	d := net.Dialer{Timeout: opts.DialTimeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return &TCPSink{addr: addr, opts: opts, conn: conn}, nil
}

// Addr returns the remote address.
func (s *TCPSink) Addr() string { return s.addr }

// Send writes data in chunks. It stops between chunks when ctx is done.
func (s *TCPSink) Send(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	chunk := s.opts.ChunkSize
	if chunk <= 0 {
		chunk = len(data)
	}

	for off := 0; off < len(data); off += chunk {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := min(off+chunk, len(data))

		if s.opts.WriteTimeout > 0 {
			if err := s.conn.SetWriteDeadline(time.Now().Add(s.opts.WriteTimeout)); err != nil {
				return fmt.Errorf("set write deadline: %w", err)
			}
		}
		if _, err := s.conn.Write(data[off:end]); err != nil {
			return fmt.Errorf("write %s: %w", s.addr, err)
		}
	}
	return nil
}

// Close closes the connection. It is safe to call more than once.
func (s *TCPSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.conn.Close()
}

// WriterSink sends to any io.Writer, e.g. a file or stdout.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink wraps w. Close closes w when it is an io.Closer.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Send(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.w == nil {
		return ErrClosed
	}
	_, err := s.w.Write(data)
	return err
}

func (s *WriterSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.w
	s.w = nil
	if c, ok := w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
