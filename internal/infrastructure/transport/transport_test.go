package transport

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labelprint/pkg/labelcmd"
)

func testBatch(t *testing.T, codes ...string) labelcmd.Batch {
	t.Helper()
	b, err := labelcmd.EncodeBatch(codes, labelcmd.Barcode, labelcmd.DialectZPL)
	require.NoError(t, err)
	return b
}

// listen starts a one-shot print server and returns its address and a
// channel yielding everything it received.
func listen(t *testing.T) (string, <-chan []byte) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	out := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			close(out)
			return
		}
		defer conn.Close()
		data, _ := io.ReadAll(conn)
		out <- data
	}()
	return ln.Addr().String(), out
}

// failingSink accepts ok sends, then fails.
type failingSink struct {
	ok   int
	sent [][]byte
}

func (s *failingSink) Send(_ context.Context, data []byte) error {
	if len(s.sent) >= s.ok {
		return errors.New("paper out")
	}
	s.sent = append(s.sent, data)
	return nil
}

func (s *failingSink) Close() error { return nil }

func TestDispatcher_Print_TCP(t *testing.T) {
	addr, received := listen(t)
	batch := testBatch(t, "A1", "A2", "A3")

	opts := DefaultTCPOptions()
	opts.ChunkSize = 7
	d := NewDispatcher(TCPDialer(opts), Options{})

	res, err := d.Print(context.Background(), addr, batch)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Printed)
	assert.True(t, res.Complete())

	select {
	case data := <-received:
		assert.Equal(t, batch.Bytes(), data)
	case <-time.After(5 * time.Second):
		t.Fatal("printer received nothing")
	}

	assert.Equal(t, StatusDisconnected, d.State(addr).Status)
	assert.Equal(t, 3, d.State(addr).Printed)
}

func TestDispatcher_Print_PerDocument(t *testing.T) {
	addr, received := listen(t)
	batch := testBatch(t, "B1", "B2")

	d := NewDispatcher(TCPDialer(DefaultTCPOptions()), Options{PerDocument: true, Delay: time.Millisecond})
	res, err := d.Print(context.Background(), addr, batch)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Printed)

	data := <-received
	want := append(batch.Documents[0].Bytes(), batch.Documents[1].Bytes()...)
	assert.Equal(t, want, data)
}

func TestDispatcher_Print_DialError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	d := NewDispatcher(TCPDialer(TCPOptions{DialTimeout: time.Second}), Options{})
	res, err := d.Print(context.Background(), addr, testBatch(t, "C1"))
	require.Error(t, err)
	assert.Equal(t, 0, res.Printed)
	assert.Equal(t, StatusError, res.State.Status)
	assert.NotEmpty(t, d.State(addr).LastError)
}

func TestDispatcher_PartialFailure(t *testing.T) {
	sink := &failingSink{ok: 2}
	batch := testBatch(t, "D1", "D2", "D3", "D4")

	d := NewDispatcher(nil, Options{PerDocument: true})
	res, err := d.Dispatch(context.Background(), sink, "shelf", batch)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "document 3 (D3)")
	assert.Equal(t, 2, res.Printed)
	assert.Equal(t, 4, res.Total)
	assert.False(t, res.Complete())
	assert.Equal(t, StatusError, res.State.Status)
	assert.Contains(t, d.State("shelf").LastError, "paper out")

	// ordering preserved
	require.Len(t, sink.sent, 2)
	assert.Equal(t, batch.Documents[0].Bytes(), sink.sent[0])
	assert.Equal(t, batch.Documents[1].Bytes(), sink.sent[1])
}

func TestDispatcher_ContextCancelledDuringDelay(t *testing.T) {
	var buf bytes.Buffer
	d := NewDispatcher(nil, Options{PerDocument: true, Delay: time.Hour})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	res, err := d.Dispatch(ctx, NewWriterSink(&buf), "slow", testBatch(t, "E1", "E2"))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, res.Printed)
}

func TestDispatcher_NoDialer(t *testing.T) {
	_, err := NewDispatcher(nil, Options{}).Print(context.Background(), "x:9100", testBatch(t, "F1"))
	assert.Error(t, err)
}

func TestDispatcher_States(t *testing.T) {
	d := NewDispatcher(nil, Options{})
	_, _ = d.Dispatch(context.Background(), NewWriterSink(io.Discard), "b", testBatch(t, "G1"))
	_, _ = d.Dispatch(context.Background(), NewWriterSink(io.Discard), "a", testBatch(t, "G2"))

	states := d.States()
	require.Len(t, states, 2)
	assert.Equal(t, "a", states[0].Printer)
	assert.Equal(t, StatusConnected, states[0].Status)
	assert.Equal(t, StatusDisconnected, d.State("unknown").Status)
}

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	s := NewWriterSink(&buf)

	require.NoError(t, s.Send(context.Background(), []byte("^XA")))
	require.NoError(t, s.Close())
	assert.Equal(t, "^XA", buf.String())
	assert.ErrorIs(t, s.Send(context.Background(), []byte("^XZ")), ErrClosed)
}

func TestState_Connected(t *testing.T) {
	assert.True(t, State{Status: StatusPrinting}.Connected())
	assert.True(t, State{Status: StatusConnected}.Connected())
	assert.False(t, State{Status: StatusError}.Connected())
}
