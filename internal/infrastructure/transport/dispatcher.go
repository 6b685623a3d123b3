package transport

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"labelprint/pkg/labelcmd"
	"labelprint/pkg/logger"
)

var tracer = otel.Tracer("labelprint/transport")

// DialFunc opens a sink to the printer at addr.
type DialFunc func(ctx context.Context, addr string) (Sink, error)

// TCPDialer returns a DialFunc for raw TCP printers.
func TCPDialer(opts TCPOptions) DialFunc {
	return func(ctx context.Context, addr string) (Sink, error) {
		return DialTCP(ctx, addr, opts)
	}
}

// Options control how a batch is streamed.
type Options struct {
	// PerDocument sends each label separately, waiting Delay between them.
	// Otherwise the whole batch is one write.
	PerDocument bool
	Delay       time.Duration
}

// Result reports what reached the printer. Printed counts whole documents.
type Result struct {
	Printed int
	Total   int
	State   State
}

// Complete reports whether every document was sent.
func (r Result) Complete() bool { return r.Printed == r.Total }

// Dispatcher streams batches to printers and remembers each printer's last
// known state.
type Dispatcher struct {
	dial DialFunc
	opts Options
	now  func() time.Time

	mu     sync.RWMutex
	states map[string]State
}

// NewDispatcher creates a dispatcher. dial may be nil when only Dispatch
// is used.
func NewDispatcher(dial DialFunc, opts Options) *Dispatcher {
	return &Dispatcher{
		dial:   dial,
		opts:   opts,
		now:    time.Now,
		states: make(map[string]State),
	}
}

// Print dials addr, sends batch and closes the connection.
func (d *Dispatcher) Print(ctx context.Context, addr string, batch labelcmd.Batch) (Result, error) {
	if d.dial == nil {
		return Result{Total: batch.Len()}, fmt.Errorf("transport: no dialer configured")
	}

	d.setState(addr, StatusConnecting, nil, 0)
	sink, err := d.dial(ctx, addr)
	if err != nil {
		st := d.setState(addr, StatusError, err, 0)
		return Result{Total: batch.Len(), State: st}, err
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil {
			logger.Warn(ctx, "close printer connection", "printer", addr, "error", cerr)
		}
		d.markClosed(addr)
	}()

	d.setState(addr, StatusConnected, nil, 0)
	return d.Dispatch(ctx, sink, addr, batch)
}

// Send is Print reduced to the number of documents delivered.
func (d *Dispatcher) Send(ctx context.Context, addr string, batch labelcmd.Batch) (int, error) {
	res, err := d.Print(ctx, addr, batch)
	return res.Printed, err
}

// Dispatch sends batch to an open sink. On failure Result.Printed holds the
// number of documents fully written before the error.
func (d *Dispatcher) Dispatch(ctx context.Context, sink Sink, printer string, batch labelcmd.Batch) (Result, error) {
	ctx, span := tracer.Start(ctx, "dispatch",
		trace.WithAttributes(
			attribute.String("printer", printer),
			attribute.String("dialect", string(batch.Dialect)),
			attribute.Int("documents", batch.Len()),
		))
	defer span.End()

	res := Result{Total: batch.Len()}
	d.setState(printer, StatusPrinting, nil, 0)

	var err error
	if d.opts.PerDocument {
		res.Printed, err = d.sendEach(ctx, sink, batch)
	} else {
		if err = sink.Send(ctx, batch.Bytes()); err == nil {
			res.Printed = res.Total
		}
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		res.State = d.setState(printer, StatusError, err, res.Printed)
		logger.Warn(ctx, "print dispatch failed",
			"printer", printer,
			"printed", res.Printed,
			"total", res.Total,
			"error", err,
		)
		return res, err
	}

	res.State = d.setState(printer, StatusConnected, nil, res.Printed)
	logger.Debug(ctx, "print dispatch complete", "printer", printer, "printed", res.Printed)
	return res, nil
}

func (d *Dispatcher) sendEach(ctx context.Context, sink Sink, batch labelcmd.Batch) (int, error) {
	printed := 0
	for i, doc := range batch.Documents {
		if i > 0 && d.opts.Delay > 0 {
			t := time.NewTimer(d.opts.Delay)
			select {
			case <-ctx.Done():
				t.Stop()
				return printed, ctx.Err()
			case <-t.C:
			}
		}
		if err := sink.Send(ctx, doc.Bytes()); err != nil {
			return printed, fmt.Errorf("document %d (%s): %w", i+1, doc.Code, err)
		}
		printed++
	}
	return printed, nil
}

// State returns the last known state of printer.
func (d *Dispatcher) State(printer string) State {
	d.mu.RLock()
	defer d.mu.RUnlock()

	st, ok := d.states[printer]
	if !ok {
		return State{Printer: printer, Status: StatusDisconnected}
	}
	return st
}

// States returns every known printer, ordered by name.
func (d *Dispatcher) States() []State {
	d.mu.RLock()
	out := make([]State, 0, len(d.states))
	for _, st := range d.states {
		out = append(out, st)
	}
	d.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Printer < out[j].Printer })
	return out
}

func (d *Dispatcher) setState(printer string, status Status, err error, printed int) State {
	d.mu.Lock()
	defer d.mu.Unlock()

	st, ok := d.states[printer]
	if !ok {
		st = State{Printer: printer}
	}
	st = st.with(status, err, d.now())
	st.Printed = printed
	d.states[printer] = st
	return st
}

// markClosed moves a healthy printer to disconnected. Errors are kept so
// the last failure stays visible.
func (d *Dispatcher) markClosed(printer string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	st, ok := d.states[printer]
	if !ok || st.Status == StatusError {
		return
	}
	d.states[printer] = st.with(StatusDisconnected, nil, d.now())
}
