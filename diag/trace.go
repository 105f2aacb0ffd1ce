// Package diag provides the diagnostic trace hooks used to observe
// decoding and transport activity without coupling the core frame/pg
// packages to any particular logging backend.
package diag

import (
	"context"
	"reflect"
	"time"

	"github.com/charmbracelet/log"
	"github.com/imdario/mergo"

	"github.com/tbselectronics/tbsdecode/pg"
)

// unique type to prevent assignment from outside this package.
type traceContextKey struct{}

// Trace defines the observability hooks fired while a byte stream is
// extracted, decoded and dispatched. Any hook left nil is a no-op; hooks
// registered with a parent context via WithTrace are still invoked,
// with the innermost trace's hooks running first.
type Trace struct {
	// FrameExtracted is called once per Frame produced by the frame
	// extractor, before decoding.
	FrameExtracted func(f []byte)

	// BufferTrimmed reports a number of scratch-buffer bytes discarded
	// for want of a terminating delimiter. The frame extractor and the
	// pipeline do not call it; it fires only where a caller invokes it.
	BufferTrimmed func(discarded int)

	// ChecksumMismatch is called when a frame's trailing checksum byte
	// does not match the computed checksum.
	ChecksumMismatch func(f []byte, want, got byte)

	// UnrecognizedPGN is called when a frame's (PGN, length) pair
	// matches no dispatch entry.
	UnrecognizedPGN func(f []byte)

	// MessageDecoded is called after a frame is successfully decoded
	// into anything other than Unknown.
	MessageDecoded func(m pg.Message, d time.Duration)

	// FrameDropped is called when a decoded frame could not be
	// delivered downstream (for example, a full output channel during
	// shutdown).
	FrameDropped func(m pg.Message)
}

// FromContext returns the Trace associated with ctx, or a zero-valued
// Trace (every hook nil) if none was registered.
func FromContext(ctx context.Context) *Trace {
	t, ok := ctx.Value(traceContextKey{}).(*Trace)
	if !ok {
		return &Trace{}
	}
	return t
}

// WithTrace returns a context carrying trace in addition to any trace
// already registered on ctx. Hooks set on trace run before any
// previously registered hooks for the same event.
func WithTrace(ctx context.Context, trace *Trace) context.Context {
	if trace == nil {
		panic("nil trace")
	}
	old := FromContext(ctx)
	trace.compose(old)
	return context.WithValue(ctx, traceContextKey{}, trace)
}

// compose modifies t so that, for every hook t leaves nil, it falls back
// to old's hook; for every hook set in both, t's hook runs first.
func (t *Trace) compose(old *Trace) {
	if old == nil {
		return
	}
	tv := reflect.ValueOf(t).Elem()
	ov := reflect.ValueOf(old).Elem()
	structType := tv.Type()
	for i := 0; i < structType.NumField(); i++ {
		tf := tv.Field(i)
		if tf.Type().Kind() != reflect.Func {
			continue
		}
		of := ov.Field(i)
		if of.IsNil() {
			continue
		}
		if tf.IsNil() {
			tf.Set(of)
			continue
		}

		hookType := tf.Type()
		tfCopy := reflect.ValueOf(tf.Interface())
		newFunc := reflect.MakeFunc(hookType, func(args []reflect.Value) []reflect.Value {
			tfCopy.Call(args)
			return of.Call(args)
		})
		tv.Field(i).Set(newFunc)
	}
}

// WithDefaults fills every nil hook on trace from defaults in place,
// using mergo so that a caller supplying a partially-populated Trace
// (e.g. only ChecksumMismatch) still gets every other default hook.
func WithDefaults(trace *Trace, defaults *Trace) *Trace {
	_ = mergo.Merge(trace, defaults)
	return trace
}

// NoOpHooks is a Trace with every hook nil, usable as an explicit
// opt-out default.
var NoOpHooks = &Trace{}

// LoggingHooks logs every event via charmbracelet/log at an appropriate
// level: warnings for malformed input, debug for routine frame/message
// traffic.
var LoggingHooks = &Trace{
	FrameExtracted: func(f []byte) {
		log.Debug("frame extracted", "bytes", len(f))
	},
	BufferTrimmed: func(discarded int) {
		log.Warn("scratch buffer trimmed", "discarded", discarded)
	},
	ChecksumMismatch: func(f []byte, want, got byte) {
		log.Warn("checksum mismatch", "want", want, "got", got, "len", len(f))
	},
	UnrecognizedPGN: func(f []byte) {
		if len(f) < 5 {
			log.Warn("unrecognized pgn", "frame", f)
			return
		}
		log.Warn("unrecognized pgn", "pgn_hi", f[3], "pgn_lo", f[4], "len", len(f))
	},
	MessageDecoded: func(m pg.Message, d time.Duration) {
		log.Debug("message decoded", "type", reflect.TypeOf(m), "took", d)
	},
	FrameDropped: func(m pg.Message) {
		log.Warn("message dropped", "type", reflect.TypeOf(m))
	},
}
