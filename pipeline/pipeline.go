// Package pipeline wires the frame extractor and PG decoder into a
// two-stage pipeline: a byte source feeds one goroutine that extracts
// frames, which feeds a second goroutine that decodes them,
// communicating over bounded channels.
package pipeline

import (
	"context"

	"github.com/tbselectronics/tbsdecode/diag"
	"github.com/tbselectronics/tbsdecode/frame"
	"github.com/tbselectronics/tbsdecode/pg"
	"github.com/tbselectronics/tbsdecode/transport"
)

// chanCapacity is the bounded channel capacity between stages, capping
// how far a slow decode stage can let the extractor run ahead.
const chanCapacity = 5

// Run starts the frame-extraction and decode stages reading from
// source, and returns a channel of decoded Messages. The returned
// channel is closed once source's Chunks channel closes (after
// draining any trailing complete frame) or ctx is done, whichever
// happens first. Every frame extracted is decoded, including Unknown
// results — callers that want to drop Unknown messages can filter the
// returned channel themselves.
func Run(ctx context.Context, source transport.ByteSource) <-chan pg.Message {
	return RunBuffered(ctx, source, chanCapacity)
}

// RunBuffered is Run with an explicit inter-stage channel capacity, for
// callers that tune backpressure through configuration. A capacity of
// zero or less falls back to the default.
func RunBuffered(ctx context.Context, source transport.ByteSource, capacity int) <-chan pg.Message {
	if capacity <= 0 {
		capacity = chanCapacity
	}

	frames := make(chan frame.Frame, capacity)
	messages := make(chan pg.Message, capacity)

	go frame.Run(ctx, source.Chunks(), frames)
	go decodeStage(ctx, frames, messages)

	return messages
}

func decodeStage(ctx context.Context, in <-chan frame.Frame, out chan<- pg.Message) {
	defer close(out)

	t := diag.FromContext(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case f, ok := <-in:
			if !ok {
				return
			}
			m := diag.Decode(ctx, f)
			select {
			case out <- m:
			case <-ctx.Done():
				if t.FrameDropped != nil {
					t.FrameDropped(m)
				}
				return
			}
		}
	}
}
