package diag

import (
	"context"
	"time"

	"github.com/tbselectronics/tbsdecode/frame"
	"github.com/tbselectronics/tbsdecode/pg"
)

// Decode wraps pg.Decode with the trace hooks registered on ctx. It never
// changes the decoded result — only which hooks fire — so it is safe to
// use anywhere pg.Decode would be used directly.
func Decode(ctx context.Context, f frame.Frame) pg.Message {
	t := FromContext(ctx)

	if t.FrameExtracted != nil {
		t.FrameExtracted(f)
	}

	start := time.Now()
	m := pg.Decode(f)

	if unknown, ok := m.(pg.Unknown); ok {
		switch unknown.Reason {
		case pg.ReasonChecksumMismatch:
			if t.ChecksumMismatch != nil && len(f) >= 2 {
				want := f[len(f)-2]
				got := pg.Checksum(f[1 : len(f)-2])
				t.ChecksumMismatch(f, want, got)
			}
		case pg.ReasonUnrecognizedPGN:
			if t.UnrecognizedPGN != nil {
				t.UnrecognizedPGN(f)
			}
		}
		return m
	}

	if t.MessageDecoded != nil {
		t.MessageDecoded(m, time.Since(start))
	}

	return m
}
