package frame

import "bytes"

// maxRetainedSize bounds the scratch buffer's growth in the absence of a
// valid frame.
const maxRetainedSize = 1024

// Extractor converts an arbitrarily chunked byte stream into a sequence of
// complete, de-stuffed Frames. It is not safe for concurrent use — each
// byte source owns exactly one Extractor, matching a single-producer/
// single-consumer usage model.
//
// The zero value is ready to use.
type Extractor struct {
	scratch []byte
}

// NewExtractor returns a ready-to-use Extractor. Provided for symmetry with
// the rest of this package's constructors; equivalent to new(Extractor).
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Feed appends chunk to the Extractor's scratch buffer, extracts every
// complete frame now available, and returns them in the order their
// terminating delimiter appears in the stream. Malformed or incomplete
// content is retained or silently trimmed per the buffer discipline
// below — Feed never returns an error.
func (e *Extractor) Feed(chunk []byte) []Frame {
	if len(chunk) > 0 {
		e.scratch = append(e.scratch, chunk...)
	}

	var frames []Frame
	lastMatchEnd := 0

	for pos := 0; pos < len(e.scratch); {
		start := bytes.IndexByte(e.scratch[pos:], startDelimiter)
		if start < 0 {
			break
		}
		start += pos

		end := bytes.IndexByte(e.scratch[start+1:], endDelimiter)
		if end < 0 {
			break
		}
		end += start + 1

		// De-stuff everything up to the terminating delimiter, then
		// restore it. Running the terminator itself through Destuff
		// would let a raw escape byte directly before it swallow the
		// delimiter; instead that escape has no following byte and is
		// dropped.
		raw := e.scratch[start:end]
		frames = append(frames, Frame(append(Destuff(raw), endDelimiter)))

		lastMatchEnd = end + 1
		pos = lastMatchEnd
	}

	e.trim(lastMatchEnd)

	return frames
}

// trim discards bytes up to matchEnd (the end of the last successful
// match) and then, if the retained buffer still exceeds maxRetainedSize,
// drops everything before the first remaining start delimiter — or
// clears the buffer entirely if none remains.
func (e *Extractor) trim(matchEnd int) {
	if matchEnd > 0 {
		e.scratch = append(e.scratch[:0], e.scratch[matchEnd:]...)
	}

	if len(e.scratch) <= maxRetainedSize {
		return
	}

	if next := bytes.IndexByte(e.scratch, startDelimiter); next >= 0 {
		e.scratch = append(e.scratch[:0], e.scratch[next:]...)
	} else {
		e.scratch = e.scratch[:0]
	}
}

// Len reports the number of bytes currently retained in scratch, for
// tests asserting the scratch buffer stays bounded.
func (e *Extractor) Len() int {
	return len(e.scratch)
}
