// Package replay implements a transport.ByteSource that republishes a
// previously captured byte dump from an io.Reader, split into chunks
// of at most a configured size. It exists for offline testing and demos (no
// hardware required) and to deliberately exercise frame splitting
// across arbitrary chunk boundaries.
package replay

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

// DefaultChunkSize matches a typical BLE ATT MTU payload once the
// 3-byte ATT header is subtracted (20 bytes is the long-standing BLE
// 4.0 default before MTU negotiation).
const DefaultChunkSize = 20

// Source reads from an io.Reader and republishes its content as chunks
// of at most chunkSize bytes; a chunk is shorter when a single read of
// the reader returns fewer bytes. Source has no cancellation of its
// own: closing a provided io.Reader is the caller's responsibility.
type Source struct {
	out chan []byte
	err error
}

// New starts reading from r in a background goroutine, chunked at
// chunkSize bytes (or DefaultChunkSize if chunkSize <= 0), and returns
// a Source ready to use as a transport.ByteSource. The returned
// Source's Chunks channel closes when r is exhausted or returns an
// error other than io.EOF.
func New(r io.Reader, chunkSize int) *Source {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	s := &Source{out: make(chan []byte)}

	go func() {
		defer close(s.out)

		br := bufio.NewReader(r)
		buf := make([]byte, chunkSize)
		for {
			n, err := br.Read(buf)
			if n > 0 {
				chunk := make([]byte, n)
				copy(chunk, buf[:n])
				s.out <- chunk
			}
			if err != nil {
				if err != io.EOF {
					s.err = errors.Wrap(err, "replay: reading capture")
				}
				return
			}
		}
	}()

	return s
}

// Chunks implements transport.ByteSource.
func (s *Source) Chunks() <-chan []byte { return s.out }

// Err implements transport.ByteSource.
func (s *Source) Err() error { return s.err }
