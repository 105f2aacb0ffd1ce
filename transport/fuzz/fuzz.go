// Package fuzz generates a randomized mixture of well-formed frames and
// broken fragments, chunked at random boundaries, to exercise the frame
// extractor's tolerance of noise. It is a test and demo tool only —
// never part of the decode path.
package fuzz

import (
	"math/rand"

	"github.com/tbselectronics/tbsdecode/frame"
	"github.com/tbselectronics/tbsdecode/pg"
	"github.com/tbselectronics/tbsdecode/transport"
)

// workingBufferSize is the minimum number of pending bytes kept on hand
// before a chunk is cut; chunk sizes range from 40% to 100% of it, so
// frames regularly straddle chunk boundaries.
const workingBufferSize = 20

// examplePackets are complete, checksummed wire frames (plus the two
// outbound command sequences, which are frames too) as captured from a
// real device.
var examplePackets = [][]byte{
	{0xAA, 0x00, 0xFF, 0xFF, 0xFF, 0x00, 0x03, 0x99}, // heartbeat
	{
		0xAA, 0x00, 0xFF, 0x18, 0xF0, 0x08, 0x00, 0xB0, 0x32, 0x05, 0xFD, 0x11, 0x7A, 0xFE, 0x84,
		0x99,
	}, // bank 1 basic quantities
	{
		0xAA, 0x00, 0xFF, 0x00, 0xEE, 0x08, 0xD2, 0x66, 0x2F, 0xF4, 0xFF, 0x32, 0x24, 0x0A, 0x51,
		0x99,
	}, // address claimed
	{
		0xAA, 0x00, 0xFF, 0x1A, 0xF0, 0x08, 0xC0, 0xB0, 0x10, 0x27, 0x10, 0x27, 0xFD, 0xFF, 0x15,
		0x99,
	}, // bank 1 status
	{
		0xAA, 0x00, 0xFF, 0x02, 0xF0, 0x08, 0x67, 0x00, 0x64, 0x00, 0x64, 0x00, 0xFF, 0xFF, 0xDA,
		0x99,
	}, // version info
	transport.RequestAddressClaimed,
	transport.SendAll,
}

// brokenPackets are fragments and garbage the extractor must skip over
// without emitting spurious frames.
var brokenPackets = [][]byte{
	{0x67, 0x00, 0x64, 0x00, 0x64, 0x00, 0xFF, 0xFF, 0xDA, 0x99},
	{0xAA, 0x00, 0xFF, 0x01, 0xEE, 0x08, 0xD2, 0x66, 0x2F},
	{0xAA},
	{0x99},
	{0xFF, 0xFF, 0xFF, 0xFF},
}

// Source generates packets from a deterministic pseudo-random sequence
// (seeded explicitly, never from time or crypto/rand, so a captured
// failure can be replayed) and republishes them chunked at random
// boundaries.
type Source struct {
	rng *rand.Rand
	out chan []byte
}

// New starts a background generator seeded with seed, producing count
// chunks before closing. Pending bytes are drawn half from well-formed
// frames and half from broken fragments, then cut into chunks whose
// sizes vary so that valid frames routinely span two or more chunks.
func New(seed int64, count int) *Source {
	s := &Source{
		rng: rand.New(rand.NewSource(seed)),
		out: make(chan []byte),
	}

	go func() {
		defer close(s.out)

		var pending []byte
		for i := 0; i < count; i++ {
			for len(pending) < workingBufferSize {
				pending = append(pending, s.nextPacket()...)
			}

			min := workingBufferSize * 40 / 100
			n := min + s.rng.Intn(workingBufferSize-min+1)
			chunk := make([]byte, n)
			copy(chunk, pending[:n])
			pending = pending[n:]

			s.out <- chunk
		}
	}()

	return s
}

// Chunks implements transport.ByteSource.
func (s *Source) Chunks() <-chan []byte { return s.out }

// Err implements transport.ByteSource. A fuzz source never fails.
func (s *Source) Err() error { return nil }

func (s *Source) nextPacket() []byte {
	if s.rng.Intn(2) == 0 {
		return brokenPackets[s.rng.Intn(len(brokenPackets))]
	}
	// Occasionally synthesize an address-claimed frame with a random
	// serial number, which exercises the stuffing encoder whenever a
	// serial byte lands on a reserved delimiter value.
	if s.rng.Intn(8) == 0 {
		return s.addressClaimedFrame()
	}
	return examplePackets[s.rng.Intn(len(examplePackets))]
}

func (s *Source) addressClaimedFrame() []byte {
	body := []byte{
		0x00, 0xFF, 0x00, 0xEE, 0x08,
		byte(s.rng.Intn(256)), byte(s.rng.Intn(256)), byte(s.rng.Intn(256)), byte(s.rng.Intn(256)),
		0xFF,
		0x32,
		0x24, 0x0A,
	}
	return encode(body)
}

// encode wraps body (the bytes between the start delimiter and the
// checksum/end-delimiter pair) into a complete, stuffed, checksummed
// frame.
func encode(body []byte) []byte {
	checksum := pg.Checksum(body)
	raw := append(append([]byte{}, body...), checksum)
	return append(append([]byte{0xAA}, frame.Stuff(raw)...), 0x99)
}
