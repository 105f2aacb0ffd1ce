package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tbselectronics/tbsdecode/frame"
	"github.com/tbselectronics/tbsdecode/pg"
)

// TestCommandFramesRoundTripThroughExtractor checks that both fixed
// command byte sequences are themselves well-formed frames: the
// extractor recovers exactly one frame from each, unchanged by
// destuffing (neither contains a literal escape byte).
func TestCommandFramesRoundTripThroughExtractor(t *testing.T) {
	for name, cmd := range map[string][]byte{
		"RequestAddressClaimed": RequestAddressClaimed,
		"SendAll":               SendAll,
	} {
		t.Run(name, func(t *testing.T) {
			frames := frame.NewExtractor().Feed(cmd)
			if assert.Len(t, frames, 1) {
				assert.Equal(t, frame.Frame(cmd), frames[0])
			}
		})
	}
}

// TestCommandFramesCarryValidChecksums documents that both command
// frames already carry a checksum that matches pg.Checksum, even though
// the core decoder never dispatches on their PGNs.
func TestCommandFramesCarryValidChecksums(t *testing.T) {
	for name, cmd := range map[string][]byte{
		"RequestAddressClaimed": RequestAddressClaimed,
		"SendAll":               SendAll,
	} {
		t.Run(name, func(t *testing.T) {
			want := cmd[len(cmd)-2]
			got := pg.Checksum(cmd[1 : len(cmd)-2])
			assert.Equal(t, want, got)
		})
	}
}
