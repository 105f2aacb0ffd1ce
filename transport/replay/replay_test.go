package replay

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbselectronics/tbsdecode/frame"
)

func TestSourceChunksAtConfiguredSize(t *testing.T) {
	data := bytes.Repeat([]byte{0x01}, 45)
	src := New(bytes.NewReader(data), 20)

	var total int
	var sizes []int
	for c := range src.Chunks() {
		sizes = append(sizes, len(c))
		total += len(c)
	}

	require.NoError(t, src.Err())
	assert.Equal(t, len(data), total)
	assert.Equal(t, []int{20, 20, 5}, sizes)
}

func TestSourceSplitsFrameAcrossChunkBoundary(t *testing.T) {
	heartbeat := []byte{0xAA, 0x00, 0xFF, 0xFF, 0xFF, 0x00, 0x03, 0x99}
	data := append(append([]byte{}, heartbeat...), heartbeat...)

	src := New(bytes.NewReader(data), 3)

	e := frame.NewExtractor()
	var got []frame.Frame
	for c := range src.Chunks() {
		got = append(got, e.Feed(c)...)
	}

	require.NoError(t, src.Err())
	require.Len(t, got, 2)
	assert.Equal(t, frame.Frame(heartbeat), got[0])
	assert.Equal(t, frame.Frame(heartbeat), got[1])
}

func TestDefaultChunkSizeUsedWhenNonPositive(t *testing.T) {
	data := bytes.Repeat([]byte{0x02}, DefaultChunkSize+1)
	src := New(bytes.NewReader(data), 0)

	var sizes []int
	for c := range src.Chunks() {
		sizes = append(sizes, len(c))
	}
	assert.Equal(t, []int{DefaultChunkSize, 1}, sizes)
}
