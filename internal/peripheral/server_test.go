package peripheral

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tbselectronics/tbsdecode/frame"
	"github.com/tbselectronics/tbsdecode/pg"
)

func TestServerStreamsDecodableFrames(t *testing.T) {
	s, err := New("localhost:0", 16, nil)
	require.NoError(t, err)
	defer s.Close()

	conn, err := net.DialTimeout("tcp", s.Addr().String(), time.Second)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	e := frame.NewExtractor()
	buf := make([]byte, 256)
	var decoded []pg.Message
	for len(decoded) < 5 {
		n, err := conn.Read(buf)
		require.NoError(t, err)
		for _, f := range e.Feed(buf[:n]) {
			decoded = append(decoded, pg.Decode(f))
		}
	}

	var sawRecognized bool
	for _, m := range decoded {
		if _, ok := m.(pg.Unknown); !ok {
			sawRecognized = true
		}
	}
	require.True(t, sawRecognized, "expected at least one recognized message among %#v", decoded)
}
