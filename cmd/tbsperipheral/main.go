// Command tbsperipheral runs a fake TBS monitor/charger on a TCP port,
// streaming stuffed, checksummed frames to whatever connects — so
// cmd/tbsdemo, or any other TCP client, can exercise the real wire
// format without real hardware.
package main

import (
	charmlog "github.com/charmbracelet/log"
	flag "github.com/spf13/pflag"

	"github.com/tbselectronics/tbsdecode/internal/peripheral"
)

func main() {
	var (
		addr      = flag.StringP("addr", "a", "localhost:8765", "address to listen on")
		chunkSize = flag.IntP("chunk-size", "n", 20, "bytes per streamed chunk")
	)
	flag.Parse()

	s, err := peripheral.New(*addr, *chunkSize, nil)
	if err != nil {
		charmlog.Fatal("starting peripheral", "err", err)
	}
	defer s.Close()

	charmlog.Info("fake TBS peripheral listening", "addr", s.Addr())
	select {}
}
