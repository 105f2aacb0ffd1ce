// Command tbsdemo selects a transport.ByteSource (a replay capture, the
// randomized fuzz generator, or a TCP connection to cmd/tbsperipheral),
// runs it through pipeline.Run, and prints every decoded Message. It
// exists purely to exercise the decoding pipeline end-to-end from a
// command line, outside the decoder core itself.
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	charmlog "github.com/charmbracelet/log"
	"github.com/pkg/errors"
	flag "github.com/spf13/pflag"

	"github.com/tbselectronics/tbsdecode/config"
	"github.com/tbselectronics/tbsdecode/diag"
	"github.com/tbselectronics/tbsdecode/pipeline"
	"github.com/tbselectronics/tbsdecode/transport"
	"github.com/tbselectronics/tbsdecode/transport/fuzz"
	"github.com/tbselectronics/tbsdecode/transport/replay"
)

func main() {
	var (
		configPath = flag.StringP("config", "c", "", "path to a YAML config file")
		source     = flag.StringP("source", "s", "fuzz", "byte source: fuzz, replay, or tcp")
		replayPath = flag.String("replay-file", "", "capture file to replay (source=replay)")
		tcpAddr    = flag.String("tcp-addr", "localhost:8765", "peripheral address (source=tcp)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	level, err := charmlog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = charmlog.InfoLevel
	}
	charmlog.SetLevel(level)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	ctx = diag.WithTrace(ctx, diag.WithDefaults(&diag.Trace{}, diag.LoggingHooks))

	src, err := newSource(ctx, *source, *replayPath, *tcpAddr, cfg)
	if err != nil {
		charmlog.Fatal("selecting byte source", "err", err)
	}

	for m := range pipeline.RunBuffered(ctx, src, cfg.ChannelCapacity) {
		fmt.Printf("%#v\n", m)
	}

	if err := src.Err(); err != nil {
		charmlog.Error("source terminated with error", "err", err)
		os.Exit(1)
	}
}

func newSource(ctx context.Context, kind, replayPath, tcpAddr string, cfg *config.Config) (transport.ByteSource, error) {
	switch kind {
	case "fuzz":
		return fuzz.New(cfg.FuzzSeed, cfg.FuzzCount), nil

	case "replay":
		if replayPath == "" {
			return nil, errors.New("source=replay requires --replay-file")
		}
		f, err := os.Open(replayPath)
		if err != nil {
			return nil, errors.Wrapf(err, "opening replay file %s", replayPath)
		}
		return replay.New(f, cfg.ReplayChunkSize), nil

	case "tcp":
		var d net.Dialer
		conn, err := d.DialContext(ctx, "tcp", tcpAddr)
		if err != nil {
			return nil, errors.Wrapf(err, "connecting to %s", tcpAddr)
		}
		return replay.New(conn, cfg.ReplayChunkSize), nil

	default:
		return nil, errors.Errorf("unrecognized source %q", kind)
	}
}
