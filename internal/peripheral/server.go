// Package peripheral implements a fake TBS device: a net.Listener-backed
// server that streams stuffed, checksummed frames to any TCP client. It
// exists so cmd/tbsdemo, or any other TCP client, can exercise the real
// wire format without hardware.
package peripheral

import (
	"bufio"
	"net"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/tbselectronics/tbsdecode/diag"
	"github.com/tbselectronics/tbsdecode/frame"
	"github.com/tbselectronics/tbsdecode/pg"
	"github.com/tbselectronics/tbsdecode/transport/fuzz"
)

// Server is a fake TBS peripheral listening for TCP connections.
type Server struct {
	listener  net.Listener
	chunkSize int
	trace     *diag.Trace
}

// New starts a Server listening on addr (e.g. "localhost:0" to pick a
// free port). Each accepted connection is served in its own goroutine
// and streams frames chunked at chunkSize bytes.
func New(addr string, chunkSize int, trace *diag.Trace) (*Server, error) {
	if chunkSize <= 0 {
		chunkSize = 20
	}
	if trace == nil {
		trace = &diag.Trace{}
	}

	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "listening on %s", addr)
	}

	s := &Server{listener: l, chunkSize: chunkSize, trace: trace}
	go s.acceptConnections()
	return s, nil
}

// Addr returns the address the server is listening on.
func (s *Server) Addr() net.Addr { return s.listener.Addr() }

// Close stops accepting new connections.
func (s *Server) Close() error { return s.listener.Close() }

func (s *Server) acceptConnections() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}
		go s.serve(conn)
	}
}

func (s *Server) serve(conn net.Conn) {
	defer conn.Close()

	sessionID := uuid.New().String()
	charmlog.Debug("peripheral connection accepted", "session", sessionID, "remote", conn.RemoteAddr())

	w := bufio.NewWriter(conn)
	src := fuzz.New(time.Now().UnixNano(), 1<<20)
	e := frame.NewExtractor()

	// The generator keeps producing until it hits its count; if the
	// client goes away first, drain it so its goroutine can finish.
	defer func() {
		go func() {
			for range src.Chunks() {
			}
		}()
	}()

	var pending []byte
	for raw := range src.Chunks() {
		s.traceFrames(e, raw)

		pending = append(pending, raw...)
		for len(pending) >= s.chunkSize {
			if err := s.writeChunk(w, pending[:s.chunkSize]); err != nil {
				return
			}
			pending = pending[s.chunkSize:]
		}
	}
	if len(pending) > 0 {
		_ = s.writeChunk(w, pending)
	}
}

// traceFrames decodes each frame completed by raw purely for diagnostics —
// the client re-extracts independently from the bytes actually written.
func (s *Server) traceFrames(e *frame.Extractor, raw []byte) {
	if s.trace.MessageDecoded == nil {
		return
	}
	start := time.Now()
	for _, f := range e.Feed(raw) {
		s.trace.MessageDecoded(pg.Decode(f), time.Since(start))
	}
}

func (s *Server) writeChunk(w *bufio.Writer, chunk []byte) error {
	if _, err := w.Write(chunk); err != nil {
		return err
	}
	return w.Flush()
}
