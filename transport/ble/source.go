package ble

import (
	"context"

	"github.com/pkg/errors"
)

// Source adapts a Notifier subscription into a transport.ByteSource.
type Source struct {
	ctx context.Context
	ch  <-chan []byte
	err error
}

// Connect subscribes to p via n and returns a ready Source.
func Connect(ctx context.Context, n Notifier, p Peripheral) (*Source, error) {
	ch, err := n.Subscribe(ctx, p)
	if err != nil {
		return nil, errors.Wrapf(err, "subscribing to %s", p.Address)
	}
	return &Source{ctx: ctx, ch: ch}, nil
}

// Chunks implements transport.ByteSource.
func (s *Source) Chunks() <-chan []byte { return s.ch }

// Err implements transport.ByteSource. It always returns nil: a BLE
// subscription channel closing carries no error information beyond
// "disconnected", which the caller already observes by the channel
// close.
func (s *Source) Err() error { return s.err }
