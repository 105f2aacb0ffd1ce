package frame

import "context"

// Run is the streaming formulation of Feed: a long-running stage that
// reads one chunk at a time from in and pushes
// each extracted Frame onto out, in arrival order. It returns when in is
// closed (after draining any trailing complete frames) or when ctx is
// done, whichever happens first. out is always closed before Run
// returns.
func Run(ctx context.Context, in <-chan []byte, out chan<- Frame) {
	defer close(out)

	e := NewExtractor()

	for {
		select {
		case <-ctx.Done():
			return
		case chunk, ok := <-in:
			if !ok {
				return
			}
			for _, f := range e.Feed(chunk) {
				select {
				case out <- f:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}
