package catalog

import (
	"context"
	"sync"
)

// lane serializes requests for one purpose (search, browse). Beginning a new
// request cancels the outstanding one and bumps the sequence; only the holder
// of the latest sequence may publish its result. Last request wins, not last
// response.
type lane struct {
	mu     sync.Mutex
	cancel context.CancelFunc
	seq    uint64
}

func (l *lane) begin(ctx context.Context) (context.Context, uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
	}

	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.seq++

	return ctx, l.seq
}

func (l *lane) current(seq uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.seq == seq
}
