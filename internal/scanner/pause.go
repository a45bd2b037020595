package scanner

import (
	"context"
	"sync"
	"time"
)

// Pauser provides a cooperative pause/resume gate for worker
// goroutines. When paused, calls to Wait block until resumed or the
// context is cancelled. When not paused, Wait is near-zero overhead.
type Pauser struct {
	mu          sync.Mutex
	resumed     chan struct{} // closed while running, fresh while paused
	paused      bool
	pausedSince time.Time
	totalPaused time.Duration
}

// NewPauser creates a Pauser in the running (unpaused) state.
func NewPauser() *Pauser {
	ch := make(chan struct{})
	close(ch)
	return &Pauser{resumed: ch}
}

// Wait blocks the calling goroutine while the scan is paused. It
// returns immediately when not paused, and unblocks when ctx is
// cancelled so a paused scan can still be torn down.
func (p *Pauser) Wait(ctx context.Context) {
	p.mu.Lock()
	ch := p.resumed
	p.mu.Unlock()
	select {
	case <-ch:
	case <-ctx.Done():
	}
}

// Toggle flips between paused and running states.
// Returns the new paused state (true = now paused).
func (p *Pauser) Toggle() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.paused {
		p.totalPaused += time.Since(p.pausedSince)
		p.paused = false
		close(p.resumed)
	} else {
		p.paused = true
		p.pausedSince = time.Now()
		p.resumed = make(chan struct{})
	}
	return p.paused
}

// IsPaused returns whether the scan is currently paused.
func (p *Pauser) IsPaused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// PausedDuration returns the total accumulated time spent paused,
// including any ongoing pause.
func (p *Pauser) PausedDuration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	d := p.totalPaused
	if p.paused {
		d += time.Since(p.pausedSince)
	}
	return d
}
