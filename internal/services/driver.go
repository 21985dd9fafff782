package services

import (
	"context"
	"sync"
	"time"
)

// Ticker is anything advanced by a Driver.
type Ticker interface {
	Tick()
}

// Driver calls Tick on a fixed interval from its own goroutine.
type Driver struct {
	target   Ticker
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewDriver creates a stopped driver. Non-positive intervals mean one second.
func NewDriver(target Ticker, interval time.Duration) *Driver {
	if interval <= 0 {
		interval = time.Second
	}
	return &Driver{target: target, interval: interval}
}

// Start begins ticking until ctx is cancelled or Stop is called. Starting a
// running driver does nothing; a driver whose context ended can be started
// again.
func (d *Driver) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.done != nil {
		select {
		case <-d.done:
			d.cancel()
		default:
			return
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	d.cancel = cancel
	d.done = done

	go func() {
		defer close(done)
		ticker := time.NewTicker(d.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				// A tick racing with cancellation must not be delivered.
				if ctx.Err() != nil {
					return
				}
				d.target.Tick()
			}
		}
	}()
}

// Stop halts the driver and waits for its goroutine to exit, so no Tick is
// delivered after Stop returns. Stop is idempotent.
func (d *Driver) Stop() {
	d.mu.Lock()
	cancel, done := d.cancel, d.done
	d.cancel, d.done = nil, nil
	d.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether the driver goroutine is active.
func (d *Driver) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.done == nil {
		return false
	}
	select {
	case <-d.done:
		return false
	default:
		return true
	}
}

// Wait blocks until the driver goroutine exits. It returns at once if the
// driver was never started.
func (d *Driver) Wait() {
	d.mu.Lock()
	done := d.done
	d.mu.Unlock()
	if done != nil {
		<-done
	}
}
