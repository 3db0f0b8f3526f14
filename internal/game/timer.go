package game

import (
	"sync"
	"sync/atomic"
	"time"
)

const (
	countdownRunning int32 = iota
	countdownCancelled
	countdownExpired
)

// countdown is a cancellable one-shot timer that ticks once per second with
// the remaining seconds and fires onExpire exactly once when it reaches
// zero. Cancel and expiry race against a single state word, so at most one
// of them wins: a cancelled countdown never fires, and Cancel after expiry
// is a no-op. Callers must drop their reference after cancelling.
type countdown struct {
	state atomic.Int32
	done  chan struct{}
	once  sync.Once
}

func newCountdown(seconds int, onTick func(remaining int), onExpire func()) *countdown {
	c := &countdown{done: make(chan struct{})}
	go c.run(seconds, onTick, onExpire)
	return c
}

func (c *countdown) run(seconds int, onTick func(int), onExpire func()) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	remaining := seconds
	if onTick != nil {
		onTick(remaining)
	}
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			remaining--
			if remaining > 0 {
				if onTick != nil {
					onTick(remaining)
				}
				continue
			}
			if !c.state.CompareAndSwap(countdownRunning, countdownExpired) {
				return // lost the race to Cancel
			}
			onExpire()
			return
		}
	}
}

// Cancel stops all future ticks and the expiry. Safe to call more than
// once and safe on a countdown that already expired.
func (c *countdown) Cancel() {
	c.once.Do(func() {
		c.state.CompareAndSwap(countdownRunning, countdownCancelled)
		close(c.done)
	})
}
