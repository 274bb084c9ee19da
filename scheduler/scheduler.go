package scheduler

import (
	"runtime"
	"time"
)

// DefaultWindow is the batching window used by Window when Wait is zero.
var DefaultWindow = 16 * time.Millisecond

// Window flushes a batch after a fixed batching window has elapsed.
//
// The window opens when the first key of the batch is enqueued. Every key
// requested before it closes coalesces into the same flush, which makes the
// batch breadth deterministic for callers issued within one window. The
// cost is that the first caller waits out the window even when no other
// keys arrive.
type Window struct {
	// Wait is the length of the batching window.
	// A zero Wait means DefaultWindow.
	Wait time.Duration
}

// Schedule invokes flush once the batching window has elapsed.
func (w Window) Schedule(flush func()) {
	wait := w.Wait
	if wait <= 0 {
		wait = DefaultWindow
	}
	time.AfterFunc(wait, flush)
}

// Yield flushes a batch as soon as its dispatch goroutine gets scheduled.
//
// The dispatch goroutine yields the processor once before flushing, giving
// already-runnable callers a chance to enqueue their keys first. Callers
// blocked on the batch before dispatch are collected into it; anyone
// arriving later starts a new batch. No latency is added beyond the
// scheduling gap.
type Yield struct{}

// Schedule invokes flush from a fresh goroutine after yielding once.
func (Yield) Schedule(flush func()) {
	go func() {
		runtime.Gosched()
		flush()
	}()
}
