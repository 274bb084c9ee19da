package scheduler_test

import (
	"sync"
	"testing"
	"time"

	dataloader "github.com/ubugeeei/bgql-sub002"
	"github.com/ubugeeei/bgql-sub002/scheduler"
)

var (
	_ dataloader.Scheduler = scheduler.Window{}
	_ dataloader.Scheduler = scheduler.Yield{}
)

func TestWindow_Schedule(t *testing.T) {
	t.Parallel()

	flushed := make(chan time.Time, 1)
	start := time.Now()

	scheduler.Window{Wait: 20 * time.Millisecond}.Schedule(func() {
		flushed <- time.Now()
	})

	select {
	case at := <-flushed:
		if elapsed := at.Sub(start); elapsed < 20*time.Millisecond {
			t.Errorf("flushed before the window elapsed: %v", elapsed)
		}
	case <-time.After(time.Second):
		t.Fatal("flush was never invoked")
	}
}

func TestWindow_ZeroWaitUsesDefault(t *testing.T) {
	t.Parallel()

	flushed := make(chan struct{})
	scheduler.Window{}.Schedule(func() {
		close(flushed)
	})

	select {
	case <-flushed:
	case <-time.After(scheduler.DefaultWindow + time.Second):
		t.Fatal("flush was never invoked")
	}
}

func TestYield_Schedule(t *testing.T) {
	t.Parallel()

	flushed := make(chan struct{})
	scheduler.Yield{}.Schedule(func() {
		close(flushed)
	})

	select {
	case <-flushed:
	case <-time.After(time.Second):
		t.Fatal("flush was never invoked")
	}
}

func TestYield_ScheduleIsAsynchronous(t *testing.T) {
	t.Parallel()

	// The loader calls Schedule with its lock held, so flush must not be
	// invoked on the calling goroutine. A synchronous flush would deadlock
	// here and time out the test.
	var mu sync.Mutex
	done := make(chan struct{})

	mu.Lock()
	scheduler.Yield{}.Schedule(func() {
		mu.Lock()
		defer mu.Unlock()
		close(done)
	})
	mu.Unlock()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("flush was never invoked")
	}
}
