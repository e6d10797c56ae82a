package queue

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(4, zerolog.Nop())
	for _, id := range []string{"o1", "o2", "order-9"} {
		first := d.shardIndex(id)
		for i := 0; i < 10; i++ {
			if got := d.shardIndex(id); got != first {
				t.Fatalf("shard for %s moved from %d to %d", id, first, got)
			}
		}
		if first < 0 || first >= 4 {
			t.Fatalf("shard %d out of range", first)
		}
	}
}

func TestDispatcher_DefaultWorkers(t *testing.T) {
	d := NewDispatcher(0, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}

func TestDispatcher_DoReturnsJobResult(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d := NewDispatcher(2, zerolog.Nop())
	d.Start(ctx)

	if !d.Do(ctx, "o1", func(context.Context) bool { return true }) {
		t.Error("expected true")
	}
	if d.Do(ctx, "o1", func(context.Context) bool { return false }) {
		t.Error("expected false")
	}
}

func TestDispatcher_SameOrderNeverConcurrent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d := NewDispatcher(4, zerolog.Nop())
	d.Start(ctx)

	var inFlight, maxInFlight int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Do(ctx, "o1", func(context.Context) bool {
				n := atomic.AddInt32(&inFlight, 1)
				for {
					m := atomic.LoadInt32(&maxInFlight)
					if n <= m || atomic.CompareAndSwapInt32(&maxInFlight, m, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&inFlight, -1)
				return true
			})
		}()
	}
	wg.Wait()

	if maxInFlight != 1 {
		t.Fatalf("writes to one order overlapped: max in flight %d", maxInFlight)
	}
}

func TestDispatcher_PreservesOrderPerOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d := NewDispatcher(4, zerolog.Nop())
	d.Start(ctx)

	var mu sync.Mutex
	var seen []string
	for i := 0; i < 5; i++ {
		step := fmt.Sprintf("step-%d", i)
		d.Do(ctx, "o7", func(context.Context) bool {
			mu.Lock()
			seen = append(seen, step)
			mu.Unlock()
			return true
		})
	}

	for i, s := range seen {
		if s != fmt.Sprintf("step-%d", i) {
			t.Fatalf("unexpected order %v", seen)
		}
	}
}

func TestDispatcher_CancelledContext(t *testing.T) {
	d := NewDispatcher(1, zerolog.Nop()) // never started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	ran := false
	if d.Do(ctx, "o1", func(context.Context) bool { ran = true; return true }) {
		t.Fatal("expected false when ctx expires")
	}
	if ran {
		t.Fatal("job must not run")
	}
}

func TestDispatcher_StopRunsQueuedJobs(t *testing.T) {
	d := NewDispatcher(1, zerolog.Nop())
	d.Start(context.Background())

	var applied int32
	results := make(chan bool, 4)
	started := make(chan struct{})
	release := make(chan struct{})

	go func() {
		results <- d.Do(context.Background(), "order-1", func(context.Context) bool {
			close(started)
			<-release
			atomic.AddInt32(&applied, 1)
			return true
		})
	}()
	<-started

	for i := 0; i < 3; i++ {
		go func() {
			results <- d.Do(context.Background(), "order-1", func(context.Context) bool {
				atomic.AddInt32(&applied, 1)
				return true
			})
		}()
	}
	deadline := time.Now().Add(time.Second)
	for len(d.workers[0]) < 3 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if len(d.workers[0]) != 3 {
		t.Fatalf("expected 3 queued jobs, got %d", len(d.workers[0]))
	}

	stopped := make(chan struct{})
	go func() {
		d.Stop()
		close(stopped)
	}()
	close(release)

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return")
	}
	for i := 0; i < 4; i++ {
		if !<-results {
			t.Fatal("queued job was not applied")
		}
	}
	if got := atomic.LoadInt32(&applied); got != 4 {
		t.Fatalf("expected 4 applied writes, got %d", got)
	}
}

func TestDispatcher_DoAfterStopReturnsImmediately(t *testing.T) {
	d := NewDispatcher(2, zerolog.Nop())
	d.Start(context.Background())
	d.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	ran := false
	start := time.Now()
	if d.Do(ctx, "order-1", func(context.Context) bool { ran = true; return true }) {
		t.Fatal("expected false after Stop")
	}
	if ran {
		t.Fatal("job must not run after Stop")
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Fatalf("Do blocked for %v after Stop", elapsed)
	}
}

func TestDispatcher_CancelledStartContextDoesNotBlockDo(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	d := NewDispatcher(2, zerolog.Nop())
	d.Start(ctx)
	cancel()

	reqCtx, reqCancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer reqCancel()

	start := time.Now()
	ok := d.Do(reqCtx, "order-1", func(context.Context) bool { return true })
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Fatalf("Do blocked for %v after cancellation (ok=%v)", elapsed, ok)
	}
}
