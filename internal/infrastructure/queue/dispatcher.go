package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/appzeto/food-admin/internal/api/metrics"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// Job is one write against a single active order. It reports success.
type Job func(ctx context.Context) bool

type task struct {
	ctx     context.Context
	orderID string
	run     Job
	done    chan bool
}

// Dispatcher routes active-order writes to a fixed set of workers using
// consistent hashing on the order id, so writes to the same order never run
// concurrently within this process.
type Dispatcher struct {
	workers []chan task
	log     zerolog.Logger

	mu       sync.RWMutex
	stopped  bool
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan task, numWorkers),
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan task, channelBuffer)
	}
	return d
}

// Start launches the workers. Cancelling ctx is the same as calling Stop.
func (d *Dispatcher) Start(ctx context.Context) {
	d.wg.Add(len(d.workers))
	for i, ch := range d.workers {
		go d.runWorker(i, ch)
	}
	go func() {
		<-ctx.Done()
		d.Stop()
	}()
}

// Stop refuses new jobs, runs every job already queued and returns once the
// workers have exited. Call it after the HTTP server has drained.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		d.mu.Lock()
		d.stopped = true
		for _, ch := range d.workers {
			close(ch)
		}
		d.mu.Unlock()
		d.wg.Wait()
		d.log.Info().Msg("order dispatcher stopped")
	})
}

// Do queues fn on the worker owning orderID and waits for its result.
// It returns false without running fn when ctx ends first or the
// dispatcher is stopped.
func (d *Dispatcher) Do(ctx context.Context, orderID string, fn Job) bool {
	idx := d.shardIndex(orderID)
	t := task{ctx: ctx, orderID: orderID, run: fn, done: make(chan bool, 1)}

	if !d.enqueue(ctx, idx, t) {
		return false
	}

	select {
	case ok := <-t.done:
		return ok
	case <-ctx.Done():
		return false
	}
}

func (d *Dispatcher) enqueue(ctx context.Context, idx int, t task) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		d.log.Warn().Str("order_id", t.orderID).Msg("order dispatcher stopped, write rejected")
		return false
	}
	select {
	case d.workers[idx] <- t:
		metrics.OrderQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
		return true
	case <-ctx.Done():
		return false
	}
}

// shardIndex maps an order id deterministically to a worker index.
func (d *Dispatcher) shardIndex(orderID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(orderID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

// runWorker drains ch until Stop closes it.
func (d *Dispatcher) runWorker(id int, ch <-chan task) {
	defer d.wg.Done()
	depth := metrics.OrderQueueDepth.WithLabelValues(strconv.Itoa(id))
	for t := range ch {
		depth.Dec()
		if t.ctx.Err() != nil {
			t.done <- false
			continue
		}
		ok := t.run(t.ctx)
		if !ok {
			d.log.Debug().
				Str("order_id", t.orderID).
				Int("worker_id", id).
				Msg("active order write reported failure")
		}
		t.done <- ok
	}
}
