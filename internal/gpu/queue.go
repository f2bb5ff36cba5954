package gpu

import (
	"sync"

	"go.uber.org/zap"

	"github.com/AsperSarras/castlemoat/internal/logger"
)

// Queue executes submitted command lists on a worker goroutine, in FIFO
// order. Fence signals enqueued after a submission are observed only once
// that submission has fully executed, which is what makes fence values a
// trustworthy completion marker for the host.
type Queue struct {
	dev  *Device
	ops  chan func()
	done chan struct{}
	once sync.Once
}

// NewQueue creates a queue and starts its worker.
func (d *Device) NewQueue() *Queue {
	q := &Queue{
		dev:  d,
		ops:  make(chan func(), 64),
		done: make(chan struct{}),
	}
	d.mu.Lock()
	d.queues = append(d.queues, q)
	d.mu.Unlock()
	go q.run()
	return q
}

func (q *Queue) run() {
	defer close(q.done)
	for op := range q.ops {
		if q.dev.Removed() {
			continue
		}
		op()
	}
}

func (q *Queue) submit(op func()) {
	defer func() {
		// A stopped queue has a closed channel; treat late submissions
		// as device removal instead of crashing the host.
		if recover() != nil {
			q.dev.Remove()
		}
	}()
	q.ops <- op
}

// Execute submits closed command lists for execution.
func (q *Queue) Execute(lists ...*CommandList) {
	for _, cl := range lists {
		if !cl.closed {
			logger.Log.Error("executing an open command list", zap.Int("commands", len(cl.cmds)))
		}
		cmds := cl.cmds
		q.submit(func() {
			st := &execState{}
			for _, c := range cmds {
				c(st)
			}
		})
	}
}

// Signal enqueues a fence signal behind all previously submitted work.
func (q *Queue) Signal(f *Fence, v uint64) {
	q.submit(func() {
		f.Signal(v)
	})
}

// Flush blocks until every previously submitted operation has executed.
func (q *Queue) Flush() error {
	f := q.dev.NewFence()
	q.Signal(f, 1)
	return f.Wait(1)
}

func (q *Queue) stop() {
	q.once.Do(func() {
		close(q.ops)
	})
	<-q.done
}
