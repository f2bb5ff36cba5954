package gpu

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/AsperSarras/castlemoat/internal/logger"
)

// Device owns the fences and queues of the software GPU. A removed device
// stops executing work and fails every pending and future fence wait.
type Device struct {
	removed atomic.Bool

	mu     sync.Mutex
	fences []*Fence
	queues []*Queue
}

// NewDevice creates a device.
func NewDevice() *Device {
	return &Device{}
}

// NewFence creates a fence starting at zero.
func (d *Device) NewFence() *Fence {
	f := newFence()
	d.mu.Lock()
	d.fences = append(d.fences, f)
	d.mu.Unlock()
	if d.removed.Load() {
		f.markRemoved()
	}
	return f
}

// Removed reports whether the device has been marked removed.
func (d *Device) Removed() bool {
	return d.removed.Load()
}

// Remove marks the device removed: queued work is dropped and every fence
// wait, current or future, fails with ErrDeviceRemoved.
func (d *Device) Remove() {
	if !d.removed.CompareAndSwap(false, true) {
		return
	}
	d.mu.Lock()
	fences := append([]*Fence(nil), d.fences...)
	queues := len(d.queues)
	d.mu.Unlock()
	logger.Log.Error("device removed", zap.Int("queues", queues), zap.Int("fences", len(fences)))
	for _, f := range fences {
		f.markRemoved()
	}
}

// Shutdown stops all queue workers. Submitted work is drained first.
func (d *Device) Shutdown() {
	d.mu.Lock()
	queues := append([]*Queue(nil), d.queues...)
	d.mu.Unlock()
	for _, q := range queues {
		q.stop()
	}
}
