package gpu

import (
	"sync"

	"github.com/cockroachdb/errors"
)

// ErrDeviceRemoved is returned from fence waits once the device has been
// marked removed. There is no recovery path; callers are expected to
// propagate it to the top of the process.
var ErrDeviceRemoved = errors.New("gpu: device removed")

// Fence is a monotonically increasing completion counter, signaled by the
// queue worker and waited on by the host.
type Fence struct {
	mu      sync.Mutex
	cond    *sync.Cond
	value   uint64
	removed bool
}

func newFence() *Fence {
	f := &Fence{}
	f.cond = sync.NewCond(&f.mu)
	return f
}

// Completed returns the last signaled value.
func (f *Fence) Completed() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

// Signal advances the fence to v and wakes waiters. Values never regress;
// a stale signal is ignored.
func (f *Fence) Signal(v uint64) {
	f.mu.Lock()
	if v > f.value {
		f.value = v
	}
	f.mu.Unlock()
	f.cond.Broadcast()
}

// Wait blocks until the fence reaches v or the device is removed.
func (f *Fence) Wait(v uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for f.value < v {
		if f.removed {
			return errors.Wrapf(ErrDeviceRemoved, "waiting for fence value %d", v)
		}
		f.cond.Wait()
	}
	if f.removed {
		return errors.Wrapf(ErrDeviceRemoved, "waiting for fence value %d", v)
	}
	return nil
}

func (f *Fence) markRemoved() {
	f.mu.Lock()
	f.removed = true
	f.mu.Unlock()
	f.cond.Broadcast()
}
