// Package renderer holds the frame-resource ring and the scene-side
// rendering types: render items, materials, mesh geometry and the orbital
// camera.
package renderer

import (
	"github.com/cockroachdb/errors"

	"github.com/AsperSarras/castlemoat/internal/gpu"
)

// NumFrameResources is the ring depth: how many frames the CPU may run
// ahead of the device.
const NumFrameResources = 3

// FrameResource is one ring slot: every buffer the CPU writes for a frame,
// tagged with the fence value whose completion proves the device is done
// reading them. Fence 0 means the slot has never been submitted.
type FrameResource struct {
	PassCB     *gpu.UploadBuffer[gpu.PassConstants]
	ObjectCB   *gpu.UploadBuffer[gpu.ObjectConstants]
	MaterialCB *gpu.UploadBuffer[gpu.MaterialConstants]
	WavesVB    *gpu.UploadBuffer[gpu.Vertex]

	Fence uint64
}

// NewFrameResource allocates one slot's buffers.
func NewFrameResource(objectCount, materialCount, waveVertCount int) *FrameResource {
	return &FrameResource{
		PassCB:     gpu.NewUploadBuffer[gpu.PassConstants](1),
		ObjectCB:   gpu.NewUploadBuffer[gpu.ObjectConstants](objectCount),
		MaterialCB: gpu.NewUploadBuffer[gpu.MaterialConstants](materialCount),
		WavesVB:    gpu.NewUploadBuffer[gpu.Vertex](waveVertCount),
	}
}

// Ring rotates NumFrameResources slots. Advance hands out the next slot
// only once the device has consumed its previous submission, so writing
// into the returned slot can never race the device.
type Ring struct {
	frames []*FrameResource
	cur    int
}

// NewRing builds the ring. Buffers are allocated once and reused.
func NewRing(objectCount, materialCount, waveVertCount int) *Ring {
	r := &Ring{cur: NumFrameResources - 1}
	for i := 0; i < NumFrameResources; i++ {
		r.frames = append(r.frames, NewFrameResource(objectCount, materialCount, waveVertCount))
	}
	return r
}

// Current returns the slot handed out by the last Advance.
func (r *Ring) Current() *FrameResource {
	return r.frames[r.cur]
}

// Advance moves to the next slot, blocking on the fence if the device has
// not finished with it. A device removal during the wait is fatal to the
// caller.
func (r *Ring) Advance(fence *gpu.Fence) (*FrameResource, error) {
	r.cur = (r.cur + 1) % len(r.frames)
	fr := r.frames[r.cur]
	if fr.Fence != 0 && fence.Completed() < fr.Fence {
		if err := fence.Wait(fr.Fence); err != nil {
			return nil, errors.Wrapf(err, "reclaiming frame resource %d", r.cur)
		}
	}
	return fr, nil
}
