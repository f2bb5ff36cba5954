package renderer

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/AsperSarras/castlemoat/internal/gpu"
)

func TestRingAdvancesFreelyThroughUnsubmittedSlots(t *testing.T) {
	d := gpu.NewDevice()
	defer d.Shutdown()
	fence := d.NewFence()
	ring := NewRing(4, 2, 0)

	seen := map[*FrameResource]bool{}
	for i := 0; i < NumFrameResources; i++ {
		fr, err := ring.Advance(fence)
		if err != nil {
			t.Fatalf("Advance %d failed: %v", i, err)
		}
		if seen[fr] {
			t.Fatalf("Advance %d returned a repeated slot", i)
		}
		seen[fr] = true
	}

	// Fourth advance wraps to the first slot.
	first, err := ring.Advance(fence)
	if err != nil {
		t.Fatal(err)
	}
	if !seen[first] {
		t.Fatal("ring did not wrap after NumFrameResources advances")
	}
}

func TestRingBlocksUntilSlotFenceCompletes(t *testing.T) {
	d := gpu.NewDevice()
	defer d.Shutdown()
	fence := d.NewFence()
	ring := NewRing(1, 1, 0)

	// Submit all three slots.
	for v := uint64(1); v <= 3; v++ {
		fr, err := ring.Advance(fence)
		if err != nil {
			t.Fatal(err)
		}
		fr.Fence = v
	}

	// Slot 0 (fence 1) is next and still in flight; Advance must block.
	got := make(chan *FrameResource, 1)
	errc := make(chan error, 1)
	go func() {
		fr, err := ring.Advance(fence)
		if err != nil {
			errc <- err
			return
		}
		got <- fr
	}()

	select {
	case <-got:
		t.Fatal("Advance returned while the slot was still in flight")
	case <-errc:
		t.Fatal("Advance failed unexpectedly")
	case <-time.After(20 * time.Millisecond):
	}

	fence.Signal(1)
	select {
	case fr := <-got:
		if fr.Fence != 1 {
			t.Fatalf("reclaimed slot has fence %d, want 1", fr.Fence)
		}
	case err := <-errc:
		t.Fatalf("Advance failed after signal: %v", err)
	case <-time.After(time.Second):
		t.Fatal("Advance still blocked after the fence completed")
	}
}

func TestRingAdvanceFailsOnDeviceRemoval(t *testing.T) {
	d := gpu.NewDevice()
	fence := d.NewFence()
	ring := NewRing(1, 1, 0)

	for v := uint64(1); v <= 3; v++ {
		fr, err := ring.Advance(fence)
		if err != nil {
			t.Fatal(err)
		}
		fr.Fence = v
	}

	errc := make(chan error, 1)
	go func() {
		_, err := ring.Advance(fence)
		errc <- err
	}()
	time.Sleep(10 * time.Millisecond)
	d.Remove()

	select {
	case err := <-errc:
		if !errors.Is(err, gpu.ErrDeviceRemoved) {
			t.Fatalf("Advance returned %v, want ErrDeviceRemoved", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Advance did not fail after device removal")
	}
}

// End-to-end write safety: the device reads each submission's constants
// after a delay, while the host keeps overwriting reclaimed slots. The
// fence discipline must make every submission observe its own values.
func TestRingWriteSafetyAgainstSlowDevice(t *testing.T) {
	d := gpu.NewDevice()
	defer d.Shutdown()
	q := d.NewQueue()
	fence := d.NewFence()
	ring := NewRing(1, 1, 0)

	rt := gpu.NewRenderTarget(8, 8)
	pipeline := &gpu.Pipeline{Name: "opaque"}
	verts := []gpu.Vertex{
		{Pos: mgl32.Vec3{-1, -1, 0}},
		{Pos: mgl32.Vec3{3, -1, 0}},
		{Pos: mgl32.Vec3{-1, 3, 0}},
	}

	const frames = 12
	snaps := make([][]uint8, frames)
	var current uint64

	for f := 0; f < frames; f++ {
		fr, err := ring.Advance(fence)
		if err != nil {
			t.Fatalf("frame %d: %v", f, err)
		}

		// Encode the frame number in the ambient light so the rasterized
		// color reveals which constants the device read.
		shade := float32(f%8) / 8
		fr.PassCB.CopyData(0, gpu.PassConstants{
			ViewProj:     mgl32.Ident4(),
			AmbientLight: mgl32.Vec4{shade, shade, shade, 1},
		})
		fr.ObjectCB.CopyData(0, gpu.ObjectConstants{World: mgl32.Ident4(), TexTransform: mgl32.Ident4()})
		fr.MaterialCB.CopyData(0, gpu.MaterialConstants{DiffuseAlbedo: mgl32.Vec4{1, 1, 1, 1}, MatTransform: mgl32.Ident4()})

		cl := gpu.NewCommandList()
		cl.SetRenderTarget(rt)
		cl.Clear(mgl32.Vec4{0, 0, 0, 1})
		cl.SetPipeline(pipeline)
		cl.SetPassConstants(fr.PassCB)
		cl.Draw(gpu.DrawIndexed{
			Vertices:   verts,
			Indices:    []uint16{0, 1, 2},
			IndexCount: 3,
			ObjectCB:   fr.ObjectCB,
			MaterialCB: fr.MaterialCB,
		})
		// Read the frame back on the device timeline, after the draw.
		snaps[f] = make([]uint8, 8*8*4)
		cl.CopyTarget(snaps[f])
		cl.Close()
		q.Execute(cl)

		current++
		fr.Fence = current
		q.Signal(fence, current)
	}

	if err := q.Flush(); err != nil {
		t.Fatal(err)
	}
	for f := 0; f < frames; f++ {
		want := uint8(float32(f%8) / 8 * 255)
		got := snaps[f][(4*8+4)*4] // center pixel, red channel
		if diff := int(got) - int(want); diff < -1 || diff > 1 {
			t.Fatalf("frame %d rasterized shade %d, want %d: slot constants were overwritten in flight", f, got, want)
		}
	}
}
