package engine

import (
	"image"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/AsperSarras/castlemoat/internal/gpu"
	"github.com/AsperSarras/castlemoat/internal/renderer"
	"github.com/AsperSarras/castlemoat/internal/scene"
	"github.com/AsperSarras/castlemoat/internal/texture"
)

func testScene(t *testing.T, autoDisturb bool) *scene.Scene {
	t.Helper()
	doc, err := scene.Default()
	if err != nil {
		t.Fatal(err)
	}
	// Smaller water grid keeps the test quick; physics are identical.
	doc.Waves.Rows = 32
	doc.Waves.Cols = 32
	doc.Waves.AutoDisturb = autoDisturb
	s, err := scene.Build(doc, texture.NewManager(t.TempDir(), 0))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func runFrames(t *testing.T, a *App, n int, dt float32) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := a.Update(dt); err != nil {
			t.Fatalf("Update frame %d: %v", i, err)
		}
		if err := a.Draw(); err != nil {
			t.Fatalf("Draw frame %d: %v", i, err)
		}
	}
}

func TestAppRendersFramesHeadless(t *testing.T) {
	dev := gpu.NewDevice()
	defer dev.Shutdown()
	scn := testScene(t, false)

	presented := 0
	a := New(dev, scn, 64, 48, func(frame int, img *image.NRGBA) {
		presented++
		if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 48 {
			t.Errorf("frame %d has size %v", frame, img.Bounds())
		}
	})

	runFrames(t, a, 8, 0.016)
	if err := a.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if presented != 8 {
		t.Fatalf("presented %d frames, want 8", presented)
	}
	if a.fence.Completed() != 8 {
		t.Fatalf("fence completed = %d, want 8", a.fence.Completed())
	}
}

func TestDirtyCountersDrainAcrossRing(t *testing.T) {
	dev := gpu.NewDevice()
	defer dev.Shutdown()
	scn := testScene(t, false)
	a := New(dev, scn, 16, 16, nil)

	// Initial state: everything born dirty, drains over the first three
	// frames.
	runFrames(t, a, renderer.NumFrameResources, 0.016)
	for _, ri := range scn.AllItems {
		if ri.NumFramesDirty != 0 {
			t.Fatalf("item %q still dirty (%d) after %d frames", ri.Name, ri.NumFramesDirty, renderer.NumFrameResources)
		}
	}

	// A change restarts the countdown and decrements exactly once per
	// frame.
	item := scn.AllItems[3]
	item.SetWorld(mgl32.Translate3D(1, 2, 3))
	for want := renderer.NumFrameResources - 1; want >= 0; want-- {
		runFrames(t, a, 1, 0.016)
		if item.NumFramesDirty != want {
			t.Fatalf("dirty = %d, want %d", item.NumFramesDirty, want)
		}
	}
	if err := a.Flush(); err != nil {
		t.Fatal(err)
	}

	// Water stays perpetually dirty through material animation; items do
	// not.
	waterDirty := false
	for _, m := range scn.Materials {
		if m.Name == "water" && m.NumFramesDirty > 0 {
			waterDirty = true
		}
	}
	if !waterDirty {
		t.Fatal("water material not animating")
	}
}

func TestWaveVertexBufferTexcoords(t *testing.T) {
	dev := gpu.NewDevice()
	defer dev.Shutdown()
	scn := testScene(t, false)
	a := New(dev, scn, 16, 16, nil)

	scn.Waves.Disturb(10, 10, 0.4)
	runFrames(t, a, 1, 0.03)
	if err := a.Flush(); err != nil {
		t.Fatal(err)
	}

	vb := scn.WavesItem.DynamicVB
	if vb == nil {
		t.Fatal("waves item has no dynamic vertex buffer")
	}
	w := scn.Waves
	for _, i := range []int{0, 31, w.VertexCount() / 2, w.VertexCount() - 1} {
		v := vb.At(i)
		wantU := 0.5 + v.Pos.X()/w.Width()
		wantV := 0.5 - v.Pos.Z()/w.Depth()
		if v.TexC.X() != wantU || v.TexC.Y() != wantV {
			t.Fatalf("vertex %d texcoord = %v, want (%v, %v)", i, v.TexC, wantU, wantV)
		}
	}

	// Boundary vertices in the buffer are at rest.
	n := w.ColumnCount()
	for j := 0; j < n; j++ {
		if y := vb.At(j).Pos.Y(); y != 0 {
			t.Fatalf("boundary vertex %d has height %v", j, y)
		}
	}
}

func TestAutoDisturbAgitatesWater(t *testing.T) {
	dev := gpu.NewDevice()
	defer dev.Shutdown()
	scn := testScene(t, true)
	a := New(dev, scn, 16, 16, nil)

	// A second of frames crosses the disturbance period several times.
	runFrames(t, a, 10, 0.1)
	if err := a.Flush(); err != nil {
		t.Fatal(err)
	}

	w := scn.Waves
	moved := false
	for i := 0; i < w.VertexCount(); i++ {
		if w.Position(i).Y() != 0 {
			moved = true
			break
		}
	}
	if !moved {
		t.Fatal("auto disturb never agitated the water")
	}
}

func TestMouseCallbacksReachCamera(t *testing.T) {
	dev := gpu.NewDevice()
	defer dev.Shutdown()
	a := New(dev, testScene(t, false), 16, 16, nil)

	theta := a.Camera.Theta
	a.OnMouseDown(0, 0)
	a.OnMouseMove(40, 0, true, false)
	if a.Camera.Theta == theta {
		t.Fatal("left drag did not orbit the camera")
	}

	radius := a.Camera.Radius
	a.OnMouseDown(0, 0)
	a.OnMouseMove(10, 0, false, true)
	if a.Camera.Radius == radius {
		t.Fatal("right drag did not zoom the camera")
	}
}
