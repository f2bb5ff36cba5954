// Package engine runs the demo: it owns the frame-resource ring, the
// camera and the per-frame constant updates, and turns the scene into
// command lists for the device each frame.
package engine

import (
	"image"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/AsperSarras/castlemoat/internal/gpu"
	"github.com/AsperSarras/castlemoat/internal/logger"
	"github.com/AsperSarras/castlemoat/internal/renderer"
	"github.com/AsperSarras/castlemoat/internal/scene"
)

// SwapChainBufferCount is the back-buffer ring depth.
const SwapChainBufferCount = 2

const disturbPeriod = 0.25

// App drives one frame at a time: Update prepares the next frame-resource
// slot, Draw records and submits it.
type App struct {
	device *gpu.Device
	queue  *gpu.Queue
	fence  *gpu.Fence
	swap   *gpu.SwapChain
	cl     *gpu.CommandList

	ring         *renderer.Ring
	currentFence uint64
	cur          *renderer.FrameResource

	scn    *scene.Scene
	Camera *renderer.OrbitCamera

	pipelines [renderer.LayerCount]*gpu.Pipeline

	width, height int
	totalTime     float32
	disturbClock  float32
	rng           *rand.Rand
}

// New builds the app around a device and a built scene. present receives
// each finished frame and may be nil.
func New(device *gpu.Device, scn *scene.Scene, width, height int,
	present func(frame int, img *image.NRGBA)) *App {

	a := &App{
		device: device,
		queue:  device.NewQueue(),
		fence:  device.NewFence(),
		cl:     gpu.NewCommandList(),
		scn:    scn,
		Camera: renderer.NewOrbitCamera(),
		width:  width,
		height: height,
		rng:    rand.New(rand.NewSource(1)),
	}
	a.swap = device.NewSwapChain(width, height, SwapChainBufferCount, present)
	a.ring = renderer.NewRing(len(scn.AllItems), len(scn.Materials), scn.Waves.VertexCount())

	a.pipelines[renderer.LayerOpaque] = &gpu.Pipeline{Name: "opaque"}
	a.pipelines[renderer.LayerAlphaTested] = &gpu.Pipeline{Name: "alphaTested", AlphaTest: true}
	a.pipelines[renderer.LayerTreeSprites] = &gpu.Pipeline{Name: "treeSprites", AlphaTest: true}
	a.pipelines[renderer.LayerTransparent] = &gpu.Pipeline{Name: "transparent", Blend: gpu.BlendAlpha}

	logger.Log.Info("engine ready",
		zap.Int("width", width), zap.Int("height", height),
		zap.Int("items", len(scn.AllItems)))
	return a
}

// Update advances simulation time and fills the next frame-resource slot.
// It blocks when the device is more than the ring depth behind.
func (a *App) Update(dt float32) error {
	fr, err := a.ring.Advance(a.fence)
	if err != nil {
		return err
	}
	a.cur = fr
	a.totalTime += dt

	a.animateMaterials(dt)
	a.updateObjectCBs(fr)
	a.updateMaterialCBs(fr)
	a.updateMainPassCB(fr, dt)
	a.updateWaves(fr, dt)
	return nil
}

// Draw records the frame, submits it, presents, and marks the slot with a
// new fence value.
func (a *App) Draw() error {
	fr := a.cur
	doc := a.scn.Doc

	a.cl.Reset()
	a.cl.SetRenderTarget(a.swap.CurrentBackBuffer())
	a.cl.Clear(mgl32.Vec4{doc.FogColor[0], doc.FogColor[1], doc.FogColor[2], doc.FogColor[3]})
	a.cl.SetPassConstants(fr.PassCB)
	for layer := renderer.RenderLayer(0); layer < renderer.LayerCount; layer++ {
		items := a.scn.Layers[layer]
		if len(items) == 0 {
			continue
		}
		a.cl.SetPipeline(a.pipelines[layer])
		renderer.DrawRenderItems(a.cl, fr, items)
	}
	a.cl.Close()

	a.queue.Execute(a.cl)
	a.swap.Present(a.queue)

	a.currentFence++
	fr.Fence = a.currentFence
	a.queue.Signal(a.fence, a.currentFence)
	return nil
}

// Flush waits for the device to finish all submitted work.
func (a *App) Flush() error {
	return a.queue.Flush()
}

// OnMouseDown anchors a camera drag.
func (a *App) OnMouseDown(x, y float32) {
	a.Camera.OnMouseDown(x, y)
}

// OnMouseMove orbits or zooms the camera.
func (a *App) OnMouseMove(x, y float32, left, right bool) {
	a.Camera.OnMouseMove(x, y, left, right)
}

// animateMaterials scrolls the water texture.
func (a *App) animateMaterials(dt float32) {
	for _, m := range a.scn.Materials {
		if m.Name != "water" {
			continue
		}
		tu := m.MatTransform.At(0, 3) + 0.1*dt
		tv := m.MatTransform.At(1, 3) + 0.02*dt
		if tu >= 1 {
			tu -= 1
		}
		if tv >= 1 {
			tv -= 1
		}
		m.SetMatTransform(mgl32.Translate3D(tu, tv, 0))
	}
}

// updateObjectCBs refreshes the slot's object constants for items whose
// dirty countdown has not drained.
func (a *App) updateObjectCBs(fr *renderer.FrameResource) {
	for _, ri := range a.scn.AllItems {
		if ri.NumFramesDirty <= 0 {
			continue
		}
		fr.ObjectCB.CopyData(ri.ObjCBIndex, gpu.ObjectConstants{
			World:        ri.World,
			TexTransform: ri.TexTransform,
		})
		ri.NumFramesDirty--
	}
}

func (a *App) updateMaterialCBs(fr *renderer.FrameResource) {
	for _, m := range a.scn.Materials {
		if m.NumFramesDirty <= 0 {
			continue
		}
		fr.MaterialCB.CopyData(m.MatCBIndex, m.Constants())
		m.NumFramesDirty--
	}
}

func (a *App) updateMainPassCB(fr *renderer.FrameResource, dt float32) {
	doc := a.scn.Doc
	aspect := float32(a.width) / float32(a.height)
	view := a.Camera.GetViewMatrix()
	proj := a.Camera.GetProjectionMatrix(aspect)

	pc := gpu.PassConstants{
		View:      view,
		Proj:      proj,
		ViewProj:  proj.Mul4(view),
		EyePosW:   a.Camera.EyePos(),
		NearZ:     a.Camera.NearZ,
		FarZ:      a.Camera.FarZ,
		TotalTime: a.totalTime,
		DeltaTime: dt,
		AmbientLight: mgl32.Vec4{
			doc.Ambient[0], doc.Ambient[1], doc.Ambient[2], doc.Ambient[3],
		},
		FogColor: mgl32.Vec4{
			doc.FogColor[0], doc.FogColor[1], doc.FogColor[2], doc.FogColor[3],
		},
		FogStart: doc.FogStart,
		FogRange: doc.FogRange,
	}
	pc.Lights[0] = gpu.Light{
		Direction: mgl32.Vec3{doc.Light.Direction[0], doc.Light.Direction[1], doc.Light.Direction[2]},
		Strength:  mgl32.Vec3{doc.Light.Strength[0], doc.Light.Strength[1], doc.Light.Strength[2]},
	}
	fr.PassCB.CopyData(0, pc)
}

// updateWaves steps the simulation and rewrites this slot's wave vertex
// buffer from it.
func (a *App) updateWaves(fr *renderer.FrameResource, dt float32) {
	w := a.scn.Waves

	if a.scn.Doc.Waves.AutoDisturb {
		a.disturbClock += dt
		for a.disturbClock >= disturbPeriod {
			a.disturbClock -= disturbPeriod
			i := 4 + a.rng.Intn(w.RowCount()-8)
			j := 4 + a.rng.Intn(w.ColumnCount()-8)
			r := 0.2 + 0.3*a.rng.Float32()
			w.Disturb(i, j, r)
		}
	}

	w.Update(dt)

	for i := 0; i < w.VertexCount(); i++ {
		p := w.Position(i)
		fr.WavesVB.CopyData(i, gpu.Vertex{
			Pos:    p,
			Normal: w.Normal(i),
			TexC: mgl32.Vec2{
				0.5 + p.X()/w.Width(),
				0.5 - p.Z()/w.Depth(),
			},
		})
	}
	a.scn.WavesItem.DynamicVB = fr.WavesVB
}
