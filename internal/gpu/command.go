package gpu

import "github.com/go-gl/mathgl/mgl32"

// BlendMode selects how fragments combine with the render target.
type BlendMode int

const (
	BlendOpaque BlendMode = iota
	BlendAlpha
)

// Pipeline is a fixed render state: the software equivalent of a compiled
// pipeline state object.
type Pipeline struct {
	Name      string
	Blend     BlendMode
	AlphaTest bool // discard fragments with sampled alpha < 0.1
}

// execState is the mutable state a command list replay threads through its
// commands on the queue worker.
type execState struct {
	target   *RenderTarget
	pipeline *Pipeline
	pass     PassConstants
}

// CommandList records rendering commands for later execution on a queue.
// Commands capture buffer references, not values: constants are read when
// the list executes, so a host overwrite of an in-flight buffer is a real,
// observable hazard.
type CommandList struct {
	cmds   []func(*execState)
	closed bool
}

// NewCommandList returns an open, empty command list.
func NewCommandList() *CommandList {
	return &CommandList{}
}

// Reset discards recorded commands and reopens the list. The old command
// array is abandoned, not reused: a prior submission may still be
// replaying it on the queue worker.
func (cl *CommandList) Reset() {
	cl.cmds = nil
	cl.closed = false
}

// Close finishes recording. A closed list may be executed any number of
// times until the next Reset.
func (cl *CommandList) Close() {
	cl.closed = true
}

// SetRenderTarget binds the color+depth target for subsequent draws.
func (cl *CommandList) SetRenderTarget(rt *RenderTarget) {
	cl.cmds = append(cl.cmds, func(st *execState) {
		st.target = rt
	})
}

// Clear fills the bound target with the given color and resets depth.
func (cl *CommandList) Clear(color mgl32.Vec4) {
	cl.cmds = append(cl.cmds, func(st *execState) {
		if st.target != nil {
			st.target.clear(color)
		}
	})
}

// SetPipeline binds the render state for subsequent draws.
func (cl *CommandList) SetPipeline(p *Pipeline) {
	cl.cmds = append(cl.cmds, func(st *execState) {
		st.pipeline = p
	})
}

// SetPassConstants binds the per-frame constants. The buffer is read at
// execution time.
func (cl *CommandList) SetPassConstants(cb *UploadBuffer[PassConstants]) {
	cl.cmds = append(cl.cmds, func(st *execState) {
		st.pass = cb.At(0)
	})
}

// CopyTarget records a copy of the bound target's color buffer into dst,
// the software analogue of a copy to a readback buffer. dst must hold
// width*height*4 bytes.
func (cl *CommandList) CopyTarget(dst []uint8) {
	cl.cmds = append(cl.cmds, func(st *execState) {
		if st.target != nil {
			copy(dst, st.target.Color)
		}
	})
}

// DrawIndexed describes one indexed draw of triangle-list geometry.
type DrawIndexed struct {
	// Vertices is the static vertex buffer. DynamicVertices, when set,
	// overrides it with a host-updated buffer (the wave surface).
	Vertices        []Vertex
	DynamicVertices *UploadBuffer[Vertex]
	Indices         []uint16

	IndexCount, StartIndex, BaseVertex int

	Texture *Texture

	ObjectCB    *UploadBuffer[ObjectConstants]
	ObjectIndex int

	MaterialCB    *UploadBuffer[MaterialConstants]
	MaterialIndex int
}

// Draw records an indexed draw.
func (cl *CommandList) Draw(d DrawIndexed) {
	cl.cmds = append(cl.cmds, func(st *execState) {
		drawIndexed(st, &d)
	})
}

// DrawSprites describes one draw of point sprites expanded to
// camera-facing quads at execution time.
type DrawSprites struct {
	Sprites []SpriteVertex

	Texture *Texture

	ObjectCB    *UploadBuffer[ObjectConstants]
	ObjectIndex int

	MaterialCB    *UploadBuffer[MaterialConstants]
	MaterialIndex int
}

// DrawPoints records a point-sprite draw.
func (cl *CommandList) DrawPoints(d DrawSprites) {
	cl.cmds = append(cl.cmds, func(st *execState) {
		drawSprites(st, &d)
	})
}
