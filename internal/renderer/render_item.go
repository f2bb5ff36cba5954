package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/AsperSarras/castlemoat/internal/gpu"
)

// RenderLayer partitions items by pipeline. Draw order follows the enum
// order.
type RenderLayer int

const (
	LayerOpaque RenderLayer = iota
	LayerAlphaTested
	LayerTreeSprites
	LayerTransparent
	LayerCount
)

// ParseLayer maps a scene-file layer name to a RenderLayer.
func ParseLayer(s string) (RenderLayer, bool) {
	switch s {
	case "opaque", "":
		return LayerOpaque, true
	case "alphaTested":
		return LayerAlphaTested, true
	case "treeSprites":
		return LayerTreeSprites, true
	case "transparent":
		return LayerTransparent, true
	}
	return LayerOpaque, false
}

// RenderItem is one draw: a piece of geometry with its world placement,
// material and constant-buffer slot. NumFramesDirty counts how many ring
// slots still hold stale object constants; it is reset to the ring depth
// on every change and decremented once per frame as slots are refreshed.
type RenderItem struct {
	Name string

	World        mgl32.Mat4
	TexTransform mgl32.Mat4

	NumFramesDirty int

	ObjCBIndex int
	Mat        *Material
	Geo        *MeshGeometry
	Layer      RenderLayer

	IndexCount         int
	StartIndexLocation int
	BaseVertexLocation int

	// DynamicVB, when set, overrides the geometry's static vertices with
	// the current frame's host-written buffer (the wave surface).
	DynamicVB *gpu.UploadBuffer[gpu.Vertex]
}

// NewRenderItem creates an item born dirty so every ring slot picks up the
// initial transforms.
func NewRenderItem(name string) *RenderItem {
	return &RenderItem{
		Name:           name,
		World:          mgl32.Ident4(),
		TexTransform:   mgl32.Ident4(),
		NumFramesDirty: NumFrameResources,
	}
}

// SetWorld replaces the world transform and restarts the dirty countdown.
func (ri *RenderItem) SetWorld(m mgl32.Mat4) {
	ri.World = m
	ri.NumFramesDirty = NumFrameResources
}

// SetTexTransform replaces the texture transform and restarts the dirty
// countdown.
func (ri *RenderItem) SetTexTransform(m mgl32.Mat4) {
	ri.TexTransform = m
	ri.NumFramesDirty = NumFrameResources
}
