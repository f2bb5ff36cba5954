package renderer

import "github.com/AsperSarras/castlemoat/internal/gpu"

// Submesh is a range of a shared index buffer.
type Submesh struct {
	IndexCount         int
	StartIndexLocation int
	BaseVertexLocation int
}

// MeshGeometry is a vertex/index buffer pair with named submesh ranges.
// Tree billboards use Sprites instead of Vertices/Indices.
type MeshGeometry struct {
	Name string

	Vertices []gpu.Vertex
	Indices  []uint16
	Sprites  []gpu.SpriteVertex

	DrawArgs map[string]Submesh
}

// IsSprites reports whether the geometry is a point-sprite set.
func (g *MeshGeometry) IsSprites() bool {
	return len(g.Sprites) > 0
}
