package renderer

import "github.com/AsperSarras/castlemoat/internal/gpu"

// DrawRenderItems records one draw per item against the given frame
// resource's constant buffers.
func DrawRenderItems(cl *gpu.CommandList, fr *FrameResource, items []*RenderItem) {
	for _, ri := range items {
		if ri.Geo.IsSprites() {
			cl.DrawPoints(gpu.DrawSprites{
				Sprites:       ri.Geo.Sprites,
				Texture:       ri.Mat.DiffuseTexture,
				ObjectCB:      fr.ObjectCB,
				ObjectIndex:   ri.ObjCBIndex,
				MaterialCB:    fr.MaterialCB,
				MaterialIndex: ri.Mat.MatCBIndex,
			})
			continue
		}
		cl.Draw(gpu.DrawIndexed{
			Vertices:        ri.Geo.Vertices,
			DynamicVertices: ri.DynamicVB,
			Indices:         ri.Geo.Indices,
			IndexCount:      ri.IndexCount,
			StartIndex:      ri.StartIndexLocation,
			BaseVertex:      ri.BaseVertexLocation,
			Texture:         ri.Mat.DiffuseTexture,
			ObjectCB:        fr.ObjectCB,
			ObjectIndex:     ri.ObjCBIndex,
			MaterialCB:      fr.MaterialCB,
			MaterialIndex:   ri.Mat.MatCBIndex,
		})
	}
}
