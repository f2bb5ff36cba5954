package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/AsperSarras/castlemoat/internal/gpu"
)

// Material is a shared surface description. Like render items it carries a
// dirty countdown so constant updates reach every ring slot.
type Material struct {
	Name       string
	MatCBIndex int

	DiffuseTexture *gpu.Texture
	DiffuseAlbedo  mgl32.Vec4
	FresnelR0      mgl32.Vec3
	Roughness      float32
	MatTransform   mgl32.Mat4

	NumFramesDirty int
}

// NewMaterial creates a material born dirty.
func NewMaterial(name string, cbIndex int) *Material {
	return &Material{
		Name:           name,
		MatCBIndex:     cbIndex,
		DiffuseAlbedo:  mgl32.Vec4{1, 1, 1, 1},
		FresnelR0:      mgl32.Vec3{0.01, 0.01, 0.01},
		Roughness:      0.25,
		MatTransform:   mgl32.Ident4(),
		NumFramesDirty: NumFrameResources,
	}
}

// SetMatTransform replaces the material UV transform and restarts the
// dirty countdown.
func (m *Material) SetMatTransform(t mgl32.Mat4) {
	m.MatTransform = t
	m.NumFramesDirty = NumFrameResources
}

// Constants packs the material into its constant-buffer layout.
func (m *Material) Constants() gpu.MaterialConstants {
	return gpu.MaterialConstants{
		DiffuseAlbedo: m.DiffuseAlbedo,
		FresnelR0:     m.FresnelR0,
		Roughness:     m.Roughness,
		MatTransform:  m.MatTransform,
	}
}
