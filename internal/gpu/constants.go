// Package gpu is a software graphics device: a command queue executed by a
// worker goroutine that rasterizes into CPU framebuffers and signals fences
// on its own timeline. The host prepares constant buffers and command lists,
// submits them, and synchronizes through fences exactly as it would against
// real hardware.
package gpu

import "github.com/go-gl/mathgl/mgl32"

// MaxLights is the size of the light array in PassConstants.
const MaxLights = 16

// Light is a directional light when FalloffStart/End are zero; point and
// spot fields exist for layout parity but the demo only uses Lights[0] as
// directional.
type Light struct {
	Strength     mgl32.Vec3
	FalloffStart float32
	Direction    mgl32.Vec3
	FalloffEnd   float32
	Position     mgl32.Vec3
	SpotPower    float32
}

// ObjectConstants is the per-render-item constant block.
type ObjectConstants struct {
	World        mgl32.Mat4
	TexTransform mgl32.Mat4
}

// MaterialConstants is the per-material constant block.
type MaterialConstants struct {
	DiffuseAlbedo mgl32.Vec4
	FresnelR0     mgl32.Vec3
	Roughness     float32
	MatTransform  mgl32.Mat4
}

// PassConstants is the per-frame constant block shared by every draw.
type PassConstants struct {
	View         mgl32.Mat4
	Proj         mgl32.Mat4
	ViewProj     mgl32.Mat4
	EyePosW      mgl32.Vec3
	NearZ        float32
	FarZ         float32
	TotalTime    float32
	DeltaTime    float32
	AmbientLight mgl32.Vec4
	FogColor     mgl32.Vec4
	FogStart     float32
	FogRange     float32
	Lights       [MaxLights]Light
}

// Vertex is the standard mesh vertex layout.
type Vertex struct {
	Pos    mgl32.Vec3
	Normal mgl32.Vec3
	TexC   mgl32.Vec2
}

// SpriteVertex is a point sprite: a world-space anchor expanded to a
// camera-facing quad of the given size at execution time.
type SpriteVertex struct {
	Pos  mgl32.Vec3
	Size mgl32.Vec2
}
