package geometry

import (
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl32"
)

// HeightFunc maps a ground-plane position to a terrain height.
type HeightFunc func(x, z float32) float32

// NormalFunc gives the analytic surface normal where one is available.
type NormalFunc func(x, z float32) mgl32.Vec3

// Flat returns a constant-height terrain.
func Flat(offset float32) HeightFunc {
	return func(x, z float32) float32 { return offset }
}

// Hills is the classic rolling-hills height field with its analytic
// normal.
func Hills() (HeightFunc, NormalFunc) {
	h := func(x, z float32) float32 {
		return 0.3 * (z*float32(math.Sin(0.1*float64(x))) + x*float32(math.Cos(0.1*float64(z))))
	}
	n := func(x, z float32) mgl32.Vec3 {
		fx, fz := float64(x), float64(z)
		nrm := mgl32.Vec3{
			float32(-0.03*fz*math.Cos(0.1*fx) - 0.3*math.Cos(0.1*fz)),
			1,
			float32(-0.3*math.Sin(0.1*fx) + 0.03*fx*math.Sin(0.1*fz)),
		}
		return nrm.Normalize()
	}
	return h, n
}

// PerlinHills builds a noise-based terrain. Amplitude scales the height,
// frequency stretches the noise over the ground plane.
func PerlinHills(seed int64, amplitude, frequency float64) HeightFunc {
	p := perlin.NewPerlin(2, 2, 3, seed)
	return func(x, z float32) float32 {
		return float32(amplitude * p.Noise2D(float64(x)*frequency, float64(z)*frequency))
	}
}

// ApplyHeight displaces a grid mesh vertically by h and, when n is given,
// replaces vertex normals with the analytic ones.
func ApplyHeight(md *MeshData, h HeightFunc, n NormalFunc) {
	for i := range md.Vertices {
		v := &md.Vertices[i]
		v.Pos[1] = h(v.Pos.X(), v.Pos.Z())
		if n != nil {
			v.Normal = n(v.Pos.X(), v.Pos.Z())
		}
	}
}
