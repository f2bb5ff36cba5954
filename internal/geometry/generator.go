// Package geometry procedurally generates the meshes the scene is built
// from. All meshes are triangle lists with 16-bit indices.
package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/AsperSarras/castlemoat/internal/gpu"
)

// MeshData is generator output: positions, normals and texcoords plus a
// triangle-list index buffer.
type MeshData struct {
	Vertices []gpu.Vertex
	Indices  []uint16
}

func vert(x, y, z, nx, ny, nz, u, v float32) gpu.Vertex {
	return gpu.Vertex{
		Pos:    mgl32.Vec3{x, y, z},
		Normal: mgl32.Vec3{nx, ny, nz},
		TexC:   mgl32.Vec2{u, v},
	}
}

// Grid builds an m×n vertex grid in the xz-plane centered at the origin,
// width along x and depth along z, texcoords spanning [0,1].
func Grid(width, depth float32, m, n int) *MeshData {
	md := &MeshData{
		Vertices: make([]gpu.Vertex, 0, m*n),
		Indices:  make([]uint16, 0, (m-1)*(n-1)*6),
	}

	dx := width / float32(n-1)
	dz := depth / float32(m-1)
	du := 1 / float32(n-1)
	dv := 1 / float32(m-1)

	for i := 0; i < m; i++ {
		z := 0.5*depth - float32(i)*dz
		for j := 0; j < n; j++ {
			x := -0.5*width + float32(j)*dx
			md.Vertices = append(md.Vertices,
				vert(x, 0, z, 0, 1, 0, float32(j)*du, float32(i)*dv))
		}
	}
	for i := 0; i < m-1; i++ {
		for j := 0; j < n-1; j++ {
			a := uint16(i*n + j)
			b := uint16(i*n + j + 1)
			c := uint16((i+1)*n + j)
			d := uint16((i+1)*n + j + 1)
			md.Indices = append(md.Indices, a, b, c, c, b, d)
		}
	}
	return md
}

// Box builds an axis-aligned box centered at the origin, 4 vertices per
// face so normals stay flat.
func Box(width, height, depth float32) *MeshData {
	w, h, d := width/2, height/2, depth/2
	md := &MeshData{}

	face := func(a, b, c, e mgl32.Vec3, n mgl32.Vec3) {
		base := uint16(len(md.Vertices))
		md.Vertices = append(md.Vertices,
			gpu.Vertex{Pos: a, Normal: n, TexC: mgl32.Vec2{0, 1}},
			gpu.Vertex{Pos: b, Normal: n, TexC: mgl32.Vec2{0, 0}},
			gpu.Vertex{Pos: c, Normal: n, TexC: mgl32.Vec2{1, 0}},
			gpu.Vertex{Pos: e, Normal: n, TexC: mgl32.Vec2{1, 1}},
		)
		md.Indices = append(md.Indices, base, base+1, base+2, base, base+2, base+3)
	}

	face(mgl32.Vec3{-w, -h, -d}, mgl32.Vec3{-w, h, -d}, mgl32.Vec3{w, h, -d}, mgl32.Vec3{w, -h, -d}, mgl32.Vec3{0, 0, -1})
	face(mgl32.Vec3{w, -h, d}, mgl32.Vec3{w, h, d}, mgl32.Vec3{-w, h, d}, mgl32.Vec3{-w, -h, d}, mgl32.Vec3{0, 0, 1})
	face(mgl32.Vec3{-w, -h, d}, mgl32.Vec3{-w, h, d}, mgl32.Vec3{-w, h, -d}, mgl32.Vec3{-w, -h, -d}, mgl32.Vec3{-1, 0, 0})
	face(mgl32.Vec3{w, -h, -d}, mgl32.Vec3{w, h, -d}, mgl32.Vec3{w, h, d}, mgl32.Vec3{w, -h, d}, mgl32.Vec3{1, 0, 0})
	face(mgl32.Vec3{-w, h, -d}, mgl32.Vec3{-w, h, d}, mgl32.Vec3{w, h, d}, mgl32.Vec3{w, h, -d}, mgl32.Vec3{0, 1, 0})
	face(mgl32.Vec3{-w, -h, d}, mgl32.Vec3{-w, -h, -d}, mgl32.Vec3{w, -h, -d}, mgl32.Vec3{w, -h, d}, mgl32.Vec3{0, -1, 0})
	return md
}

// Cylinder builds a cylinder along y centered at the origin. A zero top
// radius yields a cone.
func Cylinder(bottomRadius, topRadius, height float32, slices, stacks int) *MeshData {
	md := &MeshData{}

	stackHeight := height / float32(stacks)
	radiusStep := (topRadius - bottomRadius) / float32(stacks)
	dr := bottomRadius - topRadius
	dTheta := 2 * math.Pi / float64(slices)

	for i := 0; i <= stacks; i++ {
		y := -0.5*height + float32(i)*stackHeight
		r := bottomRadius + float32(i)*radiusStep
		for j := 0; j <= slices; j++ {
			c := float32(math.Cos(float64(j) * dTheta))
			s := float32(math.Sin(float64(j) * dTheta))

			tangent := mgl32.Vec3{-s, 0, c}
			bitangent := mgl32.Vec3{dr * c, -height, dr * s}
			normal := tangent.Cross(bitangent).Normalize()

			md.Vertices = append(md.Vertices, gpu.Vertex{
				Pos:    mgl32.Vec3{r * c, y, r * s},
				Normal: normal,
				TexC:   mgl32.Vec2{float32(j) / float32(slices), 1 - float32(i)/float32(stacks)},
			})
		}
	}

	ring := slices + 1
	for i := 0; i < stacks; i++ {
		for j := 0; j < slices; j++ {
			a := uint16(i*ring + j)
			b := uint16((i+1)*ring + j)
			c := uint16((i+1)*ring + j + 1)
			d := uint16(i*ring + j + 1)
			md.Indices = append(md.Indices, a, b, c, a, c, d)
		}
	}

	buildCap(md, topRadius, 0.5*height, slices, true)
	buildCap(md, bottomRadius, -0.5*height, slices, false)
	return md
}

func buildCap(md *MeshData, radius, y float32, slices int, top bool) {
	base := uint16(len(md.Vertices))
	ny := float32(1)
	if !top {
		ny = -1
	}
	dTheta := 2 * math.Pi / float64(slices)
	for j := 0; j <= slices; j++ {
		x := radius * float32(math.Cos(float64(j)*dTheta))
		z := radius * float32(math.Sin(float64(j)*dTheta))
		md.Vertices = append(md.Vertices, vert(x, y, z, 0, ny, 0, x/2+0.5, z/2+0.5))
	}
	center := uint16(len(md.Vertices))
	md.Vertices = append(md.Vertices, vert(0, y, 0, 0, ny, 0, 0.5, 0.5))
	for j := 0; j < slices; j++ {
		if top {
			md.Indices = append(md.Indices, center, base+uint16(j+1), base+uint16(j))
		} else {
			md.Indices = append(md.Indices, center, base+uint16(j), base+uint16(j+1))
		}
	}
}

// Pyramid builds a four-sided pyramid with a rectangular base centered at
// the origin, apex on +y.
func Pyramid(width, height, depth float32) *MeshData {
	w, h, d := width/2, height/2, depth/2
	md := &MeshData{}
	apex := mgl32.Vec3{0, h, 0}
	corners := [4]mgl32.Vec3{
		{-w, -h, -d}, {w, -h, -d}, {w, -h, d}, {-w, -h, d},
	}

	for i := 0; i < 4; i++ {
		a := corners[i]
		b := corners[(i+1)%4]
		n := b.Sub(apex).Cross(a.Sub(apex)).Normalize()
		base := uint16(len(md.Vertices))
		md.Vertices = append(md.Vertices,
			gpu.Vertex{Pos: apex, Normal: n, TexC: mgl32.Vec2{0.5, 0}},
			gpu.Vertex{Pos: a, Normal: n, TexC: mgl32.Vec2{0, 1}},
			gpu.Vertex{Pos: b, Normal: n, TexC: mgl32.Vec2{1, 1}},
		)
		md.Indices = append(md.Indices, base, base+2, base+1)
	}

	// Base.
	base := uint16(len(md.Vertices))
	for i, c := range corners {
		uv := [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}[i]
		md.Vertices = append(md.Vertices, gpu.Vertex{Pos: c, Normal: mgl32.Vec3{0, -1, 0}, TexC: uv})
	}
	md.Indices = append(md.Indices, base, base+1, base+2, base, base+2, base+3)
	return md
}

// Wedge builds a ramp: full height at -x falling to the base at +x.
func Wedge(width, height, depth float32) *MeshData {
	w, h, d := width/2, height/2, depth/2
	md := &MeshData{}

	quad := func(a, b, c, e mgl32.Vec3, n mgl32.Vec3) {
		base := uint16(len(md.Vertices))
		md.Vertices = append(md.Vertices,
			gpu.Vertex{Pos: a, Normal: n, TexC: mgl32.Vec2{0, 1}},
			gpu.Vertex{Pos: b, Normal: n, TexC: mgl32.Vec2{0, 0}},
			gpu.Vertex{Pos: c, Normal: n, TexC: mgl32.Vec2{1, 0}},
			gpu.Vertex{Pos: e, Normal: n, TexC: mgl32.Vec2{1, 1}},
		)
		md.Indices = append(md.Indices, base, base+1, base+2, base, base+2, base+3)
	}

	slopeN := mgl32.Vec3{height, width, 0}.Normalize()
	// Slope from the top edge at -x down to the base edge at +x.
	quad(mgl32.Vec3{-w, h, -d}, mgl32.Vec3{-w, h, d}, mgl32.Vec3{w, -h, d}, mgl32.Vec3{w, -h, -d}, slopeN)
	// Vertical back face.
	quad(mgl32.Vec3{-w, -h, d}, mgl32.Vec3{-w, h, d}, mgl32.Vec3{-w, h, -d}, mgl32.Vec3{-w, -h, -d}, mgl32.Vec3{-1, 0, 0})
	// Bottom.
	quad(mgl32.Vec3{-w, -h, -d}, mgl32.Vec3{w, -h, -d}, mgl32.Vec3{w, -h, d}, mgl32.Vec3{-w, -h, d}, mgl32.Vec3{0, -1, 0})

	tri := func(a, b, c mgl32.Vec3, n mgl32.Vec3) {
		base := uint16(len(md.Vertices))
		md.Vertices = append(md.Vertices,
			gpu.Vertex{Pos: a, Normal: n, TexC: mgl32.Vec2{0, 1}},
			gpu.Vertex{Pos: b, Normal: n, TexC: mgl32.Vec2{0, 0}},
			gpu.Vertex{Pos: c, Normal: n, TexC: mgl32.Vec2{1, 1}},
		)
		md.Indices = append(md.Indices, base, base+1, base+2)
	}
	tri(mgl32.Vec3{-w, -h, -d}, mgl32.Vec3{-w, h, -d}, mgl32.Vec3{w, -h, -d}, mgl32.Vec3{0, 0, -1})
	tri(mgl32.Vec3{w, -h, d}, mgl32.Vec3{-w, h, d}, mgl32.Vec3{-w, -h, d}, mgl32.Vec3{0, 0, 1})
	return md
}

// Diamond builds an elongated octahedron: apexes on ±y, a four-point
// equator in the xz-plane.
func Diamond(width, height, depth float32) *MeshData {
	w, h, d := width/2, height/2, depth/2
	md := &MeshData{}
	top := mgl32.Vec3{0, h, 0}
	bottom := mgl32.Vec3{0, -h, 0}
	eq := [4]mgl32.Vec3{
		{w, 0, 0}, {0, 0, d}, {-w, 0, 0}, {0, 0, -d},
	}

	tri := func(a, b, c mgl32.Vec3) {
		n := b.Sub(a).Cross(c.Sub(a)).Normalize()
		base := uint16(len(md.Vertices))
		md.Vertices = append(md.Vertices,
			gpu.Vertex{Pos: a, Normal: n, TexC: mgl32.Vec2{0.5, 0}},
			gpu.Vertex{Pos: b, Normal: n, TexC: mgl32.Vec2{0, 1}},
			gpu.Vertex{Pos: c, Normal: n, TexC: mgl32.Vec2{1, 1}},
		)
		md.Indices = append(md.Indices, base, base+1, base+2)
	}
	for i := 0; i < 4; i++ {
		a := eq[i]
		b := eq[(i+1)%4]
		tri(top, b, a)
		tri(bottom, a, b)
	}
	return md
}
