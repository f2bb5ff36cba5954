package gpu

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const depthFar = float32(math.MaxFloat32)

// RenderTarget is a color+depth buffer pair the rasterizer draws into.
// Color is tightly packed NRGBA.
type RenderTarget struct {
	Width, Height int
	Color         []uint8
	Depth         []float32
}

// NewRenderTarget allocates a target of the given size.
func NewRenderTarget(w, h int) *RenderTarget {
	return &RenderTarget{
		Width:  w,
		Height: h,
		Color:  make([]uint8, w*h*4),
		Depth:  make([]float32, w*h),
	}
}

func (rt *RenderTarget) clear(color mgl32.Vec4) {
	r := clamp255(color.X() * 255)
	g := clamp255(color.Y() * 255)
	b := clamp255(color.Z() * 255)
	a := clamp255(color.W() * 255)
	for i := 0; i < len(rt.Color); i += 4 {
		rt.Color[i] = r
		rt.Color[i+1] = g
		rt.Color[i+2] = b
		rt.Color[i+3] = a
	}
	for i := range rt.Depth {
		rt.Depth[i] = depthFar
	}
}

func clamp255(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// shadedVertex is a vertex after transform and per-vertex lighting, ready
// for interpolation across a triangle.
type shadedVertex struct {
	sx, sy float32 // screen position
	depth  float32 // NDC z, smaller is nearer
	u, v   float32
	diff   mgl32.Vec3 // light factor multiplying albedo*texture
	spec   mgl32.Vec3 // additive specular
	ok     bool       // false when clipped by the near plane
}

func shadeVertex(st *execState, world, uvXform mgl32.Mat4, mat MaterialConstants, v Vertex) shadedVertex {
	var out shadedVertex

	posW4 := world.Mul4x1(mgl32.Vec4{v.Pos.X(), v.Pos.Y(), v.Pos.Z(), 1})
	posW := posW4.Vec3()
	clip := st.pass.ViewProj.Mul4x1(posW4)
	w := clip.W()
	if w <= 1e-4 {
		return out // behind the near plane, reject at the triangle level
	}
	ndcX := clip.X() / w
	ndcY := clip.Y() / w
	out.depth = clip.Z() / w
	out.sx = (ndcX*0.5 + 0.5) * float32(st.target.Width)
	out.sy = (1 - (ndcY*0.5 + 0.5)) * float32(st.target.Height)

	uv4 := uvXform.Mul4x1(mgl32.Vec4{v.TexC.X(), v.TexC.Y(), 0, 1})
	out.u, out.v = uv4.X(), uv4.Y()

	// Normals transform by the world rotation/scale; the scene only uses
	// uniform-enough scales for this to hold up visually.
	n := world.Mat3().Mul3x1(v.Normal)
	if l := n.Len(); l > 1e-6 {
		n = n.Mul(1 / l)
	}

	amb := st.pass.AmbientLight.Vec3()
	out.diff = amb

	light := st.pass.Lights[0]
	ldir := light.Direction
	if l := ldir.Len(); l > 1e-6 {
		ldir = ldir.Mul(1 / l)
	}
	toLight := ldir.Mul(-1)
	ndotl := n.Dot(toLight)
	if ndotl > 0 {
		out.diff = out.diff.Add(light.Strength.Mul(ndotl))

		toEye := st.pass.EyePosW.Sub(posW)
		if l := toEye.Len(); l > 1e-6 {
			toEye = toEye.Mul(1 / l)
		}
		half := toEye.Add(toLight)
		if l := half.Len(); l > 1e-6 {
			half = half.Mul(1 / l)
		}
		shininess := (1 - mat.Roughness) * 256
		ndoth := n.Dot(half)
		if ndoth < 0 {
			ndoth = 0
		}
		specFactor := (shininess + 8) / 8 * float32(math.Pow(float64(ndoth), float64(shininess)))
		fresnel := mat.FresnelR0
		out.spec = mgl32.Vec3{
			light.Strength.X() * ndotl * fresnel.X() * specFactor,
			light.Strength.Y() * ndotl * fresnel.Y() * specFactor,
			light.Strength.Z() * ndotl * fresnel.Z() * specFactor,
		}
	}

	out.ok = true
	return out
}

func drawIndexed(st *execState, d *DrawIndexed) {
	if st.target == nil || st.pipeline == nil {
		return
	}
	verts := d.Vertices
	if d.DynamicVertices != nil {
		verts = d.DynamicVertices.Slice()
	}
	obj := d.ObjectCB.At(d.ObjectIndex)
	mat := d.MaterialCB.At(d.MaterialIndex)
	uvXform := mat.MatTransform.Mul4(obj.TexTransform)

	end := d.StartIndex + d.IndexCount
	for i := d.StartIndex; i+3 <= end; i += 3 {
		i0 := int(d.Indices[i]) + d.BaseVertex
		i1 := int(d.Indices[i+1]) + d.BaseVertex
		i2 := int(d.Indices[i+2]) + d.BaseVertex
		a := shadeVertex(st, obj.World, uvXform, mat, verts[i0])
		b := shadeVertex(st, obj.World, uvXform, mat, verts[i1])
		c := shadeVertex(st, obj.World, uvXform, mat, verts[i2])
		rasterTriangle(st, a, b, c, d.Texture, mat.DiffuseAlbedo)
	}
}

func drawSprites(st *execState, d *DrawSprites) {
	if st.target == nil || st.pipeline == nil {
		return
	}
	obj := d.ObjectCB.At(d.ObjectIndex)
	mat := d.MaterialCB.At(d.MaterialIndex)
	uvXform := mat.MatTransform.Mul4(obj.TexTransform)
	up := mgl32.Vec3{0, 1, 0}

	for _, s := range d.Sprites {
		center := obj.World.Mul4x1(mgl32.Vec4{s.Pos.X(), s.Pos.Y(), s.Pos.Z(), 1}).Vec3()

		// Face the camera about the world up axis.
		look := st.pass.EyePosW.Sub(center)
		look[1] = 0
		if l := look.Len(); l > 1e-6 {
			look = look.Mul(1 / l)
		} else {
			look = mgl32.Vec3{0, 0, 1}
		}
		right := up.Cross(look)

		hw := s.Size.X() / 2
		hh := s.Size.Y() / 2
		quad := [4]Vertex{
			{Pos: center.Add(right.Mul(hw)).Sub(up.Mul(hh)), Normal: look, TexC: mgl32.Vec2{0, 1}},
			{Pos: center.Add(right.Mul(hw)).Add(up.Mul(hh)), Normal: look, TexC: mgl32.Vec2{0, 0}},
			{Pos: center.Sub(right.Mul(hw)).Sub(up.Mul(hh)), Normal: look, TexC: mgl32.Vec2{1, 1}},
			{Pos: center.Sub(right.Mul(hw)).Add(up.Mul(hh)), Normal: look, TexC: mgl32.Vec2{1, 0}},
		}

		ident := mgl32.Ident4()
		sv := [4]shadedVertex{}
		for i, v := range quad {
			sv[i] = shadeVertex(st, ident, uvXform, mat, v)
		}
		rasterTriangle(st, sv[0], sv[1], sv[2], d.Texture, mat.DiffuseAlbedo)
		rasterTriangle(st, sv[1], sv[3], sv[2], d.Texture, mat.DiffuseAlbedo)
	}
}

// rasterTriangle fills one screen-space triangle with depth test, texture
// sampling and the bound pipeline's alpha rules. Triangles are drawn
// two-sided.
func rasterTriangle(st *execState, a, b, c shadedVertex, tex *Texture, albedo mgl32.Vec4) {
	if !a.ok || !b.ok || !c.ok {
		return
	}
	rt := st.target

	minX := int(floor3(a.sx, b.sx, c.sx))
	maxX := int(ceil3(a.sx, b.sx, c.sx))
	minY := int(floor3(a.sy, b.sy, c.sy))
	maxY := int(ceil3(a.sy, b.sy, c.sy))
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX > rt.Width-1 {
		maxX = rt.Width - 1
	}
	if maxY > rt.Height-1 {
		maxY = rt.Height - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	denom := (b.sy-c.sy)*(a.sx-c.sx) + (c.sx-b.sx)*(a.sy-c.sy)
	if denom > -1e-6 && denom < 1e-6 {
		return
	}
	inv := 1 / denom

	for py := minY; py <= maxY; py++ {
		fy := float32(py) + 0.5
		for px := minX; px <= maxX; px++ {
			fx := float32(px) + 0.5
			l0 := ((b.sy-c.sy)*(fx-c.sx) + (c.sx-b.sx)*(fy-c.sy)) * inv
			l1 := ((c.sy-a.sy)*(fx-c.sx) + (a.sx-c.sx)*(fy-c.sy)) * inv
			l2 := 1 - l0 - l1
			if l0 < 0 || l1 < 0 || l2 < 0 {
				continue
			}

			z := l0*a.depth + l1*b.depth + l2*c.depth
			idx := py*rt.Width + px
			if z >= rt.Depth[idx] {
				continue
			}

			u := l0*a.u + l1*b.u + l2*c.u
			v := l0*a.v + l1*b.v + l2*c.v
			tr, tg, tb, ta := float32(1), float32(1), float32(1), float32(1)
			if tex != nil {
				tr, tg, tb, ta = tex.Sample(u, v)
			}
			alpha := ta * albedo.W()
			if st.pipeline.AlphaTest && alpha < 0.1 {
				continue
			}

			dr := l0*a.diff.X() + l1*b.diff.X() + l2*c.diff.X()
			dg := l0*a.diff.Y() + l1*b.diff.Y() + l2*c.diff.Y()
			db := l0*a.diff.Z() + l1*b.diff.Z() + l2*c.diff.Z()
			sr := l0*a.spec.X() + l1*b.spec.X() + l2*c.spec.X()
			sg := l0*a.spec.Y() + l1*b.spec.Y() + l2*c.spec.Y()
			sb := l0*a.spec.Z() + l1*b.spec.Z() + l2*c.spec.Z()

			r := tr*albedo.X()*dr + sr
			g := tg*albedo.Y()*dg + sg
			bl := tb*albedo.Z()*db + sb

			ci := idx * 4
			if st.pipeline.Blend == BlendAlpha {
				ia := 1 - alpha
				r = r*alpha + float32(rt.Color[ci])/255*ia
				g = g*alpha + float32(rt.Color[ci+1])/255*ia
				bl = bl*alpha + float32(rt.Color[ci+2])/255*ia
			}

			rt.Depth[idx] = z
			rt.Color[ci] = clamp255(r * 255)
			rt.Color[ci+1] = clamp255(g * 255)
			rt.Color[ci+2] = clamp255(bl * 255)
			rt.Color[ci+3] = 255
		}
	}
}

func floor3(a, b, c float32) float64 {
	return math.Floor(float64(min3(a, b, c)))
}

func ceil3(a, b, c float32) float64 {
	return math.Ceil(float64(max3(a, b, c)))
}

func min3(a, b, c float32) float32 {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

func max3(a, b, c float32) float32 {
	if b > a {
		a = b
	}
	if c > a {
		a = c
	}
	return a
}
