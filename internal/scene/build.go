package scene

import (
	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/AsperSarras/castlemoat/internal/geometry"
	"github.com/AsperSarras/castlemoat/internal/gpu"
	"github.com/AsperSarras/castlemoat/internal/logger"
	"github.com/AsperSarras/castlemoat/internal/renderer"
	"github.com/AsperSarras/castlemoat/internal/texture"
	"github.com/AsperSarras/castlemoat/internal/waves"
)

// Scene is the built runtime scene: geometry, materials, render items
// partitioned into layers, plus the live wave simulation.
type Scene struct {
	Doc *Document

	Geometries map[string]*renderer.MeshGeometry
	Materials  []*renderer.Material
	AllItems   []*renderer.RenderItem
	Layers     [renderer.LayerCount][]*renderer.RenderItem

	Waves     *waves.Waves
	WavesItem *renderer.RenderItem
}

// Build turns a document into a runtime scene. Object and material
// constant-buffer indices are assigned in document order.
func Build(doc *Document, tex *texture.Manager) (*Scene, error) {
	w, err := waves.New(doc.Waves.Rows, doc.Waves.Cols, doc.Waves.Dx, doc.Waves.Dt,
		doc.Waves.Speed, doc.Waves.Damping)
	if err != nil {
		return nil, err
	}

	s := &Scene{
		Doc:        doc,
		Geometries: make(map[string]*renderer.MeshGeometry),
		Waves:      w,
	}

	texCfg := make(map[string]TextureConfig, len(doc.Textures))
	for _, tc := range doc.Textures {
		texCfg[tc.Name] = tc
	}

	matByName := make(map[string]*renderer.Material, len(doc.Materials))
	for i, mc := range doc.Materials {
		tc, ok := texCfg[mc.Texture]
		if !ok {
			return nil, errors.Newf("scene: material %q references unknown texture %q", mc.Name, mc.Texture)
		}
		m := renderer.NewMaterial(mc.Name, i)
		m.DiffuseTexture = tex.Get(tc.Name, tc.File, tc.Kind, tc.Color)
		m.DiffuseAlbedo = mgl32.Vec4{mc.Albedo[0], mc.Albedo[1], mc.Albedo[2], mc.Albedo[3]}
		m.FresnelR0 = mgl32.Vec3{mc.Fresnel[0], mc.Fresnel[1], mc.Fresnel[2]}
		m.Roughness = mc.Roughness
		s.Materials = append(s.Materials, m)
		matByName[mc.Name] = m
	}

	for i, ic := range doc.Items {
		geo, err := s.geometryFor(ic.Geometry)
		if err != nil {
			return nil, errors.Wrapf(err, "item %q", ic.Name)
		}
		mat, ok := matByName[ic.Material]
		if !ok {
			return nil, errors.Newf("scene: item %q references unknown material %q", ic.Name, ic.Material)
		}
		layer, ok := renderer.ParseLayer(ic.Layer)
		if !ok {
			return nil, errors.Newf("scene: item %q has unknown layer %q", ic.Name, ic.Layer)
		}

		ri := renderer.NewRenderItem(ic.Name)
		ri.ObjCBIndex = i
		ri.Mat = mat
		ri.Geo = geo
		ri.Layer = layer
		ri.SetWorld(itemWorld(ic))
		if ts := ic.TexScale; ts != ([3]float32{}) {
			ri.SetTexTransform(mgl32.Scale3D(ts[0], ts[1], ts[2]))
		}
		if sub, ok := geo.DrawArgs["all"]; ok {
			ri.IndexCount = sub.IndexCount
			ri.StartIndexLocation = sub.StartIndexLocation
			ri.BaseVertexLocation = sub.BaseVertexLocation
		}

		if ic.Geometry == "water" {
			s.WavesItem = ri
		}
		s.AllItems = append(s.AllItems, ri)
		s.Layers[layer] = append(s.Layers[layer], ri)
	}

	if s.WavesItem == nil {
		return nil, errors.New("scene: no water item")
	}

	logger.Log.Info("scene built",
		zap.Int("items", len(s.AllItems)),
		zap.Int("materials", len(s.Materials)),
		zap.Int("geometries", len(s.Geometries)),
		zap.Int("waveVerts", w.VertexCount()))
	return s, nil
}

func itemWorld(ic ItemConfig) mgl32.Mat4 {
	world := mgl32.Ident4()
	if sc := ic.Scale; sc != ([3]float32{}) {
		world = mgl32.Scale3D(sc[0], sc[1], sc[2])
	}
	if tr := ic.Translate; tr != ([3]float32{}) {
		world = mgl32.Translate3D(tr[0], tr[1], tr[2]).Mul4(world)
	}
	return world
}

func (s *Scene) geometryFor(name string) (*renderer.MeshGeometry, error) {
	if g, ok := s.Geometries[name]; ok {
		return g, nil
	}
	g, err := s.buildGeometry(name)
	if err != nil {
		return nil, err
	}
	s.Geometries[name] = g
	return g, nil
}

func (s *Scene) buildGeometry(name string) (*renderer.MeshGeometry, error) {
	var md *geometry.MeshData
	switch name {
	case "land":
		md = geometry.Grid(80, 80, 50, 50)
		switch s.Doc.Terrain.Mode {
		case "flat", "":
			geometry.ApplyHeight(md, geometry.Flat(s.Doc.Terrain.Offset), nil)
		case "hills":
			h, n := geometry.Hills()
			geometry.ApplyHeight(md, h, n)
		case "perlin":
			t := s.Doc.Terrain
			geometry.ApplyHeight(md, geometry.PerlinHills(t.Seed, t.Amplitude, t.Frequency), nil)
		default:
			return nil, errors.Newf("scene: unknown terrain mode %q", s.Doc.Terrain.Mode)
		}
	case "underland":
		md = geometry.Grid(128, 128, 50, 50)
		geometry.ApplyHeight(md, geometry.Flat(-0.51), nil)
	case "water":
		return s.buildWaterGeometry(), nil
	case "trees":
		return s.buildTreeGeometry(), nil
	case "box":
		md = geometry.Box(1, 1, 1)
	case "cylinder":
		md = geometry.Cylinder(0.5, 0.3, 3.0, 20, 20)
	case "cone":
		md = geometry.Cylinder(0.5, 0.0, 3.0, 20, 20)
	case "pyramid":
		md = geometry.Pyramid(1, 1, 1)
	case "wedge":
		md = geometry.Wedge(1, 1, 1)
	case "diamond":
		md = geometry.Diamond(1, 1, 1)
	default:
		return nil, errors.Newf("scene: unknown geometry %q", name)
	}

	return &renderer.MeshGeometry{
		Name:     name,
		Vertices: md.Vertices,
		Indices:  md.Indices,
		DrawArgs: map[string]renderer.Submesh{
			"all": {IndexCount: len(md.Indices)},
		},
	}, nil
}

// buildWaterGeometry creates the wave surface mesh: a static index grid
// over vertices the engine rewrites every frame from the simulation.
func (s *Scene) buildWaterGeometry() *renderer.MeshGeometry {
	w := s.Waves
	m, n := w.RowCount(), w.ColumnCount()

	verts := make([]gpu.Vertex, w.VertexCount())
	for i := range verts {
		p := w.Position(i)
		verts[i] = gpu.Vertex{
			Pos:    p,
			Normal: w.Normal(i),
			TexC: mgl32.Vec2{
				0.5 + p.X()/w.Width(),
				0.5 - p.Z()/w.Depth(),
			},
		}
	}

	indices := make([]uint16, 0, w.TriangleCount()*3)
	for i := 0; i < m-1; i++ {
		for j := 0; j < n-1; j++ {
			a := uint16(i*n + j)
			b := uint16(i*n + j + 1)
			c := uint16((i+1)*n + j)
			d := uint16((i+1)*n + j + 1)
			indices = append(indices, a, b, c, c, b, d)
		}
	}

	return &renderer.MeshGeometry{
		Name:     "water",
		Vertices: verts,
		Indices:  indices,
		DrawArgs: map[string]renderer.Submesh{
			"all": {IndexCount: len(indices)},
		},
	}
}

func (s *Scene) buildTreeGeometry() *renderer.MeshGeometry {
	sprites := make([]gpu.SpriteVertex, 0, len(s.Doc.Trees))
	for _, tc := range s.Doc.Trees {
		sprites = append(sprites, gpu.SpriteVertex{
			Pos:  mgl32.Vec3{tc.Pos[0], tc.Pos[1], tc.Pos[2]},
			Size: mgl32.Vec2{tc.Size[0], tc.Size[1]},
		})
	}
	return &renderer.MeshGeometry{Name: "trees", Sprites: sprites}
}
