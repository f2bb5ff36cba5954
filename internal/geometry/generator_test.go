package geometry

import (
	"math"
	"testing"
)

func TestGridDimensions(t *testing.T) {
	g := Grid(50, 50, 80, 80)
	if len(g.Vertices) != 80*80 {
		t.Fatalf("vertex count = %d, want %d", len(g.Vertices), 80*80)
	}
	if len(g.Indices) != 79*79*6 {
		t.Fatalf("index count = %d, want %d", len(g.Indices), 79*79*6)
	}

	first := g.Vertices[0]
	if first.Pos.X() != -25 || first.Pos.Z() != 25 {
		t.Fatalf("first vertex at %v, want (-25, 0, 25)", first.Pos)
	}
	if first.TexC.X() != 0 || first.TexC.Y() != 0 {
		t.Fatalf("first texcoord = %v, want (0,0)", first.TexC)
	}
	last := g.Vertices[len(g.Vertices)-1]
	if last.Pos.X() != 25 || last.Pos.Z() != -25 {
		t.Fatalf("last vertex at %v, want (25, 0, -25)", last.Pos)
	}
	if last.TexC.X() != 1 || last.TexC.Y() != 1 {
		t.Fatalf("last texcoord = %v, want (1,1)", last.TexC)
	}
}

func TestBox(t *testing.T) {
	b := Box(2, 4, 6)
	if len(b.Vertices) != 24 || len(b.Indices) != 36 {
		t.Fatalf("box = %d verts %d indices, want 24/36", len(b.Vertices), len(b.Indices))
	}
	for _, v := range b.Vertices {
		if ax := float32(math.Abs(float64(v.Pos.X()))); ax != 1 {
			t.Fatalf("|x| = %v, want 1", ax)
		}
		if ay := float32(math.Abs(float64(v.Pos.Y()))); ay != 2 {
			t.Fatalf("|y| = %v, want 2", ay)
		}
		if az := float32(math.Abs(float64(v.Pos.Z()))); az != 3 {
			t.Fatalf("|z| = %v, want 3", az)
		}
	}
}

func TestCylinderAndCone(t *testing.T) {
	c := Cylinder(0.5, 0.3, 3.0, 20, 20)
	ring := 21
	wantSide := ring * 21
	wantCaps := 2 * (ring + 1)
	if len(c.Vertices) != wantSide+wantCaps {
		t.Fatalf("cylinder verts = %d, want %d", len(c.Vertices), wantSide+wantCaps)
	}
	for _, i := range c.Indices {
		if int(i) >= len(c.Vertices) {
			t.Fatalf("index %d out of range", i)
		}
	}

	cone := Cylinder(0.5, 0.0, 3.0, 20, 20)
	// Top ring must collapse to the axis.
	top := cone.Vertices[20*ring]
	if top.Pos.X() != 0 || top.Pos.Z() != 0 {
		t.Fatalf("cone top ring at %v, want on the axis", top.Pos)
	}
}

func TestSolidsHaveUnitNormals(t *testing.T) {
	for name, md := range map[string]*MeshData{
		"pyramid": Pyramid(1, 1, 1),
		"wedge":   Wedge(1, 1, 1),
		"diamond": Diamond(1, 1, 0.5),
	} {
		if len(md.Vertices) == 0 || len(md.Indices)%3 != 0 {
			t.Fatalf("%s: malformed mesh", name)
		}
		for i, v := range md.Vertices {
			if d := math.Abs(float64(v.Normal.Len()) - 1); d > 1e-5 {
				t.Fatalf("%s vertex %d normal %v not unit", name, i, v.Normal)
			}
		}
		for _, idx := range md.Indices {
			if int(idx) >= len(md.Vertices) {
				t.Fatalf("%s: index %d out of range", name, idx)
			}
		}
	}
}

func TestHillsTerrain(t *testing.T) {
	h, n := Hills()
	if got := h(0, 0); got != 0 {
		t.Fatalf("hills height at origin = %v, want 0", got)
	}
	nm := n(10, 10)
	if d := math.Abs(float64(nm.Len()) - 1); d > 1e-5 {
		t.Fatalf("hills normal %v not unit", nm)
	}

	g := Grid(50, 50, 8, 8)
	ApplyHeight(g, h, n)
	moved := false
	for _, v := range g.Vertices {
		if v.Pos.Y() != 0 {
			moved = true
			break
		}
	}
	if !moved {
		t.Fatal("ApplyHeight left the grid flat")
	}
}

func TestFlatAndPerlinTerrain(t *testing.T) {
	f := Flat(0.1)
	if f(123, -42) != 0.1 {
		t.Fatalf("flat terrain height = %v, want 0.1", f(123, -42))
	}

	p := PerlinHills(42, 5, 0.05)
	q := PerlinHills(42, 5, 0.05)
	if p(10, 20) != q(10, 20) {
		t.Fatal("perlin terrain not deterministic for a fixed seed")
	}
}
