package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestRenderItemBornDirty(t *testing.T) {
	ri := NewRenderItem("castleBody")
	if ri.NumFramesDirty != NumFrameResources {
		t.Fatalf("new item dirty = %d, want %d", ri.NumFramesDirty, NumFrameResources)
	}
	if ri.World != mgl32.Ident4() || ri.TexTransform != mgl32.Ident4() {
		t.Fatal("new item transforms not identity")
	}
}

func TestSetWorldRestartsDirtyCountdown(t *testing.T) {
	ri := NewRenderItem("gate")
	ri.NumFramesDirty = 0

	ri.SetWorld(mgl32.Translate3D(0, 6, 0))
	if ri.NumFramesDirty != NumFrameResources {
		t.Fatalf("dirty after SetWorld = %d, want %d", ri.NumFramesDirty, NumFrameResources)
	}

	// Partially drained, then changed again: the countdown restarts.
	ri.NumFramesDirty = 1
	ri.SetTexTransform(mgl32.Scale3D(0.5, 0.5, 2))
	if ri.NumFramesDirty != NumFrameResources {
		t.Fatalf("dirty after SetTexTransform = %d, want %d", ri.NumFramesDirty, NumFrameResources)
	}
}

func TestMaterialDirtyCountdown(t *testing.T) {
	m := NewMaterial("water", 1)
	if m.NumFramesDirty != NumFrameResources {
		t.Fatalf("new material dirty = %d, want %d", m.NumFramesDirty, NumFrameResources)
	}
	m.NumFramesDirty = 0
	m.SetMatTransform(mgl32.Translate3D(0.1, 0.02, 0))
	if m.NumFramesDirty != NumFrameResources {
		t.Fatalf("dirty after SetMatTransform = %d, want %d", m.NumFramesDirty, NumFrameResources)
	}
}

func TestParseLayer(t *testing.T) {
	cases := map[string]RenderLayer{
		"":            LayerOpaque,
		"opaque":      LayerOpaque,
		"alphaTested": LayerAlphaTested,
		"treeSprites": LayerTreeSprites,
		"transparent": LayerTransparent,
	}
	for s, want := range cases {
		got, ok := ParseLayer(s)
		if !ok || got != want {
			t.Fatalf("ParseLayer(%q) = %v/%v, want %v/true", s, got, ok, want)
		}
	}
	if _, ok := ParseLayer("shadow"); ok {
		t.Fatal("ParseLayer accepted an unknown layer")
	}
}
