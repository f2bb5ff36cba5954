// Package scene loads the demo's scene description from TOML and builds
// the runtime geometry, materials and render items from it. A complete
// scene is embedded in the binary; a file on disk can replace it.
package scene

import (
	_ "embed"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
)

//go:embed scene.toml
var defaultScene []byte

// Document is the parsed scene description.
type Document struct {
	Ambient  [4]float32 `toml:"ambient"`
	FogColor [4]float32 `toml:"fog_color"`
	FogStart float32    `toml:"fog_start"`
	FogRange float32    `toml:"fog_range"`

	Light     LightConfig      `toml:"light"`
	Terrain   TerrainConfig    `toml:"terrain"`
	Waves     WavesConfig      `toml:"waves"`
	Textures  []TextureConfig  `toml:"textures"`
	Materials []MaterialConfig `toml:"materials"`
	Items     []ItemConfig     `toml:"items"`
	Trees     []TreeConfig     `toml:"trees"`
}

// LightConfig is the single directional light.
type LightConfig struct {
	Direction [3]float32 `toml:"direction"`
	Strength  [3]float32 `toml:"strength"`
}

// TerrainConfig selects how the land grid is displaced. Modes: "flat"
// (constant offset), "hills" (analytic rolling hills), "perlin" (noise).
type TerrainConfig struct {
	Mode      string  `toml:"mode"`
	Offset    float32 `toml:"offset"`
	Seed      int64   `toml:"seed"`
	Amplitude float64 `toml:"amplitude"`
	Frequency float64 `toml:"frequency"`
}

// WavesConfig parameterizes the water simulation.
type WavesConfig struct {
	Rows        int     `toml:"rows"`
	Cols        int     `toml:"cols"`
	Dx          float32 `toml:"dx"`
	Dt          float32 `toml:"dt"`
	Speed       float32 `toml:"speed"`
	Damping     float32 `toml:"damping"`
	AutoDisturb bool    `toml:"auto_disturb"`
}

// TextureConfig names a texture with its source file and the procedural
// fallback used when the file is missing.
type TextureConfig struct {
	Name  string   `toml:"name"`
	File  string   `toml:"file"`
	Kind  string   `toml:"kind"`
	Color [4]uint8 `toml:"color"`
}

// MaterialConfig is one material definition.
type MaterialConfig struct {
	Name      string     `toml:"name"`
	Texture   string     `toml:"texture"`
	Albedo    [4]float32 `toml:"albedo"`
	Fresnel   [3]float32 `toml:"fresnel"`
	Roughness float32    `toml:"roughness"`
}

// ItemConfig places one piece of geometry in the world.
type ItemConfig struct {
	Name      string     `toml:"name"`
	Geometry  string     `toml:"geometry"`
	Material  string     `toml:"material"`
	Layer     string     `toml:"layer"`
	Scale     [3]float32 `toml:"scale"`
	Translate [3]float32 `toml:"translate"`
	TexScale  [3]float32 `toml:"tex_scale"`
}

// TreeConfig is one billboard tree.
type TreeConfig struct {
	Pos  [3]float32 `toml:"pos"`
	Size [2]float32 `toml:"size"`
}

// Load parses a scene document.
func Load(data []byte) (*Document, error) {
	var doc Document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "parsing scene")
	}
	if doc.Waves.Rows == 0 || doc.Waves.Cols == 0 {
		return nil, errors.New("scene: waves grid unset")
	}
	if len(doc.Items) == 0 {
		return nil, errors.New("scene: no items")
	}
	return &doc, nil
}

// LoadFile parses a scene document from disk.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading scene %q", path)
	}
	return Load(data)
}

// Default parses the embedded scene.
func Default() (*Document, error) {
	return Load(defaultScene)
}
