// Package texture loads and caches texture images, falling back to
// procedural pixels when a file is missing so the demo needs no assets on
// disk.
package texture

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/ftrvxmtrx/tga"
	"go.uber.org/zap"
	xdraw "golang.org/x/image/draw"

	"github.com/AsperSarras/castlemoat/internal/gpu"
	"github.com/AsperSarras/castlemoat/internal/logger"
)

// Load decodes an image file (PNG, JPEG or TGA) into a texture, downscaled
// to maxDim on the long side when maxDim > 0. TGA is dispatched on the
// extension: the format has no magic bytes, so it cannot go through
// image.Decode's sniffing without breaking the other decoders.
func Load(name, path string, maxDim int) (*gpu.Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening texture %q", path)
	}
	defer f.Close()

	var img image.Image
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		img, err = tga.Decode(f)
	} else {
		img, _, err = image.Decode(f)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decoding texture %q", path)
	}
	return gpu.NewTexture(name, toNRGBA(img, maxDim)), nil
}

func toNRGBA(img image.Image, maxDim int) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxDim > 0 && (w > maxDim || h > maxDim) {
		if w >= h {
			h = h * maxDim / w
			w = maxDim
		} else {
			w = w * maxDim / h
			h = maxDim
		}
		if w < 1 {
			w = 1
		}
		if h < 1 {
			h = 1
		}
	}
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(out, out.Bounds(), img, b, xdraw.Src, nil)
	return out
}

// Manager caches textures by name and resolves files relative to Dir.
type Manager struct {
	Dir    string
	MaxDim int

	mu    sync.Mutex
	cache map[string]*gpu.Texture
}

// NewManager creates a manager rooted at dir.
func NewManager(dir string, maxDim int) *Manager {
	return &Manager{Dir: dir, MaxDim: maxDim, cache: make(map[string]*gpu.Texture)}
}

// Get returns the named texture, loading file on first use. When the file
// is absent or undecodable the procedural fallback of the given kind and
// color is generated instead.
func (m *Manager) Get(name, file, kind string, color [4]uint8) *gpu.Texture {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.cache[name]; ok {
		return t
	}

	var t *gpu.Texture
	if file != "" {
		path := file
		if m.Dir != "" {
			path = filepath.Join(m.Dir, file)
		}
		loaded, err := Load(name, path, m.MaxDim)
		if err == nil {
			t = loaded
		} else {
			logger.Log.Warn("texture fallback",
				zap.String("name", name), zap.String("file", file), zap.Error(err))
		}
	}
	if t == nil {
		t = gpu.NewTexture(name, Procedural(kind, color))
	}
	m.cache[name] = t
	return t
}
