package gpu

import "image"

// Texture is sampled image data, tightly packed NRGBA.
type Texture struct {
	Name string
	W, H int
	Pix  []uint8
}

// NewTexture copies an NRGBA image into a texture, repacking when the
// source has row padding.
func NewTexture(name string, img *image.NRGBA) *Texture {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	t := &Texture{Name: name, W: w, H: h, Pix: make([]uint8, w*h*4)}
	for y := 0; y < h; y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+w*4]
		copy(t.Pix[y*w*4:], src)
	}
	return t
}

// Sample returns the texel at (u,v) with wrap addressing, channels in
// [0,1]. Nearest-neighbor filtering.
func (t *Texture) Sample(u, v float32) (r, g, b, a float32) {
	u -= float32(int(u))
	if u < 0 {
		u += 1
	}
	v -= float32(int(v))
	if v < 0 {
		v += 1
	}
	x := int(u * float32(t.W))
	y := int(v * float32(t.H))
	if x > t.W-1 {
		x = t.W - 1
	}
	if y > t.H-1 {
		y = t.H - 1
	}
	i := (y*t.W + x) * 4
	const s = 1.0 / 255.0
	return float32(t.Pix[i]) * s, float32(t.Pix[i+1]) * s, float32(t.Pix[i+2]) * s, float32(t.Pix[i+3]) * s
}
