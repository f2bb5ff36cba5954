package texture

import (
	"image"
	"image/color"
)

const procSize = 64

// Procedural generates fallback pixels. Kinds: "solid", "checker" (the
// default), "fence" (checker with transparent holes for alpha testing),
// "tree" (canopy and trunk on a transparent background, for billboards).
func Procedural(kind string, c [4]uint8) *image.NRGBA {
	switch kind {
	case "solid":
		return solid(c)
	case "fence":
		return fence(c)
	case "tree":
		return tree(c)
	default:
		return checker(c)
	}
}

func nrgba(c [4]uint8) color.NRGBA {
	return color.NRGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
}

func dim(c [4]uint8) color.NRGBA {
	return color.NRGBA{R: c[0] / 4 * 3, G: c[1] / 4 * 3, B: c[2] / 4 * 3, A: c[3]}
}

func solid(c [4]uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, procSize, procSize))
	fill(img, 0, 0, procSize, procSize, nrgba(c))
	return img
}

func checker(c [4]uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, procSize, procSize))
	a, b := nrgba(c), dim(c)
	const cell = 8
	for y := 0; y < procSize; y++ {
		for x := 0; x < procSize; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.SetNRGBA(x, y, a)
			} else {
				img.SetNRGBA(x, y, b)
			}
		}
	}
	return img
}

func fence(c [4]uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, procSize, procSize))
	bar := nrgba(c)
	const pitch = 16
	for y := 0; y < procSize; y++ {
		for x := 0; x < procSize; x++ {
			if x%pitch < 4 || y%pitch < 4 {
				img.SetNRGBA(x, y, bar)
			}
			// Everything else stays transparent.
		}
	}
	return img
}

func tree(c [4]uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, procSize, procSize))
	canopy := nrgba(c)
	trunk := color.NRGBA{R: 100, G: 70, B: 40, A: 255}

	// Triangular canopy over the top two thirds.
	apexY, baseY := 4, 42
	for y := apexY; y < baseY; y++ {
		half := (y - apexY) * (procSize / 2 - 4) / (baseY - apexY)
		fill(img, procSize/2-half, y, procSize/2+half+1, y+1, canopy)
	}
	fill(img, procSize/2-4, baseY, procSize/2+4, procSize-2, trunk)
	return img
}

func fill(img *image.NRGBA, x0, y0, x1, y1 int, c color.NRGBA) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}
