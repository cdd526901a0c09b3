package anno

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
)

// RenderInstances renders a label map's instance raster as a colored
// overlay image: background pixels are fully transparent and each
// instance id gets a deterministic opaque color, stable across runs and
// resolutions.
func RenderInstances(lm *LabelMap) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, lm.Width(), lm.Height()))
	for y := 0; y < lm.Height(); y++ {
		for x := 0; x < lm.Width(); x++ {
			if id := lm.InstanceAt(x, y); id > 0 {
				img.SetNRGBA(x, y, instanceColor(id))
			}
		}
	}
	return img
}

// instanceColor assigns each instance id a hue by golden-angle
// stepping, which keeps neighboring ids visually distinct.
func instanceColor(id int32) color.NRGBA {
	const goldenAngle = 137.508
	hue := math.Mod(float64(id-1)*goldenAngle, 360)
	r, g, b := hsvToRGB(hue, 0.85, 0.95)
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

// hsvToRGB converts hue [0,360), saturation and value [0,1] to 8-bit RGB.
func hsvToRGB(h, s, v float64) (uint8, uint8, uint8) {
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return uint8((r + m) * 255), uint8((g + m) * 255), uint8((b + m) * 255)
}

// ScaleOverlay rescales a rendered overlay to the given dimensions
// using nearest-neighbor sampling. Label-derived rasters carry discrete
// identities, so interpolating scalers would invent colors that belong
// to no instance.
func ScaleOverlay(src image.Image, width, height int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}
