package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/MeKo-Tech/frostdune/internal/field"
	"github.com/MeKo-Tech/frostdune/internal/gradient"
)

// DefaultHeightInfluence is the render pipeline's height-based brightness
// modulation weight.
const DefaultHeightInfluence = 0.25

// ComposeColor combines the gradient base color, the shade field and the
// heightmap into final RGB channels in [0, 1]. Troughs are darkened by up to
// 20 percent, blended against neutral 1.0 by heightInfluence, so an
// influence of zero makes the result independent of the heightmap.
func ComposeColor(base gradient.RGBA, shade, height *field.Field, heightInfluence float64) (r, g, b *field.Field, err error) {
	if base.R.W != shade.W || base.R.H != shade.H || shade.W != height.W || shade.H != height.H {
		return nil, nil, nil, fmt.Errorf("compose: base %dx%d, shade %dx%d and height %dx%d must match",
			base.R.W, base.R.H, shade.W, shade.H, height.W, height.H)
	}

	influence := field.Clamp01(heightInfluence)

	r = field.New(shade.W, shade.H)
	g = field.New(shade.W, shade.H)
	b = field.New(shade.W, shade.H)

	for i := range shade.V {
		heightFactor := 1.0 - 0.2*(1.0-height.V[i])
		brightness := shade.V[i] * field.Lerp(1.0, heightFactor, influence)

		r.V[i] = field.Clamp01(base.R.V[i] * brightness)
		g.V[i] = field.Clamp01(base.G.V[i] * brightness)
		b.V[i] = field.Clamp01(base.B.V[i] * brightness)
	}
	return r, g, b, nil
}

// ToNRGBA quantizes float channels in [0, 1] to an 8-bit RGBA image.
// Channels are clamped before scaling and rounded to nearest.
func ToNRGBA(r, g, b, a *field.Field) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.W, r.H))
	for y := 0; y < r.H; y++ {
		for x := 0; x < r.W; x++ {
			i := r.Idx(x, y)
			img.SetNRGBA(x, y, nrgba8(r.V[i], g.V[i], b.V[i], a.V[i]))
		}
	}
	return img
}

func nrgba8(r, g, b, a float64) color.NRGBA {
	return color.NRGBA{
		R: quantize8(r),
		G: quantize8(g),
		B: quantize8(b),
		A: quantize8(a),
	}
}

func quantize8(v float64) uint8 {
	return uint8(math.Round(field.Clamp01(v) * 255.0))
}
