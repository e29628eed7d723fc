// Package heightmap composes the configured noise layers into the
// normalized heightmap consumed by lighting and compositing.
package heightmap

import (
	"math"

	"github.com/MeKo-Tech/frostdune/internal/config"
	"github.com/MeKo-Tech/frostdune/internal/field"
	"github.com/MeKo-Tech/frostdune/internal/noise"
)

// normalizeEpsilon is the minimum usable value range; anything flatter is
// treated as a constant field.
const normalizeEpsilon = 1e-8

// Maps carries the diagnostic heightmaps used by noise previews. Base,
// Detail and Combined are each normalized independently, so their displayed
// ranges are not directly comparable.
type Maps struct {
	Final    *field.Field
	Base     *field.Field
	Detail   *field.Field
	Combined *field.Field
}

// BuildCoordinateGrid returns normalized coordinate grids of shape (h, w)
// with X running 0..1 left to right and Y running 0..1 top to bottom.
// Dimensions must be positive.
func BuildCoordinateGrid(width, height int) (x, y *field.Field) {
	if width <= 0 || height <= 0 {
		panic("heightmap: grid dimensions must be positive")
	}

	x = field.New(width, height)
	y = field.New(width, height)

	for row := 0; row < height; row++ {
		ny := 0.0
		if height > 1 {
			ny = float64(row) / float64(height-1)
		}
		for col := 0; col < width; col++ {
			nx := 0.0
			if width > 1 {
				nx = float64(col) / float64(width-1)
			}
			i := x.Idx(col, row)
			x.V[i] = nx
			y.V[i] = ny
		}
	}
	return x, y
}

// Build produces the final normalized heightmap for one render. This is the
// fast path; use BuildWithLayerMaps when the per-category maps are needed.
func Build(cfg *config.ProjectConfig, width, height int) *field.Field {
	_, _, combined := evaluate(cfg, width, height)
	return normalize(combined)
}

// BuildWithLayerMaps produces the final heightmap together with
// independently normalized base/detail/combined maps for previews.
func BuildWithLayerMaps(cfg *config.ProjectConfig, width, height int) Maps {
	base, detail, combined := evaluate(cfg, width, height)

	combinedNorm := normalize(combined)
	return Maps{
		Final:    combinedNorm.Clone(),
		Base:     normalize(base),
		Detail:   normalize(detail),
		Combined: combinedNorm,
	}
}

// evaluate runs the unnormalized pipeline: warp field, coordinate
// distortion, then base and detail accumulation on warped coordinates.
func evaluate(cfg *config.ProjectConfig, width, height int) (base, detail, combined *field.Field) {
	x, y := BuildCoordinateGrid(width, height)

	warpLayers, shapeLayers := splitLayers(cfg.NoiseLayers)

	wx, wy := noise.CombineWarpLayers(warpLayers, x, y)
	warpedX := field.New(width, height)
	warpedY := field.New(width, height)
	for i := range x.V {
		warpedX.V[i] = x.V[i] + wx.V[i]
		warpedY.V[i] = y.V[i] + wy.V[i]
	}

	base = field.New(width, height)
	detail = field.New(width, height)

	for _, layer := range shapeLayers {
		if !layer.Enabled {
			continue
		}

		layerHeight := noise.GenerateRidgeFBM(layer, warpedX, warpedY)
		for i, v := range layerHeight.V {
			if layer.HeightPower != 1.0 {
				v = math.Pow(v, layer.HeightPower)
			}
			layerHeight.V[i] = v * layer.Amplitude
		}

		dst := base
		if layer.Kind == config.LayerDetail {
			dst = detail
		}
		for i := range dst.V {
			dst.V[i] += layerHeight.V[i]
		}
	}

	combined = field.New(width, height)
	for i := range combined.V {
		combined.V[i] = base.V[i] + detail.V[i]
	}
	return base, detail, combined
}

func splitLayers(layers []config.NoiseLayerConfig) (warp, shape []config.NoiseLayerConfig) {
	for _, layer := range layers {
		if layer.Kind == config.LayerWarp {
			warp = append(warp, layer)
		} else {
			shape = append(shape, layer)
		}
	}
	return warp, shape
}

// normalize rescales a field into [0, 1] by its min/max range. A constant
// field maps to all zeros rather than dividing by a vanishing range.
func normalize(f *field.Field) *field.Field {
	out := field.New(f.W, f.H)
	minV, maxV := f.MinMax()
	if maxV-minV <= normalizeEpsilon {
		return out
	}

	scale := 1.0 / (maxV - minV)
	for i, v := range f.V {
		out.V[i] = (v - minV) * scale
	}
	return out
}
