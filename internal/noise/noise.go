// Package noise implements the seeded coherent-noise layers of the frost
// dune heightmap: ridge-style FBM for base/detail layers and FBM offset
// fields for domain-warp layers.
package noise

import (
	"math"

	"github.com/aquilax/go-perlin"

	"github.com/MeKo-Tech/frostdune/internal/config"
	"github.com/MeKo-Tech/frostdune/internal/field"
)

// warpDecorrelationOffset shifts the sample coordinates of the y-offset
// field so both warp components come from decorrelated regions of the same
// seeded source.
const warpDecorrelationOffset = 1000.0

// Source is a deterministic seeded 2D coherent-noise sampler. Two sources
// with the same seed return identical values for identical coordinates.
type Source struct {
	p *perlin.Perlin
}

// NewSource creates a noise source for the given seed.
func NewSource(seed int64) *Source {
	// Single internal iteration: the FBM octave schedule is driven by the
	// layer config, not by the sampler.
	return &Source{p: perlin.NewPerlin(2.0, 2.0, 1, seed)}
}

// Sample returns a noise value in approximately [-1, 1].
func (s *Source) Sample(x, y float64) float64 {
	return s.p.Noise2D(x, y)
}

// GenerateRidgeFBM evaluates a base/detail layer as ridge-style FBM over the
// coordinate grids x and y. Per octave the noise is folded with 1-|n|,
// clamped to [0,1] and raised to the layer's ridge power, then accumulated
// with the persistence/lacunarity schedule and normalized by the amplitude
// sum. Disabled layers contribute an all-zero field.
func GenerateRidgeFBM(layer config.NoiseLayerConfig, x, y *field.Field) *field.Field {
	out := field.New(x.W, x.H)
	if !layer.Enabled {
		return out
	}

	src := NewSource(layer.Seed)

	octaves := layer.Octaves
	if octaves < 1 {
		octaves = 1
	}

	amplitudeSum := 0.0
	amplitude := 1.0
	freqX := layer.ScaleX
	freqY := layer.ScaleY

	for oct := 0; oct < octaves; oct++ {
		for i := range out.V {
			n := src.Sample(x.V[i]*freqX, y.V[i]*freqY)
			n = field.Clamp01(1.0 - math.Abs(n))
			if layer.RidgePower != 1.0 {
				n = math.Pow(n, layer.RidgePower)
			}
			out.V[i] += n * amplitude
		}
		amplitudeSum += amplitude
		amplitude *= layer.Persistence
		freqX *= layer.Lacunarity
		freqY *= layer.Lacunarity
	}

	if amplitudeSum > 0 {
		for i := range out.V {
			out.V[i] = field.Clamp01(out.V[i] / amplitudeSum)
		}
	}
	return out
}

// GenerateWarpOffsets evaluates a warp layer into a pair of coordinate
// offset fields. The same FBM schedule as the ridge path is used but without
// the ridge fold, so offsets stay signed. Both fields are normalized by the
// amplitude sum and scaled by the layer amplitude. Disabled layers
// contribute zero offsets.
func GenerateWarpOffsets(layer config.NoiseLayerConfig, x, y *field.Field) (wx, wy *field.Field) {
	wx = field.New(x.W, x.H)
	wy = field.New(x.W, x.H)
	if !layer.Enabled {
		return wx, wy
	}

	src := NewSource(layer.Seed)

	octaves := layer.Octaves
	if octaves < 1 {
		octaves = 1
	}

	amplitudeSum := 0.0
	amplitude := 1.0
	freqX := layer.ScaleX
	freqY := layer.ScaleY

	for oct := 0; oct < octaves; oct++ {
		for i := range wx.V {
			sx := x.V[i] * freqX
			sy := y.V[i] * freqY
			wx.V[i] += src.Sample(sx, sy) * amplitude
			wy.V[i] += src.Sample(sx+warpDecorrelationOffset, sy+warpDecorrelationOffset) * amplitude
		}
		amplitudeSum += amplitude
		amplitude *= layer.Persistence
		freqX *= layer.Lacunarity
		freqY *= layer.Lacunarity
	}

	if amplitudeSum > 0 {
		for i := range wx.V {
			wx.V[i] /= amplitudeSum
			wy.V[i] /= amplitudeSum
		}
	}
	for i := range wx.V {
		wx.V[i] *= layer.Amplitude
		wy.V[i] *= layer.Amplitude
	}
	return wx, wy
}

// CombineWarpLayers sums the offset fields of all enabled warp layers.
// Every layer reads the same unwarped coordinates, so multiple warp layers
// superpose instead of composing.
func CombineWarpLayers(layers []config.NoiseLayerConfig, x, y *field.Field) (wx, wy *field.Field) {
	wx = field.New(x.W, x.H)
	wy = field.New(x.W, x.H)

	for _, layer := range layers {
		if layer.Kind != config.LayerWarp || !layer.Enabled {
			continue
		}
		lx, ly := GenerateWarpOffsets(layer, x, y)
		for i := range wx.V {
			wx.V[i] += lx.V[i]
			wy.V[i] += ly.V[i]
		}
	}
	return wx, wy
}
