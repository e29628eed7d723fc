// Package lighting derives per-pixel brightness from a heightmap and a
// directional light.
package lighting

import (
	"math"

	"github.com/MeKo-Tech/frostdune/internal/config"
	"github.com/MeKo-Tech/frostdune/internal/field"
)

// Defaults used by the render pipeline.
const (
	DefaultZScale        = 1.0
	DefaultMinBrightness = 0.35
	DefaultMaxBrightness = 1.0
)

// Normals holds per-pixel unit surface normals.
type Normals struct {
	X *field.Field
	Y *field.Field
	Z *field.Field
}

// ComputeNormals derives surface normals from a 0..1 heightmap via central
// finite differences. Border pixels use edge-replicated neighbors. A larger
// zScale flattens the normals and lowers shading contrast.
func ComputeNormals(height *field.Field, zScale float64) Normals {
	w, h := height.W, height.H
	n := Normals{X: field.New(w, h), Y: field.New(w, h), Z: field.New(w, h)}

	clampX := func(x int) int {
		if x < 0 {
			return 0
		}
		if x >= w {
			return w - 1
		}
		return x
	}
	clampY := func(y int) int {
		if y < 0 {
			return 0
		}
		if y >= h {
			return h - 1
		}
		return y
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx := height.At(clampX(x+1), y) - height.At(clampX(x-1), y)
			dy := height.At(x, clampY(y+1)) - height.At(x, clampY(y-1))

			nx := -dx
			ny := -dy
			nz := zScale

			length := math.Sqrt(nx*nx+ny*ny+nz*nz) + 1e-8
			i := n.X.Idx(x, y)
			n.X.V[i] = nx / length
			n.Y.V[i] = ny / length
			n.Z.V[i] = nz / length
		}
	}
	return n
}

// BuildLightVector converts azimuth/elevation to a unit direction vector.
// Azimuth 0 degrees points along +X, elevation 0 is in-plane and 90 is
// straight down along +Z.
func BuildLightVector(cfg config.LightingConfig) (lx, ly, lz float64) {
	az := cfg.AzimuthDeg * math.Pi / 180.0
	el := cfg.ElevationDeg * math.Pi / 180.0

	lx = math.Cos(el) * math.Cos(az)
	ly = math.Cos(el) * math.Sin(az)
	lz = math.Sin(el)

	length := math.Sqrt(lx*lx + ly*ly + lz*lz)
	if length == 0 {
		length = 1
	}
	return lx / length, ly / length, lz / length
}

// ComputeShade maps normals and a light direction into a brightness field.
// The lit dot product is clamped to [0,1], scaled by the clamped intensity,
// then remapped into [minBrightness, maxBrightness] so unlit areas keep a
// floor brightness. An inverted brightness range is swapped, not rejected.
func ComputeShade(n Normals, lx, ly, lz, intensity, minBrightness, maxBrightness float64) *field.Field {
	intensity = field.Clamp01(intensity)
	if maxBrightness < minBrightness {
		minBrightness, maxBrightness = maxBrightness, minBrightness
	}

	shade := field.New(n.X.W, n.X.H)
	span := maxBrightness - minBrightness
	for i := range shade.V {
		dot := n.X.V[i]*lx + n.Y.V[i]*ly + n.Z.V[i]*lz
		shade.V[i] = minBrightness + span*field.Clamp01(dot)*intensity
	}
	return shade
}

// ComputeShadeFromHeightmap is the pipeline entry point: normals, light
// vector and shade in one call.
func ComputeShadeFromHeightmap(height *field.Field, cfg config.LightingConfig, zScale, minBrightness, maxBrightness float64) *field.Field {
	normals := ComputeNormals(height, zScale)
	lx, ly, lz := BuildLightVector(cfg)
	return ComputeShade(normals, lx, ly, lz, cfg.Intensity, minBrightness, maxBrightness)
}
