// Package render composes heightmap, lighting and gradient output into the
// final frost dune image.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/disintegration/gift"

	"github.com/MeKo-Tech/frostdune/internal/config"
	"github.com/MeKo-Tech/frostdune/internal/field"
	"github.com/MeKo-Tech/frostdune/internal/gradient"
	"github.com/MeKo-Tech/frostdune/internal/heightmap"
	"github.com/MeKo-Tech/frostdune/internal/lighting"
)

// Options tunes the shading and compositing constants. Zero value is not
// usable; start from DefaultOptions.
type Options struct {
	ZScale          float64
	MinBrightness   float64
	MaxBrightness   float64
	HeightInfluence float64
}

// DefaultOptions returns the pipeline defaults.
func DefaultOptions() Options {
	return Options{
		ZScale:          lighting.DefaultZScale,
		MinBrightness:   lighting.DefaultMinBrightness,
		MaxBrightness:   lighting.DefaultMaxBrightness,
		HeightInfluence: DefaultHeightInfluence,
	}
}

// RenderImage renders the project at the given size into an 8-bit RGBA
// image. The alpha channel comes from the gradient stop opacities. Rendering
// is all-or-nothing: any stage failure returns an error and no image.
func RenderImage(cfg *config.ProjectConfig, width, height int) (*image.NRGBA, error) {
	return RenderImageWithOptions(cfg, width, height, DefaultOptions())
}

// RenderImageWithOptions is RenderImage with explicit shading constants.
func RenderImageWithOptions(cfg *config.ProjectConfig, width, height int, opts Options) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("render: dimensions %dx%d must be positive", width, height)
	}

	height01 := heightmap.Build(cfg, width, height)
	shade := lighting.ComputeShadeFromHeightmap(height01, cfg.Lighting, opts.ZScale, opts.MinBrightness, opts.MaxBrightness)

	t := gradient.ComputeParameter(width, height, cfg.Gradient.AngleDeg)
	base, err := gradient.Evaluate(cfg.Gradient, t)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	r, g, b, err := ComposeColor(base, shade, height01, opts.HeightInfluence)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	return ToNRGBA(r, g, b, base.A), nil
}

// DiagnosticMaps renders the grayscale preview maps (base, detail, combined
// heightmaps and the shade field) at the given size.
func DiagnosticMaps(cfg *config.ProjectConfig, width, height int, opts Options) (map[string]*image.Gray, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("render: dimensions %dx%d must be positive", width, height)
	}

	maps := heightmap.BuildWithLayerMaps(cfg, width, height)
	shade := lighting.ComputeShadeFromHeightmap(maps.Final, cfg.Lighting, opts.ZScale, opts.MinBrightness, opts.MaxBrightness)

	return map[string]*image.Gray{
		"base":     GrayImage(maps.Base),
		"detail":   GrayImage(maps.Detail),
		"combined": GrayImage(maps.Combined),
		"shade":    GrayImage(shade),
	}, nil
}

// GrayImage converts a [0, 1] field to an 8-bit grayscale image.
func GrayImage(f *field.Field) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, f.W, f.H))
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			img.SetGray(x, y, color.Gray{Y: quantize8(f.At(x, y))})
		}
	}
	return img
}

// SmoothGray applies a gaussian blur to a diagnostic map. Sigma values at or
// below zero return the input unchanged.
func SmoothGray(img *image.Gray, sigma float32) *image.Gray {
	if sigma <= 0 {
		return img
	}
	g := gift.New(gift.GaussianBlur(sigma))
	dst := image.NewGray(g.Bounds(img.Bounds()))
	g.Draw(dst, img)
	return dst
}

// WritePNG encodes an image to path.
func WritePNG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}
