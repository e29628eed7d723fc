package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/frostdune/internal/config"
	"github.com/MeKo-Tech/frostdune/internal/field"
	"github.com/MeKo-Tech/frostdune/internal/gradient"
	"github.com/MeKo-Tech/frostdune/internal/heightmap"
)

func TestRenderImageReproducible(t *testing.T) {
	cfg := config.DefaultProject()

	a, err := RenderImage(cfg, 64, 64)
	require.NoError(t, err)
	b, err := RenderImage(cfg, 64, 64)
	require.NoError(t, err)

	require.True(t, bytes.Equal(a.Pix, b.Pix), "two renders of the same config must be bit-identical")
}

func TestRenderImageDimensions(t *testing.T) {
	cfg := config.DefaultProject()

	img, err := RenderImage(cfg, 48, 27)
	require.NoError(t, err)
	require.Equal(t, 48, img.Bounds().Dx())
	require.Equal(t, 27, img.Bounds().Dy())
}

func TestRenderImageOpaqueAlphaFromGradient(t *testing.T) {
	// All default stops have opacity 1, so the image must be fully opaque.
	cfg := config.DefaultProject()

	img, err := RenderImage(cfg, 32, 32)
	require.NoError(t, err)

	for i := 3; i < len(img.Pix); i += 4 {
		require.EqualValues(t, 255, img.Pix[i])
	}
}

func TestRenderImageRejectsBadColor(t *testing.T) {
	cfg := config.DefaultProject()
	cfg.Gradient.Stops[0].Color = "#zzzzzz"

	_, err := RenderImage(cfg, 16, 16)
	require.Error(t, err)
}

func TestRenderImageRejectsBadDimensions(t *testing.T) {
	cfg := config.DefaultProject()

	_, err := RenderImage(cfg, 0, 16)
	require.Error(t, err)
	_, err = RenderImage(cfg, 16, -1)
	require.Error(t, err)
}

func TestComposeColorIgnoresHeightAtZeroInfluence(t *testing.T) {
	base, err := gradient.Apply(config.DefaultGradient(), 16, 16)
	require.NoError(t, err)

	shade := field.New(16, 16)
	for i := range shade.V {
		shade.V[i] = 0.7
	}

	heightA := field.New(16, 16)
	heightB := field.New(16, 16)
	for i := range heightB.V {
		heightB.V[i] = float64(i%7) / 6.0
	}

	rA, gA, bA, err := ComposeColor(base, shade, heightA, 0)
	require.NoError(t, err)
	rB, gB, bB, err := ComposeColor(base, shade, heightB, 0)
	require.NoError(t, err)

	require.Equal(t, rA.V, rB.V)
	require.Equal(t, gA.V, gB.V)
	require.Equal(t, bA.V, bB.V)
}

func TestComposeColorDarkensTroughs(t *testing.T) {
	base, err := gradient.Apply(config.GradientConfig{
		AngleDeg: 0,
		Stops:    []config.GradientStop{{Position: 0, Color: "#ffffff", Opacity: 1}},
	}, 2, 1)
	require.NoError(t, err)

	shade := field.New(2, 1)
	shade.V[0], shade.V[1] = 1.0, 1.0

	height := field.New(2, 1)
	height.V[0], height.V[1] = 0.0, 1.0

	r, _, _, err := ComposeColor(base, shade, height, 1.0)
	require.NoError(t, err)

	require.InDelta(t, 0.8, r.V[0], 1e-9, "troughs darken by the full 20 percent")
	require.InDelta(t, 1.0, r.V[1], 1e-9, "peaks stay unaffected")
}

func TestComposeColorShapeMismatch(t *testing.T) {
	base, err := gradient.Apply(config.DefaultGradient(), 8, 8)
	require.NoError(t, err)

	_, _, _, err = ComposeColor(base, field.New(8, 8), field.New(4, 4), 0.25)
	require.Error(t, err)
}

func TestQuantizeRoundsToNearest(t *testing.T) {
	require.EqualValues(t, 0, quantize8(0))
	require.EqualValues(t, 255, quantize8(1))
	require.EqualValues(t, 255, quantize8(2.5))
	require.EqualValues(t, 0, quantize8(-1))
	require.EqualValues(t, 128, quantize8(0.5))
}

func TestDiagnosticMaps(t *testing.T) {
	cfg := config.DefaultProject()

	maps, err := DiagnosticMaps(cfg, 24, 16, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, maps, 4)

	for name, img := range maps {
		require.Equal(t, 24, img.Bounds().Dx(), name)
		require.Equal(t, 16, img.Bounds().Dy(), name)
	}
}

func TestGrayImageMatchesField(t *testing.T) {
	h := heightmap.Build(config.DefaultProject(), 16, 12)
	img := GrayImage(h)

	require.Equal(t, quantize8(h.At(3, 4)), img.GrayAt(3, 4).Y)
}

func TestSmoothGray(t *testing.T) {
	img := GrayImage(field.New(16, 16))

	require.Same(t, img, SmoothGray(img, 0), "sigma 0 keeps the input")
	smoothed := SmoothGray(img, 1.5)
	require.Equal(t, img.Bounds().Size(), smoothed.Bounds().Size())
}
