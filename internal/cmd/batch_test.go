package cmd

import (
	"image"
	"testing"
)

func TestDownscalePreservesAspectRatio(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 200, 100))

	dst := downscale(src, 50)
	if dst.Bounds().Dx() != 50 || dst.Bounds().Dy() != 25 {
		t.Errorf("got %dx%d, want 50x25", dst.Bounds().Dx(), dst.Bounds().Dy())
	}
}

func TestDownscaleNeverUpscales(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 64, 32))

	dst := downscale(src, 500)
	if dst.Bounds().Dx() != 64 || dst.Bounds().Dy() != 32 {
		t.Errorf("got %dx%d, want the source size 64x32", dst.Bounds().Dx(), dst.Bounds().Dy())
	}
}

func TestDownscaleMinimumHeight(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 400, 2))

	dst := downscale(src, 10)
	if dst.Bounds().Dy() != 1 {
		t.Errorf("height %d, want 1", dst.Bounds().Dy())
	}
}

func TestProjectDisplayName(t *testing.T) {
	if got := projectDisplayName(""); got != "(default)" {
		t.Errorf("empty path: got %q", got)
	}
	if got := projectDisplayName("a/b.json"); got != "a/b.json" {
		t.Errorf("explicit path: got %q", got)
	}
}
