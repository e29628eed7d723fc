package lighting

import (
	"math"
	"testing"

	"github.com/MeKo-Tech/frostdune/internal/config"
	"github.com/MeKo-Tech/frostdune/internal/field"
	"github.com/MeKo-Tech/frostdune/internal/heightmap"
)

func TestFlatHeightmapNormalsPointUp(t *testing.T) {
	flat := field.New(8, 8)
	n := ComputeNormals(flat, 1.0)

	for i := range n.Z.V {
		if math.Abs(n.X.V[i]) > 1e-6 || math.Abs(n.Y.V[i]) > 1e-6 {
			t.Fatalf("flat surface has tilted normal at index %d", i)
		}
		if math.Abs(n.Z.V[i]-1.0) > 1e-6 {
			t.Fatalf("flat surface normal z should be 1, got %v", n.Z.V[i])
		}
	}
}

func TestNormalsAreUnitLength(t *testing.T) {
	cfg := config.DefaultProject()
	h := heightmap.Build(cfg, 24, 16)
	n := ComputeNormals(h, 1.0)

	for i := range n.X.V {
		length := math.Sqrt(n.X.V[i]*n.X.V[i] + n.Y.V[i]*n.Y.V[i] + n.Z.V[i]*n.Z.V[i])
		if math.Abs(length-1.0) > 1e-6 {
			t.Fatalf("normal at index %d has length %v", i, length)
		}
	}
}

func TestBuildLightVector(t *testing.T) {
	// Elevation 90 is straight down +Z regardless of azimuth.
	lx, ly, lz := BuildLightVector(config.LightingConfig{AzimuthDeg: 123, ElevationDeg: 90})
	if math.Abs(lx) > 1e-9 || math.Abs(ly) > 1e-9 || math.Abs(lz-1) > 1e-9 {
		t.Errorf("expected (0,0,1), got (%v,%v,%v)", lx, ly, lz)
	}

	// Azimuth 0, elevation 0 points along +X.
	lx, ly, lz = BuildLightVector(config.LightingConfig{AzimuthDeg: 0, ElevationDeg: 0})
	if math.Abs(lx-1) > 1e-9 || math.Abs(ly) > 1e-9 || math.Abs(lz) > 1e-9 {
		t.Errorf("expected (1,0,0), got (%v,%v,%v)", lx, ly, lz)
	}
}

func TestShadeStaysWithinBrightnessRange(t *testing.T) {
	cfg := config.DefaultProject()
	h := heightmap.Build(cfg, 32, 24)

	shade := ComputeShadeFromHeightmap(h, cfg.Lighting, 1.0, 0.35, 1.0)
	for i, v := range shade.V {
		if v < 0.35 || v > 1.0 {
			t.Fatalf("shade out of [0.35, 1.0] at index %d: %v", i, v)
		}
	}
}

func TestShadeSwapsInvertedBrightnessRange(t *testing.T) {
	flat := field.New(4, 4)
	shade := ComputeShadeFromHeightmap(flat, config.LightingConfig{AzimuthDeg: 45, ElevationDeg: 60, Intensity: 0.8}, 1.0, 1.0, 0.35)

	for i, v := range shade.V {
		if v < 0.35 || v > 1.0 {
			t.Fatalf("inverted range not swapped at index %d: %v", i, v)
		}
	}
}

func TestShadeIntensityIsClamped(t *testing.T) {
	flat := field.New(4, 4)

	over := ComputeShadeFromHeightmap(flat, config.LightingConfig{ElevationDeg: 90, Intensity: 5.0}, 1.0, 0.0, 1.0)
	unit := ComputeShadeFromHeightmap(flat, config.LightingConfig{ElevationDeg: 90, Intensity: 1.0}, 1.0, 0.0, 1.0)

	for i := range over.V {
		if over.V[i] != unit.V[i] {
			t.Fatalf("intensity above 1 must clamp to 1, got %v vs %v", over.V[i], unit.V[i])
		}
	}
}

func TestFullyLitFlatSurface(t *testing.T) {
	// Light straight down on a flat surface at full intensity reaches the
	// brightness ceiling everywhere.
	flat := field.New(4, 4)
	shade := ComputeShadeFromHeightmap(flat, config.LightingConfig{ElevationDeg: 90, Intensity: 1.0}, 1.0, 0.35, 1.0)

	for i, v := range shade.V {
		if math.Abs(v-1.0) > 1e-6 {
			t.Fatalf("expected ceiling brightness at index %d, got %v", i, v)
		}
	}
}
