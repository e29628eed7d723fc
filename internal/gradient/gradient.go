// Package gradient evaluates the angle-driven multi-stop color ramp that
// tints the rendered dunes.
package gradient

import (
	"math"
	"sort"

	"github.com/MeKo-Tech/frostdune/internal/config"
	"github.com/MeKo-Tech/frostdune/internal/field"
)

// RGBA holds the evaluated gradient channels, each in [0, 1].
type RGBA struct {
	R *field.Field
	G *field.Field
	B *field.Field
	A *field.Field
}

// ComputeParameter builds the per-pixel gradient parameter t in [0, 1] for a
// sweep angle in degrees. 0 degrees runs left to right, 90 degrees bottom to
// top (the row axis grows downward, hence the inverted Y component). The
// projection is min-max normalized so the full ramp is traversed edge to
// edge at any angle; a degenerate projection range (1x1 grid) yields zeros.
func ComputeParameter(width, height int, angleDeg float64) *field.Field {
	x, y := coordinateGrid(width, height)

	angle := angleDeg * math.Pi / 180.0
	dirX := math.Cos(angle)
	dirY := -math.Sin(angle)

	length := math.Sqrt(dirX*dirX + dirY*dirY)
	if length == 0 {
		length = 1
	}
	dirX /= length
	dirY /= length

	t := field.New(width, height)
	for i := range t.V {
		t.V[i] = (x.V[i]-0.5)*dirX + (y.V[i]-0.5)*dirY
	}

	minP, maxP := t.MinMax()
	if maxP-minP <= 1e-8 {
		return field.New(width, height)
	}

	scale := 1.0 / (maxP - minP)
	for i, v := range t.V {
		t.V[i] = (v - minP) * scale
	}
	return t
}

// Evaluate maps a parameter field through the gradient's stops. Stops are
// evaluated in ascending-position order; the parameter is clamped to [0,1]
// and to the outermost stops, and duplicate positions form a zero-width
// segment where the left stop wins. With no stops the result is fully
// transparent black.
func Evaluate(cfg config.GradientConfig, t *field.Field) (RGBA, error) {
	out := RGBA{
		R: field.New(t.W, t.H),
		G: field.New(t.W, t.H),
		B: field.New(t.W, t.H),
		A: field.New(t.W, t.H),
	}

	stops := cfg.SortedStops()
	if len(stops) == 0 {
		return out, nil
	}

	positions := make([]float64, len(stops))
	colors := make([][3]float64, len(stops))
	opacities := make([]float64, len(stops))
	for i, stop := range stops {
		r, g, b, err := ParseHexColor(stop.Color)
		if err != nil {
			return RGBA{}, err
		}
		positions[i] = stop.Position
		colors[i] = [3]float64{r, g, b}
		opacities[i] = stop.Opacity
	}

	last := len(stops) - 1
	for i, v := range t.V {
		tc := field.Clamp01(v)

		// First stop strictly greater than tc; the bracketing pair is
		// (idx-1, idx) clamped to the stop list.
		idx := sort.Search(len(positions), func(j int) bool {
			return positions[j] > tc
		})
		left := idx - 1
		if left < 0 {
			left = 0
		}
		right := idx
		if right > last {
			right = last
		}

		factor := 0.0
		if denom := positions[right] - positions[left]; denom > 0 {
			factor = (tc - positions[left]) / denom
		}

		out.R.V[i] = field.Lerp(colors[left][0], colors[right][0], factor)
		out.G.V[i] = field.Lerp(colors[left][1], colors[right][1], factor)
		out.B.V[i] = field.Lerp(colors[left][2], colors[right][2], factor)
		out.A.V[i] = field.Lerp(opacities[left], opacities[right], factor)
	}
	return out, nil
}

// Apply is a convenience used by previews: parameter field plus evaluation
// in one call.
func Apply(cfg config.GradientConfig, width, height int) (RGBA, error) {
	t := ComputeParameter(width, height, cfg.AngleDeg)
	return Evaluate(cfg, t)
}

func coordinateGrid(width, height int) (x, y *field.Field) {
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
