// Package field provides the flat float64 scalar fields shared by the
// render pipeline stages.
package field

// Field is a row-major 2D scalar field of size W x H.
type Field struct {
	W int
	H int
	V []float64
}

// New allocates a zero-filled field.
func New(w, h int) *Field {
	return &Field{W: w, H: h, V: make([]float64, w*h)}
}

// Idx returns the flat index for (x, y).
func (f *Field) Idx(x, y int) int { return y*f.W + x }

// At returns the value at (x, y).
func (f *Field) At(x, y int) float64 { return f.V[y*f.W+x] }

// Set stores v at (x, y).
func (f *Field) Set(x, y int, v float64) { f.V[y*f.W+x] = v }

// Clone returns a deep copy.
func (f *Field) Clone() *Field {
	c := New(f.W, f.H)
	copy(c.V, f.V)
	return c
}

// MinMax returns the minimum and maximum values of the field.
func (f *Field) MinMax() (minV, maxV float64) {
	minV, maxV = f.V[0], f.V[0]
	for _, v := range f.V[1:] {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	return minV, maxV
}

// Clamp01 clamps x into [0, 1].
func Clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// Lerp linearly interpolates between a and b.
func Lerp(a, b, t float64) float64 { return a + (b-a)*t }
