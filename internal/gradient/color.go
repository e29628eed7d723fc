package gradient

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseHexColor decodes a "#rrggbb" string into float channels in [0, 1].
// Malformed strings are an error; no silent repair is attempted.
func ParseHexColor(s string) (r, g, b float64, err error) {
	hex := strings.TrimSpace(s)
	hex = strings.TrimPrefix(hex, "#")

	if len(hex) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q: expected 6 hex digits", s)
	}

	rv, err := strconv.ParseUint(hex[0:2], 16, 8)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	gv, err := strconv.ParseUint(hex[2:4], 16, 8)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	bv, err := strconv.ParseUint(hex[4:6], 16, 8)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q: %w", s, err)
	}

	return float64(rv) / 255.0, float64(gv) / 255.0, float64(bv) / 255.0, nil
}
