// Package config holds the value-object configuration model for the frost
// dune renderer. Configurations are built by the CLI or loaded from project
// files and passed into the pipeline, which never mutates them.
package config

import (
	"encoding/json"
	"sort"
)

// LayerKind discriminates how a noise layer is evaluated.
type LayerKind string

const (
	// LayerBase contributes large ridge-FBM dune shapes.
	LayerBase LayerKind = "base"
	// LayerDetail contributes fine ridge-FBM surface detail.
	LayerDetail LayerKind = "detail"
	// LayerWarp contributes domain-warp offsets instead of height.
	LayerWarp LayerKind = "warp"
)

// NoiseLayerConfig describes one noise layer. ScaleX/ScaleY act as frequency
// multipliers on normalized [0,1] coordinates. RidgePower and HeightPower are
// only meaningful for base/detail layers; warp layers ignore them.
type NoiseLayerConfig struct {
	Kind        LayerKind `json:"layer_type"`
	Enabled     bool      `json:"enabled"`
	Seed        int64     `json:"seed"`
	ScaleX      float64   `json:"scale_x"`
	ScaleY      float64   `json:"scale_y"`
	Octaves     int       `json:"octaves"`
	Persistence float64   `json:"persistence"`
	Lacunarity  float64   `json:"lacunarity"`
	RidgePower  float64   `json:"ridge_power"`
	HeightPower float64   `json:"height_power"`
	Amplitude   float64   `json:"amplitude"`
}

// GradientStop is one anchor point of the color ramp.
type GradientStop struct {
	Position float64 `json:"position"`
	Color    string  `json:"color"`
	Opacity  float64 `json:"opacity"`
}

// GradientConfig is an angle-driven multi-stop color ramp.
// Stops are kept in ascending-position order; SortedStops re-derives the
// order after external edits.
type GradientConfig struct {
	AngleDeg float64        `json:"angle_deg"`
	Stops    []GradientStop `json:"stops"`
}

// SortedStops returns the stops sorted ascending by position. The sort is
// stable so duplicate positions keep their original relative order.
func (g GradientConfig) SortedStops() []GradientStop {
	stops := make([]GradientStop, len(g.Stops))
	copy(stops, g.Stops)
	sort.SliceStable(stops, func(i, j int) bool {
		return stops[i].Position < stops[j].Position
	})
	return stops
}

// LightingConfig describes the directional light.
type LightingConfig struct {
	AzimuthDeg   float64 `json:"light_azimuth_deg"`
	ElevationDeg float64 `json:"light_elevation_deg"`
	Intensity    float64 `json:"intensity"`
}

// Palette is a named ordered set of hex colors. It is informational only;
// the pipeline reads colors from the gradient stops.
type Palette struct {
	Name   string   `json:"name"`
	Colors []string `json:"colors"`
}

// ProjectConfig aggregates everything one render needs.
//
// SeedGlobal is stored and round-tripped for compatibility with existing
// project files but is not mixed into per-layer seeds; each layer owns its
// own seed.
type ProjectConfig struct {
	Palette            Palette            `json:"palette"`
	Gradient           GradientConfig     `json:"gradient"`
	NoiseLayers        []NoiseLayerConfig `json:"noise_layers"`
	Lighting           LightingConfig     `json:"lighting"`
	PreviewWidth       int                `json:"preview_width"`
	PreviewHeight      int                `json:"preview_height"`
	NoisePreviewWidth  int                `json:"noise_preview_width"`
	NoisePreviewHeight int                `json:"noise_preview_height"`
	SeedGlobal         int64              `json:"seed_global"`
}

// Clone returns a deep copy, used to snapshot a config before handing it to
// a background render so later edits cannot be observed mid-render.
func (p *ProjectConfig) Clone() *ProjectConfig {
	c := *p
	c.Palette.Colors = append([]string(nil), p.Palette.Colors...)
	c.Gradient.Stops = append([]GradientStop(nil), p.Gradient.Stops...)
	c.NoiseLayers = append([]NoiseLayerConfig(nil), p.NoiseLayers...)
	return &c
}

// UnmarshalJSON applies documented defaults for missing fields. Wrong-typed
// values remain hard errors from encoding/json.
func (l *NoiseLayerConfig) UnmarshalJSON(data []byte) error {
	type alias NoiseLayerConfig
	tmp := alias(defaultNoiseLayer())
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	switch tmp.Kind {
	case LayerBase, LayerDetail, LayerWarp:
	default:
		tmp.Kind = LayerBase
	}
	*l = NoiseLayerConfig(tmp)
	return nil
}

// UnmarshalJSON applies documented defaults for missing stop fields.
func (s *GradientStop) UnmarshalJSON(data []byte) error {
	type alias GradientStop
	tmp := alias{Position: 0, Color: "#000000", Opacity: 1.0}
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*s = GradientStop(tmp)
	return nil
}

// UnmarshalJSON applies the default angle and sorts loaded stops.
func (g *GradientConfig) UnmarshalJSON(data []byte) error {
	type alias GradientConfig
	tmp := alias{AngleDeg: 20.0}
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*g = GradientConfig(tmp)
	g.Stops = g.SortedStops()
	return nil
}

// UnmarshalJSON applies documented lighting defaults.
func (l *LightingConfig) UnmarshalJSON(data []byte) error {
	type alias LightingConfig
	tmp := alias{AzimuthDeg: 45.0, ElevationDeg: 60.0, Intensity: 0.8}
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*l = LightingConfig(tmp)
	return nil
}

// UnmarshalJSON applies project-level defaults for missing sections.
func (p *ProjectConfig) UnmarshalJSON(data []byte) error {
	type alias ProjectConfig
	def := DefaultProject()
	tmp := alias{
		Palette:            def.Palette,
		Gradient:           def.Gradient,
		Lighting:           def.Lighting,
		PreviewWidth:       def.PreviewWidth,
		PreviewHeight:      def.PreviewHeight,
		NoisePreviewWidth:  def.NoisePreviewWidth,
		NoisePreviewHeight: def.NoisePreviewHeight,
		SeedGlobal:         def.SeedGlobal,
	}
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*p = ProjectConfig(tmp)
	if p.NoiseLayers == nil {
		p.NoiseLayers = []NoiseLayerConfig{}
	}
	return nil
}

func defaultNoiseLayer() NoiseLayerConfig {
	return NoiseLayerConfig{
		Kind:        LayerBase,
		Enabled:     true,
		Seed:        0,
		ScaleX:      1.5,
		ScaleY:      0.3,
		Octaves:     5,
		Persistence: 0.5,
		Lacunarity:  2.0,
		RidgePower:  2.0,
		HeightPower: 1.7,
		Amplitude:   1.0,
	}
}
