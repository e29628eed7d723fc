package config

// DefaultGradient returns the frost gradient used by new projects.
func DefaultGradient() GradientConfig {
	return GradientConfig{
		AngleDeg: 20.0,
		Stops: []GradientStop{
			{Position: 0.0, Color: "#000814", Opacity: 1.0},
			{Position: 0.3, Color: "#0a1628", Opacity: 1.0},
			{Position: 0.6, Color: "#1a2e45", Opacity: 1.0},
			{Position: 1.0, Color: "#caf0f8", Opacity: 1.0},
		},
	}
}

// DefaultProject returns the default frost dune project configuration.
// The values match the project JSON shipped with existing installations,
// so loading an empty document must reproduce exactly this config.
func DefaultProject() *ProjectConfig {
	return &ProjectConfig{
		Palette: Palette{
			Name: "frost",
			Colors: []string{
				"#000814", "#0a1628", "#1a2e45",
				"#caf0f8", "#64ffda", "#4ecdc4",
			},
		},
		Gradient: DefaultGradient(),
		NoiseLayers: []NoiseLayerConfig{
			{
				Kind: LayerWarp, Enabled: true, Seed: 42,
				ScaleX: 0.2, ScaleY: 0.05, Octaves: 2,
				Persistence: 0.5, Lacunarity: 2.0,
				RidgePower: 1.0, HeightPower: 1.0, Amplitude: 0.5,
			},
			{
				Kind: LayerBase, Enabled: true, Seed: 43,
				ScaleX: 1.5, ScaleY: 0.3, Octaves: 5,
				Persistence: 0.5, Lacunarity: 2.0,
				RidgePower: 2.0, HeightPower: 1.7, Amplitude: 1.0,
			},
			{
				Kind: LayerDetail, Enabled: true, Seed: 44,
				ScaleX: 6.0, ScaleY: 2.0, Octaves: 3,
				Persistence: 0.5, Lacunarity: 2.0,
				RidgePower: 2.0, HeightPower: 1.3, Amplitude: 0.4,
			},
		},
		Lighting: LightingConfig{
			AzimuthDeg:   45.0,
			ElevationDeg: 60.0,
			Intensity:    0.8,
		},
		PreviewWidth:       960,
		PreviewHeight:      540,
		NoisePreviewWidth:  480,
		NoisePreviewHeight: 270,
		SeedGlobal:         42,
	}
}

// BuiltinPalettes is the palette collection offered by the palettes command.
var BuiltinPalettes = []Palette{
	{Name: "frosty", Colors: []string{"#1a3a52", "#2d5873", "#4a7c94", "#6ba3b5", "#8cc8d8", "#3d6b7d"}},
	{Name: "sunset", Colors: []string{"#1a1a2e", "#16213e", "#0f3460", "#533483", "#c74177", "#ee9595"}},
	{Name: "ocean", Colors: []string{"#051937", "#004d6d", "#00718f", "#0094a8", "#00b5b8", "#7dd5c0"}},
	{Name: "monochrome", Colors: []string{"#1a1a1a", "#2d2d2d", "#404040", "#595959", "#737373", "#8c8c8c"}},
	{Name: "forest", Colors: []string{"#1b3a26", "#2d5a3d", "#3e7553", "#4f906a", "#60ab80", "#71c697"}},
}
