package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/frostdune/internal/config"
	"github.com/MeKo-Tech/frostdune/internal/render"
	"github.com/MeKo-Tech/frostdune/internal/worker"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a project to a PNG image",
	Long: `Render a frost dune project file to a single PNG image.

Without --project the built-in default frost project is rendered. With
--maps the base/detail/combined heightmaps and the shade field are written
alongside the image as grayscale PNGs.`,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().String("project", "", "Project JSON file (default: built-in frost project)")
	renderCmd.Flags().StringP("output", "o", "frostdune.png", "Output PNG filename (relative to output-dir)")
	renderCmd.Flags().IntP("width", "W", 0, "Output width in pixels (default: project preview width)")
	renderCmd.Flags().IntP("height", "H", 0, "Output height in pixels (default: project preview height)")
	renderCmd.Flags().Bool("maps", false, "Also write diagnostic heightmap/shade maps")
	renderCmd.Flags().Float64("maps-blur", 0, "Gaussian sigma for smoothing diagnostic maps (0 = off)")
	renderCmd.Flags().Float64("z-scale", 1.0, "Normal z-scale; larger values flatten the shading")
	renderCmd.Flags().Float64("min-brightness", 0.35, "Shade floor brightness")
	renderCmd.Flags().Float64("max-brightness", 1.0, "Shade ceiling brightness")
	renderCmd.Flags().Float64("height-influence", 0.25, "Height-based brightness modulation weight (0..1)")

	bindFlags := []struct {
		key  string
		flag string
	}{
		{"render.project", "project"},
		{"render.output", "output"},
		{"render.width", "width"},
		{"render.height", "height"},
		{"render.maps", "maps"},
		{"render.maps_blur", "maps-blur"},
		{"render.z_scale", "z-scale"},
		{"render.min_brightness", "min-brightness"},
		{"render.max_brightness", "max-brightness"},
		{"render.height_influence", "height-influence"},
	}

	for _, bf := range bindFlags {
		if err := viper.BindPFlag(bf.key, renderCmd.Flags().Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
}

func runRender(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	projectPath := viper.GetString("render.project")
	output := viper.GetString("render.output")
	width := viper.GetInt("render.width")
	height := viper.GetInt("render.height")
	writeMaps := viper.GetBool("render.maps")
	mapsBlur := viper.GetFloat64("render.maps_blur")
	outputDir := viper.GetString("output-dir")

	cfg, err := loadProjectOrDefault(projectPath)
	if err != nil {
		return err
	}

	if width <= 0 {
		width = cfg.PreviewWidth
	}
	if height <= 0 {
		height = cfg.PreviewHeight
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid render size %dx%d", width, height)
	}

	opts := render.Options{
		ZScale:          viper.GetFloat64("render.z_scale"),
		MinBrightness:   viper.GetFloat64("render.min_brightness"),
		MaxBrightness:   viper.GetFloat64("render.max_brightness"),
		HeightInfluence: viper.GetFloat64("render.height_influence"),
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	logger.Info("Rendering image", "width", width, "height", height, "project", projectDisplayName(projectPath))

	result := worker.RenderFrame(context.Background(), worker.FrameRequest{
		Name:           output,
		Config:         cfg,
		Width:          width,
		Height:         height,
		DiagnosticMaps: writeMaps,
		Options:        opts,
	})
	if result.Err != nil {
		return fmt.Errorf("render failed: %w", result.Err)
	}

	finalPath := filepath.Join(outputDir, output)
	if err := render.WritePNG(finalPath, result.Image); err != nil {
		return err
	}
	logger.Info("Wrote image", "path", finalPath, "elapsed", result.MainElapsed)

	if writeMaps {
		baseName := output[:len(output)-len(filepath.Ext(output))]
		for name, img := range result.Maps {
			gray := render.SmoothGray(img, float32(mapsBlur))
			mapPath := filepath.Join(outputDir, fmt.Sprintf("%s_%s.png", baseName, name))
			if err := render.WritePNG(mapPath, gray); err != nil {
				return err
			}
			logger.Debug("Wrote diagnostic map", "path", mapPath)
		}
		logger.Info("Wrote diagnostic maps", "count", len(result.Maps), "elapsed", result.TotalElapsed)
	}

	return nil
}

func loadProjectOrDefault(path string) (*config.ProjectConfig, error) {
	if path == "" {
		return config.DefaultProject(), nil
	}
	return config.LoadProject(path)
}

func projectDisplayName(path string) string {
	if path == "" {
		return "(default)"
	}
	return path
}
