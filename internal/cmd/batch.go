package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	xdraw "golang.org/x/image/draw"

	"github.com/MeKo-Tech/frostdune/internal/render"
	"github.com/MeKo-Tech/frostdune/internal/store"
	"github.com/MeKo-Tech/frostdune/internal/worker"
)

// seedStride separates per-frame layer seeds far enough that consecutive
// frames are fully decorrelated.
const seedStride = 1000

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Render a stackable sequence of frames",
	Long: `Render a sequence of related frames from one project.

Each frame offsets the layer seeds and optionally steps the gradient sweep
angle, producing a set of backgrounds that stack well in slideshows or
parallax layers. Output goes to a folder of PNGs or a single SQLite
archive.`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().String("project", "", "Project JSON file (default: built-in frost project)")
	batchCmd.Flags().String("name", "sequence", "Sequence name used for filenames and archive metadata")
	batchCmd.Flags().IntP("frames", "n", 6, "Number of frames to render")
	batchCmd.Flags().IntP("width", "W", 0, "Frame width in pixels (default: project preview width)")
	batchCmd.Flags().IntP("height", "H", 0, "Frame height in pixels (default: project preview height)")
	batchCmd.Flags().Float64("angle-step", 0, "Gradient angle increment per frame in degrees")
	batchCmd.Flags().Bool("vary-seeds", true, "Offset noise layer seeds per frame")
	batchCmd.Flags().IntP("workers", "w", 0, "Number of parallel workers (default: number of CPUs)")
	batchCmd.Flags().Bool("progress", true, "Show progress bar")
	batchCmd.Flags().String("format", "folder", "Output format: folder or archive")
	batchCmd.Flags().String("output-file", "", "Archive file path (required for --format=archive)")
	batchCmd.Flags().Int("thumbnail-width", 0, "Also write downscaled thumbnails of this width (folder format only, 0 = off)")

	bindFlags := []struct {
		key  string
		flag string
	}{
		{"batch.project", "project"},
		{"batch.name", "name"},
		{"batch.frames", "frames"},
		{"batch.width", "width"},
		{"batch.height", "height"},
		{"batch.angle_step", "angle-step"},
		{"batch.vary_seeds", "vary-seeds"},
		{"batch.workers", "workers"},
		{"batch.progress", "progress"},
		{"batch.format", "format"},
		{"batch.output_file", "output-file"},
		{"batch.thumbnail_width", "thumbnail-width"},
	}

	for _, bf := range bindFlags {
		if err := viper.BindPFlag(bf.key, batchCmd.Flags().Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
}

func runBatch(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	projectPath := viper.GetString("batch.project")
	name := viper.GetString("batch.name")
	frames := viper.GetInt("batch.frames")
	width := viper.GetInt("batch.width")
	height := viper.GetInt("batch.height")
	angleStep := viper.GetFloat64("batch.angle_step")
	varySeeds := viper.GetBool("batch.vary_seeds")
	workers := viper.GetInt("batch.workers")
	showProgress := viper.GetBool("batch.progress")
	format := viper.GetString("batch.format")
	outputFile := viper.GetString("batch.output_file")
	thumbWidth := viper.GetInt("batch.thumbnail_width")
	outputDir := viper.GetString("output-dir")

	if frames <= 0 {
		return fmt.Errorf("frames must be positive")
	}
	if format != "folder" && format != "archive" {
		return fmt.Errorf("invalid format %q: must be 'folder' or 'archive'", format)
	}
	if format == "archive" && outputFile == "" {
		return fmt.Errorf("--output-file is required when using --format=archive")
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

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

	gen := &frameSink{
		format:     format,
		outputDir:  outputDir,
		thumbWidth: thumbWidth,
	}

	if format == "folder" {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
	} else {
		projectJSON, err := json.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to encode project metadata: %w", err)
		}
		writer, err := store.NewWriter(outputFile, store.Metadata{
			Name:        name,
			Format:      "png",
			Width:       width,
			Height:      height,
			FrameCount:  frames,
			ProjectJSON: string(projectJSON),
			Palette:     cfg.Palette.Name,
		})
		if err != nil {
			return err
		}
		defer writer.Close() // nolint:errcheck
		gen.archive = writer
	}

	tasks := make([]worker.Task, 0, frames)
	for i := 0; i < frames; i++ {
		frameCfg := cfg.Clone()
		if varySeeds {
			for j := range frameCfg.NoiseLayers {
				frameCfg.NoiseLayers[j].Seed += int64(i) * seedStride
			}
		}
		frameCfg.Gradient.AngleDeg += angleStep * float64(i)

		tasks = append(tasks, worker.Task{Request: worker.FrameRequest{
			Name:    fmt.Sprintf("%s_%03d", name, i),
			Index:   i,
			Config:  frameCfg,
			Width:   width,
			Height:  height,
			Options: render.DefaultOptions(),
		}})
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		logger.Warn("Interrupt received, cancelling batch")
		cancel()
	}()

	progress := worker.NewProgress(len(tasks), showProgress)
	pool := worker.New(worker.Config{
		Workers:    workers,
		Generator:  gen,
		OnProgress: progress.Callback(),
	})

	logger.Info("Starting batch render",
		"frames", frames, "size", fmt.Sprintf("%dx%d", width, height),
		"workers", workers, "format", format,
	)

	results := pool.Run(ctx, tasks)
	progress.Done()

	if gen.archive != nil {
		if err := gen.archive.Flush(); err != nil {
			return err
		}
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			logger.Error("Frame failed", "frame", r.Task.Request.Name, "error", r.Err)
		}
	}

	logger.Info(progress.Summary())
	if failed > 0 {
		return fmt.Errorf("%d of %d frames failed", failed, len(results))
	}
	return nil
}

// frameSink renders frames and stores them in the configured destination.
type frameSink struct {
	format     string
	outputDir  string
	thumbWidth int
	archive    *store.Writer
}

// Generate implements worker.Generator.
func (s *frameSink) Generate(ctx context.Context, req worker.FrameRequest) (string, error) {
	result := worker.RenderFrame(ctx, req)
	if result.Err != nil {
		return "", result.Err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, result.Image); err != nil {
		return "", fmt.Errorf("failed to encode frame %s: %w", req.Name, err)
	}

	if s.archive != nil {
		if err := s.archive.WriteFrame(req.Index, req.Name, buf.Bytes()); err != nil {
			return "", err
		}
		return fmt.Sprintf("archive:%s", req.Name), nil
	}

	path := filepath.Join(s.outputDir, req.Name+".png")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write frame %s: %w", path, err)
	}

	if s.thumbWidth > 0 {
		thumbPath := filepath.Join(s.outputDir, req.Name+"_thumb.png")
		if err := render.WritePNG(thumbPath, downscale(result.Image, s.thumbWidth)); err != nil {
			return "", err
		}
	}
	return path, nil
}

// downscale resizes an image to the given width preserving aspect ratio.
func downscale(src image.Image, width int) *image.NRGBA {
	b := src.Bounds()
	if width >= b.Dx() {
		width = b.Dx()
	}
	height := int(float64(b.Dy()) * float64(width) / float64(b.Dx()))
	if height < 1 {
		height = 1
	}

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}
