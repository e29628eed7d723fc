package worker

import (
	"context"
	"image"
	"time"

	"github.com/MeKo-Tech/frostdune/internal/config"
	"github.com/MeKo-Tech/frostdune/internal/render"
)

// FrameRequest describes one background render. Index is the frame's
// position within a batch sequence; single renders leave it zero.
type FrameRequest struct {
	Name           string
	Index          int
	Config         *config.ProjectConfig
	Width          int
	Height         int
	DiagnosticMaps bool
	MapsWidth      int
	MapsHeight     int
	Options        render.Options
}

// FrameResult is the outcome of a background render. MainElapsed covers the
// main image pass, TotalElapsed the whole job including diagnostic maps.
type FrameResult struct {
	Name         string
	Image        *image.NRGBA
	Maps         map[string]*image.Gray
	MainElapsed  time.Duration
	TotalElapsed time.Duration
	Err          error
}

// RenderFrame runs one render job with cooperative cancellation. The config
// is snapshotted before any work, and cancellation is checked only at coarse
// boundaries: before starting, between the main image pass and the optional
// diagnostic pass, and before emitting the result.
func RenderFrame(ctx context.Context, req FrameRequest) FrameResult {
	start := time.Now()
	result := FrameResult{Name: req.Name}

	if err := ctx.Err(); err != nil {
		result.Err = err
		return result
	}

	cfg := req.Config.Clone()

	img, err := render.RenderImageWithOptions(cfg, req.Width, req.Height, req.Options)
	if err != nil {
		result.Err = err
		result.TotalElapsed = time.Since(start)
		return result
	}
	result.Image = img
	result.MainElapsed = time.Since(start)

	if err := ctx.Err(); err != nil {
		result.Err = err
		result.TotalElapsed = time.Since(start)
		return result
	}

	if req.DiagnosticMaps {
		mapsW, mapsH := req.MapsWidth, req.MapsHeight
		if mapsW <= 0 || mapsH <= 0 {
			mapsW, mapsH = cfg.NoisePreviewWidth, cfg.NoisePreviewHeight
		}
		maps, err := render.DiagnosticMaps(cfg, mapsW, mapsH, req.Options)
		if err != nil {
			result.Err = err
			result.TotalElapsed = time.Since(start)
			return result
		}
		result.Maps = maps
	}

	if err := ctx.Err(); err != nil {
		result.Err = err
	}
	result.TotalElapsed = time.Since(start)
	return result
}
